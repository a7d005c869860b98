package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/agencydesk/crm-backend-go/internal/domain/kpi"
	"github.com/agencydesk/crm-backend-go/internal/handler/http/response"
	"github.com/agencydesk/crm-backend-go/internal/pkg/validator"
)

type KPIHandler interface {
	CreateSnapshot(w http.ResponseWriter, r *http.Request)
	ListSnapshots(w http.ResponseWriter, r *http.Request)
}

type kpiHandlerImpl struct {
	kpiService kpi.SnapshotService
}

func NewKPIHandler(kpiService kpi.SnapshotService) KPIHandler {
	return &kpiHandlerImpl{kpiService: kpiService}
}

func (h *kpiHandlerImpl) CreateSnapshot(w http.ResponseWriter, r *http.Request) {
	var req kpi.CreateSnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.kpiService.CreateSnapshot(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Snapshot recorded", result)
}

func (h *kpiHandlerImpl) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	filter := kpi.SnapshotFilter{}

	q := r.URL.Query()
	if v := q.Get("chatter_id"); v != "" {
		filter.ChatterID = &v
	}
	if v := q.Get("from"); v != "" {
		if t, ok := validator.ParseFlexibleTime(v); ok {
			filter.From = &t
		}
	}
	if v := q.Get("to"); v != "" {
		if t, ok := validator.ParseFlexibleTime(v); ok {
			filter.To = &t
		}
	}
	if v := q.Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}

	result, err := h.kpiService.ListSnapshots(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

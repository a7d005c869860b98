package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/agencydesk/crm-backend-go/internal/domain/shift"
	"github.com/agencydesk/crm-backend-go/internal/handler/http/response"
	"github.com/agencydesk/crm-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type ShiftHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	ListShifts(w http.ResponseWriter, r *http.Request)
	ApproveShift(w http.ResponseWriter, r *http.Request)
	DenyShift(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	shiftService shift.ShiftService
}

func NewShiftHandler(shiftService shift.ShiftService) ShiftHandler {
	return &shiftHandlerImpl{shiftService: shiftService}
}

func (h *shiftHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	result, err := h.shiftService.ClockIn(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked in", result)
}

func (h *shiftHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	var req shift.ClockOutRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request body", nil)
			return
		}
	}

	result, err := h.shiftService.ClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked out", result)
}

func (h *shiftHandlerImpl) ListShifts(w http.ResponseWriter, r *http.Request) {
	filter := shift.ShiftFilter{}

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
	filter.PendingOnly = q.Get("pending") == "true"
	if v := q.Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}

	result, err := h.shiftService.ListShifts(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *shiftHandlerImpl) ApproveShift(w http.ResponseWriter, r *http.Request) {
	result, err := h.shiftService.ApproveShift(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift approved", result)
}

func (h *shiftHandlerImpl) DenyShift(w http.ResponseWriter, r *http.Request) {
	req := shift.DenyShiftRequest{ID: chi.URLParam(r, "id")}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request body", nil)
			return
		}
		req.ID = chi.URLParam(r, "id")
	}

	result, err := h.shiftService.DenyShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift denied", result)
}

package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/agencydesk/crm-backend-go/internal/domain/dashboard"
	"github.com/agencydesk/crm-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	GetStats(w http.ResponseWriter, r *http.Request)
	ExportAnalytics(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	statsService dashboard.StatsService
}

func NewDashboardHandler(statsService dashboard.StatsService) DashboardHandler {
	return &dashboardHandlerImpl{statsService: statsService}
}

func (h *dashboardHandlerImpl) GetStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.statsService.GetStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *dashboardHandlerImpl) ExportAnalytics(w http.ResponseWriter, r *http.Request) {
	data, filename, err := h.statsService.ExportAnalyticsCSV(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

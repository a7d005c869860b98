package http

import (
	"encoding/json"
	"net/http"

	"github.com/agencydesk/crm-backend-go/internal/domain/bonus"
	"github.com/agencydesk/crm-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type BonusRuleHandler interface {
	CreateRule(w http.ResponseWriter, r *http.Request)
	GetRule(w http.ResponseWriter, r *http.Request)
	UpdateRule(w http.ResponseWriter, r *http.Request)
	DeleteRule(w http.ResponseWriter, r *http.Request)
	ListRules(w http.ResponseWriter, r *http.Request)
	Preview(w http.ResponseWriter, r *http.Request)
}

type bonusRuleHandlerImpl struct {
	bonusService bonus.RuleService
}

func NewBonusRuleHandler(bonusService bonus.RuleService) BonusRuleHandler {
	return &bonusRuleHandlerImpl{bonusService: bonusService}
}

func (h *bonusRuleHandlerImpl) CreateRule(w http.ResponseWriter, r *http.Request) {
	var req bonus.CreateRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.bonusService.CreateRule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Bonus rule created", result)
}

func (h *bonusRuleHandlerImpl) GetRule(w http.ResponseWriter, r *http.Request) {
	result, err := h.bonusService.GetRule(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *bonusRuleHandlerImpl) UpdateRule(w http.ResponseWriter, r *http.Request) {
	var req bonus.UpdateRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.bonusService.UpdateRule(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *bonusRuleHandlerImpl) DeleteRule(w http.ResponseWriter, r *http.Request) {
	if err := h.bonusService.DeleteRule(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bonus rule deleted", nil)
}

func (h *bonusRuleHandlerImpl) ListRules(w http.ResponseWriter, r *http.Request) {
	result, err := h.bonusService.ListRules(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *bonusRuleHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	var req bonus.PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.bonusService.Preview(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

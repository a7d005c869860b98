package http

import (
	"encoding/json"
	"net/http"

	"github.com/agencydesk/crm-backend-go/internal/domain/assignment"
	"github.com/agencydesk/crm-backend-go/internal/domain/creator"
	"github.com/agencydesk/crm-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type RosterHandler interface {
	// Creators
	CreateCreator(w http.ResponseWriter, r *http.Request)
	GetCreator(w http.ResponseWriter, r *http.Request)
	UpdateCreator(w http.ResponseWriter, r *http.Request)
	ListCreators(w http.ResponseWriter, r *http.Request)

	// Assignments
	Assign(w http.ResponseWriter, r *http.Request)
	SetPrimary(w http.ResponseWriter, r *http.Request)
	Unassign(w http.ResponseWriter, r *http.Request)
	ListAssignments(w http.ResponseWriter, r *http.Request)
}

type rosterHandlerImpl struct {
	creatorService    creator.CreatorService
	assignmentService assignment.AssignmentService
}

func NewRosterHandler(creatorService creator.CreatorService, assignmentService assignment.AssignmentService) RosterHandler {
	return &rosterHandlerImpl{
		creatorService:    creatorService,
		assignmentService: assignmentService,
	}
}

// ========== CREATORS ==========

func (h *rosterHandlerImpl) CreateCreator(w http.ResponseWriter, r *http.Request) {
	var req creator.CreateCreatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.creatorService.CreateCreator(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Creator created", result)
}

func (h *rosterHandlerImpl) GetCreator(w http.ResponseWriter, r *http.Request) {
	result, err := h.creatorService.GetCreator(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *rosterHandlerImpl) UpdateCreator(w http.ResponseWriter, r *http.Request) {
	var req creator.UpdateCreatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.creatorService.UpdateCreator(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *rosterHandlerImpl) ListCreators(w http.ResponseWriter, r *http.Request) {
	result, err := h.creatorService.ListCreators(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== ASSIGNMENTS ==========

func (h *rosterHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	var req assignment.AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.assignmentService.Assign(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Chatter assigned", result)
}

func (h *rosterHandlerImpl) SetPrimary(w http.ResponseWriter, r *http.Request) {
	req := assignment.SetPrimaryRequest{AssignmentID: chi.URLParam(r, "id")}

	result, err := h.assignmentService.SetPrimary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *rosterHandlerImpl) Unassign(w http.ResponseWriter, r *http.Request) {
	if err := h.assignmentService.Unassign(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Chatter unassigned", nil)
}

func (h *rosterHandlerImpl) ListAssignments(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	result, err := h.assignmentService.ListAssignments(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

package shift

import (
	"context"
	"time"

	"github.com/agencydesk/crm-backend-go/internal/domain/auth"
	"github.com/agencydesk/crm-backend-go/internal/domain/shift"
	"github.com/agencydesk/crm-backend-go/internal/domain/user"
)

type shiftService struct {
	shiftRepo shift.ShiftRepository
}

// ClockIn implements shift.ShiftService.
func (s *shiftService) ClockIn(ctx context.Context) (shift.ShiftResponse, error) {
	principal, err := auth.PrincipalFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	if principal.Role != user.RoleChatter {
		return shift.ShiftResponse{}, user.ErrChatterRoleRequired
	}

	// Clocking in twice keeps the original open shift.
	open, err := s.shiftRepo.GetOpenShift(ctx, principal.UserID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	if open != nil {
		return shift.ToResponse(*open), nil
	}

	created, err := s.shiftRepo.Create(ctx, shift.Shift{
		ChatterID: principal.UserID,
		ClockIn:   time.Now().UTC(),
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return shift.ToResponse(created), nil
}

// ClockOut implements shift.ShiftService.
func (s *shiftService) ClockOut(ctx context.Context, req shift.ClockOutRequest) (shift.ShiftResponse, error) {
	principal, err := auth.PrincipalFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	open, err := s.shiftRepo.GetOpenShift(ctx, principal.UserID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	if open == nil {
		return shift.ShiftResponse{}, shift.ErrNoOpenShift
	}

	now := time.Now().UTC()
	open.ClockOut = &now
	if b := req.NormalizedBreakMinutes(); b != nil {
		open.BreakMinutes = *b
	}
	if n := req.NormalizedNotes(); n != nil {
		open.Notes = n
	}

	if err := s.shiftRepo.Update(ctx, *open); err != nil {
		return shift.ShiftResponse{}, err
	}

	return s.get(ctx, open.ID)
}

// ListShifts implements shift.ShiftService.
func (s *shiftService) ListShifts(ctx context.Context, filter shift.ShiftFilter) ([]shift.ShiftResponse, error) {
	principal, err := auth.PrincipalFromContext(ctx)
	if err != nil {
		return nil, err
	}

	// Scope the query to what the caller may see.
	switch principal.Role {
	case user.RoleChatter:
		filter.ChatterID = &principal.UserID
		filter.SupervisorID = nil
	case user.RoleSupervisor:
		if filter.ChatterID == nil {
			filter.SupervisorID = &principal.UserID
		}
	}

	shifts, err := s.shiftRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return shift.ToResponses(shifts), nil
}

// ApproveShift implements shift.ShiftService.
func (s *shiftService) ApproveShift(ctx context.Context, id string) (shift.ShiftResponse, error) {
	principal, err := auth.PrincipalFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	sh, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	if sh.IsOpen() {
		return shift.ShiftResponse{}, shift.ErrShiftStillOpen
	}
	if sh.IsApproved() {
		return shift.ShiftResponse{}, shift.ErrShiftAlreadyApproved
	}
	if err := s.checkApprover(principal, sh); err != nil {
		return shift.ShiftResponse{}, err
	}

	now := time.Now().UTC()
	sh.ApprovedByID = &principal.UserID
	sh.ApprovedAt = &now

	if err := s.shiftRepo.Update(ctx, sh); err != nil {
		return shift.ShiftResponse{}, err
	}

	return s.get(ctx, sh.ID)
}

// DenyShift implements shift.ShiftService.
func (s *shiftService) DenyShift(ctx context.Context, req shift.DenyShiftRequest) (shift.ShiftResponse, error) {
	principal, err := auth.PrincipalFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	sh, err := s.shiftRepo.GetByID(ctx, req.ID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	if sh.IsApproved() {
		return shift.ShiftResponse{}, shift.ErrShiftAlreadyApproved
	}
	if err := s.checkApprover(principal, sh); err != nil {
		return shift.ShiftResponse{}, err
	}

	// A denied shift stays unapproved; the reason is prepended to the
	// notes so the chatter sees it.
	note := "[DENIED]"
	if req.Notes != nil && *req.Notes != "" {
		note += " " + *req.Notes
	}
	if sh.Notes != nil && *sh.Notes != "" {
		note += " | " + *sh.Notes
	}
	sh.Notes = &note

	if err := s.shiftRepo.Update(ctx, sh); err != nil {
		return shift.ShiftResponse{}, err
	}

	return s.get(ctx, sh.ID)
}

// checkApprover enforces who may sign off: admins anywhere, supervisors
// only on their own team.
func (s *shiftService) checkApprover(principal auth.Principal, sh shift.Shift) error {
	switch principal.Role {
	case user.RoleAdmin:
		return nil
	case user.RoleSupervisor:
		if sh.ChatterSupervisorID == nil || *sh.ChatterSupervisorID != principal.UserID {
			return user.ErrNotTeamSupervisor
		}
		return nil
	default:
		return user.ErrApproverRoleRequired
	}
}

func (s *shiftService) get(ctx context.Context, id string) (shift.ShiftResponse, error) {
	sh, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return shift.ToResponse(sh), nil
}

func NewShiftService(shiftRepo shift.ShiftRepository) shift.ShiftService {
	return &shiftService{
		shiftRepo: shiftRepo,
	}
}

package roster

import (
	"context"

	"github.com/agencydesk/crm-backend-go/internal/domain/assignment"
	"github.com/agencydesk/crm-backend-go/internal/domain/creator"
	"github.com/agencydesk/crm-backend-go/internal/domain/user"
	"github.com/agencydesk/crm-backend-go/internal/pkg/database"
	"github.com/agencydesk/crm-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

// Service manages the roster: creator accounts and which chatters work
// them. Implements creator.CreatorService and assignment.AssignmentService.
type Service struct {
	db             *database.DB
	creatorRepo    creator.CreatorRepository
	assignmentRepo assignment.AssignmentRepository
	userRepo       user.UserRepository
}

// CreateCreator implements creator.CreatorService.
func (s *Service) CreateCreator(ctx context.Context, req creator.CreateCreatorRequest) (creator.CreatorResponse, error) {
	if err := req.Validate(); err != nil {
		return creator.CreatorResponse{}, err
	}

	created, err := s.creatorRepo.Create(ctx, creator.Creator{
		Platform:    creator.Platform(req.Platform),
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Status:      creator.StatusActive,
	})
	if err != nil {
		return creator.CreatorResponse{}, err
	}

	return creator.ToResponse(created), nil
}

// GetCreator implements creator.CreatorService.
func (s *Service) GetCreator(ctx context.Context, id string) (creator.CreatorResponse, error) {
	c, err := s.creatorRepo.GetByID(ctx, id)
	if err != nil {
		return creator.CreatorResponse{}, err
	}
	return creator.ToResponse(c), nil
}

// UpdateCreator implements creator.CreatorService.
func (s *Service) UpdateCreator(ctx context.Context, req creator.UpdateCreatorRequest) (creator.CreatorResponse, error) {
	if err := req.Validate(); err != nil {
		return creator.CreatorResponse{}, err
	}

	if err := s.creatorRepo.Update(ctx, req); err != nil {
		return creator.CreatorResponse{}, err
	}

	return s.GetCreator(ctx, req.ID)
}

// ListCreators implements creator.CreatorService.
func (s *Service) ListCreators(ctx context.Context) ([]creator.CreatorResponse, error) {
	creators, err := s.creatorRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]creator.CreatorResponse, 0, len(creators))
	for _, c := range creators {
		responses = append(responses, creator.ToResponse(c))
	}
	return responses, nil
}

// Assign implements assignment.AssignmentService.
func (s *Service) Assign(ctx context.Context, req assignment.AssignRequest) (assignment.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return assignment.AssignmentResponse{}, err
	}

	chatter, err := s.userRepo.GetByID(ctx, req.ChatterID)
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}
	if chatter.Role != user.RoleChatter {
		return assignment.AssignmentResponse{}, user.ErrChatterRoleRequired
	}
	if _, err := s.creatorRepo.GetByID(ctx, req.CreatorID); err != nil {
		return assignment.AssignmentResponse{}, err
	}

	// Assigning an already active pair is a no-op.
	existing, err := s.assignmentRepo.GetActive(ctx, req.ChatterID, req.CreatorID)
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}
	if existing != nil {
		return assignment.ToResponse(*existing), nil
	}

	var created assignment.Assignment
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		created, err = s.assignmentRepo.Create(txCtx, assignment.Assignment{
			ChatterID: req.ChatterID,
			CreatorID: req.CreatorID,
			IsPrimary: req.IsPrimary,
		})
		if err != nil {
			return err
		}

		if req.IsPrimary {
			return s.assignmentRepo.ClearPrimaryForChatter(txCtx, req.ChatterID, created.ID)
		}
		return nil
	})
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}

	return s.getAssignment(ctx, created.ID)
}

// SetPrimary implements assignment.AssignmentService.
func (s *Service) SetPrimary(ctx context.Context, req assignment.SetPrimaryRequest) (assignment.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return assignment.AssignmentResponse{}, err
	}

	a, err := s.assignmentRepo.GetByID(ctx, req.AssignmentID)
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}
	if !a.IsActive() {
		return assignment.AssignmentResponse{}, assignment.ErrAssignmentHistorical
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.assignmentRepo.SetPrimary(txCtx, a.ID, true); err != nil {
			return err
		}
		return s.assignmentRepo.ClearPrimaryForChatter(txCtx, a.ChatterID, a.ID)
	})
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}

	return s.getAssignment(ctx, a.ID)
}

// Unassign implements assignment.AssignmentService.
func (s *Service) Unassign(ctx context.Context, id string) error {
	a, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !a.IsActive() {
		return assignment.ErrAssignmentHistorical
	}

	return s.assignmentRepo.Unassign(ctx, id)
}

// ListAssignments implements assignment.AssignmentService.
func (s *Service) ListAssignments(ctx context.Context, activeOnly bool) ([]assignment.AssignmentResponse, error) {
	assignments, err := s.assignmentRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]assignment.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		responses = append(responses, assignment.ToResponse(a))
	}
	return responses, nil
}

func (s *Service) getAssignment(ctx context.Context, id string) (assignment.AssignmentResponse, error) {
	a, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}
	return assignment.ToResponse(a), nil
}

func NewRosterService(
	db *database.DB,
	creatorRepo creator.CreatorRepository,
	assignmentRepo assignment.AssignmentRepository,
	userRepo user.UserRepository,
) *Service {
	return &Service{
		db:             db,
		creatorRepo:    creatorRepo,
		assignmentRepo: assignmentRepo,
		userRepo:       userRepo,
	}
}

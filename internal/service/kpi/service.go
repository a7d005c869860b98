package kpi

import (
	"context"

	"github.com/agencydesk/crm-backend-go/internal/domain/auth"
	"github.com/agencydesk/crm-backend-go/internal/domain/creator"
	"github.com/agencydesk/crm-backend-go/internal/domain/kpi"
	"github.com/agencydesk/crm-backend-go/internal/domain/user"
	"github.com/agencydesk/crm-backend-go/internal/pkg/validator"
)

type kpiService struct {
	kpiRepo     kpi.SnapshotRepository
	userRepo    user.UserRepository
	creatorRepo creator.CreatorRepository
}

// CreateSnapshot implements kpi.SnapshotService.
func (s *kpiService) CreateSnapshot(ctx context.Context, req kpi.CreateSnapshotRequest) (kpi.SnapshotResponse, error) {
	if err := req.Validate(); err != nil {
		return kpi.SnapshotResponse{}, err
	}

	chatter, err := s.userRepo.GetByID(ctx, req.ChatterID)
	if err != nil {
		return kpi.SnapshotResponse{}, err
	}
	if chatter.Role != user.RoleChatter {
		return kpi.SnapshotResponse{}, user.ErrChatterRoleRequired
	}
	if _, err := s.creatorRepo.GetByID(ctx, req.CreatorID); err != nil {
		return kpi.SnapshotResponse{}, err
	}

	date, _ := validator.IsValidDate(req.SnapshotDate)

	created, err := s.kpiRepo.Create(ctx, kpi.Snapshot{
		ChatterID:         req.ChatterID,
		CreatorID:         req.CreatorID,
		SnapshotDate:      date,
		RevenueCents:      req.RevenueCents,
		MessagesSent:      req.MessagesSent,
		NewSubs:           req.NewSubs,
		TipsReceivedCents: req.TipsReceivedCents,
		Source:            kpi.SourceManual,
	})
	if err != nil {
		return kpi.SnapshotResponse{}, err
	}

	return kpi.ToResponse(created), nil
}

// ListSnapshots implements kpi.SnapshotService.
func (s *kpiService) ListSnapshots(ctx context.Context, filter kpi.SnapshotFilter) ([]kpi.SnapshotResponse, error) {
	principal, err := auth.PrincipalFromContext(ctx)
	if err != nil {
		return nil, err
	}

	// Chatters only see their own numbers.
	if principal.Role == user.RoleChatter {
		filter.ChatterID = &principal.UserID
	}

	snapshots, err := s.kpiRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]kpi.SnapshotResponse, 0, len(snapshots))
	for _, snap := range snapshots {
		responses = append(responses, kpi.ToResponse(snap))
	}
	return responses, nil
}

func NewKPIService(
	kpiRepo kpi.SnapshotRepository,
	userRepo user.UserRepository,
	creatorRepo creator.CreatorRepository,
) kpi.SnapshotService {
	return &kpiService{
		kpiRepo:     kpiRepo,
		userRepo:    userRepo,
		creatorRepo: creatorRepo,
	}
}

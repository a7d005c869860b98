package user

import (
	"context"

	"github.com/agencydesk/crm-backend-go/internal/domain/auth"
	"github.com/agencydesk/crm-backend-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

type userService struct {
	userRepo user.UserRepository
}

// CreateUser implements user.UserService.
func (s *userService) CreateUser(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, err
	}
	hashStr := string(hash)

	if req.SupervisorID != nil {
		sup, err := s.userRepo.GetByID(ctx, *req.SupervisorID)
		if err != nil {
			return user.UserResponse{}, err
		}
		if !sup.IsSupervisor() {
			return user.UserResponse{}, user.ErrApproverRoleRequired
		}
	}

	created, err := s.userRepo.Create(ctx, user.User{
		Email:           req.Email,
		Name:            req.Name,
		PasswordHash:    &hashStr,
		Role:            user.Role(req.Role),
		Status:          user.StatusActive,
		SupervisorID:    req.SupervisorID,
		HourlyRateCents: req.HourlyRateCents,
		CommissionBps:   req.CommissionBps,
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	return user.ToResponse(created), nil
}

// GetUser implements user.UserService.
func (s *userService) GetUser(ctx context.Context, id string) (user.UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(u), nil
}

// UpdateUser implements user.UserService.
func (s *userService) UpdateUser(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	if err := s.userRepo.Update(ctx, req); err != nil {
		return user.UserResponse{}, err
	}

	return s.GetUser(ctx, req.ID)
}

// ListUsers implements user.UserService.
func (s *userService) ListUsers(ctx context.Context, role *user.Role) ([]user.UserResponse, error) {
	var (
		users []user.User
		err   error
	)
	if role != nil {
		users, err = s.userRepo.ListByRole(ctx, *role)
	} else {
		users, err = s.userRepo.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.ToResponse(u))
	}
	return responses, nil
}

// Me implements user.UserService.
func (s *userService) Me(ctx context.Context) (user.UserResponse, error) {
	principal, err := auth.PrincipalFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}
	return s.GetUser(ctx, principal.UserID)
}

func NewUserService(userRepo user.UserRepository) user.UserService {
	return &userService{userRepo: userRepo}
}

package user

import (
	"github.com/agencydesk/crm-backend-go/internal/pkg/validator"
)

type CreateUserRequest struct {
	Email           string  `json:"email"`
	Name            string  `json:"name"`
	Password        string  `json:"password"`
	Role            string  `json:"role"`
	SupervisorID    *string `json:"supervisor_id,omitempty"`
	HourlyRateCents *int64  `json:"hourly_rate_cents,omitempty"`
	CommissionBps   *int64  `json:"commission_bps,omitempty"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "must be at least 8 characters"})
	}
	if !validator.IsInSlice(r.Role, []string{string(RoleAdmin), string(RoleSupervisor), string(RoleChatter)}) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be 'admin', 'supervisor' or 'chatter'"})
	}
	if r.HourlyRateCents != nil && *r.HourlyRateCents < 0 {
		errs = append(errs, validator.ValidationError{Field: "hourly_rate_cents", Message: "must be non-negative"})
	}
	if r.CommissionBps != nil && (*r.CommissionBps < 0 || *r.CommissionBps > 10000) {
		errs = append(errs, validator.ValidationError{Field: "commission_bps", Message: "must be between 0 and 10000"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateUserRequest struct {
	ID              string
	Name            *string `json:"name,omitempty"`
	Status          *string `json:"status,omitempty"`
	SupervisorID    *string `json:"supervisor_id,omitempty"`
	HourlyRateCents *int64  `json:"hourly_rate_cents,omitempty"`
	CommissionBps   *int64  `json:"commission_bps,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{string(StatusActive), string(StatusInactive)}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'active' or 'inactive'"})
	}
	if r.HourlyRateCents != nil && *r.HourlyRateCents < 0 {
		errs = append(errs, validator.ValidationError{Field: "hourly_rate_cents", Message: "must be non-negative"})
	}
	if r.CommissionBps != nil && (*r.CommissionBps < 0 || *r.CommissionBps > 10000) {
		errs = append(errs, validator.ValidationError{Field: "commission_bps", Message: "must be between 0 and 10000"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UserResponse struct {
	ID              string  `json:"id"`
	Email           string  `json:"email"`
	Name            string  `json:"name"`
	Role            string  `json:"role"`
	Status          string  `json:"status"`
	SupervisorID    *string `json:"supervisor_id,omitempty"`
	SupervisorName  *string `json:"supervisor_name,omitempty"`
	HourlyRateCents *int64  `json:"hourly_rate_cents,omitempty"`
	CommissionBps   *int64  `json:"commission_bps,omitempty"`
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		Role:            string(u.Role),
		Status:          string(u.Status),
		SupervisorID:    u.SupervisorID,
		SupervisorName:  u.SupervisorName,
		HourlyRateCents: u.HourlyRateCents,
		CommissionBps:   u.CommissionBps,
	}
}

package assignment

import (
	"time"

	"github.com/agencydesk/crm-backend-go/internal/pkg/validator"
)

type AssignRequest struct {
	ChatterID string `json:"chatter_id"`
	CreatorID string `json:"creator_id"`
	IsPrimary bool   `json:"is_primary"`
}

func (r *AssignRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ChatterID) {
		errs = append(errs, validator.ValidationError{Field: "chatter_id", Message: "is required"})
	}
	if validator.IsEmpty(r.CreatorID) {
		errs = append(errs, validator.ValidationError{Field: "creator_id", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SetPrimaryRequest struct {
	AssignmentID string `json:"assignment_id"`
}

func (r *SetPrimaryRequest) Validate() error {
	if validator.IsEmpty(r.AssignmentID) {
		return validator.ValidationErrors{{Field: "assignment_id", Message: "is required"}}
	}
	return nil
}

type AssignmentResponse struct {
	ID                 string     `json:"id"`
	ChatterID          string     `json:"chatter_id"`
	ChatterName        *string    `json:"chatter_name,omitempty"`
	CreatorID          string     `json:"creator_id"`
	CreatorDisplayName *string    `json:"creator_display_name,omitempty"`
	IsPrimary          bool       `json:"is_primary"`
	AssignedAt         time.Time  `json:"assigned_at"`
	UnassignedAt       *time.Time `json:"unassigned_at,omitempty"`
}

func ToResponse(a Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:                 a.ID,
		ChatterID:          a.ChatterID,
		ChatterName:        a.ChatterName,
		CreatorID:          a.CreatorID,
		CreatorDisplayName: a.CreatorDisplayName,
		IsPrimary:          a.IsPrimary,
		AssignedAt:         a.AssignedAt,
		UnassignedAt:       a.UnassignedAt,
	}
}

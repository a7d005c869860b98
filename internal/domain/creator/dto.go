package creator

import (
	"github.com/agencydesk/crm-backend-go/internal/pkg/validator"
)

type CreateCreatorRequest struct {
	Platform    string `json:"platform"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

func (r *CreateCreatorRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Platform, []string{string(PlatformOnlyFans), string(PlatformFansly), string(PlatformOther)}) {
		errs = append(errs, validator.ValidationError{Field: "platform", Message: "must be 'onlyfans', 'fansly' or 'other'"})
	}
	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{Field: "username", Message: "is required"})
	}
	if validator.IsEmpty(r.DisplayName) {
		errs = append(errs, validator.ValidationError{Field: "display_name", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateCreatorRequest struct {
	ID          string
	DisplayName *string `json:"display_name,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func (r *UpdateCreatorRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.DisplayName != nil && validator.IsEmpty(*r.DisplayName) {
		errs = append(errs, validator.ValidationError{Field: "display_name", Message: "must not be empty"})
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{string(StatusActive), string(StatusInactive)}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'active' or 'inactive'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreatorResponse struct {
	ID          string `json:"id"`
	Platform    string `json:"platform"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Status      string `json:"status"`
}

func ToResponse(c Creator) CreatorResponse {
	return CreatorResponse{
		ID:          c.ID,
		Platform:    string(c.Platform),
		Username:    c.Username,
		DisplayName: c.DisplayName,
		Status:      string(c.Status),
	}
}

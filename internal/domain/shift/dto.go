package shift

import (
	"strings"
	"time"

	"github.com/agencydesk/crm-backend-go/internal/pkg/validator"
)

const maxNotesLength = 500

type ClockOutRequest struct {
	BreakMinutes *int    `json:"break_minutes,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Notes != nil && len(strings.TrimSpace(*r.Notes)) > maxNotesLength {
		errs = append(errs, validator.ValidationError{Field: "notes", Message: "must be at most 500 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// NormalizedBreakMinutes clamps the requested break at zero; absent means
// no break recorded.
func (r *ClockOutRequest) NormalizedBreakMinutes() *int {
	if r.BreakMinutes == nil {
		return nil
	}
	b := *r.BreakMinutes
	if b < 0 {
		b = 0
	}
	return &b
}

// NormalizedNotes trims and truncates the note, returning nil when blank.
func (r *ClockOutRequest) NormalizedNotes() *string {
	if r.Notes == nil {
		return nil
	}
	n := strings.TrimSpace(*r.Notes)
	if n == "" {
		return nil
	}
	if len(n) > maxNotesLength {
		n = n[:maxNotesLength]
	}
	return &n
}

type DenyShiftRequest struct {
	ID    string
	Notes *string `json:"notes,omitempty"`
}

type ShiftFilter struct {
	ChatterID    *string
	SupervisorID *string
	From         *time.Time
	To           *time.Time
	PendingOnly  bool
	Limit        int
}

type ShiftResponse struct {
	ID             string     `json:"id"`
	ChatterID      string     `json:"chatter_id"`
	ChatterName    *string    `json:"chatter_name,omitempty"`
	ClockIn        time.Time  `json:"clock_in"`
	ClockOut       *time.Time `json:"clock_out,omitempty"`
	BreakMinutes   int        `json:"break_minutes"`
	WorkedMinutes  int64      `json:"worked_minutes"`
	Notes          *string    `json:"notes,omitempty"`
	ApprovedByID   *string    `json:"approved_by_id,omitempty"`
	ApprovedByName *string    `json:"approved_by_name,omitempty"`
	ApprovedAt     *time.Time `json:"approved_at,omitempty"`
}

func ToResponse(s Shift) ShiftResponse {
	return ShiftResponse{
		ID:             s.ID,
		ChatterID:      s.ChatterID,
		ChatterName:    s.ChatterName,
		ClockIn:        s.ClockIn,
		ClockOut:       s.ClockOut,
		BreakMinutes:   s.BreakMinutes,
		WorkedMinutes:  s.WorkedMinutes(),
		Notes:          s.Notes,
		ApprovedByID:   s.ApprovedByID,
		ApprovedByName: s.ApprovedByName,
		ApprovedAt:     s.ApprovedAt,
	}
}

func ToResponses(shifts []Shift) []ShiftResponse {
	result := make([]ShiftResponse, 0, len(shifts))
	for _, s := range shifts {
		result = append(result, ToResponse(s))
	}
	return result
}

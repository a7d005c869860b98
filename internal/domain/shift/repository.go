package shift

import (
	"context"
	"time"
)

type ShiftRepository interface {
	Create(ctx context.Context, s Shift) (Shift, error)
	GetByID(ctx context.Context, id string) (Shift, error)

	// GetOpenShift returns the most recent open shift for a chatter, or nil.
	GetOpenShift(ctx context.Context, chatterID string) (*Shift, error)

	Update(ctx context.Context, s Shift) error
	List(ctx context.Context, filter ShiftFilter) ([]Shift, error)

	// ListApprovedClosedInRange returns approved shifts with
	// clockIn >= start and clockOut <= end, with the chatter's hourly rate
	// joined in. This is the payroll generation input.
	ListApprovedClosedInRange(ctx context.Context, start, end time.Time) ([]Shift, error)
}

// ShiftService defines business logic for shift operations
type ShiftService interface {
	// ClockIn opens a shift for the chatter; a no-op if one is already open.
	ClockIn(ctx context.Context) (ShiftResponse, error)

	// ClockOut closes the chatter's open shift.
	ClockOut(ctx context.Context, req ClockOutRequest) (ShiftResponse, error)

	// ListShifts returns shifts visible to the caller (supervisors see
	// their team, admins see everything, chatters see their own).
	ListShifts(ctx context.Context, filter ShiftFilter) ([]ShiftResponse, error)

	// ApproveShift signs off a closed shift. Supervisors may only approve
	// shifts of chatters on their team.
	ApproveShift(ctx context.Context, id string) (ShiftResponse, error)

	// DenyShift marks a pending shift as denied without approving it.
	DenyShift(ctx context.Context, req DenyShiftRequest) (ShiftResponse, error)
}

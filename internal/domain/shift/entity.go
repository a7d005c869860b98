package shift

import "time"

// Shift is one clock-in/clock-out session for a chatter. A shift is open
// while ClockOut is nil; payroll only counts shifts that are both closed
// and approved.
type Shift struct {
	ID           string
	ChatterID    string
	ClockIn      time.Time
	ClockOut     *time.Time
	BreakMinutes int
	Notes        *string
	ApprovedByID *string
	ApprovedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields
	ChatterName            *string
	ChatterSupervisorID    *string
	ChatterHourlyRateCents *int64
	ApprovedByName         *string
}

// IsOpen reports whether the chatter is still clocked in.
func (s *Shift) IsOpen() bool {
	return s.ClockOut == nil
}

// IsApproved reports whether a supervisor has signed off on the shift.
func (s *Shift) IsApproved() bool {
	return s.ApprovedAt != nil
}

// WorkedMinutes returns clocked minutes minus break, clamped at zero.
// Durations round to the nearest minute.
func (s *Shift) WorkedMinutes() int64 {
	if s.ClockOut == nil {
		return 0
	}
	raw := int64(s.ClockOut.Sub(s.ClockIn).Round(time.Minute) / time.Minute)
	if raw < 0 {
		raw = 0
	}
	worked := raw - int64(s.BreakMinutes)
	if worked < 0 {
		return 0
	}
	return worked
}

package assignment

import "time"

// Assignment links a chatter to a creator they chat for. Unassignment is a
// soft end-date so history survives; active means UnassignedAt is nil.
type Assignment struct {
	ID           string
	ChatterID    string
	CreatorID    string
	IsPrimary    bool
	AssignedAt   time.Time
	UnassignedAt *time.Time

	// Joined fields
	ChatterName        *string
	CreatorDisplayName *string
}

// IsActive reports whether the assignment is still in effect.
func (a *Assignment) IsActive() bool {
	return a.UnassignedAt == nil
}

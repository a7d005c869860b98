package user

import "time"

type Role string

const (
	RoleAdmin      Role = "admin"      // Full access, manages rules and payroll
	RoleSupervisor Role = "supervisor" // Approves shifts/payrolls for their team
	RoleChatter    Role = "chatter"    // Clocks shifts, earns commission and bonuses
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type User struct {
	ID              string
	Email           string
	Name            string
	PasswordHash    *string
	Role            Role
	Status          Status
	SupervisorID    *string
	HourlyRateCents *int64
	CommissionBps   *int64
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	SupervisorName *string
}

// IsAdmin checks if user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsSupervisor checks if user is a supervisor
func (u *User) IsSupervisor() bool {
	return u.Role == RoleSupervisor
}

// CanApprove checks if user can approve shifts and payrolls
func (u *User) CanApprove() bool {
	return u.Role == RoleSupervisor || u.Role == RoleAdmin
}

// EffectiveHourlyRateCents returns the hourly rate, defaulting to 0 for
// users without one configured.
func (u *User) EffectiveHourlyRateCents() int64 {
	if u.HourlyRateCents == nil {
		return 0
	}
	return *u.HourlyRateCents
}

// EffectiveCommissionBps returns the commission rate in basis points,
// defaulting to 0.
func (u *User) EffectiveCommissionBps() int64 {
	if u.CommissionBps == nil {
		return 0
	}
	return *u.CommissionBps
}

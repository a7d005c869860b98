package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUserEmailExists         = errors.New("email already registered")
	ErrInvalidEmailFormat      = errors.New("invalid email format")
	ErrInvalidPasswordLength   = errors.New("password must be at least 8 characters")
	ErrAdminPrivilegeRequired  = errors.New("admin privilege required")
	ErrApproverRoleRequired    = errors.New("supervisor or admin role required")
	ErrChatterRoleRequired     = errors.New("chatter role required")
	ErrNotTeamSupervisor       = errors.New("chatter is not on this supervisor's team")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)

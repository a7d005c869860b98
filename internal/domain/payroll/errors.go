package payroll

import "errors"

var (
	ErrPayrollNotFound    = errors.New("payroll not found")
	ErrPayPeriodNotFound  = errors.New("pay period not found")
	ErrInvalidRange       = errors.New("invalid pay period range")
	ErrPayrollNotDraft    = errors.New("payroll is not in draft status")
	ErrPayrollNotApproved = errors.New("payroll is not approved")
	ErrPayrollPaid        = errors.New("payroll has already been paid")
)

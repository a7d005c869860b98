package shift

import "errors"

var (
	ErrShiftNotFound        = errors.New("shift not found")
	ErrNoOpenShift          = errors.New("no open shift to clock out of")
	ErrShiftAlreadyApproved = errors.New("shift already approved")
	ErrShiftStillOpen       = errors.New("shift is still open")
)

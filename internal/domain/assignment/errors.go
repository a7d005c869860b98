package assignment

import "errors"

var (
	ErrAssignmentNotFound   = errors.New("assignment not found")
	ErrAssignmentHistorical = errors.New("assignment has already been unassigned")
)

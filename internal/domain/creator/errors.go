package creator

import "errors"

var (
	ErrCreatorNotFound = errors.New("creator not found")
	ErrCreatorExists   = errors.New("creator already exists for this platform and username")
)

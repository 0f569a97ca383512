package gallery

import "errors"

var (
	// ErrNotFound is returned when a file or folder does not exist
	ErrNotFound = errors.New("not found")
	// ErrIllegalPath is returned when a folder resolves outside the gallery root
	ErrIllegalPath = errors.New("illegal path access")
	// ErrInvalidInput is returned when a request path cannot be decoded or is empty
	ErrInvalidInput = errors.New("invalid input")
)

// internal/domain/record/errors.go

package record

import (
	"errors"
)

// Common errors
var (
	// ErrDuplicate is returned when a record id already exists in the collection
	ErrDuplicate = errors.New("duplicate record")

	// ErrInvalid is returned for input that cannot be interpreted as records or filters
	ErrInvalid = errors.New("invalid input")
)

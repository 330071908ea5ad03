package domain

import "errors"

var (
	// ErrInvalidConfiguration signals search parameters that must be rejected
	// outright: field weights that do not sum to 1, a non-positive page size,
	// an unknown sort mode, or a threshold outside (0,1].
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrInvalidRecord signals a record payload that failed validation.
	ErrInvalidRecord = errors.New("invalid record")
	// ErrRecordNotFound signals a missing record.
	ErrRecordNotFound = errors.New("record not found")
)

package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound             = errors.New("not found")
	ErrContentUnavailable   = errors.New("content unavailable")
	ErrConfirmationRequired = errors.New("confirmation required")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ContentError is a failed content request: a non-2xx status or a
// transport failure. Status is 0 when no response was received.
type ContentError struct {
	Path   string
	Status int
	Err    error
}

func (e *ContentError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("content %s: HTTP %d", e.Path, e.Status)
	}
	return fmt.Sprintf("content %s: %v", e.Path, e.Err)
}

func (e *ContentError) Unwrap() error {
	return e.Err
}

func (e *ContentError) Is(target error) bool {
	return target == ErrContentUnavailable
}

// PersistError is a failed write to local storage. The in-memory state
// stays authoritative for the session.
type PersistError struct {
	Key string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Key, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// IsUnavailable reports whether err should be shown as the "data
// unavailable" state rather than a generic failure
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrContentUnavailable) || errors.Is(err, ErrNotFound)
}

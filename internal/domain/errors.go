package domain

import "errors"

// Domain errors
var (
	ErrHighlightNotFound = errors.New("highlight not found")
	ErrNoSelection       = errors.New("no active selection")
	ErrInvalidPage       = errors.New("page number out of range")
	ErrMediaNotFound     = errors.New("media not found")
	ErrStaleContext      = errors.New("stale context")
)

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

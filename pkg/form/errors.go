package form

import "errors"

var (
	// ErrInvalidSpec is returned when a form table is malformed.
	ErrInvalidSpec = errors.New("invalid form spec")

	// ErrMissingElement is returned when the page lacks an element a spec references.
	ErrMissingElement = errors.New("form element missing from page")

	// ErrUnknownField is returned when an operation names a field that was never registered.
	ErrUnknownField = errors.New("unknown form field")

	// ErrUnknownTarget is returned when an event targets an element without listeners.
	ErrUnknownTarget = errors.New("unknown event target")
)

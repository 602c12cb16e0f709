package dom

import "errors"

var (
	// ErrElementNotFound is returned when an id does not resolve to an element.
	ErrElementNotFound = errors.New("element not found")

	// ErrDuplicateID is returned when an element id is registered twice.
	ErrDuplicateID = errors.New("duplicate element id")
)

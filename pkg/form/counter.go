package form

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Counter colors.
const (
	ColorAlert   = "#e74c3c"
	ColorWarning = "#f39c12"
	ColorNeutral = "#7f8c8d"
)

// Remaining returns how many characters are left before max.
// It goes negative once the value is over the limit.
func (c *CounterSpec) Remaining(raw string) int {
	return c.Max - utf8.RuneCountInString(raw)
}

// Color returns the counter color for the remaining count.
func (c *CounterSpec) Color(remaining int) string {
	switch {
	case remaining < c.AlertBelow:
		return ColorAlert
	case remaining < c.WarnBelow:
		return ColorWarning
	default:
		return ColorNeutral
	}
}

// CharacterCounter keeps the counter element in step with the field on every
// input event. The reset returns it to max in the neutral color.
func (e *Engine) CharacterCounter(c *CounterSpec) error {
	control, err := e.doc.Lookup(c.FieldID)
	if err != nil {
		return fmt.Errorf("%w: counter field %q: %w", ErrMissingElement, c.FieldID, err)
	}
	counter, err := e.doc.Lookup(c.CounterID)
	if err != nil {
		return fmt.Errorf("%w: counter %q: %w", ErrMissingElement, c.CounterID, err)
	}

	update := func() {
		remaining := c.Remaining(control.Value())
		counter.SetText(strconv.Itoa(remaining))
		counter.SetStyle("color", c.Color(remaining))
	}

	// The display is rewritten on every input, even when the count matches
	// what the page held before.
	e.on(c.FieldID, EventInput, func() {
		update()
		counter.Touch()
	})
	e.restorers = append(e.restorers, update)
	e.resetters = append(e.resetters, func() {
		counter.SetText(strconv.Itoa(c.Max))
		counter.SetStyle("color", ColorNeutral)
		counter.Touch()
	})
	return nil
}

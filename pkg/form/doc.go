// Package form implements a declarative form validation engine over a
// dom.Document.
//
// A page declares its fields once, as a list of FieldSpec values (usually
// decoded from a YAML form table with Load). The Engine wires each field to
// the page's events, validates values with first-failure-wins rules, and
// keeps every .form-group's error/success state equal to the outcome of that
// field's most recent validation.
//
// Event model:
//
//   - blur (change for selects, radio groups and checkboxes) always revalidates;
//   - input revalidates only once the raw value is non-empty, so a field does
//     not flash an error on its first keystroke;
//   - submit validates every field without short-circuiting, then hides the
//     form, reveals the success message and schedules the deferred reset.
//
// The engine is single-threaded: one Engine and its Document belong to one
// event loop. The deferred reset is handed to a Scheduler; Deferred is a
// scheduler that lets the owner of the loop run the callback itself.
//
// Example:
//
//	spec, err := form.Load(r)
//	if err != nil {
//		return err
//	}
//	doc := buildPage(spec) // markup with the ids the spec references
//	deferred := new(form.Deferred)
//	engine, err := form.Bind(doc, spec, form.WithScheduler(deferred))
//	if err != nil {
//		return err
//	}
//	if engine.Submit() {
//		_ = deferred.Wait(ctx)
//	}
package form

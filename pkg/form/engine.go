package form

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/formkit/pkg/dom"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Class names the engine reads and writes.
const (
	ClassFormGroup    = "form-group"
	ClassError        = "error"
	ClassSuccess      = "success"
	ClassErrorMessage = "error-message"
	ClassShow         = "show"
)

// Engine validates one form on one page instance.
// It is not safe for concurrent use.
type Engine struct {
	doc     *dom.Document
	spec    *FormSpec
	form    *dom.Element
	success *dom.Element

	fields    []*boundField
	byID      map[string]*boundField
	acks      []boundAck
	listeners map[listenerKey][]func()
	targets   map[string]bool
	restorers []func()
	resetters []func()

	scheduler  Scheduler
	resetDelay time.Duration
	logger     *slog.Logger

	failures validator.ValidationErrors
}

type boundField struct {
	spec    *FieldSpec
	control *dom.Element
	group   *dom.Element
	errEl   *dom.Element
}

type boundAck struct {
	spec  *Acknowledgement
	box   *dom.Element
	group *dom.Element
	errEl *dom.Element
}

// BindOption configures an Engine.
type BindOption func(*Engine)

// WithScheduler sets the scheduler used for the post-submit reset.
func WithScheduler(s Scheduler) BindOption {
	return func(e *Engine) {
		if s != nil {
			e.scheduler = s
		}
	}
}

// WithResetDelay overrides the form's reset delay.
func WithResetDelay(d time.Duration) BindOption {
	return func(e *Engine) {
		if d > 0 {
			e.resetDelay = d
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) BindOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Bind wires the engine to a page: every field, counter, acknowledgement,
// dependent select, toggle and file input declared by spec must be present in
// doc. The spec must already be normalized.
func Bind(doc *dom.Document, spec *FormSpec, opts ...BindOption) (*Engine, error) {
	form, err := doc.Lookup(spec.FormID)
	if err != nil {
		return nil, fmt.Errorf("%w: form: %w", ErrMissingElement, err)
	}
	success, err := doc.Lookup(spec.SuccessID)
	if err != nil {
		return nil, fmt.Errorf("%w: success message: %w", ErrMissingElement, err)
	}

	e := &Engine{
		doc:        doc,
		spec:       spec,
		form:       form,
		success:    success,
		byID:       make(map[string]*boundField, len(spec.Fields)),
		listeners:  make(map[listenerKey][]func()),
		targets:    make(map[string]bool),
		scheduler:  new(Deferred),
		resetDelay: spec.ResetDelay,
		logger:     slog.New(slog.DiscardHandler),
	}
	if e.resetDelay <= 0 {
		e.resetDelay = DefaultResetDelay
	}
	for _, opt := range opts {
		opt(e)
	}

	for i := range spec.Fields {
		if err := e.RegisterField(&spec.Fields[i]); err != nil {
			return nil, err
		}
	}
	for i := range spec.Counters {
		if err := e.CharacterCounter(&spec.Counters[i]); err != nil {
			return nil, err
		}
	}
	for i := range spec.Acknowledgements {
		if err := e.bindAcknowledgement(&spec.Acknowledgements[i]); err != nil {
			return nil, err
		}
	}
	for i := range spec.Dependents {
		if err := e.bindDependent(&spec.Dependents[i]); err != nil {
			return nil, err
		}
	}
	for i := range spec.Toggles {
		if err := e.bindToggle(&spec.Toggles[i]); err != nil {
			return nil, err
		}
	}
	for i := range spec.Files {
		if err := e.bindFile(&spec.Files[i]); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Spec returns the bound form table.
func (e *Engine) Spec() *FormSpec { return e.spec }

// Document returns the page the engine is bound to.
func (e *Engine) Document() *dom.Document { return e.doc }

// Form returns the form element.
func (e *Engine) Form() *dom.Element { return e.form }

// RegisterField attaches the field's listeners: blur (change for choices)
// always revalidates, input revalidates only once the control holds a value.
func (e *Engine) RegisterField(field *FieldSpec) error {
	if _, dup := e.byID[field.ID]; dup {
		return nil
	}
	b, err := e.resolve(field)
	if err != nil {
		return err
	}
	e.fields = append(e.fields, b)
	e.byID[field.ID] = b

	trigger := EventBlur
	if field.Kind.choice() {
		trigger = EventChange
	}
	e.on(field.ID, trigger, func() { e.Validate(field) })
	e.on(field.ID, EventInput, func() {
		if b.control.FormValue() != "" {
			e.Validate(field)
		}
	})
	return nil
}

func (e *Engine) resolve(field *FieldSpec) (*boundField, error) {
	control, err := e.doc.Lookup(field.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: field %q: %w", ErrMissingElement, field.ID, err)
	}
	group := control.Closest(ClassFormGroup)
	if group == nil {
		return nil, fmt.Errorf("%w: field %q has no .%s container", ErrMissingElement, field.ID, ClassFormGroup)
	}
	errEl, err := e.doc.Lookup(field.ErrorID)
	if err != nil {
		return nil, fmt.Errorf("%w: field %q error element: %w", ErrMissingElement, field.ID, err)
	}
	return &boundField{spec: field, control: control, group: group, errEl: errEl}, nil
}

// Validate checks the field's current control value and applies the result
// to its group and error element.
func (e *Engine) Validate(field *FieldSpec) ValidationResult {
	b, ok := e.byID[field.ID]
	if !ok {
		resolved, err := e.resolve(field)
		if err != nil {
			e.logger.Warn("validating unbound field", slog.String("field", field.ID), slog.Any("error", err))
			return field.Check("")
		}
		b = resolved
	}
	result := field.Check(b.control.FormValue())
	ApplyResult(b.group, b.errEl, result)
	return result
}

// ApplyResult reflects a validation result on a form group and its error
// element. Nil elements are skipped.
func ApplyResult(group, errEl *dom.Element, result ValidationResult) {
	if result.Valid {
		if group != nil {
			group.RemoveClass(ClassError).AddClass(ClassSuccess)
		}
		if errEl != nil {
			errEl.SetText("").Hide()
		}
		return
	}
	if group != nil {
		group.RemoveClass(ClassSuccess).AddClass(ClassError)
	}
	if errEl != nil {
		errEl.SetText(result.Message).Show()
	}
}

// Submit validates every field without short-circuiting, then every
// acknowledgement. On success the form is hidden, the success message shown
// and the reset scheduled.
func (e *Engine) Submit() bool {
	// Every check runs before Apply sees the results, so the first failure
	// never hides the others.
	rules := make([]validator.Rule, 0, len(e.fields)+len(e.acks))
	for _, b := range e.fields {
		rules = append(rules, resultRule(b.spec.ID, e.Validate(b.spec)))
	}
	for _, a := range e.acks {
		rules = append(rules, resultRule(a.spec.ID, e.checkAcknowledgement(a)))
	}

	e.failures = validator.ExtractValidationErrors(validator.Apply(rules...))
	if !e.failures.IsEmpty() {
		e.logger.Debug("form submit rejected",
			slog.String("form", e.spec.Slug),
			slog.Any("invalid", e.failures.Fields()),
		)
		return false
	}

	e.form.Hide()
	e.success.AddClass(ClassShow)
	e.scheduler.AfterFunc(e.resetDelay, e.reset)
	e.logger.Debug("form submitted",
		slog.String("form", e.spec.Slug),
		slog.Duration("reset_delay", e.resetDelay),
	)
	return true
}

// reset clears values and visual state. The form stays hidden and the
// success message stays shown.
func (e *Engine) reset() {
	e.form.Reset()
	for _, g := range e.form.QueryClass(ClassFormGroup) {
		g.RemoveClass(ClassSuccess, ClassError)
	}
	for _, fn := range e.resetters {
		fn()
	}
}

// Dispatch runs the listeners registered for the event, in registration order.
func (e *Engine) Dispatch(ev Event) error {
	if !e.targets[ev.Target] {
		return fmt.Errorf("%w: %q", ErrUnknownTarget, ev.Target)
	}
	for _, fn := range e.listeners[listenerKey{target: ev.Target, typ: ev.Type}] {
		fn()
	}
	return nil
}

// Listens reports whether the element with id has any listener.
func (e *Engine) Listens(id string) bool { return e.targets[id] }

// Restore recomputes state derived from control values: counters, dependent
// options, toggled sections and file labels. It does not validate.
func (e *Engine) Restore() {
	for _, fn := range e.restorers {
		fn()
	}
}

func (e *Engine) on(target string, typ EventType, fn func()) {
	key := listenerKey{target: target, typ: typ}
	e.listeners[key] = append(e.listeners[key], fn)
	e.targets[target] = true
}

func (e *Engine) bindAcknowledgement(ack *Acknowledgement) error {
	box, err := e.doc.Lookup(ack.ID)
	if err != nil {
		return fmt.Errorf("%w: acknowledgement %q: %w", ErrMissingElement, ack.ID, err)
	}
	a := boundAck{spec: ack, box: box}
	if ack.Inline {
		a.group = box.Closest(ClassFormGroup)
		a.errEl = e.doc.Get(ack.ErrorID)
	}
	e.acks = append(e.acks, a)
	return nil
}

func (e *Engine) checkAcknowledgement(a boundAck) ValidationResult {
	result := ValidationResult{Valid: a.box.Checked()}
	if !result.Valid {
		result.Message = a.spec.Message
	}
	if a.spec.Inline {
		ApplyResult(a.group, a.errEl, result)
		return result
	}
	if !result.Valid {
		e.doc.Alert(a.spec.Message)
	}
	return result
}

// Failures returns the fields and acknowledgements rejected by the last
// Submit, in form order. It is empty before a submit and after a valid one.
func (e *Engine) Failures() validator.ValidationErrors { return e.failures }

func resultRule(field string, result ValidationResult) validator.Rule {
	return validator.Rule{
		Check: func() bool { return result.Valid },
		Error: validator.ValidationError{
			Field:             field,
			Message:           result.Message,
			TranslationKey:    "validation.form_field",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

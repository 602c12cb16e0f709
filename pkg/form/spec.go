package form

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Kind is the control type of a field.
type Kind string

const (
	KindText       Kind = "text"
	KindEmail      Kind = "email"
	KindPhone      Kind = "phone"
	KindSelect     Kind = "select"
	KindTextarea   Kind = "textarea"
	KindRadioGroup Kind = "radio-group"
	KindCheckbox   Kind = "checkbox"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindText, KindEmail, KindPhone, KindSelect, KindTextarea, KindRadioGroup, KindCheckbox:
		return true
	}
	return false
}

// choice kinds hold a selection rather than typed text.
func (k Kind) choice() bool {
	return k == KindSelect || k == KindRadioGroup || k == KindCheckbox
}

// Pattern names a built-in format check.
type Pattern string

const (
	PatternNone  Pattern = ""
	PatternName  Pattern = "name"
	PatternEmail Pattern = "email"
	PatternPhone Pattern = "phone"
)

// Constraints are the rules applied to a field's trimmed value.
// Zero MinLength/MaxLength disables the bound.
type Constraints struct {
	Required  bool    `yaml:"required"`
	MinLength int     `yaml:"min_length"`
	MaxLength int     `yaml:"max_length"`
	Pattern   Pattern `yaml:"pattern"`
	Regex     string  `yaml:"regex"`
}

// Messages override the generated failure message per check.
type Messages struct {
	Required  string `yaml:"required"`
	MinLength string `yaml:"min_length"`
	MaxLength string `yaml:"max_length"`
	Pattern   string `yaml:"pattern"`
}

// Option is one choice of a select or radio group.
type Option struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// FieldSpec declares one field's identity and validation rules.
type FieldSpec struct {
	ID          string   `yaml:"id"`
	Label       string   `yaml:"label"`
	Kind        Kind     `yaml:"kind"`
	Placeholder string   `yaml:"placeholder"`
	Rows        int      `yaml:"rows"`
	Options     []Option `yaml:"options"`
	ErrorID     string   `yaml:"error_id"`

	Constraints `yaml:",inline"`
	Messages    Messages `yaml:"messages"`

	regex *regexp.Regexp
}

// ValidationResult is the outcome of one validation call.
type ValidationResult struct {
	Valid   bool
	Message string
}

// Check validates a raw control value against the field's constraints.
// Text values are trimmed before every check; choices are compared as-is.
// The first failing check wins.
func (f *FieldSpec) Check(raw string) ValidationResult {
	var rules []validator.Rule

	switch {
	case f.Kind == KindCheckbox:
		if !f.Required {
			return ValidationResult{Valid: true}
		}
		rules = append(rules, validator.Checked(f.ID, raw != "").WithMessage(f.requiredMessage()))
	case f.Kind.choice():
		if !f.Required {
			return ValidationResult{Valid: true}
		}
		rules = append(rules, validator.RequiredChoice(f.ID, raw).WithMessage(f.requiredMessage()))
	default:
		value := strings.TrimSpace(raw)
		if value == "" && !f.Required {
			return ValidationResult{Valid: true}
		}
		rules = f.textRules(value)
	}

	verrs := validator.ExtractValidationErrors(validator.First(rules...))
	if verrs.IsEmpty() {
		return ValidationResult{Valid: true}
	}
	return ValidationResult{Message: verrs[0].Message}
}

func (f *FieldSpec) textRules(value string) []validator.Rule {
	rules := make([]validator.Rule, 0, 4)
	if f.Required {
		rules = append(rules, validator.Required(f.ID, value).WithMessage(f.requiredMessage()))
	}
	if f.MinLength > 0 {
		rules = append(rules, validator.MinLen(f.ID, value, f.MinLength).WithMessage(f.minLengthMessage()))
	}
	if f.MaxLength > 0 {
		rules = append(rules, validator.MaxLen(f.ID, value, f.MaxLength).WithMessage(f.maxLengthMessage()))
	}
	if rule, ok := f.patternRule(value); ok {
		rules = append(rules, rule.WithMessage(f.patternMessage()))
	}
	return rules
}

func (f *FieldSpec) patternRule(value string) (validator.Rule, bool) {
	if f.regex != nil {
		return validator.MatchesPattern(f.ID, value, f.regex, strings.ToLower(f.Label)), true
	}
	switch f.pattern() {
	case PatternName:
		return validator.ValidPersonName(f.ID, value), true
	case PatternEmail:
		return validator.ValidEmail(f.ID, value), true
	case PatternPhone:
		return validator.ValidPhone(f.ID, value), true
	}
	return validator.Rule{}, false
}

// pattern resolves the effective format check; email and phone kinds imply theirs.
func (f *FieldSpec) pattern() Pattern {
	if f.Pattern != PatternNone {
		return f.Pattern
	}
	switch f.Kind {
	case KindEmail:
		return PatternEmail
	case KindPhone:
		return PatternPhone
	}
	return PatternNone
}

func (f *FieldSpec) requiredMessage() string {
	if f.Messages.Required != "" {
		return f.Messages.Required
	}
	if f.Kind.choice() && f.Kind != KindCheckbox {
		return "Please select " + article(f.Label)
	}
	return f.Label + " is required"
}

func (f *FieldSpec) minLengthMessage() string {
	if f.Messages.MinLength != "" {
		return f.Messages.MinLength
	}
	return fmt.Sprintf("%s must be at least %d characters", f.Label, f.MinLength)
}

func (f *FieldSpec) maxLengthMessage() string {
	if f.Messages.MaxLength != "" {
		return f.Messages.MaxLength
	}
	return fmt.Sprintf("%s cannot exceed %d characters", f.Label, f.MaxLength)
}

func (f *FieldSpec) patternMessage() string {
	if f.Messages.Pattern != "" {
		return f.Messages.Pattern
	}
	switch f.pattern() {
	case PatternName:
		return f.Label + " can only contain letters and spaces"
	case PatternEmail:
		return "Please enter a valid email address"
	case PatternPhone:
		return "Please enter a valid phone number"
	}
	return "Please enter a valid " + strings.ToLower(f.Label)
}

func article(label string) string {
	label = strings.ToLower(label)
	if label != "" && strings.ContainsRune("aeiou", rune(label[0])) {
		return "an " + label
	}
	return "a " + label
}

// CounterSpec declares a remaining-characters counter for a textarea.
// The counter turns the alert color below AlertBelow remaining characters and
// the warning color below WarnBelow.
type CounterSpec struct {
	FieldID    string `yaml:"field"`
	CounterID  string `yaml:"counter_id"`
	Max        int    `yaml:"max"`
	AlertBelow int    `yaml:"alert_below"`
	WarnBelow  int    `yaml:"warn_below"`
}

// Acknowledgement is a checkbox that must be ticked for submit to proceed.
// It is only checked at submit time. Unless Inline is set, an unticked box
// raises a blocking alert instead of an inline field error.
type Acknowledgement struct {
	ID      string `yaml:"id"`
	Label   string `yaml:"label"`
	Message string `yaml:"message"`
	Inline  bool   `yaml:"inline"`
	ErrorID string `yaml:"error_id"`
}

// DependentSpec rebuilds Child's options whenever Parent changes.
type DependentSpec struct {
	Parent      string              `yaml:"parent"`
	Child       string              `yaml:"child"`
	Placeholder string              `yaml:"placeholder"`
	Options     map[string][]string `yaml:"options"`
}

// ToggleSpec shows Section while Field's value equals Value. The section
// holds an optional image and caption.
type ToggleSpec struct {
	Field   string `yaml:"field"`
	Value   string `yaml:"value"`
	Section string `yaml:"section"`
	Image   string `yaml:"image"`
	Caption string `yaml:"caption"`
}

// FileSpec declares a file picker whose label reports the chosen file.
type FileSpec struct {
	ID          string `yaml:"id"`
	Label       string `yaml:"label"`
	LabelID     string `yaml:"label_id"`
	Accept      string `yaml:"accept"`
	MaxBytes    int64  `yaml:"max_bytes"`
	Placeholder string `yaml:"placeholder"`
	TooLarge    string `yaml:"too_large"`
}

// FormSpec is a page's complete declarative form table.
type FormSpec struct {
	Slug           string        `yaml:"slug"`
	Title          string        `yaml:"title"`
	Intro          string        `yaml:"intro"`
	FormID         string        `yaml:"form_id"`
	SubmitLabel    string        `yaml:"submit_label"`
	SuccessID      string        `yaml:"success_id"`
	SuccessTitle   string        `yaml:"success_title"`
	SuccessMessage string        `yaml:"success_message"`
	ResetDelay     time.Duration `yaml:"reset_delay"`

	Fields           []FieldSpec       `yaml:"fields"`
	Counters         []CounterSpec     `yaml:"counters"`
	Acknowledgements []Acknowledgement `yaml:"acknowledgements"`
	Dependents       []DependentSpec   `yaml:"dependents"`
	Toggles          []ToggleSpec      `yaml:"toggles"`
	Files            []FileSpec        `yaml:"files"`
}

// Field returns the field declared with id.
func (s *FormSpec) Field(id string) (*FieldSpec, bool) {
	for i := range s.Fields {
		if s.Fields[i].ID == id {
			return &s.Fields[i], true
		}
	}
	return nil, false
}

// Counter returns the counter attached to the field, if any.
func (s *FormSpec) Counter(fieldID string) (*CounterSpec, bool) {
	for i := range s.Counters {
		if s.Counters[i].FieldID == fieldID {
			return &s.Counters[i], true
		}
	}
	return nil, false
}

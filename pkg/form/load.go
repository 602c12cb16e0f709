package form

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultResetDelay is the pause between a successful submit and the reset.
	DefaultResetDelay = 100 * time.Millisecond

	DefaultCounterID   = "charCount"
	DefaultSuccessID   = "successMessage"
	DefaultSubmitLabel = "Submit"

	// DefaultMaxFileBytes caps file inputs at 5 MiB.
	DefaultMaxFileBytes int64 = 5 << 20
	DefaultFilePrompt         = "Choose file or drag here"
	DefaultFileTooLarge       = "File too large (max 5MB)"
)

// Load decodes a YAML form table, applies defaults and validates it.
// Unknown keys are rejected.
func Load(r io.Reader) (*FormSpec, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var spec FormSpec
	if err := dec.Decode(&spec); err != nil {
		return nil, errors.Join(ErrInvalidSpec, err)
	}
	if err := spec.Normalize(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// LoadFS loads every *.yaml file in dir of fsys, keyed by slug.
func LoadFS(fsys fs.FS, dir string) (map[string]*FormSpec, error) {
	paths, err := fs.Glob(fsys, path.Join(dir, "*.yaml"))
	if err != nil {
		return nil, errors.Join(ErrInvalidSpec, err)
	}

	specs := make(map[string]*FormSpec, len(paths))
	for _, name := range paths {
		spec, err := loadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if _, dup := specs[spec.Slug]; dup {
			return nil, fmt.Errorf("%w: duplicate slug %q in %s", ErrInvalidSpec, spec.Slug, name)
		}
		specs[spec.Slug] = spec
	}
	return specs, nil
}

func loadFile(fsys fs.FS, name string) (*FormSpec, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Normalize fills defaults, compiles custom patterns and checks the table is
// self-consistent. It is idempotent.
func (s *FormSpec) Normalize() error {
	if s.Slug == "" {
		return fmt.Errorf("%w: slug is required", ErrInvalidSpec)
	}
	if s.FormID == "" {
		return fmt.Errorf("%w: form_id is required", ErrInvalidSpec)
	}
	if s.SuccessID == "" {
		s.SuccessID = DefaultSuccessID
	}
	if s.SubmitLabel == "" {
		s.SubmitLabel = DefaultSubmitLabel
	}
	if s.ResetDelay <= 0 {
		s.ResetDelay = DefaultResetDelay
	}

	ids := make(map[string]bool)
	claim := func(id string) error {
		if id == "" {
			return fmt.Errorf("%w: empty id", ErrInvalidSpec)
		}
		if ids[id] {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidSpec, id)
		}
		ids[id] = true
		return nil
	}

	for i := range s.Fields {
		f := &s.Fields[i]
		if err := claim(f.ID); err != nil {
			return err
		}
		if err := f.normalize(); err != nil {
			return err
		}
	}

	for i := range s.Counters {
		c := &s.Counters[i]
		if _, ok := s.Field(c.FieldID); !ok {
			return fmt.Errorf("%w: counter for %q", ErrUnknownField, c.FieldID)
		}
		if c.CounterID == "" {
			c.CounterID = DefaultCounterID
		}
		if c.Max <= 0 {
			return fmt.Errorf("%w: counter %q needs a positive max", ErrInvalidSpec, c.CounterID)
		}
		if c.AlertBelow > c.WarnBelow {
			return fmt.Errorf("%w: counter %q alert threshold above warning threshold", ErrInvalidSpec, c.CounterID)
		}
	}

	for i := range s.Acknowledgements {
		a := &s.Acknowledgements[i]
		if err := claim(a.ID); err != nil {
			return err
		}
		if a.ErrorID == "" {
			a.ErrorID = a.ID + "Error"
		}
		if a.Message == "" {
			a.Message = "Please agree to the " + a.Label
		}
	}

	for _, d := range s.Dependents {
		for _, id := range []string{d.Parent, d.Child} {
			f, ok := s.Field(id)
			if !ok {
				return fmt.Errorf("%w: dependent options reference %q", ErrUnknownField, id)
			}
			if f.Kind != KindSelect {
				return fmt.Errorf("%w: dependent options need select fields, %q is %s", ErrInvalidSpec, id, f.Kind)
			}
		}
	}

	for _, t := range s.Toggles {
		if _, ok := s.Field(t.Field); !ok {
			return fmt.Errorf("%w: toggle on %q", ErrUnknownField, t.Field)
		}
		if t.Section == "" {
			return fmt.Errorf("%w: toggle on %q has no section", ErrInvalidSpec, t.Field)
		}
	}

	for i := range s.Files {
		fl := &s.Files[i]
		if err := claim(fl.ID); err != nil {
			return err
		}
		if fl.LabelID == "" {
			fl.LabelID = fl.ID + "Name"
		}
		if fl.MaxBytes <= 0 {
			fl.MaxBytes = DefaultMaxFileBytes
		}
		if fl.Placeholder == "" {
			fl.Placeholder = DefaultFilePrompt
		}
		if fl.TooLarge == "" {
			fl.TooLarge = DefaultFileTooLarge
		}
	}

	return nil
}

func (f *FieldSpec) normalize() error {
	if !f.Kind.Valid() {
		return fmt.Errorf("%w: field %q has unknown kind %q", ErrInvalidSpec, f.ID, f.Kind)
	}
	switch f.Pattern {
	case PatternNone, PatternName, PatternEmail, PatternPhone:
	default:
		return fmt.Errorf("%w: field %q has unknown pattern %q", ErrInvalidSpec, f.ID, f.Pattern)
	}
	if f.Label == "" {
		f.Label = f.ID
	}
	if f.ErrorID == "" {
		f.ErrorID = f.ID + "Error"
	}
	if f.MinLength < 0 || f.MaxLength < 0 || (f.MaxLength > 0 && f.MinLength > f.MaxLength) {
		return fmt.Errorf("%w: field %q has inconsistent length bounds", ErrInvalidSpec, f.ID)
	}
	if f.Regex != "" && f.regex == nil {
		re, err := regexp.Compile(f.Regex)
		if err != nil {
			return errors.Join(fmt.Errorf("%w: field %q regex", ErrInvalidSpec, f.ID), err)
		}
		f.regex = re
	}
	if f.Kind == KindRadioGroup && len(f.Options) == 0 {
		return fmt.Errorf("%w: radio group %q has no options", ErrInvalidSpec, f.ID)
	}
	return nil
}

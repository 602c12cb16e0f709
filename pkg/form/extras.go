package form

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/dmitrymomot/formkit/pkg/dom"
)

// File inputs never carry their content to the engine; the page loader
// records the chosen file's name and size on the input as attributes.
const (
	AttrFileName = "data-file-name"
	AttrFileSize = "data-file-size"
)

// File label colors.
const (
	ColorFilePrompt = "#2c3e50"
	ColorFileChosen = "#2ecc71"
)

// bindDependent rebuilds the child select's options from the parent's value.
// A parent change clears the child's selection.
func (e *Engine) bindDependent(d *DependentSpec) error {
	parent, err := e.doc.Lookup(d.Parent)
	if err != nil {
		return fmt.Errorf("%w: dependent parent %q: %w", ErrMissingElement, d.Parent, err)
	}
	child, err := e.doc.Lookup(d.Child)
	if err != nil {
		return fmt.Errorf("%w: dependent child %q: %w", ErrMissingElement, d.Child, err)
	}

	rebuild := func(keepSelection bool) {
		choices := d.Options[parent.Value()]
		if !sameOptions(child, d.Placeholder, choices) {
			options := make([]*dom.Element, 0, len(choices)+1)
			options = append(options, e.option("", d.Placeholder))
			for _, c := range choices {
				options = append(options, e.option(c, c))
			}
			child.ReplaceChildren(options...)
		}
		if !keepSelection || !slices.Contains(choices, child.Value()) {
			child.SetValue("")
		}
	}

	e.on(d.Parent, EventChange, func() {
		rebuild(false)
		child.Touch()
	})
	e.restorers = append(e.restorers, func() { rebuild(true) })
	e.resetters = append(e.resetters, func() { rebuild(false) })
	return nil
}

// sameOptions reports whether sel already lists the placeholder followed by
// choices.
func sameOptions(sel *dom.Element, placeholder string, choices []string) bool {
	options := sel.Children()
	if len(options) != len(choices)+1 {
		return false
	}
	if options[0].Value() != "" || options[0].Text() != placeholder {
		return false
	}
	for i, c := range choices {
		if o := options[i+1]; o.Value() != c || o.Text() != c {
			return false
		}
	}
	return true
}

func (e *Engine) option(value, label string) *dom.Element {
	return e.doc.Create("option", "").SetValue(value).SetText(label)
}

// bindToggle shows the section only while the field holds the toggle value.
func (e *Engine) bindToggle(t *ToggleSpec) error {
	control, err := e.doc.Lookup(t.Field)
	if err != nil {
		return fmt.Errorf("%w: toggle field %q: %w", ErrMissingElement, t.Field, err)
	}
	section, err := e.doc.Lookup(t.Section)
	if err != nil {
		return fmt.Errorf("%w: toggle section %q: %w", ErrMissingElement, t.Section, err)
	}

	update := func() {
		if control.FormValue() == t.Value {
			section.Show()
		} else {
			section.Hide()
		}
	}

	e.on(t.Field, EventChange, func() {
		update()
		section.Touch()
	})
	e.restorers = append(e.restorers, update)
	e.resetters = append(e.resetters, func() { section.Hide().Touch() })
	return nil
}

// bindFile keeps the file label in step with the chosen file. An oversized
// file is rejected and the input cleared.
func (e *Engine) bindFile(f *FileSpec) error {
	input, err := e.doc.Lookup(f.ID)
	if err != nil {
		return fmt.Errorf("%w: file input %q: %w", ErrMissingElement, f.ID, err)
	}
	label, err := e.doc.Lookup(f.LabelID)
	if err != nil {
		return fmt.Errorf("%w: file label %q: %w", ErrMissingElement, f.LabelID, err)
	}

	prompt := func() {
		label.SetText(f.Placeholder)
		label.SetStyle("color", ColorFilePrompt)
	}
	// update relabels for the chosen file. An oversized file is cleared only
	// on a change event; a restore just reports it.
	update := func(reject bool) {
		name, size := ChosenFile(input)
		if name == "" {
			prompt()
			return
		}
		if size > f.MaxBytes {
			label.SetText(f.TooLarge)
			label.SetStyle("color", ColorAlert)
			if reject {
				ClearFile(input)
			}
			return
		}
		label.SetText(name)
		label.SetStyle("color", ColorFileChosen)
	}

	e.on(f.ID, EventChange, func() {
		update(true)
		label.Touch()
	})
	e.restorers = append(e.restorers, func() { update(false) })
	e.resetters = append(e.resetters, func() {
		ClearFile(input)
		prompt()
		label.Touch()
	})
	return nil
}

// SetFile records the chosen file on a file input.
func SetFile(input *dom.Element, name string, size int64) {
	input.SetAttr(AttrFileName, name)
	input.SetAttr(AttrFileSize, strconv.FormatInt(size, 10))
}

// ClearFile forgets the chosen file.
func ClearFile(input *dom.Element) {
	SetFile(input, "", 0)
}

// ChosenFile returns the file recorded on a file input.
func ChosenFile(input *dom.Element) (string, int64) {
	name, _ := input.Attr(AttrFileName)
	sizeAttr, _ := input.Attr(AttrFileSize)
	size, _ := strconv.ParseInt(sizeAttr, 10, 64)
	return name, size
}

package form

import (
	"fmt"
	"strconv"

	"github.com/dmitrymomot/formkit/pkg/dom"
)

// Build creates the canonical page for spec: the form with one .form-group per
// field, counter, toggle section, file input and acknowledgement, followed by
// the success message. Every id the engine looks up is present.
func Build(spec *FormSpec) (*dom.Document, error) {
	doc := dom.New()
	b := pageBuilder{doc: doc, spec: spec}

	form := doc.Create("form", spec.FormID, "form")
	form.SetAttr("method", "post").SetAttr("novalidate", "")
	if len(spec.Files) > 0 {
		form.SetAttr("enctype", "multipart/form-data")
	}

	for i := range spec.Fields {
		f := &spec.Fields[i]
		form.Append(b.fieldGroup(f))
		for j := range spec.Toggles {
			if t := &spec.Toggles[j]; t.Field == f.ID {
				form.Append(b.toggleSection(t))
			}
		}
	}
	for i := range spec.Files {
		form.Append(b.fileGroup(&spec.Files[i]))
	}
	for i := range spec.Acknowledgements {
		form.Append(b.ackGroup(&spec.Acknowledgements[i]))
	}
	form.Append(doc.Create("button", "", "submit-btn").SetAttr("type", "submit").SetText(spec.SubmitLabel))

	success := doc.Create("div", spec.SuccessID, "success-message")
	success.Append(
		doc.Create("h3", "").SetText(spec.SuccessTitle),
		doc.Create("p", "").SetText(spec.SuccessMessage),
	)

	doc.Body().Append(form, success)

	if err := doc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSpec, err)
	}
	doc.Flush()
	return doc, nil
}

// GroupID is the id of the .form-group wrapping the control with id.
func GroupID(id string) string { return id + "Group" }

type pageBuilder struct {
	doc  *dom.Document
	spec *FormSpec
}

func (b pageBuilder) fieldGroup(f *FieldSpec) *dom.Element {
	group := b.doc.Create("div", GroupID(f.ID), ClassFormGroup)
	if f.Kind == KindCheckbox {
		group.Append(b.checkbox(f.ID, f.Label))
	} else {
		group.Append(b.doc.Create("label", "").SetAttr("for", f.ID).SetText(f.Label))
		group.Append(b.control(f))
	}
	if c, ok := b.spec.Counter(f.ID); ok {
		group.Append(b.doc.Create("div", "", "char-counter").Append(
			b.doc.Create("span", c.CounterID).
				SetText(strconv.Itoa(c.Max)).
				SetStyle("color", ColorNeutral),
			b.doc.Create("span", "").SetText(" characters remaining"),
		))
	}
	group.Append(b.errorElement(f.ErrorID))
	return group
}

func (b pageBuilder) control(f *FieldSpec) *dom.Element {
	switch f.Kind {
	case KindTextarea:
		el := b.doc.Create("textarea", f.ID).SetAttr("name", f.ID)
		if f.Rows > 0 {
			el.SetAttr("rows", strconv.Itoa(f.Rows))
		}
		return withPlaceholder(el, f.Placeholder)
	case KindSelect:
		el := b.doc.Create("select", f.ID).SetAttr("name", f.ID)
		placeholder := f.Placeholder
		if placeholder == "" {
			placeholder = "-- Select " + f.Label + " --"
		}
		el.Append(b.doc.Create("option", "").SetValue("").SetText(placeholder))
		for _, o := range f.Options {
			el.Append(b.doc.Create("option", "").SetValue(o.Value).SetText(o.Label))
		}
		return el
	case KindRadioGroup:
		el := b.doc.Create("div", f.ID, "radio-group")
		for _, o := range f.Options {
			radio := b.doc.Create("input", "").
				SetAttr("type", "radio").
				SetAttr("name", f.ID).
				SetValue(o.Value)
			el.Append(b.doc.Create("label", "", "radio-option").Append(
				radio,
				b.doc.Create("span", "").SetText(o.Label),
			))
		}
		return el
	}

	inputType := "text"
	switch f.Kind {
	case KindEmail:
		inputType = "email"
	case KindPhone:
		inputType = "tel"
	}
	el := b.doc.Create("input", f.ID).SetAttr("type", inputType).SetAttr("name", f.ID)
	return withPlaceholder(el, f.Placeholder)
}

func (b pageBuilder) checkbox(id, label string) *dom.Element {
	box := b.doc.Create("input", id).
		SetAttr("type", "checkbox").
		SetAttr("name", id).
		SetValue("on")
	return b.doc.Create("label", "", "checkbox-label").Append(
		box,
		b.doc.Create("span", "").SetText(label),
	)
}

func (b pageBuilder) toggleSection(t *ToggleSpec) *dom.Element {
	section := b.doc.Create("div", t.Section, "toggle-section").Hide()
	if t.Image != "" {
		section.Append(b.doc.Create("img", "").SetAttr("src", t.Image).SetAttr("alt", t.Caption))
	}
	if t.Caption != "" {
		section.Append(b.doc.Create("p", "").SetText(t.Caption))
	}
	return section
}

func (b pageBuilder) fileGroup(f *FileSpec) *dom.Element {
	input := b.doc.Create("input", f.ID).
		SetAttr("type", "file").
		SetAttr("name", f.ID)
	if f.Accept != "" {
		input.SetAttr("accept", f.Accept)
	}
	ClearFile(input)

	name := b.doc.Create("span", f.LabelID, "file-name").
		SetText(f.Placeholder).
		SetStyle("color", ColorFilePrompt)

	return b.doc.Create("div", GroupID(f.ID), ClassFormGroup).Append(
		b.doc.Create("label", "").SetText(f.Label),
		b.doc.Create("label", "", "file-upload").SetAttr("for", f.ID).Append(input, name),
	)
}

func (b pageBuilder) ackGroup(a *Acknowledgement) *dom.Element {
	return b.doc.Create("div", GroupID(a.ID), ClassFormGroup, "checkbox-group").Append(
		b.checkbox(a.ID, a.Label),
		b.errorElement(a.ErrorID),
	)
}

func (b pageBuilder) errorElement(id string) *dom.Element {
	return b.doc.Create("small", id, ClassErrorMessage).Hide()
}

func withPlaceholder(el *dom.Element, placeholder string) *dom.Element {
	if placeholder != "" {
		el.SetAttr("placeholder", placeholder)
	}
	return el
}

package dom

import (
	"slices"
	"strings"
)

// Attr is a single element attribute.
type Attr struct {
	Name  string
	Value string
}

// Style is a single inline style declaration.
type Style struct {
	Property string
	Value    string
}

// Element is a node of the document tree.
type Element struct {
	id       string
	tag      string
	attrs    []Attr
	classes  []string
	text     string
	hidden   bool
	styles   []Style
	value    string
	checked  bool
	parent   *Element
	children []*Element
	doc      *Document
}

// ID returns the element id, or "" for anonymous elements.
func (e *Element) ID() string { return e.id }

// Tag returns the lower-case tag name.
func (e *Element) Tag() string { return e.tag }

// Parent returns the element the receiver is attached to, or nil when detached.
func (e *Element) Parent() *Element { return e.parent }

// Children returns a copy of the element's children.
func (e *Element) Children() []*Element { return slices.Clone(e.children) }

// Attrs returns a copy of the element's attributes in insertion order.
func (e *Element) Attrs() []Attr { return slices.Clone(e.attrs) }

// Attr returns the attribute value and whether it is set.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets or replaces an attribute.
func (e *Element) SetAttr(name, value string) *Element {
	for i, a := range e.attrs {
		if a.Name == name {
			if a.Value != value {
				e.attrs[i].Value = value
				e.touch()
			}
			return e
		}
	}
	e.attrs = append(e.attrs, Attr{Name: name, Value: value})
	e.touch()
	return e
}

// Type returns the element's type attribute.
func (e *Element) Type() string {
	t, _ := e.Attr("type")
	return t
}

// Name returns the element's name attribute.
func (e *Element) Name() string {
	n, _ := e.Attr("name")
	return n
}

// Classes returns a copy of the class list.
func (e *Element) Classes() []string { return slices.Clone(e.classes) }

// HasClass reports whether class is in the element's class list.
func (e *Element) HasClass(class string) bool {
	return slices.Contains(e.classes, class)
}

// AddClass adds classes missing from the class list.
func (e *Element) AddClass(classes ...string) *Element {
	for _, c := range classes {
		if c == "" || e.HasClass(c) {
			continue
		}
		e.classes = append(e.classes, c)
		e.touch()
	}
	return e
}

// RemoveClass removes classes present in the class list.
func (e *Element) RemoveClass(classes ...string) *Element {
	for _, c := range classes {
		if i := slices.Index(e.classes, c); i >= 0 {
			e.classes = slices.Delete(e.classes, i, i+1)
			e.touch()
		}
	}
	return e
}

// Text returns the element's own text content, excluding children.
func (e *Element) Text() string { return e.text }

// SetText replaces the element's own text content.
func (e *Element) SetText(text string) *Element {
	if e.text != text {
		e.text = text
		e.touch()
	}
	return e
}

// Hidden reports whether the element is hidden (display: none).
func (e *Element) Hidden() bool { return e.hidden }

// Show clears the hidden flag (display: block).
func (e *Element) Show() *Element { return e.setHidden(false) }

// Hide sets the hidden flag (display: none).
func (e *Element) Hide() *Element { return e.setHidden(true) }

func (e *Element) setHidden(hidden bool) *Element {
	if e.hidden != hidden {
		e.hidden = hidden
		e.touch()
	}
	return e
}

// Styles returns a copy of the inline styles in insertion order.
func (e *Element) Styles() []Style { return slices.Clone(e.styles) }

// Style returns an inline style value, or "" when unset.
func (e *Element) Style(property string) string {
	for _, s := range e.styles {
		if s.Property == property {
			return s.Value
		}
	}
	return ""
}

// SetStyle sets an inline style. An empty value removes the declaration.
func (e *Element) SetStyle(property, value string) *Element {
	for i, s := range e.styles {
		if s.Property != property {
			continue
		}
		switch {
		case value == "":
			e.styles = slices.Delete(e.styles, i, i+1)
		case s.Value != value:
			e.styles[i].Value = value
		default:
			return e
		}
		e.touch()
		return e
	}
	if value != "" {
		e.styles = append(e.styles, Style{Property: property, Value: value})
		e.touch()
	}
	return e
}

// Value returns the control's raw value, untrimmed.
func (e *Element) Value() string { return e.value }

// SetValue sets the control's raw value. A select renders the option
// carrying that value as selected.
func (e *Element) SetValue(value string) *Element {
	if e.value != value {
		e.value = value
		e.touch()
	}
	return e
}

// Checked reports the checked state of a checkbox or radio input.
func (e *Element) Checked() bool { return e.checked }

// SetChecked sets the checked state of a checkbox or radio input.
func (e *Element) SetChecked(checked bool) *Element {
	if e.checked != checked {
		e.checked = checked
		e.touch()
	}
	return e
}

// Append attaches children to the element, registering the ids of the
// attached subtrees with the document.
func (e *Element) Append(children ...*Element) *Element {
	for _, c := range children {
		if c == nil {
			continue
		}
		c.parent = e
		e.children = append(e.children, c)
		if e.doc != nil {
			e.doc.register(c)
		}
	}
	if len(children) > 0 {
		e.touch()
	}
	return e
}

// ReplaceChildren drops all current children and attaches the given ones.
// The ids of the dropped subtrees are released.
func (e *Element) ReplaceChildren(children ...*Element) *Element {
	for _, c := range e.children {
		c.parent = nil
		if e.doc != nil {
			e.doc.unregister(c)
		}
	}
	e.children = nil
	e.Append(children...)
	e.touch()
	return e
}

// Closest returns the nearest ancestor-or-self carrying class.
func (e *Element) Closest(class string) *Element {
	for cur := e; cur != nil; cur = cur.parent {
		if cur.HasClass(class) {
			return cur
		}
	}
	return nil
}

// QueryClass returns every descendant carrying class, in document order.
func (e *Element) QueryClass(class string) []*Element {
	return e.Query(func(el *Element) bool { return el.HasClass(class) })
}

// Query returns every descendant matching fn, in document order.
func (e *Element) Query(fn func(*Element) bool) []*Element {
	var out []*Element
	var walk func(*Element)
	walk = func(n *Element) {
		for _, c := range n.children {
			if fn(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(e)
	return out
}

// Radios returns the radio inputs below the element.
func (e *Element) Radios() []*Element {
	return e.Query(func(el *Element) bool {
		return el.tag == "input" && el.Type() == "radio"
	})
}

// FormValue returns the value a form submission would carry for the control.
// Radio groups report the checked radio's value; checkboxes report their
// value only when checked.
func (e *Element) FormValue() string {
	switch {
	case e.tag == "input" && (e.Type() == "checkbox" || e.Type() == "radio"):
		if e.checked {
			return e.value
		}
		return ""
	case e.tag == "input", e.tag == "select", e.tag == "textarea":
		return e.value
	}
	for _, r := range e.Radios() {
		if r.checked {
			return r.value
		}
	}
	return ""
}

// SetFormValue sets control state from a submitted value.
func (e *Element) SetFormValue(value string) *Element {
	switch {
	case e.tag == "input" && e.Type() == "checkbox":
		return e.SetChecked(value != "" && value != "false")
	case e.tag == "input" && e.Type() == "radio":
		return e.SetChecked(value == e.value)
	case e.tag == "input", e.tag == "select", e.tag == "textarea":
		return e.SetValue(value)
	}
	for _, r := range e.Radios() {
		r.SetChecked(value != "" && r.value == value)
	}
	return e
}

// Reset restores the control and its descendants to empty state, like
// form.reset() with no default values.
func (e *Element) Reset() {
	switch e.tag {
	case "input", "select", "textarea":
		if e.Type() == "checkbox" || e.Type() == "radio" {
			e.SetChecked(false)
		} else {
			e.SetValue("")
		}
	}
	for _, c := range e.children {
		c.Reset()
	}
}

// ClassName renders the class list as a class attribute value.
func (e *Element) ClassName() string {
	return strings.Join(e.classes, " ")
}

// Touch records the element as changed without modifying it, so the next
// Flush reports it.
func (e *Element) Touch() *Element {
	e.touch()
	return e
}

func (e *Element) touch() {
	if e.doc != nil {
		e.doc.record(e)
	}
}

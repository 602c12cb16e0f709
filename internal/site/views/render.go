package views

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/formkit/pkg/dom"
)

// Decorator returns extra attributes for an element, used to attach client
// behaviour that the document model does not carry.
type Decorator func(el *dom.Element) []dom.Attr

var voidTags = map[string]bool{"input": true, "img": true, "br": true, "hr": true}

// Element renders el and its subtree. The output of one element is a valid
// outer patch for that element's id.
func Element(el *dom.Element, decorate Decorator) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		writeElement(&b, el, decorate)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeElement(b *strings.Builder, el *dom.Element, decorate Decorator) {
	tag := el.Tag()
	b.WriteString("<" + tag)
	if id := el.ID(); id != "" {
		writeAttr(b, "id", id)
	}
	if class := el.ClassName(); class != "" {
		writeAttr(b, "class", class)
	}
	for _, a := range el.Attrs() {
		writeAttr(b, a.Name, a.Value)
	}
	writeState(b, el)
	if style := styleAttr(el); style != "" {
		writeAttr(b, "style", style)
	}
	if decorate != nil {
		for _, a := range decorate(el) {
			writeAttr(b, a.Name, a.Value)
		}
	}
	b.WriteString(">")
	if voidTags[tag] {
		return
	}

	if tag == "textarea" {
		b.WriteString(templ.EscapeString(el.Value()))
	} else {
		b.WriteString(templ.EscapeString(el.Text()))
	}
	for _, c := range el.Children() {
		writeElement(b, c, decorate)
	}
	b.WriteString("</" + tag + ">")
}

// writeState renders form control state as attributes.
func writeState(b *strings.Builder, el *dom.Element) {
	switch el.Tag() {
	case "input":
		switch el.Type() {
		case "checkbox", "radio":
			writeAttr(b, "value", el.Value())
			if el.Checked() {
				b.WriteString(" checked")
			}
		case "file":
		default:
			writeAttr(b, "value", el.Value())
		}
	case "option":
		writeAttr(b, "value", el.Value())
		if p := el.Parent(); p != nil && p.Tag() == "select" && p.Value() == el.Value() {
			b.WriteString(" selected")
		}
	}
}

func styleAttr(el *dom.Element) string {
	var parts []string
	if el.Hidden() {
		parts = append(parts, "display: none")
	}
	for _, s := range el.Styles() {
		parts = append(parts, s.Property+": "+s.Value)
	}
	return strings.Join(parts, "; ")
}

func writeAttr(b *strings.Builder, name, value string) {
	b.WriteString(" " + name + `="` + templ.EscapeString(value) + `"`)
}

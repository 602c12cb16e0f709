package form_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/dom"
	"github.com/dmitrymomot/formkit/pkg/form"
)

const contactYAML = `
slug: contact
title: Contact Us
form_id: contactForm
success_title: Message sent
success_message: Thank you for reaching out.
fields:
  - id: name
    label: Name
    kind: text
    required: true
    min_length: 3
    pattern: name
    messages:
      required: Name is required
      min_length: Name must be at least 3 characters
      pattern: Name can only contain letters and spaces
  - id: email
    label: Email
    kind: email
    required: true
    messages:
      required: Email is required
      pattern: Please enter a valid email address
  - id: subject
    label: Subject
    kind: select
    required: true
    options:
      - {value: general, label: General Inquiry}
      - {value: events, label: Events}
    messages:
      required: Please select a subject
  - id: message
    label: Message
    kind: textarea
    required: true
    min_length: 10
    max_length: 500
    messages:
      required: Message is required
      min_length: Message must be at least 10 characters
      max_length: Message cannot exceed 500 characters
counters:
  - field: message
    max: 500
    alert_below: 100
    warn_below: 165
`

const registrationYAML = `
slug: registration
title: Event Registration
form_id: eventForm
fields:
  - id: nama
    label: Full Name
    kind: text
    required: true
    min_length: 3
    pattern: name
  - id: tahun
    label: Year of Study
    kind: radio-group
    required: true
    options:
      - {value: "1", label: Year 1}
      - {value: "2", label: Year 2}
    messages:
      required: Please select year of study
  - id: faculty
    label: Faculty
    kind: select
    required: true
    options:
      - {value: FSKM, label: Computer Science}
      - {value: FPM, label: Maritime Studies}
  - id: programme
    label: Programme
    kind: select
    required: true
    placeholder: "-- Select Programme --"
  - id: paymentMethod
    label: Payment Method
    kind: radio-group
    required: true
    options:
      - {value: qr, label: QR Payment}
      - {value: cash, label: Cash}
dependents:
  - parent: faculty
    child: programme
    placeholder: "-- Select Programme --"
    options:
      FSKM:
        - Bachelor of Computer Science (Software Engineering)
        - Bachelor of Science (Statistics)
      FPM:
        - Bachelor of Maritime Studies
toggles:
  - field: paymentMethod
    value: qr
    section: qrSection
files:
  - id: receipt
    label: Payment Receipt
    label_id: fileName
acknowledgements:
  - id: terms
    label: terms and conditions
    message: Please agree to the terms and conditions
`

func loadSpec(t *testing.T, src string) *form.FormSpec {
	t.Helper()
	spec, err := form.Load(strings.NewReader(src))
	require.NoError(t, err)
	return spec
}

type page struct {
	spec     *form.FormSpec
	doc      *dom.Document
	engine   *form.Engine
	deferred *form.Deferred
}

func newPage(t *testing.T, src string, opts ...form.BindOption) *page {
	t.Helper()
	spec := loadSpec(t, src)
	doc, err := form.Build(spec)
	require.NoError(t, err)

	deferred := new(form.Deferred)
	opts = append([]form.BindOption{form.WithScheduler(deferred)}, opts...)
	engine, err := form.Bind(doc, spec, opts...)
	require.NoError(t, err)

	return &page{spec: spec, doc: doc, engine: engine, deferred: deferred}
}

func (p *page) el(t *testing.T, id string) *dom.Element {
	t.Helper()
	el, err := p.doc.Lookup(id)
	require.NoError(t, err)
	return el
}

func (p *page) field(t *testing.T, id string) *form.FieldSpec {
	t.Helper()
	f, ok := p.spec.Field(id)
	require.True(t, ok, "field %q", id)
	return f
}

func (p *page) fill(t *testing.T, values map[string]string) {
	t.Helper()
	for id, v := range values {
		p.el(t, id).SetFormValue(v)
	}
}

func (p *page) group(t *testing.T, id string) *dom.Element {
	t.Helper()
	return p.el(t, form.GroupID(id))
}

func validContact() map[string]string {
	return map[string]string{
		"name":    "Aisyah Rahman",
		"email":   "aisyah@example.com",
		"subject": "general",
		"message": "I would like to join the next event.",
	}
}

// flushedIDs drains the page's change journal.
func (p *page) flushedIDs() []string {
	var ids []string
	for _, el := range p.doc.Flush() {
		ids = append(ids, el.ID())
	}
	return ids
}

package form_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/dom"
	"github.com/dmitrymomot/formkit/pkg/form"
)

func TestBind_MissingElements(t *testing.T) {
	t.Parallel()

	spec := loadSpec(t, contactYAML)

	t.Run("no form", func(t *testing.T) {
		_, err := form.Bind(dom.New(), spec)
		assert.ErrorIs(t, err, form.ErrMissingElement)
		assert.ErrorIs(t, err, dom.ErrElementNotFound)
	})

	t.Run("field without group", func(t *testing.T) {
		doc := dom.New()
		f := doc.Create("form", "contactForm")
		f.Append(doc.Create("input", "name"), doc.Create("small", "nameError"))
		doc.Body().Append(f, doc.Create("div", "successMessage"))

		_, err := form.Bind(doc, spec)
		assert.ErrorIs(t, err, form.ErrMissingElement)
	})
}

func TestEngine_Dispatch(t *testing.T) {
	t.Parallel()

	t.Run("blur validates", func(t *testing.T) {
		p := newPage(t, contactYAML)
		require.NoError(t, p.engine.Dispatch(form.Event{Type: form.EventBlur, Target: "name"}))

		assert.True(t, p.group(t, "name").HasClass(form.ClassError))
		errEl := p.el(t, "nameError")
		assert.Equal(t, "Name is required", errEl.Text())
		assert.False(t, errEl.Hidden())
	})

	t.Run("input on empty value is ignored", func(t *testing.T) {
		p := newPage(t, contactYAML)
		require.NoError(t, p.engine.Dispatch(form.Event{Type: form.EventInput, Target: "name"}))

		g := p.group(t, "name")
		assert.False(t, g.HasClass(form.ClassError))
		assert.False(t, g.HasClass(form.ClassSuccess))
	})

	t.Run("input on non-empty value validates", func(t *testing.T) {
		p := newPage(t, contactYAML)
		p.fill(t, map[string]string{"name": "Al"})
		require.NoError(t, p.engine.Dispatch(form.Event{Type: form.EventInput, Target: "name"}))
		assert.Equal(t, "Name must be at least 3 characters", p.el(t, "nameError").Text())

		p.fill(t, map[string]string{"name": "Ali"})
		require.NoError(t, p.engine.Dispatch(form.Event{Type: form.EventInput, Target: "name"}))

		g := p.group(t, "name")
		assert.True(t, g.HasClass(form.ClassSuccess))
		assert.False(t, g.HasClass(form.ClassError))
		assert.Empty(t, p.el(t, "nameError").Text())
		assert.True(t, p.el(t, "nameError").Hidden())
	})

	t.Run("select validates on change", func(t *testing.T) {
		p := newPage(t, contactYAML)
		require.NoError(t, p.engine.Dispatch(form.Event{Type: form.EventBlur, Target: "subject"}))
		assert.False(t, p.group(t, "subject").HasClass(form.ClassError))

		require.NoError(t, p.engine.Dispatch(form.Event{Type: form.EventChange, Target: "subject"}))
		assert.Equal(t, "Please select a subject", p.el(t, "subjectError").Text())
	})

	t.Run("unknown target", func(t *testing.T) {
		p := newPage(t, contactYAML)
		err := p.engine.Dispatch(form.Event{Type: form.EventBlur, Target: "nope"})
		assert.ErrorIs(t, err, form.ErrUnknownTarget)
		assert.False(t, p.engine.Listens("nope"))
		assert.True(t, p.engine.Listens("message"))
	})
}

func TestEngine_Validate_ReflectsLatestResult(t *testing.T) {
	t.Parallel()

	p := newPage(t, contactYAML)
	email := p.field(t, "email")

	p.fill(t, map[string]string{"email": "a@b"})
	res := p.engine.Validate(email)
	assert.False(t, res.Valid)
	assert.True(t, p.group(t, "email").HasClass(form.ClassError))

	p.fill(t, map[string]string{"email": "a@b.co"})
	res = p.engine.Validate(email)
	assert.True(t, res.Valid)
	assert.True(t, p.group(t, "email").HasClass(form.ClassSuccess))
	assert.False(t, p.group(t, "email").HasClass(form.ClassError))

	// raw value stays as typed
	p.fill(t, map[string]string{"email": "  a@b.co  "})
	assert.True(t, p.engine.Validate(email).Valid)
	assert.Equal(t, "  a@b.co  ", p.el(t, "email").Value())
}

func TestEngine_CharacterCounter(t *testing.T) {
	t.Parallel()

	p := newPage(t, contactYAML)
	counter := p.el(t, "charCount")
	assert.Equal(t, "500", counter.Text())

	p.fill(t, map[string]string{"message": strings.Repeat("a", 450)})
	require.NoError(t, p.engine.Dispatch(form.Event{Type: form.EventInput, Target: "message"}))
	assert.Equal(t, "50", counter.Text())
	assert.Equal(t, form.ColorAlert, counter.Style("color"))

	p.fill(t, map[string]string{"message": ""})
	require.NoError(t, p.engine.Dispatch(form.Event{Type: form.EventInput, Target: "message"}))
	assert.Equal(t, "500", counter.Text())
	assert.Equal(t, form.ColorNeutral, counter.Style("color"))
}

func TestEngine_Submit(t *testing.T) {
	t.Parallel()

	t.Run("invalid fields are all reported", func(t *testing.T) {
		p := newPage(t, contactYAML)
		p.fill(t, map[string]string{"name": "Aisyah", "email": "bad"})

		assert.False(t, p.engine.Submit())
		assert.True(t, p.group(t, "name").HasClass(form.ClassSuccess))
		for _, id := range []string{"email", "subject", "message"} {
			assert.True(t, p.group(t, id).HasClass(form.ClassError), id)
		}
		assert.False(t, p.el(t, "contactForm").Hidden())
		assert.False(t, p.el(t, "successMessage").HasClass(form.ClassShow))
		assert.False(t, p.deferred.Pending())

		failures := p.engine.Failures()
		assert.Equal(t, []string{"email", "subject", "message"}, failures.Fields())
		assert.Equal(t, []string{"Please enter a valid email address"}, failures.Get("email"))
		assert.Empty(t, failures.Get("name"))
	})

	t.Run("valid submit then deferred reset", func(t *testing.T) {
		p := newPage(t, contactYAML)
		p.fill(t, validContact())
		require.NoError(t, p.engine.Dispatch(form.Event{Type: form.EventInput, Target: "message"}))

		assert.True(t, p.engine.Submit())
		assert.True(t, p.engine.Failures().IsEmpty())
		assert.True(t, p.el(t, "contactForm").Hidden())
		assert.True(t, p.el(t, "successMessage").HasClass(form.ClassShow))
		require.True(t, p.deferred.Pending())
		assert.Equal(t, form.DefaultResetDelay, p.deferred.Delay())

		// nothing resets before the delay elapses
		assert.True(t, p.group(t, "name").HasClass(form.ClassSuccess))

		p.deferred.RunNow()

		for _, f := range p.spec.Fields {
			g := p.group(t, f.ID)
			assert.False(t, g.HasClass(form.ClassSuccess), f.ID)
			assert.False(t, g.HasClass(form.ClassError), f.ID)
			assert.Empty(t, p.el(t, f.ID).FormValue(), f.ID)
		}
		assert.Equal(t, "500", p.el(t, "charCount").Text())
		assert.Equal(t, form.ColorNeutral, p.el(t, "charCount").Style("color"))

		// the success message stays on screen
		assert.True(t, p.el(t, "contactForm").Hidden())
		assert.True(t, p.el(t, "successMessage").HasClass(form.ClassShow))
	})

	t.Run("custom reset delay", func(t *testing.T) {
		p := newPage(t, contactYAML, form.WithResetDelay(2*form.DefaultResetDelay))
		p.fill(t, validContact())
		require.True(t, p.engine.Submit())
		assert.Equal(t, 2*form.DefaultResetDelay, p.deferred.Delay())
	})
}

func TestEngine_Acknowledgement(t *testing.T) {
	t.Parallel()

	fillRegistration := func(t *testing.T, p *page) {
		p.fill(t, map[string]string{
			"nama":          "Ahmad Zaki",
			"tahun":         "2",
			"faculty":       "FSKM",
			"programme":     "Bachelor of Science (Statistics)",
			"paymentMethod": "cash",
		})
	}

	t.Run("unticked box raises an alert", func(t *testing.T) {
		p := newPage(t, registrationYAML)
		fillRegistration(t, p)

		assert.False(t, p.engine.Submit())
		assert.Equal(t, []string{"Please agree to the terms and conditions"}, p.doc.Alerts())
		assert.True(t, p.group(t, "nama").HasClass(form.ClassSuccess))
		assert.False(t, p.deferred.Pending())
	})

	t.Run("ticked box submits", func(t *testing.T) {
		p := newPage(t, registrationYAML)
		fillRegistration(t, p)
		p.el(t, "terms").SetChecked(true)

		assert.True(t, p.engine.Submit())
		assert.Empty(t, p.doc.Alerts())
	})

	t.Run("inline acknowledgement", func(t *testing.T) {
		src := strings.Replace(registrationYAML,
			"message: Please agree to the terms and conditions",
			"message: Please agree to the terms and conditions\n    inline: true", 1)
		p := newPage(t, src)
		fillRegistration(t, p)

		assert.False(t, p.engine.Submit())
		assert.Empty(t, p.doc.Alerts())
		assert.True(t, p.group(t, "terms").HasClass(form.ClassError))
		assert.Equal(t, "Please agree to the terms and conditions", p.el(t, "termsError").Text())
	})
}

func TestEngine_RadioGroup(t *testing.T) {
	t.Parallel()

	p := newPage(t, registrationYAML)
	tahun := p.el(t, "tahun")

	require.NoError(t, p.engine.Dispatch(form.Event{Type: form.EventChange, Target: "tahun"}))
	assert.Equal(t, "Please select year of study", p.el(t, "tahunError").Text())

	tahun.SetFormValue("1")
	assert.Equal(t, "1", tahun.FormValue())
	require.NoError(t, p.engine.Dispatch(form.Event{Type: form.EventChange, Target: "tahun"}))
	assert.True(t, p.group(t, "tahun").HasClass(form.ClassSuccess))
}

func TestEngine_Flush_ReportsChangedGroups(t *testing.T) {
	t.Parallel()

	p := newPage(t, contactYAML)
	assert.Empty(t, p.doc.Flush())

	require.NoError(t, p.engine.Dispatch(form.Event{Type: form.EventBlur, Target: "email"}))

	changed := p.doc.Flush()
	require.Len(t, changed, 1)
	assert.Equal(t, form.GroupID("email"), changed[0].ID())
}

func TestApplyResult(t *testing.T) {
	t.Parallel()

	doc := dom.New()
	group := doc.Create("div", "emailGroup", form.ClassFormGroup)
	errEl := doc.Create("small", "emailError", form.ClassErrorMessage).Hide()

	form.ApplyResult(group, errEl, form.ValidationResult{Message: "Please enter a valid email address"})
	assert.True(t, group.HasClass(form.ClassError))
	assert.False(t, group.HasClass(form.ClassSuccess))
	assert.Equal(t, "Please enter a valid email address", errEl.Text())
	assert.False(t, errEl.Hidden())

	form.ApplyResult(group, errEl, form.ValidationResult{Valid: true})
	assert.True(t, group.HasClass(form.ClassSuccess))
	assert.False(t, group.HasClass(form.ClassError))
	assert.Empty(t, errEl.Text())
	assert.True(t, errEl.Hidden())

	assert.NotPanics(t, func() {
		form.ApplyResult(nil, nil, form.ValidationResult{})
	})
}

func TestEngine_CharacterCounter_AlwaysJournaled(t *testing.T) {
	t.Parallel()

	// The page already shows 500 after the values are replayed; a cleared
	// message must still rewrite the display the browser holds.
	p := newPage(t, contactYAML)
	p.fill(t, map[string]string{"message": ""})
	p.engine.Restore()
	p.doc.Flush()

	require.NoError(t, p.engine.Dispatch(form.Event{Type: form.EventInput, Target: "message"}))
	assert.Equal(t, []string{"charCount"}, p.flushedIDs())

	counter := p.el(t, "charCount")
	assert.Equal(t, "500", counter.Text())
	assert.Equal(t, form.ColorNeutral, counter.Style("color"))
}

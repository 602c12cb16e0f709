package views

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/formkit/handler"
	"github.com/dmitrymomot/formkit/pkg/dom"
	"github.com/dmitrymomot/formkit/pkg/form"
)

// FormPage renders the heading of spec followed by the page document. A
// non-empty summary lists the problems of a rejected full-page submission
// above the form.
func FormPage(spec *form.FormSpec, doc *dom.Document, summary []string, decorate Decorator) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		e := escaper{w: w}
		e.printf(`<section class="form-section"><h1>%s</h1>`, templ.EscapeString(spec.Title))
		if spec.Intro != "" {
			e.printf(`<p class="intro">%s</p>`, templ.EscapeString(spec.Intro))
		}
		if len(summary) > 0 {
			e.printf(`<div class="form-summary"><p>Please correct the following:</p><ul>`)
			for _, msg := range summary {
				e.printf(`<li>%s</li>`, templ.EscapeString(msg))
			}
			e.printf(`</ul></div>`)
		}
		if e.err != nil {
			return e.err
		}
		for _, el := range doc.Body().Children() {
			if err := Element(el, decorate).Render(ctx, w); err != nil {
				return err
			}
		}
		e.printf(`</section>`)
		return e.err
	})
}

// Landing lists the available forms.
func Landing(items []NavItem) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		e := escaper{w: w}
		e.printf(`<section class="landing"><h1>Forms</h1><ul class="form-list">`)
		for _, item := range items {
			e.printf(`<li><a href="%s">%s</a></li>`, templ.EscapeString(item.Href), templ.EscapeString(item.Title))
		}
		e.printf(`</ul></section>`)
		return e.err
	})
}

// Alert renders a blocking notice as an open dialog the user dismisses.
func Alert(message string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		e := escaper{w: w}
		e.printf(`<dialog class="alert" open><p>%s</p><form method="dialog"><button type="submit">OK</button></form></dialog>`,
			templ.EscapeString(message))
		return e.err
	})
}

// ErrorAlert renders a request failure into the alert container.
func ErrorAlert(p handler.ErrorAlertParams) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		e := escaper{w: w}
		e.printf(`<dialog class="alert alert-%s" open><p>%s</p>`, templ.EscapeString(p.Type), templ.EscapeString(p.Message))
		if p.RequestID != "" {
			e.printf(`<small>Request ID: %s</small>`, templ.EscapeString(p.RequestID))
		}
		e.printf(`<form method="dialog"><button type="submit">OK</button></form></dialog>`)
		return e.err
	})
}

// ErrorPage renders a standalone error page.
func ErrorPage(p handler.ErrorPageParams) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		e := escaper{w: w}
		e.printf(`<section class="error-page"><h1>%s</h1><p>%s</p>`,
			strconv.Itoa(p.StatusCode), templ.EscapeString(p.Error))
		if p.RequestID != "" {
			e.printf(`<small>Request ID: %s</small>`, templ.EscapeString(p.RequestID))
		}
		e.printf(`<p><a href="%s">Try again</a> or <a href="/">go back home</a>.</p></section>`, templ.EscapeString(p.RetryURL))
		return e.err
	})
	return Layout(LayoutParams{Title: "Error"}, body)
}

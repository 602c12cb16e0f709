package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// NavItem is one entry of the site navigation.
type NavItem struct {
	Href  string
	Title string
}

// LayoutParams configures the page shell.
type LayoutParams struct {
	Title   string
	Script  string
	Nav     []NavItem
	Signals string
	Alerts  []string
}

// AlertsID is the id of the container that alert dialogs are appended to.
const AlertsID = "alerts"

// Layout wraps body in the html document shell with the navigation, the
// datastar client and the alert container.
func Layout(p LayoutParams, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		e := escaper{w: w}
		e.printf(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		e.printf(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		e.printf(`<title>%s</title><style>%s</style>`, templ.EscapeString(p.Title), stylesheet)
		if p.Script != "" {
			e.printf(`<script type="module" src="%s"></script>`, templ.EscapeString(p.Script))
		}
		e.printf(`</head><body><nav class="navbar"><a class="brand" href="/">Forms</a><ul>`)
		for _, item := range p.Nav {
			e.printf(`<li><a href="%s">%s</a></li>`, templ.EscapeString(item.Href), templ.EscapeString(item.Title))
		}
		e.printf(`</ul></nav><main id="page" class="container"`)
		if p.Signals != "" {
			e.printf(` data-signals="%s"`, templ.EscapeString(p.Signals))
		}
		e.printf(`>`)
		if e.err != nil {
			return e.err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		e.printf(`</main><div id="%s">`, AlertsID)
		if e.err != nil {
			return e.err
		}
		for _, msg := range p.Alerts {
			if err := Alert(msg).Render(ctx, w); err != nil {
				return err
			}
		}
		e.printf(`</div></body></html>`)
		return e.err
	})
}

// escaper writes formatted output and keeps the first write error.
type escaper struct {
	w   io.Writer
	err error
}

func (e *escaper) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

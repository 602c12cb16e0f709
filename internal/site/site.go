// Package site serves the form pages. Every request builds its own page
// instance from the form table, replays the client's values into it,
// dispatches the event and streams the changed elements back as datastar
// patches.
package site

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/formkit/handler"
	"github.com/dmitrymomot/formkit/internal/site/views"
	"github.com/dmitrymomot/formkit/pkg/binder"
	"github.com/dmitrymomot/formkit/pkg/environment"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/httpserver"
	"github.com/dmitrymomot/formkit/pkg/qrcode"
	"github.com/dmitrymomot/formkit/pkg/requestid"
)

// ErrNoForms is returned when the form directory holds no definitions.
var ErrNoForms = errors.New("no forms loaded")

// Site holds the loaded form tables and serves them.
type Site struct {
	cfg   Config
	log   *slog.Logger
	forms map[string]*form.FormSpec
	order []string
	qr    *qrcode.Generator

	errorHandler handler.ErrorHandler[handler.Context]
}

// Option configures a Site.
type Option func(*options)

type options struct {
	fsys fs.FS
	dir  string
}

// WithForms loads the form definitions from dir of fsys instead of the
// built-in ones.
func WithForms(fsys fs.FS, dir string) Option {
	return func(o *options) {
		o.fsys = fsys
		o.dir = dir
	}
}

// New loads the form tables and prepares the site.
func New(cfg Config, log *slog.Logger, opts ...Option) (*Site, error) {
	o := options{fsys: FormsFS, dir: FormsDir}
	for _, opt := range opts {
		opt(&o)
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	forms, err := form.LoadFS(o.fsys, o.dir)
	if err != nil {
		return nil, fmt.Errorf("load forms: %w", err)
	}
	if len(forms) == 0 {
		return nil, ErrNoForms
	}

	// Fail at startup on a table that cannot produce a bindable page.
	for _, spec := range forms {
		if _, err := newInstance(spec, nil, nil); err != nil {
			return nil, fmt.Errorf("form %q: %w", spec.Slug, err)
		}
	}

	order := make([]string, 0, len(forms))
	for slug := range forms {
		order = append(order, slug)
	}
	slices.Sort(order)

	return &Site{
		cfg:   cfg,
		log:   log,
		forms: forms,
		order: order,
		qr:    qrcode.NewGenerator(qrcode.WithSize(cfg.PaymentQRSize)),
		errorHandler: handler.NewErrorHandler(log, handler.ErrorHandlerConfig{
			ErrorPage:   views.ErrorPage,
			ErrorAlert:  views.ErrorAlert,
			AlertTarget: "#" + views.AlertsID,
		}),
	}, nil
}

// Router returns the HTTP routes of the site.
func (s *Site) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(environment.Middleware(s.cfg.Env))

	path := binder.Path(chi.URLParam)

	r.Get("/", wrap(s.errorHandler, s.landing))
	r.Get("/forms/{form}", wrap(s.errorHandler, s.page, path))
	r.Get("/forms/{form}/payment-qr.png", wrap(s.errorHandler, s.paymentQR, path))
	r.Post("/forms/{form}/fields/{field}/{event}", wrap(s.errorHandler, s.fieldEvent, path, binder.Signals()))
	r.Post("/forms/{form}/submit", wrap(s.errorHandler, s.submit, path, binder.Signals(), binder.Form()))

	r.Get("/health", httpserver.HealthCheckHandler(s.log))
	r.Get("/ready", httpserver.HealthCheckHandler(s.log, s.ready))

	r.NotFound(wrap(s.errorHandler, func(handler.Context, struct{}) handler.Response {
		return handler.Error(handler.ErrNotFound)
	}))
	r.MethodNotAllowed(wrap(s.errorHandler, func(handler.Context, struct{}) handler.Response {
		return handler.Error(handler.ErrMethodNotAllowed)
	}))
	return r
}

func (s *Site) ready(context.Context) error {
	if len(s.forms) == 0 {
		return ErrNoForms
	}
	return nil
}

func (s *Site) nav() []views.NavItem {
	items := make([]views.NavItem, 0, len(s.order))
	for _, slug := range s.order {
		items = append(items, views.NavItem{Href: formURL(slug), Title: s.forms[slug].Title})
	}
	return items
}

func wrap[R any](eh handler.ErrorHandler[handler.Context], h handler.HandlerFunc[handler.Context, R], binders ...handler.Bind) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithBinders[handler.Context, R](binders...),
		handler.WithErrorHandler[handler.Context, R](eh),
	)
}

func formURL(slug string) string { return "/forms/" + slug }

func submitURL(slug string) string { return formURL(slug) + "/submit" }

func eventURL(slug, field string, ev form.EventType) string {
	return formURL(slug) + "/fields/" + field + "/" + string(ev)
}

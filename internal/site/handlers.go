package site

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/formkit/handler"
	"github.com/dmitrymomot/formkit/internal/site/views"
	"github.com/dmitrymomot/formkit/pkg/dom"
	"github.com/dmitrymomot/formkit/pkg/environment"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

type formRequest struct {
	Form string `path:"form"`
}

type fieldEventRequest struct {
	Form   string            `path:"form"`
	Field  string            `path:"field"`
	Event  string            `path:"event"`
	Values map[string]string `signals:"*"`
}

type submitRequest struct {
	Form   string                           `path:"form"`
	Values map[string]string                `signals:"*" form:"*"`
	Files  map[string]*multipart.FileHeader `file:"*"`
}

func (s *Site) lookup(slug string) (*form.FormSpec, error) {
	spec, ok := s.forms[slug]
	if !ok {
		return nil, fmt.Errorf("%w: form %q", handler.ErrNotFound, slug)
	}
	return spec, nil
}

func (s *Site) landing(handler.Context, struct{}) handler.Response {
	return handler.Templ(views.Layout(views.LayoutParams{
		Title:  "Forms",
		Script: s.cfg.DatastarScript,
		Nav:    s.nav(),
	}, views.Landing(s.nav())))
}

func (s *Site) page(_ handler.Context, req formRequest) handler.Response {
	spec, err := s.lookup(req.Form)
	if err != nil {
		return handler.Error(err)
	}
	inst, err := s.open(spec, nil)
	if err != nil {
		return handler.Error(err)
	}
	return handler.Templ(s.render(inst, nil))
}

func (s *Site) fieldEvent(ctx handler.Context, req fieldEventRequest) handler.Response {
	spec, err := s.lookup(req.Form)
	if err != nil {
		return handler.Error(err)
	}
	typ, ok := form.ParseEventType(req.Event)
	if !ok {
		return handler.Error(fmt.Errorf("%w: event %q", handler.ErrNotFound, req.Event))
	}

	inst, err := s.open(spec, req.Values)
	if err != nil {
		return handler.Error(err)
	}
	if err := inst.engine.Dispatch(form.Event{Type: typ, Target: req.Field}); err != nil {
		if errors.Is(err, form.ErrUnknownTarget) {
			return handler.Error(errors.Join(handler.ErrNotFound, err))
		}
		return handler.Error(err)
	}

	s.log.DebugContext(ctx, "field event",
		logger.Form(spec.Slug),
		logger.Field(req.Field),
		logger.Event(string(typ)),
	)

	return handler.SSE(func(stream handler.StreamContext) error {
		if err := s.sendChanges(stream, inst); err != nil {
			return err
		}
		// A rejected file is cleared on the server; the client signals follow.
		for _, f := range spec.Files {
			if f.ID == req.Field {
				name, size := form.ChosenFile(inst.doc.Get(f.ID))
				return stream.SendSignals(map[string]any{
					fileNameSignal(f.ID): name,
					fileSizeSignal(f.ID): size,
				})
			}
		}
		return nil
	})
}

func (s *Site) submit(ctx handler.Context, req submitRequest) handler.Response {
	spec, err := s.lookup(req.Form)
	if err != nil {
		return handler.Error(err)
	}

	values := req.Values
	if values == nil {
		values = make(map[string]string)
	}
	for id, fh := range req.Files {
		values[fileNameSignal(id)] = fh.Filename
		values[fileSizeSignal(id)] = strconv.FormatInt(fh.Size, 10)
	}

	inst, err := s.open(spec, values)
	if err != nil {
		return handler.Error(err)
	}

	valid := inst.engine.Submit()
	if valid {
		s.log.InfoContext(ctx, "form submitted", logger.Form(spec.Slug))
	} else {
		s.log.DebugContext(ctx, "form rejected",
			logger.Form(spec.Slug),
			slog.Any("fields", inst.engine.Failures().Fields()),
		)
	}

	if !handler.IsDataStar(ctx.Request()) {
		// A full page cannot be patched later, so the reset is applied now.
		inst.deferred.RunNow()
		status := http.StatusOK
		if !valid {
			status = http.StatusUnprocessableEntity
		}
		return handler.TemplWithStatus(status, s.render(inst, inst.doc.Alerts(), summarize(inst.engine.Failures())...))
	}

	return handler.SSE(func(stream handler.StreamContext) error {
		if err := s.sendChanges(stream, inst); err != nil {
			return err
		}
		if !inst.deferred.Pending() {
			return nil
		}

		if err := inst.deferred.Wait(stream); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
		s.log.DebugContext(stream, "form reset",
			logger.Form(spec.Slug),
			logger.Duration(inst.resetDelay()),
		)
		if err := s.sendChanges(stream, inst); err != nil {
			return err
		}
		return stream.SendSignals(inst.signals())
	})
}

func (s *Site) paymentQR(ctx handler.Context, req formRequest) handler.Response {
	spec, err := s.lookup(req.Form)
	if err != nil {
		return handler.Error(err)
	}
	png, err := s.qr.PNG(s.cfg.PaymentPayload + "?ref=" + url.QueryEscape(spec.Slug))
	if err != nil {
		return handler.Error(err)
	}
	if environment.IsProduction(ctx) {
		return handler.CachedBlob("image/png", "public, max-age=86400", png)
	}
	return handler.Blob("image/png", png)
}

// sendChanges streams every element changed since the last flush, then any
// alerts raised.
func (s *Site) sendChanges(stream handler.StreamContext, inst *instance) error {
	decorate := s.decorator(inst)
	for _, el := range inst.doc.Flush() {
		if err := stream.SendComponent(views.Element(el, decorate)); err != nil {
			return err
		}
	}
	for _, msg := range inst.doc.Alerts() {
		err := stream.SendComponent(views.Alert(msg),
			handler.WithTarget("#"+views.AlertsID),
			handler.WithPatchMode(handler.PatchAppend),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Site) render(inst *instance, alerts []string, summary ...string) templ.Component {
	signals, _ := json.Marshal(inst.signals())
	return views.Layout(views.LayoutParams{
		Title:   inst.spec.Title,
		Script:  s.cfg.DatastarScript,
		Nav:     s.nav(),
		Signals: string(signals),
		Alerts:  alerts,
	}, views.FormPage(inst.spec, inst.doc, summary, s.decorator(inst)))
}

// summarize keeps the first message of every failed field, in form order.
func summarize(failures validator.ValidationErrors) []string {
	var out []string
	for _, field := range failures.Fields() {
		if msgs := failures.Get(field); len(msgs) > 0 {
			out = append(out, msgs[0])
		}
	}
	return out
}

// decorator binds controls to signals and wires the events the engine
// listens to back to the server.
func (s *Site) decorator(inst *instance) views.Decorator {
	slug := inst.spec.Slug
	post := func(target string, ev form.EventType) string {
		return "@post('" + eventURL(slug, target, ev) + "')"
	}
	on := func(attrs []dom.Attr, target string, events ...form.EventType) []dom.Attr {
		if !inst.engine.Listens(target) {
			return attrs
		}
		for _, ev := range events {
			name := "data-on:" + string(ev)
			if ev == form.EventInput {
				name += "__debounce.250ms"
			}
			attrs = append(attrs, dom.Attr{Name: name, Value: post(target, ev)})
		}
		return attrs
	}

	return func(el *dom.Element) []dom.Attr {
		if el.ID() == inst.spec.FormID {
			return []dom.Attr{
				{Name: "action", Value: submitURL(slug)},
				{Name: "data-on:submit__prevent", Value: "@post('" + submitURL(slug) + "')"},
			}
		}

		switch el.Tag() {
		case "input":
			switch el.Type() {
			case "file":
				id := el.ID()
				expr := fmt.Sprintf("$%s = el.files[0]?.name ?? ''; $%s = el.files[0]?.size ?? 0; %s",
					fileNameSignal(id), fileSizeSignal(id), post(id, form.EventChange))
				return []dom.Attr{{Name: "data-on:change", Value: expr}}
			case "radio":
				return on([]dom.Attr{{Name: "data-bind", Value: el.Name()}}, el.Name(), form.EventChange)
			case "checkbox":
				return on([]dom.Attr{{Name: "data-bind", Value: el.ID()}}, el.ID(), form.EventChange)
			}
			return on([]dom.Attr{{Name: "data-bind", Value: el.ID()}}, el.ID(), form.EventBlur, form.EventInput)
		case "textarea":
			return on([]dom.Attr{{Name: "data-bind", Value: el.ID()}}, el.ID(), form.EventBlur, form.EventInput)
		case "select":
			return on([]dom.Attr{{Name: "data-bind", Value: el.ID()}}, el.ID(), form.EventChange)
		}
		return nil
	}
}

package site

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/dmitrymomot/formkit/pkg/dom"
	"github.com/dmitrymomot/formkit/pkg/form"
)

// instance is one request's copy of a form page.
type instance struct {
	spec     *form.FormSpec
	doc      *dom.Document
	engine   *form.Engine
	deferred *form.Deferred
}

// fileNameSignal and fileSizeSignal name the signals that report the file
// chosen in a file input.
func fileNameSignal(id string) string { return id + "Name" }
func fileSizeSignal(id string) string { return id + "Size" }

// newInstance builds the page for spec and replays values into it. A nil
// values map leaves the page as first rendered. The replayed values and the
// state Restore derives from them mirror what the browser already shows, so
// the change journal is empty on return: only what the next event writes
// gets patched.
func newInstance(spec *form.FormSpec, values map[string]string, log *slog.Logger, opts ...form.BindOption) (*instance, error) {
	doc, err := form.Build(spec)
	if err != nil {
		return nil, err
	}
	deferred := new(form.Deferred)
	opts = append([]form.BindOption{form.WithScheduler(deferred), form.WithLogger(log)}, opts...)
	engine, err := form.Bind(doc, spec, opts...)
	if err != nil {
		return nil, fmt.Errorf("bind %q: %w", spec.Slug, err)
	}

	if values != nil {
		for _, f := range spec.Fields {
			doc.Get(f.ID).SetFormValue(values[f.ID])
		}
		for _, a := range spec.Acknowledgements {
			doc.Get(a.ID).SetFormValue(values[a.ID])
		}
		for _, f := range spec.Files {
			size, _ := strconv.ParseInt(values[fileSizeSignal(f.ID)], 10, 64)
			form.SetFile(doc.Get(f.ID), values[fileNameSignal(f.ID)], size)
		}
		engine.Restore()
	}
	doc.Flush()

	return &instance{spec: spec, doc: doc, engine: engine, deferred: deferred}, nil
}

func (s *Site) open(spec *form.FormSpec, values map[string]string) (*instance, error) {
	var opts []form.BindOption
	if s.cfg.ResetDelay > 0 {
		opts = append(opts, form.WithResetDelay(s.cfg.ResetDelay))
	}
	return newInstance(spec, values, s.log, opts...)
}

// signals returns the client signal values matching the page state.
func (in *instance) signals() map[string]any {
	out := make(map[string]any, len(in.spec.Fields)+len(in.spec.Acknowledgements)+2*len(in.spec.Files))
	for _, f := range in.spec.Fields {
		el := in.doc.Get(f.ID)
		if f.Kind == form.KindCheckbox {
			out[f.ID] = el.Checked()
			continue
		}
		out[f.ID] = el.FormValue()
	}
	for _, a := range in.spec.Acknowledgements {
		out[a.ID] = in.doc.Get(a.ID).Checked()
	}
	for _, f := range in.spec.Files {
		name, size := form.ChosenFile(in.doc.Get(f.ID))
		out[fileNameSignal(f.ID)] = name
		out[fileSizeSignal(f.ID)] = size
	}
	return out
}

// resetDelay reports how long the pending reset waits.
func (in *instance) resetDelay() time.Duration { return in.deferred.Delay() }

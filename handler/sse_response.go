package handler

import (
	"net/http"
)

// SSEHandler writes to a datastar event stream until it returns.
type SSEHandler func(ctx StreamContext) error

type sseResponse struct {
	handler SSEHandler
}

// Render opens the stream and runs the handler. Non-datastar requests are
// rejected with 400.
func (s sseResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		return NewHTTPError(http.StatusBadRequest, "datastar_required")
	}

	base := NewContext(w, r)
	return s.handler(&streamContext{Context: base, sse: base.SSE()})
}

// SSE creates a response that streams patches from handler.
//
//	return handler.SSE(func(stream handler.StreamContext) error {
//		if err := stream.SendComponent(views.Element(group)); err != nil {
//			return err
//		}
//		return stream.SendSignals(map[string]any{"name": ""})
//	})
func SSE(handler SSEHandler) Response {
	return sseResponse{handler: handler}
}

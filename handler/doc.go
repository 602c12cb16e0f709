// Package handler adapts typed handler functions to net/http for the form site.
//
// A HandlerFunc receives a Context and a request struct filled by binders and
// returns a Response. Responses pick their wire format from the request:
// datastar actions get a server-sent event stream of element patches, plain
// browser requests get a full HTML document.
//
//	h := handler.HandlerFunc[handler.Context, FieldEventRequest](
//		func(ctx handler.Context, req FieldEventRequest) handler.Response {
//			return handler.SSE(func(stream handler.StreamContext) error {
//				return stream.SendComponent(views.Element(group))
//			})
//		},
//	)
//
//	r.Post("/forms/{form}/fields/{field}/{event}", handler.Wrap(h,
//		handler.WithBinders[handler.Context, FieldEventRequest](
//			binder.Path(chi.URLParam),
//			binder.Signals(),
//		),
//		handler.WithErrorHandler[handler.Context, FieldEventRequest](errorHandler),
//	))
//
// Binding and rendering failures go to the ErrorHandler. NewErrorHandler logs
// them with the request id and answers with an error page, or with an alert
// patch for datastar actions. HTTPError carries the status code.
package handler

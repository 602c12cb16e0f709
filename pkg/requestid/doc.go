// Package requestid attaches a correlation id to every HTTP request.
//
// Middleware reuses a well-formed X-Request-ID header sent by the client or
// generates a UUIDv4, stores the id in the request context and echoes it in
// the response header. FromContext reads it back, and LoggerExtractor copies
// it into every slog record logged with the request context.
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
package requestid

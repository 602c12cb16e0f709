// Package httpserver runs an http.Handler with graceful shutdown.
//
// Server.Run listens on the configured address and blocks until the context
// is cancelled, SIGINT or SIGTERM arrives, or the listener fails. In-flight
// requests get the shutdown timeout to finish; long-lived event streams see
// their request context cancelled.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// HealthCheckHandler serves liveness and readiness checks.
package httpserver

// Package logger builds slog loggers for the form site.
//
// New creates a *slog.Logger configured by Option functions: output format,
// level, static attributes and ContextExtractor callbacks that copy
// request-scoped values (such as the request id) into every record.
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Development, "formsite"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "form submitted", logger.Form("contact"))
//
// The attribute helpers in attr.go keep key names consistent. Error returns an
// empty attribute for a nil error, so it can be passed unconditionally.
package logger

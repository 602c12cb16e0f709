package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/requestid"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// ErrorPageParams contains data for rendering error pages.
type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
	RetryURL   string
}

// ErrorAlertParams contains data for rendering an error notice into a live page.
type ErrorAlertParams struct {
	Message   string
	Type      string // "error", "warning"
	RequestID string
}

// ErrorHandlerConfig configures NewErrorHandler.
type ErrorHandlerConfig struct {
	// ErrorPage renders a full page for regular requests.
	ErrorPage func(ErrorPageParams) templ.Component

	// ErrorAlert renders the notice patched into the page for datastar requests.
	ErrorAlert func(ErrorAlertParams) templ.Component

	// AlertTarget is where notices go (default "#alerts").
	AlertTarget string
}

// ErrorInfo is the classified form of an error.
type ErrorInfo struct {
	StatusCode int
	Message    string
	Type       string
	LogLevel   slog.Level
}

var statusMessages = map[int]string{
	http.StatusBadRequest:          "The request could not be understood.",
	http.StatusNotFound:            "The page you are looking for does not exist.",
	http.StatusMethodNotAllowed:    "This action is not allowed here.",
	http.StatusUnprocessableEntity: "The request could not be processed.",
}

// ClassifyError maps err to a status code, a user-facing message and a log level.
func ClassifyError(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Message:    "An error occurred processing your request",
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		info.StatusCode = httpErr.Code
	}
	if validator.IsValidationError(err) {
		info.StatusCode = http.StatusBadRequest
	}
	if msg, ok := statusMessages[info.StatusCode]; ok {
		info.Message = msg
	}

	info.Type = "error"
	info.LogLevel = slog.LevelError
	if info.StatusCode >= http.StatusBadRequest && info.StatusCode < http.StatusInternalServerError {
		info.Type = "warning"
		info.LogLevel = slog.LevelWarn
	}
	return info
}

func logError(log *slog.Logger, ctx Context, err error, info ErrorInfo) {
	r := ctx.Request()
	log.LogAttrs(r.Context(), info.LogLevel, "request error",
		logger.RequestID(requestid.FromContext(r.Context())),
		logger.Error(err),
		slog.Int("status_code", info.StatusCode),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Bool("is_datastar", IsDataStar(r)),
		logger.Component("error_handler"),
	)
}

// NewErrorHandler creates an error handler that logs the error and renders
// an alert patch for datastar requests or an error page otherwise.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}
	if cfg.AlertTarget == "" {
		cfg.AlertTarget = "#alerts"
	}

	return func(ctx Context, err error) {
		requestID := requestid.FromContext(ctx.Request().Context())
		info := ClassifyError(err)
		logError(log, ctx, err, info)

		if IsDataStar(ctx.Request()) {
			renderAlert(ctx, cfg, info, requestID, log)
			return
		}
		renderPage(ctx, cfg, info, requestID, log)
	}
}

func renderAlert(ctx Context, cfg ErrorHandlerConfig, info ErrorInfo, requestID string, log *slog.Logger) {
	sse := ctx.SSE()
	if cfg.ErrorAlert == nil || sse == nil {
		log.Warn("no error alert rendered for datastar request",
			logger.RequestID(requestID),
			logger.Component("error_handler"),
		)
		return
	}

	component := cfg.ErrorAlert(ErrorAlertParams{
		Message:   info.Message,
		Type:      info.Type,
		RequestID: requestID,
	})
	if err := sse.PatchElementTempl(component, WithTarget(cfg.AlertTarget), WithPatchMode(PatchAppend)); err != nil {
		log.Error("failed to render error alert",
			logger.RequestID(requestID),
			logger.Error(err),
			logger.Event("render_error_alert"),
		)
	}
}

func renderPage(ctx Context, cfg ErrorHandlerConfig, info ErrorInfo, requestID string, log *slog.Logger) {
	if cfg.ErrorPage == nil {
		http.Error(ctx.ResponseWriter(), info.Message, info.StatusCode)
		return
	}

	component := cfg.ErrorPage(ErrorPageParams{
		Error:      info.Message,
		StatusCode: info.StatusCode,
		RequestID:  requestID,
		RetryURL:   ctx.Request().URL.Path,
	})

	if err := TemplWithStatus(info.StatusCode, component).Render(ctx.ResponseWriter(), ctx.Request()); err != nil {
		log.Error("failed to render error page",
			logger.RequestID(requestID),
			logger.Error(err),
			logger.Event("render_error_page"),
		)
	}
}

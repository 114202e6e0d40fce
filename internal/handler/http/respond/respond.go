// Package respond writes JSON responses and error bodies.
// Error bodies always have the shape {"error": msg}; internal details are
// logged with secrets masked and never sent to the client.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"docdigest/internal/observability/logging"
)

// InternalMessage is the body sent for every unclassified 5xx error.
const InternalMessage = "internal server error"

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Headers are already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes a JSON error response with the given status code and error message.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, map[string]string{"error": err.Error()})
}

// AppError is an error type that carries a user-facing message.
type AppError struct {
	UserMsg string // Message to display to users
	Err     error  // Internal error (logged for debugging)
	Code    int    // HTTP status code
}

// Error returns the error message, implementing the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.UserMsg
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError with the given parameters.
func NewAppError(code int, userMsg string, err error) *AppError {
	return &AppError{Code: code, UserMsg: userMsg, Err: err}
}

// SafeError writes err for the client.
// An *AppError anywhere in the chain is answered with its own code and user
// message. Anything else becomes a generic message with the given code, and
// the sanitized cause is logged with the request's logger.
func SafeError(w http.ResponseWriter, r *http.Request, code int, err error) {
	if err == nil {
		return
	}
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Err != nil {
			level := slog.LevelWarn
			if appErr.Code >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.Log(ctx, level, "request failed",
				slog.Int("code", appErr.Code),
				slog.String("user_message", appErr.UserMsg),
				slog.String("error", SanitizeError(appErr.Err)))
		}
		JSON(w, appErr.Code, map[string]string{"error": appErr.UserMsg})
		return
	}

	logger.ErrorContext(ctx, "internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))
	JSON(w, code, map[string]string{"error": InternalMessage})
}

package rustywords

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/oversys/Rusty-Words/internal/errors"
)

// HTTPError is an error with an HTTP status code.
type HTTPError struct {
	Code    int    // HTTP status code (e.g., 400, 404, 500)
	Message string // Error message returned to the client
	Err     error  // Optional underlying error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *HTTPError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code for this error.
func (e *HTTPError) StatusCode() int {
	return e.Code
}

// BadRequest creates a 400 Bad Request error.
func BadRequest(err error) *HTTPError {
	msg := "bad request"
	if err != nil {
		msg = err.Error()
	}
	return &HTTPError{Code: http.StatusBadRequest, Message: msg, Err: err}
}

// BadRequestf creates a 400 Bad Request error with a formatted message.
func BadRequestf(format string, args ...any) *HTTPError {
	return &HTTPError{Code: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// statusCode maps err to an HTTP status. Store errors map by code: not
// found is 404, an invalid word is 400, anything else is 500.
func statusCode(err error) int {
	var sc interface{ StatusCode() int }
	if stderrors.As(err, &sc) {
		return sc.StatusCode()
	}

	switch errors.Code(err) {
	case "E300":
		return http.StatusNotFound
	case "E301":
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response write failed", "error", err)
	}
}

// writeError writes {"error": ...}. Internal errors are logged and their
// detail withheld from the client.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := statusCode(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
		msg = http.StatusText(status)
	}
	writeJSON(w, logger, status, map[string]string{"error": msg})
}

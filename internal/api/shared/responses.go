package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Response statuses used in the envelope.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the uniform response wrapper used by every endpoint,
// success and failure alike.
type Envelope struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Data    any    `json:"data"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondSuccess writes a success envelope with the given message and data.
// A nil data renders as an empty JSON object, never null.
func RespondSuccess(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	if data == nil {
		data = map[string]any{}
	}
	RespondWithJSON(w, r, status, Envelope{
		Message: message,
		Status:  StatusSuccess,
		Data:    data,
	})
}

// RespondError writes an error envelope with the given message.
// It logs the response with the trace ID for correlation; 5xx responses log
// at ERROR level, everything else at DEBUG.
func RespondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	traceID := GetTraceID(r.Context())

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("message", message),
	}
	// The raw error goes to the log only; the client sees just the
	// envelope message.
	if err != nil {
		logAttrs = append(logAttrs, slog.String("error", err.Error()))
	}
	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, Envelope{
		Message: message,
		Status:  StatusError,
		Data:    map[string]any{},
	})
}

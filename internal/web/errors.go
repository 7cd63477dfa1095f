package web

// errors.go provides unified error response handling for the web layer.
//
// Handlers call respondError(w, r, err, statusCode); the technical error is
// logged server-side with the request ID for correlation, and the client
// receives a user-friendly JSON body with a support code.

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"clinicstats/internal/visits"
	"github.com/go-chi/chi/v5/middleware"
)

// ErrorResponse is the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs the technical error and writes the mapped user message.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := visits.MapError(err)

	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
		"request_id", middleware.GetReqID(r.Context()),
	)

	writeErrorCode(w, statusCode, userMsg)
}

// respondBadRequest writes a request-validation error without going through
// the data error mapping.
func (s *Server) respondBadRequest(w http.ResponseWriter, r *http.Request, detail string) {
	slog.Warn("bad request",
		"path", r.URL.Path,
		"detail", detail,
		"request_id", middleware.GetReqID(r.Context()),
	)

	writeErrorCode(w, http.StatusBadRequest, visits.UserMessage{
		Message: "Invalid request parameters: " + detail,
		Action:  "Check the filter values and try again.",
		Code:    "REQ001",
	})
}

// writeErrorCode writes a JSON error response for the given user message.
func writeErrorCode(w http.ResponseWriter, statusCode int, msg visits.UserMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// writeJSON writes a successful JSON response.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

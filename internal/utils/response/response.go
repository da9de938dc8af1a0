// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Success responses may be any JSON shape (a record, a list). Everything
// else uses one of two envelopes:
//
//	{ "message": "Book not found" }
//	{ "errors": [ { "field": "title", "message": "Title is required" } ] }
//
// Server errors add an "error" field with the internal detail only when
// the process runs in development mode.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/aanand-mishra/library-api/internal/validation"
)

// Message is the envelope for 404s, 500s and confirmations.
type Message struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Errors is the envelope for 400 responses.
type Errors struct {
	Errors []validation.FieldError `json:"errors"`
}

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

func Text(msg string) Message {
	return Message{Message: msg}
}

// ServerError hides err from the client unless dev is set.
func ServerError(msg string, err error, dev bool) Message {
	m := Message{Message: msg}
	if dev && err != nil {
		m.Error = err.Error()
	}
	return m
}

func ValidationError(errs []validation.FieldError) Errors {
	return Errors{Errors: errs}
}

// BadBody reports an unreadable request body with the same shape as a
// validation failure.
func BadBody(msg string) Errors {
	return Errors{Errors: []validation.FieldError{{Field: "body", Message: msg}}}
}

package remote

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// APIError is a request the service rejected.
type APIError struct {
	// URL is the requested URL.
	URL string
	// StatusCode is the HTTP status.
	StatusCode int
	// Code is the service's own result code, when the body carried one.
	Code int
	// Message is the service's message, when the body carried one.
	Message string
	// Detail is the first line of the service's error data.
	Detail string
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "request to %s failed with status %d", e.URL, e.StatusCode)
	if e.Code != 0 {
		fmt.Fprintf(&b, ", code %d", e.Code)
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	if e.Detail != "" {
		b.WriteString(" (" + e.Detail + ")")
	}
	return b.String()
}

// errorBody is the shape of a failed response.
type errorBody struct {
	Code    int     `json:"code"`
	Message *string `json:"message"`
	Data    any     `json:"data"`
}

// newAPIError builds an APIError, reading code and message from body when
// it is a JSON error document.
func newAPIError(url string, status int, body []byte) *APIError {
	e := &APIError{URL: url, StatusCode: status}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return e
	}
	e.Code = eb.Code
	if eb.Message != nil {
		e.Message = *eb.Message
	}
	if detail, ok := eb.Data.(string); ok {
		e.Detail, _, _ = strings.Cut(detail, "\n")
	}
	return e
}

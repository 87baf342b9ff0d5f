package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
)

// Kind classifies a gateway failure.
type Kind int

const (
	// KindTransport means the request never completed (network, timeout, cancellation).
	KindTransport Kind = iota + 1

	// KindClient is a 4xx response.
	KindClient

	// KindServer is a 5xx response.
	KindServer

	// KindDecode is a body that could not be converted: a 2xx response that
	// did not match the expected shape, or a request value that failed to marshal.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindClient:
		return "client"
	case KindServer:
		return "server"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by the gateway client.
type Error struct {
	Kind Kind

	// StatusCode is the HTTP status, or 0 when no response arrived.
	StatusCode int

	// Message is the human-readable message: the backend detail,
	// "HTTP <status>", or the underlying failure.
	Message string

	// RequestID is the X-Request-ID sent with the request.
	RequestID string

	// Err is the underlying cause for transport and decode failures.
	Err error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the cause and the domain sentinel matching the status.
func (e *Error) Unwrap() []error {
	var errs []error
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	switch e.StatusCode {
	case http.StatusUnauthorized:
		errs = append(errs, domain.ErrAuthRequired)
	case http.StatusForbidden:
		errs = append(errs, domain.ErrForbidden)
	case http.StatusNotFound:
		errs = append(errs, domain.ErrNotFound)
	}
	if e.Kind == KindDecode {
		errs = append(errs, domain.ErrInvalidPayload)
	}
	return errs
}

// errorBody is the FastAPI error envelope.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// validationIssue is one entry of a FastAPI 422 detail list.
type validationIssue struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// statusError builds the error for a non-2xx response.
func statusError(status int, body []byte) *Error {
	kind := KindClient
	if status >= 500 {
		kind = KindServer
	}

	msg := fmt.Sprintf("HTTP %d", status)
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && len(eb.Detail) > 0 {
		if detail := detailMessage(eb.Detail); detail != "" {
			msg = detail
		}
	}

	return &Error{Kind: kind, StatusCode: status, Message: msg}
}

// detailMessage renders a string detail or a validation issue list.
func detailMessage(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var issues []validationIssue
	if err := json.Unmarshal(raw, &issues); err != nil {
		return ""
	}
	parts := make([]string, 0, len(issues))
	for _, issue := range issues {
		if issue.Msg == "" {
			continue
		}
		loc := make([]string, 0, len(issue.Loc))
		for _, l := range issue.Loc {
			loc = append(loc, fmt.Sprint(l))
		}
		if len(loc) == 0 {
			parts = append(parts, issue.Msg)
			continue
		}
		parts = append(parts, strings.Join(loc, ".")+": "+issue.Msg)
	}
	return strings.Join(parts, "; ")
}

// KindOf returns the kind of a gateway error, or 0 if err is not one.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}

// StatusOf returns the HTTP status of a gateway error, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

// IsForbidden checks if the error indicates a missing role.
func IsForbidden(err error) bool {
	return StatusOf(err) == http.StatusForbidden
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

// IsTransport checks if the request never completed.
func IsTransport(err error) bool {
	return KindOf(err) == KindTransport
}

// IsDecode checks if a successful response had an unexpected shape.
func IsDecode(err error) bool {
	return KindOf(err) == KindDecode
}

package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from transport errors raised by the gateway client,
// which unwrap to the matching sentinel where one exists.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidPayload indicates a backend response did not match the expected shape.
	ErrInvalidPayload = errors.New("invalid payload")

	// ErrAuthRequired indicates the request needs a logged-in session.
	ErrAuthRequired = errors.New("authentication required")

	// ErrForbidden indicates the session lacks the required role (usually admin).
	ErrForbidden = errors.New("forbidden")

	// ErrNotPDF indicates an upload candidate is not a readable PDF.
	ErrNotPDF = errors.New("not a PDF document")
)

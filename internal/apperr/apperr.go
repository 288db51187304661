// Package apperr defines the error kinds the clustering API surfaces to
// callers. Each component reports its own kind; handlers map kinds to HTTP
// status codes without silent conversion.
package apperr

import (
	"errors"
	"fmt"
)

// Kind discriminates caller-visible failures.
type Kind string

const (
	NotEligible       Kind = "not_eligible"
	TooFewKeywords    Kind = "too_few_keywords"
	TooManyKeywords   Kind = "too_many_keywords"
	QuotaExhausted    Kind = "quota_exhausted"
	NotFound          Kind = "not_found"
	UnsupportedFormat Kind = "unsupported_format"
	Internal          Kind = "internal_error"
)

// Error is a tagged error with an optional structured payload.
type Error struct {
	Kind    Kind
	Message string
	Details map[string]any
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New creates a tagged error.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates a tagged error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a tagged error around a cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// WithDetails attaches a structured payload and returns the error.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// KindOf extracts the kind of err, defaulting to Internal for untagged errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Internal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// DetailsOf extracts the structured payload of err, if any.
func DetailsOf(err error) map[string]any {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Details
	}
	return nil
}

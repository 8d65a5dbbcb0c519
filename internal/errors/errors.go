// Package errors defines the failure taxonomy shared by the service, the HTTP
// boundary and the CLI.
package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/lifegrid/internal/logger"
)

// Kind classifies a failure the caller can act on. Anything without a Kind is
// an internal (usually storage) failure.
type Kind string

const (
	KindValidation Kind = "validation_error"
	KindFutureDate Kind = "future_date"
	KindRange      Kind = "range_error"
	KindNotFound   Kind = "not_found"
)

// Error is a classified failure.
type Error struct {
	Kind    Kind
	Field   string // offending input field, if any (e.g. "hours[3]")
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports malformed input shape or range.
func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// Validationf is Validation with a format string.
func Validationf(field, format string, args ...interface{}) *Error {
	return Validation(field, fmt.Sprintf(format, args...))
}

// FutureDate reports a write aimed at a date after today.
func FutureDate(what string, date fmt.Stringer) *Error {
	return &Error{
		Kind:    KindFutureDate,
		Field:   "date",
		Message: fmt.Sprintf("cannot write %s for future date %s", what, date),
	}
}

// Range reports a query whose start bound is after its end bound.
func Range(start, end fmt.Stringer) *Error {
	return &Error{
		Kind:    KindRange,
		Field:   "start_date",
		Message: fmt.Sprintf("start_date (%s) must be on or before end_date (%s)", start, end),
	}
}

// NotFound reports a lookup or delete by identity that matched nothing.
func NotFound(what, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %s not found", what, id)}
}

// KindOf returns the Kind of the first classified error in err's chain, or "".
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given Kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err, "kind", KindOf(err))
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}

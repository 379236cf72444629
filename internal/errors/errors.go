// Package errors defines the structured error every tessera-gen command
// returns. The Code picks the exit path and the JSON error code; Message,
// Cause and Suggestion are printed in that order.
package errors

import (
	"errors"
	"strings"
)

// Error codes.
const (
	ErrConfig    = "CONFIG"    // unreadable or invalid configuration
	ErrTemplate  = "TEMPLATE"  // a query template failed to render
	ErrTransport = "TRANSPORT" // the Tessera API call failed
	ErrInput     = "INPUT"     // bad stdin, arguments or prompt input
)

// Error is printed as
//
//	✗ <message>
//
//	  <cause>
//
//	  <suggestion>
//
// with the last two blocks omitted when empty.
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New returns an Error without a cause.
func New(code, message, suggestion string) *Error {
	return &Error{Code: code, Message: message, Suggestion: suggestion}
}

// WrapWithCode returns an Error around err.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	e := New(code, message, suggestion)
	e.Cause = err
	return e
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("✗ " + e.Message + "\n")
	for _, detail := range e.details() {
		b.WriteString("\n  " + detail + "\n")
	}
	return b.String()
}

func (e *Error) details() []string {
	var out []string
	if e.Cause != nil {
		out = append(out, e.Cause.Error())
	}
	if e.Suggestion != "" {
		out = append(out, e.Suggestion)
	}
	return out
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode reports whether err, or an error it wraps, is an *Error with code.
func IsCode(err error, code string) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

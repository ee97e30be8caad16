// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package catalog

import (
	"errors"
	"fmt"
)

// The stable five-character codes carried by resolution errors.
const (
	// CodeSyntax reports a specifier that cannot be parsed, including
	// malformed or mismatched explicit parameter signatures.
	CodeSyntax = "42601"
	// CodeNoSuchClass reports a class name that cannot be resolved, or
	// a resolved class that does not satisfy a required contract.
	CodeNoSuchClass = "46103"
	// CodeNoSuchMethod reports that no callable matches the computed
	// entry point signature.
	CodeNoSuchMethod = "38000"
	// CodeInternal reports an inconsistency that indicates a defect
	// rather than bad input.
	CodeInternal = "XX000"
)

// Error is an error carrying one of the stable resolution codes. The
// message and any wrapped cause are reached through the usual errors
// functions.
type Error struct {
	// Code is the five-character code classifying the failure.
	Code string

	err error
}

func (e *Error) Error() string {
	return e.err.Error()
}

func (e *Error) Unwrap() error {
	return e.err
}

// Errorf returns an *Error with the given code and a message built like
// fmt.Errorf, including support for the %w verb.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{Code: code, err: fmt.Errorf(format, args...)}
}

// ErrorCode returns the code of the first *Error in err's chain, or the
// empty string when err carries no code.
func ErrorCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

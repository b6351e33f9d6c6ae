package github

import (
	"errors"
	"fmt"
)

// Kind classifies a search failure so callers can branch on it.
type Kind string

const (
	KindUnknown           Kind = "Unknown"
	KindValidation        Kind = "ValidationError"
	KindDependencyMissing Kind = "DependencyMissingError"
	KindExternalTool      Kind = "ExternalToolError"
	KindParse             Kind = "ParseError"
	KindDecode            Kind = "DecodeError"
)

// exitCodes maps each kind to the process exit status used by main.
var exitCodes = map[Kind]int{
	KindUnknown:           1,
	KindValidation:        2,
	KindDependencyMissing: 3,
	KindExternalTool:      4,
	KindParse:             5,
	KindDecode:            6,
}

// Error is a categorized failure with an optional underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf creates an Error of the given kind without a cause.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error of the given kind around err.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// ExitCode returns the process exit status for err. A nil error is 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return exitCodes[KindOf(err)]
}

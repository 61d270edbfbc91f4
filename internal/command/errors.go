package command

import "errors"

var (
	ErrParse        = errors.New("parse error")
	ErrUnauthorized = errors.New("signature mismatch")
	ErrUnsupported  = errors.New("unsupported function")
)

var (
	ErrNotAvailable    error = newError(ErrUnsupported, "Function not yet available.")
	ErrUnknownFunction error = newError(ErrUnsupported, "Unknown function.")
)

// Error carries the client facing message next to its error kind
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func parseError(detail string) *Error {
	msg := "Error parsing json data"
	if detail != "" {
		msg += " (" + detail + ")"
	}
	return newError(ErrParse, msg)
}

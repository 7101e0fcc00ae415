package verdict

import (
	"errors"
	"fmt"
)

// Kind classifies a validation failure independently of its display message.
type Kind string

const (
	KindMissing          Kind = "missing"
	KindMalformedFormat  Kind = "malformed_format"
	KindChecksumFailed   Kind = "checksum_failed"
	KindOutOfRange       Kind = "out_of_range"
	KindExpired          Kind = "expired"
	KindUnsupportedValue Kind = "unsupported_value"
)

// Sentinels for errors.Is. A *Error unwraps to the sentinel of its Kind.
var (
	ErrMissing          = errors.New("missing")
	ErrMalformedFormat  = errors.New("malformed format")
	ErrChecksumFailed   = errors.New("checksum failed")
	ErrOutOfRange       = errors.New("out of range")
	ErrExpired          = errors.New("expired")
	ErrUnsupportedValue = errors.New("unsupported value")
)

var sentinels = map[Kind]error{
	KindMissing:          ErrMissing,
	KindMalformedFormat:  ErrMalformedFormat,
	KindChecksumFailed:   ErrChecksumFailed,
	KindOutOfRange:       ErrOutOfRange,
	KindExpired:          ErrExpired,
	KindUnsupportedValue: ErrUnsupportedValue,
}

// Error is a single failed field check. Message is meant for display;
// callers that branch on the failure use Kind.
type Error struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the sentinel for e.Kind.
func (e *Error) Unwrap() error {
	return sentinels[e.Kind]
}

// String renders the error with its field and kind, for logs and CLI output.
func (e *Error) String() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Kind, e.Field, e.Message)
}

// New returns a *Error.
func New(kind Kind, field, message string) *Error {
	return &Error{Kind: kind, Field: field, Message: message}
}

func Missing(field, message string) *Error     { return New(KindMissing, field, message) }
func Malformed(field, message string) *Error   { return New(KindMalformedFormat, field, message) }
func Checksum(field, message string) *Error    { return New(KindChecksumFailed, field, message) }
func OutOfRange(field, message string) *Error  { return New(KindOutOfRange, field, message) }
func Expired(field, message string) *Error     { return New(KindExpired, field, message) }
func Unsupported(field, message string) *Error { return New(KindUnsupportedValue, field, message) }

// KindOf returns the Kind carried by err, or "" if err is nil or not a *Error.
func KindOf(err error) Kind {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Kind
	}
	return ""
}

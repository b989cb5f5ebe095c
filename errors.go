package avro

import (
	"errors"
	"fmt"

	"github.com/spindlelabs/avro/i18n"
)

// Error codes (exported consts for IDE completion and type safety by
// convention). Every schema construction failure carries exactly one code.
const (
	CodeDuplicateName    = "duplicate_name"
	CodeInvalidSchema    = "invalid_schema"
	CodeUnresolvedSymbol = "unresolved_symbol"
	CodeNameMismatch     = "name_mismatch"
	CodeIndexOutOfRange  = "index_out_of_range"
	CodeInvalidSize      = "invalid_size"
	CodeNoAttribute      = "no_attribute"
	CodeUnknownType      = "unknown_type"
	CodeParseError       = "parse_error"
	CodeDuplicateKey     = "duplicate_key"
)

// Error is the single schema-construction error category. It carries a code
// from the list above, a localized base message, and an optional hint with
// the offending name, index or literal.
type Error struct {
	Code    string
	Message string
	Hint    string
}

func (e *Error) Error() string {
	if e.Hint == "" {
		return fmt.Sprintf("avro: %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("avro: %s: %s (%s)", e.Code, e.Message, e.Hint)
}

// newError builds an Error with the localized message for code.
func newError(code, hint string) *Error {
	return &Error{Code: code, Message: i18n.T(code, nil), Hint: hint}
}

func errorf(code, format string, args ...any) *Error {
	return newError(code, fmt.Sprintf(format, args...))
}

// AsError extracts an *Error from err using errors.As internally.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

package scheduling

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownMonth = errors.New("unknown month")
	ErrInvalidDay   = errors.New("invalid day")
	ErrInvalidYear  = errors.New("invalid year")
	ErrInvalidTime  = errors.New("invalid time")
	ErrEndNotAfter  = errors.New("end is not after start")
)

// Field identifies which part of a booking's text failed to parse.
type Field string

const (
	FieldDate  Field = "date"
	FieldStart Field = "start"
	FieldEnd   Field = "end"
)

// ParseError reports unparseable date or time-range text.
type ParseError struct {
	Field Field
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s %q: %v", e.Field, e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError reports whether err is (or wraps) a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

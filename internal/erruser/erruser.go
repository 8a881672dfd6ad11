// Package erruser provides errors whose Error() text is safe to show a user:
// a plain-language message up front, with the technical cause reachable via
// Unwrap for a Details line or debug logs.
package erruser

import (
	"errors"
	"fmt"
)

// Err pairs a user-facing message with an optional cause. Error() returns
// only Msg so command names, URLs, and exit codes never leak into the primary
// line.
type Err struct {
	Msg string
	Err error
}

func (e *Err) Error() string {
	if e == nil {
		return ""
	}
	return e.Msg
}

// Unwrap returns the cause, if any.
func (e *Err) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New returns an error showing msg to the user. A non-nil err is kept as the
// wrapped cause; a nil err yields a plain error with no Unwrap.
func New(msg string, err error) error {
	if err == nil {
		return errors.New(msg)
	}
	return &Err{Msg: msg, Err: err}
}

// Newf is New with a formatted message.
func Newf(err error, format string, args ...any) error {
	return New(fmt.Sprintf(format, args...), err)
}

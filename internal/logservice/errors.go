package logservice

import (
	"errors"
	"fmt"
)

// ErrGroupNotFound is returned when the requested log group does not exist.
var ErrGroupNotFound = errors.New("log group not found")

var (
	_ error = (*TransportError)(nil)
	_ error = (*ParseError)(nil)
)

// TransportError is returned when the log service could not be reached or rejected the call.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError is returned when a response from the log service could not be decoded.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: unable to parse response: %s", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NotFound wraps ErrGroupNotFound with the name of the missing group.
func NotFound(group string) error {
	return fmt.Errorf("%w: %s", ErrGroupNotFound, group)
}

package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoTrigger is returned when the daemon starts without a registered trigger.
var ErrNoTrigger = errors.New("no daily trigger registered")

// ErrMalformedHeader is matched with errors.Is against *HeaderError.
var ErrMalformedHeader = errors.New("malformed sheet header")

// HeaderError reports a header row that does not match Columns.
type HeaderError struct {
	Got []string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("%v: got [%s], want [%s]", ErrMalformedHeader,
		strings.Join(e.Got, ", "), strings.Join(Columns, ", "))
}

func (e *HeaderError) Unwrap() error {
	return ErrMalformedHeader
}

// CheckHeader returns a *HeaderError unless header matches Columns exactly.
func CheckHeader(header []string) error {
	if len(header) != len(Columns) {
		return &HeaderError{Got: header}
	}
	for i, name := range Columns {
		if header[i] != name {
			return &HeaderError{Got: header}
		}
	}
	return nil
}

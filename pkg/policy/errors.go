// Package policy holds the screen-time rules: time accounting, trust
// scoring, schedule classification and the alert read/dismiss model.
//
// Every function here is pure. Callers own the state and persist whatever
// these functions return.
package policy

import (
	"errors"
	"fmt"
)

var ErrInvalidInput = errors.New("invalid input")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

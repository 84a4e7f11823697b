package board

import (
	"errors"
	"fmt"
)

// ErrParse is matched by every ParseError via errors.Is.
var ErrParse = errors.New("parse error")

// ParseError reports malformed FEN or notation input.
type ParseError struct {
	Field  string // which part of the input was rejected
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Input, e.Reason)
}

// Is lets errors.Is(err, ErrParse) match.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func parseErrorf(field, input, format string, args ...any) *ParseError {
	return &ParseError{Field: field, Input: input, Reason: fmt.Sprintf(format, args...)}
}

// InvariantViolation signals a defect in the caller or the generator.
// It is raised with panic, never returned.
type InvariantViolation struct {
	Op     string
	Reason string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("board invariant violated in %s: %s", e.Op, e.Reason)
}

func violate(op, reason string) {
	panic(&InvariantViolation{Op: op, Reason: reason})
}

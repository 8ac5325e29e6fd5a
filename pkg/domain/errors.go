package domain

import (
	"errors"
	"fmt"
)

// ErrDuplicateFieldID is returned at load time when two fields share an id.
// It is fatal: the configuration is malformed.
var ErrDuplicateFieldID = errors.New("duplicate field id")

// ErrUnknownOverrideTarget is returned when an override names an undeclared
// field. It is non-fatal; the override is dropped and processing continues.
var ErrUnknownOverrideTarget = errors.New("unknown override target")

// EvalError reports a formula evaluation failure scoped to a single field
// on a single pass. The field keeps its prior value; resolution continues.
type EvalError struct {
	FieldID string
	Formula string
	Err     error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("field %q: formula %q: %v", e.FieldID, e.Formula, e.Err)
}

func (e *EvalError) Unwrap() error {
	return e.Err
}

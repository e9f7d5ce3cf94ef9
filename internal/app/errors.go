package app

import (
	"errors"
	"fmt"
)

var (
	// ErrNoActiveDocument indicates no document has been opened.
	ErrNoActiveDocument = errors.New("no active document")

	// ErrInvalidPosition indicates a line or column outside the document.
	ErrInvalidPosition = errors.New("invalid position")
)

// InitError reports a component that failed to start.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("init %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// OperationError wraps a failure of an operation on a target.
type OperationError struct {
	Op     string // e.g. "open", "save"
	Target string
	Err    error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

func (e *OperationError) Error() string {
	msg := e.Op
	if e.Target != "" {
		msg += " " + e.Target
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

package lua

import "errors"

var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrTimeout is returned when a script outlives its deadline.
	ErrTimeout = errors.New("lua execution timeout")
)

// ScriptError wraps a failure raised while running a script.
type ScriptError struct {
	Chunk string
	Err   error
}

func (e *ScriptError) Error() string {
	return e.Chunk + ": " + e.Err.Error()
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

package execctx

import "errors"

// Context validation errors.
var (
	// ErrMissingBuffer indicates no document is open.
	ErrMissingBuffer = errors.New("execution context: buffer is required")

	// ErrMissingCursors indicates cursors are required but not set.
	ErrMissingCursors = errors.New("execution context: cursors are required")
)

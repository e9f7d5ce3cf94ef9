package dispatcher

import (
	"errors"
	"fmt"
	"strings"
)

// Dispatcher errors.
var (
	// ErrNoHandler indicates no handler was found for an action.
	ErrNoHandler = errors.New("dispatcher: no handler for action")

	// ErrActionCancelled indicates the action was cancelled by a hook.
	ErrActionCancelled = errors.New("dispatcher: action cancelled by hook")

	// ErrPanic indicates the handler panicked.
	ErrPanic = errors.New("dispatcher: handler panic")
)

// UnknownActionError reports an action no handler claims.
type UnknownActionError struct {
	Action      string
	Suggestions []string
}

func (e *UnknownActionError) Error() string {
	msg := fmt.Sprintf("no handler for action: %s", e.Action)
	if len(e.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(e.Suggestions, ", ") + "?)"
	}
	return msg
}

// Is matches ErrNoHandler.
func (e *UnknownActionError) Is(target error) bool {
	return target == ErrNoHandler
}

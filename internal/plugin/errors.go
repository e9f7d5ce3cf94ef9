package plugin

import "errors"

var (
	// ErrScriptNotFound is returned when no discovered script has the name.
	ErrScriptNotFound = errors.New("script not found")

	// ErrNoScript is returned when script.run receives neither code nor a path.
	ErrNoScript = errors.New("no script given")
)

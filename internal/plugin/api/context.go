package api

import (
	"github.com/dshills/easyprint/internal/dispatcher"
	"github.com/dshills/easyprint/internal/dispatcher/execctx"
	"github.com/dshills/easyprint/internal/logging"
)

// Setter overrides a setting at runtime.
type Setter interface {
	Set(path string, value any) error
}

// Context gives modules access to the host.
type Context struct {
	// Dispatcher runs commands and holds the active document.
	Dispatcher *dispatcher.Dispatcher

	// Settings receives ep.config.set calls. Nil makes settings read-only.
	Settings Setter

	// Logger receives ep.log output.
	Logger *logging.Logger
}

// exec returns a fresh execution context, or nil without a dispatcher.
func (c *Context) exec() *execctx.ExecutionContext {
	if c == nil || c.Dispatcher == nil {
		return nil
	}
	return c.Dispatcher.Context()
}

func (c *Context) log() *logging.Logger {
	if c == nil || c.Logger == nil {
		return logging.NullLogger
	}
	return c.Logger
}

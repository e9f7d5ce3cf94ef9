// Package execctx provides the execution context for action handlers.
package execctx

import (
	"time"

	"github.com/dshills/easyprint/internal/config"
	"github.com/dshills/easyprint/internal/engine/buffer"
	"github.com/dshills/easyprint/internal/engine/cursor"
	"github.com/dshills/easyprint/internal/logging"
)

// BufferInterface abstracts the text buffer for handlers.
type BufferInterface interface {
	buffer.Reader

	// Transact applies the edits collected by fn atomically.
	Transact(name string, fn func(tx *buffer.Transaction) error) (buffer.Change, error)
}

// CursorManagerInterface abstracts cursor management for handlers.
type CursorManagerInterface interface {
	Primary() cursor.Selection
	SetPrimary(sel cursor.Selection)
	HasSelection() bool
}

// ExecutionContext provides context for action execution.
// It is built fresh for every dispatch.
type ExecutionContext struct {
	// Buffer is the active document. Nil when no document is open.
	Buffer BufferInterface

	// Cursors provides access to cursor/selection state.
	Cursors CursorManagerInterface

	// Config is the configuration view handlers read settings from.
	Config config.Source

	// Logger receives handler diagnostics.
	Logger *logging.Logger

	// Buffer metadata
	FilePath      string
	WorkspaceRoot string

	// Now supplies the clock for time placeholders.
	Now func() time.Time

	// DryRun reports results without editing the buffer.
	DryRun bool

	// Data holds handler-specific context data.
	Data map[string]interface{}
}

// New creates a new execution context.
func New() *ExecutionContext {
	return &ExecutionContext{
		Logger: logging.NullLogger,
		Data:   make(map[string]interface{}),
	}
}

// WithBuffer returns the context with the buffer set.
func (ctx *ExecutionContext) WithBuffer(b BufferInterface) *ExecutionContext {
	ctx.Buffer = b
	return ctx
}

// WithCursors returns the context with cursors set.
func (ctx *ExecutionContext) WithCursors(cursors CursorManagerInterface) *ExecutionContext {
	ctx.Cursors = cursors
	return ctx
}

// WithConfig returns the context with the configuration set.
func (ctx *ExecutionContext) WithConfig(src config.Source) *ExecutionContext {
	ctx.Config = src
	return ctx
}

// WithLogger returns the context with the logger set.
func (ctx *ExecutionContext) WithLogger(l *logging.Logger) *ExecutionContext {
	if l != nil {
		ctx.Logger = l
	}
	return ctx
}

// WithFile returns the context with the file path and workspace root set.
func (ctx *ExecutionContext) WithFile(path, workspaceRoot string) *ExecutionContext {
	ctx.FilePath = path
	ctx.WorkspaceRoot = workspaceRoot
	return ctx
}

// WithDryRun returns the context with dry run mode set.
func (ctx *ExecutionContext) WithDryRun(dryRun bool) *ExecutionContext {
	ctx.DryRun = dryRun
	return ctx
}

// Log returns the context logger, never nil.
func (ctx *ExecutionContext) Log() *logging.Logger {
	if ctx.Logger == nil {
		return logging.NullLogger
	}
	return ctx.Logger
}

// Source returns the configuration, or an empty map when none is set.
func (ctx *ExecutionContext) Source() config.Source {
	if ctx.Config == nil {
		return config.Map{}
	}
	return ctx.Config
}

// HasSelection returns true if there is an active selection.
func (ctx *ExecutionContext) HasSelection() bool {
	if ctx.Cursors != nil {
		return ctx.Cursors.HasSelection()
	}
	return false
}

// CursorContext snapshots the buffer and primary selection for the
// resolvers.
func (ctx *ExecutionContext) CursorContext() cursor.Context {
	var sel cursor.Selection
	if ctx.Cursors != nil {
		sel = ctx.Cursors.Primary()
	}
	c := cursor.Context{
		Selection:     sel,
		FilePath:      ctx.FilePath,
		WorkspaceRoot: ctx.WorkspaceRoot,
		Now:           ctx.Now,
	}
	if ctx.Buffer != nil {
		c.Doc = ctx.Buffer
		c.Selection = sel.Clamp(ctx.Buffer.Len())
	}
	return c
}

// SetData sets a context data value.
func (ctx *ExecutionContext) SetData(key string, value interface{}) {
	if ctx.Data == nil {
		ctx.Data = make(map[string]interface{})
	}
	ctx.Data[key] = value
}

// GetData retrieves a context data value.
func (ctx *ExecutionContext) GetData(key string) (interface{}, bool) {
	if ctx.Data == nil {
		return nil, false
	}
	v, ok := ctx.Data[key]
	return v, ok
}

// Validate checks that the context has a buffer to work on.
func (ctx *ExecutionContext) Validate() error {
	if ctx.Buffer == nil {
		return ErrMissingBuffer
	}
	return nil
}

// ValidateForEdit checks that the context is valid for editing operations.
func (ctx *ExecutionContext) ValidateForEdit() error {
	if err := ctx.Validate(); err != nil {
		return err
	}
	if ctx.Cursors == nil {
		return ErrMissingCursors
	}
	return nil
}

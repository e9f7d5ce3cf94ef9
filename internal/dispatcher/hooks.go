package dispatcher

import (
	"github.com/dshills/easyprint/internal/dispatcher/execctx"
	"github.com/dshills/easyprint/internal/dispatcher/handler"
	"github.com/dshills/easyprint/internal/input"
	"github.com/dshills/easyprint/internal/logging"
)

// PreDispatchHook is called before an action is dispatched.
// Returning false cancels the dispatch.
type PreDispatchHook interface {
	PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool
}

// PostDispatchHook is called after an action is dispatched.
type PostDispatchHook interface {
	PostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result)
}

// PreDispatchFunc is a function adapter for PreDispatchHook.
type PreDispatchFunc func(action *input.Action, ctx *execctx.ExecutionContext) bool

// PreDispatch implements PreDispatchHook.
func (f PreDispatchFunc) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	return f(action, ctx)
}

// PostDispatchFunc is a function adapter for PostDispatchHook.
type PostDispatchFunc func(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result)

// PostDispatch implements PostDispatchHook.
func (f PostDispatchFunc) PostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	f(action, ctx, result)
}

// LoggingHook logs every dispatch at debug level and failures as errors.
type LoggingHook struct {
	logger *logging.Logger
}

// NewLoggingHook creates a logging hook. A nil logger uses the global one.
func NewLoggingHook(logger *logging.Logger) *LoggingHook {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &LoggingHook{logger: logger.WithComponent("dispatcher")}
}

// PreDispatch logs the action being dispatched.
func (h *LoggingHook) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	h.logger.WithField("source", action.Source.String()).
		Debug("dispatching %s (file=%s)", action.Name, ctx.FilePath)
	return true
}

// PostDispatch logs the dispatch result.
func (h *LoggingHook) PostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	if result.Error != nil {
		h.logger.Error("%s failed: %v", action.Name, result.Error)
		return
	}
	h.logger.Debug("dispatch complete: %s -> %s", action.Name, result.Status)
}

// ReadOnlyHook forces dry run for every action not listed in Allowed, so
// handlers report what they would insert without editing.
type ReadOnlyHook struct {
	Allowed map[string]bool
}

// PreDispatch implements PreDispatchHook.
func (h *ReadOnlyHook) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	if !h.Allowed[action.Name] {
		ctx.DryRun = true
	}
	return true
}

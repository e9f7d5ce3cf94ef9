package dispatcher

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/dshills/easyprint/internal/config"
	"github.com/dshills/easyprint/internal/dispatcher/execctx"
	"github.com/dshills/easyprint/internal/dispatcher/handler"
	"github.com/dshills/easyprint/internal/input"
	"github.com/dshills/easyprint/internal/logging"
)

// Dispatcher routes actions to handlers and coordinates execution.
type Dispatcher struct {
	mu sync.RWMutex

	registry *Registry
	router   *Router

	// Editor state
	buffer        execctx.BufferInterface
	cursors       execctx.CursorManagerInterface
	source        config.Source
	logger        *logging.Logger
	filePath      string
	workspaceRoot string
	now           func() time.Time

	config  Config
	metrics *Metrics

	preHooks  []PreDispatchHook
	postHooks []PostDispatchHook
}

// New creates a new dispatcher with the given configuration.
func New(config Config) *Dispatcher {
	d := &Dispatcher{
		registry: NewRegistry(),
		router:   NewRouter(),
		config:   config,
		logger:   logging.NullLogger,
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	return d
}

// NewWithDefaults creates a new dispatcher with default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// SetBuffer sets the active document. Nil means no document is open.
func (d *Dispatcher) SetBuffer(b execctx.BufferInterface) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.buffer = b
}

// SetCursors sets the cursor manager.
func (d *Dispatcher) SetCursors(cursors execctx.CursorManagerInterface) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cursors = cursors
}

// SetConfig sets the configuration handlers read from.
func (d *Dispatcher) SetConfig(src config.Source) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.source = src
}

// SetLogger sets the logger handed to handlers.
func (d *Dispatcher) SetLogger(l *logging.Logger) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if l == nil {
		l = logging.NullLogger
	}
	d.logger = l
}

// SetFile sets the document path and its workspace root.
func (d *Dispatcher) SetFile(path, workspaceRoot string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.filePath = path
	d.workspaceRoot = workspaceRoot
}

// SetClock overrides the clock used for time placeholders.
func (d *Dispatcher) SetClock(now func() time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.now = now
}

// Buffer returns the active document.
func (d *Dispatcher) Buffer() execctx.BufferInterface {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.buffer
}

// Cursors returns the cursor manager.
func (d *Dispatcher) Cursors() execctx.CursorManagerInterface {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cursors
}

// Dispatch executes an action synchronously.
func (d *Dispatcher) Dispatch(action input.Action) handler.Result {
	startTime := time.Now()
	ctx := d.Context()

	if !d.runPreHooks(&action, ctx) {
		return handler.CancelledWithMessage("cancelled by hook")
	}

	h := d.router.Route(action.Name)
	if h == nil {
		h = d.registry.Get(action.Name)
	}

	var result handler.Result
	switch {
	case h == nil:
		result = handler.Error(&UnknownActionError{
			Action:      action.Name,
			Suggestions: d.Suggest(action.Name),
		})
	case d.config.RecoverFromPanic:
		result = d.executeWithRecovery(h, action, ctx)
	default:
		result = h.Handle(action, ctx)
	}

	d.runPostHooks(&action, ctx, &result)

	if d.metrics != nil {
		d.metrics.RecordDispatch(action.Name, time.Since(startTime), result.Status)
	}
	return result
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(h handler.Handler, action input.Action, ctx *execctx.ExecutionContext) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			ctx.Log().Error("handler panic for %s: %v\n%s", action.Name, r, stack[:n])

			result = handler.Error(fmt.Errorf("%w: %s: %v", ErrPanic, action.Name, r))
			if d.metrics != nil {
				d.metrics.RecordPanic(action.Name)
			}
		}
	}()

	return h.Handle(action, ctx)
}

// Context returns an execution context for the current document state.
func (d *Dispatcher) Context() *execctx.ExecutionContext {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx := execctx.New().
		WithBuffer(d.buffer).
		WithCursors(d.cursors).
		WithConfig(d.source).
		WithLogger(d.logger).
		WithFile(d.filePath, d.workspaceRoot)
	ctx.Now = d.now
	return ctx
}

// Actions returns every action name the dispatcher can route.
func (d *Dispatcher) Actions() []string {
	seen := make(map[string]bool)
	var names []string
	for _, n := range append(d.router.Actions(), d.registry.List()...) {
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	return names
}

// Suggest returns the registered action names closest to name.
func (d *Dispatcher) Suggest(name string) []string {
	limit := d.config.MaxSuggestions
	if limit <= 0 || name == "" {
		return nil
	}
	matches := fuzzy.Find(name, d.Actions())
	out := make([]string, 0, limit)
	for _, m := range matches {
		out = append(out, m.Str)
		if len(out) == limit {
			break
		}
	}
	return out
}

// RegisterHandler registers a handler for an exact action name.
func (d *Dispatcher) RegisterHandler(actionName string, h handler.Handler) {
	d.registry.Register(actionName, h)
}

// RegisterHandlerFunc registers a handler function for an action name.
func (d *Dispatcher) RegisterHandlerFunc(actionName string, fn func(input.Action, *execctx.ExecutionContext) handler.Result) {
	d.registry.Register(actionName, handler.NewHandlerFunc(fn))
}

// RegisterNamespace registers a namespace handler.
func (d *Dispatcher) RegisterNamespace(namespace string, h handler.NamespaceHandler) {
	d.router.RegisterNamespace(namespace, h)
}

// RegisterPreHook registers a pre-dispatch hook.
func (d *Dispatcher) RegisterPreHook(hook PreDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.preHooks = append(d.preHooks, hook)
}

// RegisterPostHook registers a post-dispatch hook.
func (d *Dispatcher) RegisterPostHook(hook PostDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.postHooks = append(d.postHooks, hook)
}

// runPreHooks runs all pre-dispatch hooks.
// Returns false if any hook cancels the action.
func (d *Dispatcher) runPreHooks(action *input.Action, ctx *execctx.ExecutionContext) bool {
	d.mu.RLock()
	hooks := make([]PreDispatchHook, len(d.preHooks))
	copy(hooks, d.preHooks)
	d.mu.RUnlock()

	for _, h := range hooks {
		if !h.PreDispatch(action, ctx) {
			return false
		}
	}
	return true
}

// runPostHooks runs all post-dispatch hooks.
func (d *Dispatcher) runPostHooks(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	d.mu.RLock()
	hooks := make([]PostDispatchHook, len(d.postHooks))
	copy(hooks, d.postHooks)
	d.mu.RUnlock()

	for _, h := range hooks {
		h.PostDispatch(action, ctx, result)
	}
}

// Registry returns the handler registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Router returns the action router.
func (d *Dispatcher) Router() *Router {
	return d.router
}

// Metrics returns the metrics collector (may be nil if disabled).
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}

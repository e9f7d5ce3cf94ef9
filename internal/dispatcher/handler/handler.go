// Package handler provides the handler interface and types for action dispatch.
package handler

import (
	"sort"

	"github.com/dshills/easyprint/internal/dispatcher/execctx"
	"github.com/dshills/easyprint/internal/input"
)

// Handler processes a specific action or set of actions.
type Handler interface {
	// Handle executes the action and returns a result.
	Handle(action input.Action, ctx *execctx.ExecutionContext) Result

	// CanHandle returns true if this handler can process the action.
	CanHandle(actionName string) bool

	// Priority returns the handler priority (higher = checked first).
	Priority() int
}

// HandlerFunc is a function adapter for Handler interface.
type HandlerFunc struct {
	fn   func(action input.Action, ctx *execctx.ExecutionContext) Result
	prio int
}

// NewHandlerFunc creates a HandlerFunc from a function.
func NewHandlerFunc(fn func(action input.Action, ctx *execctx.ExecutionContext) Result) *HandlerFunc {
	return &HandlerFunc{fn: fn}
}

// NewHandlerFuncWithPriority creates a HandlerFunc with a specified priority.
func NewHandlerFuncWithPriority(fn func(action input.Action, ctx *execctx.ExecutionContext) Result, priority int) *HandlerFunc {
	return &HandlerFunc{fn: fn, prio: priority}
}

// Handle implements Handler.Handle.
func (f *HandlerFunc) Handle(action input.Action, ctx *execctx.ExecutionContext) Result {
	if f.fn == nil {
		return Errorf("handler function is nil")
	}
	return f.fn(action, ctx)
}

// CanHandle implements Handler.CanHandle.
// HandlerFunc always returns true; caller must ensure correct routing.
func (f *HandlerFunc) CanHandle(actionName string) bool {
	return true
}

// Priority implements Handler.Priority.
func (f *HandlerFunc) Priority() int {
	return f.prio
}

// NamespaceHandler handles all actions within a namespace.
// A namespace is the prefix before the first dot ("easyprint" in
// "easyprint.print").
type NamespaceHandler interface {
	// HandleAction handles an action within this namespace.
	HandleAction(action input.Action, ctx *execctx.ExecutionContext) Result

	// CanHandle returns true if this handler can process the action.
	CanHandle(actionName string) bool

	// Namespace returns the namespace prefix.
	Namespace() string

	// Actions lists the action names the handler knows.
	Actions() []string
}

type namespaceAdapter struct {
	h NamespaceHandler
}

// NewNamespaceAdapter creates a Handler from a NamespaceHandler.
func NewNamespaceAdapter(h NamespaceHandler) Handler {
	return &namespaceAdapter{h: h}
}

func (a *namespaceAdapter) Handle(action input.Action, ctx *execctx.ExecutionContext) Result {
	return a.h.HandleAction(action, ctx)
}

func (a *namespaceAdapter) CanHandle(actionName string) bool {
	return a.h.CanHandle(actionName)
}

func (a *namespaceAdapter) Priority() int {
	return 0
}

// ActionFunc handles a single action.
type ActionFunc func(action input.Action, ctx *execctx.ExecutionContext) Result

// BaseNamespaceHandler maps action names to functions. Handlers for the
// same namespace embed it and register their actions in their constructor.
type BaseNamespaceHandler struct {
	namespace string
	actions   map[string]ActionFunc
}

// NewBaseNamespaceHandler creates a new BaseNamespaceHandler.
func NewBaseNamespaceHandler(namespace string) *BaseNamespaceHandler {
	return &BaseNamespaceHandler{
		namespace: namespace,
		actions:   make(map[string]ActionFunc),
	}
}

// Register registers a handler function for an action name.
func (h *BaseNamespaceHandler) Register(actionName string, fn ActionFunc) {
	h.actions[actionName] = fn
}

// Namespace implements NamespaceHandler.Namespace.
func (h *BaseNamespaceHandler) Namespace() string {
	return h.namespace
}

// CanHandle implements NamespaceHandler.CanHandle.
func (h *BaseNamespaceHandler) CanHandle(actionName string) bool {
	_, ok := h.actions[actionName]
	return ok
}

// Actions implements NamespaceHandler.Actions.
func (h *BaseNamespaceHandler) Actions() []string {
	names := make([]string, 0, len(h.actions))
	for name := range h.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HandleAction implements NamespaceHandler.HandleAction.
func (h *BaseNamespaceHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) Result {
	fn, ok := h.actions[action.Name]
	if !ok {
		return Errorf("unknown action in namespace %s: %s", h.namespace, action.Name)
	}
	return fn(action, ctx)
}

// Group serves one namespace from several handlers. The first handler that
// can handle an action gets it.
type Group struct {
	namespace string
	members   []NamespaceHandler
}

// NewGroup creates a group for namespace.
func NewGroup(namespace string, members ...NamespaceHandler) *Group {
	return &Group{namespace: namespace, members: members}
}

// Add appends a member handler.
func (g *Group) Add(h NamespaceHandler) {
	g.members = append(g.members, h)
}

// Namespace implements NamespaceHandler.Namespace.
func (g *Group) Namespace() string {
	return g.namespace
}

// CanHandle implements NamespaceHandler.CanHandle.
func (g *Group) CanHandle(actionName string) bool {
	return g.find(actionName) != nil
}

// Actions implements NamespaceHandler.Actions.
func (g *Group) Actions() []string {
	var names []string
	for _, m := range g.members {
		names = append(names, m.Actions()...)
	}
	sort.Strings(names)
	return names
}

// HandleAction implements NamespaceHandler.HandleAction.
func (g *Group) HandleAction(action input.Action, ctx *execctx.ExecutionContext) Result {
	h := g.find(action.Name)
	if h == nil {
		return Errorf("unknown action in namespace %s: %s", g.namespace, action.Name)
	}
	return h.HandleAction(action, ctx)
}

func (g *Group) find(actionName string) NamespaceHandler {
	for _, m := range g.members {
		if m.CanHandle(actionName) {
			return m
		}
	}
	return nil
}

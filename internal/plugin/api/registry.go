package api

import (
	"fmt"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// ScriptNamespace is the action namespace of the script runner.
const ScriptNamespace = "script"

// ModuleName is the name scripts pass to require.
const ModuleName = "ep"

// Version is reported as ep.version.
const Version = "1.0.0"

// Module is one submodule of ep.
type Module interface {
	// Name returns the field the module is stored under, e.g. "buf".
	Name() string

	// Register adds the module's functions to mod.
	Register(L *lua.LState, mod *lua.LTable) error
}

// Registry collects modules and builds the ep table.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]Module
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]Module)}
}

// Register adds a module to the registry.
func (r *Registry) Register(mod Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.modules[mod.Name()]; exists {
		return fmt.Errorf("module %q already registered", mod.Name())
	}
	r.modules[mod.Name()] = mod
	return nil
}

// Get returns a module by name.
func (r *Registry) Get(name string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mod, ok := r.modules[name]
	return mod, ok
}

// List returns the registered module names in order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build creates the ep table with every registered module.
func (r *Registry) Build(L *lua.LState) (*lua.LTable, error) {
	ep := L.NewTable()
	for _, name := range r.List() {
		mod, _ := r.Get(name)
		t := L.NewTable()
		if err := mod.Register(L, t); err != nil {
			return nil, fmt.Errorf("register module %q: %w", name, err)
		}
		L.SetField(ep, name, t)
	}
	L.SetField(ep, "version", lua.LString(Version))
	return ep, nil
}

// Loader returns a require loader for the ep module. The table is built
// once per state on first require.
func (r *Registry) Loader() lua.LGFunction {
	return func(L *lua.LState) int {
		ep, err := r.Build(L)
		if err != nil {
			L.RaiseError("%v", err)
			return 0
		}
		L.Push(ep)
		return 1
	}
}

// DefaultRegistry creates a registry with the standard modules.
func DefaultRegistry(ctx *Context) (*Registry, error) {
	r := NewRegistry()
	for _, mod := range []Module{
		NewBufferModule(ctx),
		NewCursorModule(ctx),
		NewPrintsModule(ctx),
		NewConfigModule(ctx),
		NewLogModule(ctx),
	} {
		if err := r.Register(mod); err != nil {
			return nil, err
		}
	}
	return r, nil
}

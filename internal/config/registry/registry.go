package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"
)

// ErrSettingAlreadyRegistered is returned when a path is registered twice.
var ErrSettingAlreadyRegistered = errors.New("setting already registered")

// Registry maintains all known settings definitions.
type Registry struct {
	mu       sync.RWMutex
	settings map[string]*Setting
}

// New creates an empty settings registry.
func New() *Registry {
	return &Registry{
		settings: make(map[string]*Setting),
	}
}

// Register adds a setting definition to the registry.
// Returns an error if a setting with the same path already exists.
func (r *Registry) Register(setting Setting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.settings[setting.Path]; exists {
		return fmt.Errorf("%w: %s", ErrSettingAlreadyRegistered, setting.Path)
	}
	if setting.Default != nil {
		def, err := setting.Coerce(setting.Default)
		if err != nil {
			return fmt.Errorf("default for %s: %w", setting.Path, err)
		}
		setting.Default = def
	}

	s := setting
	r.settings[setting.Path] = &s
	return nil
}

// MustRegister registers a setting and panics on error.
func (r *Registry) MustRegister(setting Setting) {
	if err := r.Register(setting); err != nil {
		panic(err)
	}
}

// Get returns the setting definition for the given path, or nil.
func (r *Registry) Get(path string) *Setting {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settings[path]
}

// Has checks if a setting is registered.
func (r *Registry) Has(path string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.settings[path]
	return exists
}

// All returns all registered settings sorted by path.
func (r *Registry) All() []*Setting {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Setting, 0, len(r.settings))
	for _, s := range r.settings {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Path < result[j].Path
	})
	return result
}

// Paths returns every registered path in sorted order.
func (r *Registry) Paths() []string {
	all := r.All()
	paths := make([]string, len(all))
	for i, s := range all {
		paths[i] = s.Path
	}
	return paths
}

// Defaults returns the registered defaults as a nested map keyed by path
// segment, ready to be used as the lowest configuration layer.
func (r *Registry) Defaults() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]any)
	for path, s := range r.settings {
		if s.Default == nil {
			continue
		}
		parts := strings.Split(path, ".")
		m := out
		for _, p := range parts[:len(parts)-1] {
			next, ok := m[p].(map[string]any)
			if !ok {
				next = make(map[string]any)
				m[p] = next
			}
			m = next
		}
		m[parts[len(parts)-1]] = s.Default
	}
	return out
}

// Suggest returns registered paths that fuzzily match query, best first.
func (r *Registry) Suggest(query string, limit int) []string {
	paths := r.Paths()
	matches := fuzzy.Find(query, paths)
	out := make([]string, 0, limit)
	for _, m := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, m.Str)
	}
	return out
}

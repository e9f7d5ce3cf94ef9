package layer

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrLayerNotFound is returned when a named layer does not exist.
	ErrLayerNotFound = errors.New("layer not found")

	// ErrReadOnly is returned when modifying a read-only layer.
	ErrReadOnly = errors.New("layer is read-only")
)

// Manager manages configuration layers and provides merged access.
type Manager struct {
	mu     sync.RWMutex
	layers []*Layer // sorted by priority, ascending
}

// NewManager creates a new layer manager.
func NewManager() *Manager {
	return &Manager{}
}

// AddLayer adds a layer, replacing any layer with the same name.
func (m *Manager) AddLayer(layer *Layer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.index(layer.Name); i >= 0 {
		m.layers[i] = layer
	} else {
		m.layers = append(m.layers, layer)
	}
	sort.SliceStable(m.layers, func(i, j int) bool {
		return m.layers[i].Priority < m.layers[j].Priority
	})
}

// RemoveLayer removes a layer by name.
// Returns true if the layer was found and removed.
func (m *Manager) RemoveLayer(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(name)
	if i < 0 {
		return false
	}
	m.layers = append(m.layers[:i], m.layers[i+1:]...)
	return true
}

// GetLayer returns a copy of the named layer, or nil.
func (m *Manager) GetLayer(name string) *Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := m.index(name); i >= 0 {
		return m.layers[i].Clone()
	}
	return nil
}

// Layers returns the layer names sorted by priority, lowest first.
func (m *Manager) Layers() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, len(m.layers))
	for i, l := range m.layers {
		names[i] = l.Name
	}
	return names
}

// Merge combines all layers into a single configuration map.
func (m *Manager) Merge() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]any)
	for _, l := range m.layers {
		result = DeepMerge(result, l.Data)
	}
	return result
}

// Get returns the effective value for a setting path together with the
// name of the layer that supplied it.
func (m *Manager) Get(path string) (any, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.layers) - 1; i >= 0; i-- {
		if val, ok := GetByPath(m.layers[i].Data, path); ok {
			return cloneValue(val), m.layers[i].Name, true
		}
	}
	return nil, "", false
}

// Set sets a value in a specific layer.
func (m *Manager) Set(layerName, path string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, err := m.writable(layerName)
	if err != nil {
		return err
	}
	SetByPath(l.Data, path, value)
	return nil
}

// Delete removes a value from a specific layer.
func (m *Manager) Delete(layerName, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, err := m.writable(layerName)
	if err != nil {
		return err
	}
	DeleteByPath(l.Data, path)
	return nil
}

// UpdateLayer replaces a layer's data entirely.
func (m *Manager) UpdateLayer(name string, data map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, err := m.writable(name)
	if err != nil {
		return err
	}
	l.Data = cloneMap(data)
	if l.Data == nil {
		l.Data = make(map[string]any)
	}
	return nil
}

func (m *Manager) writable(name string) (*Layer, error) {
	i := m.index(name)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrLayerNotFound, name)
	}
	l := m.layers[i]
	if l.ReadOnly {
		return nil, fmt.Errorf("%w: %s", ErrReadOnly, name)
	}
	if l.Data == nil {
		l.Data = make(map[string]any)
	}
	return l, nil
}

func (m *Manager) index(name string) int {
	for i, l := range m.layers {
		if l.Name == name {
			return i
		}
	}
	return -1
}

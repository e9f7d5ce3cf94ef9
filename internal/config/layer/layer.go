// Package layer stacks configuration sources by priority. A lookup walks
// the layers from the highest priority down and the first layer holding
// the path wins.
package layer

// Layer represents a single configuration layer.
type Layer struct {
	// Name identifies the layer (e.g., "user", "workspace", "defaults").
	Name string

	// Priority determines lookup order (higher overrides lower).
	Priority int

	// Source indicates where this layer was loaded from.
	Source Source

	// Path is the file path (if loaded from file).
	Path string

	// Data holds the configuration values as a nested map.
	Data map[string]any

	// ReadOnly prevents modifications through the manager.
	ReadOnly bool
}

// NewLayer creates an empty layer with the standard name and priority for
// source.
func NewLayer(source Source) *Layer {
	return NewLayerWithData(source, nil)
}

// NewLayerWithData creates a layer for source holding data.
func NewLayerWithData(source Source, data map[string]any) *Layer {
	if data == nil {
		data = make(map[string]any)
	}
	return &Layer{
		Name:     source.String(),
		Source:   source,
		Priority: source.Priority(),
		Data:     data,
	}
}

// Clone creates a deep copy of the layer.
func (l *Layer) Clone() *Layer {
	c := *l
	c.Data = cloneMap(l.Data)
	return &c
}

// Source indicates where a configuration layer came from.
type Source uint8

const (
	// SourceBuiltin represents the registered defaults.
	SourceBuiltin Source = iota
	// SourceUser represents the user TOML file.
	SourceUser
	// SourceWorkspace represents the workspace YAML file.
	SourceWorkspace
	// SourceEditor represents the workspace editor settings JSON file.
	SourceEditor
	// SourceEnv represents environment variables and the .env file.
	SourceEnv
	// SourceSession represents in-memory runtime overrides.
	SourceSession
)

// String returns the standard layer name for the source.
func (s Source) String() string {
	switch s {
	case SourceBuiltin:
		return "defaults"
	case SourceUser:
		return "user"
	case SourceWorkspace:
		return "workspace"
	case SourceEditor:
		return "editor"
	case SourceEnv:
		return "environment"
	case SourceSession:
		return "session"
	default:
		return "unknown"
	}
}

// Priority returns the standard priority for the source.
func (s Source) Priority() int {
	switch s {
	case SourceUser:
		return 100
	case SourceWorkspace:
		return 200
	case SourceEditor:
		return 300
	case SourceEnv:
		return 500
	case SourceSession:
		return 1000
	default:
		return 0
	}
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for key, val := range src {
		dst[key] = cloneValue(val)
	}
	return dst
}

func cloneValue(val any) any {
	switch v := val.(type) {
	case map[string]any:
		return cloneMap(v)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return val
	}
}

package config

import "github.com/dshills/easyprint/internal/logging"

// Source is the read-only view of configuration used by the resolvers.
type Source interface {
	// Require returns the value for path or a *MissingError.
	Require(path string) (any, error)

	// GetOrDefault returns the value for path, or def when it is missing.
	GetOrDefault(path string, def any) any
}

// RequireBool reads a required boolean.
func RequireBool(src Source, path string) (bool, error) {
	v, err := src.Require(path)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "boolean", Actual: typeName(v)}
	}
	return b, nil
}

// RequireString reads a required string.
func RequireString(src Source, path string) (string, error) {
	v, err := src.Require(path)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// BoolOrDefault reads a boolean, falling back to def.
func BoolOrDefault(src Source, path string, def bool) bool {
	if b, ok := src.GetOrDefault(path, def).(bool); ok {
		return b
	}
	warnType(path, "boolean", def)
	return def
}

// StringOrDefault reads a string, falling back to def.
func StringOrDefault(src Source, path string, def string) string {
	if s, ok := src.GetOrDefault(path, def).(string); ok {
		return s
	}
	warnType(path, "string", def)
	return def
}

// IntOrDefault reads an integer, falling back to def.
func IntOrDefault(src Source, path string, def int) int {
	switch v := src.GetOrDefault(path, def).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	warnType(path, "integer", def)
	return def
}

func warnType(path, expected string, def any) {
	logging.GetLogger().WithComponent("config").
		Warn("setting %s is not a %s, using %v", path, expected, def)
}

// Map is a Source backed by a flat map of setting paths. It is handy for
// scripts and tests that do not need layered configuration.
type Map map[string]any

// Require implements Source.
func (m Map) Require(path string) (any, error) {
	v, ok := m[path]
	if !ok {
		return nil, &MissingError{Path: path}
	}
	return v, nil
}

// GetOrDefault implements Source.
func (m Map) GetOrDefault(path string, def any) any {
	if v, ok := m[path]; ok {
		return v
	}
	return def
}

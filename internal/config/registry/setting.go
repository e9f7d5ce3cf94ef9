// Package registry holds the definitions of every known easyprint setting:
// its type, default and documentation.
package registry

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Setting defines a configuration setting with its metadata.
type Setting struct {
	// Path is the dot-separated path (e.g., "prints.customSymbol").
	Path string

	// Type is the setting's data type.
	Type SettingType

	// Default is the default value.
	Default any

	// Description is human-readable documentation.
	Description string

	// Minimum for integer types (nil means no minimum).
	Minimum *float64
}

// Validate checks if a value is valid for this setting.
func (s *Setting) Validate(value any) error {
	v, err := s.Coerce(value)
	if err != nil {
		return err
	}
	if s.Type == TypeInt && s.Minimum != nil && float64(v.(int)) < *s.Minimum {
		return fmt.Errorf("value %v is less than minimum %v", value, *s.Minimum)
	}
	return nil
}

// Coerce converts value to the setting's canonical Go type. Loaders hand
// over whatever their format decodes to (int64 from TOML, float64 from
// JSON, strings from the environment), so numbers and booleans are
// normalized here.
func (s *Setting) Coerce(value any) (any, error) {
	switch s.Type {
	case TypeString:
		if v, ok := value.(string); ok {
			return v, nil
		}
	case TypeBool:
		switch v := value.(type) {
		case bool:
			return v, nil
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "yes", "on":
				return true, nil
			case "no", "off":
				return false, nil
			}
			if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
				return b, nil
			}
		}
	case TypeInt:
		switch v := value.(type) {
		case int:
			return v, nil
		case int8:
			return int(v), nil
		case int16:
			return int(v), nil
		case int32:
			return int(v), nil
		case int64:
			return int(v), nil
		case uint:
			return int(v), nil
		case uint32:
			return int(v), nil
		case uint64:
			return int(v), nil
		case float64:
			if v == math.Trunc(v) {
				return int(v), nil
			}
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return n, nil
			}
		}
	}
	return nil, fmt.Errorf("expected %s, got %T", s.Type, value)
}

// SettingType represents the data type of a setting.
type SettingType uint8

const (
	// TypeString represents a string value.
	TypeString SettingType = iota
	// TypeInt represents an integer value.
	TypeInt
	// TypeBool represents a boolean value.
	TypeBool
)

// String returns the string representation of the type.
func (t SettingType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "integer"
	case TypeBool:
		return "boolean"
	default:
		return "unknown"
	}
}

// MinValue creates a pointer to a float64 for use as Minimum.
func MinValue(v float64) *float64 {
	return &v
}

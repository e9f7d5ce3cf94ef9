package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/easyprint/internal/config/loader"
)

// Errors returned by configuration operations.
var (
	// ErrConfigMissing indicates no layer holds a required key.
	ErrConfigMissing = errors.New("configuration key missing")

	// ErrTypeMismatch indicates the value type doesn't match the expected type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrSettingNotFound indicates the setting path is not registered.
	ErrSettingNotFound = errors.New("setting not found")

	// ErrNoWorkspace indicates a workspace file was needed but no
	// workspace root is configured.
	ErrNoWorkspace = errors.New("no workspace root")
)

// ParseError represents an error while parsing a configuration file.
type ParseError = loader.ParseError

// MissingError reports a required key that no layer provides.
type MissingError struct {
	Path string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("configuration key %q is missing", e.Path)
}

// Is reports whether target is ErrConfigMissing.
func (e *MissingError) Is(target error) bool {
	return target == ErrConfigMissing
}

// TypeError represents a type mismatch error.
type TypeError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("setting %s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

// Is reports whether target is ErrTypeMismatch.
func (e *TypeError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// UnknownSettingError is returned when writing a path that is not
// registered. Suggestions holds close registered paths.
type UnknownSettingError struct {
	Path        string
	Suggestions []string
}

func (e *UnknownSettingError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("unknown setting %q", e.Path)
	}
	return fmt.Sprintf("unknown setting %q (did you mean %s?)", e.Path, strings.Join(e.Suggestions, ", "))
}

// Is reports whether target is ErrSettingNotFound.
func (e *UnknownSettingError) Is(target error) bool {
	return target == ErrSettingNotFound
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}

package loader

import (
	"bytes"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/dshills/easyprint/internal/config/layer"
)

// EnvLoader loads configuration from environment variables and, when
// configured, a dotenv file. Real environment variables win over the file.
// Values stay strings; the settings registry converts them.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "EASYPRINT_")
	mapping map[string]string // Env var -> config path
	environ func() []string
	fs      FileSystem
	dotenv  string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "EASYPRINT_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		environ: os.Environ,
		fs:      DefaultFS(),
	}
}

// WithEnviron replaces the process environment, mostly for tests.
func (l *EnvLoader) WithEnviron(env []string) *EnvLoader {
	l.environ = func() []string { return env }
	return l
}

// WithDotEnv reads variables from a dotenv file on fsys as well.
func (l *EnvLoader) WithDotEnv(fsys FileSystem, path string) *EnvLoader {
	l.fs = fsys
	l.dotenv = path
	return l
}

// defaultEnvMapping returns short names for the settings people set most.
func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "SYMBOL":              "prints.customSymbol",
		prefix + "CUSTOM_MESSAGE":      "prints.addCustomMessage",
		prefix + "CUSTOM_STATEMENT":    "prints.customStatement",
		prefix + "NEW_LINE":            "prints.printToNewLine",
		prefix + "LOGGER":              "logging.customLogName",
		prefix + "USE_REPR":            "logging.useRepr",
		prefix + "MULTIPLE_STATEMENTS": "multipleStatements",
		prefix + "PARENT_CALL":         "hover.includeParentCall",
		prefix + "PARENTHESES":         "hover.includeParentheses",
		prefix + "TAB_SIZE":            "editor.tabSize",
		prefix + "INSERT_SPACES":       "editor.insertSpaces",
	}
}

// Load reads environment variables and returns a configuration map.
// Empty string values are treated as valid values, not as unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	vars := make(map[string]string)

	if l.dotenv != "" {
		data, err := readOptional(l.fs, l.dotenv)
		if err != nil {
			return nil, err
		}
		if data != nil {
			parsed, err := godotenv.Parse(bytes.NewReader(data))
			if err != nil {
				return nil, &ParseError{Path: l.dotenv, Message: err.Error(), Err: err}
			}
			for k, v := range parsed {
				vars[k] = v
			}
		}
	}

	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if ok {
			vars[name] = value
		}
	}

	config := make(map[string]any)
	for name, value := range vars {
		if !strings.HasPrefix(name, l.prefix) {
			continue
		}
		path, ok := l.mapping[name]
		if !ok {
			path = l.envToPath(name)
		}
		if path == "" {
			continue
		}
		layer.SetByPath(config, path, value)
	}
	return config, nil
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	l.mapping[envVar] = configPath
}

// envToPath converts EASYPRINT_PRINTS_CUSTOM_SYMBOL to prints.customSymbol.
// The first segment is the section, the rest form a camelCase name.
func (l *EnvLoader) envToPath(env string) string {
	parts := strings.Split(strings.TrimPrefix(env, l.prefix), "_")
	if len(parts) < 2 || parts[0] == "" {
		return ""
	}

	name := strings.ToLower(parts[1])
	for _, part := range parts[2:] {
		if part != "" {
			name += strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
		}
	}
	return strings.ToLower(parts[0]) + "." + name
}

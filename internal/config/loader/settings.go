package loader

import (
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/easyprint/internal/config/layer"
)

// editorKeys are host editor settings that are read outside the namespace.
var editorKeys = []string{"editor.tabSize", "editor.insertSpaces"}

// languageSection holds per-language overrides of editor settings.
const languageSection = "[python]"

// SettingsLoader reads editor style JSON settings files (for example
// .vscode/settings.json). Keys belonging to the namespace may be written
// flat ("ns.prints.customSymbol") or nested ("ns": {"prints": {...}}).
// Comments and trailing commas are tolerated.
type SettingsLoader struct {
	fs        FileSystem
	path      string
	namespace string
}

// NewSettingsLoader creates a settings loader for path and namespace.
func NewSettingsLoader(path, namespace string) *SettingsLoader {
	return NewSettingsLoaderWithFS(DefaultFS(), path, namespace)
}

// NewSettingsLoaderWithFS creates a settings loader with a custom file system.
func NewSettingsLoaderWithFS(fs FileSystem, path, namespace string) *SettingsLoader {
	return &SettingsLoader{fs: fs, path: path, namespace: namespace}
}

// Path returns the file the loader reads.
func (l *SettingsLoader) Path() string { return l.path }

// Load reads the namespace's settings from the file.
func (l *SettingsLoader) Load() (map[string]any, error) {
	raw, err := readOptional(l.fs, l.path)
	if err != nil || raw == nil {
		return nil, err
	}

	data := StripJSONComments(raw)
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Path: l.path, Message: "invalid JSON"}
	}

	config := make(map[string]any)
	root := gjson.ParseBytes(data)
	prefix := l.namespace + "."

	root.ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		switch {
		case k == l.namespace && value.IsObject():
			collect(config, "", value)
		case strings.HasPrefix(k, prefix):
			layer.SetByPath(config, strings.TrimPrefix(k, prefix), value.Value())
		case isEditorKey(k):
			layer.SetByPath(config, k, value.Value())
		}
		return true
	})

	// Language overrides beat the global editor keys.
	root.Get(gjson.Escape(languageSection)).ForEach(func(key, value gjson.Result) bool {
		if isEditorKey(key.String()) {
			layer.SetByPath(config, key.String(), value.Value())
		}
		return true
	})

	return config, nil
}

// Save writes setting = value into the settings file, keeping the rest of
// the file intact. The key is written flat ("ns.a.b") unless the file
// already holds a nested namespace object, in which case it is nested too.
func (l *SettingsLoader) Save(fs WritableFS, setting string, value any) error {
	raw, err := readOptional(fs, l.path)
	if err != nil {
		return err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		raw = []byte("{}")
	}

	key := gjson.Escape(l.namespace + "." + setting)
	if isEditorKey(setting) {
		key = gjson.Escape(setting)
	} else if gjson.GetBytes(StripJSONComments(raw), gjson.Escape(l.namespace)).IsObject() {
		key = gjson.Escape(l.namespace) + "." + setting
	}

	out, err := sjson.SetBytes(raw, key, value)
	if err != nil || !gjson.ValidBytes(StripJSONComments(out)) {
		// sjson cannot always edit around comments; fall back to the
		// stripped document.
		out, err = sjson.SetBytes(StripJSONComments(raw), key, value)
		if err != nil {
			return &ParseError{Path: l.path, Message: err.Error(), Err: err}
		}
	}
	return fs.WriteFile(l.path, out)
}

func collect(config map[string]any, prefix string, obj gjson.Result) {
	obj.ForEach(func(key, value gjson.Result) bool {
		path := key.String()
		if prefix != "" {
			path = prefix + "." + path
		}
		if value.IsObject() {
			collect(config, path, value)
		} else {
			layer.SetByPath(config, path, value.Value())
		}
		return true
	})
}

func isEditorKey(k string) bool {
	for _, e := range editorKeys {
		if k == e {
			return true
		}
	}
	return false
}

// StripJSONComments removes // and /* */ comments and trailing commas from
// a JSON with comments document. String contents are left untouched.
func StripJSONComments(src []byte) []byte {
	out := make([]byte, 0, len(src))
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '"':
			j := i + 1
			for j < len(src) && src[j] != '"' {
				if src[j] == '\\' {
					j++
				}
				j++
			}
			if j >= len(src) {
				j = len(src) - 1
			}
			out = append(out, src[i:j+1]...)
			i = j
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
			if i < len(src) {
				out = append(out, '\n')
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			i += 2
			for i+1 < len(src) && !(src[i] == '*' && src[i+1] == '/') {
				i++
			}
			i++
		case c == ',':
			j := skipSpaceAndComments(src, i+1)
			if j < len(src) && (src[j] == '}' || src[j] == ']') {
				continue
			}
			out = append(out, c)
		default:
			out = append(out, c)
		}
	}
	return out
}

// skipSpaceAndComments returns the index of the first byte at or after i
// that is neither whitespace nor part of a comment.
func skipSpaceAndComments(src []byte, i int) int {
	for i < len(src) {
		switch {
		case src[i] == ' ' || src[i] == '\t' || src[i] == '\n' || src[i] == '\r':
			i++
		case src[i] == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case src[i] == '/' && i+1 < len(src) && src[i+1] == '*':
			i += 2
			for i+1 < len(src) && !(src[i] == '*' && src[i+1] == '/') {
				i++
			}
			i += 2
		default:
			return i
		}
	}
	return i
}

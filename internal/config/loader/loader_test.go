package loader

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTOMLLoader(t *testing.T) {
	fsys := fstest.MapFS{
		"config.toml": {Data: []byte(`
multipleStatements = false

[prints]
customSymbol = "*"
printToNewLine = true

[editor]
tabSize = 2
`)},
		"bad.toml": {Data: []byte("[prints\ncustomSymbol = 1\n")},
	}

	got, err := NewTOMLLoaderWithFS(fsys, "config.toml").Load()
	require.NoError(t, err)
	assert.Equal(t, false, got["multipleStatements"])
	assert.Equal(t, map[string]any{"customSymbol": "*", "printToNewLine": true}, got["prints"])
	assert.Equal(t, int64(2), got["editor"].(map[string]any)["tabSize"])

	got, err = NewTOMLLoaderWithFS(fsys, "missing.toml").Load()
	assert.NoError(t, err)
	assert.Nil(t, got)

	_, err = NewTOMLLoaderWithFS(fsys, "bad.toml").Load()
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "bad.toml", pe.Path)
	assert.Positive(t, pe.Line)
}

func TestYAMLLoader(t *testing.T) {
	fsys := fstest.MapFS{
		".easyprint.yaml": {Data: []byte(`
hover:
  includeParentCall: false
logging:
  customLogName: log
`)},
		"empty.yaml": {Data: []byte("")},
		"bad.yaml":   {Data: []byte("hover: [unclosed\n")},
	}

	got, err := NewYAMLLoaderWithFS(fsys, ".easyprint.yaml").Load()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"includeParentCall": false}, got["hover"])
	assert.Equal(t, map[string]any{"customLogName": "log"}, got["logging"])

	got, err = NewYAMLLoaderWithFS(fsys, "empty.yaml").Load()
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = NewYAMLLoaderWithFS(fsys, "bad.yaml").Load()
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestSettingsLoaderFlatAndNested(t *testing.T) {
	fsys := fstest.MapFS{
		"flat.json": {Data: []byte(`{
  // user settings
  "pythonEasyPrint.prints.customSymbol": "*",
  "pythonEasyPrint.multipleStatements": false,
  "editor.tabSize": 4,
  "editor.fontSize": 12,
  "[python]": { "editor.tabSize": 2 },
  "other.setting": true, /* trailing */
}`)},
		"nested.json": {Data: []byte(`{
  "pythonEasyPrint": {
    "prints": { "printToNewLine": true },
    "logging.useRepr": false
  }
}`)},
		"bad.json": {Data: []byte(`{"pythonEasyPrint.x": }`)},
	}

	got, err := NewSettingsLoaderWithFS(fsys, "flat.json", "pythonEasyPrint").Load()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"prints":             map[string]any{"customSymbol": "*"},
		"multipleStatements": false,
		"editor":             map[string]any{"tabSize": float64(2)},
	}, got)

	got, err = NewSettingsLoaderWithFS(fsys, "nested.json", "pythonEasyPrint").Load()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"prints":  map[string]any{"printToNewLine": true},
		"logging": map[string]any{"useRepr": false},
	}, got)

	_, err = NewSettingsLoaderWithFS(fsys, "bad.json", "pythonEasyPrint").Load()
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestSettingsLoaderSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".vscode", "settings.json")
	l := NewSettingsLoader(path, "pythonEasyPrint")

	require.NoError(t, l.Save(OSFS{}, "prints.customSymbol", "*"))
	require.NoError(t, l.Save(OSFS{}, "editor.tabSize", 2))

	got, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "*", got["prints"].(map[string]any)["customSymbol"])
	assert.Equal(t, float64(2), got["editor"].(map[string]any)["tabSize"])

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"pythonEasyPrint.prints.customSymbol"`)
}

func TestSettingsLoaderSaveNested(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  // keep me
  "pythonEasyPrint": { "prints": { "customSymbol": "*" } }
}`), 0o644))

	l := NewSettingsLoader(path, "pythonEasyPrint")
	require.NoError(t, l.Save(OSFS{}, "prints.customSymbol", "!"))

	got, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"prints": map[string]any{"customSymbol": "!"}}, got)
}

func TestStripJSONComments(t *testing.T) {
	in := `{
  "a": "http://x.y/*not a comment*/", // tail
  /* block */ "b": [1, 2,],
}`
	out := string(StripJSONComments([]byte(in)))
	assert.Contains(t, out, `"http://x.y/*not a comment*/"`)
	assert.NotContains(t, out, "tail")
	assert.NotContains(t, out, "block")
	assert.Contains(t, out, "[1, 2]")
}

func TestEnvLoader(t *testing.T) {
	fsys := fstest.MapFS{
		".env": {Data: []byte("EASYPRINT_SYMBOL=from-file\nEASYPRINT_LOGGER=log\n")},
	}

	l := NewEnvLoader("EASYPRINT_").
		WithEnviron([]string{
			"EASYPRINT_SYMBOL=*",
			"EASYPRINT_USE_REPR=off",
			"EASYPRINT_PRINTS_ADD_CUSTOM_MESSAGE=%f:%l",
			"EASYPRINT_X=ignored",
			"HOME=/root",
		}).
		WithDotEnv(fsys, ".env")

	got, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"prints": map[string]any{
			"customSymbol":     "*",
			"addCustomMessage": "%f:%l",
		},
		"logging": map[string]any{
			"useRepr":       "off",
			"customLogName": "log",
		},
	}, got)
}

func TestEnvToPath(t *testing.T) {
	l := NewEnvLoader("EASYPRINT_")
	assert.Equal(t, "prints.customSymbol", l.envToPath("EASYPRINT_PRINTS_CUSTOM_SYMBOL"))
	assert.Equal(t, "editor.tabsize", l.envToPath("EASYPRINT_EDITOR_TABSIZE"))
	assert.Equal(t, "", l.envToPath("EASYPRINT_ALONE"))
}

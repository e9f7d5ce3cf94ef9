package layer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceNamesAndPriorities(t *testing.T) {
	order := []Source{SourceBuiltin, SourceUser, SourceWorkspace, SourceEditor, SourceEnv, SourceSession}
	for i := 1; i < len(order); i++ {
		assert.Less(t, order[i-1].Priority(), order[i].Priority(), order[i].String())
	}
	assert.Equal(t, "editor", SourceEditor.String())
	assert.Equal(t, "unknown", Source(99).String())
}

func TestLayerClone(t *testing.T) {
	l := NewLayerWithData(SourceUser, map[string]any{
		"prints": map[string]any{"customSymbol": "*"},
	})
	c := l.Clone()
	SetByPath(c.Data, "prints.customSymbol", "!")

	v, _ := GetByPath(l.Data, "prints.customSymbol")
	assert.Equal(t, "*", v)
	assert.Equal(t, "user", c.Name)
}

func TestManagerPrecedence(t *testing.T) {
	m := NewManager()
	m.AddLayer(NewLayerWithData(SourceEnv, map[string]any{"prints": map[string]any{"customSymbol": "env"}}))
	m.AddLayer(NewLayerWithData(SourceBuiltin, map[string]any{
		"prints":             map[string]any{"customSymbol": "➡", "printToNewLine": false},
		"multipleStatements": true,
	}))
	m.AddLayer(NewLayerWithData(SourceUser, map[string]any{"prints": map[string]any{"customSymbol": "user"}}))

	assert.Equal(t, []string{"defaults", "user", "environment"}, m.Layers())

	v, from, ok := m.Get("prints.customSymbol")
	require.True(t, ok)
	assert.Equal(t, "env", v)
	assert.Equal(t, "environment", from)

	v, from, ok = m.Get("prints.printToNewLine")
	require.True(t, ok)
	assert.Equal(t, false, v)
	assert.Equal(t, "defaults", from)

	_, _, ok = m.Get("prints.nothing")
	assert.False(t, ok)

	merged := m.Merge()
	assert.Equal(t, map[string]any{"customSymbol": "env", "printToNewLine": false}, merged["prints"])
}

func TestManagerAddLayerReplacesByName(t *testing.T) {
	m := NewManager()
	m.AddLayer(NewLayerWithData(SourceUser, map[string]any{"a": 1}))
	m.AddLayer(NewLayerWithData(SourceUser, map[string]any{"a": 2}))

	assert.Equal(t, []string{"user"}, m.Layers())
	v, _, _ := m.Get("a")
	assert.Equal(t, 2, v)
}

func TestManagerSetAndReadOnly(t *testing.T) {
	m := NewManager()
	defaults := NewLayer(SourceBuiltin)
	defaults.ReadOnly = true
	m.AddLayer(defaults)
	m.AddLayer(NewLayer(SourceSession))

	require.NoError(t, m.Set("session", "logging.useRepr", false))
	v, from, _ := m.Get("logging.useRepr")
	assert.Equal(t, false, v)
	assert.Equal(t, "session", from)

	assert.ErrorIs(t, m.Set("defaults", "x", 1), ErrReadOnly)
	assert.ErrorIs(t, m.Set("nope", "x", 1), ErrLayerNotFound)
	assert.ErrorIs(t, m.UpdateLayer("defaults", nil), ErrReadOnly)

	require.NoError(t, m.Delete("session", "logging.useRepr"))
	_, _, ok := m.Get("logging.useRepr")
	assert.False(t, ok)
}

func TestManagerGetReturnsCopy(t *testing.T) {
	m := NewManager()
	m.AddLayer(NewLayerWithData(SourceUser, map[string]any{"prints": map[string]any{"customSymbol": "*"}}))

	v, _, _ := m.Get("prints")
	v.(map[string]any)["customSymbol"] = "changed"

	got, _, _ := m.Get("prints.customSymbol")
	assert.Equal(t, "*", got)
}

func TestManagerRemoveLayer(t *testing.T) {
	m := NewManager()
	m.AddLayer(NewLayer(SourceUser))

	assert.True(t, m.RemoveLayer("user"))
	assert.False(t, m.RemoveLayer("user"))
	assert.Nil(t, m.GetLayer("user"))
}

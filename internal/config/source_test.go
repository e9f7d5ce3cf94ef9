package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedHelpers(t *testing.T) {
	src := Map{
		KeyUseRepr:       false,
		KeyCustomSymbol:  "*",
		KeyTabSize:       int64(2),
		KeyCustomLogName: 3,
	}

	b, err := RequireBool(src, KeyUseRepr)
	require.NoError(t, err)
	assert.False(t, b)

	s, err := RequireString(src, KeyCustomSymbol)
	require.NoError(t, err)
	assert.Equal(t, "*", s)

	_, err = RequireString(src, KeyCustomLogName)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = RequireBool(src, KeyMultipleStatements)
	assert.ErrorIs(t, err, ErrConfigMissing)

	assert.Equal(t, 2, IntOrDefault(src, KeyTabSize, 4))
	assert.Equal(t, 4, IntOrDefault(src, KeyCustomSymbol, 4))
	assert.Equal(t, "logging", StringOrDefault(src, KeyCustomLogName, "logging"))
	assert.Equal(t, true, BoolOrDefault(src, KeyMultipleStatements, true))
}

func TestErrorMessages(t *testing.T) {
	assert.Contains(t, (&MissingError{Path: "a.b"}).Error(), `"a.b"`)
	assert.Equal(t, "setting x: expected boolean, got string",
		(&TypeError{Path: "x", Expected: "boolean", Actual: "string"}).Error())
	assert.Contains(t,
		(&UnknownSettingError{Path: "x", Suggestions: []string{"y", "z"}}).Error(),
		"did you mean y, z?")
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	out, _, err := runCLIWithStderr(t, dir, args...)
	return out, err
}

func runCLIWithStderr(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args,
		"--workspace", dir,
		"--config", filepath.Join(dir, "user.toml"),
		"--log-level", "error",
	))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func sampleFile(t *testing.T, text string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.py")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return dir, path
}

func TestInsertPrintsResult(t *testing.T) {
	dir, path := sampleFile(t, "count = 3\n")

	out, err := runCLI(t, dir, "insert", "print", path)
	require.NoError(t, err)
	assert.Equal(t, "count = 3\nprint(\"➡ count :\", count)\n", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "count = 3\n", string(data), "file untouched without --write")
}

func TestInsertWrite(t *testing.T) {
	dir, path := sampleFile(t, "a, b = 1, 2\n")

	_, err := runCLI(t, dir, "insert", "type", path, "--write",
		"--line", "1", "--col", "1", "--end-line", "1", "--end-col", "5")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"a, b = 1, 2",
		`print("➡ a type :", type(a))`,
		`print("➡ b type :", type(b))`,
		"",
	}, "\n"), string(data))
}

func TestInsertUnknownKind(t *testing.T) {
	dir, path := sampleFile(t, "x = 1\n")
	_, err := runCLI(t, dir, "insert", "prnt", path)
	assert.ErrorContains(t, err, "prnt")
}

func TestResolve(t *testing.T) {
	dir, path := sampleFile(t, "total = obj.items.count(x)\n")

	out, err := runCLI(t, dir, "resolve", path, "--col", "20")
	require.NoError(t, err)
	assert.Equal(t, "obj.items.count(x)\n", out)
}

func TestCommentAndJump(t *testing.T) {
	text := "x = 1\nprint(\"➡ x :\", x)\ny = 2\nprint(\"➡ y :\", y)\n"
	dir, path := sampleFile(t, text)

	out, err := runCLI(t, dir, "comment", path, "--dry-run")
	require.NoError(t, err)
	assert.Equal(t, "2 4\n", out)

	out, err = runCLI(t, dir, "jump", "next", path, "--line", "2")
	require.NoError(t, err)
	assert.Equal(t, "4\n", out)

	out, err = runCLI(t, dir, "jump", "previous", path, "--line", "2")
	require.NoError(t, err)
	assert.Equal(t, "4\n", out, "wraps to the last statement")

	_, err = runCLI(t, dir, "delete", path, "--write")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x = 1\ny = 2\n", string(data))
}

func TestConfigSetAndGet(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "config", "set", "prints.customSymbol", "**")
	require.NoError(t, err)

	out, err := runCLI(t, dir, "config", "get", "prints.customSymbol")
	require.NoError(t, err)
	assert.Equal(t, "**\n", out)

	_, err = runCLI(t, dir, "config", "set", "editor.tabSize", "wide")
	assert.Error(t, err)
}

func TestKinds(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "kinds")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 12)
	assert.True(t, strings.HasPrefix(lines[0], "print"))
}

func TestScript(t *testing.T) {
	dir, path := sampleFile(t, "value = 42\n")
	script := filepath.Join(dir, "show.lua")
	require.NoError(t, os.WriteFile(script, []byte(`
local ep = require("ep")
print(ep.prints.statement("repr", "value"))
`), 0o644))

	out, err := runCLI(t, dir, "script", script, path)
	require.NoError(t, err)
	assert.Equal(t, "print(\"➡ value repr :\", repr(value))\n", out)
}

func TestMetrics(t *testing.T) {
	dir, path := sampleFile(t, "count = 3\n")

	_, errOut, err := runCLIWithStderr(t, dir, "insert", "repr", path, "--metrics")
	require.NoError(t, err)
	assert.Regexp(t, `(?m)^dispatches\s+1$`, errOut)
	assert.Regexp(t, `(?m)^easyprint\.repr\s+1\s+ok\s`, errOut)

	_, errOut, err = runCLIWithStderr(t, dir, "insert", "repr", path)
	require.NoError(t, err)
	assert.NotContains(t, errOut, "dispatches")
}

func TestScriptWatchReloadsSettings(t *testing.T) {
	dir, path := sampleFile(t, "value = 42\n")
	settings := filepath.Join(dir, ".easyprint.yaml")
	require.NoError(t, os.WriteFile(settings, []byte("prints:\n  customSymbol: \"*\"\n"), 0o644))

	script := filepath.Join(dir, "wait.lua")
	require.NoError(t, os.WriteFile(script, []byte(`
local ep = require("ep")
while ep.config.get("prints.customSymbol") ~= "**" do end
print(ep.prints.statement("print", "value"))
`), 0o644))

	go func() {
		time.Sleep(300 * time.Millisecond)
		_ = os.WriteFile(settings, []byte("prints:\n  customSymbol: \"**\"\n"), 0o644)
	}()

	out, err := runCLI(t, dir, "script", script, path, "--watch", "--script-timeout", "10s")
	require.NoError(t, err)
	assert.Equal(t, "print(\"** value :\", value)\n", out)
}

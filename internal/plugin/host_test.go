package plugin_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/easyprint/internal/config"
	"github.com/dshills/easyprint/internal/dispatcher"
	"github.com/dshills/easyprint/internal/dispatcher/handler"
	"github.com/dshills/easyprint/internal/dispatcher/handlers/document"
	"github.com/dshills/easyprint/internal/dispatcher/handlers/prints"
	"github.com/dshills/easyprint/internal/engine/buffer"
	"github.com/dshills/easyprint/internal/engine/cursor"
	"github.com/dshills/easyprint/internal/input"
	"github.com/dshills/easyprint/internal/plugin"
	plua "github.com/dshills/easyprint/internal/plugin/lua"
)

type env struct {
	buf  *buffer.Buffer
	cs   *cursor.CursorSet
	cfg  *config.Config
	d    *dispatcher.Dispatcher
	host *plugin.Host
	out  *bytes.Buffer
}

func newEnv(t *testing.T, text string) *env {
	t.Helper()
	e := &env{
		buf: buffer.NewBufferFromString(text),
		cs:  cursor.NewCursorSetAt(0),
		cfg: config.New(config.WithoutEnv()),
		d:   dispatcher.NewWithDefaults(),
		out: &bytes.Buffer{},
	}
	e.d.SetBuffer(e.buf)
	e.d.SetCursors(e.cs)
	e.d.SetConfig(e.cfg)
	e.d.SetFile("/work/demo.py", "/work")
	e.d.RegisterNamespace(input.Namespace, handler.NewGroup(input.Namespace,
		prints.NewHandler(),
		document.NewHandler(),
	))

	host, err := plugin.NewHost(e.d, plugin.WithSettings(e.cfg), plugin.WithOutput(e.out))
	if err != nil {
		t.Fatalf("NewHost() error = %v", err)
	}
	t.Cleanup(func() { host.Close() })
	e.host = host
	return e
}

func (e *env) run(t *testing.T, code string) {
	t.Helper()
	if err := e.host.Run(context.Background(), code); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}

func TestHostReadsDocument(t *testing.T) {
	e := newEnv(t, "name = 1\nother = 2")
	e.run(t, `
		local ep = require("ep")
		print(ep.buf.line_count(), ep.buf.line(2), ep.buf.path())
		local line, col = ep.cursor.get()
		print(line, col)
	`)

	want := "2\tother = 2\t/work/demo.py\n1\t1\n"
	if got := e.out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestHostResolvesAndInserts(t *testing.T) {
	e := newEnv(t, "value = compute()\n")
	e.run(t, `
		local ep = require("ep")
		ep.cursor.select(1, 2)
		local exprs = ep.prints.expressions()
		print(#exprs, exprs[1])
		print(ep.prints.statement("type", exprs[1]))
		local ok, msg = ep.prints.run("print")
		print(ok, msg)
	`)

	lines := strings.Split(e.out.String(), "\n")
	if lines[0] != "1\tvalue" {
		t.Errorf("expressions output = %q", lines[0])
	}
	if lines[1] != `print("➡ value type :", type(value))` {
		t.Errorf("statement output = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "true\t") {
		t.Errorf("run output = %q", lines[2])
	}
	if got := e.buf.LineText(1); got != `print("➡ value :", value)` {
		t.Errorf("inserted line = %q", got)
	}
}

func TestHostRunsDocumentCommands(t *testing.T) {
	e := newEnv(t, "x = 1\nprint(\"➡ x :\", x)")
	e.run(t, `require("ep").prints.run("comment")`)

	if got := e.buf.LineText(1); got != `# print("➡ x :", x)` {
		t.Errorf("line = %q", got)
	}
}

func TestHostConfig(t *testing.T) {
	e := newEnv(t, "x = 1")
	e.run(t, `
		local ep = require("ep")
		print(ep.config.get("prints.customSymbol"), ep.config.get("missing.key", "fallback"))
		ep.config.set("prints.customSymbol", "@@")
	`)

	if got := e.out.String(); got != "➡\tfallback\n" {
		t.Errorf("output = %q", got)
	}
	if got := config.StringOrDefault(e.cfg, config.KeyCustomSymbol, ""); got != "@@" {
		t.Errorf("customSymbol = %q after ep.config.set", got)
	}

	err := e.host.Run(context.Background(), `require("ep").config.set("editor.tabSize", "wide")`)
	if err == nil {
		t.Error("set with a mistyped value succeeded")
	}
}

func TestHostRejectsNestedScripts(t *testing.T) {
	e := newEnv(t, "x = 1")
	err := e.host.Run(context.Background(), `require("ep").prints.run("script.run", "x = 1")`)
	if err == nil {
		t.Fatal("nested script run succeeded")
	}
	var se *plua.ScriptError
	if !errors.As(err, &se) {
		t.Errorf("error = %T, want *lua.ScriptError", err)
	}
}

func TestScriptHandler(t *testing.T) {
	e := newEnv(t, "total = 1")
	dir := t.TempDir()
	path := filepath.Join(dir, "type_it.lua")
	if err := os.WriteFile(path, []byte(`require("ep").prints.run("type")`), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := plugin.NewLoader("", plugin.WithPaths(dir))
	scripts, err := loader.Discover()
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	e.d.RegisterNamespace("script", plugin.NewHandler(e.host))
	names := plugin.RegisterScripts(e.d, e.host, scripts)
	if len(names) != 1 || names[0] != "script.type_it" {
		t.Fatalf("RegisterScripts() = %v", names)
	}
	if !e.d.Registry().Has("script.type_it") {
		t.Fatal("script.type_it not in the action registry")
	}

	r := e.d.Dispatch(input.Action{Name: "script.type_it"})
	if !r.IsOK() {
		t.Fatalf("script.type_it: %v", r.Error)
	}
	if got := e.buf.LineText(1); got != `print("➡ total type :", type(total))` {
		t.Errorf("line = %q", got)
	}

	r = e.d.Dispatch(input.Action{Name: "script.typeit"})
	var unknown *dispatcher.UnknownActionError
	if !errors.As(r.Error, &unknown) || len(unknown.Suggestions) == 0 || unknown.Suggestions[0] != "script.type_it" {
		t.Errorf("script.typeit error = %v", r.Error)
	}

	r = e.d.Dispatch(input.Action{Name: plugin.ActionRun})
	if !errors.Is(r.Error, plugin.ErrNoScript) {
		t.Errorf("empty script.run error = %v", r.Error)
	}

	r = e.d.Dispatch(input.Action{Name: plugin.ActionRun, Args: input.ActionArgs{Text: `error("nope")`}})
	if !r.IsError() {
		t.Error("failing script reported success")
	}
}

package api

import (
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/easyprint/internal/dispatcher/handler"
	"github.com/dshills/easyprint/internal/input"
	"github.com/dshills/easyprint/internal/selection"
	"github.com/dshills/easyprint/internal/statement"
)

// PrintsModule implements ep.prints.
type PrintsModule struct {
	ctx *Context
}

// NewPrintsModule creates the prints module.
func NewPrintsModule(ctx *Context) *PrintsModule {
	return &PrintsModule{ctx: ctx}
}

// Name returns the module name.
func (m *PrintsModule) Name() string {
	return "prints"
}

// Register registers the module functions.
func (m *PrintsModule) Register(L *lua.LState, mod *lua.LTable) error {
	L.SetField(mod, "expressions", L.NewFunction(m.expressions))
	L.SetField(mod, "statement", L.NewFunction(m.statement))
	L.SetField(mod, "kinds", L.NewFunction(m.kinds))
	L.SetField(mod, "run", L.NewFunction(m.run))
	return nil
}

// expressions() -> {expr, ...}
// Resolves the expressions under the current selection.
func (m *PrintsModule) expressions(L *lua.LState) int {
	t := L.NewTable()
	ctx := m.ctx.exec()
	if ctx == nil || ctx.Buffer == nil || ctx.Cursors == nil {
		L.Push(t)
		return 1
	}

	opts, err := selection.OptionsFrom(ctx.Source())
	if err != nil {
		L.RaiseError("expressions: %v", err)
		return 0
	}
	for _, expr := range selection.Resolve(ctx.CursorContext(), opts) {
		t.Append(lua.LString(expr))
	}
	L.Push(t)
	return 1
}

// statement(kind[, expr]) -> string
// Returns the template for kind, rendered for expr when given.
func (m *PrintsModule) statement(L *lua.LState) int {
	kind := L.CheckString(1)
	ctx := m.ctx.exec()
	if ctx == nil {
		L.RaiseError("statement: no host")
		return 0
	}

	tmpl, err := statement.Resolve(kind, ctx.CursorContext(), statement.OptionsFrom(ctx.Source()))
	if err != nil {
		L.RaiseError("statement: %v", err)
		return 0
	}
	if L.GetTop() >= 2 {
		tmpl = statement.Render(tmpl, L.CheckString(2))
	}
	L.Push(lua.LString(tmpl))
	return 1
}

// kinds() -> {name, ...}
func (m *PrintsModule) kinds(L *lua.LState) int {
	t := L.NewTable()
	for _, name := range statement.Names() {
		t.Append(lua.LString(name))
	}
	L.Push(t)
	return 1
}

// run(action[, text]) -> ok, message
// A bare name such as "type" or "comment" is taken from the easyprint
// namespace. text overrides the resolved expression.
func (m *PrintsModule) run(L *lua.LState) int {
	name := L.CheckString(1)
	if m.ctx == nil || m.ctx.Dispatcher == nil {
		L.RaiseError("run: no host")
		return 0
	}
	if !strings.Contains(name, ".") {
		name = input.Namespace + "." + name
	}
	if strings.HasPrefix(name, ScriptNamespace+".") {
		L.ArgError(1, "scripts cannot run scripts")
		return 0
	}

	result := m.ctx.Dispatcher.Dispatch(input.Action{
		Name:   name,
		Args:   input.ActionArgs{Text: L.OptString(2, "")},
		Source: input.SourceScript,
	})
	msg := result.Message
	if result.Error != nil {
		msg = result.Error.Error()
	}
	L.Push(lua.LBool(result.Status == handler.StatusOK))
	L.Push(lua.LString(msg))
	return 2
}

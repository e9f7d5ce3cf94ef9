package api

import (
	lua "github.com/yuin/gopher-lua"
)

// BufferModule implements ep.buf.
type BufferModule struct {
	ctx *Context
}

// NewBufferModule creates the buffer module.
func NewBufferModule(ctx *Context) *BufferModule {
	return &BufferModule{ctx: ctx}
}

// Name returns the module name.
func (m *BufferModule) Name() string {
	return "buf"
}

// Register registers the module functions.
func (m *BufferModule) Register(L *lua.LState, mod *lua.LTable) error {
	L.SetField(mod, "text", L.NewFunction(m.text))
	L.SetField(mod, "line", L.NewFunction(m.line))
	L.SetField(mod, "line_count", L.NewFunction(m.lineCount))
	L.SetField(mod, "path", L.NewFunction(m.path))
	return nil
}

// text() -> string
func (m *BufferModule) text(L *lua.LState) int {
	ctx := m.ctx.exec()
	if ctx == nil || ctx.Buffer == nil {
		L.Push(lua.LString(""))
		return 1
	}
	L.Push(lua.LString(ctx.Buffer.Text()))
	return 1
}

// line(n) -> string
// n is 1-based.
func (m *BufferModule) line(L *lua.LState) int {
	n := L.CheckInt(1)
	ctx := m.ctx.exec()
	if ctx == nil || ctx.Buffer == nil {
		L.Push(lua.LNil)
		return 1
	}
	if n < 1 || n > int(ctx.Buffer.LineCount()) {
		L.ArgError(1, "line out of range")
		return 0
	}
	L.Push(lua.LString(ctx.Buffer.LineText(uint32(n - 1))))
	return 1
}

// line_count() -> number
func (m *BufferModule) lineCount(L *lua.LState) int {
	ctx := m.ctx.exec()
	if ctx == nil || ctx.Buffer == nil {
		L.Push(lua.LNumber(0))
		return 1
	}
	L.Push(lua.LNumber(ctx.Buffer.LineCount()))
	return 1
}

// path() -> string
func (m *BufferModule) path(L *lua.LState) int {
	ctx := m.ctx.exec()
	if ctx == nil {
		L.Push(lua.LString(""))
		return 1
	}
	L.Push(lua.LString(ctx.FilePath))
	return 1
}

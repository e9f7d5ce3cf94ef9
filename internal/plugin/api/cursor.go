package api

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/easyprint/internal/engine/buffer"
	"github.com/dshills/easyprint/internal/engine/cursor"
)

// CursorModule implements ep.cursor.
type CursorModule struct {
	ctx *Context
}

// NewCursorModule creates the cursor module.
func NewCursorModule(ctx *Context) *CursorModule {
	return &CursorModule{ctx: ctx}
}

// Name returns the module name.
func (m *CursorModule) Name() string {
	return "cursor"
}

// Register registers the module functions.
func (m *CursorModule) Register(L *lua.LState, mod *lua.LTable) error {
	L.SetField(mod, "get", L.NewFunction(m.get))
	L.SetField(mod, "select", L.NewFunction(m.sel))
	L.SetField(mod, "selected_text", L.NewFunction(m.selectedText))
	return nil
}

// get() -> line, col[, end_line, end_col]
// The end position is returned only for a non-empty selection.
func (m *CursorModule) get(L *lua.LState) int {
	ctx := m.ctx.exec()
	if ctx == nil || ctx.Buffer == nil || ctx.Cursors == nil {
		L.Push(lua.LNil)
		return 1
	}
	cc := ctx.CursorContext()
	start := ctx.Buffer.OffsetToPoint(cc.Selection.Start())
	L.Push(lua.LNumber(start.Line + 1))
	L.Push(lua.LNumber(start.Column + 1))
	if !cc.IsManual() {
		return 2
	}
	end := ctx.Buffer.OffsetToPoint(cc.Selection.End())
	L.Push(lua.LNumber(end.Line + 1))
	L.Push(lua.LNumber(end.Column + 1))
	return 4
}

// select(line, col[, end_line, end_col])
// Places the cursor, or selects up to the end position.
func (m *CursorModule) sel(L *lua.LState) int {
	ctx := m.ctx.exec()
	if ctx == nil || ctx.Buffer == nil || ctx.Cursors == nil {
		L.RaiseError("select: no active document")
		return 0
	}

	start := m.offset(L, ctx.Buffer, 1)
	end := start
	if L.GetTop() >= 3 {
		end = m.offset(L, ctx.Buffer, 3)
	}
	ctx.Cursors.SetPrimary(cursor.NewSelection(start, end))
	return 0
}

// selected_text() -> string
func (m *CursorModule) selectedText(L *lua.LState) int {
	ctx := m.ctx.exec()
	if ctx == nil || ctx.Buffer == nil || ctx.Cursors == nil {
		L.Push(lua.LString(""))
		return 1
	}
	L.Push(lua.LString(ctx.CursorContext().SelectedText()))
	return 1
}

// offset reads a 1-based line and column pair starting at argument idx.
func (m *CursorModule) offset(L *lua.LState, b buffer.Reader, idx int) buffer.ByteOffset {
	line := L.CheckInt(idx)
	col := L.CheckInt(idx + 1)
	if line < 1 || line > int(b.LineCount()) {
		L.ArgError(idx, "line out of range")
	}
	if col < 1 {
		L.ArgError(idx+1, "column out of range")
	}
	return b.PointToOffset(buffer.Point{Line: uint32(line - 1), Column: uint32(col - 1)})
}

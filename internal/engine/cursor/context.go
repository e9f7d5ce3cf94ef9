package cursor

import (
	"time"

	"github.com/dshills/easyprint/internal/engine/buffer"
)

// Context is the read-only view of the editor state at the moment a
// command runs. It is built fresh for every invocation and never cached.
type Context struct {
	// Doc is the active document.
	Doc buffer.Reader

	// Selection is the primary selection. An empty selection is a hover
	// position.
	Selection Selection

	// FilePath is the document path. Empty for untitled documents.
	FilePath string

	// WorkspaceRoot is the root folder containing the document, if any.
	WorkspaceRoot string

	// Now supplies the clock. Defaults to time.Now.
	Now func() time.Time
}

// NewContext creates a context for doc with the given selection.
func NewContext(doc buffer.Reader, sel Selection) Context {
	return Context{Doc: doc, Selection: sel}
}

// IsManual reports whether the user selected text explicitly.
func (c Context) IsManual() bool {
	return !c.Selection.IsEmpty()
}

// SelectedText returns the text covered by the selection.
func (c Context) SelectedText() string {
	r := c.Selection.Range()
	return c.Doc.TextRange(r.Start, r.End)
}

// ActivePoint returns the line/column of the selection head.
func (c Context) ActivePoint() buffer.Point {
	return c.Doc.OffsetToPoint(c.Selection.Head)
}

// ActiveLine returns the 0-based line of the selection head.
func (c Context) ActiveLine() uint32 {
	return c.ActivePoint().Line
}

// ActiveLineText returns the text of the line holding the selection head.
func (c Context) ActiveLineText() string {
	return c.Doc.LineText(c.ActiveLine())
}

// StartLine returns the 0-based line where the selection begins.
func (c Context) StartLine() uint32 {
	return c.Doc.OffsetToPoint(c.Selection.Start()).Line
}

// EndLine returns the last line the selection touches. A multi-line
// selection ending at column 0 does not count that final line.
func (c Context) EndLine() uint32 {
	end := c.Doc.OffsetToPoint(c.Selection.End())
	if c.IsManual() && end.Column == 0 && end.Line > c.StartLine() {
		return end.Line - 1
	}
	return end.Line
}

// Time returns the current time from the context clock.
func (c Context) Time() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

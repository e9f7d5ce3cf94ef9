package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/easyprint/internal/engine/buffer"
	"github.com/dshills/easyprint/internal/engine/cursor"
)

// Document is an open file with its selection.
type Document struct {
	// Path is the absolute file path.
	Path string

	Buffer  *buffer.Buffer
	Cursors *cursor.CursorSet

	original string
	mode     os.FileMode
}

// OpenDocument reads path into a new document with the cursor at the top.
func OpenDocument(path string) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}
	content, err := os.ReadFile(abs)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}
	return NewDocument(abs, string(content), info.Mode().Perm()), nil
}

// NewDocument creates a document for text that claims to live at path.
func NewDocument(path, text string, mode os.FileMode) *Document {
	b := buffer.NewBufferFromString(text, buffer.WithPath(path))
	return &Document{
		Path:     path,
		Buffer:   b,
		Cursors:  cursor.NewCursorSetAt(0),
		original: b.Text(),
		mode:     mode,
	}
}

// IsModified reports whether the text differs from what was opened or
// last saved.
func (d *Document) IsModified() bool {
	return d.Buffer.Text() != d.original
}

// Select sets the primary selection from 1-based positions. An end line
// of zero places a cursor instead of selecting.
func (d *Document) Select(line, col, endLine, endCol int) error {
	start, err := d.offset(line, col)
	if err != nil {
		return err
	}
	end := start
	if endLine > 0 {
		if end, err = d.offset(endLine, endCol); err != nil {
			return err
		}
	}
	d.Cursors.SetPrimary(cursor.NewSelection(start, end))
	return nil
}

func (d *Document) offset(line, col int) (buffer.ByteOffset, error) {
	if line < 1 || line > int(d.Buffer.LineCount()) {
		return 0, fmt.Errorf("%w: line %d of %d", ErrInvalidPosition, line, d.Buffer.LineCount())
	}
	if col < 1 || col > d.Buffer.LineLen(uint32(line-1))+1 {
		return 0, fmt.Errorf("%w: column %d on line %d", ErrInvalidPosition, col, line)
	}
	return d.Buffer.PointToOffset(buffer.Point{Line: uint32(line - 1), Column: uint32(col - 1)}), nil
}

// Save writes the buffer back to Path through a temporary file in the
// same directory, then renames it into place. The file's original line
// ending is restored.
func (d *Document) Save() error {
	text := d.Buffer.Text()
	out := text
	if seq := d.Buffer.LineEnding().Sequence(); seq != "\n" {
		out = strings.ReplaceAll(text, "\n", seq)
	}
	dir := filepath.Dir(d.Path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(d.Path)+".*")
	if err != nil {
		return NewOperationError("save", d.Path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(out); err != nil {
		tmp.Close()
		return NewOperationError("save", d.Path, err)
	}
	if err := tmp.Close(); err != nil {
		return NewOperationError("save", d.Path, err)
	}
	if d.mode != 0 {
		if err := os.Chmod(tmp.Name(), d.mode); err != nil {
			return NewOperationError("save", d.Path, err)
		}
	}
	if err := os.Rename(tmp.Name(), d.Path); err != nil {
		return NewOperationError("save", d.Path, err)
	}
	d.original = text
	return nil
}

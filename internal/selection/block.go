package selection

import (
	"github.com/dshills/easyprint/internal/engine/buffer"
	"github.com/dshills/easyprint/internal/pattern"
)

// OpensBlock reports whether line opens a bracket it does not close.
func OpensBlock(line string) bool {
	return len(pattern.UnclosedOpeners(line)) > 0
}

// InsertionLine returns the line after which a statement for line belongs.
// When line opens brackets that close further down, statements go after
// the line holding the last of those closers. Unbalanced openers are
// ignored.
func InsertionLine(doc buffer.Reader, line uint32) uint32 {
	text := doc.LineText(line)
	openers := pattern.UnclosedOpeners(text)
	if len(openers) == 0 {
		return line
	}

	full := doc.Text()
	base := int(doc.LineStartOffset(line))
	anchor := line
	for _, idx := range openers {
		close, ok := pattern.MatchForward(full, base+idx)
		if !ok {
			continue
		}
		if l := doc.OffsetToPoint(buffer.ByteOffset(close)).Line; l > anchor {
			anchor = l
		}
	}
	return anchor
}

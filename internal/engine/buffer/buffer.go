package buffer

import (
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
	ErrEditsOverlap     = errors.New("edits overlap")
)

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the escaped representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// Reader is the read-only view of a buffer used by the resolvers.
type Reader interface {
	Text() string
	TextRange(start, end ByteOffset) string
	Len() ByteOffset
	LineCount() uint32
	LineText(line uint32) string
	LineStartOffset(line uint32) ByteOffset
	LineEndOffset(line uint32) ByteOffset
	OffsetToPoint(offset ByteOffset) Point
	PointToOffset(point Point) ByteOffset
}

// Buffer holds LF-normalized text with a line-start index.
// All methods are thread-safe.
type Buffer struct {
	mu            sync.RWMutex
	text          string
	lineStarts    []ByteOffset
	revisionID    RevisionID
	lineEnding    LineEnding
	lineEndingSet bool
	tabWidth      int
	path          string
}

var _ Reader = (*Buffer)(nil)

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		lineStarts: []ByteOffset{0},
		revisionID: NewRevisionID(),
		lineEnding: LineEndingLF,
		tabWidth:   4,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewBufferFromString creates a buffer with initial content.
// The line ending of s is detected unless WithLineEnding was given.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	if !b.lineEndingSet {
		b.lineEnding = DetectLineEnding(s)
	}
	b.setText(normalizeLineEndings(s))
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBufferFromString(string(data), opts...), nil
}

// normalizeLineEndings converts CRLF and CR to LF.
func normalizeLineEndings(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// setText replaces the content and rebuilds the line index.
// Caller must hold the write lock or own b exclusively.
func (b *Buffer) setText(s string) {
	b.text = s
	starts := make([]ByteOffset, 1, strings.Count(s, "\n")+1)
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			starts = append(starts, ByteOffset(i+1))
		}
	}
	b.lineStarts = starts
	b.revisionID = NewRevisionID()
}

// Read Operations

// Text returns the full buffer content with LF line endings.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

// Bytes returns the content using the buffer's line ending style.
func (b *Buffer) Bytes() []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.lineEnding == LineEndingLF {
		return []byte(b.text)
	}
	return []byte(strings.ReplaceAll(b.text, "\n", b.lineEnding.Sequence()))
}

// TextRange returns text in the given byte range, clamped to the buffer.
func (b *Buffer) TextRange(start, end ByteOffset) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	start = b.clamp(start)
	end = b.clamp(end)
	if start >= end {
		return ""
	}
	return b.text[start:end]
}

// Len returns the buffer length in bytes.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(len(b.text))
}

// IsEmpty returns true if the buffer holds no text.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return uint32(len(b.lineStarts))
}

// LineText returns the text of a line without its line break.
// Returns "" for lines past the end of the buffer.
func (b *Buffer) LineText(line uint32) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if int(line) >= len(b.lineStarts) {
		return ""
	}
	return b.text[b.lineStarts[line]:b.lineEnd(line)]
}

// LineLen returns the length of a line in bytes, excluding the line break.
func (b *Buffer) LineLen(line uint32) int {
	return len(b.LineText(line))
}

// LineStartOffset returns the offset of the first byte of a line.
func (b *Buffer) LineStartOffset(line uint32) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if int(line) >= len(b.lineStarts) {
		return ByteOffset(len(b.text))
	}
	return b.lineStarts[line]
}

// LineEndOffset returns the offset just before the line's line break.
func (b *Buffer) LineEndOffset(line uint32) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if int(line) >= len(b.lineStarts) {
		return ByteOffset(len(b.text))
	}
	return b.lineEnd(line)
}

func (b *Buffer) lineEnd(line uint32) ByteOffset {
	if int(line)+1 < len(b.lineStarts) {
		return b.lineStarts[line+1] - 1
	}
	return ByteOffset(len(b.text))
}

// OffsetToPoint converts a byte offset to a line/column position.
// Offsets outside the buffer are clamped.
func (b *Buffer) OffsetToPoint(offset ByteOffset) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	offset = b.clamp(offset)
	line := sort.Search(len(b.lineStarts), func(i int) bool {
		return b.lineStarts[i] > offset
	}) - 1
	return Point{Line: uint32(line), Column: uint32(offset - b.lineStarts[line])}
}

// PointToOffset converts a line/column position to a byte offset.
// Lines past the end clamp to the last line and columns clamp to the line length.
func (b *Buffer) PointToOffset(point Point) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	line := point.Line
	if int(line) >= len(b.lineStarts) {
		line = uint32(len(b.lineStarts) - 1)
	}
	start := b.lineStarts[line]
	end := b.lineEnd(line)
	offset := start + ByteOffset(point.Column)
	if offset > end {
		offset = end
	}
	return offset
}

func (b *Buffer) clamp(offset ByteOffset) ByteOffset {
	if offset < 0 {
		return 0
	}
	if offset > ByteOffset(len(b.text)) {
		return ByteOffset(len(b.text))
	}
	return offset
}

// Write Operations

// Insert inserts text at the given offset in its own transaction.
// Returns the end position of the inserted text.
func (b *Buffer) Insert(offset ByteOffset, text string) (ByteOffset, error) {
	change, err := b.Transact("insert", func(tx *Transaction) error {
		tx.Insert(offset, text)
		return nil
	})
	if err != nil {
		return 0, err
	}
	if change.IsEmpty() {
		return offset, nil
	}
	return change.Edits[0].NewRange.End, nil
}

// Delete removes text in the given range in its own transaction.
func (b *Buffer) Delete(start, end ByteOffset) error {
	_, err := b.Transact("delete", func(tx *Transaction) error {
		tx.Delete(start, end)
		return nil
	})
	return err
}

// Replace replaces text in the given range in its own transaction.
// Returns the end position of the replacement text.
func (b *Buffer) Replace(start, end ByteOffset, text string) (ByteOffset, error) {
	change, err := b.Transact("replace", func(tx *Transaction) error {
		tx.Replace(start, end, text)
		return nil
	})
	if err != nil {
		return 0, err
	}
	if change.IsEmpty() {
		return start, nil
	}
	return change.Edits[0].NewRange.End, nil
}

// Buffer State

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// LineEnding returns the line ending restored by Bytes.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// TabWidth returns the buffer's tab width.
func (b *Buffer) TabWidth() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tabWidth
}

// Path returns the file path the buffer was loaded from, if any.
func (b *Buffer) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.path
}

package buffer

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer()

	assert.True(t, b.IsEmpty())
	assert.Equal(t, ByteOffset(0), b.Len())
	assert.Equal(t, uint32(1), b.LineCount())
	assert.Equal(t, "", b.LineText(0))
}

func TestNewBufferFromStringMultiline(t *testing.T) {
	b := NewBufferFromString("line1\nline2\nline3")

	require.Equal(t, uint32(3), b.LineCount())
	assert.Equal(t, "line1", b.LineText(0))
	assert.Equal(t, "line2", b.LineText(1))
	assert.Equal(t, "line3", b.LineText(2))
	assert.Equal(t, "", b.LineText(3))
}

func TestBufferTrailingNewline(t *testing.T) {
	b := NewBufferFromString("a\nb\n")

	assert.Equal(t, uint32(3), b.LineCount())
	assert.Equal(t, "", b.LineText(2))
	assert.Equal(t, ByteOffset(4), b.LineStartOffset(2))
}

func TestBufferLineEndings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  LineEnding
	}{
		{"lf", "a\nb\n", LineEndingLF},
		{"crlf", "a\r\nb\r\n", LineEndingCRLF},
		{"cr", "a\rb\r", LineEndingCR},
		{"none", "abc", LineEndingLF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBufferFromString(tt.input)
			assert.Equal(t, tt.want, b.LineEnding())
			assert.NotContains(t, b.Text(), "\r")
		})
	}
}

func TestBufferBytesRestoresLineEnding(t *testing.T) {
	b := NewBufferFromString("x = 1\r\ny = 2\r\n")

	assert.Equal(t, "x = 1\ny = 2\n", b.Text())
	assert.Equal(t, "x = 1\r\ny = 2\r\n", string(b.Bytes()))

	_, err := b.Insert(b.LineEndOffset(0), "\nprint(x)")
	require.NoError(t, err)
	assert.Equal(t, "x = 1\r\nprint(x)\r\ny = 2\r\n", string(b.Bytes()))
}

func TestBufferOffsetPointConversion(t *testing.T) {
	b := NewBufferFromString("foo\nbarbaz\n\nqux")

	tests := []struct {
		offset ByteOffset
		point  Point
	}{
		{0, Point{0, 0}},
		{3, Point{0, 3}},
		{4, Point{1, 0}},
		{7, Point{1, 3}},
		{11, Point{2, 0}},
		{12, Point{3, 0}},
		{15, Point{3, 3}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.point, b.OffsetToPoint(tt.offset), "OffsetToPoint(%d)", tt.offset)
		assert.Equal(t, tt.offset, b.PointToOffset(tt.point), "PointToOffset(%v)", tt.point)
	}
}

func TestBufferPositionClamping(t *testing.T) {
	b := NewBufferFromString("ab\ncd")

	assert.Equal(t, Point{1, 2}, b.OffsetToPoint(100))
	assert.Equal(t, Point{0, 0}, b.OffsetToPoint(-5))
	assert.Equal(t, ByteOffset(2), b.PointToOffset(Point{0, 40}))
	assert.Equal(t, ByteOffset(5), b.PointToOffset(Point{9, 9}))
	assert.Equal(t, "b\nc", b.TextRange(1, 4))
	assert.Equal(t, "", b.TextRange(4, 1))
}

func TestBufferInsertDeleteReplace(t *testing.T) {
	b := NewBufferFromString("Hello World")

	end, err := b.Insert(5, ",")
	require.NoError(t, err)
	assert.Equal(t, ByteOffset(6), end)
	assert.Equal(t, "Hello, World", b.Text())

	require.NoError(t, b.Delete(0, 7))
	assert.Equal(t, "World", b.Text())

	end, err = b.Replace(0, 5, "Go")
	require.NoError(t, err)
	assert.Equal(t, ByteOffset(2), end)
	assert.Equal(t, "Go", b.Text())
}

func TestBufferInsertOutOfRange(t *testing.T) {
	b := NewBufferFromString("abc")

	_, err := b.Insert(10, "x")
	assert.ErrorIs(t, err, ErrOffsetOutOfRange)

	err = b.Delete(2, 1)
	assert.ErrorIs(t, err, ErrRangeInvalid)
	assert.Equal(t, "abc", b.Text())
}

func TestBufferRevisionChangesOnEdit(t *testing.T) {
	b := NewBufferFromString("abc")
	rev := b.RevisionID()

	_, err := b.Insert(0, "")
	require.NoError(t, err)
	assert.Equal(t, rev, b.RevisionID(), "empty insert keeps revision")

	_, err = b.Insert(0, "x")
	require.NoError(t, err)
	assert.NotEqual(t, rev, b.RevisionID())
}

func TestBufferConcurrentReads(t *testing.T) {
	b := NewBufferFromString(strings.Repeat("line\n", 100))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = b.LineText(uint32(j))
				_ = b.OffsetToPoint(ByteOffset(j * n))
			}
		}(i)
	}
	wg.Wait()
}

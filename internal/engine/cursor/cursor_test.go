package cursor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/easyprint/internal/engine/buffer"
)

func TestSelectionBounds(t *testing.T) {
	forward := NewSelection(2, 7)
	backward := NewSelection(7, 2)

	assert.Equal(t, forward.Range(), backward.Range())
	assert.Equal(t, ByteOffset(2), backward.Start())
	assert.Equal(t, ByteOffset(7), backward.End())
	assert.False(t, forward.IsEmpty())
	assert.True(t, NewCursorSelection(3).IsEmpty())
	assert.Equal(t, NewSelection(0, 5), NewSelection(-1, 9).Clamp(5))
}

func TestCursorSetPrimary(t *testing.T) {
	cs := NewCursorSetAt(4)
	cs.Add(NewSelection(10, 12))

	assert.Equal(t, 2, cs.Count())
	assert.True(t, cs.HasSelection())

	cs.SetPrimary(NewCursorSelection(1))
	assert.Equal(t, NewCursorSelection(1), cs.Primary())
	assert.Equal(t, NewSelection(10, 12), cs.All()[1])

	cs.Clamp(11)
	assert.Equal(t, NewSelection(10, 11), cs.All()[1])
}

func TestTransformOffset(t *testing.T) {
	b := buffer.NewBufferFromString("aaa\nbbb\nccc")
	change, err := b.Transact("t", func(tx *buffer.Transaction) error {
		tx.Insert(0, "# ")
		tx.Delete(4, 8)
		return nil
	})
	require.NoError(t, err)

	tests := []struct {
		name string
		in   ByteOffset
		want ByteOffset
	}{
		{"at insert stays", 0, 0},
		{"after insert shifts", 2, 4},
		{"inside delete moves to end", 5, 6},
		{"after both", 9, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TransformOffset(tt.in, change))
		})
	}
}

func TestContextAccessors(t *testing.T) {
	b := buffer.NewBufferFromString("first\nsecond line\nthird")
	sel := NewSelection(b.PointToOffset(buffer.Point{Line: 1, Column: 0}), b.PointToOffset(buffer.Point{Line: 2, Column: 0}))
	ctx := NewContext(b, sel)

	assert.True(t, ctx.IsManual())
	assert.Equal(t, "second line\n", ctx.SelectedText())
	assert.Equal(t, uint32(1), ctx.StartLine())
	assert.Equal(t, uint32(1), ctx.EndLine())
	assert.Equal(t, uint32(2), ctx.ActiveLine())
	assert.Equal(t, "third", ctx.ActiveLineText())

	fixed := time.Date(2024, 3, 9, 8, 5, 7, 0, time.UTC)
	ctx.Now = func() time.Time { return fixed }
	assert.Equal(t, fixed, ctx.Time())
}

package buffer

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactAppliesEditsAgainstOriginalOffsets(t *testing.T) {
	b := NewBufferFromString("aaa\nbbb\nccc")

	change, err := b.Transact("multi", func(tx *Transaction) error {
		tx.Insert(b.LineStartOffset(2), "# ")
		tx.Insert(b.LineStartOffset(0), "# ")
		tx.Delete(b.LineStartOffset(1), b.LineStartOffset(2))
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, "# aaa\n# ccc", b.Text())
	assert.NotEqual(t, uuid.Nil, change.ID)
	assert.Equal(t, "multi", change.Name)
	require.Len(t, change.Edits, 3)
	assert.Equal(t, NewRange(0, 2), change.Edits[0].NewRange)
	assert.Equal(t, "bbb\n", change.Edits[1].OldText)
	assert.Equal(t, NewRange(6, 8), change.Edits[2].NewRange)
	assert.Equal(t, b.RevisionID(), change.Revision)
}

func TestTransactFnErrorAppliesNothing(t *testing.T) {
	b := NewBufferFromString("keep")
	boom := errors.New("boom")

	_, err := b.Transact("fail", func(tx *Transaction) error {
		tx.Insert(0, "lost ")
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "keep", b.Text())
}

func TestTransactRejectsOverlap(t *testing.T) {
	b := NewBufferFromString("0123456789")

	tests := []struct {
		name  string
		edits []Edit
	}{
		{"overlapping deletes", []Edit{NewDelete(1, 5), NewDelete(4, 6)}},
		{"insert inside delete", []Edit{NewDelete(1, 5), NewInsert(3, "x")}},
		{"two inserts same offset", []Edit{NewInsert(2, "a"), NewInsert(2, "b")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.Transact(tt.name, func(tx *Transaction) error {
				for _, e := range tt.edits {
					tx.Add(e)
				}
				return nil
			})
			assert.ErrorIs(t, err, ErrEditsOverlap)
			assert.Equal(t, "0123456789", b.Text())
		})
	}
}

func TestTransactInsertAtDeleteBoundary(t *testing.T) {
	b := NewBufferFromString("0123456789")

	_, err := b.Transact("boundary", func(tx *Transaction) error {
		tx.Delete(5, 8)
		tx.Insert(5, "X")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "01234X89", b.Text())
}

func TestTransactStale(t *testing.T) {
	b := NewBufferFromString("abc")

	_, err := b.Transact("stale", func(tx *Transaction) error {
		tx.Insert(0, "x")
		_, innerErr := b.Insert(3, "!")
		return innerErr
	})

	assert.ErrorIs(t, err, ErrStaleTransaction)
	assert.Equal(t, "abc!", b.Text())
}

func TestTransactNoEdits(t *testing.T) {
	b := NewBufferFromString("abc")
	rev := b.RevisionID()

	change, err := b.Transact("empty", func(tx *Transaction) error {
		tx.Insert(1, "")
		assert.Equal(t, 0, tx.Len())
		return nil
	})

	require.NoError(t, err)
	assert.True(t, change.IsEmpty())
	assert.Equal(t, rev, b.RevisionID())
}

func TestTransactNormalizesInsertedLineEndings(t *testing.T) {
	b := NewBufferFromString("a")

	_, err := b.Insert(1, "\r\nb")
	require.NoError(t, err)
	assert.Equal(t, "a\nb", b.Text())
	assert.Equal(t, uint32(2), b.LineCount())
}

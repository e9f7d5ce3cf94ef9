package buffer

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// ErrStaleTransaction is returned when the buffer changed between the start
// of a transaction and its apply step.
var ErrStaleTransaction = errors.New("buffer changed during transaction")

// Transaction collects edits expressed in offsets of the text as it was when
// the transaction began.
type Transaction struct {
	id    uuid.UUID
	name  string
	edits []Edit
}

// ID returns the transaction identifier.
func (tx *Transaction) ID() uuid.UUID {
	return tx.id
}

// Name returns the transaction label.
func (tx *Transaction) Name() string {
	return tx.name
}

// Add queues an edit. No-op edits are dropped.
func (tx *Transaction) Add(edit Edit) {
	if edit.IsNoOp() {
		return
	}
	tx.edits = append(tx.edits, edit)
}

// Insert queues an insertion.
func (tx *Transaction) Insert(offset ByteOffset, text string) {
	tx.Add(NewInsert(offset, text))
}

// Delete queues a deletion.
func (tx *Transaction) Delete(start, end ByteOffset) {
	tx.Add(NewDelete(start, end))
}

// Replace queues a replacement.
func (tx *Transaction) Replace(start, end ByteOffset, text string) {
	tx.Add(NewEdit(NewRange(start, end), text))
}

// Len returns the number of queued edits.
func (tx *Transaction) Len() int {
	return len(tx.edits)
}

// Change describes an applied transaction.
type Change struct {
	ID       uuid.UUID
	Name     string
	Edits    []EditResult // ascending by offset
	Revision RevisionID
}

// IsEmpty returns true if the transaction applied no edits.
func (c Change) IsEmpty() bool {
	return len(c.Edits) == 0
}

// Transact runs fn to collect edits, then applies them atomically.
// fn may read from the buffer. If fn returns an error nothing is applied.
func (b *Buffer) Transact(name string, fn func(tx *Transaction) error) (Change, error) {
	tx := &Transaction{id: uuid.New(), name: name}
	start := b.RevisionID()

	if err := fn(tx); err != nil {
		return Change{}, fmt.Errorf("transaction %s: %w", name, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	change := Change{ID: tx.id, Name: name, Revision: b.revisionID}
	if len(tx.edits) == 0 {
		return change, nil
	}
	if b.revisionID != start {
		return Change{}, ErrStaleTransaction
	}

	edits := make([]Edit, len(tx.edits))
	copy(edits, tx.edits)
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].Range.Start != edits[j].Range.Start {
			return edits[i].Range.Start < edits[j].Range.Start
		}
		return edits[i].Range.End < edits[j].Range.End
	})

	size := ByteOffset(len(b.text))
	for i, e := range edits {
		if !e.Range.IsValid() || e.Range.Start < 0 || e.Range.End > size {
			if e.Range.IsEmpty() {
				return Change{}, fmt.Errorf("%w: %d", ErrOffsetOutOfRange, e.Range.Start)
			}
			return Change{}, fmt.Errorf("%w: %s", ErrRangeInvalid, e.Range)
		}
		if i > 0 && edits[i-1].Range.Overlaps(e.Range) {
			return Change{}, fmt.Errorf("%w: %s and %s", ErrEditsOverlap, edits[i-1].Range, e.Range)
		}
	}

	var sb strings.Builder
	sb.Grow(len(b.text))
	results := make([]EditResult, 0, len(edits))
	var pos, shift ByteOffset
	for _, e := range edits {
		text := normalizeLineEndings(e.NewText)
		sb.WriteString(b.text[pos:e.Range.Start])
		sb.WriteString(text)
		newStart := e.Range.Start + shift
		results = append(results, EditResult{
			OldRange: e.Range,
			NewRange: NewRange(newStart, newStart+ByteOffset(len(text))),
			OldText:  b.text[e.Range.Start:e.Range.End],
			NewText:  text,
		})
		shift += ByteOffset(len(text)) - e.Range.Len()
		pos = e.Range.End
	}
	sb.WriteString(b.text[pos:])

	b.setText(sb.String())
	change.Edits = results
	change.Revision = b.revisionID
	return change, nil
}

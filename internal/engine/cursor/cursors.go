package cursor

import "sync"

// CursorSet holds the selections of an editor view. The first selection is
// the primary one; statement insertion only ever looks at the primary.
type CursorSet struct {
	mu         sync.RWMutex
	selections []Selection
}

// NewCursorSet creates a cursor set with a single selection.
func NewCursorSet(initial Selection) *CursorSet {
	return &CursorSet{selections: []Selection{initial}}
}

// NewCursorSetAt creates a cursor set with a cursor at offset.
func NewCursorSetAt(offset ByteOffset) *CursorSet {
	return NewCursorSet(NewCursorSelection(offset))
}

// Primary returns the primary selection.
func (cs *CursorSet) Primary() Selection {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	if len(cs.selections) == 0 {
		return Selection{}
	}
	return cs.selections[0]
}

// SetPrimary replaces the primary selection, keeping the others.
func (cs *CursorSet) SetPrimary(sel Selection) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if len(cs.selections) == 0 {
		cs.selections = []Selection{sel}
		return
	}
	cs.selections[0] = sel
}

// Add appends a secondary selection.
func (cs *CursorSet) Add(sel Selection) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.selections = append(cs.selections, sel)
}

// All returns a copy of all selections, primary first.
func (cs *CursorSet) All() []Selection {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	out := make([]Selection, len(cs.selections))
	copy(out, cs.selections)
	return out
}

// Count returns the number of selections.
func (cs *CursorSet) Count() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.selections)
}

// HasSelection returns true if any selection has an extent.
func (cs *CursorSet) HasSelection() bool {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	for _, sel := range cs.selections {
		if !sel.IsEmpty() {
			return true
		}
	}
	return false
}

// MapInPlace applies f to every selection.
func (cs *CursorSet) MapInPlace(f func(sel Selection) Selection) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	for i, sel := range cs.selections {
		cs.selections[i] = f(sel)
	}
}

// Clamp limits every selection to [0, max].
func (cs *CursorSet) Clamp(max ByteOffset) {
	cs.MapInPlace(func(sel Selection) Selection {
		return sel.Clamp(max)
	})
}

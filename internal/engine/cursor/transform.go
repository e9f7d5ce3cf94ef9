package cursor

import "github.com/dshills/easyprint/internal/engine/buffer"

// TransformOffset maps an offset from before an applied change to after it.
//
// Edits entirely before the offset shift it by their delta. An edit that
// starts at or after the offset leaves it alone. An edit spanning the offset
// moves it to the end of the new text.
func TransformOffset(offset ByteOffset, change buffer.Change) ByteOffset {
	var shift ByteOffset
	for _, e := range change.Edits {
		switch {
		case e.OldRange.End <= offset && !(e.OldRange.IsEmpty() && e.OldRange.Start == offset):
			shift += e.NewRange.Len() - e.OldRange.Len()
		case e.OldRange.Start >= offset:
			return offset + shift
		default:
			return e.NewRange.End
		}
	}
	return offset + shift
}

// TransformSelection maps both ends of a selection through a change.
func TransformSelection(sel Selection, change buffer.Change) Selection {
	return Selection{
		Anchor: TransformOffset(sel.Anchor, change),
		Head:   TransformOffset(sel.Head, change),
	}
}

// TransformCursorSet maps every selection in cs through a change.
func TransformCursorSet(cs *CursorSet, change buffer.Change) {
	cs.MapInPlace(func(sel Selection) Selection {
		return TransformSelection(sel, change)
	})
}

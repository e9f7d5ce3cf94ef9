// Package buffer provides the thread-safe text buffer that print statements
// are inserted into.
//
// Text is stored normalized to LF line endings with a line-start index, so
// line lookups and offset/point conversion are O(log n). The line ending
// detected on load is kept and restored by Bytes when the buffer is saved.
//
// All mutations run as transactions. A transaction collects edits expressed
// against the text as it was when the transaction began and applies them in
// one step, so either every edit lands or none does:
//
//	change, err := buf.Transact("insert print", func(tx *buffer.Transaction) error {
//	    tx.Insert(buf.LineEndOffset(3), "\n    print(x)")
//	    return nil
//	})
//
// Thread Safety:
//
// All Buffer methods are safe for concurrent use. Reads take a read lock and
// transactions take the write lock for the duration of the apply step.
package buffer

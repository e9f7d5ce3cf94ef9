// Package document provides handlers that act on every print statement
// already present in the active document.
//
// Statements are recognized by the configured marker symbol. The handlers
// comment, uncomment, toggle or delete all of them in one undoable change,
// and move the cursor to the next or previous one with wraparound.
package document

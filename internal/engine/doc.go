// Package engine holds the text model easyprint edits.
//
// The buffer sub-package stores LF-normalized text with a line index and
// applies edits in transactions. The cursor sub-package tracks selections
// and moves them through the edits a transaction made.
package engine

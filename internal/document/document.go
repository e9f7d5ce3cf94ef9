// Package document finds the statements easyprint inserted into a buffer
// and edits them as a group.
//
// A tool line is a line whose trimmed text starts with a print call,
// optionally behind a comment marker, whose string starts with the
// configured symbol:
//
//	print("➡ foo :", foo)
//	# print("➡ foo :", foo)
//
// A line of other code that ends in such a call is not a tool line.
//
// Every scan that edits the buffer applies all of its edits in a single
// transaction.
package document

import (
	"regexp"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dshills/easyprint/internal/config"
	"github.com/dshills/easyprint/internal/engine/buffer"
	"github.com/dshills/easyprint/internal/pattern"
)

// DefaultCacheSize is the number of symbol matchers kept by NewScanner.
const DefaultCacheSize = 32

// Editor is a buffer that can apply edits in one transaction.
type Editor interface {
	buffer.Reader
	Transact(name string, fn func(tx *buffer.Transaction) error) (buffer.Change, error)
}

var _ Editor = (*buffer.Buffer)(nil)

// Line is a tool line found by a scan.
type Line struct {
	// Number is the 0-based line number.
	Number uint32

	// Indent is the leading whitespace of the line.
	Indent string

	// Text is the line without leading or trailing whitespace.
	Text string

	// Commented reports whether Text starts with the comment marker.
	Commented bool
}

// Scanner locates tool lines. It is safe for concurrent use.
type Scanner struct {
	grammar  pattern.Grammar
	matchers *lru.Cache[string, *regexp.Regexp]
	mu       sync.Mutex
}

// NewScanner creates a scanner caching up to size matchers. A nil grammar
// means Python.
func NewScanner(g pattern.Grammar, size int) *Scanner {
	if g == nil {
		g = pattern.Python
	}
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, *regexp.Regexp](size)
	if err != nil {
		// only fails for a non-positive size
		panic(err)
	}
	return &Scanner{grammar: g, matchers: cache}
}

func (s *Scanner) matcher(symbol string) *regexp.Regexp {
	if re, ok := s.matchers.Get(symbol); ok {
		return re
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if re, ok := s.matchers.Get(symbol); ok {
		return re
	}
	re := regexp.MustCompile(`^(` + regexp.QuoteMeta(s.grammar.CommentPrefix()) + `\s*)?print\(\s*['"]` + regexp.QuoteMeta(symbol))
	s.matchers.Add(symbol, re)
	return re
}

// Lines returns the tool lines of doc for symbol in document order.
// An empty symbol falls back to config.DefaultSymbol.
func (s *Scanner) Lines(doc buffer.Reader, symbol string) []Line {
	if symbol == "" {
		symbol = config.DefaultSymbol
	}
	re := s.matcher(symbol)

	var out []Line
	n := doc.LineCount()
	for l := uint32(0); l < n; l++ {
		raw := doc.LineText(l)
		text := strings.TrimSpace(raw)
		m := re.FindStringSubmatchIndex(text)
		if m == nil {
			continue
		}
		out = append(out, Line{
			Number:    l,
			Indent:    pattern.LeadingWhitespace(raw),
			Text:      text,
			Commented: m[2] >= 0,
		})
	}
	return out
}

// Comment puts the comment marker in front of every uncommented tool line.
// Running it twice leaves the buffer unchanged the second time.
func (s *Scanner) Comment(b Editor, symbol string) (buffer.Change, error) {
	return s.rewrite(b, "comment", symbol, func(ln Line) (string, bool) {
		if ln.Commented {
			return "", false
		}
		return s.comment(ln.Text), true
	})
}

// Uncomment removes the comment marker, and one space after it, from every
// commented tool line.
func (s *Scanner) Uncomment(b Editor, symbol string) (buffer.Change, error) {
	return s.rewrite(b, "uncomment", symbol, func(ln Line) (string, bool) {
		if !ln.Commented {
			return "", false
		}
		return s.uncomment(ln.Text), true
	})
}

// Toggle comments uncommented tool lines and uncomments commented ones.
func (s *Scanner) Toggle(b Editor, symbol string) (buffer.Change, error) {
	return s.rewrite(b, "toggle comment", symbol, func(ln Line) (string, bool) {
		if ln.Commented {
			return s.uncomment(ln.Text), true
		}
		return s.comment(ln.Text), true
	})
}

func (s *Scanner) comment(text string) string {
	return s.grammar.CommentPrefix() + " " + text
}

func (s *Scanner) uncomment(text string) string {
	text = strings.TrimPrefix(text, s.grammar.CommentPrefix())
	return strings.TrimPrefix(text, " ")
}

// rewrite replaces the trimmed text of each tool line for which fn
// reports true. Indentation is preserved.
func (s *Scanner) rewrite(b Editor, name, symbol string, fn func(Line) (string, bool)) (buffer.Change, error) {
	return b.Transact(name, func(tx *buffer.Transaction) error {
		for _, ln := range s.Lines(b, symbol) {
			text, ok := fn(ln)
			if !ok {
				continue
			}
			start := b.LineStartOffset(ln.Number) + buffer.ByteOffset(len(ln.Indent))
			tx.Replace(start, b.LineEndOffset(ln.Number), text)
		}
		return nil
	})
}

// Delete removes every tool line together with its line break.
func (s *Scanner) Delete(b Editor, symbol string) (buffer.Change, error) {
	return b.Transact("delete", func(tx *buffer.Transaction) error {
		lines := s.Lines(b, symbol)
		last := b.LineCount() - 1
		for i := 0; i < len(lines); {
			// group consecutive lines so their deletions never touch
			first := lines[i].Number
			end := first
			for i++; i < len(lines) && lines[i].Number == end+1; i++ {
				end++
			}

			from := b.LineStartOffset(first)
			to := b.LineStartOffset(end + 1)
			if end == last {
				to = b.Len()
				if first > 0 {
					from--
				}
			}
			tx.Delete(from, to)
		}
		return nil
	})
}

// JumpNext returns the first tool line after line, wrapping around to the
// top of the document.
func (s *Scanner) JumpNext(doc buffer.Reader, symbol string, line uint32) (uint32, bool) {
	lines := s.Lines(doc, symbol)
	if len(lines) == 0 {
		return 0, false
	}
	for _, ln := range lines {
		if ln.Number > line {
			return ln.Number, true
		}
	}
	return lines[0].Number, true
}

// JumpPrevious returns the last tool line before line, wrapping around to
// the bottom of the document.
func (s *Scanner) JumpPrevious(doc buffer.Reader, symbol string, line uint32) (uint32, bool) {
	lines := s.Lines(doc, symbol)
	if len(lines) == 0 {
		return 0, false
	}
	for i := len(lines) - 1; i >= 0; i-- {
		if lines[i].Number < line {
			return lines[i].Number, true
		}
	}
	return lines[len(lines)-1].Number, true
}

var defaultScanner = NewScanner(pattern.Python, DefaultCacheSize)

// Default returns the shared Python scanner.
func Default() *Scanner { return defaultScanner }

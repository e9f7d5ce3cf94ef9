package selection

import (
	"unicode/utf8"

	"github.com/dshills/easyprint/internal/pattern"
)

// Split segments text into runs of `ident ( .ident | (args) )*`.
// Chained calls stay together; anything between runs separates them.
// String literals between runs are skipped. A trailing dot with no
// identifier after it is left out of the run.
func (r *Resolver) Split(text string) []string {
	var out []string
	i := 0
	for i < len(text) {
		c := text[i]
		if c == '\'' || c == '"' {
			i = pattern.SkipString(text, i) + 1
			continue
		}
		ch, size := utf8.DecodeRuneInString(text[i:])
		if !r.grammar.IsWordRune(ch) {
			i += size
			continue
		}

		start := i
		i = r.wordEnd(text, i)
		for i < len(text) {
			if text[i] == '(' {
				close, ok := pattern.MatchForward(text, i)
				if !ok {
					break
				}
				i = close + 1
				continue
			}
			if text[i] == '.' {
				next := r.wordEnd(text, i+1)
				if next == i+1 {
					break
				}
				i = next
				continue
			}
			break
		}
		out = append(out, text[start:i])
	}
	return out
}

package pattern

import "strings"

var closerFor = map[byte]byte{'(': ')', '[': ']', '{': '}'}

var openerFor = map[byte]byte{')': '(', ']': '[', '}': '{'}

// IsOpener reports whether c opens a bracket pair.
func IsOpener(c byte) bool {
	_, ok := closerFor[c]
	return ok
}

// IsCloser reports whether c closes a bracket pair.
func IsCloser(c byte) bool {
	_, ok := openerFor[c]
	return ok
}

// MatchForward returns the index of the bracket that closes s[open].
// Brackets inside string literals and comments are ignored. A mismatched
// closer or reaching the end of s reports false.
func MatchForward(s string, open int) (int, bool) {
	if open < 0 || open >= len(s) || !IsOpener(s[open]) {
		return -1, false
	}

	stack := make([]byte, 0, 8)
	for i := open; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\'' || c == '"':
			i = SkipString(s, i)
		case c == '#':
			i = skipComment(s, i)
		case IsOpener(c):
			stack = append(stack, c)
		case IsCloser(c):
			top := stack[len(stack)-1]
			if closerFor[top] != c {
				return -1, false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i, true
			}
		}
	}
	return -1, false
}

// MatchBackward returns the index of the bracket that s[close] closes.
// s is scanned from the start so string literals are tracked correctly.
func MatchBackward(s string, close int) (int, bool) {
	if close < 0 || close >= len(s) || !IsCloser(s[close]) {
		return -1, false
	}

	var stack []int
	for i := 0; i <= close; i++ {
		c := s[i]
		switch {
		case c == '\'' || c == '"':
			end := SkipString(s, i)
			if end >= close {
				return -1, false
			}
			i = end
		case c == '#':
			end := skipComment(s, i)
			if end >= close {
				return -1, false
			}
			i = end
		case IsOpener(c):
			stack = append(stack, i)
		case IsCloser(c):
			if len(stack) == 0 {
				if i == close {
					return -1, false
				}
				continue
			}
			top := stack[len(stack)-1]
			if closerFor[s[top]] != c {
				if i == close {
					return -1, false
				}
				continue
			}
			stack = stack[:len(stack)-1]
			if i == close {
				return top, true
			}
		}
	}
	return -1, false
}

// UnclosedOpeners returns the indices of brackets in s that are still open
// at the end of s.
func UnclosedOpeners(s string) []int {
	var stack []int
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\'' || c == '"':
			i = SkipString(s, i)
		case c == '#':
			i = skipComment(s, i)
		case IsOpener(c):
			stack = append(stack, i)
		case IsCloser(c):
			if len(stack) > 0 && closerFor[s[stack[len(stack)-1]]] == c {
				stack = stack[:len(stack)-1]
			}
		}
	}
	return stack
}

// SkipString returns the index of the quote that ends the string literal
// starting at s[i]. Triple-quoted strings may span lines; other strings end
// at the line break when unterminated.
func SkipString(s string, i int) int {
	q := s[i]
	triple := strings.Repeat(string(q), 3)
	if strings.HasPrefix(s[i:], triple) {
		if end := strings.Index(s[i+3:], triple); end >= 0 {
			return i + 3 + end + 2
		}
		return len(s) - 1
	}

	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case q:
			return j
		case '\n':
			return j - 1
		}
	}
	return len(s) - 1
}

// skipComment returns the index of the last byte of the comment at s[i].
func skipComment(s string, i int) int {
	if end := strings.IndexByte(s[i:], '\n'); end >= 0 {
		return i + end - 1
	}
	return len(s) - 1
}

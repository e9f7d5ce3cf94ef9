package pattern

import (
	"regexp"
	"unicode"
)

// Grammar is the per-language pattern strategy.
type Grammar interface {
	// Name identifies the grammar.
	Name() string

	// IsWordRune reports whether r may appear in an identifier.
	IsWordRune(r rune) bool

	// FunctionName returns the function defined on line, if any.
	FunctionName(line string) (string, bool)

	// Indentation returns the number of leading whitespace runes.
	Indentation(line string) int

	// CommentPrefix returns the line comment marker.
	CommentPrefix() string
}

// Python is the Python grammar.
var Python Grammar = python{}

var pythonDef = regexp.MustCompile(`^\s*(?:async\s+)?def\s+(\w+)\s*\(`)

type python struct{}

func (python) Name() string { return "python" }

func (python) IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (python) FunctionName(line string) (string, bool) {
	m := pythonDef.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func (python) Indentation(line string) int {
	n := 0
	for _, r := range line {
		if r != ' ' && r != '\t' {
			break
		}
		n++
	}
	return n
}

func (python) CommentPrefix() string { return "#" }

// IsBlank reports whether line holds only whitespace.
func IsBlank(line string) bool {
	for _, r := range line {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// LeadingWhitespace returns the indentation prefix of line.
func LeadingWhitespace(line string) string {
	for i, r := range line {
		if r != ' ' && r != '\t' {
			return line[:i]
		}
	}
	return line
}

// Package placeholder expands the %-tokens users put in custom messages.
//
//	%f  file name
//	%l  1-based line where the selection starts
//	%F  name of the enclosing function
//	%w  workspace relative path
//	%t  timestamp, DD-MM-YYYYTHH:MM:SS
//
// Values are computed from a cursor.Context on first use and reused for
// the rest of the conversion. Convert leaves any other %-sequence in the
// message untouched; only Value reports ErrInvalidPlaceholder.
package placeholder

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/dshills/easyprint/internal/engine/cursor"
	"github.com/dshills/easyprint/internal/pattern"
)

// ErrInvalidPlaceholder is returned for tokens outside the supported set.
var ErrInvalidPlaceholder = errors.New("invalid placeholder")

// TimestampLayout is the time layout used for %t.
const TimestampLayout = "02-01-2006T15:04:05"

// Tokens lists the supported placeholder tokens.
var Tokens = []string{"%f", "%l", "%F", "%w", "%t"}

var tokenPattern = regexp.MustCompile(`%[flFwt]`)

// Converter resolves placeholder tokens against one context.
type Converter struct {
	ctx     cursor.Context
	grammar pattern.Grammar
	cache   map[string]string
}

// NewConverter creates a converter for ctx. A nil grammar means Python.
func NewConverter(ctx cursor.Context, g pattern.Grammar) *Converter {
	if g == nil {
		g = pattern.Python
	}
	return &Converter{ctx: ctx, grammar: g, cache: make(map[string]string, len(Tokens))}
}

// Convert replaces every supported token in message. Other %-sequences
// are not placeholders and are kept as written.
func (c *Converter) Convert(message string) string {
	return tokenPattern.ReplaceAllStringFunc(message, c.lookup)
}

// Value returns the value of a single token. Anything outside Tokens
// fails with ErrInvalidPlaceholder.
func (c *Converter) Value(token string) (string, error) {
	if !tokenPattern.MatchString(token) || len(token) != 2 {
		return "", fmt.Errorf("%w: %q", ErrInvalidPlaceholder, token)
	}
	return c.lookup(token), nil
}

// lookup computes a supported token once per converter.
func (c *Converter) lookup(token string) string {
	if v, ok := c.cache[token]; ok {
		return v
	}

	var v string
	switch token {
	case "%f":
		v = c.Filename()
	case "%l":
		v = c.LineNumber()
	case "%F":
		v = c.FunctionName()
	case "%w":
		v = c.WorkspacePath()
	case "%t":
		v = c.Timestamp()
	}
	c.cache[token] = v
	return v
}

// Filename returns the base name of the document, "" when untitled.
func (c *Converter) Filename() string {
	if c.ctx.FilePath == "" {
		return ""
	}
	return filepath.Base(c.ctx.FilePath)
}

// LineNumber returns the 1-based line where the selection starts.
func (c *Converter) LineNumber() string {
	if c.ctx.Doc == nil {
		return ""
	}
	return strconv.FormatUint(uint64(c.ctx.StartLine())+1, 10)
}

// WorkspacePath returns the document path relative to the workspace root
// with forward slashes, or "" when it cannot be expressed that way.
func (c *Converter) WorkspacePath() string {
	if c.ctx.FilePath == "" || c.ctx.WorkspaceRoot == "" {
		return ""
	}
	rel, err := filepath.Rel(c.ctx.WorkspaceRoot, c.ctx.FilePath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}
	return filepath.ToSlash(rel)
}

// Timestamp returns the context time formatted with TimestampLayout.
func (c *Converter) Timestamp() string {
	return c.ctx.Time().Format(TimestampLayout)
}

// FunctionName returns the function enclosing the active line.
//
// Lines are scanned upward from the active line, blank lines skipped. The
// first function definition indented less than the active line wins. The
// scan gives up at the first line with no indentation, so top level code
// never has an enclosing function.
func (c *Converter) FunctionName() string {
	if c.ctx.Doc == nil {
		return ""
	}

	start := c.ctx.ActiveLine()
	indent := c.grammar.Indentation(c.ctx.Doc.LineText(start))
	if indent == 0 {
		return ""
	}

	for l := int64(start); l >= 0; l-- {
		text := c.ctx.Doc.LineText(uint32(l))
		if pattern.IsBlank(text) {
			continue
		}
		cur := c.grammar.Indentation(text)
		if name, ok := c.grammar.FunctionName(text); ok && cur < indent {
			return name
		}
		if cur == 0 {
			break
		}
	}
	return ""
}

// Package selection decides which expressions a print command targets.
//
// A manual selection is taken literally, optionally split into independent
// expressions. A hover position resolves to the identifier under the cursor,
// extended leftward through a dotted parent chain and rightward through a
// call's argument list when the matching options are on.
package selection

import (
	"unicode/utf8"

	"github.com/dshills/easyprint/internal/config"
	"github.com/dshills/easyprint/internal/engine/cursor"
	"github.com/dshills/easyprint/internal/pattern"
)

// Options control expression resolution.
type Options struct {
	// IncludeParentCall extends a hovered identifier through `a.b(x).` chains.
	IncludeParentCall bool

	// IncludeParentheses extends a hovered identifier through its call args.
	IncludeParentheses bool

	// MultipleStatements splits a manual selection into expressions.
	MultipleStatements bool
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		IncludeParentCall:  true,
		IncludeParentheses: true,
		MultipleStatements: true,
	}
}

// OptionsFrom reads Options from configuration. Every key is required.
func OptionsFrom(src config.Source) (Options, error) {
	var (
		opts Options
		err  error
	)
	if opts.IncludeParentCall, err = config.RequireBool(src, config.KeyIncludeParentCall); err != nil {
		return Options{}, err
	}
	if opts.IncludeParentheses, err = config.RequireBool(src, config.KeyIncludeParentheses); err != nil {
		return Options{}, err
	}
	if opts.MultipleStatements, err = config.RequireBool(src, config.KeyMultipleStatements); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Resolver finds expressions using a pattern grammar.
type Resolver struct {
	grammar pattern.Grammar
}

// NewResolver creates a resolver for g. A nil grammar means Python.
func NewResolver(g pattern.Grammar) *Resolver {
	if g == nil {
		g = pattern.Python
	}
	return &Resolver{grammar: g}
}

// Resolve returns the ordered expressions to print, or nil when there is
// nothing to do.
func (r *Resolver) Resolve(ctx cursor.Context, opts Options) []string {
	if ctx.Doc == nil {
		return nil
	}

	if ctx.IsManual() {
		text := ctx.SelectedText()
		if pattern.IsBlank(text) {
			return nil
		}
		if !opts.MultipleStatements {
			return []string{text}
		}
		if parts := r.Split(text); len(parts) > 0 {
			return parts
		}
		return []string{text}
	}

	p := ctx.ActivePoint()
	expr, ok := r.HoverExpression(ctx.Doc.LineText(p.Line), int(p.Column), opts)
	if !ok {
		return nil
	}
	return []string{expr}
}

// HoverExpression resolves the expression around byte column col of line.
func (r *Resolver) HoverExpression(line string, col int, opts Options) (string, bool) {
	start, end, ok := r.WordRange(line, col)
	if !ok {
		return "", false
	}
	if opts.IncludeParentCall {
		start = r.extendParents(line, start)
	}
	if opts.IncludeParentheses && end < len(line) && line[end] == '(' {
		if close, ok := pattern.MatchForward(line, end); ok {
			end = close + 1
		}
	}
	return line[start:end], true
}

// WordRange returns the identifier touching byte column col. The cursor may
// sit inside the identifier or directly after its last rune.
func (r *Resolver) WordRange(line string, col int) (int, int, bool) {
	if col < 0 {
		return 0, 0, false
	}
	if col > len(line) {
		col = len(line)
	}

	atWord := false
	if col < len(line) {
		ch, _ := utf8.DecodeRuneInString(line[col:])
		atWord = r.grammar.IsWordRune(ch)
	}
	beforeWord := false
	if col > 0 {
		ch, _ := utf8.DecodeLastRuneInString(line[:col])
		beforeWord = r.grammar.IsWordRune(ch)
	}
	if !atWord && !beforeWord {
		return 0, 0, false
	}

	return r.wordStart(line, col), r.wordEnd(line, col), true
}

// extendParents walks left from start over `ident(args)?.` segments.
func (r *Resolver) extendParents(line string, start int) int {
	pos := start
	for pos > 0 && line[pos-1] == '.' {
		k := pos - 1
		if k > 0 && line[k-1] == ')' {
			open, ok := pattern.MatchBackward(line, k-1)
			if !ok {
				break
			}
			k = open
		}
		segStart := r.wordStart(line, k)
		if segStart == k {
			break
		}
		pos = segStart
	}
	return pos
}

func (r *Resolver) wordStart(s string, i int) int {
	for i > 0 {
		ch, size := utf8.DecodeLastRuneInString(s[:i])
		if !r.grammar.IsWordRune(ch) {
			break
		}
		i -= size
	}
	return i
}

func (r *Resolver) wordEnd(s string, i int) int {
	for i < len(s) {
		ch, size := utf8.DecodeRuneInString(s[i:])
		if !r.grammar.IsWordRune(ch) {
			break
		}
		i += size
	}
	return i
}

var defaultResolver = NewResolver(pattern.Python)

// Resolve resolves expressions with the Python grammar.
func Resolve(ctx cursor.Context, opts Options) []string {
	return defaultResolver.Resolve(ctx, opts)
}

// Package statement turns a statement kind into the text that gets
// inserted for an expression.
//
// Resolution produces a template that still holds {text}. Render then
// substitutes the expression, so one resolved template serves every
// expression of a multi-statement selection.
package statement

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dshills/easyprint/internal/config"
	"github.com/dshills/easyprint/internal/engine/cursor"
	"github.com/dshills/easyprint/internal/pattern"
	"github.com/dshills/easyprint/internal/placeholder"
)

var (
	// ErrNoCustomStatement is returned by the custom kind when no template
	// is configured.
	ErrNoCustomStatement = errors.New("no custom statement configured")

	// ErrUnresolvedToken is returned when a template token survives
	// resolution.
	ErrUnresolvedToken = errors.New("unresolved template token")
)

// Template tokens.
const (
	TokenText    = "{text}"
	TokenSymbol  = "{symbol}"
	TokenMessage = "{@}"
	TokenLogger  = "{logger}"
	TokenRepr    = "{#text}"
)

// DefaultLogger is the logger object used when none is configured.
const DefaultLogger = "logging"

var leftoverToken = regexp.MustCompile(`\{(?:symbol|@|logger|#text)\}`)

var newLineAfterColon = strings.NewReplacer(`:"`, `:\n"`, `:'`, `:\n'`)

// Options carry the settings that shape a statement.
type Options struct {
	Symbol          string
	Message         string
	CustomStatement string
	PrintToNewLine  bool
	LoggerName      string
	UseRepr         bool
}

// DefaultOptions mirrors the registered setting defaults.
func DefaultOptions() Options {
	return Options{
		Symbol:  config.DefaultSymbol,
		UseRepr: true,
	}
}

// OptionsFrom reads Options from configuration. Missing or mistyped
// settings fall back to their defaults.
func OptionsFrom(src config.Source) Options {
	def := DefaultOptions()
	return Options{
		Symbol:          config.StringOrDefault(src, config.KeyCustomSymbol, def.Symbol),
		Message:         config.StringOrDefault(src, config.KeyAddCustomMessage, def.Message),
		CustomStatement: config.StringOrDefault(src, config.KeyCustomStatement, def.CustomStatement),
		PrintToNewLine:  config.BoolOrDefault(src, config.KeyPrintToNewLine, def.PrintToNewLine),
		LoggerName:      config.StringOrDefault(src, config.KeyCustomLogName, def.LoggerName),
		UseRepr:         config.BoolOrDefault(src, config.KeyUseRepr, def.UseRepr),
	}
}

// Resolver builds statement templates.
type Resolver struct {
	grammar pattern.Grammar
}

// NewResolver creates a resolver. The grammar locates the enclosing
// function for %F. A nil grammar means Python.
func NewResolver(g pattern.Grammar) *Resolver {
	if g == nil {
		g = pattern.Python
	}
	return &Resolver{grammar: g}
}

// Resolve returns the template for kind with every token except {text}
// resolved against ctx.
func (r *Resolver) Resolve(kind string, ctx cursor.Context, opts Options) (string, error) {
	k, err := Lookup(kind)
	if err != nil {
		return "", err
	}

	tmpl := k.Template
	switch k.Family {
	case FamilyLog:
		tmpl = resolveLogger(tmpl, opts)
	case FamilyPrint:
		if strings.Contains(tmpl, TokenMessage) {
			msg := opts.Message
			if k.Name == Custom {
				if opts.CustomStatement == "" {
					return "", ErrNoCustomStatement
				}
				msg = strings.ReplaceAll(opts.CustomStatement, TokenSymbol, opts.Symbol)
			}
			msg = placeholder.NewConverter(ctx, r.grammar).Convert(msg)
			tmpl = join(tmpl, msg)
		}
	}

	tmpl = strings.ReplaceAll(tmpl, TokenSymbol, opts.Symbol)
	if opts.PrintToNewLine {
		tmpl = newLineAfterColon.Replace(tmpl)
	}

	if tok := leftoverToken.FindString(tmpl); tok != "" {
		return "", fmt.Errorf("%w: %s in %q", ErrUnresolvedToken, tok, tmpl)
	}
	return tmpl, nil
}

// Statements resolves kind once and renders it for every expression.
func (r *Resolver) Statements(kind string, ctx cursor.Context, opts Options, exprs []string) ([]string, error) {
	tmpl, err := r.Resolve(kind, ctx, opts)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(exprs))
	for i, e := range exprs {
		out[i] = Render(tmpl, e)
	}
	return out, nil
}

// Render substitutes expr for every {text} in tmpl.
func Render(tmpl, expr string) string {
	return strings.ReplaceAll(tmpl, TokenText, expr)
}

func resolveLogger(tmpl string, opts Options) string {
	name := opts.LoggerName
	if name == "" {
		name = DefaultLogger
	}
	value := TokenText
	if opts.UseRepr {
		value = "repr(" + TokenText + ")"
	}
	tmpl = strings.ReplaceAll(tmpl, TokenLogger, name)
	return strings.ReplaceAll(tmpl, TokenRepr, value)
}

// join places msg at the message token. An empty message takes the
// token's trailing space with it.
func join(tmpl, msg string) string {
	if msg == "" {
		tmpl = strings.ReplaceAll(tmpl, TokenMessage+" ", "")
		return strings.ReplaceAll(tmpl, TokenMessage, "")
	}
	return strings.ReplaceAll(tmpl, TokenMessage, msg)
}

var defaultResolver = NewResolver(pattern.Python)

// Resolve resolves kind with the Python grammar.
func Resolve(kind string, ctx cursor.Context, opts Options) (string, error) {
	return defaultResolver.Resolve(kind, ctx, opts)
}

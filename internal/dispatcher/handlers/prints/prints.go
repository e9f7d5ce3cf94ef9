package prints

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/easyprint/internal/config"
	"github.com/dshills/easyprint/internal/dispatcher/execctx"
	"github.com/dshills/easyprint/internal/dispatcher/handler"
	"github.com/dshills/easyprint/internal/engine/buffer"
	"github.com/dshills/easyprint/internal/engine/cursor"
	"github.com/dshills/easyprint/internal/input"
	"github.com/dshills/easyprint/internal/pattern"
	"github.com/dshills/easyprint/internal/selection"
	"github.com/dshills/easyprint/internal/statement"
)

// Python2Header enables print_function and utf-8 source in Python 2 files.
const Python2Header = "# coding: utf-8\nfrom __future__ import print_function\n"

// Result data keys.
const (
	DataExpressions = "expressions"
	DataStatements  = "statements"
	DataLine        = "line"
)

// Handler inserts statements for every statement kind.
type Handler struct {
	selections *selection.Resolver
	statements *statement.Resolver
	actions    map[string]string // action name -> kind
}

// NewHandler creates a handler using the Python grammar.
func NewHandler() *Handler {
	return NewHandlerWithGrammar(pattern.Python)
}

// NewHandlerWithGrammar creates a handler for grammar g.
func NewHandlerWithGrammar(g pattern.Grammar) *Handler {
	h := &Handler{
		selections: selection.NewResolver(g),
		statements: statement.NewResolver(g),
		actions:    make(map[string]string),
	}
	for _, name := range statement.Names() {
		h.actions[input.PrintAction(name)] = name
	}
	return h
}

// Namespace returns the easyprint namespace.
func (h *Handler) Namespace() string {
	return input.Namespace
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	if actionName == input.ActionInitPython2 {
		return true
	}
	_, ok := h.actions[actionName]
	return ok
}

// Actions lists the print actions followed by initPython2.
func (h *Handler) Actions() []string {
	names := make([]string, 0, len(h.actions)+1)
	for _, kind := range statement.Names() {
		names = append(names, input.PrintAction(kind))
	}
	return append(names, input.ActionInitPython2)
}

// HandleAction processes a print action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if ctx.Buffer == nil {
		return handler.NoOpWithMessage("no active document")
	}

	if action.Name == input.ActionInitPython2 {
		return h.initPython2(ctx)
	}

	kind, ok := h.actions[action.Name]
	if !ok {
		return handler.Errorf("unknown print action: %s", action.Name)
	}
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}
	return h.insert(kind, action, ctx)
}

func (h *Handler) insert(kind string, action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	log := ctx.Log().WithComponent("prints").WithField("kind", kind)
	src := ctx.Source()
	cc := ctx.CursorContext()

	var exprs []string
	if text := strings.TrimSpace(action.Args.Text); text != "" {
		exprs = []string{text}
	} else {
		opts, err := selection.OptionsFrom(src)
		if err != nil {
			return handler.Error(fmt.Errorf("selection options: %w", err))
		}
		exprs = h.selections.Resolve(cc, opts)
	}
	if len(exprs) == 0 {
		log.Debug("nothing to print at line %d", cc.ActiveLine()+1)
		return handler.NoOpWithMessage("nothing to print")
	}

	stmts, err := h.statements.Statements(kind, cc, statement.OptionsFrom(src), exprs)
	if err != nil {
		return handler.Error(err)
	}

	anchor := selection.InsertionLine(ctx.Buffer, cc.ActiveLine())
	indent := Indentation(ctx.Buffer.LineText(anchor), indentUnit(src, ctx.Buffer.LineText(anchor)))

	result := handler.Success().
		WithData(DataExpressions, exprs).
		WithData(DataStatements, stmts)
	if ctx.DryRun {
		return result.WithData(DataLine, anchor+uint32(len(stmts))).
			WithMessage(fmt.Sprintf("would insert %d statement(s)", len(stmts)))
	}

	var (
		errs     []error
		line     = anchor
		inserted int
		end      buffer.ByteOffset
	)
	for i, stmt := range stmts {
		change, err := ctx.Buffer.Transact("easyprint "+kind, func(tx *buffer.Transaction) error {
			tx.Insert(ctx.Buffer.LineEndOffset(line), "\n"+indent+stmt)
			return nil
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("insert %q: %w", exprs[i], err))
			continue
		}
		line++
		inserted++
		end = change.Edits[0].NewRange.End
		result = result.WithEdits(handler.EditsFromChange(change))
	}

	if inserted == 0 {
		return handler.Error(errors.Join(errs...))
	}
	ctx.Cursors.SetPrimary(cursor.NewCursorSelection(end))
	log.Debug("inserted %d statement(s) after line %d", inserted, anchor+1)

	result = result.WithData(DataLine, line).
		WithMessage(fmt.Sprintf("inserted %d statement(s)", inserted))
	if len(errs) > 0 {
		result = result.WithError(errors.Join(errs...))
	}
	return result
}

func (h *Handler) initPython2(ctx *execctx.ExecutionContext) handler.Result {
	if strings.HasPrefix(ctx.Buffer.Text(), Python2Header) {
		return handler.NoOpWithMessage("python 2 header already present")
	}
	if ctx.DryRun {
		return handler.SuccessWithMessage("would insert python 2 header")
	}

	change, err := ctx.Buffer.Transact("easyprint init python2", func(tx *buffer.Transaction) error {
		tx.Insert(0, Python2Header)
		return nil
	})
	if err != nil {
		return handler.Error(err)
	}
	if ctx.Cursors != nil {
		ctx.Cursors.SetPrimary(cursor.TransformSelection(ctx.Cursors.Primary(), change))
	}
	return handler.Success().WithEdits(handler.EditsFromChange(change))
}

// Indentation returns the indentation for a statement placed below line.
// A line ending in ':' opens a block, so one more unit is added.
func Indentation(line, unit string) string {
	indent := pattern.LeadingWhitespace(line)
	if strings.HasSuffix(strings.TrimRightFunc(line, isSpace), ":") {
		indent += unit
	}
	return indent
}

func indentUnit(src config.Source, line string) string {
	if strings.Contains(pattern.LeadingWhitespace(line), "\t") {
		return "\t"
	}
	if !config.BoolOrDefault(src, config.KeyInsertSpaces, true) {
		return "\t"
	}
	size := config.IntOrDefault(src, config.KeyTabSize, 4)
	if size < 1 {
		size = 1
	}
	return strings.Repeat(" ", size)
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}

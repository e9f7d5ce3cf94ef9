package document

import (
	"fmt"

	"github.com/dshills/easyprint/internal/config"
	"github.com/dshills/easyprint/internal/dispatcher/execctx"
	"github.com/dshills/easyprint/internal/dispatcher/handler"
	"github.com/dshills/easyprint/internal/document"
	"github.com/dshills/easyprint/internal/engine/buffer"
	"github.com/dshills/easyprint/internal/engine/cursor"
	"github.com/dshills/easyprint/internal/input"
	"github.com/dshills/easyprint/internal/pattern"
)

// Result data keys.
const (
	DataLines = "lines"
	DataLine  = "line"
)

type editOp struct {
	apply   func(s *document.Scanner, b document.Editor, symbol string) (buffer.Change, error)
	affects func(document.Line) bool
}

func always(document.Line) bool      { return true }
func commented(ln document.Line) bool { return ln.Commented }
func plain(ln document.Line) bool     { return !ln.Commented }

// Handler rewrites and navigates marked statements.
type Handler struct {
	scanner *document.Scanner
	edits   map[string]editOp
}

// NewHandler creates a handler using the shared Python scanner.
func NewHandler() *Handler {
	return NewHandlerWithScanner(document.Default())
}

// NewHandlerWithScanner creates a handler backed by s.
func NewHandlerWithScanner(s *document.Scanner) *Handler {
	return &Handler{
		scanner: s,
		edits: map[string]editOp{
			input.ActionComment:       {(*document.Scanner).Comment, plain},
			input.ActionUncomment:     {(*document.Scanner).Uncomment, commented},
			input.ActionToggleComment: {(*document.Scanner).Toggle, always},
			input.ActionDelete:        {(*document.Scanner).Delete, always},
		},
	}
}

// Namespace returns the easyprint namespace.
func (h *Handler) Namespace() string {
	return input.Namespace
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case input.ActionJumpNext, input.ActionJumpPrevious:
		return true
	}
	_, ok := h.edits[actionName]
	return ok
}

// Actions lists the supported actions.
func (h *Handler) Actions() []string {
	return []string{
		input.ActionComment,
		input.ActionUncomment,
		input.ActionToggleComment,
		input.ActionDelete,
		input.ActionJumpPrevious,
		input.ActionJumpNext,
	}
}

// HandleAction processes a document action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if ctx.Buffer == nil {
		return handler.NoOpWithMessage("no active document")
	}
	symbol := config.StringOrDefault(ctx.Source(), config.KeyCustomSymbol, config.DefaultSymbol)

	switch action.Name {
	case input.ActionJumpNext:
		return h.jump(ctx, symbol, h.scanner.JumpNext)
	case input.ActionJumpPrevious:
		return h.jump(ctx, symbol, h.scanner.JumpPrevious)
	}

	op, ok := h.edits[action.Name]
	if !ok {
		return handler.Errorf("unknown document action: %s", action.Name)
	}
	return h.edit(action.Name, op, ctx, symbol)
}

func (h *Handler) edit(name string, op editOp, ctx *execctx.ExecutionContext, symbol string) handler.Result {
	all := h.scanner.Lines(ctx.Buffer, symbol)
	if len(all) == 0 {
		return handler.NoOpWithMessage("no print statements found")
	}
	lines := lineNumbers(all, op.affects)
	if len(lines) == 0 {
		return handler.NoOpWithMessage("nothing to change")
	}
	if ctx.DryRun {
		return handler.Success().
			WithData(DataLines, lines).
			WithMessage(fmt.Sprintf("would update %d line(s)", len(lines)))
	}

	change, err := op.apply(h.scanner, ctx.Buffer, symbol)
	if err != nil {
		return handler.Error(fmt.Errorf("%s: %w", name, err))
	}
	if change.IsEmpty() {
		return handler.NoOpWithMessage("nothing to change")
	}
	if ctx.Cursors != nil {
		ctx.Cursors.SetPrimary(cursor.TransformSelection(ctx.Cursors.Primary(), change).Clamp(ctx.Buffer.Len()))
	}

	ctx.Log().WithComponent("document").Debug("%s: %d edit(s)", name, len(change.Edits))
	return handler.Success().
		WithEdits(handler.EditsFromChange(change)).
		WithData(DataLines, lines).
		WithMessage(fmt.Sprintf("updated %d line(s)", len(change.Edits)))
}

func (h *Handler) jump(ctx *execctx.ExecutionContext, symbol string, find func(buffer.Reader, string, uint32) (uint32, bool)) handler.Result {
	line, ok := find(ctx.Buffer, symbol, ctx.CursorContext().StartLine())
	if !ok {
		return handler.NoOpWithMessage("no print statements found")
	}

	indent := pattern.LeadingWhitespace(ctx.Buffer.LineText(line))
	offset := ctx.Buffer.LineStartOffset(line) + buffer.ByteOffset(len(indent))
	if ctx.Cursors != nil && !ctx.DryRun {
		ctx.Cursors.SetPrimary(cursor.NewCursorSelection(offset))
	}
	return handler.Success().WithData(DataLine, line)
}

func lineNumbers(lines []document.Line, keep func(document.Line) bool) []uint32 {
	var out []uint32
	for _, ln := range lines {
		if keep(ln) {
			out = append(out, ln.Number)
		}
	}
	return out
}


package plugin

import (
	"context"

	"github.com/dshills/easyprint/internal/dispatcher/execctx"
	"github.com/dshills/easyprint/internal/dispatcher/handler"
	"github.com/dshills/easyprint/internal/input"
	"github.com/dshills/easyprint/internal/plugin/api"
)

// ActionRun runs inline code or a script file.
const ActionRun = api.ScriptNamespace + ".run"

// Registrar registers handlers by exact action name.
type Registrar interface {
	RegisterHandlerFunc(actionName string, fn func(input.Action, *execctx.ExecutionContext) handler.Result)
}

// NewHandler creates the script namespace handler serving ActionRun.
func NewHandler(host *Host) *handler.BaseNamespaceHandler {
	h := handler.NewBaseNamespaceHandler(api.ScriptNamespace)
	h.Register(ActionRun, func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		if path := action.Args.GetString("path"); path != "" {
			return runResult(host.RunFile(context.Background(), path))
		}
		if action.Args.Text == "" {
			return handler.Error(ErrNoScript)
		}
		return runResult(host.Run(context.Background(), action.Args.Text))
	})
	return h
}

// RegisterScripts makes every script an action named script.<name>. A
// script called "run" is skipped since ActionRun owns that name.
func RegisterScripts(r Registrar, host *Host, scripts []Script) []string {
	var names []string
	for _, s := range scripts {
		name := api.ScriptNamespace + "." + s.Name
		if name == ActionRun {
			continue
		}
		path := s.Path
		r.RegisterHandlerFunc(name, func(input.Action, *execctx.ExecutionContext) handler.Result {
			return runResult(host.RunFile(context.Background(), path))
		})
		names = append(names, name)
	}
	return names
}

func runResult(err error) handler.Result {
	if err != nil {
		return handler.Error(err)
	}
	return handler.Success()
}

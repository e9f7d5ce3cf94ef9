// Package dispatcher routes actions to handlers and coordinates execution.
//
// Handlers are found in two places. The router maps a namespace prefix to
// a NamespaceHandler, so every "easyprint.*" action reaches the handler
// that registered it. The registry maps exact action names to handlers and
// is consulted when no namespace handler claims the action.
//
// Basic usage:
//
//	d := dispatcher.NewWithDefaults()
//	d.SetBuffer(buf)
//	d.SetCursors(cursors)
//	d.SetConfig(cfg)
//	d.RegisterNamespace("easyprint", prints.NewHandler())
//
//	result := d.Dispatch(input.Action{Name: "easyprint.print"})
//
// Each dispatch builds a fresh execution context from the current
// subsystems, runs the pre-dispatch hooks, executes the handler with panic
// recovery and then runs the post-dispatch hooks.
//
// An action nobody handles fails with an *UnknownActionError listing the
// closest registered names.
package dispatcher

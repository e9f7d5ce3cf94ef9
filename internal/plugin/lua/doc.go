// Package lua runs user scripts in a sandboxed gopher-lua state.
//
// A State opens only the base, table, string and math libraries. Functions
// that load code from disk are removed, require only resolves preloaded
// modules, and print writes to a configurable writer instead of stdout.
// Every execution runs under a context so a runaway script is cancelled
// when its deadline passes.
//
//	state := lua.NewState(lua.WithTimeout(time.Second))
//	defer state.Close()
//	state.Preload("ep", loader)
//	err := state.DoString(ctx, `local ep = require("ep") ep.run("print")`)
package lua

package api

import (
	lua "github.com/yuin/gopher-lua"
)

// LogModule implements ep.log.
type LogModule struct {
	ctx *Context
}

// NewLogModule creates the log module.
func NewLogModule(ctx *Context) *LogModule {
	return &LogModule{ctx: ctx}
}

// Name returns the module name.
func (m *LogModule) Name() string {
	return "log"
}

// Register registers debug, info, warn and error.
func (m *LogModule) Register(L *lua.LState, mod *lua.LTable) error {
	log := m.ctx.log().WithComponent("script")
	for name, fn := range map[string]func(string, ...any){
		"debug": log.Debug,
		"info":  log.Info,
		"warn":  log.Warn,
		"error": log.Error,
	} {
		L.SetField(mod, name, L.NewFunction(func(L *lua.LState) int {
			fn("%s", L.CheckString(1))
			return 0
		}))
	}
	return nil
}

package api

import (
	"sort"

	lua "github.com/yuin/gopher-lua"

	eplua "github.com/dshills/easyprint/internal/plugin/lua"
)

// ConfigModule implements ep.config.
type ConfigModule struct {
	ctx *Context
}

// NewConfigModule creates the config module.
func NewConfigModule(ctx *Context) *ConfigModule {
	return &ConfigModule{ctx: ctx}
}

// Name returns the module name.
func (m *ConfigModule) Name() string {
	return "config"
}

// Register registers the module functions.
func (m *ConfigModule) Register(L *lua.LState, mod *lua.LTable) error {
	L.SetField(mod, "get", L.NewFunction(m.get))
	L.SetField(mod, "set", L.NewFunction(m.set))
	L.SetField(mod, "keys", L.NewFunction(m.keys))
	return nil
}

// get(key[, default]) -> value
func (m *ConfigModule) get(L *lua.LState) int {
	key := L.CheckString(1)
	def := L.Get(2)

	ctx := m.ctx.exec()
	if ctx == nil {
		L.Push(def)
		return 1
	}
	v, err := ctx.Source().Require(key)
	if err != nil {
		L.Push(def)
		return 1
	}
	L.Push(eplua.ToLuaValue(L, v))
	return 1
}

// set(key, value) -> true
// Raises when settings are read-only or the value does not fit the key.
func (m *ConfigModule) set(L *lua.LState) int {
	key := L.CheckString(1)
	value := eplua.ToGoValue(L.CheckAny(2))

	if m.ctx == nil || m.ctx.Settings == nil {
		L.RaiseError("config.set: settings are read-only")
		return 0
	}
	if err := m.ctx.Settings.Set(key, value); err != nil {
		L.RaiseError("config.set: %v", err)
		return 0
	}
	L.Push(lua.LTrue)
	return 1
}

// keys() -> {key, ...}
// Lists the settings that have a value, when the source can enumerate them.
func (m *ConfigModule) keys(L *lua.LState) int {
	t := L.NewTable()
	ctx := m.ctx.exec()
	if ctx == nil {
		L.Push(t)
		return 1
	}
	lister, ok := ctx.Source().(interface{ Settings() map[string]any })
	if !ok {
		L.Push(t)
		return 1
	}

	keys := make([]string, 0)
	for k := range lister.Settings() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		t.Append(lua.LString(k))
	}
	L.Push(t)
	return 1
}

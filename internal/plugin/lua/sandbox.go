package lua

import (
	"fmt"
	"io"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// builtinModules may always be required.
var builtinModules = []string{"string", "table", "math"}

// Sandbox restricts what a script can reach.
type Sandbox struct {
	L *lua.LState

	output  io.Writer
	allowed map[string]bool
}

// NewSandbox creates a sandbox for L. print writes to out.
func NewSandbox(L *lua.LState, out io.Writer) *Sandbox {
	s := &Sandbox{
		L:       L,
		output:  out,
		allowed: make(map[string]bool),
	}
	for _, name := range builtinModules {
		s.allowed[name] = true
	}
	return s
}

// Install removes the loaders and replaces print and require.
func (s *Sandbox) Install() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		s.L.SetGlobal(name, lua.LNil)
	}

	if pkg, ok := s.L.GetGlobal("package").(*lua.LTable); ok {
		s.L.SetField(pkg, "path", lua.LString(""))
		s.L.SetField(pkg, "cpath", lua.LString(""))
	}

	s.L.SetGlobal("print", s.L.NewFunction(s.print))

	require := s.L.GetGlobal("require")
	s.L.SetGlobal("require", s.L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		if !s.allowed[name] {
			L.RaiseError("module %q is not available", name)
			return 0
		}
		L.Push(require)
		L.Push(lua.LString(name))
		L.Call(1, 1)
		return 1
	}))
}

// Allow lets scripts require name.
func (s *Sandbox) Allow(name string) {
	s.allowed[name] = true
}

// Allowed reports whether scripts may require name.
func (s *Sandbox) Allowed(name string) bool {
	return s.allowed[name]
}

// print joins its arguments with tabs, like the stock print.
func (s *Sandbox) print(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, n)
	for i := 1; i <= n; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	fmt.Fprintln(s.output, strings.Join(parts, "\t"))
	return 0
}

package script

import (
	"sort"

	glua "github.com/yuin/gopher-lua"
)

// bindRegistry holds registered Lua key bindings.
type bindRegistry struct {
	binds map[string]*glua.LFunction
}

func newBindRegistry() *bindRegistry {
	return &bindRegistry{
		binds: make(map[string]*glua.LFunction),
	}
}

// registerBindFuncs registers the tally.bind API.
func (e *Engine) registerBindFuncs() {
	// tally.bind(key, callback) - Register a key binding
	// key is a string like "ctrl+r", "f5", "s", etc.
	e.L.SetField(e.tallyTable, "bind", e.L.NewFunction(func(L *glua.LState) int {
		key := L.CheckString(1)
		fn := L.CheckFunction(2)
		e.binds.binds[key] = fn
		return 0
	}))

	// tally.unbind(key) - Remove a key binding
	e.L.SetField(e.tallyTable, "unbind", e.L.NewFunction(func(L *glua.LState) int {
		delete(e.binds.binds, L.CheckString(1))
		return 0
	}))
}

// HandleKeyBind checks if a key has a Lua binding and executes it.
// Returns true if the key was handled by Lua.
func (e *Engine) HandleKeyBind(key string) bool {
	if e.L == nil {
		return false
	}
	fn, ok := e.binds.binds[key]
	if !ok {
		return false
	}

	e.L.Push(fn)
	if err := e.L.PCall(0, 0, nil); err != nil {
		e.CallHook("error", "keybind: "+err.Error())
	}
	return true
}

// BoundKeys returns all bound key names, sorted.
func (e *Engine) BoundKeys() []string {
	keys := make([]string, 0, len(e.binds.binds))
	for key := range e.binds.binds {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

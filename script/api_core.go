package script

import glua "github.com/yuin/gopher-lua"

// registerCoreFuncs registers tally.print, tally.alert and lifecycle calls.
func (e *Engine) registerCoreFuncs() {
	// tally.print(text): Outputs text to the status line
	e.L.SetField(e.tallyTable, "print", e.L.NewFunction(func(L *glua.LState) int {
		e.ui.Print(L.CheckString(1))
		return 0
	}))

	// tally.alert(text): Shows a modal alert
	e.L.SetField(e.tallyTable, "alert", e.L.NewFunction(func(L *glua.LState) int {
		e.ui.Alert(L.CheckString(1))
		return 0
	}))

	// tally.navigate(screen): Switch screens ("calculator", "login", ...)
	e.L.SetField(e.tallyTable, "navigate", e.L.NewFunction(func(L *glua.LState) int {
		if err := e.ui.Navigate(L.CheckString(1)); err != nil {
			L.Push(glua.LFalse)
			L.Push(glua.LString(err.Error()))
			return 2
		}
		L.Push(glua.LTrue)
		return 1
	}))

	// tally.quit(): Exit
	e.L.SetField(e.tallyTable, "quit", e.L.NewFunction(func(L *glua.LState) int {
		e.sys.Quit()
		return 0
	}))

	// tally.reload(): Reload all scripts (runs after the current handler)
	e.L.SetField(e.tallyTable, "reload", e.L.NewFunction(func(L *glua.LState) int {
		e.sys.Reload()
		return 0
	}))

	// tally.load(path): Run a Lua file now; returns an error string on failure
	e.L.SetField(e.tallyTable, "load", e.L.NewFunction(func(L *glua.LState) int {
		path := L.CheckString(1)
		if err := e.DoFile(path); err != nil {
			L.Push(glua.LString(err.Error()))
			return 1
		}
		e.CallHook("loaded", path)
		return 0
	}))
}

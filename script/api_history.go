package script

import glua "github.com/yuin/gopher-lua"

// registerHistoryFuncs registers the tally.history API.
func (e *Engine) registerHistoryFuncs() {
	hist := e.L.NewTable()
	e.L.SetField(e.tallyTable, "history", hist)

	// tally.history.get() - Returns array of entries, newest first
	e.L.SetField(hist, "get", e.L.NewFunction(func(L *glua.LState) int {
		tbl := L.NewTable()
		for i, entry := range e.history.History() {
			tbl.RawSetInt(i+1, glua.LString(entry))
		}
		L.Push(tbl)
		return 1
	}))

	// tally.history.clear() -> true | false, err
	e.L.SetField(hist, "clear", e.L.NewFunction(func(L *glua.LState) int {
		return pushResult(L, e.history.ClearHistory())
	}))
}

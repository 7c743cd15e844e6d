package script

import (
	"github.com/drake/tally/calc"
	glua "github.com/yuin/gopher-lua"
)

// registerStateFuncs creates the tally.state table.
// This table is read-only from Lua's perspective - Go pushes updates.
func (e *Engine) registerStateFuncs() {
	stateTable := e.L.NewTable()
	e.L.SetField(e.tallyTable, "state", stateTable)

	e.L.SetField(stateTable, "current", glua.LString(calc.Zero))
	e.L.SetField(stateTable, "previous", glua.LString(""))
	e.L.SetField(stateTable, "operator", glua.LNil)
	e.L.SetField(stateTable, "screen", glua.LString(""))
}

// UpdateState pushes the calculator state to tally.state.
func (e *Engine) UpdateState(s calc.State) {
	t := e.stateTable()
	if t == nil {
		return
	}
	e.L.SetField(t, "current", glua.LString(s.Current))
	e.L.SetField(t, "previous", glua.LString(s.Previous))
	if s.Pending() {
		e.L.SetField(t, "operator", glua.LString(s.Operator))
	} else {
		e.L.SetField(t, "operator", glua.LNil)
	}
}

// UpdateScreen pushes the active screen name to tally.state.screen.
func (e *Engine) UpdateScreen(screen string) {
	if t := e.stateTable(); t != nil {
		e.L.SetField(t, "screen", glua.LString(screen))
	}
}

func (e *Engine) stateTable() *glua.LTable {
	if e.L == nil || e.tallyTable == nil {
		return nil
	}
	t, _ := e.L.GetField(e.tallyTable, "state").(*glua.LTable)
	return t
}

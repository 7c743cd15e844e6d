package script

import (
	"github.com/drake/tally/calc"
	glua "github.com/yuin/gopher-lua"
)

// registerCalcFuncs registers the tally.calc API.
func (e *Engine) registerCalcFuncs() {
	calcTable := e.L.NewTable()
	e.L.SetField(e.tallyTable, "calc", calcTable)

	// tally.calc.press(key) -> bool: Same as pressing key on the keypad
	e.L.SetField(calcTable, "press", e.L.NewFunction(func(L *glua.LState) int {
		L.Push(glua.LBool(e.calc.Press(L.CheckString(1))))
		return 1
	}))

	// tally.calc.digit(d)
	e.L.SetField(calcTable, "digit", e.L.NewFunction(func(L *glua.LState) int {
		d := L.CheckString(1)
		if !isDigit(d) {
			L.ArgError(1, "expected a digit or '.'")
			return 0
		}
		e.calc.AppendDigit(d)
		return 0
	}))

	// tally.calc.operator(op) -> true | false, err
	e.L.SetField(calcTable, "operator", e.L.NewFunction(func(L *glua.LState) int {
		op, ok := calc.ParseOperator(L.CheckString(1))
		if !ok {
			L.ArgError(1, "unknown operator")
			return 0
		}
		return pushResult(L, e.calc.ChooseOperator(op))
	}))

	// tally.calc.delete()
	e.L.SetField(calcTable, "delete", e.L.NewFunction(func(L *glua.LState) int {
		e.calc.DeleteLastDigit()
		return 0
	}))

	// tally.calc.compute() -> true | false, err
	e.L.SetField(calcTable, "compute", e.L.NewFunction(func(L *glua.LState) int {
		return pushResult(L, e.calc.Compute())
	}))

	// tally.calc.clear()
	e.L.SetField(calcTable, "clear", e.L.NewFunction(func(L *glua.LState) int {
		e.calc.ClearCalc()
		return 0
	}))
}

func pushResult(L *glua.LState, err error) int {
	if err != nil {
		L.Push(glua.LFalse)
		L.Push(glua.LString(err.Error()))
		return 2
	}
	L.Push(glua.LTrue)
	return 1
}

func isDigit(s string) bool {
	return len(s) == 1 && (s[0] == '.' || (s[0] >= '0' && s[0] <= '9'))
}

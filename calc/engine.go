// Package calc implements the calculator's operand entry state machine.
package calc

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidComputeState is returned by Compute when an operand is not
	// numeric or no operator is pending. It is never shown to the user.
	ErrInvalidComputeState = errors.New("calc: nothing to compute")

	// ErrDivisionByZero is returned by Compute for ÷ with a zero divisor.
	ErrDivisionByZero = errors.New("calc: division by zero")
)

// DivideByZeroMessage is the alert text for ErrDivisionByZero.
const DivideByZeroMessage = "Cannot divide by zero!"

// Operator is a binary arithmetic operation.
type Operator string

const (
	Add       Operator = "+"
	Subtract  Operator = "-"
	Multiply  Operator = "×"
	Divide    Operator = "÷"
	Remainder Operator = "%"
)

// ParseOperator maps operator text (including ASCII aliases) to an Operator.
func ParseOperator(s string) (Operator, bool) {
	switch s {
	case "+":
		return Add, true
	case "-":
		return Subtract, true
	case "×", "*", "x", "X":
		return Multiply, true
	case "÷", "/":
		return Divide, true
	case "%":
		return Remainder, true
	}
	return "", false
}

// Display renders the engine state. previous is blank when no operator
// is pending.
type Display interface {
	Show(current, previous string)
}

// Alerter delivers a user-facing notification.
type Alerter interface {
	Alert(message string)
}

// Recorder receives formatted history entries.
type Recorder interface {
	Record(entry string) error
}

// State is a snapshot of the engine.
// Previous is non-empty exactly when Operator is set.
type State struct {
	Current  Operand
	Previous Operand
	Operator Operator
}

// Pending reports whether an operator is waiting for its second operand.
func (s State) Pending() bool {
	return s.Operator != ""
}

// Engine owns one calculator state. It is not safe for concurrent use;
// all calls are expected from the UI event loop.
type Engine struct {
	state State

	display  Display
	alerter  Alerter
	recorder Recorder
}

// NewEngine creates an engine in the cleared state. Any of the
// collaborators may be nil.
func NewEngine(display Display, alerter Alerter, recorder Recorder) *Engine {
	e := &Engine{
		display:  display,
		alerter:  alerter,
		recorder: recorder,
	}
	e.Clear()
	return e
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	return e.state
}

// Clear resets all fields to their initial values.
func (e *Engine) Clear() {
	e.state = State{Current: Zero}
	e.refresh()
}

// AppendDigit appends d ("0"-"9" or ".") to the current operand.
// A second decimal point is ignored, and a lone "0" is replaced.
func (e *Engine) AppendDigit(d string) {
	if d == "." && e.state.Current.HasDecimalPoint() {
		return
	}
	if e.state.Current == Zero && d != "." {
		e.state.Current = Operand(d)
	} else {
		e.state.Current += Operand(d)
	}
	e.refresh()
}

// DeleteLastDigit removes the last character of the current operand.
func (e *Engine) DeleteLastDigit() {
	if e.state.Current == Zero {
		return
	}
	cur := []rune(string(e.state.Current))
	if len(cur) > 0 {
		cur = cur[:len(cur)-1]
	}
	e.state.Current = Operand(cur)
	if e.state.Current == "" {
		e.state.Current = Zero
	}
	e.refresh()
}

// ChooseOperator makes op the pending operator. If one is already
// pending the chained calculation is computed first; a failed compute
// does not stop the operator from being taken.
func (e *Engine) ChooseOperator(op Operator) error {
	if e.state.Current == "" {
		return nil
	}

	var err error
	if e.state.Previous != "" {
		err = e.Compute()
	}

	e.state.Operator = op
	e.state.Previous = e.state.Current
	e.state.Current = Zero
	e.refresh()

	if errors.Is(err, ErrInvalidComputeState) {
		return nil
	}
	return err
}

// Compute applies the pending operator. On success the entry is recorded,
// the result becomes the current operand and the operator is cleared.
//
// ErrInvalidComputeState and ErrDivisionByZero leave the state untouched.
// A recorder failure is returned after the state has been updated.
func (e *Engine) Compute() error {
	prev, ok1 := e.state.Previous.Float()
	cur, ok2 := e.state.Current.Float()
	if !ok1 || !ok2 {
		return ErrInvalidComputeState
	}

	var result float64
	switch e.state.Operator {
	case Add:
		result = prev + cur
	case Subtract:
		result = prev - cur
	case Multiply:
		result = prev * cur
	case Divide:
		if cur == 0 {
			if e.alerter != nil {
				e.alerter.Alert(DivideByZeroMessage)
			}
			return ErrDivisionByZero
		}
		result = prev / cur
	case Remainder:
		result = math.Mod(prev, cur)
	default:
		return ErrInvalidComputeState
	}

	entry := FormatEntry(prev, e.state.Operator, cur, result)

	var recErr error
	if e.recorder != nil {
		if err := e.recorder.Record(entry); err != nil {
			recErr = fmt.Errorf("record %q: %w", entry, err)
		}
	}

	e.state = State{Current: FormatNumber(result)}
	e.refresh()
	return recErr
}

// FormatEntry renders one history line: "<prev> <op> <current> = <result>".
func FormatEntry(prev float64, op Operator, cur, result float64) string {
	return fmt.Sprintf("%s %s %s = %s", FormatNumber(prev), op, FormatNumber(cur), FormatNumber(result))
}

// PreviousText is the upper display line for a state.
func (s State) PreviousText() string {
	if !s.Pending() {
		return ""
	}
	return string(s.Previous) + " " + string(s.Operator)
}

func (e *Engine) refresh() {
	if e.display == nil {
		return
	}
	e.display.Show(string(e.state.Current), e.state.PreviousText())
}

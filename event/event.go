// Package event translates key presses into calculator actions.
package event

import (
	"strings"
	"unicode"

	"github.com/drake/tally/calc"
)

// Kind identifies what an Action does.
type Kind int

const (
	Digit    Kind = iota // Value is "0"-"9" or "."
	Operator             // Value is a calc.Operator
	Compute
	Delete
	Clear
	ClearHistory
	Copy
)

func (k Kind) String() string {
	switch k {
	case Digit:
		return "digit"
	case Operator:
		return "operator"
	case Compute:
		return "compute"
	case Delete:
		return "delete"
	case Clear:
		return "clear"
	case ClearHistory:
		return "clear_history"
	case Copy:
		return "copy"
	}
	return "unknown"
}

// Action is one calculator input.
type Action struct {
	Kind  Kind
	Value string
}

// FromKey maps a key name (as produced by the TUI, e.g. "5", "enter",
// "backspace", "ctrl+l") to an Action.
func FromKey(key string) (Action, bool) {
	switch key {
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9", ".":
		return Action{Kind: Digit, Value: key}, true
	case "=", "enter":
		return Action{Kind: Compute}, true
	case "backspace":
		return Action{Kind: Delete}, true
	case "c", "C", "esc":
		return Action{Kind: Clear}, true
	case "ctrl+l":
		return Action{Kind: ClearHistory}, true
	case "ctrl+y":
		return Action{Kind: Copy}, true
	}

	if op, ok := calc.ParseOperator(key); ok {
		return Action{Kind: Operator, Value: string(op)}, true
	}
	return Action{}, false
}

// Parse splits a line such as "12.5 × 3 =" into actions.
// Whitespace is ignored; unknown characters stop parsing and are
// returned as rest.
func Parse(line string) (actions []Action, rest string) {
	for i, r := range line {
		if unicode.IsSpace(r) {
			continue
		}
		a, ok := FromKey(string(r))
		if !ok {
			return actions, strings.TrimSpace(line[i:])
		}
		actions = append(actions, a)
	}
	return actions, ""
}

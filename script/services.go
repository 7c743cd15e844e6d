package script

import "github.com/drake/tally/calc"

// CalcService drives the calculator engine.
type CalcService interface {
	Press(key string) bool
	AppendDigit(d string)
	ChooseOperator(op calc.Operator) error
	DeleteLastDigit()
	Compute() error
	ClearCalc()
}

// HistoryService exposes the calculation history.
type HistoryService interface {
	History() []string
	ClearHistory() error
}

// UIService handles visual elements.
type UIService interface {
	Print(text string)
	Alert(message string)
	Navigate(screen string) error
}

// SystemService handles app lifecycle.
type SystemService interface {
	Quit()
	Reload()
}

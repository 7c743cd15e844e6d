package script

import (
	"errors"
	"sync"

	"github.com/drake/tally/calc"
	"github.com/drake/tally/event"
)

// MockHost implements all services for testing, recording every call.
type MockHost struct {
	mu sync.Mutex

	Calls []string

	HistoryEntries []string
	ComputeErr     error
	NavigateErr    error
}

func NewMockHost() *MockHost {
	return &MockHost{
		HistoryEntries: []string{"2 + 2 = 4", "1 + 1 = 2"},
	}
}

func (m *MockHost) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
}

// DrainCalls returns and clears the recorded calls.
func (m *MockHost) DrainCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := m.Calls
	m.Calls = nil
	return calls
}

func (m *MockHost) Press(key string) bool {
	m.record("press:" + key)
	_, ok := event.FromKey(key)
	return ok
}

func (m *MockHost) AppendDigit(d string) { m.record("digit:" + d) }

func (m *MockHost) ChooseOperator(op calc.Operator) error {
	m.record("operator:" + string(op))
	return nil
}

func (m *MockHost) DeleteLastDigit() { m.record("delete") }

func (m *MockHost) Compute() error {
	m.record("compute")
	return m.ComputeErr
}

func (m *MockHost) ClearCalc() { m.record("clear") }

func (m *MockHost) History() []string {
	return append([]string(nil), m.HistoryEntries...)
}

func (m *MockHost) ClearHistory() error {
	m.record("history_clear")
	m.HistoryEntries = nil
	return nil
}

func (m *MockHost) Print(text string) { m.record("print:" + text) }

func (m *MockHost) Alert(message string) { m.record("alert:" + message) }

func (m *MockHost) Navigate(screen string) error {
	m.record("navigate:" + screen)
	return m.NavigateErr
}

func (m *MockHost) Quit() { m.record("quit") }

func (m *MockHost) Reload() { m.record("reload") }

var errMock = errors.New("mock failure")

package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromKey(t *testing.T) {
	tests := []struct {
		key  string
		want Action
	}{
		{"7", Action{Kind: Digit, Value: "7"}},
		{".", Action{Kind: Digit, Value: "."}},
		{"+", Action{Kind: Operator, Value: "+"}},
		{"*", Action{Kind: Operator, Value: "×"}},
		{"x", Action{Kind: Operator, Value: "×"}},
		{"/", Action{Kind: Operator, Value: "÷"}},
		{"%", Action{Kind: Operator, Value: "%"}},
		{"=", Action{Kind: Compute}},
		{"enter", Action{Kind: Compute}},
		{"backspace", Action{Kind: Delete}},
		{"esc", Action{Kind: Clear}},
		{"c", Action{Kind: Clear}},
		{"ctrl+l", Action{Kind: ClearHistory}},
		{"ctrl+y", Action{Kind: Copy}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := FromKey(tt.key)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := FromKey("q")
	assert.False(t, ok)
}

func TestParse(t *testing.T) {
	actions, rest := Parse("12.5 × 3 =")

	assert.Equal(t, "", rest)
	assert.Equal(t, []Action{
		{Kind: Digit, Value: "1"},
		{Kind: Digit, Value: "2"},
		{Kind: Digit, Value: "."},
		{Kind: Digit, Value: "5"},
		{Kind: Operator, Value: "×"},
		{Kind: Digit, Value: "3"},
		{Kind: Compute},
	}, actions)
}

func TestParseStopsAtUnknown(t *testing.T) {
	actions, rest := Parse("1+2 hello")

	assert.Len(t, actions, 3)
	assert.Equal(t, "hello", rest)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "clear_history", ClearHistory.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

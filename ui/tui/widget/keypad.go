package widget

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/drake/tally/ui/tui/style"
)

// keyRows is the on-screen keypad legend. Every label except ⌫ is also
// the key that triggers it.
var keyRows = [][]string{
	{"7", "8", "9", "÷"},
	{"4", "5", "6", "×"},
	{"1", "2", "3", "-"},
	{"0", ".", "%", "+"},
	{"C", "⌫", "="},
}

// Keypad renders the keypad legend and key help.
type Keypad struct {
	styles style.Styles
}

// NewKeypad creates a keypad legend.
func NewKeypad(styles style.Styles) *Keypad {
	return &Keypad{styles: styles}
}

// Compile-time check that Keypad implements Widget
var _ Widget = (*Keypad)(nil)

// SetWidth implements Widget; the keypad has a fixed size.
func (k *Keypad) SetWidth(int) {}

// Height implements Widget.
func (k *Keypad) Height() int {
	return len(keyRows) + 1
}

// View renders the keypad and the key help line.
func (k *Keypad) View() string {
	rows := make([]string, 0, len(keyRows)+1)
	for _, row := range keyRows {
		cells := make([]string, len(row))
		for i, label := range row {
			cells[i] = k.keyStyle(label).Render(label)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	rows = append(rows, k.Help())
	return strings.Join(rows, "\n")
}

// Help is the one-line key reference shown under the keypad.
func (k *Keypad) Help() string {
	return k.styles.Footer.Render("enter = · esc clear · ctrl+l clear history · ctrl+y copy · h history")
}

func (k *Keypad) keyStyle(label string) lipgloss.Style {
	switch label {
	case "÷", "×", "-", "+", "%":
		return k.styles.KeyOperator
	case "C", "⌫", "=":
		return k.styles.KeyAction
	}
	return k.styles.Key
}

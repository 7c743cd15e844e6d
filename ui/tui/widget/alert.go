package widget

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/drake/tally/ui/tui/style"
)

// Alert is a modal message box. While visible it swallows the next key.
type Alert struct {
	message string
	visible bool
	styles  style.Styles
}

// NewAlert creates a hidden alert.
func NewAlert(styles style.Styles) *Alert {
	return &Alert{styles: styles}
}

// Show displays message.
func (a *Alert) Show(message string) {
	a.message = message
	a.visible = true
}

// Dismiss hides the alert.
func (a *Alert) Dismiss() {
	a.visible = false
}

// Visible reports whether the alert is showing.
func (a *Alert) Visible() bool { return a.visible }

// Message returns the text being shown.
func (a *Alert) Message() string { return a.message }

// View renders the alert centered in a width×height area.
func (a *Alert) View(width, height int) string {
	box := a.styles.AlertBox.Render(a.message + "\n\n" + a.styles.AlertHint.Render("press any key"))
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

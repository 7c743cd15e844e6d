package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds all the lipgloss styles for the TUI.
type Styles struct {
	// Layout
	Title  lipgloss.Style
	Footer lipgloss.Style

	// Display
	DisplayBox      lipgloss.Style
	DisplayCurrent  lipgloss.Style
	DisplayPrevious lipgloss.Style

	// Keypad
	Key         lipgloss.Style
	KeyOperator lipgloss.Style
	KeyAction   lipgloss.Style

	// Panes
	PaneHeader lipgloss.Style
	PaneBorder lipgloss.Style
	PaneEntry  lipgloss.Style

	// Forms
	FormLabel   lipgloss.Style
	FormFocused lipgloss.Style
	FormButton  lipgloss.Style

	// Overlays
	AlertBox  lipgloss.Style
	AlertHint lipgloss.Style
	Success   lipgloss.Style

	// Misc
	StatusBar lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
}

// FadeColors are the success text colors from full brightness to
// nearly background, used while the success screen fades out.
var FadeColors = []lipgloss.Color{"46", "40", "34", "28", "22", "236"}

// DefaultStyles returns the default style configuration.
func DefaultStyles() Styles {
	return Styles{
		// Layout - minimal borders, let content breathe
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),

		DisplayBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1),
		DisplayCurrent: lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Bold(true),
		DisplayPrevious: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),

		Key: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Width(5).
			Align(lipgloss.Center),
		KeyOperator: lipgloss.NewStyle().
			Foreground(lipgloss.Color("179")). // Muted yellow
			Width(5).
			Align(lipgloss.Center),
		KeyAction: lipgloss.NewStyle().
			Foreground(lipgloss.Color("71")). // Muted green
			Width(5).
			Align(lipgloss.Center),

		PaneHeader: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")),
		PaneBorder: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		PaneEntry: lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")),

		FormLabel: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(18),
		FormFocused: lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Width(18),
		FormButton: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 2),

		AlertBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(1, 3).
			Align(lipgloss.Center),
		AlertHint: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		Success: lipgloss.NewStyle().
			Bold(true),

		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
	}
}

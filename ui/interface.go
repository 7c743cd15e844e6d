package ui

// UI defines the contract for the display layer.
// Implementations: tui.BubbleTeaUI and console.ConsoleUI.
//
// Every method except Run may be called from the session goroutine while
// Run is blocking on another; implementations must not block on the
// caller.
type UI interface {
	Run() error
	Quit()
	Done() <-chan struct{}

	// User input flows back to the session through Outbound.
	Outbound() <-chan UIEvent

	// Calculator
	Show(current, previous string)
	ShowHistory(entries []string)

	// Feedback
	Print(text string)
	Alert(message string)

	// Navigation
	SetScreen(screen, user string)
	Celebrate(message, next string)

	// UpdateBinds replaces the set of keys bound from Lua.
	UpdateBinds(keys []string)

	// Flush is called once the session has fully applied an input line.
	Flush()
}

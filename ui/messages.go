// Package ui holds the display contract between the session and its
// front ends, and the messages passed in both directions.
package ui

// --- Push-based messages (Session -> UI) ---

// DisplayMsg replaces the calculator display.
type DisplayMsg struct {
	Current  string
	Previous string
}

// HistoryMsg replaces the history list, newest first.
type HistoryMsg []string

// PrintMsg sets the status line text.
type PrintMsg string

// AlertMsg raises a modal alert.
type AlertMsg string

// ScreenMsg switches the active screen.
type ScreenMsg struct {
	Screen string
	User   string
}

// CelebrateMsg plays the success animation, then asks the session to
// navigate to Next.
type CelebrateMsg struct {
	Message string
	Next    string
}

// UpdateBindsMsg carries the set of keys bound from Lua.
type UpdateBindsMsg map[string]bool

// --- Push-based messages (UI -> Session) ---

// UIEvent is anything a front end sends on its Outbound channel.
type UIEvent any

// KeyPressMsg is a calculator key press, named as event.FromKey expects.
type KeyPressMsg string

// ExecuteBindMsg requests Session to execute a Lua key binding.
// Sent when UI detects a key that's in the boundKeys map.
type ExecuteBindMsg string

// LineMsg is one line of console input, e.g. "12 + 3 =".
type LineMsg string

// LoginMsg submits the login form.
type LoginMsg struct {
	Username string
	Password string
}

// RegisterMsg submits the registration form.
type RegisterMsg struct {
	Username string
	Password string
	Confirm  string
}

// NavigateMsg asks the session to switch screens.
type NavigateMsg string

// QuitMsg asks the session to shut down.
type QuitMsg struct{}

// BindSet converts a key list into the set sent with UpdateBindsMsg.
func BindSet(keys []string) UpdateBindsMsg {
	set := make(UpdateBindsMsg, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}

package widget

import (
	"strings"

	"github.com/drake/tally/ui/tui/style"
	"github.com/drake/tally/ui/tui/util"
)

// Compile-time check that Status implements Widget
var _ Widget = (*Status)(nil)

// Status is the bottom line: the last message on the left, the active
// screen and user on the right.
type Status struct {
	text   string
	screen string
	user   string
	width  int
	styles style.Styles
}

// NewStatus creates a new status widget.
func NewStatus(styles style.Styles) *Status {
	return &Status{styles: styles}
}

// SetText replaces the message.
func (s *Status) SetText(text string) {
	s.text = text
}

// Text returns the current message.
func (s *Status) Text() string { return s.text }

// SetScreen updates the right-hand indicator.
func (s *Status) SetScreen(screen, user string) {
	s.screen = screen
	s.user = user
}

// SetWidth implements Widget.
func (s *Status) SetWidth(w int) {
	s.width = w
}

// Height implements Widget.
func (s *Status) Height() int {
	return 1
}

// View implements Widget.
func (s *Status) View() string {
	right := s.screen
	if s.user != "" {
		right += " · " + s.user
	}
	right = s.styles.Muted.Render(right)

	left := s.text
	room := s.width - util.VisibleLen(right) - 1
	if room > 0 && util.VisibleLen(left) > room {
		left = util.TruncateLeft(left, room)
	}
	left = s.styles.StatusBar.Render(left)

	// Padding
	padding := s.width - util.VisibleLen(left) - util.VisibleLen(right)
	if padding < 1 {
		padding = 1
	}

	return left + strings.Repeat(" ", padding) + right
}

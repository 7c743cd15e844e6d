package widget

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/drake/tally/ui/tui/style"
)

const (
	// SplashDuration is how long the success animation plays.
	SplashDuration = 2 * time.Second
	// FadeDuration is how long it takes to fade out afterwards.
	FadeDuration = 500 * time.Millisecond

	splashFrame = 50 * time.Millisecond
	barWidth    = 20
)

// SplashTickMsg advances the splash animation.
type SplashTickMsg struct {
	ID   int
	Time time.Time
}

// Splash is the registration success screen: a filling bar with the
// message, then a fade to the next screen. It cannot be cancelled.
type Splash struct {
	id      int
	active  bool
	message string
	next    string
	start   time.Time
	elapsed time.Duration
	styles  style.Styles
}

// NewSplash creates an inactive splash.
func NewSplash(styles style.Styles) *Splash {
	return &Splash{styles: styles}
}

// Start begins the animation at now and returns the first tick.
// A running animation is replaced.
func (s *Splash) Start(message, next string, now time.Time) tea.Cmd {
	s.id++
	s.active = true
	s.message = message
	s.next = next
	s.start = now
	s.elapsed = 0
	return s.tick()
}

func (s *Splash) tick() tea.Cmd {
	id := s.id
	return tea.Tick(splashFrame, func(t time.Time) tea.Msg {
		return SplashTickMsg{ID: id, Time: t}
	})
}

// Active reports whether the splash is playing.
func (s *Splash) Active() bool { return s.active }

// Fading reports whether the animation has reached the fade phase.
func (s *Splash) Fading() bool {
	return s.active && s.elapsed >= SplashDuration
}

// Update handles a tick. When the fade completes it returns done=true and
// the screen to go to next; otherwise the next tick.
func (s *Splash) Update(msg SplashTickMsg) (cmd tea.Cmd, done bool, next string) {
	if !s.active || msg.ID != s.id {
		return nil, false, ""
	}

	s.elapsed = msg.Time.Sub(s.start)
	if s.elapsed >= SplashDuration+FadeDuration {
		s.active = false
		return nil, true, s.next
	}
	return s.tick(), false, ""
}

// View renders the splash centered in a width×height area.
func (s *Splash) View(width, height int) string {
	color := style.FadeColors[0]
	progress := 1.0
	if s.elapsed < SplashDuration {
		progress = float64(s.elapsed) / float64(SplashDuration)
	} else {
		fade := float64(s.elapsed-SplashDuration) / float64(FadeDuration)
		i := int(fade * float64(len(style.FadeColors)))
		if i >= len(style.FadeColors) {
			i = len(style.FadeColors) - 1
		}
		color = style.FadeColors[i]
	}

	filled := int(progress * barWidth)
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	st := s.styles.Success.Foreground(color)
	content := st.Render("✔ "+s.message) + "\n\n" + st.Render(bar)
	if width <= 0 || height <= 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

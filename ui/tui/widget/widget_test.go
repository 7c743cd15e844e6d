package widget

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drake/tally/ui/tui/style"
	"github.com/drake/tally/ui/tui/util"
)

func TestDisplayRightAlignsAndTruncates(t *testing.T) {
	d := NewDisplay(style.DefaultStyles())
	d.SetWidth(14) // 10 cells of text inside the frame

	d.Set("42", "7 +")
	lines := strings.Split(d.View(), "\n")
	assert.Len(t, lines, d.Height())
	assert.Contains(t, lines[1], "       7 +")
	assert.Contains(t, lines[2], "        42")

	d.Set("123456789012345", "")
	lines = strings.Split(d.View(), "\n")
	require.Len(t, lines, d.Height())
	assert.Contains(t, lines[2], "│ …789012345 │")
	assert.Equal(t, 14, util.VisibleLen(lines[2]))
}

func TestDisplayWidthIsCapped(t *testing.T) {
	d := NewDisplay(style.DefaultStyles())
	d.SetWidth(200)
	d.Set("1", "")

	for _, line := range strings.Split(d.View(), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), maxDisplayWidth)
	}
}

func TestPaneHeight(t *testing.T) {
	p := NewPane("History", style.DefaultStyles())
	p.SetHeight(3)
	p.SetWidth(30)

	assert.Equal(t, 1, p.Height())

	p.Empty = "nothing"
	assert.Equal(t, 2, p.Height())

	p.SetLines([]string{"a", "b"})
	assert.Equal(t, 3, p.Height())

	p.SetLines([]string{"a", "b", "c", "d", "e"})
	assert.Equal(t, 5, p.Height())
	assert.Len(t, strings.Split(p.View(), "\n"), p.Height())

	p.Toggle()
	assert.Equal(t, 0, p.Height())
	assert.Equal(t, "", p.View())
}

func TestPaneShowsNewestFirst(t *testing.T) {
	p := NewPane("History", style.DefaultStyles())
	p.SetHeight(2)
	p.SetLines([]string{"newest", "older", "oldest"})

	view := p.View()
	assert.Contains(t, view, "newest")
	assert.Contains(t, view, "older")
	assert.NotContains(t, view, "oldest")
}

func TestStatus(t *testing.T) {
	s := NewStatus(style.DefaultStyles())
	s.SetWidth(40)
	s.SetText("Copied 8")
	s.SetScreen("welcome", "bob")

	view := s.View()
	assert.True(t, strings.HasPrefix(view, "Copied 8"))
	assert.True(t, strings.HasSuffix(view, "welcome · bob"))
}

func TestFormValues(t *testing.T) {
	f := NewForm("Login", "Log in", []Field{{Label: "Username"}, {Label: "Password", Password: true}}, style.DefaultStyles())

	assert.Equal(t, 0, f.Focused())
	f.Next()
	assert.Equal(t, 1, f.Focused())
	f.Next()
	assert.Equal(t, 0, f.Focused())
	f.Prev()
	assert.Equal(t, 1, f.Focused())

	assert.Equal(t, []string{"", ""}, f.Values())
}

func TestSplashIgnoresStaleTicks(t *testing.T) {
	s := NewSplash(style.DefaultStyles())
	start := time.Now()

	s.Start("done", "login", start)
	s.Start("done", "login", start) // restart bumps the id

	cmd, finished, _ := s.Update(SplashTickMsg{ID: 1, Time: start.Add(time.Hour)})
	assert.Nil(t, cmd)
	assert.False(t, finished)
	assert.True(t, s.Active())

	_, finished, next := s.Update(SplashTickMsg{ID: 2, Time: start.Add(SplashDuration + FadeDuration)})
	assert.True(t, finished)
	assert.Equal(t, "login", next)
	assert.False(t, s.Active())
}

func TestSplashFadePhase(t *testing.T) {
	s := NewSplash(style.DefaultStyles())
	start := time.Now()
	s.Start("ok", "login", start)

	s.Update(SplashTickMsg{ID: 1, Time: start.Add(SplashDuration / 2)})
	assert.False(t, s.Fading())
	assert.Contains(t, s.View(0, 0), "█")

	s.Update(SplashTickMsg{ID: 1, Time: start.Add(SplashDuration + FadeDuration/2)})
	assert.True(t, s.Fading())
	assert.Contains(t, s.View(0, 0), "✔ ok")
}

func TestKeypad(t *testing.T) {
	k := NewKeypad(style.DefaultStyles())
	view := k.View()

	assert.Len(t, strings.Split(view, "\n"), k.Height())
	for _, label := range []string{"7", "÷", "×", "⌫", "="} {
		assert.Contains(t, view, label)
	}
}

func TestAlert(t *testing.T) {
	a := NewAlert(style.DefaultStyles())
	assert.False(t, a.Visible())

	a.Show("Passwords do not match!")
	assert.True(t, a.Visible())
	assert.Contains(t, a.View(40, 10), "Passwords do not match!")

	a.Dismiss()
	assert.False(t, a.Visible())
}

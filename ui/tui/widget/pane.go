package widget

import (
	"strings"

	"github.com/drake/tally/ui/tui/style"
	"github.com/drake/tally/ui/tui/util"
)

// Compile-time check that Pane implements Widget
var _ Widget = (*Pane)(nil)

// Pane is a titled list that can be shown or hidden. The calculator uses
// one for its history, newest entry first.
type Pane struct {
	Name    string
	Lines   []string
	Visible bool
	Empty   string // shown when there are no lines
	height  int    // Number of lines to show when visible
	styles  style.Styles
	width   int
}

// NewPane creates a new pane widget.
func NewPane(name string, styles style.Styles) *Pane {
	return &Pane{
		Name:    name,
		Lines:   make([]string, 0, 32),
		Visible: true,
		height:  8,
		styles:  styles,
	}
}

// SetLines replaces the pane contents.
func (p *Pane) SetLines(lines []string) {
	p.Lines = append(p.Lines[:0], lines...)
}

// Toggle flips visibility.
func (p *Pane) Toggle() {
	p.Visible = !p.Visible
}

// SetHeight sets how many lines are shown.
func (p *Pane) SetHeight(h int) {
	if h < 1 {
		h = 1
	}
	p.height = h
}

// SetWidth implements Widget.
func (p *Pane) SetWidth(w int) {
	p.width = w
}

// Height implements Widget.
func (p *Pane) Height() int {
	if !p.Visible {
		return 0
	}
	h := 1
	switch {
	case len(p.Lines) == 0 && p.Empty != "":
		h++
	case len(p.Lines) > p.height:
		h += p.height + 1
	default:
		h += len(p.Lines)
	}
	return h
}

// View implements Widget.
func (p *Pane) View() string {
	if !p.Visible {
		return ""
	}

	var parts []string

	// Header
	title := p.styles.PaneHeader.Render(" " + p.Name + " ")
	titlePad := p.width - util.VisibleLen(title)
	if titlePad > 0 {
		title += p.styles.PaneBorder.Render(strings.Repeat("─", titlePad))
	}
	parts = append(parts, title)

	if len(p.Lines) == 0 && p.Empty != "" {
		parts = append(parts, p.styles.Muted.Render(p.Empty))
	}

	// Content (first N lines; the list is newest first)
	for i := 0; i < p.height && i < len(p.Lines); i++ {
		line := p.Lines[i]
		if p.width > 0 && util.VisibleLen(line) > p.width {
			line = util.TruncateLeft(line, p.width)
		}
		parts = append(parts, p.styles.PaneEntry.Render(line))
	}

	if more := len(p.Lines) - p.height; more > 0 {
		parts = append(parts, p.styles.Muted.Render("…"))
	}

	return strings.Join(parts, "\n")
}

package widget

import (
	"github.com/drake/tally/ui/tui/style"
	"github.com/drake/tally/ui/tui/util"
)

// Compile-time check that Display implements Widget
var _ Widget = (*Display)(nil)

// Display shows the pending "previous op" line above the current operand,
// both right-aligned.
type Display struct {
	current  string
	previous string
	width    int
	styles   style.Styles
}

// NewDisplay creates a display showing "0".
func NewDisplay(styles style.Styles) *Display {
	return &Display{current: "0", width: 24, styles: styles}
}

// Set replaces both lines.
func (d *Display) Set(current, previous string) {
	d.current = current
	d.previous = previous
}

// Current returns the operand being shown.
func (d *Display) Current() string { return d.current }

// maxDisplayWidth caps the display on wide terminals.
const maxDisplayWidth = 40

// SetWidth implements Widget. width is the outer width including the
// border and padding.
func (d *Display) SetWidth(w int) {
	if w > maxDisplayWidth {
		w = maxDisplayWidth
	}
	d.width = w
}

// Height implements Widget.
func (d *Display) Height() int {
	return 2 + d.styles.DisplayBox.GetVerticalFrameSize()
}

// inner is the number of cells available for text.
func (d *Display) inner() int {
	w := d.width - d.styles.DisplayBox.GetHorizontalFrameSize()
	if w < 1 {
		w = 1
	}
	return w
}

// View implements Widget.
func (d *Display) View() string {
	w := d.inner()
	prev := util.PadLeft(util.TruncateLeft(d.previous, w), w)
	cur := util.PadLeft(util.TruncateLeft(d.current, w), w)

	return d.styles.DisplayBox.Render(
		d.styles.DisplayPrevious.Render(prev) + "\n" +
			d.styles.DisplayCurrent.Render(cur))
}

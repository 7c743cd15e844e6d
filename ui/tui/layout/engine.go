package layout

import "strings"

// Dock represents renderers stacked at the top or bottom of a screen.
type Dock struct {
	Renderers []Renderer
}

// Height returns the total height of all renderers in the dock.
func (d *Dock) Height() int {
	h := 0
	for _, r := range d.Renderers {
		h += r.Height()
	}
	return h
}

// SetWidth sets the width on all renderers in the dock.
func (d *Dock) SetWidth(w int) {
	for _, r := range d.Renderers {
		r.SetWidth(w)
	}
}

// View returns the rendered view of all visible renderers concatenated.
func (d *Dock) View() string {
	var parts []string
	for _, r := range d.Renderers {
		if r.Height() > 0 {
			parts = append(parts, r.View())
		}
	}
	return strings.Join(parts, "\n")
}

// Engine calculates layout for top dock, body, and bottom dock.
type Engine struct {
	width  int
	height int
}

// NewEngine creates a new layout engine.
func NewEngine() *Engine {
	return &Engine{}
}

// SetSize sets the total available size.
func (e *Engine) SetSize(width, height int) {
	e.width = width
	e.height = height
}

// Width returns the current width.
func (e *Engine) Width() int {
	return e.width
}

// Height returns the current height.
func (e *Engine) Height() int {
	return e.height
}

// Calculate computes layout given top and bottom docks.
// Sets width on all renderers and returns the body height.
func (e *Engine) Calculate(top, bottom *Dock) int {
	top.SetWidth(e.width)
	bottom.SetWidth(e.width)

	bodyHeight := e.height - top.Height() - bottom.Height()
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	return bodyHeight
}

// Compose stacks top, body and bottom, padding the body to bodyHeight
// lines so the bottom dock stays on the last row.
func Compose(top, body, bottom string, bodyHeight int) string {
	lines := 0
	if body != "" {
		lines = strings.Count(body, "\n") + 1
	}
	if pad := bodyHeight - lines; pad > 0 {
		if body != "" {
			body += "\n"
		}
		body += strings.Repeat("\n", pad-1)
	}

	return top + "\n" + body + "\n" + bottom
}

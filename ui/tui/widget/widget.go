package widget

import "github.com/drake/tally/ui/tui/layout"

// Widget is the interface for layout-aware UI elements.
type Widget = layout.Renderer

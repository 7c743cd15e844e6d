package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/drake/tally/ui"
)

// Compile-time check that BubbleTeaUI implements ui.UI
var _ ui.UI = (*BubbleTeaUI)(nil)

// BubbleTeaUI implements ui.UI using Bubble Tea.
// It bridges the session goroutine with Bubble Tea's model/update/view
// event loop.
type BubbleTeaUI struct {
	program *tea.Program

	// Message queue - buffered channel drained by a single goroutine.
	// This decouples callers from tea.Program.Send() which can block.
	msgQueue chan tea.Msg

	// Outbound messages from UI to Session (key presses, form submits).
	// Session reads from this channel in its event loop.
	outbound chan ui.UIEvent

	// Shutdown coordination
	done     chan struct{}
	doneOnce sync.Once
}

// NewBubbleTeaUI creates a new Bubble Tea-based UI.
func NewBubbleTeaUI(opts Options) *BubbleTeaUI {
	b := &BubbleTeaUI{
		msgQueue: make(chan tea.Msg, 1024),
		outbound: make(chan ui.UIEvent, 256),
		done:     make(chan struct{}),
	}
	b.program = tea.NewProgram(
		NewModel(b.outbound, opts),
		tea.WithAltScreen(),
	)
	return b
}

// send queues a message for delivery to the Bubble Tea program.
// Blocks until message is queued - never drops display updates.
func (b *BubbleTeaUI) send(msg tea.Msg) {
	select {
	case <-b.done:
		return
	case b.msgQueue <- msg:
	}
}

// Outbound returns the channel of user input for the session.
func (b *BubbleTeaUI) Outbound() <-chan ui.UIEvent {
	return b.outbound
}

// Run starts the TUI and blocks until exit.
func (b *BubbleTeaUI) Run() error {
	// Single goroutine drains message queue to Bubble Tea.
	// This can block on Send() without affecting producers.
	go func() {
		for {
			select {
			case <-b.done:
				return
			case msg := <-b.msgQueue:
				b.program.Send(msg)
			}
		}
	}()

	// Run blocks until quit
	_, err := b.program.Run()

	// Signal shutdown
	b.doneOnce.Do(func() {
		close(b.done)
	})

	return err
}

// Done returns a channel that closes when the UI exits.
func (b *BubbleTeaUI) Done() <-chan struct{} {
	return b.done
}

// Quit signals the TUI to exit.
func (b *BubbleTeaUI) Quit() {
	b.program.Quit()
	b.doneOnce.Do(func() {
		close(b.done)
	})
}

// Show updates the calculator display.
func (b *BubbleTeaUI) Show(current, previous string) {
	b.send(ui.DisplayMsg{Current: current, Previous: previous})
}

// ShowHistory replaces the history pane contents.
func (b *BubbleTeaUI) ShowHistory(entries []string) {
	b.send(ui.HistoryMsg(append([]string(nil), entries...)))
}

// Print sets the status line.
func (b *BubbleTeaUI) Print(text string) {
	b.send(ui.PrintMsg(text))
}

// Alert raises a modal alert.
func (b *BubbleTeaUI) Alert(message string) {
	b.send(ui.AlertMsg(message))
}

// SetScreen switches screens.
func (b *BubbleTeaUI) SetScreen(screen, user string) {
	b.send(ui.ScreenMsg{Screen: screen, User: user})
}

// Celebrate plays the success animation, then navigates to next.
func (b *BubbleTeaUI) Celebrate(message, next string) {
	b.send(ui.CelebrateMsg{Message: message, Next: next})
}

// UpdateBinds sends the current set of bound keys from Session to UI.
func (b *BubbleTeaUI) UpdateBinds(keys []string) {
	b.send(ui.BindSet(keys))
}

// Flush is a no-op; every update is its own message.
func (b *BubbleTeaUI) Flush() {}

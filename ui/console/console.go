// Package console is the line-oriented front end used with -simple.
// Each input line is handed to the session as a whole; lines starting
// with ':' are commands.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/drake/tally/config"
	"github.com/drake/tally/ui"
)

// Compile-time check that ConsoleUI implements ui.UI
var _ ui.UI = (*ConsoleUI)(nil)

const helpText = `keys: 0-9 . + - * / % = (enter) c (clear)
commands: :history :clear-history :key NAME :screen NAME
          :login USER PASS :register USER PASS CONFIRM :help :quit`

// ConsoleUI implements ui.UI over a reader and a writer.
type ConsoleUI struct {
	in  io.Reader
	out io.Writer

	outbound chan ui.UIEvent

	// flushed is signalled when the session has applied a line, so the
	// next line sees its effects.
	flushed chan struct{}

	mu       sync.Mutex // guards out and the fields below
	current  string
	previous string
	history  []string
	screen   string

	done     chan struct{}
	doneOnce sync.Once
}

// New creates a console reading commands from in and writing to out.
func New(in io.Reader, out io.Writer) *ConsoleUI {
	return &ConsoleUI{
		in:       in,
		out:      out,
		outbound: make(chan ui.UIEvent, 64),
		flushed:  make(chan struct{}, 1),
		current:  "0",
		done:     make(chan struct{}),
	}
}

// Outbound returns the channel of user input for the session.
func (c *ConsoleUI) Outbound() <-chan ui.UIEvent {
	return c.outbound
}

// Run starts reading input and blocks until Quit.
func (c *ConsoleUI) Run() error {
	errc := make(chan error, 1)
	go func() { errc <- c.readLoop() }()

	<-c.done

	select {
	case err := <-errc:
		return err
	default:
		return nil
	}
}

func (c *ConsoleUI) readLoop() error {
	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !c.handleLine(line) {
			return nil
		}
	}

	// EOF ends the session.
	c.send(ui.QuitMsg{})
	return scanner.Err()
}

// handleLine processes one input line. Returns false once the UI is done.
func (c *ConsoleUI) handleLine(line string) bool {
	if !strings.HasPrefix(line, ":") {
		if !c.send(ui.LineMsg(line)) {
			return false
		}
		select {
		case <-c.flushed:
			return true
		case <-c.done:
			return false
		}
	}

	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		return true
	}
	args := fields[1:]

	switch fields[0] {
	case "quit", "q":
		c.send(ui.QuitMsg{})
		return false
	case "history":
		c.printHistory()
	case "clear-history":
		return c.send(ui.KeyPressMsg("ctrl+l"))
	case "key":
		if len(args) != 1 {
			c.println("usage: :key NAME")
			return true
		}
		return c.send(ui.KeyPressMsg(args[0]))
	case "screen":
		if len(args) != 1 {
			c.println("usage: :screen NAME")
			return true
		}
		return c.send(ui.NavigateMsg(args[0]))
	case "login":
		return c.send(ui.LoginMsg{Username: arg(args, 0), Password: arg(args, 1)})
	case "register":
		return c.send(ui.RegisterMsg{Username: arg(args, 0), Password: arg(args, 1), Confirm: arg(args, 2)})
	case "help":
		c.println(helpText)
	default:
		c.println(fmt.Sprintf("unknown command :%s (try :help)", fields[0]))
	}
	return true
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

// send delivers ev to the session. Returns false if the UI has quit.
func (c *ConsoleUI) send(ev ui.UIEvent) bool {
	select {
	case <-c.done:
		return false
	case c.outbound <- ev:
		return true
	}
}

func (c *ConsoleUI) println(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, text)
}

func (c *ConsoleUI) printHistory() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.history) == 0 {
		fmt.Fprintln(c.out, "(no history)")
		return
	}
	for _, entry := range c.history {
		fmt.Fprintln(c.out, entry)
	}
}

// Done returns a channel that closes when the UI exits.
func (c *ConsoleUI) Done() <-chan struct{} {
	return c.done
}

// Quit stops the UI.
func (c *ConsoleUI) Quit() {
	c.doneOnce.Do(func() {
		close(c.done)
	})
}

// Show records the display; it is printed on Flush.
func (c *ConsoleUI) Show(current, previous string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = current
	c.previous = previous
}

// ShowHistory records the history for :history.
func (c *ConsoleUI) ShowHistory(entries []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = append(c.history[:0], entries...)
}

// Print outputs a status message.
func (c *ConsoleUI) Print(text string) {
	c.println(text)
}

// Alert outputs an alert as "! message".
func (c *ConsoleUI) Alert(message string) {
	c.println("! " + message)
}

// SetScreen announces a screen change.
func (c *ConsoleUI) SetScreen(screen, user string) {
	c.mu.Lock()
	first := c.screen == ""
	c.screen = screen
	c.mu.Unlock()

	switch {
	case first && screen == config.ScreenCalculator:
	case screen == config.ScreenWelcome && user != "":
		c.println(fmt.Sprintf("Welcome, %s!", user))
	default:
		c.println("-- " + screen + " --")
	}
}

// Celebrate prints message and moves on to next without animation.
func (c *ConsoleUI) Celebrate(message, next string) {
	c.println(message)
	go c.send(ui.NavigateMsg(next))
}

// UpdateBinds is a no-op; bound keys are reached with :key.
func (c *ConsoleUI) UpdateBinds([]string) {}

// Flush prints the display once a line has been applied.
func (c *ConsoleUI) Flush() {
	c.mu.Lock()
	if c.previous != "" {
		fmt.Fprintf(c.out, "%s %s\n", c.previous, c.current)
	} else {
		fmt.Fprintln(c.out, c.current)
	}
	c.mu.Unlock()

	select {
	case c.flushed <- struct{}{}:
	default:
	}
}

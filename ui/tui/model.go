package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/drake/tally/config"
	"github.com/drake/tally/ui"
	"github.com/drake/tally/ui/tui/layout"
	"github.com/drake/tally/ui/tui/style"
	"github.com/drake/tally/ui/tui/widget"
)

// Options configures the initial model.
type Options struct {
	ShowHistory bool
}

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	// Layout
	engine *layout.Engine

	// Widgets
	display  *widget.Display
	history  *widget.Pane
	keypad   *widget.Keypad
	status   *widget.Status
	login    *widget.Form
	register *widget.Form
	alert    *widget.Alert
	splash   *widget.Splash
	styles   style.Styles

	// Push-based state from Session
	boundKeys map[string]bool
	screen    string
	user      string

	// State
	width    int
	height   int
	outbound chan<- ui.UIEvent
	quitting bool
	now      func() time.Time
}

// NewModel creates a new TUI model.
func NewModel(outbound chan<- ui.UIEvent, opts Options) Model {
	styles := style.DefaultStyles()

	history := widget.NewPane("History", styles)
	history.Visible = opts.ShowHistory
	history.Empty = "No calculations yet"

	return Model{
		engine:   layout.NewEngine(),
		display:  widget.NewDisplay(styles),
		history:  history,
		keypad:   widget.NewKeypad(styles),
		status:   widget.NewStatus(styles),
		login:    widget.NewForm("Login", "Log in", []widget.Field{{Label: "Username"}, {Label: "Password", Password: true}}, styles),
		register: widget.NewForm("Register", "Register", []widget.Field{{Label: "Username"}, {Label: "Password", Password: true}, {Label: "Confirm password", Password: true}}, styles),
		alert:    widget.NewAlert(styles),
		splash:   widget.NewSplash(styles),
		styles:   styles,
		screen:   config.ScreenCalculator,
		outbound: outbound,
		now:      time.Now,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.engine.SetSize(msg.Width, msg.Height)
		return m, nil

	case ui.DisplayMsg:
		m.display.Set(msg.Current, msg.Previous)
		return m, nil

	case ui.HistoryMsg:
		m.history.SetLines(msg)
		return m, nil

	case ui.PrintMsg:
		m.status.SetText(string(msg))
		return m, nil

	case ui.AlertMsg:
		m.alert.Show(string(msg))
		return m, nil

	case ui.ScreenMsg:
		return m, m.setScreen(msg.Screen, msg.User)

	case ui.CelebrateMsg:
		return m, m.splash.Start(msg.Message, msg.Next, m.now())

	case widget.SplashTickMsg:
		cmd, done, next := m.splash.Update(msg)
		if done {
			m.sendOutbound(ui.NavigateMsg(next))
		}
		return m, cmd

	case ui.UpdateBindsMsg:
		m.boundKeys = msg
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Cursor blink and other bubbles messages go to the active form.
	if form := m.activeForm(); form != nil {
		return m, form.Update(msg)
	}
	return m, nil
}

func (m *Model) setScreen(screen, user string) tea.Cmd {
	m.screen = screen
	m.user = user
	m.status.SetScreen(screen, user)

	switch screen {
	case config.ScreenLogin:
		return m.login.Reset()
	case config.ScreenRegister:
		return m.register.Reset()
	}
	return nil
}

func (m Model) activeForm() *widget.Form {
	switch m.screen {
	case config.ScreenLogin:
		return m.login
	case config.ScreenRegister:
		return m.register
	}
	return nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	if m.alert.Visible() {
		m.alert.Dismiss()
		return m, nil
	}

	// The success animation runs to completion.
	if m.splash.Active() {
		return m, nil
	}

	form := m.activeForm()

	keyStr := keyToString(msg)
	if keyStr != "" && m.boundKeys[keyStr] {
		isPrintable := msg.Type == tea.KeyRunes
		if !isPrintable || form == nil {
			m.sendOutbound(ui.ExecuteBindMsg(keyStr))
			return m, nil
		}
	}

	switch keyStr {
	case "f1":
		m.sendOutbound(ui.NavigateMsg(config.ScreenCalculator))
		return m, nil
	case "f2":
		m.sendOutbound(ui.NavigateMsg(config.ScreenLogin))
		return m, nil
	case "f3":
		m.sendOutbound(ui.NavigateMsg(config.ScreenRegister))
		return m, nil
	}

	switch m.screen {
	case config.ScreenCalculator:
		return m.handleCalculatorKey(msg)
	case config.ScreenWelcome:
		if msg.Type == tea.KeyEnter {
			m.sendOutbound(ui.NavigateMsg(config.ScreenCalculator))
		}
		return m, nil
	}

	if form != nil {
		return m.handleFormKey(form, msg)
	}
	return m, nil
}

func (m Model) handleCalculatorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyRunes {
		if len(msg.Runes) == 1 && msg.Runes[0] == 'h' && !msg.Paste {
			m.history.Toggle()
			return m, nil
		}
		// Pasted text arrives as one message; press each character.
		for _, r := range msg.Runes {
			m.sendOutbound(ui.KeyPressMsg(string(r)))
		}
		return m, nil
	}

	if keyStr := keyToString(msg); keyStr != "" {
		m.sendOutbound(ui.KeyPressMsg(keyStr))
	}
	return m, nil
}

func (m Model) handleFormKey(form *widget.Form, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		return m, form.Next()

	case tea.KeyShiftTab, tea.KeyUp:
		return m, form.Prev()

	case tea.KeyEnter:
		values := form.Values()
		if form == m.login {
			m.sendOutbound(ui.LoginMsg{Username: values[0], Password: values[1]})
		} else {
			m.sendOutbound(ui.RegisterMsg{Username: values[0], Password: values[1], Confirm: values[2]})
		}
		return m, nil
	}

	return m, form.Update(msg)
}

func (m *Model) sendOutbound(msg ui.UIEvent) {
	if m.outbound == nil {
		return
	}
	select {
	case m.outbound <- msg:
	default:
		m.status.SetText("Input dropped: session busy")
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	width, height := m.width, m.height
	if width == 0 {
		width, height = 60, 24
		m.engine.SetSize(width, height)
	}

	if m.splash.Active() {
		return m.splash.View(width, height)
	}
	if m.alert.Visible() {
		return m.alert.View(width, height)
	}

	var body string
	switch m.screen {
	case config.ScreenCalculator:
		return m.calculatorView()
	case config.ScreenLogin:
		body = m.login.View()
	case config.ScreenRegister:
		body = m.register.View()
	case config.ScreenWelcome:
		body = m.welcomeView()
	}

	m.status.SetWidth(width)
	bodyHeight := height - m.status.Height()
	body = lipgloss.Place(width, bodyHeight, lipgloss.Center, lipgloss.Center, body)
	return body + "\n" + m.status.View()
}

func (m Model) calculatorView() string {
	top := &layout.Dock{Renderers: []layout.Renderer{m.display, m.keypad}}
	bottom := &layout.Dock{Renderers: []layout.Renderer{m.status}}

	bodyHeight := m.engine.Calculate(top, bottom)
	m.history.SetWidth(m.engine.Width())
	m.history.SetHeight(bodyHeight - 2) // header and overflow marker

	return layout.Compose(top.View(), m.history.View(), bottom.View(), bodyHeight)
}

func (m Model) welcomeView() string {
	name := m.user
	if name == "" {
		name = "there"
	}
	return m.styles.Title.Render("Welcome, "+name+"!") + "\n\n" +
		m.styles.Footer.Render("enter or f1 calculator · f2 login · f3 register")
}

// keyToString converts a KeyMsg to the key names used by bindings and
// event.FromKey ("5", "ctrl+l", "enter", "f1", ...).
func keyToString(msg tea.KeyMsg) string {
	if msg.Type == tea.KeyRunes && !msg.Alt && !msg.Paste && len(msg.Runes) > 0 {
		return string(msg.Runes)
	}
	return msg.String()
}

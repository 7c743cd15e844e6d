package session

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/drake/tally/auth"
	"github.com/drake/tally/calc"
	"github.com/drake/tally/config"
	"github.com/drake/tally/event"
	"github.com/drake/tally/history"
	"github.com/drake/tally/internal/logging"
	"github.com/drake/tally/script"
	"github.com/drake/tally/ui"
)

// Compile-time checks for the interfaces Session serves.
var (
	_ calc.Display          = (*Session)(nil)
	_ calc.Alerter          = (*Session)(nil)
	_ calc.Recorder         = (*Session)(nil)
	_ script.CalcService    = (*Session)(nil)
	_ script.HistoryService = (*Session)(nil)
	_ script.UIService      = (*Session)(nil)
	_ script.SystemService  = (*Session)(nil)
)

// ErrUnknownScreen is returned by Navigate for a name that is not one of
// the config.Screen* constants.
var ErrUnknownScreen = errors.New("unknown screen")

// Config holds session configuration
type Config struct {
	ConfigDir   string   // Path to ~/.config/tally
	UserScripts []string // CLI script arguments
	StartScreen string   // config.Screen*; "" means calculator
	Logger      *slog.Logger
}

// Session orchestrates the calculator, its history and the Lua engine.
// After Boot, all state is touched only from the processEvents goroutine.
type Session struct {
	// Components
	ui      ui.UI
	calc    *calc.Engine
	history *history.Store
	engine  *script.Engine
	logger  *slog.Logger

	// Work posted from other goroutines (file watcher)
	events chan func()

	screen string
	user   string

	// entry is set by Record and consumed once the engine call that
	// produced it has returned, so hooks see the updated state.
	entry string

	// busy is true while an entry point is running; reloads requested
	// meanwhile (tally.reload from Lua) are applied when it returns.
	busy          bool
	reloadPending bool
	lastBinds     string

	// Config (retained for reload)
	config Config

	// Shutdown coordination
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a new Session. It is passive - no goroutines start here.
func New(display ui.UI, store *history.Store, cfg Config) *Session {
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}
	if cfg.StartScreen == "" {
		cfg.StartScreen = config.ScreenCalculator
	}

	s := &Session{
		ui:      display,
		history: store,
		logger:  cfg.Logger,
		events:  make(chan func(), 64),
		screen:  cfg.StartScreen,
		config:  cfg,
		done:    make(chan struct{}),
	}

	s.engine = script.NewEngine(s, s, s, s)
	s.calc = calc.NewEngine(s, s, s)

	return s
}

// Run boots the session and blocks until the UI exits.
func (s *Session) Run() error {
	defer s.engine.Close()

	if err := s.Boot(); err != nil {
		s.ui.Print(fmt.Sprintf("Boot error: %v", err))
	}

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		s.processEvents()
	}()

	err := s.ui.Run()
	s.shutdown()
	<-loopDone
	return err
}

// processEvents is the main event loop.
func (s *Session) processEvents() {
	for {
		select {
		case <-s.done:
			return
		case fn := <-s.events:
			s.enter(fn)
		case ev := <-s.ui.Outbound():
			s.enter(func() { s.handleUIEvent(ev) })
		}
	}
}

// handleUIEvent executes a single front-end event on the session loop.
func (s *Session) handleUIEvent(ev ui.UIEvent) {
	switch e := ev.(type) {
	case ui.KeyPressMsg:
		s.HandleKey(string(e))
	case ui.ExecuteBindMsg:
		s.engine.HandleKeyBind(string(e))
	case ui.LineMsg:
		s.HandleLine(string(e))
	case ui.LoginMsg:
		_ = s.Login(e.Username, e.Password)
	case ui.RegisterMsg:
		_ = s.Register(e.Username, e.Password, e.Confirm)
	case ui.NavigateMsg:
		if err := s.Navigate(string(e)); err != nil {
			logging.LogError(s.logger, "navigate failed", err)
		}
	case ui.QuitMsg:
		s.Quit()
	default:
		s.logger.Debug("ignoring ui event", slog.String("type", fmt.Sprintf("%T", ev)))
	}
}

// post queues fn to run on the session loop.
func (s *Session) post(fn func()) {
	select {
	case <-s.done:
	case s.events <- fn:
	}
}

// enter runs fn as one entry point. Nested calls (Lua calling back into
// the session) run fn directly.
func (s *Session) enter(fn func()) {
	if s.busy {
		fn()
		return
	}

	s.busy = true
	fn()
	s.busy = false

	if s.reloadPending {
		s.reloadPending = false
		s.reload()
	}
	s.syncBinds()
}

// --- Lifecycle ---

// Boot restores history, shows the start screen and loads scripts.
// A history failure is reported but does not stop the boot.
func (s *Session) Boot() error {
	var err error
	s.enter(func() {
		if herr := s.history.Restore(); herr != nil {
			s.ui.Print(fmt.Sprintf("History unavailable: %v", herr))
		}
		s.ui.ShowHistory(s.history.Entries())
		s.ui.SetScreen(s.screen, s.user)
		s.refresh()

		err = s.bootScripts()
	})
	return err
}

// bootScripts (re)initializes the Lua VM and runs every script.
func (s *Session) bootScripts() error {
	if err := s.engine.Init(); err != nil {
		return err
	}
	if err := s.engine.LoadCore(); err != nil {
		return err
	}

	s.engine.SetConfigDir(s.config.ConfigDir)
	s.engine.UpdateState(s.calc.State())
	s.engine.UpdateScreen(s.screen)

	// Load user init.lua
	if s.config.ConfigDir != "" {
		initPath := config.InitFile(s.config.ConfigDir)
		if _, err := os.Stat(initPath); err == nil {
			if err := s.engine.DoFile(initPath); err != nil {
				return fmt.Errorf("init.lua: %w", err)
			}
		}
	}

	// Load CLI scripts
	for _, path := range s.config.UserScripts {
		if err := s.engine.DoFile(path); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	s.engine.CallHook("ready")
	return nil
}

// Reload re-initializes scripting. From inside Lua it takes effect once
// the current handler returns.
func (s *Session) Reload() {
	s.reloadPending = true
	s.enter(func() {})
}

func (s *Session) reload() {
	logging.LogOperation(s.logger, "reloading scripts")
	if err := s.bootScripts(); err != nil {
		logging.LogError(s.logger, "reload failed", err)
		s.ui.Print(fmt.Sprintf("Reload failed: %v", err))
		return
	}
	s.ui.Print("Scripts reloaded")
}

// Quit shuts the session down and asks the UI to exit.
func (s *Session) Quit() { s.shutdown() }

// shutdown closes done once and requests UI exit.
func (s *Session) shutdown() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.ui.Quit()
	})
}

// Done is closed once the session has shut down.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) syncBinds() {
	keys := s.engine.BoundKeys()
	joined := strings.Join(keys, "\x00")
	if joined == s.lastBinds {
		return
	}
	s.lastBinds = joined
	s.ui.UpdateBinds(keys)
}

// --- Input ---

// HandleKey runs a Lua binding for key if there is one, otherwise the
// calculator action it maps to. Returns false for an unknown key.
func (s *Session) HandleKey(key string) bool {
	handled := false
	s.enter(func() {
		if s.engine.HandleKeyBind(key) {
			handled = true
			return
		}
		if action, ok := event.FromKey(key); ok {
			s.dispatch(action)
			handled = true
		}
	})
	return handled
}

// HandleLine applies every action in a line of console input.
func (s *Session) HandleLine(line string) {
	s.enter(func() {
		actions, rest := event.Parse(line)
		for _, action := range actions {
			s.dispatch(action)
		}
		if rest != "" {
			s.ui.Print(fmt.Sprintf("Unknown input: %s", rest))
		}
		s.ui.Flush()
	})
}

// Dispatch applies one action to the calculator or history.
func (s *Session) Dispatch(action event.Action) {
	s.enter(func() { s.dispatch(action) })
}

func (s *Session) dispatch(action event.Action) {
	s.logger.Debug("action", slog.String("kind", action.Kind.String()), slog.String("value", action.Value))

	switch action.Kind {
	case event.Digit:
		s.calc.AppendDigit(action.Value)
	case event.Operator:
		if op, ok := calc.ParseOperator(action.Value); ok {
			_ = s.ChooseOperator(op)
		}
	case event.Compute:
		_ = s.Compute()
	case event.Delete:
		s.calc.DeleteLastDigit()
	case event.Clear:
		s.ClearCalc()
	case event.ClearHistory:
		_ = s.ClearHistory()
	case event.Copy:
		_ = s.CopyCurrent()
	}
}

// --- Calculator (script.CalcService) ---

// Press is the scripting equivalent of a key press.
func (s *Session) Press(key string) bool {
	action, ok := event.FromKey(key)
	if !ok {
		return false
	}
	s.Dispatch(action)
	return true
}

func (s *Session) AppendDigit(d string) { s.calc.AppendDigit(d) }

func (s *Session) DeleteLastDigit() { s.calc.DeleteLastDigit() }

func (s *Session) ChooseOperator(op calc.Operator) error {
	err := s.calc.ChooseOperator(op)
	s.settle(err)
	return err
}

func (s *Session) Compute() error {
	err := s.calc.Compute()
	s.settle(err)
	return err
}

func (s *Session) ClearCalc() {
	s.calc.Clear()
	s.engine.CallHook("cleared")
}

// State returns the calculator state.
func (s *Session) State() calc.State {
	return s.calc.State()
}

// settle fires the computed hook for a recorded entry and reports err.
func (s *Session) settle(err error) {
	if entry := s.entry; entry != "" {
		s.entry = ""
		s.engine.CallHook("computed", entry)
	}

	switch {
	case err == nil:
	case errors.Is(err, calc.ErrInvalidComputeState):
		s.logger.Debug("compute skipped", slog.Any("state", s.calc.State()))
	case errors.Is(err, calc.ErrDivisionByZero):
		s.logger.Debug("division by zero", slog.String("previous", string(s.calc.State().Previous)))
		s.engine.CallHook("error", calc.DivideByZeroMessage)
	default:
		s.ui.Print(fmt.Sprintf("History not saved: %v", err))
		s.engine.CallHook("error", err.Error())
	}
}

// --- calc.Display / calc.Alerter / calc.Recorder ---

// Show forwards the display to the UI and tally.state.
func (s *Session) Show(current, previous string) {
	s.ui.Show(current, previous)
	if s.calc != nil {
		s.engine.UpdateState(s.calc.State())
	}
}

// Alert raises a modal alert.
func (s *Session) Alert(message string) {
	s.logger.Debug("alert", slog.String("message", message))
	s.ui.Alert(message)
}

// Record saves a completed calculation.
func (s *Session) Record(entry string) error {
	err := s.history.Record(entry)
	s.ui.ShowHistory(s.history.Entries())
	logging.LogOperation(s.logger, "computed", slog.String("entry", entry))
	s.entry = entry
	return err
}

func (s *Session) refresh() {
	st := s.calc.State()
	s.Show(string(st.Current), st.PreviousText())
}

// --- History (script.HistoryService) ---

func (s *Session) History() []string { return s.history.Entries() }

func (s *Session) ClearHistory() error {
	err := s.history.Clear()
	s.ui.ShowHistory(nil)
	if err != nil {
		s.ui.Print(fmt.Sprintf("Could not clear saved history: %v", err))
	}
	logging.LogOperation(s.logger, "history cleared")
	s.engine.CallHook("history_cleared")
	return err
}

// --- UI (script.UIService) ---

func (s *Session) Print(text string) { s.ui.Print(text) }

// Navigate switches to screen and fires the navigated hook.
func (s *Session) Navigate(screen string) error {
	if !config.ValidScreen(screen) {
		return fmt.Errorf("%w: %q", ErrUnknownScreen, screen)
	}

	s.enter(func() {
		s.screen = screen
		s.engine.UpdateScreen(screen)
		s.ui.SetScreen(screen, s.user)
		s.engine.CallHook("navigated", screen)
	})
	return nil
}

// Screen returns the active screen.
func (s *Session) Screen() string { return s.screen }

// --- Accounts ---

// Login validates the login form and opens the welcome screen.
func (s *Session) Login(username, password string) error {
	creds, err := auth.ValidateLogin(username, password)
	if err != nil {
		s.Alert(auth.Message(err))
		return err
	}

	s.user = creds.Username
	logging.LogOperation(s.logger, "login", slog.String("user", creds.Username))
	return s.Navigate(config.ScreenWelcome)
}

// Register validates the registration form. On success the UI plays the
// success animation and then returns to the login screen.
func (s *Session) Register(username, password, confirm string) error {
	creds, err := auth.ValidateRegister(username, password, confirm)
	if err != nil {
		s.Alert(auth.Message(err))
		return err
	}

	logging.LogOperation(s.logger, "registered", slog.String("user", creds.Username))
	s.ui.Celebrate(auth.RegisteredMessage, config.ScreenLogin)
	return nil
}

// User returns the logged in username, if any.
func (s *Session) User() string { return s.user }

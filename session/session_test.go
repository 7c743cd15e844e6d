package session

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drake/tally/auth"
	"github.com/drake/tally/calc"
	"github.com/drake/tally/config"
	"github.com/drake/tally/event"
	"github.com/drake/tally/history"
	"github.com/drake/tally/kv"
	"github.com/drake/tally/ui"
)

// fakeUI records everything the session pushes to it.
type fakeUI struct {
	current, previous string
	history           []string
	prints            []string
	alerts            []string
	screen, user      string
	celebrations      []ui.CelebrateMsg
	binds             []string
	flushes           int

	outbound  chan ui.UIEvent
	done      chan struct{}
	closeOnce sync.Once
}

func newFakeUI() *fakeUI {
	return &fakeUI{
		outbound: make(chan ui.UIEvent, 16),
		done:     make(chan struct{}),
	}
}

func (f *fakeUI) Run() error                  { <-f.done; return nil }
func (f *fakeUI) Quit()                       { f.closeOnce.Do(func() { close(f.done) }) }
func (f *fakeUI) Done() <-chan struct{}       { return f.done }
func (f *fakeUI) Outbound() <-chan ui.UIEvent { return f.outbound }
func (f *fakeUI) Show(current, previous string) {
	f.current, f.previous = current, previous
}
func (f *fakeUI) ShowHistory(entries []string) { f.history = entries }
func (f *fakeUI) Print(text string)            { f.prints = append(f.prints, text) }
func (f *fakeUI) Alert(message string)         { f.alerts = append(f.alerts, message) }
func (f *fakeUI) SetScreen(screen, user string) {
	f.screen, f.user = screen, user
}
func (f *fakeUI) Celebrate(message, next string) {
	f.celebrations = append(f.celebrations, ui.CelebrateMsg{Message: message, Next: next})
}
func (f *fakeUI) UpdateBinds(keys []string) { f.binds = keys }
func (f *fakeUI) Flush()                    { f.flushes++ }

// failingKV fails every write.
type failingKV struct{ kv.Store }

func (failingKV) Set(string, string) error { return errors.New("disk full") }

type fixture struct {
	s     *Session
	ui    *fakeUI
	store kv.Store
	dir   string
}

func newFixture(t *testing.T, initLua string) *fixture {
	t.Helper()
	return newFixtureWithStore(t, initLua, kv.NewMemory())
}

func newFixtureWithStore(t *testing.T, initLua string, store kv.Store) *fixture {
	t.Helper()

	dir := t.TempDir()
	if initLua != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "init.lua"), []byte(initLua), 0644))
	}

	fake := newFakeUI()
	hist := history.NewStore(history.NewKVStorage(store, history.DefaultKey))
	s := New(fake, hist, Config{ConfigDir: dir})
	t.Cleanup(s.engine.Close)

	require.NoError(t, s.Boot())
	return &fixture{s: s, ui: fake, store: store, dir: dir}
}

func (f *fixture) keys(keys ...string) {
	for _, k := range keys {
		f.s.HandleKey(k)
	}
}

func TestBootRestoresHistory(t *testing.T) {
	store := kv.NewMemory()
	require.NoError(t, store.Set(history.DefaultKey, `["2 + 2 = 4","1 + 1 = 2"]`))

	f := newFixtureWithStore(t, "", store)

	assert.Equal(t, []string{"2 + 2 = 4", "1 + 1 = 2"}, f.ui.history)
	assert.Equal(t, []string{"2 + 2 = 4", "1 + 1 = 2"}, f.s.History())
	assert.Equal(t, config.ScreenCalculator, f.ui.screen)
	assert.Equal(t, "0", f.ui.current)
}

func TestBootIgnoresMalformedHistory(t *testing.T) {
	store := kv.NewMemory()
	require.NoError(t, store.Set(history.DefaultKey, `{not json`))

	f := newFixtureWithStore(t, "", store)

	assert.Empty(t, f.s.History())
	assert.Empty(t, f.ui.prints)
}

func TestKeysComputeAndPersist(t *testing.T) {
	f := newFixture(t, "")

	f.keys("5", "+", "3")
	assert.Equal(t, "3", f.ui.current)
	assert.Equal(t, "5 +", f.ui.previous)

	f.keys("enter")

	assert.Equal(t, "8", f.ui.current)
	assert.Equal(t, "", f.ui.previous)
	assert.Equal(t, []string{"5 + 3 = 8"}, f.ui.history)

	raw, ok, err := f.store.Get(history.DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `["5 + 3 = 8"]`, raw)
}

func TestDivideByZeroAlerts(t *testing.T) {
	f := newFixture(t, `tally.hooks.on("error", function(m) tally.print("E " .. m) end)`)

	f.keys("7", "/", "0", "=")

	assert.Equal(t, []string{calc.DivideByZeroMessage}, f.ui.alerts)
	assert.Contains(t, f.ui.prints, "E "+calc.DivideByZeroMessage)
	assert.Equal(t, calc.State{Current: "0", Previous: "7", Operator: calc.Divide}, f.s.State())
	assert.Empty(t, f.s.History())
}

func TestHandleKeyUnknown(t *testing.T) {
	f := newFixture(t, "")

	assert.False(t, f.s.HandleKey("q"))
	assert.True(t, f.s.HandleKey("9"))
	assert.Equal(t, "9", f.ui.current)
}

func TestDispatch(t *testing.T) {
	f := newFixture(t, "")

	f.s.Dispatch(event.Action{Kind: event.Digit, Value: "4"})
	f.s.Dispatch(event.Action{Kind: event.Operator, Value: "*"})
	f.s.Dispatch(event.Action{Kind: event.Digit, Value: "2"})
	f.s.Dispatch(event.Action{Kind: event.Delete})
	f.s.Dispatch(event.Action{Kind: event.Digit, Value: "3"})
	f.s.Dispatch(event.Action{Kind: event.Compute})

	assert.Equal(t, "12", f.ui.current)
	assert.Equal(t, []string{"4 × 3 = 12"}, f.s.History())

	f.s.Dispatch(event.Action{Kind: event.Clear})
	assert.Equal(t, "0", f.ui.current)

	f.s.Dispatch(event.Action{Kind: event.ClearHistory})
	assert.Empty(t, f.s.History())
	assert.Empty(t, f.ui.history)
}

func TestLuaBindingTakesPrecedence(t *testing.T) {
	f := newFixture(t, `tally.bind("f5", function() tally.calc.type("2*3=") end)
tally.bind("5", function() tally.print("five is bound") end)`)

	assert.Equal(t, []string{"5", "f5"}, f.ui.binds)

	f.keys("f5")
	assert.Equal(t, "6", f.ui.current)

	f.keys("5")
	assert.Equal(t, "6", f.ui.current)
	assert.Contains(t, f.ui.prints, "five is bound")
}

func TestComputedHookSeesResult(t *testing.T) {
	f := newFixture(t, `tally.hooks.on("computed", function(e)
  tally.print(e .. " -> " .. tally.state.current)
end)`)

	f.keys("5", "+", "3", "=")

	assert.Contains(t, f.ui.prints, "5 + 3 = 8 -> 8")
}

func TestReadyHookAndConfigDir(t *testing.T) {
	f := newFixture(t, `tally.hooks.on("ready", function() tally.print("ready " .. tally.config_dir) end)`)

	assert.Contains(t, f.ui.prints, "ready "+f.dir)
}

func TestReloadFromLua(t *testing.T) {
	f := newFixture(t, `tally.print("init")
tally.bind("f6", function() tally.reload() end)`)

	f.keys("f6")

	count := 0
	for _, p := range f.ui.prints {
		if p == "init" {
			count++
		}
	}
	assert.Equal(t, 2, count)
	assert.Contains(t, f.ui.prints, "Scripts reloaded")
	assert.Equal(t, []string{"f6"}, f.s.engine.BoundKeys())
}

func TestReloadKeepsCalculatorState(t *testing.T) {
	f := newFixture(t, "")
	f.keys("4", "2")

	f.s.Reload()

	assert.Equal(t, calc.State{Current: "42"}, f.s.State())
}

func TestReloadReportsScriptErrors(t *testing.T) {
	f := newFixture(t, "")
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "init.lua"), []byte("this is not lua"), 0644))

	f.s.Reload()

	require.NotEmpty(t, f.ui.prints)
	assert.Contains(t, f.ui.prints[len(f.ui.prints)-1], "Reload failed")
}

func TestBootReportsScriptErrors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "init.lua"), []byte(`error("nope")`), 0644))

	fake := newFakeUI()
	s := New(fake, history.NewStore(history.NewKVStorage(kv.NewMemory(), history.DefaultKey)), Config{ConfigDir: dir})
	defer s.engine.Close()

	err := s.Boot()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "init.lua")
}

func TestHandleLine(t *testing.T) {
	f := newFixture(t, "")

	f.s.HandleLine("12.5 × 2 =")
	assert.Equal(t, "25", f.ui.current)
	assert.Equal(t, 1, f.ui.flushes)

	f.s.HandleLine("c1 + q")
	assert.Equal(t, "0", f.ui.current)
	assert.Equal(t, "1 +", f.ui.previous)
	assert.Contains(t, f.ui.prints, "Unknown input: q")
	assert.Equal(t, 2, f.ui.flushes)
}

func TestLogin(t *testing.T) {
	f := newFixture(t, "")

	err := f.s.Login("bob", "  ")
	assert.ErrorIs(t, err, auth.ErrMissingFields)
	assert.Equal(t, []string{"Please fill in all fields!"}, f.ui.alerts)
	assert.Equal(t, config.ScreenCalculator, f.ui.screen)

	require.NoError(t, f.s.Login("  bob ", "secret"))
	assert.Equal(t, config.ScreenWelcome, f.ui.screen)
	assert.Equal(t, "bob", f.ui.user)
	assert.Equal(t, "bob", f.s.User())
}

func TestRegister(t *testing.T) {
	f := newFixture(t, "")

	err := f.s.Register("amy", "a", "b")
	assert.ErrorIs(t, err, auth.ErrPasswordMismatch)
	assert.Equal(t, []string{"Passwords do not match!"}, f.ui.alerts)
	assert.Empty(t, f.ui.celebrations)

	require.NoError(t, f.s.Register("amy", "pw", "pw"))
	assert.Equal(t, []ui.CelebrateMsg{{Message: auth.RegisteredMessage, Next: config.ScreenLogin}}, f.ui.celebrations)
}

func TestNavigate(t *testing.T) {
	f := newFixture(t, `tally.hooks.on("navigated", function(s) tally.print("at " .. tally.state.screen) end)`)

	assert.ErrorIs(t, f.s.Navigate("settings"), ErrUnknownScreen)
	assert.Equal(t, config.ScreenCalculator, f.s.Screen())

	require.NoError(t, f.s.Navigate(config.ScreenRegister))
	assert.Equal(t, config.ScreenRegister, f.ui.screen)
	assert.Contains(t, f.ui.prints, "at register")
}

func TestCopyCurrent(t *testing.T) {
	var copied string
	orig := clipboardWrite
	t.Cleanup(func() { clipboardWrite = orig })

	clipboardWrite = func(s string) error {
		copied = s
		return nil
	}

	f := newFixture(t, "")
	f.keys("3", ".", "5", "ctrl+y")

	assert.Equal(t, "3.5", copied)
	assert.Contains(t, f.ui.prints, "Copied 3.5")

	clipboardWrite = func(string) error { return errors.New("no display") }
	assert.Error(t, f.s.CopyCurrent())
	assert.Contains(t, f.ui.prints, "Copy failed: no display")
}

func TestRecordFailureStillUpdatesDisplay(t *testing.T) {
	f := newFixtureWithStore(t, "", failingKV{kv.NewMemory()})

	f.keys("1", "+", "1", "=")

	assert.Equal(t, "2", f.ui.current)
	assert.Equal(t, []string{"1 + 1 = 2"}, f.ui.history)
	require.NotEmpty(t, f.ui.prints)
	assert.Contains(t, f.ui.prints[len(f.ui.prints)-1], "History not saved")
}

func TestUIEvents(t *testing.T) {
	f := newFixture(t, `tally.bind("f9", function() tally.print("bound") end)`)

	f.s.enter(func() { f.s.handleUIEvent(ui.KeyPressMsg("7")) })
	f.s.enter(func() { f.s.handleUIEvent(ui.ExecuteBindMsg("f9")) })
	f.s.enter(func() { f.s.handleUIEvent(ui.LoginMsg{Username: "zoe", Password: "pw"}) })

	assert.Equal(t, "7", f.ui.current)
	assert.Contains(t, f.ui.prints, "bound")
	assert.Equal(t, config.ScreenWelcome, f.ui.screen)

	f.s.enter(func() { f.s.handleUIEvent(ui.QuitMsg{}) })
	select {
	case <-f.s.Done():
	default:
		t.Fatal("session not shut down")
	}
	select {
	case <-f.ui.Done():
	default:
		t.Fatal("ui not asked to quit")
	}
}

func TestRunProcessesOutboundEvents(t *testing.T) {
	fake := newFakeUI()
	s := New(fake, history.NewStore(history.NewKVStorage(kv.NewMemory(), history.DefaultKey)), Config{ConfigDir: t.TempDir()})

	errc := make(chan error, 1)
	go func() { errc <- s.Run() }()

	fake.outbound <- ui.QuitMsg{}

	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestWatcherDebouncesLuaChanges(t *testing.T) {
	dir := t.TempDir()
	changed := make(chan struct{}, 8)

	w, err := NewWatcher(dir, 50*time.Millisecond, func() { changed <- struct{}{} }, nil)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "init.lua"), []byte("-- 1"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "init.lua"), []byte("-- 2"), 0644))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}

	select {
	case <-changed:
		t.Fatal("burst was not coalesced")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"), DefaultDebounce, func() {}, nil)
	assert.Error(t, err)
}

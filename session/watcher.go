package session

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/drake/tally/internal/logging"
)

// DefaultDebounce coalesces the burst of events an editor produces
// when saving a file.
const DefaultDebounce = 200 * time.Millisecond

// Watcher calls onChange when a *.lua file in a directory is written,
// created, renamed or removed. Bursts within the debounce window
// produce a single call.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	onChange func()
	logger   *slog.Logger

	mu    sync.Mutex
	timer *time.Timer

	done      chan struct{}
	closeOnce sync.Once
}

// NewWatcher starts watching dir. onChange runs on a timer goroutine.
func NewWatcher(dir string, debounce time.Duration, onChange func(), logger *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	if logger == nil {
		logger = logging.Discard()
	}

	w := &Watcher{
		fs:       fw,
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Ext(ev.Name) != ".lua" || ev.Op == fsnotify.Chmod {
				continue
			}
			w.logger.Debug("script changed", slog.String("file", ev.Name), slog.String("op", ev.Op.String()))
			w.schedule()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logging.LogError(w.logger, "watcher error", err)
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case <-w.done:
		default:
			w.onChange()
		}
	})
}

// Close stops watching. Pending callbacks are dropped.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
		err = w.fs.Close()
	})
	return err
}

// Watch reloads scripts whenever a *.lua file in dir changes.
// The returned Watcher must be closed by the caller.
func (s *Session) Watch(dir string) (*Watcher, error) {
	return NewWatcher(dir, DefaultDebounce, func() {
		s.post(func() {
			s.ui.Print("Scripts changed")
			s.Reload()
		})
	}, s.logger)
}

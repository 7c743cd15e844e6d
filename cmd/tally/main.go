package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/drake/tally/config"
	"github.com/drake/tally/history"
	"github.com/drake/tally/internal/logging"
	"github.com/drake/tally/kv"
	"github.com/drake/tally/session"
	"github.com/drake/tally/ui"
	"github.com/drake/tally/ui/console"
	"github.com/drake/tally/ui/tui"
)

func main() {
	// Parse flags
	simpleUI := flag.Bool("simple", false, "Use simple console UI instead of TUI")
	screen := flag.String("screen", "", "Start screen (calculator, login, register)")
	configPath := flag.String("config", config.File(), "Path to config.toml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Println("Config error:", err)
		os.Exit(1)
	}
	if *screen != "" {
		if !config.ValidScreen(*screen) {
			fmt.Printf("Unknown screen %q\n", *screen)
			os.Exit(1)
		}
		cfg.UI.StartScreen = *screen
	}

	// Logging
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		fmt.Println("Config error:", err)
		os.Exit(1)
	}
	if config.Debug() {
		level = slog.LevelDebug
	}
	logFile, err := logging.Open(cfg.Log.File)
	if err != nil {
		fmt.Println("Log error:", err)
		os.Exit(1)
	}
	logger := logging.NewStructuredLogger(logFile, level)
	defer logging.SafeCloseWithLogging(logFile, logger, "close log file")

	// History storage
	var store kv.Store = kv.NewMemory()
	if cfg.History.File != "" {
		store = kv.NewFile(cfg.History.File)
	}
	hist := history.NewStore(
		history.NewKVStorage(store, cfg.History.Key),
		history.WithLimit(cfg.History.Limit),
		history.WithLogger(logger),
	)

	// Select UI mode
	var display ui.UI
	if *simpleUI {
		display = console.New(os.Stdin, os.Stdout)
	} else {
		display = tui.NewBubbleTeaUI(tui.Options{ShowHistory: cfg.UI.ShowHistory})
	}

	sess := session.New(display, hist, session.Config{
		ConfigDir:   config.Dir(),
		UserScripts: flag.Args(),
		StartScreen: cfg.UI.StartScreen,
		Logger:      logger,
	})

	if cfg.Script.Watch {
		watcher, err := sess.Watch(config.Dir())
		if err != nil {
			logging.LogError(logger, "script watcher disabled", err)
		} else {
			defer logging.SafeCloseWithLogging(watcher, logger, "close script watcher")
		}
	}

	logging.LogOperation(logger, "start", slog.String("screen", cfg.UI.StartScreen), slog.Bool("simple", *simpleUI))

	// Block on UI
	if err := sess.Run(); err != nil {
		fmt.Println("UI error:", err)
		os.Exit(1)
	}
}

package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/BogdanLi/productivity-timer/internal/logging"
	"github.com/BogdanLi/productivity-timer/internal/notify"
	"github.com/BogdanLi/productivity-timer/internal/store"
	"github.com/BogdanLi/productivity-timer/internal/timer"
	"github.com/BogdanLi/productivity-timer/internal/tui"
)

func main() {
	debug := flag.Bool("debug", false, "write debug logs to the config dir")
	flag.Parse()

	if err := logging.Initialize(*debug); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	dbPath, err := store.DefaultDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	s, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	cfg := s.LoadConfig()
	presets := store.NewPresetStore(s)
	sessions := store.NewSessionLog(s)

	dispatcher := notify.NewDesktop(cfg.SoundEnabled)
	dispatcher.RequestPermission()

	engine := timer.NewEngine(presets, sessions, dispatcher, cfg)

	app := tui.NewApp(s, presets, sessions, engine, dispatcher)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

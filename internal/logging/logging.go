package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Logger is the package-level logger. The TUI owns stdout, so logs go to a
// file; until Initialize runs (and whenever debug is off) everything is
// discarded.
var Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))

// Initialize sets up file logging when debug is enabled. POMO_DEBUG=1 turns
// debug on regardless of the flag.
func Initialize(debug bool) error {
	if os.Getenv("POMO_DEBUG") == "1" {
		debug = true
	}
	if !debug {
		Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
		return nil
	}

	cfg, err := os.UserConfigDir()
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	logDir := filepath.Join(cfg, "pomo")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	logFile, err := os.OpenFile(filepath.Join(logDir, "pomo.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	Logger = slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return nil
}

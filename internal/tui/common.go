package tui

import (
	"fmt"
	"time"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTimer viewState = iota
	viewPresets
	viewStats
	viewSettings
)

var viewNames = []string{"Timer", "Presets", "Statistics", "Settings"}

// --- Messages ---

// tickMsg carries the tick-schedule generation it was armed under. Messages
// from a superseded schedule are dropped instead of applied.
type tickMsg struct {
	gen int
}

type statusMsg struct {
	text    string
	isError bool
}

type presetsChangedMsg struct{}

type configSavedMsg struct{}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatCountdown(minutes, seconds int) string {
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

func formatDateTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}

// formatRelativeTime renders a coarse "x ago" label for the history list.
func formatRelativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		m := int(d.Minutes())
		if m == 1 {
			return "a minute ago"
		}
		return fmt.Sprintf("%d minutes ago", m)
	case d < 24*time.Hour:
		h := int(d.Hours())
		if h == 1 {
			return "an hour ago"
		}
		return fmt.Sprintf("%d hours ago", h)
	default:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "yesterday"
		}
		return fmt.Sprintf("%d days ago", days)
	}
}

package store

import "time"

// TimerMode identifies which of the three countdown purposes is active.
type TimerMode string

const (
	ModeFocus     TimerMode = "focus"
	ModeBreak     TimerMode = "break"
	ModeLongBreak TimerMode = "longBreak"
)

// Modes lists all modes in display order.
var Modes = []TimerMode{ModeFocus, ModeBreak, ModeLongBreak}

// Label returns the user-facing name of the mode.
func (m TimerMode) Label() string {
	switch m {
	case ModeFocus:
		return "Focus"
	case ModeBreak:
		return "Break"
	case ModeLongBreak:
		return "Long Break"
	}
	return string(m)
}

// TimerPresetTimes holds the three configured durations, in whole minutes.
// Valid values are 1..60.
type TimerPresetTimes struct {
	FocusTime     int `json:"focusTime"`
	BreakTime     int `json:"breakTime"`
	LongBreakTime int `json:"longBreakTime"`
}

// TimerPreset is a named triple of durations. Mutated only by replacement.
type TimerPreset struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Times TimerPresetTimes `json:"times"`
}

// TimerSession records one completed (not paused or reset) countdown.
// Immutable once created; PresetID may dangle after a preset delete.
type TimerSession struct {
	ID          string    `json:"id"`
	PresetID    string    `json:"presetId"`
	Mode        TimerMode `json:"mode"`
	Duration    int       `json:"duration"` // minutes
	StartedAt   time.Time `json:"startedAt"`
	CompletedAt time.Time `json:"completedAt"`
}

// TimerStatistics is derived from the session log, never stored.
type TimerStatistics struct {
	TotalSessions   int
	TotalMinutes    int
	SessionsPerMode map[TimerMode]int
	MinutesPerMode  map[TimerMode]int
}

// Config holds app-level settings persisted as the timerConfig document.
type Config struct {
	// LongBreakInterval is the number of completed focus sessions between
	// long breaks. Values below 2 disable long breaks entirely.
	LongBreakInterval int  `json:"longBreakInterval"`
	SoundEnabled      bool `json:"soundEnabled"`
}

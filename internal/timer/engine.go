// Package timer implements the countdown state machine: it holds the
// remaining time for the active preset and mode, ticks once per second while
// running, and on reaching zero records a session, fires a notification and
// advances the mode.
package timer

import (
	"fmt"

	"github.com/BogdanLi/productivity-timer/internal/logging"
	"github.com/BogdanLi/productivity-timer/internal/store"
)

// Recorder receives one record per naturally completed countdown.
type Recorder interface {
	Add(presetID string, mode store.TimerMode, durationMinutes int) error
}

// Notifier is told which mode just finished. Implementations must be
// best-effort and never block the tick cadence.
type Notifier interface {
	Notify(mode store.TimerMode)
}

// State is the transient countdown state.
type State struct {
	Minutes   int
	Seconds   int
	IsRunning bool
}

// Engine is the timer state machine. It is single-owner: all methods are
// called from the TUI event loop, one at a time.
type Engine struct {
	presets  *store.PresetStore
	recorder Recorder
	notifier Notifier

	activeIndex int
	activeID    string
	activeMode  store.TimerMode

	state          State
	initialMinutes int

	// Long breaks replace the regular break after every Nth completed focus
	// session; below 2 the feature is off and focus always hands over to a
	// regular break.
	longBreakInterval int
	focusCompleted    int

	// generation tags the recurring tick schedule. Start bumps it, so tick
	// messages armed before a pause or restart are recognized as stale and
	// dropped instead of double-mutating state.
	generation int
}

func NewEngine(presets *store.PresetStore, recorder Recorder, notifier Notifier, cfg store.Config) *Engine {
	e := &Engine{
		presets:           presets,
		recorder:          recorder,
		notifier:          notifier,
		activeMode:        store.ModeFocus,
		longBreakInterval: cfg.LongBreakInterval,
	}
	e.reconfigure()
	return e
}

// DurationFor returns the configured minutes for a preset and mode. The mode
// enumeration is closed; anything else is a programming error.
func DurationFor(p store.TimerPreset, mode store.TimerMode) int {
	switch mode {
	case store.ModeFocus:
		return p.Times.FocusTime
	case store.ModeBreak:
		return p.Times.BreakTime
	case store.ModeLongBreak:
		return p.Times.LongBreakTime
	}
	panic(fmt.Sprintf("unknown timer mode %q", mode))
}

// reconfigure re-derives the countdown from the active preset and mode. The
// engine is left paused.
func (e *Engine) reconfigure() {
	p := e.ActivePreset()
	e.activeID = p.ID
	e.initialMinutes = DurationFor(p, e.activeMode)
	e.state = State{Minutes: e.initialMinutes, Seconds: 0, IsRunning: false}
}

// Start transitions Paused -> Running and reports whether a transition
// happened, so the caller can arm the one-second tick schedule exactly once.
func (e *Engine) Start() bool {
	if e.state.IsRunning {
		return false
	}
	e.state.IsRunning = true
	e.generation++
	return true
}

// Pause halts the countdown, remaining time unchanged.
func (e *Engine) Pause() {
	e.state.IsRunning = false
}

// Reset returns to the configured duration for the active preset and mode,
// paused.
func (e *Engine) Reset() {
	e.state = State{Minutes: e.initialMinutes, Seconds: 0, IsRunning: false}
}

// Tick applies one elapsed second. It returns the mode that finished and
// true when this tick completed the countdown; the engine is then paused and
// already re-armed with the next mode's duration.
func (e *Engine) Tick() (store.TimerMode, bool) {
	if !e.state.IsRunning {
		return "", false
	}

	if e.state.Seconds > 0 {
		e.state.Seconds--
	} else if e.state.Minutes > 0 {
		e.state.Minutes--
		e.state.Seconds = 59
	}

	if e.state.Minutes == 0 && e.state.Seconds == 0 {
		return e.complete()
	}
	return "", false
}

func (e *Engine) complete() (store.TimerMode, bool) {
	finished := e.activeMode
	e.state.IsRunning = false

	if err := e.recorder.Add(e.activeID, finished, e.initialMinutes); err != nil {
		// Session accounting is best-effort with respect to the countdown.
		logging.Logger.Error("record session", "error", err)
	}
	e.notifier.Notify(finished)

	e.activeMode = e.nextMode(finished)
	e.reconfigure()
	return finished, true
}

func (e *Engine) nextMode(finished store.TimerMode) store.TimerMode {
	if finished != store.ModeFocus {
		return store.ModeFocus
	}
	e.focusCompleted++
	if e.longBreakInterval >= 2 && e.focusCompleted%e.longBreakInterval == 0 {
		return store.ModeLongBreak
	}
	return store.ModeBreak
}

// AdjustTime changes the configured duration by delta minutes, never below
// one. Remaining time snaps to the new value. No-op while running.
func (e *Engine) AdjustTime(delta int) {
	if e.state.IsRunning {
		return
	}
	e.initialMinutes = max(1, e.initialMinutes+delta)
	e.state = State{Minutes: e.initialMinutes, Seconds: 0, IsRunning: false}
}

// SwitchPreset activates the preset at index. No-op while running; an
// out-of-range index is clamped.
func (e *Engine) SwitchPreset(index int) {
	if e.state.IsRunning {
		return
	}
	e.activeIndex = e.clampIndex(index)
	e.reconfigure()
}

// SwitchMode activates a mode. No-op while running.
func (e *Engine) SwitchMode(mode store.TimerMode) {
	if e.state.IsRunning {
		return
	}
	e.activeMode = mode
	e.reconfigure()
}

// RevalidatePreset must be called after every preset-list mutation. It clamps
// the active index into range so a delete can never leave the engine reading
// past the list end. When the preset under the index changed identity and the
// engine is paused, the countdown is re-derived from the new preset.
func (e *Engine) RevalidatePreset() {
	e.activeIndex = e.clampIndex(e.activeIndex)
	if e.state.IsRunning {
		// Finish the countdown in flight; the next reconfigure picks up the
		// replacement preset.
		e.activeID = e.ActivePreset().ID
		return
	}
	if e.ActivePreset().ID != e.activeID {
		e.reconfigure()
	}
}

func (e *Engine) clampIndex(i int) int {
	n := len(e.presets.Presets())
	if n == 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Progress reports the completed fraction of the countdown in [0,1].
func (e *Engine) Progress() float64 {
	total := e.initialMinutes * 60
	if total == 0 {
		return 0
	}
	remaining := e.state.Minutes*60 + e.state.Seconds
	return float64(total-remaining) / float64(total)
}

// SetLongBreakInterval applies a config change without disturbing the
// focus-completion counter.
func (e *Engine) SetLongBreakInterval(n int) {
	e.longBreakInterval = n
}

func (e *Engine) State() State { return e.state }

func (e *Engine) InitialMinutes() int { return e.initialMinutes }

func (e *Engine) ActiveMode() store.TimerMode { return e.activeMode }

func (e *Engine) ActivePresetIndex() int { return e.activeIndex }

func (e *Engine) Generation() int { return e.generation }

// ActivePreset resolves the active index against the current list, falling
// back to a zero-value preset only when the list is empty.
func (e *Engine) ActivePreset() store.TimerPreset {
	presets := e.presets.Presets()
	if len(presets) == 0 {
		return store.DefaultPresets()[0]
	}
	i := e.clampIndex(e.activeIndex)
	return presets[i]
}

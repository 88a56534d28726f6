package timer

import (
	"errors"
	"testing"

	"github.com/BogdanLi/productivity-timer/internal/store"
)

// fakeRecorder captures session records instead of persisting them.
type fakeRecorder struct {
	records []record
	err     error
}

type record struct {
	presetID string
	mode     store.TimerMode
	duration int
}

func (f *fakeRecorder) Add(presetID string, mode store.TimerMode, durationMinutes int) error {
	f.records = append(f.records, record{presetID, mode, durationMinutes})
	return f.err
}

// fakeNotifier counts notifications per mode.
type fakeNotifier struct {
	notified []store.TimerMode
}

func (f *fakeNotifier) Notify(mode store.TimerMode) {
	f.notified = append(f.notified, mode)
}

func newTestEngine(t *testing.T) (*Engine, *store.PresetStore, *fakeRecorder, *fakeNotifier) {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	presets := store.NewPresetStore(s)
	rec := &fakeRecorder{}
	not := &fakeNotifier{}
	e := NewEngine(presets, rec, not, store.DefaultConfig())
	return e, presets, rec, not
}

// tick advances the engine n seconds and returns how many completions fired.
func tick(e *Engine, n int) int {
	completions := 0
	for i := 0; i < n; i++ {
		if _, done := e.Tick(); done {
			completions++
		}
	}
	return completions
}

// ============================================================
// Duration lookup
// ============================================================

func TestDurationForAllModes(t *testing.T) {
	p := store.TimerPreset{
		Times: store.TimerPresetTimes{FocusTime: 25, BreakTime: 5, LongBreakTime: 15},
	}
	if got := DurationFor(p, store.ModeFocus); got != 25 {
		t.Fatalf("focus = %d, want 25", got)
	}
	if got := DurationFor(p, store.ModeBreak); got != 5 {
		t.Fatalf("break = %d, want 5", got)
	}
	if got := DurationFor(p, store.ModeLongBreak); got != 15 {
		t.Fatalf("longBreak = %d, want 15", got)
	}
}

func TestDurationForUnknownModePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown mode")
		}
	}()
	DurationFor(store.TimerPreset{}, store.TimerMode("bogus"))
}

// ============================================================
// Transitions
// ============================================================

func TestInitialState(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	state := e.State()
	if state.IsRunning {
		t.Fatal("engine should start paused")
	}
	if state.Minutes != 25 || state.Seconds != 0 {
		t.Fatalf("initial countdown = %d:%d, want 25:00", state.Minutes, state.Seconds)
	}
	if e.ActiveMode() != store.ModeFocus {
		t.Fatalf("initial mode = %s, want focus", e.ActiveMode())
	}
}

func TestStartIsIdempotent(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	if !e.Start() {
		t.Fatal("first start should transition")
	}
	gen := e.Generation()
	if e.Start() {
		t.Fatal("second start should be a no-op")
	}
	if e.Generation() != gen {
		t.Fatal("no-op start must not bump the tick generation")
	}
}

func TestPauseKeepsRemaining(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	e.Start()
	tick(e, 90)
	e.Pause()

	state := e.State()
	if state.IsRunning {
		t.Fatal("engine should be paused")
	}
	if state.Minutes != 23 || state.Seconds != 30 {
		t.Fatalf("remaining = %d:%d, want 23:30", state.Minutes, state.Seconds)
	}
}

func TestTickWhilePausedIsNoop(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	before := e.State()
	if n := tick(e, 10); n != 0 {
		t.Fatalf("paused ticks completed %d countdowns", n)
	}
	if e.State() != before {
		t.Fatal("paused tick mutated state")
	}
}

func TestReset(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	e.Start()
	tick(e, 30)
	e.Reset()

	state := e.State()
	if state.IsRunning || state.Minutes != 25 || state.Seconds != 0 {
		t.Fatalf("reset state = %+v, want paused 25:00", state)
	}
}

// ============================================================
// Completion
// ============================================================

func TestSixtyTicksFromOneMinute(t *testing.T) {
	e, _, rec, not := newTestEngine(t)
	e.AdjustTime(-24) // 25 -> 1 minute
	e.Start()

	if n := tick(e, 60); n != 1 {
		t.Fatalf("expected exactly 1 completion, got %d", n)
	}

	state := e.State()
	if state.IsRunning {
		t.Fatal("engine should be paused after completion")
	}
	// Mode advanced to break, countdown re-armed with its duration.
	if e.ActiveMode() != store.ModeBreak {
		t.Fatalf("mode = %s, want break", e.ActiveMode())
	}
	if state.Minutes != 5 || state.Seconds != 0 {
		t.Fatalf("re-armed countdown = %d:%d, want 5:00", state.Minutes, state.Seconds)
	}

	if len(rec.records) != 1 {
		t.Fatalf("expected 1 session record, got %d", len(rec.records))
	}
	got := rec.records[0]
	if got.mode != store.ModeFocus || got.duration != 1 {
		t.Fatalf("unexpected record: %+v", got)
	}
	if len(not.notified) != 1 || not.notified[0] != store.ModeFocus {
		t.Fatalf("unexpected notifications: %v", not.notified)
	}
}

func TestFocusScenario1500Ticks(t *testing.T) {
	e, presets, rec, _ := newTestEngine(t)
	e.Start()

	if n := tick(e, 1500); n != 1 {
		t.Fatalf("expected 1 completion after 1500 ticks, got %d", n)
	}
	if e.State().IsRunning {
		t.Fatal("engine should report paused")
	}
	if e.ActiveMode() != store.ModeBreak {
		t.Fatalf("mode should auto-advance to break, got %s", e.ActiveMode())
	}
	if len(rec.records) != 1 {
		t.Fatalf("expected 1 session, got %d", len(rec.records))
	}
	got := rec.records[0]
	if got.mode != store.ModeFocus || got.duration != 25 {
		t.Fatalf("unexpected session: %+v", got)
	}
	if got.presetID != presets.Presets()[0].ID {
		t.Fatalf("session recorded against preset %q", got.presetID)
	}
}

func TestBreakCompletionReturnsToFocus(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	e.SwitchMode(store.ModeBreak)
	e.Start()
	tick(e, 5*60)

	if e.ActiveMode() != store.ModeFocus {
		t.Fatalf("break should hand over to focus, got %s", e.ActiveMode())
	}
	if e.State().Minutes != 25 {
		t.Fatalf("countdown should be focus duration, got %d", e.State().Minutes)
	}
}

func TestLongBreakEveryFourthFocus(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	e.AdjustTime(-24) // 1-minute focus sessions

	for i := 1; i <= 4; i++ {
		if e.ActiveMode() != store.ModeFocus {
			t.Fatalf("round %d: expected focus, got %s", i, e.ActiveMode())
		}
		e.AdjustTime(1 - e.InitialMinutes()) // keep focus at 1 minute
		e.Start()
		tick(e, 60)

		want := store.ModeBreak
		if i == 4 {
			want = store.ModeLongBreak
		}
		if e.ActiveMode() != want {
			t.Fatalf("after focus %d: mode = %s, want %s", i, e.ActiveMode(), want)
		}

		// Finish the break to get back to focus.
		e.Start()
		tick(e, e.InitialMinutes()*60)
	}
}

func TestLongBreakDisabled(t *testing.T) {
	s, err := store.NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	presets := store.NewPresetStore(s)
	e := NewEngine(presets, &fakeRecorder{}, &fakeNotifier{}, store.Config{LongBreakInterval: 0})

	for i := 0; i < 6; i++ {
		e.AdjustTime(1 - e.InitialMinutes())
		e.Start()
		tick(e, 60)
		if e.ActiveMode() == store.ModeLongBreak {
			t.Fatal("long break should never trigger when interval is disabled")
		}
		e.Start()
		tick(e, e.InitialMinutes()*60)
	}
}

func TestRecorderFailureDoesNotStopEngine(t *testing.T) {
	e, _, rec, _ := newTestEngine(t)
	rec.err = errors.New("persist failed")
	e.AdjustTime(-24)
	e.Start()

	if n := tick(e, 60); n != 1 {
		t.Fatalf("completion should fire despite recorder error, got %d", n)
	}
	if e.ActiveMode() != store.ModeBreak {
		t.Fatal("mode should still advance")
	}
}

// ============================================================
// Adjust, switch, revalidate
// ============================================================

func TestAdjustTimeFloor(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	for i := 0; i < 100; i++ {
		e.AdjustTime(-1)
	}
	if e.InitialMinutes() != 1 {
		t.Fatalf("initialMinutes = %d, want floor of 1", e.InitialMinutes())
	}
	if e.State().Minutes != 1 || e.State().Seconds != 0 {
		t.Fatalf("remaining should snap to 1:00, got %d:%d", e.State().Minutes, e.State().Seconds)
	}
}

func TestAdjustTimeWhileRunningIsNoop(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	e.Start()
	tick(e, 10)
	before := e.State()
	initialBefore := e.InitialMinutes()

	e.AdjustTime(5)

	if e.State() != before || e.InitialMinutes() != initialBefore {
		t.Fatal("adjustTime while running must not change state")
	}
}

func TestSwitchModeWhileRunningIsNoop(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	e.Start()
	e.SwitchMode(store.ModeBreak)
	if e.ActiveMode() != store.ModeFocus {
		t.Fatal("switchMode while running must be rejected")
	}
}

func TestSwitchPreset(t *testing.T) {
	e, presets, _, _ := newTestEngine(t)
	presets.Add(store.TimerPreset{
		ID:    "p2",
		Name:  "Deep Work",
		Times: store.TimerPresetTimes{FocusTime: 50, BreakTime: 10, LongBreakTime: 20},
	})

	e.SwitchPreset(1)
	if e.ActivePresetIndex() != 1 {
		t.Fatalf("active index = %d, want 1", e.ActivePresetIndex())
	}
	if e.State().Minutes != 50 {
		t.Fatalf("countdown = %d, want 50 from new preset", e.State().Minutes)
	}

	// Out-of-range indexes clamp.
	e.SwitchPreset(99)
	if e.ActivePresetIndex() != 1 {
		t.Fatalf("clamped index = %d, want 1", e.ActivePresetIndex())
	}
	e.SwitchPreset(-5)
	if e.ActivePresetIndex() != 0 {
		t.Fatalf("clamped index = %d, want 0", e.ActivePresetIndex())
	}
}

func TestDeleteActivePresetRevalidates(t *testing.T) {
	e, presets, _, _ := newTestEngine(t)
	presets.Add(store.TimerPreset{
		ID:    "p2",
		Name:  "Deep Work",
		Times: store.TimerPresetTimes{FocusTime: 50, BreakTime: 10, LongBreakTime: 20},
	})
	e.SwitchPreset(1)

	// Delete the active preset; index 1 no longer exists.
	presets.Delete("p2")
	e.RevalidatePreset()

	if e.ActivePresetIndex() != 0 {
		t.Fatalf("active index = %d, want clamp to 0", e.ActivePresetIndex())
	}
	if got := e.ActivePreset(); got.ID != presets.Presets()[0].ID {
		t.Fatalf("active preset dangling: %+v", got)
	}
	if e.State().Minutes != 25 {
		t.Fatalf("countdown should re-derive from surviving preset, got %d", e.State().Minutes)
	}
}

func TestDeleteOnlyPresetFallsBackToDefault(t *testing.T) {
	e, presets, _, _ := newTestEngine(t)
	presets.Delete(presets.Presets()[0].ID)
	e.RevalidatePreset()

	// Engine must still resolve a usable preset for the next tick/render.
	p := e.ActivePreset()
	if p.Times.FocusTime < store.MinMinutes {
		t.Fatalf("fallback preset unusable: %+v", p)
	}
}

// ============================================================
// Progress
// ============================================================

func TestProgress(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	if got := e.Progress(); got != 0 {
		t.Fatalf("progress at start = %f, want 0", got)
	}

	e.Start()
	tick(e, 750) // half of 25 minutes
	if got := e.Progress(); got != 0.5 {
		t.Fatalf("progress at halfway = %f, want 0.5", got)
	}
}

func TestProgressZeroGuard(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	// Force the degenerate case the minute floor normally prevents.
	e.initialMinutes = 0
	if got := e.Progress(); got != 0 {
		t.Fatalf("progress with zero duration = %f, want 0", got)
	}
}

package store

import (
	"encoding/json"
	"fmt"

	"github.com/BogdanLi/productivity-timer/internal/logging"
)

// Default durations, also used field-by-field when migrating legacy records.
const (
	DefaultFocusMinutes     = 25
	DefaultBreakMinutes     = 5
	DefaultLongBreakMinutes = 15

	MinMinutes = 1
	MaxMinutes = 60
)

// DefaultPresets returns the built-in preset list used on first run or when
// the persisted document cannot be parsed.
func DefaultPresets() []TimerPreset {
	return []TimerPreset{
		{
			ID:   "1",
			Name: "Default Pomodoro",
			Times: TimerPresetTimes{
				FocusTime:     DefaultFocusMinutes,
				BreakTime:     DefaultBreakMinutes,
				LongBreakTime: DefaultLongBreakMinutes,
			},
		},
	}
}

// PresetStore owns the preset list. Every mutation rewrites the whole
// timerPresets document synchronously.
type PresetStore struct {
	store   *Store
	presets []TimerPreset
}

func NewPresetStore(s *Store) *PresetStore {
	ps := &PresetStore{store: s}
	ps.load()
	return ps
}

func (ps *PresetStore) load() {
	raw, ok, err := ps.store.GetDocument(keyPresets)
	if err != nil {
		logging.Logger.Error("load presets", "error", err)
		ps.presets = DefaultPresets()
		return
	}
	if !ok {
		ps.presets = DefaultPresets()
		return
	}

	var records []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		logging.Logger.Warn("presets document unparsable, falling back to defaults", "error", err)
		ps.presets = DefaultPresets()
		return
	}

	presets := make([]TimerPreset, 0, len(records))
	for _, r := range records {
		presets = append(presets, MigratePreset(r))
	}
	if len(presets) == 0 {
		presets = DefaultPresets()
	}
	ps.presets = presets
}

// legacyPreset tolerates records written before the times triple existed,
// which carried a single top-level minutes value.
type legacyPreset struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Minutes int               `json:"minutes"`
	Times   *TimerPresetTimes `json:"times"`
}

// MigratePreset normalizes one persisted preset record: an absent times
// object is synthesized from the legacy minutes field, absent or zero
// sub-fields get the defaults, and all three durations are clamped into
// [MinMinutes, MaxMinutes]. The transform is idempotent.
func MigratePreset(raw json.RawMessage) TimerPreset {
	var rec legacyPreset
	if err := json.Unmarshal(raw, &rec); err != nil {
		logging.Logger.Warn("preset record unparsable, substituting defaults", "error", err)
		return DefaultPresets()[0]
	}

	p := TimerPreset{ID: rec.ID, Name: rec.Name}
	if rec.Times == nil {
		focus := rec.Minutes
		if focus == 0 {
			focus = DefaultFocusMinutes
		}
		p.Times = TimerPresetTimes{
			FocusTime:     focus,
			BreakTime:     DefaultBreakMinutes,
			LongBreakTime: DefaultLongBreakMinutes,
		}
	} else {
		p.Times = *rec.Times
		if p.Times.FocusTime == 0 {
			p.Times.FocusTime = DefaultFocusMinutes
		}
		if p.Times.BreakTime == 0 {
			p.Times.BreakTime = DefaultBreakMinutes
		}
		if p.Times.LongBreakTime == 0 {
			p.Times.LongBreakTime = DefaultLongBreakMinutes
		}
	}

	p.Times.FocusTime = ClampMinutes(p.Times.FocusTime)
	p.Times.BreakTime = ClampMinutes(p.Times.BreakTime)
	p.Times.LongBreakTime = ClampMinutes(p.Times.LongBreakTime)
	return p
}

// ClampMinutes forces a duration into the valid [1,60] range.
func ClampMinutes(m int) int {
	if m < MinMinutes {
		return MinMinutes
	}
	if m > MaxMinutes {
		return MaxMinutes
	}
	return m
}

// Presets returns the current list. Callers must not mutate the slice.
func (ps *PresetStore) Presets() []TimerPreset {
	return ps.presets
}

// Add appends a preset and persists the list. The caller supplies a unique
// id; durations are clamped into the valid range first.
func (ps *PresetStore) Add(p TimerPreset) error {
	p.Times.FocusTime = ClampMinutes(p.Times.FocusTime)
	p.Times.BreakTime = ClampMinutes(p.Times.BreakTime)
	p.Times.LongBreakTime = ClampMinutes(p.Times.LongBreakTime)

	ps.presets = append(ps.presets, p)
	return ps.persist()
}

// Delete removes the preset with the given id. No-op when not found.
func (ps *PresetStore) Delete(id string) error {
	kept := ps.presets[:0]
	for _, p := range ps.presets {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	ps.presets = kept
	return ps.persist()
}

func (ps *PresetStore) persist() error {
	data, err := json.Marshal(ps.presets)
	if err != nil {
		return fmt.Errorf("marshal presets: %w", err)
	}
	return ps.store.SetDocument(keyPresets, string(data))
}

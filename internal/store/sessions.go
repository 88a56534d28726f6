package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BogdanLi/productivity-timer/internal/logging"
)

// SessionLog owns the append-only list of completed sessions. The log never
// truncates or caps its size; unbounded growth is a known limitation.
type SessionLog struct {
	store    *Store
	sessions []TimerSession
	now      func() time.Time
}

func NewSessionLog(s *Store) *SessionLog {
	sl := &SessionLog{store: s, now: time.Now}
	sl.load()
	return sl
}

func (sl *SessionLog) load() {
	raw, ok, err := sl.store.GetDocument(keySessions)
	if err != nil {
		logging.Logger.Error("load sessions", "error", err)
		return
	}
	if !ok {
		return
	}
	if err := json.Unmarshal([]byte(raw), &sl.sessions); err != nil {
		logging.Logger.Warn("sessions document unparsable, starting empty", "error", err)
		sl.sessions = nil
	}
}

// Sessions returns the full log in append order.
func (sl *SessionLog) Sessions() []TimerSession {
	return sl.sessions
}

// Add records one completed countdown and persists the log. startedAt is
// derived so that startedAt + duration == completedAt to the second.
func (sl *SessionLog) Add(presetID string, mode TimerMode, durationMinutes int) error {
	completedAt := sl.now()
	session := TimerSession{
		ID:          uuid.NewString(),
		PresetID:    presetID,
		Mode:        mode,
		Duration:    durationMinutes,
		StartedAt:   completedAt.Add(-time.Duration(durationMinutes) * time.Minute),
		CompletedAt: completedAt,
	}
	sl.sessions = append(sl.sessions, session)
	return sl.persist()
}

func (sl *SessionLog) persist() error {
	data, err := json.Marshal(sl.sessions)
	if err != nil {
		return fmt.Errorf("marshal sessions: %w", err)
	}
	return sl.store.SetDocument(keySessions, string(data))
}

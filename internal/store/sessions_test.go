package store

import (
	"testing"
	"time"
)

func TestSessionsEmptyOnFirstRun(t *testing.T) {
	s := newTestStore(t)
	sl := NewSessionLog(s)
	if len(sl.Sessions()) != 0 {
		t.Fatalf("expected empty log, got %d sessions", len(sl.Sessions()))
	}
}

func TestSessionsEmptyOnCorruptDocument(t *testing.T) {
	s := newTestStore(t)
	s.SetDocument("timerSessions", "{broken")

	sl := NewSessionLog(s)
	if len(sl.Sessions()) != 0 {
		t.Fatal("corrupt document should yield an empty log")
	}
}

func TestSessionAdd(t *testing.T) {
	s := newTestStore(t)
	sl := NewSessionLog(s)

	completedAt := time.Date(2026, 3, 14, 10, 30, 0, 0, time.Local)
	sl.now = func() time.Time { return completedAt }

	if err := sl.Add("preset-1", ModeFocus, 25); err != nil {
		t.Fatal(err)
	}

	sessions := sl.Sessions()
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	got := sessions[0]
	if got.ID == "" {
		t.Fatal("session id should be assigned")
	}
	if got.PresetID != "preset-1" || got.Mode != ModeFocus || got.Duration != 25 {
		t.Fatalf("unexpected session: %+v", got)
	}
	if !got.CompletedAt.Equal(completedAt) {
		t.Fatalf("completedAt = %v, want %v", got.CompletedAt, completedAt)
	}
	// startedAt + duration == completedAt, to the second
	if !got.StartedAt.Add(time.Duration(got.Duration) * time.Minute).Equal(got.CompletedAt) {
		t.Fatalf("startedAt %v + %dm != completedAt %v", got.StartedAt, got.Duration, got.CompletedAt)
	}
}

func TestSessionAddPersists(t *testing.T) {
	s := newTestStore(t)
	sl := NewSessionLog(s)

	sl.Add("p1", ModeFocus, 25)
	sl.Add("p1", ModeBreak, 5)

	reloaded := NewSessionLog(s)
	sessions := reloaded.Sessions()
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions after reload, got %d", len(sessions))
	}
	// Append order is preserved
	if sessions[0].Mode != ModeFocus || sessions[1].Mode != ModeBreak {
		t.Fatalf("unexpected order: %v, %v", sessions[0].Mode, sessions[1].Mode)
	}
	if sessions[0].ID == sessions[1].ID {
		t.Fatal("session ids must be unique")
	}
}

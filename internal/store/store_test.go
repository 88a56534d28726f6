package store

import (
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/pomo.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen — should succeed and not re-migrate
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Documents
// ============================================================

func TestGetDocumentAbsent(t *testing.T) {
	s := newTestStore(t)
	_, ok, err := s.GetDocument("missing")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("absent key should report ok=false")
	}
}

func TestSetAndGetDocument(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetDocument("k", `{"a":1}`); err != nil {
		t.Fatal(err)
	}
	v, ok, err := s.GetDocument("k")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || v != `{"a":1}` {
		t.Fatalf("unexpected document: ok=%v v=%q", ok, v)
	}
}

func TestSetDocumentOverwrites(t *testing.T) {
	s := newTestStore(t)
	s.SetDocument("k", "first")
	s.SetDocument("k", "second")

	v, _, _ := s.GetDocument("k")
	if v != "second" {
		t.Fatalf("expected last write to win, got %q", v)
	}
}

func TestRemoveDocument(t *testing.T) {
	s := newTestStore(t)
	s.SetDocument("k", "v")
	if err := s.RemoveDocument("k"); err != nil {
		t.Fatal(err)
	}
	_, ok, _ := s.GetDocument("k")
	if ok {
		t.Fatal("document should be gone")
	}

	// Removing again is a no-op
	if err := s.RemoveDocument("k"); err != nil {
		t.Fatal(err)
	}
}

// ============================================================
// Config
// ============================================================

func TestLoadConfigDefaults(t *testing.T) {
	s := newTestStore(t)
	cfg := s.LoadConfig()
	if cfg.LongBreakInterval != DefaultLongBreakInterval {
		t.Fatalf("expected interval %d, got %d", DefaultLongBreakInterval, cfg.LongBreakInterval)
	}
	if !cfg.SoundEnabled {
		t.Fatal("sound should default to enabled")
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveConfig(Config{LongBreakInterval: 6, SoundEnabled: false}); err != nil {
		t.Fatal(err)
	}
	cfg := s.LoadConfig()
	if cfg.LongBreakInterval != 6 || cfg.SoundEnabled {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadConfigCorrupt(t *testing.T) {
	s := newTestStore(t)
	s.SetDocument("timerConfig", "{not json")
	cfg := s.LoadConfig()
	if cfg.LongBreakInterval != DefaultLongBreakInterval {
		t.Fatalf("corrupt config should fall back to defaults, got %+v", cfg)
	}
}

package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BogdanLi/productivity-timer/internal/store"
)

func testData() ([]store.TimerSession, map[string]store.TimerPreset) {
	completedAt := time.Date(2026, 3, 14, 10, 30, 0, 0, time.Local)
	sessions := []store.TimerSession{
		{
			ID:          "s1",
			PresetID:    "p1",
			Mode:        store.ModeFocus,
			Duration:    25,
			StartedAt:   completedAt.Add(-25 * time.Minute),
			CompletedAt: completedAt,
		},
		{
			ID:          "s2",
			PresetID:    "gone",
			Mode:        store.ModeBreak,
			Duration:    5,
			StartedAt:   completedAt.Add(-5 * time.Minute),
			CompletedAt: completedAt,
		},
	}
	presets := map[string]store.TimerPreset{
		"p1": {ID: "p1", Name: "Default Pomodoro"},
	}
	return sessions, presets
}

func TestToCSV(t *testing.T) {
	sessions, presets := testData()
	path := filepath.Join(t.TempDir(), "out.csv")

	if err := ToCSV(sessions, presets, path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][5] != "Duration (min)" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][1] != "Default Pomodoro" || rows[1][2] != "Focus" {
		t.Fatalf("unexpected first row: %v", rows[1])
	}
	// Dangling preset reference exports as Unknown.
	if rows[2][1] != "Unknown" {
		t.Fatalf("dangling preset should export as Unknown, got %q", rows[2][1])
	}
}

func TestToJSON(t *testing.T) {
	sessions, presets := testData()
	path := filepath.Join(t.TempDir(), "out.json")

	if err := ToJSON(sessions, presets, path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var got jsonExport
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Count != 2 || len(got.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got count=%d len=%d", got.Count, len(got.Sessions))
	}
	if got.Sessions[0].Preset != "Default Pomodoro" || got.Sessions[0].DurationMin != 25 {
		t.Fatalf("unexpected first session: %+v", got.Sessions[0])
	}
	if got.Sessions[1].Preset != "Unknown" {
		t.Fatalf("dangling preset should export as Unknown, got %q", got.Sessions[1].Preset)
	}
	if got.Sessions[0].Mode != "focus" {
		t.Fatalf("mode should serialize as the wire value, got %q", got.Sessions[0].Mode)
	}
}

func TestToCSVEmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := ToCSV(nil, nil, path); err != nil {
		t.Fatal(err)
	}
	f, _ := os.Open(path)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected only the header, got %d rows", len(rows))
	}
}

func TestToCSVBadPath(t *testing.T) {
	sessions, presets := testData()
	if err := ToCSV(sessions, presets, "/nonexistent-dir/out.csv"); err == nil {
		t.Fatal("expected error for unwritable path")
	}
}

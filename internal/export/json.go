package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/BogdanLi/productivity-timer/internal/store"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Count      int           `json:"count"`
	Sessions   []jsonSession `json:"sessions"`
}

type jsonSession struct {
	ID          string `json:"id"`
	Preset      string `json:"preset"`
	PresetID    string `json:"preset_id"`
	Mode        string `json:"mode"`
	StartedAt   string `json:"started_at"`
	CompletedAt string `json:"completed_at"`
	DurationMin int    `json:"duration_minutes"`
}

func ToJSON(sessions []store.TimerSession, presets map[string]store.TimerPreset, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(sessions),
	}

	for _, s := range sessions {
		presetName := "Unknown"
		if p, ok := presets[s.PresetID]; ok {
			presetName = p.Name
		}

		export.Sessions = append(export.Sessions, jsonSession{
			ID:          s.ID,
			Preset:      presetName,
			PresetID:    s.PresetID,
			Mode:        string(s.Mode),
			StartedAt:   s.StartedAt.Local().Format(time.RFC3339),
			CompletedAt: s.CompletedAt.Local().Format(time.RFC3339),
			DurationMin: s.Duration,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

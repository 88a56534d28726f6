package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/BogdanLi/productivity-timer/internal/store"
)

func ToCSV(sessions []store.TimerSession, presets map[string]store.TimerPreset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Preset", "Mode", "Started", "Completed", "Duration (min)"}); err != nil {
		return err
	}

	for _, s := range sessions {
		presetName := "Unknown"
		if p, ok := presets[s.PresetID]; ok {
			presetName = p.Name
		}

		row := []string{
			s.ID,
			presetName,
			s.Mode.Label(),
			s.StartedAt.Local().Format(time.RFC3339),
			s.CompletedAt.Local().Format(time.RFC3339),
			fmt.Sprintf("%d", s.Duration),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

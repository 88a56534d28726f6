package store

import (
	"encoding/json"
	"fmt"

	"github.com/BogdanLi/productivity-timer/internal/logging"
)

// DefaultLongBreakInterval is how many focus sessions complete before a long
// break is offered.
const DefaultLongBreakInterval = 4

func DefaultConfig() Config {
	return Config{
		LongBreakInterval: DefaultLongBreakInterval,
		SoundEnabled:      true,
	}
}

// LoadConfig reads the timerConfig document, falling back to defaults when
// absent or unparsable.
func (s *Store) LoadConfig() Config {
	raw, ok, err := s.GetDocument(keyConfig)
	if err != nil {
		logging.Logger.Error("load config", "error", err)
		return DefaultConfig()
	}
	if !ok {
		return DefaultConfig()
	}

	var cfg Config
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		logging.Logger.Warn("config document unparsable, using defaults", "error", err)
		return DefaultConfig()
	}
	if cfg.LongBreakInterval < 0 {
		cfg.LongBreakInterval = DefaultLongBreakInterval
	}
	return cfg
}

// SaveConfig persists the timerConfig document.
func (s *Store) SaveConfig(cfg Config) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return s.SetDocument(keyConfig, string(data))
}

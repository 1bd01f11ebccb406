package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Sim      SimConfig      `toml:"sim"`
	Player   PlayerConfig   `toml:"player"`
	Recorder RecorderConfig `toml:"recorder"`
	Logging  LoggingConfig  `toml:"logging"`
}

type SimConfig struct {
	Seed         int64         `toml:"seed"`
	MaxTurns     int           `toml:"max_turns"`
	TurnInterval time.Duration `toml:"turn_interval"`
	DataDir      string        `toml:"data_dir"`
	ScriptsDir   string        `toml:"scripts_dir"`
	MapID        int           `toml:"map_id"`
}

// PlayerConfig places the input-driven creature. Script lines feed the
// input source verbatim: "wait", "move DX DY", "melee DX DY", "purify".
type PlayerConfig struct {
	Enabled bool     `toml:"enabled"`
	Species string   `toml:"species"`
	X       int      `toml:"x"`
	Y       int      `toml:"y"`
	Script  []string `toml:"script"`
}

type RecorderConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Sim: SimConfig{
			Seed:         1,
			MaxTurns:     200,
			TurnInterval: 100 * time.Millisecond,
			DataDir:      "data",
			ScriptsDir:   "scripts",
			MapID:        1,
		},
		Player: PlayerConfig{
			Enabled: true,
			Species: "player",
			X:       2,
			Y:       2,
		},
		Recorder: RecorderConfig{
			Enabled: true,
			Path:    "data/runs.db",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

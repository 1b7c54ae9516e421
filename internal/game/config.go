package game

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the game settings loaded from the TOML config file.
type Config struct {
	Dungeon DungeonConfig `toml:"dungeon"`
	Player  PlayerConfig  `toml:"player"`
	Flow    FlowConfig    `toml:"flow"`
	Logging LoggingConfig `toml:"logging"`
}

type DungeonConfig struct {
	Width    int   `toml:"width"`
	Height   int   `toml:"height"`
	Monsters int   `toml:"monsters"` // monsters placed per level
	Seed     int64 `toml:"seed"`     // 0 means seed from the clock
}

type PlayerConfig struct {
	LightRadius int `toml:"light_radius"`
}

type FlowConfig struct {
	Depth int `toml:"depth"` // how far monster pathing spreads from the player
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // the terminal belongs to the game screen
}

// Load reads the config file at path, applying defaults for missing values.
// A missing file is not an error; defaults are returned.
func Load(path string) (*Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Dungeon: DungeonConfig{
			Width:    80,
			Height:   24,
			Monsters: 8,
		},
		Player: PlayerConfig{
			LightRadius: 2,
		},
		Flow: FlowConfig{
			Depth: 32,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			File:   "angband.log",
		},
	}
}

func (c *Config) validate() error {
	if c.Dungeon.Width < 20 || c.Dungeon.Width > 255 {
		return fmt.Errorf("dungeon width %d out of range [20, 255]", c.Dungeon.Width)
	}
	if c.Dungeon.Height < 12 || c.Dungeon.Height > 255 {
		return fmt.Errorf("dungeon height %d out of range [12, 255]", c.Dungeon.Height)
	}
	if c.Dungeon.Monsters < 0 {
		return fmt.Errorf("monster count %d is negative", c.Dungeon.Monsters)
	}
	if c.Player.LightRadius < 0 {
		return fmt.Errorf("light radius %d is negative", c.Player.LightRadius)
	}
	if c.Flow.Depth < 1 || c.Flow.Depth > 127 {
		return fmt.Errorf("flow depth %d out of range [1, 127]", c.Flow.Depth)
	}
	return nil
}

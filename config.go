package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/olivierh59500/digital-rain-go/cascade"
)

// DefaultCharset is the glyph table trails are drawn from.
const DefaultCharset = "abcdefghijklmnopqrstuvwxyz0987654321@%/$#"

var errInvalidConfig = errors.New("invalid config")

// Range is a half open [Min, Max) integer range.
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

func (r Range) interval() cascade.Interval { return cascade.Interval{Min: r.Min, Max: r.Max} }

// Config holds everything needed to start the rain.
type Config struct {
	SpawnChance   float64       `yaml:"spawn_chance"`
	Length        Range         `yaml:"length"`
	Speed         Range         `yaml:"speed"`
	FrameInterval time.Duration `yaml:"frame_interval"`
	Theme         string        `yaml:"theme"`
	Charset       string        `yaml:"charset"`
	Seed          int64         `yaml:"seed,omitempty"` // 0 seeds from the clock
	Width         int           `yaml:"width"`          // Cells, used when the surface size is unknown
	Height        int           `yaml:"height"`
}

// DefaultConfig returns the classic green rain.
func DefaultConfig() Config {
	return Config{
		SpawnChance:   0.01,
		Length:        Range{Min: 3, Max: 15},
		Speed:         Range{Min: 1, Max: 3},
		FrameInterval: 80 * time.Millisecond,
		Theme:         "green",
		Charset:       DefaultCharset,
		Width:         100,
		Height:        40,
	}
}

// Validate reports the first problem found in c.
func (c Config) Validate() error {
	switch {
	case c.SpawnChance < 0 || c.SpawnChance > 1:
		return fmt.Errorf("%w: spawn_chance %v outside [0,1]", errInvalidConfig, c.SpawnChance)
	case c.Length.Min < 1 || c.Length.Max <= c.Length.Min:
		return fmt.Errorf("%w: length range [%d,%d) must be non-empty and start at 1 or more",
			errInvalidConfig, c.Length.Min, c.Length.Max)
	case c.Speed.Min < 1 || c.Speed.Max <= c.Speed.Min:
		return fmt.Errorf("%w: speed range [%d,%d) must be non-empty and start at 1 or more",
			errInvalidConfig, c.Speed.Min, c.Speed.Max)
	case c.FrameInterval <= 0:
		return fmt.Errorf("%w: frame_interval must be positive", errInvalidConfig)
	case c.Charset == "":
		return fmt.Errorf("%w: charset is empty", errInvalidConfig)
	case c.Width < 1 || c.Height < 1:
		return fmt.Errorf("%w: size %dx%d", errInvalidConfig, c.Width, c.Height)
	}
	if _, ok := themeByName(c.Theme); !ok {
		return fmt.Errorf("%w: unknown theme %q", errInvalidConfig, c.Theme)
	}
	return nil
}

// Params converts the config into matrix parameters.
func (c Config) Params() cascade.Params {
	return cascade.Params{
		SpawnChance: c.SpawnChance,
		Length:      c.Length.interval(),
		Speed:       c.Speed.interval(),
	}
}

// LoadConfig reads a YAML file on top of the defaults. Keys missing from the
// file keep their default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as YAML.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

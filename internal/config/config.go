package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultHorizon      = 24
	DefaultFPS          = 30
	DefaultBatch        = 10
	DefaultCellSize     = 16
	DefaultSolveMinutes = 24
	DefaultTopMinutes   = 32
	DefaultTopN         = 3
	DefaultPreset       = "sample"
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Input    string      `yaml:"input"`
	Preset   string      `yaml:"preset"`
	Horizon  int         `yaml:"horizon"`
	FPS      int         `yaml:"fps"`
	Batch    int         `yaml:"batch"`
	CellSize int         `yaml:"cell_size"`
	Solve    SolveConfig `yaml:"solve"`
}

type SolveConfig struct {
	Minutes    int `yaml:"minutes"`
	TopMinutes int `yaml:"top_minutes"`
	TopN       int `yaml:"top_n"`
}

func DefaultConfig() *Config {
	return &Config{
		Preset:   DefaultPreset,
		Horizon:  DefaultHorizon,
		FPS:      DefaultFPS,
		Batch:    DefaultBatch,
		CellSize: DefaultCellSize,
		Solve: SolveConfig{
			Minutes:    DefaultSolveMinutes,
			TopMinutes: DefaultTopMinutes,
			TopN:       DefaultTopN,
		},
	}
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	checks := []struct {
		name  string
		value int
	}{
		{"horizon", c.Horizon},
		{"fps", c.FPS},
		{"batch", c.Batch},
		{"cell_size", c.CellSize},
		{"solve.minutes", c.Solve.Minutes},
		{"solve.top_minutes", c.Solve.TopMinutes},
		{"solve.top_n", c.Solve.TopN},
	}
	for _, ch := range checks {
		if ch.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalid, ch.name, ch.value)
		}
	}
	if c.Preset != "" && c.Input == "" {
		if _, ok := Presets[c.Preset]; !ok {
			return fmt.Errorf("%w: unknown preset %q (available: %v)", ErrInvalid, c.Preset, ListPresets())
		}
	}
	return nil
}

// ResolveInput picks the blueprint text: an input file wins over the
// config's inline input, which wins over the preset.
func (c *Config) ResolveInput(path string) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	if c.Input != "" {
		return c.Input, nil
	}
	name := c.Preset
	if name == "" {
		name = DefaultPreset
	}
	text, ok := GetPreset(name)
	if !ok {
		return "", fmt.Errorf("%w: unknown preset %q (available: %v)", ErrInvalid, name, ListPresets())
	}
	return text, nil
}

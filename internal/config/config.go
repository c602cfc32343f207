package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type Config struct {
	Workers      int      `yaml:"workers" toml:"workers"`
	IgnoreHidden bool     `yaml:"ignore_hidden" toml:"ignore_hidden"`
	Exclude      []string `yaml:"exclude" toml:"exclude"`
	Context      int      `yaml:"context" toml:"context"`
	Color        string   `yaml:"color" toml:"color"`
	Debounce     string   `yaml:"debounce" toml:"debounce"`
}

func DefaultConfig() *Config {
	return &Config{
		Workers:      0,
		IgnoreHidden: false,
		Exclude:      []string{},
		Context:      3,
		Color:        ColorAuto,
		Debounce:     "300ms",
	}
}

// LoadConfig reads a YAML or, for a .toml extension, TOML config file.
// A missing file yields DefaultConfig. Keys absent from the file keep their
// default values. Nothing is excluded unless the file lists patterns.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config TOML: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	}

	// Initialize Exclude slice if nil (for empty configs)
	if cfg.Exclude == nil {
		cfg.Exclude = []string{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.Context < 0 {
		return fmt.Errorf("context must not be negative, got %d", c.Context)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be one of auto, always, never, got %q", c.Color)
	}
	if _, err := c.DebounceInterval(); err != nil {
		return err
	}
	return nil
}

// DebounceInterval parses Debounce. An empty value means no debouncing.
func (c *Config) DebounceInterval() (time.Duration, error) {
	if c.Debounce == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Debounce)
	if err != nil {
		return 0, fmt.Errorf("debounce: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("debounce must not be negative, got %s", c.Debounce)
	}
	return d, nil
}

package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-graphview/pkg/layout"
	"github.com/dd0wney/cluso-graphview/pkg/logging"
	"github.com/dd0wney/cluso-graphview/pkg/search"
)

var validate = validator.New()

// Config is the explorer configuration, loaded from YAML with every field
// optional: zero values fall back to the defaults below.
type Config struct {
	Layout  LayoutConfig  `yaml:"layout"`
	Search  SearchConfig  `yaml:"search"`
	Logging LoggingConfig `yaml:"logging"`
}

// LayoutConfig selects and tunes the layout algorithm.
type LayoutConfig struct {
	Algorithm string `yaml:"algorithm" validate:"omitempty,oneof=hierarchical force circular"`
	// Hierarchical
	Direction  string  `yaml:"direction" validate:"omitempty,oneof=right down left up"`
	NodeExtent float64 `yaml:"node_extent" validate:"gte=0"`
	LevelGap   float64 `yaml:"level_gap" validate:"gte=0"`
	NodeGap    float64 `yaml:"node_gap" validate:"gte=0"`
	// Force-directed
	Width      float64 `yaml:"width" validate:"gte=0"`
	Height     float64 `yaml:"height" validate:"gte=0"`
	Iterations int     `yaml:"iterations" validate:"gte=0"`
	Seed       int64   `yaml:"seed"`
	// Circular
	MinRadius float64 `yaml:"min_radius" validate:"gte=0"`
	Spacing   float64 `yaml:"spacing" validate:"gte=0"`
}

// SearchConfig tunes result delivery.
type SearchConfig struct {
	Limit int `yaml:"limit" validate:"gte=0"`
}

// LoggingConfig selects the log level.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Layout: LayoutConfig{
			Algorithm: "hierarchical",
			Direction: "right",
		},
		Search: SearchConfig{
			Limit: search.DefaultLimit,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads and validates a YAML config file, filling unset fields with
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// BuildLayout constructs the configured layout algorithm. Unset numeric
// fields keep each algorithm's own defaults.
func (c *Config) BuildLayout() (layout.Layout, error) {
	lc := c.Layout
	switch lc.Algorithm {
	case "", "hierarchical":
		return layout.NewHierarchicalLayout(layout.HierarchicalConfig{
			Direction:  parseDirection(lc.Direction),
			NodeExtent: lc.NodeExtent,
			LevelGap:   lc.LevelGap,
			NodeGap:    lc.NodeGap,
		}), nil
	case "force":
		return layout.NewForceDirectedLayout(layout.ForceConfig{
			Width:      lc.Width,
			Height:     lc.Height,
			Iterations: lc.Iterations,
			Seed:       lc.Seed,
		}), nil
	case "circular":
		return layout.NewCircularLayout(layout.CircularConfig{
			MinRadius: lc.MinRadius,
			Spacing:   lc.Spacing,
		}), nil
	default:
		return nil, fmt.Errorf("unknown layout algorithm %q", lc.Algorithm)
	}
}

// LogLevel parses the configured level.
func (c *Config) LogLevel() logging.Level {
	return logging.ParseLevel(c.Logging.Level)
}

func parseDirection(s string) layout.Direction {
	switch s {
	case "down":
		return layout.DirectionDown
	case "left":
		return layout.DirectionLeft
	case "up":
		return layout.DirectionUp
	default:
		return layout.DirectionRight
	}
}

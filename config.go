package gallery

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate for unusable settings.
var ErrInvalidConfig = errors.New("invalid gallery config")

// ScrollConfig controls scroll handling.
type ScrollConfig struct {
	Throttle  time.Duration `yaml:"throttle"`   // Window recomputation throttle
	WheelStep float32       `yaml:"wheel_step"` // Pixels per wheel notch
}

// FetchConfig controls item loading.
type FetchConfig struct {
	Timeout time.Duration `yaml:"timeout"` // Per-page fetch timeout, 0 for none
}

// Config is the complete gallery configuration.
type Config struct {
	Window WindowConfig `yaml:"window"`
	Layout LayoutConfig `yaml:"layout"`
	Scroll ScrollConfig `yaml:"scroll"`
	Fade   FadeConfig   `yaml:"fade"`
	Fetch  FetchConfig  `yaml:"fetch"`

	ScrubberWidth  float32 `yaml:"scrubber_width"`
	ScrubberHandle float32 `yaml:"scrubber_handle"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			StepSize:        60,
			GrowThreshold:   400,
			ShrinkThreshold: 2400,
		},
		Layout: LayoutConfig{
			Columns:      6,
			CellSize:     120,
			Gap:          4,
			HeaderHeight: 32,
		},
		Scroll: ScrollConfig{
			Throttle:  100 * time.Millisecond,
			WheelStep: 30,
		},
		Fade: FadeConfig{
			HideTimeout:    1500 * time.Millisecond,
			PollInterval:   250 * time.Millisecond,
			ScrollThrottle: 50 * time.Millisecond,
			Jitter:         2,
			FadeDuration:   150 * time.Millisecond,
		},
		Fetch: FetchConfig{
			Timeout: 10 * time.Second,
		},
		ScrubberWidth:  24,
		ScrubberHandle: 36,
	}
}

// LoadConfig reads a YAML file over DefaultConfig and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks settings the engine cannot work with. A shrink threshold
// at or below the grow threshold would evict content as soon as it grows.
func (c Config) Validate() error {
	if c.Window.StepSize <= 0 {
		return fmt.Errorf("%w: step_size must be positive, got %d", ErrInvalidConfig, c.Window.StepSize)
	}
	if c.Window.GrowThreshold < 0 {
		return fmt.Errorf("%w: grow_threshold must not be negative", ErrInvalidConfig)
	}
	if c.Window.ShrinkThreshold <= c.Window.GrowThreshold {
		return fmt.Errorf("%w: shrink_threshold (%v) must exceed grow_threshold (%v)",
			ErrInvalidConfig, c.Window.ShrinkThreshold, c.Window.GrowThreshold)
	}
	if c.Layout.Columns <= 0 || c.Layout.CellSize <= 0 {
		return fmt.Errorf("%w: layout needs positive columns and cell_size", ErrInvalidConfig)
	}
	if c.Scroll.Throttle <= 0 || c.Fade.PollInterval <= 0 || c.Fade.ScrollThrottle <= 0 {
		return fmt.Errorf("%w: throttle and poll intervals must be positive", ErrInvalidConfig)
	}
	if c.Fade.HideTimeout < 0 || c.Fade.Jitter < 0 {
		return fmt.Errorf("%w: fade timeout and jitter must not be negative", ErrInvalidConfig)
	}
	return nil
}

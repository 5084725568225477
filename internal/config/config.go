package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds startup settings for the window, logging and headless capture.
//
// The scene itself (colors, radii, orbit speeds, bloom) is fixed and never
// read from here.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Log      LogConfig      `yaml:"log"`
	Headless HeadlessConfig `yaml:"headless"`
}

type WindowConfig struct {
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Title   string `yaml:"title"`
	MSAA    bool   `yaml:"msaa"`
	HighDPI bool   `yaml:"highdpi"`

	// PixelRatio overrides display detection when > 0.
	PixelRatio float64 `yaml:"pixelRatio"`

	// TargetFPS caps the frame rate; 0 leaves pacing to vsync.
	TargetFPS int `yaml:"targetFPS"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	RaylibInfo bool   `yaml:"raylibInfo"`
	Debug      bool   `yaml:"debug"`
}

type HeadlessConfig struct {
	Enabled bool    `yaml:"enabled"`
	Frames  int     `yaml:"frames"`
	FPS     float64 `yaml:"fps"`
	Out     string  `yaml:"out"`
	Seed    int64   `yaml:"seed"`
}

// Default returns the settings used when no config file is given.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:   1280,
			Height:  720,
			Title:   "orbitscene",
			MSAA:    true,
			HighDPI: true,
		},
		Log: LogConfig{
			Level: "warn",
		},
		Headless: HeadlessConfig{
			Frames: 60,
			FPS:    60,
		},
	}
}

// Load reads a YAML config file on top of Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that values are usable.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d must be positive", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Window.PixelRatio < 0 {
		return fmt.Errorf("%w: pixelRatio %v must not be negative", ErrInvalid, c.Window.PixelRatio)
	}
	if c.Window.TargetFPS < 0 {
		return fmt.Errorf("%w: targetFPS %d must not be negative", ErrInvalid, c.Window.TargetFPS)
	}
	if c.Headless.Frames <= 0 {
		return fmt.Errorf("%w: headless frames %d must be positive", ErrInvalid, c.Headless.Frames)
	}
	if c.Headless.FPS <= 0 {
		return fmt.Errorf("%w: headless fps %v must be positive", ErrInvalid, c.Headless.FPS)
	}
	return nil
}

// Package config loads the application configuration shared by the
// viewer, the editor and the CLI.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cedarcreek/trailmap/internal/engine"
)

// Surface overrides the engine defaults for one map surface. Zero
// values mean "keep the preset".
type Surface struct {
	MarginFactor float64 `yaml:"marginFactor"`
	ZoomFactor   float64 `yaml:"zoomFactor"`
	MaxScale     float64 `yaml:"maxScale"`
}

// Apply layers the non-zero overrides onto an engine preset.
func (s Surface) Apply(c engine.Config) engine.Config {
	if s.MarginFactor > 0 {
		c.MarginFactor = s.MarginFactor
	}
	if s.ZoomFactor > 0 {
		c.ZoomFactor = s.ZoomFactor
	}
	if s.MaxScale > 0 {
		c.MaxScale = s.MaxScale
	}
	return c
}

// Config is the application configuration document.
type Config struct {
	TrailsDir    string  `yaml:"trailsDir"`
	WindowWidth  int     `yaml:"windowWidth"`
	WindowHeight int     `yaml:"windowHeight"`
	LogFile      string  `yaml:"logFile"`
	ServeAddr    string  `yaml:"serveAddr"`
	Overview     Surface `yaml:"overview"`
	Detail       Surface `yaml:"detail"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TrailsDir:    "trails",
		WindowWidth:  420,
		WindowHeight: 800,
		ServeAddr:    ":8473",
	}
}

// Load reads a YAML config file over the defaults. A missing file is
// not an error; the defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.TrailsDir == "" {
		cfg.TrailsDir = Default().TrailsDir
	}
	if cfg.WindowWidth <= 0 || cfg.WindowHeight <= 0 {
		return cfg, fmt.Errorf("config: window size %dx%d not positive", cfg.WindowWidth, cfg.WindowHeight)
	}
	return cfg, nil
}

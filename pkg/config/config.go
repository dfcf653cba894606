// Package config loads vista configuration from YAML files and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	verrors "github.com/odvcencio/vista/pkg/errors"
)

// Config is the complete vista configuration.
type Config struct {
	Display    DisplayConfig    `yaml:"display"`
	Timing     TimingConfig     `yaml:"timing"`
	Navigation NavigationConfig `yaml:"navigation"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// DisplayConfig sizes the display surface.
type DisplayConfig struct {
	Width  int    `yaml:"width"`  // Surface width in pixels
	Height int    `yaml:"height"` // Surface height in pixels
	Theme  string `yaml:"theme"`  // "dark" or "light"
}

// TimingConfig holds event-loop and animation timings in milliseconds.
type TimingConfig struct {
	EventTimeoutMS int `yaml:"event_timeout_ms"` // Idle wait before a between-events tick
	FadeMS         int `yaml:"fade_ms"`
	PanMS          int `yaml:"pan_ms"`
	DoubleClickMS  int `yaml:"double_click_ms"`
	FrameMS        int `yaml:"frame_ms"` // Minimum spacing of transition frames
}

// NavigationConfig controls screen transitions.
type NavigationConfig struct {
	DefaultTransition string `yaml:"default_transition"` // "fade", "pan" or "cut"
	ReduceAnimation   bool   `yaml:"reduce_animation"`   // Forces cut transitions
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "text"
	File   string `yaml:"file"`   // Single file; takes precedence over Dir
	Dir    string `yaml:"dir"`    // Daily files; empty File and Dir log to stderr
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// EventTimeout returns the idle wait before a between-events tick.
func (t TimingConfig) EventTimeout() time.Duration {
	return time.Duration(t.EventTimeoutMS) * time.Millisecond
}

// Fade returns the fade transition duration.
func (t TimingConfig) Fade() time.Duration {
	return time.Duration(t.FadeMS) * time.Millisecond
}

// Pan returns the pan transition duration.
func (t TimingConfig) Pan() time.Duration {
	return time.Duration(t.PanMS) * time.Millisecond
}

// DoubleClick returns the maximum spacing of two clicks forming a double click.
func (t TimingConfig) DoubleClick() time.Duration {
	return time.Duration(t.DoubleClickMS) * time.Millisecond
}

// Frame returns the minimum spacing of transition frames.
func (t TimingConfig) Frame() time.Duration {
	return time.Duration(t.FrameMS) * time.Millisecond
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:  320,
			Height: 192,
			Theme:  "dark",
		},
		Timing: TimingConfig{
			EventTimeoutMS: 30,
			FadeMS:         400,
			PanMS:          300,
			DoubleClickMS:  350,
			FrameMS:        16,
		},
		Navigation: NavigationConfig{
			DefaultTransition: "fade",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics: MetricsConfig{
			Addr: "127.0.0.1:9464",
		},
	}
}

// Load loads configuration from default locations with proper precedence
func Load() (*Config, error) {
	cfg := DefaultConfig()

	// Load user config (~/.vista/config.yaml)
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	if home != "" {
		userConfigPath := filepath.Join(home, ".vista", "config.yaml")
		if err := loadAndMerge(cfg, userConfigPath); err != nil && !os.IsNotExist(err) {
			return nil, verrors.Wrap(err, verrors.ErrCodeConfigLoad, "loading user config")
		}
	}

	// Load project config (./.vista/config.yaml)
	projectConfigPath := filepath.Join(".", ".vista", "config.yaml")
	if err := loadAndMerge(cfg, projectConfigPath); err != nil && !os.IsNotExist(err) {
		return nil, verrors.Wrap(err, verrors.ErrCodeConfigLoad, "loading project config")
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := loadAndMerge(cfg, path); err != nil {
		return nil, verrors.Wrap(err, verrors.ErrCodeConfigLoad, "loading config").WithContext("path", path)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides
func applyEnvOverrides(cfg *Config) {
	if v, ok := envInt("VISTA_WIDTH"); ok {
		cfg.Display.Width = v
	}
	if v, ok := envInt("VISTA_HEIGHT"); ok {
		cfg.Display.Height = v
	}
	if v := os.Getenv("VISTA_THEME"); v != "" {
		cfg.Display.Theme = v
	}
	if v := os.Getenv("VISTA_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("VISTA_LOG_DIR"); v != "" {
		cfg.Logging.Dir = v
	}
	if v := os.Getenv("VISTA_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("VISTA_TRANSITION"); v != "" {
		cfg.Navigation.DefaultTransition = v
	}
	if val, ok := envBool("VISTA_REDUCE_ANIMATION"); ok {
		cfg.Navigation.ReduceAnimation = val
	}
	if v := os.Getenv("VISTA_METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
		cfg.Metrics.Enabled = true
	}
}

func envBool(key string) (bool, bool) {
	val := os.Getenv(key)
	if val == "" {
		return false, false
	}
	switch strings.ToLower(val) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	default:
		return false, false
	}
}

func envInt(key string) (int, bool) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return 0, false
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Transition returns the effective default transition name.
func (c *Config) Transition() string {
	if c.Navigation.ReduceAnimation {
		return "cut"
	}
	return strings.ToLower(strings.TrimSpace(c.Navigation.DefaultTransition))
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return invalid("display size must be positive, got %dx%d", c.Display.Width, c.Display.Height)
	}

	validThemes := map[string]bool{"dark": true, "light": true}
	if !validThemes[strings.ToLower(c.Display.Theme)] {
		return invalid("invalid theme: %s (valid: dark, light)", c.Display.Theme)
	}

	if c.Timing.EventTimeoutMS <= 0 {
		return invalid("timing.event_timeout_ms must be positive")
	}
	if c.Timing.FadeMS < 0 || c.Timing.PanMS < 0 || c.Timing.FrameMS < 0 {
		return invalid("transition timings must not be negative")
	}
	if c.Timing.DoubleClickMS < 0 {
		return invalid("timing.double_click_ms must not be negative")
	}

	validTransitions := map[string]bool{"fade": true, "pan": true, "cut": true}
	if !validTransitions[strings.ToLower(strings.TrimSpace(c.Navigation.DefaultTransition))] {
		return invalid("invalid transition: %s (valid: fade, pan, cut)", c.Navigation.DefaultTransition)
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		return invalid("invalid log format: %s (valid: json, text)", c.Logging.Format)
	}

	if c.Metrics.Enabled && strings.TrimSpace(c.Metrics.Addr) == "" {
		return invalid("metrics.addr is required when metrics are enabled")
	}

	return nil
}

func invalid(format string, args ...any) error {
	return verrors.New(verrors.ErrCodeConfigInvalid, fmt.Sprintf(format, args...))
}

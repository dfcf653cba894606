package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	verrors "github.com/odvcencio/vista/pkg/errors"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "fade", cfg.Transition())
	assert.Equal(t, 400*time.Millisecond, cfg.Timing.Fade())
	assert.Equal(t, 30*time.Millisecond, cfg.Timing.EventTimeout())
}

func TestLoadFromPath_MergesOnlySetKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("display:\n  width: 640\nnavigation:\n  default_transition: pan\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, 640, cfg.Display.Width)
	assert.Equal(t, 192, cfg.Display.Height, "unset keys keep defaults")
	assert.Equal(t, "dark", cfg.Display.Theme)
	assert.Equal(t, "pan", cfg.Transition())
}

func TestLoadFromPath_UnknownKeyIsParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("display:\n  colour: red\n"), 0o644))

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.True(t, verrors.IsCode(err, verrors.ErrCodeConfigParse))
}

func TestLoadFromPath_Missing(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, verrors.IsCode(err, verrors.ErrCodeConfigLoad))
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("VISTA_WIDTH", "800")
	t.Setenv("VISTA_HEIGHT", "not-a-number")
	t.Setenv("VISTA_THEME", "light")
	t.Setenv("VISTA_REDUCE_ANIMATION", "yes")
	t.Setenv("VISTA_METRICS_ADDR", ":9100")
	t.Setenv("VISTA_LOG_DIR", "/var/log/vista")

	cfg := DefaultConfig()
	applyEnvOverrides(cfg)

	assert.Equal(t, 800, cfg.Display.Width)
	assert.Equal(t, 192, cfg.Display.Height, "malformed ints are ignored")
	assert.Equal(t, "light", cfg.Display.Theme)
	assert.Equal(t, "cut", cfg.Transition(), "reduce animation forces cut")
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9100", cfg.Metrics.Addr)
	assert.Equal(t, "/var/log/vista", cfg.Logging.Dir)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Display.Width = 0 }},
		{"bad theme", func(c *Config) { c.Display.Theme = "neon" }},
		{"zero timeout", func(c *Config) { c.Timing.EventTimeoutMS = 0 }},
		{"negative fade", func(c *Config) { c.Timing.FadeMS = -1 }},
		{"bad transition", func(c *Config) { c.Navigation.DefaultTransition = "wipe" }},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }},
		{"metrics without addr", func(c *Config) { c.Metrics.Enabled = true; c.Metrics.Addr = " " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, verrors.IsCode(err, verrors.ErrCodeConfigInvalid))
		})
	}
}

func TestMergeYAML_Empty(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, mergeYAML(cfg, []byte("  \n")))
	assert.Equal(t, DefaultConfig(), cfg)
}

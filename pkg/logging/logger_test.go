package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONCarriesComponentAndCategory(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: LevelDebug, Format: FormatJSON, Component: "demo"})

	logger.WithCategory(CategoryScreen).Info("screen activated", "screen", 3)

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "screen activated", event["msg"])
	assert.Equal(t, "demo", event["component"])
	assert.Equal(t, "ui", event["system"])
	assert.Equal(t, "screen", event["category"])
	assert.EqualValues(t, 3, event["screen"])
}

func TestNew_MinLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: LevelWarn, Format: FormatText})

	logger.Info("dropped")
	logger.Warn("kept")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "kept")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw     string
		want    Level
		wantErr bool
	}{
		{raw: "debug", want: LevelDebug},
		{raw: " INFO ", want: LevelInfo},
		{raw: "", want: LevelInfo},
		{raw: "warning", want: LevelWarn},
		{raw: "error", want: LevelError},
		{raw: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseLevel(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "vista.log")
	logger, closer, err := NewFile(path, Options{Format: FormatText})
	require.NoError(t, err)

	logger.Info("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "hello"))
}

func TestNilLoggerWithCategory(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() {
		l.WithCategory(CategoryEffect).Info("ignored")
	})
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, []float64{0.5, 1, 2, 5, 10, 30, 60}, cfg.Playback.SpeedMultipliers)
	assert.Equal(t, 0.0, cfg.Playback.FallbackMinTime)
	assert.Equal(t, 60.0, cfg.Playback.FallbackMaxTime)
	assert.Equal(t, 3.2, cfg.Network.DefaultLaneWidth)
	assert.Equal(t, []string{"bus"}, cfg.Network.HighlightClasses)
	assert.Len(t, cfg.Render.DefaultCenter, 2)
	assert.Equal(t, uint8(255), cfg.Render.FixedAlpha)
}

func TestLoadAppConfigOverridesAndDefaults(t *testing.T) {
	path := writeConfig(t, `
playback:
  speedMultipliers: [1, 4]
network:
  defaultLaneWidth: 2.5
  highlightClasses: [bus, tram]
render:
  defaultZoom: 12
`)
	cfg, err := LoadAppConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 4}, cfg.Playback.SpeedMultipliers)
	assert.Equal(t, 2.5, cfg.Network.DefaultLaneWidth)
	assert.Equal(t, []string{"bus", "tram"}, cfg.Network.HighlightClasses)
	assert.Equal(t, 12.0, cfg.Render.DefaultZoom)
	// Untouched fields still get defaults.
	assert.Equal(t, 60.0, cfg.Playback.FallbackMaxTime)
	assert.Greater(t, cfg.Network.ArrowLength, 0.0)
}

func TestLoadAppConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid yaml", ":\nnot yaml: ["},
		{"negative width", "network:\n  defaultLaneWidth: -1\n"},
		{"negative speed multiplier", "playback:\n  speedMultipliers: [1, -2]\n"},
		{"inverted fallback window", "playback:\n  fallbackMinTime: 50\n  fallbackMaxTime: 10\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadAppConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	_, err := LoadAppConfig(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}

package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultConfig returns the configuration used when no config file is given.
func DefaultConfig() AppConfig {
	var cfg AppConfig
	applyDefaults(&cfg)
	return cfg
}

// LoadAppConfig loads and validates the application configuration from a YAML file.
// Missing fields fall back to defaults after validation.
func LoadAppConfig(path string) (AppConfig, error) {
	var cfg AppConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, "parse config")
	}
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return cfg, errors.Wrap(err, "validate config")
	}
	if cfg.Playback.FallbackMaxTime != 0 && cfg.Playback.FallbackMaxTime <= cfg.Playback.FallbackMinTime {
		return cfg, errors.Newf("fallbackMaxTime %g must exceed fallbackMinTime %g",
			cfg.Playback.FallbackMaxTime, cfg.Playback.FallbackMinTime)
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if len(cfg.Playback.SpeedMultipliers) == 0 {
		cfg.Playback.SpeedMultipliers = []float64{0.5, 1, 2, 5, 10, 30, 60}
	}
	if cfg.Playback.FallbackMaxTime == 0 && cfg.Playback.FallbackMinTime == 0 {
		cfg.Playback.FallbackMaxTime = 60
	}
	if cfg.Network.DefaultLaneWidth == 0 {
		cfg.Network.DefaultLaneWidth = 3.2
	}
	if len(cfg.Network.HighlightClasses) == 0 {
		cfg.Network.HighlightClasses = []string{"bus"}
	}
	if cfg.Network.ArrowLength == 0 {
		cfg.Network.ArrowLength = 0.00012
	}
	if cfg.Network.ArrowWidth == 0 {
		cfg.Network.ArrowWidth = 0.00008
	}
	if cfg.Network.StemLength == 0 {
		cfg.Network.StemLength = 0.0002
	}
	if len(cfg.Render.DefaultCenter) != 2 {
		cfg.Render.DefaultCenter = []float64{10.7522, 59.9139}
	}
	if cfg.Render.DefaultZoom == 0 {
		cfg.Render.DefaultZoom = 14
	}
	if cfg.Render.FixedAlpha == 0 {
		cfg.Render.FixedAlpha = 255
	}
}

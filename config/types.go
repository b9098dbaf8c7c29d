package config

// PlaybackConfig contains playback clock configuration
type PlaybackConfig struct {
	SpeedMultipliers []float64 `yaml:"speedMultipliers" validate:"omitempty,dive,gt=0"`
	FallbackMinTime  float64   `yaml:"fallbackMinTime"`
	FallbackMaxTime  float64   `yaml:"fallbackMaxTime"`
}

// NetworkConfig contains network geometry derivation configuration
type NetworkConfig struct {
	DefaultLaneWidth float64  `yaml:"defaultLaneWidth" validate:"omitempty,gt=0"`
	HighlightClasses []string `yaml:"highlightClasses"`
	ArrowLength      float64  `yaml:"arrowLength" validate:"omitempty,gt=0"`
	ArrowWidth       float64  `yaml:"arrowWidth" validate:"omitempty,gt=0"`
	StemLength       float64  `yaml:"stemLength" validate:"omitempty,gt=0"`
}

// RenderConfig contains rendering defaults shared by both view modes
type RenderConfig struct {
	DefaultCenter []float64 `yaml:"defaultCenter" validate:"omitempty,len=2"`
	DefaultZoom   float64   `yaml:"defaultZoom" validate:"omitempty,gt=0"`
	FixedAlpha    uint8     `yaml:"fixedAlpha"`
	ModelSeed     uint64    `yaml:"modelSeed"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Playback PlaybackConfig `yaml:"playback"`
	Network  NetworkConfig  `yaml:"network"`
	Render   RenderConfig   `yaml:"render"`
}

// Package config loads the viewer configuration from YAML.
//
// Configuration covers playback speed multipliers, network geometry
// derivation parameters (lane widths, highlighted vehicle classes, arrow
// marker sizing) and rendering defaults shared by both view modes. Every
// field has a sensible default; an absent config file is not an error for
// callers that use DefaultConfig.
package config

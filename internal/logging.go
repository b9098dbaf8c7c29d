// Package internal holds shared plumbing that is not part of the public API.
package internal

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the zap logger used across the module. Level is read from
// TRIP_REPLAY_LOG_LEVEL (debug|info|warn|error), defaulting to info.
func NewLogger() *zap.Logger {
	level := zapcore.InfoLevel
	switch strings.ToLower(os.Getenv("TRIP_REPLAY_LOG_LEVEL")) {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		level,
	)
	return zap.New(core)
}

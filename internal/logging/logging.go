// Package logging builds the zap logger for the CLI. Console output goes to
// stderr so generated messages on stdout stay pipeable.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger at info level, or debug level when debug is
// set. Callers should defer Sync.
func New(debug bool) *zap.Logger {
	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.DisableStacktrace = !debug

	logger, err := cfg.Build()
	if err != nil {
		// Construction only fails on bad output paths; stderr is valid.
		return zap.NewNop()
	}
	return logger
}

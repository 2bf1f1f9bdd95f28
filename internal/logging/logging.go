// Package logging constructs the zap logger shared by the scrubber and the
// stress tooling. Output goes to stderr so CSV reports on stdout stay
// machine-readable.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logger settings.
type Config struct {
	// Level is one of debug, info, warn, error.
	Level string `koanf:"level"`
	// Format is json or console.
	Format string `koanf:"format"`
}

// DefaultConfig returns info-level console logging.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "console"}
}

// New builds a logger from cfg. Unknown levels or formats are an error
// rather than a silent default; config typos should not downgrade
// observability unnoticed.
func New(cfg Config) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("logging: invalid level %q: %w", cfg.Level, err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	switch cfg.Format {
	case "json":
		zc.Encoding = "json"
	case "console", "":
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	default:
		return nil, fmt.Errorf("logging: invalid format %q", cfg.Format)
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build logger: %w", err)
	}
	return logger, nil
}

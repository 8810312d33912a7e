// Package logging builds the zap loggers used by the game and the leaderboard service.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the level and destination of a logger
type Options struct {
	Level string // debug, info, warn, error; empty means info
	Path  string // File path, "stderr" or "stdout"; empty means stderr
}

// New builds a JSON logger. The terminal belongs to tcell while playing,
// so the game logs to a file and the headless service to stderr.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		l, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		level = l
	}

	path := opts.Path
	if path == "" {
		path = "stderr"
	}

	config := zap.Config{
		Level:       zap.NewAtomicLevelAt(level),
		Development: false,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{path},
		ErrorOutputPaths: []string{path},
		DisableCaller:    true,
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// ReqField tags a log entry with an HTTP request id
func ReqField(id string) zap.Field {
	return zap.String("request_id", id)
}

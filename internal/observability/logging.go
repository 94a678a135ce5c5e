// Package observability builds the structured logger and the audited random
// source shared by every battle session.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/pocketbattle/internal/config"
	"github.com/cory-johannsen/pocketbattle/internal/game/dice"
)

// NewLogger creates a structured logger from the given logging configuration.
// Every entry carries service=name.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a configured zap.Logger or a non-nil error.
func NewLogger(name string, cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.InitialFields = map[string]any{"service": name}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// NewDiceSource wraps src so that each draw is logged at debug level when
// cfg.AuditDice is set; otherwise src is returned unchanged.
//
// Precondition: src and logger must be non-nil.
func NewDiceSource(cfg config.LoggingConfig, src dice.Source, logger *zap.Logger) dice.Source {
	if !cfg.AuditDice {
		return src
	}
	return dice.NewLoggedSource(src, logger.Named("dice"))
}

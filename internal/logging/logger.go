package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger with convenience methods.
type Logger struct {
	*zap.Logger
}

// Config defines logger configuration.
type Config struct {
	Level       string // "debug", "info", "warn", "error"
	Development bool
}

// New creates a logger for the configured level. Development mode uses
// console encoding with colored levels, production mode structured JSON.
func New(cfg Config) (*Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, err
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{"stdout"}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{Logger: logger}, nil
}

// NewNop creates a no-op logger, useful in tests.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// WithGame returns a child logger carrying game identity fields, so
// controller failures can be correlated with the game they targeted.
func (l *Logger) WithGame(id, name string) *Logger {
	return &Logger{Logger: l.Logger.With(zap.String("game_id", id), zap.String("game_name", name))}
}

// Package logger is a thin wrapper around a process-wide zap logger.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = zap.NewNop().Sugar()

// New builds a zap logger for the level ("debug", "info", "warn", "error") and format
// ("json" or "console").
func New(levelStr, format string) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	switch levelStr {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	}

	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
	}

	cfg.Level = zap.NewAtomicLevelAt(level)

	return cfg.Build()
}

// Init replaces the process-wide logger.
func Init(level, format string) error {
	l, err := New(level, format)
	if err != nil {
		return err
	}

	Set(l)

	return nil
}

// Set replaces the process-wide logger with l, typically a zaptest or observer logger.
func Set(l *zap.Logger) {
	log = l.Sugar()
}

func Sync() {
	log.Sync()
}

func Debugf(format string, args ...any) {
	log.Debugf(format, args...)
}

func Infof(format string, args ...any) {
	log.Infof(format, args...)
}

func Warnf(format string, args ...any) {
	log.Warnf(format, args...)
}

func Errorf(format string, args ...any) {
	log.Errorf(format, args...)
}

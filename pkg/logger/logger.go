// Package logger provides logging functionality for git-hooks-dispatch.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger interface provides logging capabilities.
type Logger interface {
	// Debugf logs a formatted diagnostic message.
	Debugf(format string, args ...interface{})
	// Infof logs a formatted message.
	Infof(format string, args ...interface{})
	// Warnf logs a formatted warning.
	Warnf(format string, args ...interface{})
	// Errorf logs a formatted error.
	Errorf(format string, args ...interface{})
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

// NewNoopLogger creates a new noop logger.
func NewNoopLogger() Logger {
	return &noopLogger{}
}

func (n *noopLogger) Debugf(_ string, _ ...interface{}) {}
func (n *noopLogger) Infof(_ string, _ ...interface{})  {}
func (n *noopLogger) Warnf(_ string, _ ...interface{})  {}
func (n *noopLogger) Errorf(_ string, _ ...interface{}) {}

// zapLogger writes leveled console logs through zap.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

// ParseLevel converts debug, info, warn or error to a zap level.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning", "":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.WarnLevel, fmt.Errorf("%w: %q", ErrInvalidLevel, level)
	}
}

// NewZapLogger creates a logger writing to out at the given level. Levels are
// colored only when out is a terminal.
func NewZapLogger(level zapcore.Level, out io.Writer) Logger {
	encoderConfig := zapcore.EncoderConfig{
		LevelKey:       "level",
		MessageKey:     "msg",
		NameKey:        "logger",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}
	if isTerminal(out) {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(out), level)
	return &zapLogger{sugar: zap.New(core).Named("git-hooks-dispatch").Sugar()}
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (z *zapLogger) Debugf(format string, args ...interface{}) { z.sugar.Debugf(format, args...) }
func (z *zapLogger) Infof(format string, args ...interface{})  { z.sugar.Infof(format, args...) }
func (z *zapLogger) Warnf(format string, args ...interface{})  { z.sugar.Warnf(format, args...) }
func (z *zapLogger) Errorf(format string, args ...interface{}) { z.sugar.Errorf(format, args...) }

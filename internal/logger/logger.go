// Package logger - zap logger construction.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger that writes debug and info entries to stdout and
// warnings and errors to stderr. Debug entries are dropped unless debug is set.
//
// Arguments:
//   - debug: Enables debug level output and the development encoder.
//
// Returns:
//   - *zap.Logger: The configured logger.
func New(debug bool) *zap.Logger {
	stdout := zapcore.Lock(os.Stdout)
	stderr := zapcore.Lock(os.Stderr)
	return zap.New(newCore(debug, stdout, stderr))
}

func newCore(debug bool, stdout, stderr zapcore.WriteSyncer) zapcore.Core {
	lowLevel := zap.LevelEnablerFunc(func(level zapcore.Level) bool {
		return level == zapcore.InfoLevel
	})
	encoderConfig := zap.NewProductionEncoderConfig()
	if debug {
		lowLevel = zap.LevelEnablerFunc(func(level zapcore.Level) bool {
			return level == zapcore.DebugLevel || level == zapcore.InfoLevel
		})
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	highLevel := zap.LevelEnablerFunc(func(level zapcore.Level) bool {
		return level >= zapcore.WarnLevel
	})

	return zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), stdout, lowLevel),
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), stderr, highLevel),
	)
}

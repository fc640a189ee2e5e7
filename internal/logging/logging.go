package logging

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a console logger on stderr. Verbose enables debug level and
// caller annotations; otherwise only warnings and errors are shown.
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.DisableCaller = !verbose
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")

	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	return cfg.Build()
}

// Step starts timing a named phase. Calling the returned func logs it at
// debug level with its duration.
func Step(log *zap.Logger, name string, fields ...zap.Field) func() {
	start := time.Now()
	return func() {
		log.Debug(name, append(fields, zap.Duration("took", time.Since(start)))...)
	}
}

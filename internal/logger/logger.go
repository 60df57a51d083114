// Package logger provides the shared zap logger and a small metrics tracker
// for the reminder pipeline.
//
// Logging is structured JSON on stdout so cron-captured output stays
// machine-parseable. Metrics track counters (checks run, messages sent) and
// timings (Jira fetch, Telegram send) that feed the JSON run summary.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger

// Init initializes the global logger with the given log level.
func Init(level string) error {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return err
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	// Stack traces are noise for a single-shot run
	cfg.EncoderConfig.StacktraceKey = ""

	logger, err := cfg.Build()
	if err != nil {
		return err
	}

	log = logger
	return nil
}

// L returns the global logger, creating a default production logger if Init
// has not been called yet.
func L() *zap.Logger {
	if log == nil {
		var err error
		log, err = zap.NewProduction(zap.WithCaller(false))
		if err != nil {
			panic(err)
		}
	}
	return log
}

// Sync flushes any buffered log entries.
func Sync() error {
	return L().Sync()
}

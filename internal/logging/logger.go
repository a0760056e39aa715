package logging

import (
	"fmt"

	"github.com/Sushmit94/solana-project/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// InitLogger builds the daemon logger from the logging section
func InitLogger(cfg *config.Config) (*zap.Logger, error) {
	lc := cfg.GetLogging()
	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	return build(level, lc.Format == "json", "stdout")
}

// InitConsoleLogger builds a CLI logger. It writes to stderr so command
// output on stdout stays machine readable.
func InitConsoleLogger(verbose bool, jsonFormat bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	return build(level, jsonFormat, "stderr")
}

func build(level zapcore.Level, jsonFormat bool, sink string) (*zap.Logger, error) {
	var lc zap.Config
	if jsonFormat {
		lc = zap.NewProductionConfig()
		lc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		lc = zap.NewDevelopmentConfig()
		lc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	lc.Level = zap.NewAtomicLevelAt(level)
	lc.OutputPaths = []string{sink}
	lc.ErrorOutputPaths = []string{"stderr"}

	logger, err := lc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.With(zap.String("service", "threat-dashboard")), nil
}

package utils

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logger *zap.Logger

// InitLogger builds the global zap logger. Production uses JSON output,
// development a coloured console. A non-empty file adds a rotating
// JSON log next to stdout.
func InitLogger(production bool, file string) error {
	var config zap.Config
	if production {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if file == "" {
		built, err := config.Build()
		if err != nil {
			return err
		}
		logger = built
	} else {
		rotator := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
		}
		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(rotator),
				config.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(config.EncoderConfig),
				zapcore.AddSync(os.Stdout),
				config.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller())
	}

	zap.ReplaceGlobals(logger)
	return nil
}

// SyncLogger flushes any buffered log entries.
func SyncLogger() {
	if logger != nil {
		_ = logger.Sync()
	}
}

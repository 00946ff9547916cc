package logger

import (
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var sugar *zap.SugaredLogger

func Init() {
	var cfg zap.Config

	if os.Getenv("APP_ENV") == "production" {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	base, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	sugar = base.Sugar()
}

func get() *zap.SugaredLogger {
	if sugar == nil {
		Init()
	}
	return sugar
}

// Info logs a message with optional key-value pairs.
func Info(msg string, kv ...interface{}) {
	get().Infow(msg, kv...)
}

func Infof(format string, v ...interface{}) {
	get().Infof(format, v...)
}

func Error(msg string, kv ...interface{}) {
	get().Errorw(msg, kv...)
}

func Errorf(format string, v ...interface{}) {
	get().Errorf(format, v...)
}

func Debug(msg string, kv ...interface{}) {
	get().Debugw(msg, kv...)
}

func Debugf(format string, v ...interface{}) {
	get().Debugf(format, v...)
}

func Fatal(msg string) {
	get().Fatal(msg)
}

func Fatalf(format string, v ...interface{}) {
	get().Fatalf(format, v...)
}

// Sync flushes buffered log entries. Call before process exit.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}

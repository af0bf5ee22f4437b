package common

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// logger is swapped by the test helpers while request goroutines read it.
var (
	logger atomic.Pointer[zap.Logger]
	once   sync.Once
)

func getLogger() *zap.Logger {
	once.Do(initLogger)
	return logger.Load()
}

func GetLogger() *zap.Logger {
	return getLogger().Named("default")
}

func GetLoggerWith(name string, fields ...zap.Field) *zap.Logger {
	return getLogger().Named(name).With(fields...)
}

// GetCategoryLogger is the policy core shorthand for a named logger tagged
// with a category field.
func GetCategoryLogger(name string, category string) *zap.Logger {
	return GetLoggerWith(name, zap.String(LoggerFieldCategory, category))
}

func envInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}

func logsDirectory() string {
	if dir, found := os.LookupEnv(EnvKeyMinuteLogDir); found && dir != "" {
		return dir
	}

	dir, err := os.Getwd()
	if err != nil {
		log.Fatalf("Error getting current directory: %v", err)
	}
	return filepath.Join(dir, "logs")
}

func initLogger() {
	logsDir := logsDirectory()
	logsFile := filepath.Join(logsDir, "minute.log")

	if err := os.MkdirAll(logsDir, os.ModePerm); err != nil {
		log.Fatalf("Error find/create logs directory: %v", err)
	}

	logFile := &lumberjack.Logger{
		Filename:   logsFile,
		MaxSize:    envInt(EnvKeyMinuteLogMaxSizeMB, 10), // megabytes
		MaxBackups: envInt(EnvKeyMinuteLogMaxBackups, 5),
		MaxAge:     28,   // days
		Compress:   true, // gzip
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(logFile),
		zap.InfoLevel,
	)

	if IsProduction() {
		logger.Store(zap.New(fileCore, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)))
	} else {
		consoleEncoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		consoleCore := zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout), zap.DebugLevel)

		combinedCore := zapcore.NewTee(fileCore, consoleCore)
		logger.Store(zap.New(combinedCore, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)))
	}
}

func SetTestCaptureLogger(buf *bytes.Buffer, level zapcore.Level) {
	_ = GetLogger()

	writer := zapcore.AddSync(buf)
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	core := zapcore.NewCore(encoder, writer, level)
	logger.Store(zap.New(core))
}

func SetTestLoggerNop() {
	_ = GetLogger()

	logger.Store(zap.NewNop())
}

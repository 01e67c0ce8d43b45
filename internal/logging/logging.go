package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	level  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	logger = newLogger()
)

func newLogger() *zap.SugaredLogger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stderr),
		level,
	)
	return zap.New(core).Sugar()
}

// SetLevel sets the global log level from a config string.
// Unknown values fall back to info.
func SetLevel(name string) {
	switch name {
	case "debug":
		level.SetLevel(zapcore.DebugLevel)
	case "warn":
		level.SetLevel(zapcore.WarnLevel)
	case "error":
		level.SetLevel(zapcore.ErrorLevel)
	default:
		level.SetLevel(zapcore.InfoLevel)
	}
}

// SetVerbose enables verbose (debug) logging.
func SetVerbose(verbose bool) {
	if verbose {
		SetLevel("debug")
	}
}

// Debug logs a debug message.
func Debug(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// Info logs an info message.
func Info(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// Warn logs a warning message.
func Warn(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

// Error logs an error message.
func Error(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}

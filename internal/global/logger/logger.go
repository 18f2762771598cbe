package logger

import "github.com/Mihailob5017/codegames/internal/adapter/logging"

var Logger = logging.NewZapLogger()

// Configure replaces the package logger, e.g. once the debug flag is known
func Configure(debug bool) {
	Logger = logging.NewZapLoggerWithLevel(debug)
}

func Info(msg string, args ...interface{}) {
	Logger.Info(msg, args...)
}

func Error(msg string, args ...interface{}) {
	Logger.Error(msg, args...)
}

func Debug(msg string, args ...interface{}) {
	Logger.Debug(msg, args...)
}

func Warn(msg string, args ...interface{}) {
	Logger.Warn(msg, args...)
}

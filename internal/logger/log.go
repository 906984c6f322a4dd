// Package logger configures the process-wide structured logger.
package logger

import (
	"os"

	"github.com/phuslu/log"
)

// Setup configures the default logger to write console lines to stderr at
// the requested level. Output stays on stderr so report text and JSON on
// stdout remain machine-consumable.
func Setup(level string) {
	log.DefaultLogger = log.Logger{
		Level:      parseLogLevel(level),
		TimeFormat: "15:04:05",
		Writer: &log.ConsoleWriter{
			Writer:      os.Stderr,
			ColorOutput: false,
		},
	}
}

// parseLogLevel converts a level string to log.Level, defaulting to info.
func parseLogLevel(levelStr string) log.Level {
	switch levelStr {
	case "trace":
		return log.TraceLevel
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

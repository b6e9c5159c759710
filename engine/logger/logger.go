package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	once      sync.Once
	singleton *log.Logger
)

func get() *log.Logger {
	once.Do(func() {
		singleton = log.NewWithOptions(os.Stderr, log.Options{
			ReportCaller:    true,
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Prefix:          "aviator",
		})
		singleton.SetLevel(log.InfoLevel)
		// Callers go through the package helpers, so skip one extra frame.
		singleton.SetCallerOffset(1)
	})
	return singleton
}

// SetLevel changes the minimum level that is written. Unknown names leave the level unchanged.
//
// Parameters:
//   - level: one of "debug", "info", "warn", "error" or "fatal"
//
// Returns:
//   - error: an error if the level name is not recognized
func SetLevel(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	get().SetLevel(lvl)
	return nil
}

// SetOutput redirects log output, typically to a buffer in tests.
//
// Parameters:
//   - w: the destination writer
func SetOutput(w io.Writer) {
	get().SetOutput(w)
}

func Debug(msg string, args ...any) {
	get().Debugf(msg, args...)
}

func Info(msg string, args ...any) {
	get().Infof(msg, args...)
}

func Warn(msg string, args ...any) {
	get().Warnf(msg, args...)
}

func Error(msg string, args ...any) {
	get().Errorf(msg, args...)
}

// Fatal logs at fatal level and exits the process with status 1.
func Fatal(msg string, args ...any) {
	get().Fatalf(msg, args...)
}

package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Process-wide leveled logger for the hosts service.
// - JSON lines via zerolog
// - Debug/Info/Warn/Error/Fatal variants and Init(level)
// - *w variants attach structured fields

var (
	mu     sync.RWMutex
	logger = newLogger(os.Stdout)
	level  = zerolog.InfoLevel
)

func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Str("service", "hosts-api").Logger()
}

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal).
// Call early during startup. Default level is Info.
func Init(l string) {
	mu.Lock()
	defer mu.Unlock()
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn", "warning":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	case "fatal":
		level = zerolog.FatalLevel
	default:
		level = zerolog.InfoLevel
	}
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w)
}

func event(l zerolog.Level) *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	if l < level {
		return nil
	}
	return logger.WithLevel(l)
}

func Debugf(format string, v ...interface{}) { event(zerolog.DebugLevel).Msgf(format, v...) }
func Infof(format string, v ...interface{})  { event(zerolog.InfoLevel).Msgf(format, v...) }
func Warnf(format string, v ...interface{})  { event(zerolog.WarnLevel).Msgf(format, v...) }
func Errorf(format string, v ...interface{}) { event(zerolog.ErrorLevel).Msgf(format, v...) }

func Fatalf(format string, v ...interface{}) {
	mu.RLock()
	l := logger
	mu.RUnlock()
	l.WithLevel(zerolog.FatalLevel).Msgf(format, v...)
	os.Exit(1)
}

// Infow, Warnw and Errorw log msg with structured fields.
func Infow(msg string, fields map[string]interface{}) {
	event(zerolog.InfoLevel).Fields(fields).Msg(msg)
}

func Warnw(msg string, fields map[string]interface{}) {
	event(zerolog.WarnLevel).Fields(fields).Msg(msg)
}

func Errorw(msg string, fields map[string]interface{}) {
	event(zerolog.ErrorLevel).Fields(fields).Msg(msg)
}

// Debug/Info/Warn/Error helpers that accept a single string
func Debug(v string) { Debugf("%s", v) }
func Info(v string)  { Infof("%s", v) }
func Warn(v string)  { Warnf("%s", v) }
func Error(v string) { Errorf("%s", v) }

// LevelString returns the current level as text.
func LevelString() string {
	mu.RLock()
	defer mu.RUnlock()
	return level.String()
}

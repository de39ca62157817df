package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu  sync.RWMutex
	log = zerolog.New(os.Stdout).With().Timestamp().Logger()
)

// Init configures the package logger (called once from main).
// Development environments get human readable console output, everything else JSON.
func Init(env, level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if strings.EqualFold(env, "development") || strings.EqualFold(env, "dev") {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	SetOutput(out, lvl)
}

// SetOutput swaps the destination and level. Tests use it to capture output.
func SetOutput(w io.Writer, lvl zerolog.Level) {
	zerolog.DurationFieldUnit = time.Millisecond

	l := zerolog.New(w).Level(lvl).With().Timestamp().Logger()

	mu.Lock()
	log = l
	mu.Unlock()
}

// Get returns the underlying zerolog logger for structured fields.
func Get() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := log
	return &l
}

func Infof(format string, v ...any) {
	Get().Info().Msgf(format, v...)
}

func Warnf(format string, v ...any) {
	Get().Warn().Msgf(format, v...)
}

func Errorf(format string, v ...any) {
	Get().Error().Msgf(format, v...)
}

func Debugf(format string, v ...any) {
	Get().Debug().Msgf(format, v...)
}

func Fatalf(format string, v ...any) {
	Get().Fatal().Msgf(format, v...)
}

// Package logging configures the process-wide zerolog logger used by every
// other package through github.com/rs/zerolog/log.
package logging

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultLevel is used when no level is configured
const DefaultLevel = zerolog.InfoLevel

// Options controls logger construction
type Options struct {
	// Level is a zerolog level name ("debug", "info", "warn", ...). Empty means DefaultLevel.
	Level string
	// Out defaults to os.Stderr.
	Out io.Writer
	// JSON writes raw JSON lines instead of the human console format.
	JSON    bool
	NoColor bool
}

// New builds a logger from opts without touching global state
func New(opts Options) (zerolog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	if !opts.JSON {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly, NoColor: opts.NoColor}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

// Setup installs the logger built from opts as the global logger. Output of
// the standard library logger, used by the download library, is routed
// through it at debug level.
func Setup(opts Options) error {
	logger, err := New(opts)
	if err != nil {
		return err
	}
	log.Logger = logger
	zerolog.DefaultContextLogger = &log.Logger
	stdlog.SetFlags(0)
	stdlog.SetOutput(StdWriter(logger))
	return nil
}

// StdWriter adapts logger into an io.Writer that emits each write as a
// debug event, for use with the standard library logger.
func StdWriter(logger zerolog.Logger) io.Writer {
	return stdWriter{logger: logger}
}

type stdWriter struct {
	logger zerolog.Logger
}

func (w stdWriter) Write(p []byte) (int, error) {
	msg := strings.TrimRight(string(p), "\n")
	if msg != "" {
		w.logger.Debug().Str("source", "stdlog").Msg(msg)
	}
	return len(p), nil
}

// ParseLevel parses a level name, accepting "" as DefaultLevel
func ParseLevel(name string) (zerolog.Level, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return DefaultLevel, nil
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

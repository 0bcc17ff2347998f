// Package logging builds the zerolog loggers used by the command line tools.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Options configures a logger.
type Options struct {
	Level   string    // debug, info, warn, error; default info
	Format  string    // "console" or "json"; default console
	Output  io.Writer // default stderr
	Verbose bool      // forces debug level
}

// New creates a logger with the given options.
func New(opts Options) (*zerolog.Logger, error) {
	var output io.Writer = os.Stderr
	if opts.Output != nil {
		output = opts.Output
	}

	switch strings.ToLower(opts.Format) {
	case "", "console", "pretty":
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	case "json":
	default:
		return nil, errors.Errorf("unknown log format '%s'", opts.Format)
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		var err error
		level, err = zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, errors.Wrapf(err, "bad log level")
		}
	}
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &logger, nil
}

// Nop returns a logger that discards everything.
func Nop() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

// WithComponent returns a logger with a component field
func WithComponent(l *zerolog.Logger, component string) *zerolog.Logger {
	logger := l.With().Str("component", component).Logger()
	return &logger
}

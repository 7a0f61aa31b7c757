package config

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/lgbarn/aichess-go/internal/errors"
)

// LogFormat selects how log events are written.
type LogFormat string

const (
	ConsoleLog LogFormat = "console" // human readable
	JSONLog    LogFormat = "json"    // one JSON object per line
)

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is a zerolog level name (debug, info, warn, error)
	Level string

	Format LogFormat

	// Output receives log events
	Output io.Writer
}

// NewLogConfig creates a LogConfig with default values.
func NewLogConfig() *LogConfig {
	return &LogConfig{
		Level:  "info",
		Format: ConsoleLog,
		Output: os.Stderr,
	}
}

// Validate checks the logging settings.
func (c *LogConfig) Validate() error {
	if _, err := zerolog.ParseLevel(c.Level); err != nil {
		return errors.Wrapf(errors.ErrInvalidConfig, "log level %q", c.Level)
	}
	if c.Format != ConsoleLog && c.Format != JSONLog {
		return errors.Wrapf(errors.ErrInvalidConfig, "unknown log format %q", c.Format)
	}
	return nil
}

// NewLogger builds the logger described by c.
func (c *LogConfig) NewLogger() (zerolog.Logger, error) {
	if err := c.Validate(); err != nil {
		return zerolog.Nop(), err
	}
	level, _ := zerolog.ParseLevel(c.Level)

	out := c.Output
	if out == nil {
		out = os.Stderr
	}
	if c.Format == ConsoleLog {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

// Package config provides configuration for aichess.
package config

import (
	"fmt"

	"github.com/lgbarn/aichess-go/internal/errors"
)

// Mode selects the front end.
type Mode string

const (
	WebMode     Mode = "web"     // HTTP server with the browser board
	ConsoleMode Mode = "console" // line based play on stdin/stdout
	PerftMode   Mode = "perft"   // move generation counts
)

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case WebMode, ConsoleMode, PerftMode:
		return m, nil
	}
	return "", errors.Wrapf(errors.ErrInvalidConfig, "unknown mode %q", s)
}

// Config holds all program configuration, grouped by concern.
type Config struct {
	Mode     Mode
	Server   *ServerConfig
	Opponent *OpponentConfig
	Log      *LogConfig
	Perft    *PerftConfig
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Mode:     WebMode,
		Server:   NewServerConfig(),
		Opponent: NewOpponentConfig(),
		Log:      NewLogConfig(),
		Perft:    NewPerftConfig(),
	}
}

// Validate checks every section. Errors wrap errors.ErrInvalidConfig.
func (c *Config) Validate() error {
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	sections := []struct {
		name     string
		validate func() error
	}{
		{"server", c.Server.Validate},
		{"opponent", c.Opponent.Validate},
		{"log", c.Log.Validate},
		{"perft", c.Perft.Validate},
	}
	for _, s := range sections {
		if err := s.validate(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

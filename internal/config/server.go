package config

import (
	"time"

	"github.com/lgbarn/aichess-go/internal/errors"
)

// ServerConfig holds settings for the web front end.
type ServerConfig struct {
	// Addr is the listen address
	Addr string

	// MaxSessions caps live games; the least recently used is evicted
	MaxSessions int

	// ReadTimeout and WriteTimeout bound a single request
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout time.Duration
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:            ":5000",
		MaxSessions:     1024,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Validate checks the server settings.
func (c *ServerConfig) Validate() error {
	if c.Addr == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "empty listen address")
	}
	if c.MaxSessions < 1 {
		return errors.Wrapf(errors.ErrInvalidConfig, "max sessions %d must be positive", c.MaxSessions)
	}
	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 || c.ShutdownTimeout <= 0 {
		return errors.Wrap(errors.ErrInvalidConfig, "timeouts must be positive")
	}
	return nil
}

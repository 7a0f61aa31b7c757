package config

import (
	"io"
	"time"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build validates and returns the built Config.
func (b *ConfigBuilder) Build() (*Config, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}
	return b.cfg, nil
}

// WithMode sets the front end.
func (b *ConfigBuilder) WithMode(mode Mode) *ConfigBuilder {
	b.cfg.Mode = mode
	return b
}

// WithAddr sets the listen address.
func (b *ConfigBuilder) WithAddr(addr string) *ConfigBuilder {
	b.cfg.Server.Addr = addr
	return b
}

// WithMaxSessions sets the live game limit.
func (b *ConfigBuilder) WithMaxSessions(n int) *ConfigBuilder {
	b.cfg.Server.MaxSessions = n
	return b
}

// WithRandomOpponent selects the random opponent with the given seed.
func (b *ConfigBuilder) WithRandomOpponent(seed int64) *ConfigBuilder {
	b.cfg.Opponent.Kind = RandomOpponent
	b.cfg.Opponent.Seed = seed
	return b
}

// WithUCIOpponent selects an external engine.
func (b *ConfigBuilder) WithUCIOpponent(path string, moveTime time.Duration) *ConfigBuilder {
	b.cfg.Opponent.Kind = UCIOpponent
	b.cfg.Opponent.EnginePath = path
	b.cfg.Opponent.MoveTime = moveTime
	return b
}

// WithLogLevel sets the log level.
func (b *ConfigBuilder) WithLogLevel(level string) *ConfigBuilder {
	b.cfg.Log.Level = level
	return b
}

// WithLogFormat sets the log format.
func (b *ConfigBuilder) WithLogFormat(format LogFormat) *ConfigBuilder {
	b.cfg.Log.Format = format
	return b
}

// WithLogOutput sets the log destination.
func (b *ConfigBuilder) WithLogOutput(w io.Writer) *ConfigBuilder {
	b.cfg.Log.Output = w
	return b
}

// WithPerft sets the perft depth and root position.
func (b *ConfigBuilder) WithPerft(depth int, fen string) *ConfigBuilder {
	b.cfg.Perft.Depth = depth
	b.cfg.Perft.FEN = fen
	return b
}

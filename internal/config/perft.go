package config

import (
	"github.com/lgbarn/aichess-go/internal/errors"
)

// MaxPerftDepth bounds perft runs from the command line.
const MaxPerftDepth = 8

// PerftConfig holds settings for perft mode.
type PerftConfig struct {
	Depth int

	// FEN is the root position; empty means the initial position
	FEN string
}

// NewPerftConfig creates a PerftConfig with default values.
func NewPerftConfig() *PerftConfig {
	return &PerftConfig{Depth: 4}
}

// Validate checks the perft settings. The FEN itself is checked when the
// board is built.
func (c *PerftConfig) Validate() error {
	if c.Depth < 1 || c.Depth > MaxPerftDepth {
		return errors.Wrapf(errors.ErrInvalidConfig, "perft depth %d outside 1..%d", c.Depth, MaxPerftDepth)
	}
	return nil
}

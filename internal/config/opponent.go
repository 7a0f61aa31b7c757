package config

import (
	"time"

	"github.com/lgbarn/aichess-go/internal/errors"
)

// OpponentKind selects the move source for the computer side.
type OpponentKind string

const (
	RandomOpponent OpponentKind = "random" // uniform choice among legal moves
	UCIOpponent    OpponentKind = "uci"    // external engine over UCI
)

// OpponentConfig holds settings for the computer opponent.
type OpponentConfig struct {
	Kind OpponentKind

	// EnginePath is the UCI engine binary (uci only)
	EnginePath string

	// MoveTime is the thinking time per move (uci only)
	MoveTime time.Duration

	// Seed seeds the random opponent; 0 picks a time based seed
	Seed int64
}

// NewOpponentConfig creates an OpponentConfig with default values.
func NewOpponentConfig() *OpponentConfig {
	return &OpponentConfig{
		Kind:       RandomOpponent,
		EnginePath: "stockfish",
		MoveTime:   500 * time.Millisecond,
	}
}

// Validate checks the opponent settings.
func (c *OpponentConfig) Validate() error {
	switch c.Kind {
	case RandomOpponent:
		return nil
	case UCIOpponent:
		if c.EnginePath == "" {
			return errors.Wrap(errors.ErrInvalidConfig, "uci opponent needs an engine path")
		}
		if c.MoveTime <= 0 {
			return errors.Wrapf(errors.ErrInvalidConfig, "move time %v must be positive", c.MoveTime)
		}
		return nil
	default:
		return errors.Wrapf(errors.ErrInvalidConfig, "unknown opponent %q", c.Kind)
	}
}

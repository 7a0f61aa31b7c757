// Package opponent supplies moves for the computer side: a random mover
// and a bridge to an external UCI engine.
package opponent

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/lgbarn/aichess-go/internal/chess"
	"github.com/lgbarn/aichess-go/internal/config"
	"github.com/lgbarn/aichess-go/internal/errors"
)

// Opponent chooses a move for the side to move on board. It must not
// modify board. An opponent with nothing to play returns errors.ErrNoMove.
type Opponent interface {
	ChooseMove(ctx context.Context, board *chess.Board) (chess.Move, error)
}

// GameStarter is implemented by opponents that keep state between moves
// and must be told when a fresh game begins.
type GameStarter interface {
	NewGame(ctx context.Context) error
}

// StartGame notifies opp of a new game when it implements GameStarter.
func StartGame(ctx context.Context, opp Opponent) error {
	if gs, ok := opp.(GameStarter); ok {
		return gs.NewGame(ctx)
	}
	return nil
}

// New builds the opponent described by cfg. Opponents that hold external
// resources also implement io.Closer.
func New(ctx context.Context, cfg *config.OpponentConfig, log zerolog.Logger) (Opponent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Kind {
	case config.UCIOpponent:
		return StartUCI(ctx, cfg.EnginePath, UCIOptions{MoveTime: cfg.MoveTime, Logger: log})
	default:
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		log.Debug().Int64("seed", seed).Msg("random opponent")
		return NewRandom(seed), nil
	}
}

func noMove(board *chess.Board) error {
	return errors.Wrapf(errors.ErrNoMove, "%v to move", board.ToMove)
}

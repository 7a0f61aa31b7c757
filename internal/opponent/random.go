package opponent

import (
	"context"
	"math/rand"
	"sync"

	"github.com/lgbarn/aichess-go/internal/chess"
	"github.com/lgbarn/aichess-go/internal/engine"
)

// Random plays a uniformly chosen legal move.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom creates a Random opponent. Equal seeds give equal games.
func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

// ChooseMove implements Opponent.
func (r *Random) ChooseMove(ctx context.Context, board *chess.Board) (chess.Move, error) {
	if err := ctx.Err(); err != nil {
		return chess.Move{}, err
	}
	moves := engine.LegalMoves(board)
	if len(moves) == 0 {
		return chess.Move{}, noMove(board)
	}
	r.mu.Lock()
	i := r.rng.Intn(len(moves))
	r.mu.Unlock()
	return moves[i], nil
}

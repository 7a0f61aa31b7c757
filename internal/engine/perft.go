package engine

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/lgbarn/aichess-go/internal/chess"
)

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(board *chess.Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	return perft(board.Copy(), depth)
}

func perft(board *chess.Board, depth int) uint64 {
	moves := LegalMoves(board)
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		undo := MakeMove(board, m)
		nodes += perft(board, depth-1)
		UnmakeMove(board, undo)
	}
	return nodes
}

// PerftDivide returns the perft count below each root move, keyed by
// coordinate token. Root moves are searched concurrently, each on its own
// copy of the board.
func PerftDivide(ctx context.Context, board *chess.Board, depth int) (map[string]uint64, error) {
	result := make(map[string]uint64)
	if depth <= 0 {
		return result, nil
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	for _, m := range LegalMoves(board) {
		m := m
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			child := board.Copy()
			MakeMove(child, m)
			nodes := Perft(child, depth-1)

			mu.Lock()
			result[m.String()] = nodes
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

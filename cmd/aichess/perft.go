package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/lgbarn/aichess-go/internal/config"
	"github.com/lgbarn/aichess-go/internal/engine"
)

// runPerft prints the node count below each root move, then the total.
func runPerft(ctx context.Context, cfg *config.PerftConfig, out io.Writer) error {
	fen := cfg.FEN
	if fen == "" {
		fen = engine.InitialFEN
	}
	board, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		return err
	}

	start := time.Now()
	divide, err := engine.PerftDivide(ctx, board, cfg.Depth)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	moves := make([]string, 0, len(divide))
	for m := range divide {
		moves = append(moves, m)
	}
	sort.Strings(moves)

	var total uint64
	for _, m := range moves {
		fmt.Fprintf(out, "%s: %d\n", m, divide[m])
		total += divide[m]
	}
	fmt.Fprintf(out, "\nNodes searched: %d\n", total)
	fmt.Fprintf(out, "Depth %d in %v\n", cfg.Depth, elapsed.Round(time.Millisecond))
	return nil
}

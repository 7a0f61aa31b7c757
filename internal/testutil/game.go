package testutil

import (
	"testing"

	"github.com/lgbarn/aichess-go/internal/chess"
	"github.com/lgbarn/aichess-go/internal/engine"
)

// Positions shared by several test packages.
const (
	FoolsMateFEN = "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"
	StalemateFEN = "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"
	KiwipeteFEN  = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
)

// MustBoard parses fen and calls t.Fatal if it is invalid.
func MustBoard(t testing.TB, fen string) *chess.Board {
	t.Helper()
	board, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		t.Fatalf("NewBoardFromFEN(%q) failed: %v", fen, err)
	}
	return board
}

// MustMove parses a UCI token against board and calls t.Fatal on error.
func MustMove(t testing.TB, board *chess.Board, token string) chess.Move {
	t.Helper()
	move, err := engine.ParseMoveToken(token, board)
	if err != nil {
		t.Fatalf("ParseMoveToken(%q) failed: %v", token, err)
	}
	return move
}

// MustPlay applies tokens in order starting from board and returns the
// final position. board itself is not modified.
func MustPlay(t testing.TB, board *chess.Board, tokens ...string) *chess.Board {
	t.Helper()
	for _, token := range tokens {
		next, err := engine.Apply(board, MustMove(t, board, token))
		if err != nil {
			t.Fatalf("Apply(%q) failed: %v", token, err)
		}
		board = next
	}
	return board
}

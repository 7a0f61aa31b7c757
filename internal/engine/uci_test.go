package engine

import (
	"testing"

	"github.com/lgbarn/aichess-go/internal/chess"
	"github.com/lgbarn/aichess-go/internal/errors"
)

func TestParseMoveToken(t *testing.T) {
	promoBoard := "8/4P3/8/8/8/8/k7/4K3 w - - 0 1"

	tests := []struct {
		name  string
		token string
		fen   string
		want  chess.Move
	}{
		{"pawn push", "e2e4", InitialFEN, chess.NewMove(chess.E2, chess.E4)},
		{"knight", "g1f3", InitialFEN, chess.NewMove(chess.G1, chess.F3)},
		{"corner to corner", "a1h8", InitialFEN, chess.NewMove(chess.A1, chess.H8)},
		{"explicit promotion", "e7e8n", promoBoard, chess.Move{From: chess.E7, To: chess.E8, Promotion: chess.Knight}},
		{"uppercase promotion letter", "e7e8R", promoBoard, chess.Move{From: chess.E7, To: chess.E8, Promotion: chess.Rook}},
		{"promotion defaults to queen", "e7e8", promoBoard, chess.Move{From: chess.E7, To: chess.E8, Promotion: chess.Queen}},
		{"no default for non-pawns", "e1e2", promoBoard, chess.NewMove(chess.E1, chess.E2)},
		{"null move", "0000", InitialFEN, chess.NullMove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMoveToken(tt.token, mustBoard(t, tt.fen))
			if err != nil {
				t.Fatalf("ParseMoveToken(%q) error = %v", tt.token, err)
			}
			if got != tt.want {
				t.Errorf("ParseMoveToken(%q) = %+v, want %+v", tt.token, got, tt.want)
			}
		})
	}
}

func TestParseMoveToken_WithoutBoard(t *testing.T) {
	got, err := ParseMoveToken("e7e8", nil)
	if err != nil {
		t.Fatalf("ParseMoveToken() error = %v", err)
	}
	if got.Promotion != chess.NoKind {
		t.Errorf("Promotion = %v, want none without a board", got.Promotion)
	}
}

func TestParseMoveToken_Errors(t *testing.T) {
	tests := []struct {
		token      string
		wantColumn int
	}{
		{"", 0},
		{"e2", 0},
		{"e2e4qq", 0},
		{"i2e4", 1},
		{"e9e4", 2},
		{"e2z4", 3},
		{"e2e0", 4},
		{"e7e8k", 5},
		{"e7e8x", 5},
		{"e2e2", 0},
		{"E2E4", 1},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			_, err := ParseMoveToken(tt.token, NewInitialBoard())
			if !errors.Is(err, errors.ErrParse) {
				t.Fatalf("ParseMoveToken(%q) error = %v, want ErrParse", tt.token, err)
			}
			var parseErr *errors.ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("ParseMoveToken(%q) error is %T, want *ParseError", tt.token, err)
			}
			if parseErr.Column != tt.wantColumn {
				t.Errorf("Column = %d, want %d", parseErr.Column, tt.wantColumn)
			}
			if parseErr.Input != tt.token {
				t.Errorf("Input = %q, want %q", parseErr.Input, tt.token)
			}
		})
	}
}

// A well-formed token is never a parse error, even when the move is
// illegal. Legality is reported by Apply.
func TestParseMoveToken_ShapeOnly(t *testing.T) {
	board := NewInitialBoard()
	move, err := ParseMoveToken("e2e5", board)
	if err != nil {
		t.Fatalf("ParseMoveToken(e2e5) error = %v", err)
	}
	if _, err := Apply(board, move); !errors.Is(err, errors.ErrIllegalMove) {
		t.Errorf("Apply(e2e5) error = %v, want ErrIllegalMove", err)
	}
}

func TestFormatMoveToken_RoundTrip(t *testing.T) {
	board := mustBoard(t, "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1")
	for _, m := range LegalMoves(board) {
		token := FormatMoveToken(m)
		got, err := ParseMoveToken(token, board)
		if err != nil {
			t.Fatalf("ParseMoveToken(%q) error = %v", token, err)
		}
		if got != m {
			t.Errorf("round trip of %q = %+v, want %+v", token, got, m)
		}
	}
}

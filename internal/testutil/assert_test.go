package testutil

import (
	"testing"

	"github.com/lgbarn/aichess-go/internal/chess"
	"github.com/lgbarn/aichess-go/internal/engine"
	"github.com/lgbarn/aichess-go/internal/errors"
)

// Failing assertions cannot be observed without a fake *testing.T, so
// these cover the passing paths and the pure helpers.

func TestAssertEqual_Success(t *testing.T) {
	AssertEqual(t, "e2e4", "e2e4")
	AssertEqual(t, chess.NewMove(chess.E2, chess.E4), chess.NewMove(chess.E2, chess.E4))
	AssertEqual(t, []string{"a", "b"}, []string{"a", "b"}, "value should be %d", 42)
}

func TestAssertNoError_Success(t *testing.T) {
	AssertNoError(t, nil)
	AssertNoError(t, nil, "operation should succeed")
}

func TestAssertErrorIs_Success(t *testing.T) {
	_, err := engine.Apply(engine.NewInitialBoard(), chess.NewMove(chess.E2, chess.E5))
	AssertErrorIs(t, err, errors.ErrIllegalMove)
	AssertErrorIs(t, errors.Wrap(errors.ErrParse, "token"), errors.ErrParse, "wrapped")
}

func TestAssertContains_Success(t *testing.T) {
	AssertContains(t, "Checkmate! Game over.", "Game over")
	AssertContains(t, "e2e4", "", "empty substring")
}

func TestAssertMoves_IgnoresOrder(t *testing.T) {
	moves := []chess.Move{chess.NewMove(chess.G1, chess.H3), chess.NewMove(chess.G1, chess.F3)}
	AssertMoves(t, moves, "g1f3", "g1h3")
	AssertMoves(t, nil)
}

func TestTokens(t *testing.T) {
	AssertEqual(t, Tokens(nil), []string{})
	got := Tokens([]chess.Move{
		{From: chess.E7, To: chess.E8, Promotion: chess.Queen},
		chess.NewMove(chess.A2, chess.A3),
	})
	AssertEqual(t, got, []string{"a2a3", "e7e8q"})
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want string
	}{
		{"empty", nil, ""},
		{"single string", []interface{}{"hello"}, "hello"},
		{"format with args", []interface{}{"value is %d", 42}, "value is 42"},
		{"non-string", []interface{}{42}, "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatMessage(tt.args...); got != tt.want {
				t.Errorf("formatMessage() = %q, want %q", got, tt.want)
			}
		})
	}
	if got := prefix("ctx"); got != "ctx: " {
		t.Errorf("prefix() = %q, want %q", got, "ctx: ")
	}
}

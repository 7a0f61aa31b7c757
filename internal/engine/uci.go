package engine

import (
	"fmt"

	"github.com/lgbarn/aichess-go/internal/chess"
	"github.com/lgbarn/aichess-go/internal/errors"
)

// ParseMoveToken parses a coordinate (UCI) token such as "e2e4" or
// "e7e8q" into a Move. It only checks the token's shape; legality is the
// job of IsLegal/Apply. A pawn move onto the last rank without a
// promotion letter is read as a queen promotion when board is non-nil.
// "0000" parses to the null move, which is never legal.
func ParseMoveToken(text string, board *chess.Board) (chess.Move, error) {
	if text == "0000" {
		return chess.NullMove, nil
	}
	if len(text) != 4 && len(text) != 5 {
		return chess.Move{}, &errors.ParseError{
			Err:      errors.ErrParse,
			Input:    text,
			Expected: "4 or 5 characters",
			Got:      fmt.Sprintf("%d", len(text)),
		}
	}

	from, err := parseTokenSquare(text, 0)
	if err != nil {
		return chess.Move{}, err
	}
	to, err := parseTokenSquare(text, 2)
	if err != nil {
		return chess.Move{}, err
	}
	if from == to {
		return chess.Move{}, &errors.ParseError{
			Err:      errors.ErrParse,
			Input:    text,
			Expected: "distinct squares",
			Got:      from.String() + " twice",
		}
	}

	move := chess.NewMove(from, to)
	if len(text) == 5 {
		kind, ok := promotionKind(text[4])
		if !ok {
			return chess.Move{}, &errors.ParseError{
				Err:      errors.ErrParse,
				Input:    text,
				Column:   5,
				Expected: "promotion letter n, b, r or q",
				Got:      fmt.Sprintf("%q", text[4]),
			}
		}
		move.Promotion = kind
	} else if board != nil && needsPromotion(board, move) {
		move.Promotion = chess.Queen
	}
	return move, nil
}

// FormatMoveToken returns the coordinate token for move.
func FormatMoveToken(move chess.Move) string {
	return move.String()
}

// parseTokenSquare reads the square at text[i:i+2].
func parseTokenSquare(text string, i int) (chess.Square, error) {
	file, rank := text[i], text[i+1]
	if file < 'a' || file > 'h' {
		return chess.NoSquare, &errors.ParseError{
			Err:      errors.ErrParse,
			Input:    text,
			Column:   i + 1,
			Expected: "file a-h",
			Got:      fmt.Sprintf("%q", file),
		}
	}
	if rank < '1' || rank > '8' {
		return chess.NoSquare, &errors.ParseError{
			Err:      errors.ErrParse,
			Input:    text,
			Column:   i + 2,
			Expected: "rank 1-8",
			Got:      fmt.Sprintf("%q", rank),
		}
	}
	return chess.NewSquare(int(file-'a'), int(rank-'0')), nil
}

// promotionKind maps a promotion letter (either case) to a piece kind.
func promotionKind(c byte) (chess.PieceKind, bool) {
	switch c {
	case 'q', 'Q':
		return chess.Queen, true
	case 'r', 'R':
		return chess.Rook, true
	case 'b', 'B':
		return chess.Bishop, true
	case 'n', 'N':
		return chess.Knight, true
	default:
		return chess.NoKind, false
	}
}

// needsPromotion reports whether move takes a pawn of the side to move
// onto its last rank.
func needsPromotion(board *chess.Board, move chess.Move) bool {
	piece := board.Get(move.From)
	return piece.Kind() == chess.Pawn &&
		piece.Colour() == board.ToMove &&
		move.To.Rank() == lastRank(board.ToMove)
}

package engine

import "github.com/lgbarn/aichess-go/internal/chess"

// Direction tables as (file, rank) deltas.
var (
	knightOffsets = [8][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs  = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs  = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	queenDirs     = append(append([][2]int{}, diagonalDirs...), straightDirs...)
)

// pawnDirection returns +1 for White (up the board) and -1 for Black.
func pawnDirection(colour chess.Colour) int {
	if colour == chess.White {
		return 1
	}
	return -1
}

// firstPieceAlong walks from sq (exclusive) in dir and returns the first
// piece met, or NoPiece when the ray leaves the board.
func firstPieceAlong(board *chess.Board, sq chess.Square, dir [2]int) chess.Piece {
	for to := sq.Offset(dir[0], dir[1]); to != chess.NoSquare; to = to.Offset(dir[0], dir[1]) {
		if p := board.Get(to); p != chess.NoPiece {
			return p
		}
	}
	return chess.NoPiece
}

// addSlidingMoves appends moves along each direction until blocked.
// A blocking enemy piece may be captured; a friendly one may not.
func addSlidingMoves(board *chess.Board, from chess.Square, colour chess.Colour, dirs [][2]int, moves []chess.Move) []chess.Move {
	for _, dir := range dirs {
		for to := from.Offset(dir[0], dir[1]); to != chess.NoSquare; to = to.Offset(dir[0], dir[1]) {
			target := board.Get(to)
			if target != chess.NoPiece {
				if target.Colour() != colour {
					moves = append(moves, chess.NewMove(from, to))
				}
				break // Blocked
			}
			moves = append(moves, chess.NewMove(from, to))
		}
	}
	return moves
}

// addStepMoves appends single-step moves (knight, king) to empty or
// enemy-occupied squares.
func addStepMoves(board *chess.Board, from chess.Square, colour chess.Colour, offsets [8][2]int, moves []chess.Move) []chess.Move {
	for _, off := range offsets {
		to := from.Offset(off[0], off[1])
		if to == chess.NoSquare {
			continue
		}
		if target := board.Get(to); target == chess.NoPiece || target.Colour() != colour {
			moves = append(moves, chess.NewMove(from, to))
		}
	}
	return moves
}

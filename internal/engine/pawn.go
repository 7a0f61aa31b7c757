package engine

import "github.com/lgbarn/aichess-go/internal/chess"

// pawnStartRank returns the rank from which colour's pawns may double-step.
func pawnStartRank(colour chess.Colour) int {
	if colour == chess.White {
		return 2
	}
	return 7
}

// lastRank returns the rank on which colour's pawns promote.
func lastRank(colour chess.Colour) int {
	if colour == chess.White {
		return 8
	}
	return 1
}

// addPawnMoves appends pushes, double pushes, captures, en passant
// captures and promotions for the pawn on from.
func addPawnMoves(board *chess.Board, from chess.Square, colour chess.Colour, moves []chess.Move) []chess.Move {
	dir := pawnDirection(colour)

	// Forward move
	one := from.Offset(0, dir)
	if one != chess.NoSquare && board.IsEmpty(one) {
		moves = addPawnMove(from, one, colour, moves)
		// Double push from starting rank
		if from.Rank() == pawnStartRank(colour) {
			two := from.Offset(0, 2*dir)
			if board.IsEmpty(two) {
				moves = append(moves, chess.NewMove(from, two))
			}
		}
	}

	// Captures
	for _, df := range [2]int{-1, 1} {
		to := from.Offset(df, dir)
		if to == chess.NoSquare {
			continue
		}
		target := board.Get(to)
		if target != chess.NoPiece && target.Colour() != colour {
			moves = addPawnMove(from, to, colour, moves)
		} else if to == board.EnPassant && target == chess.NoPiece {
			moves = append(moves, chess.NewMove(from, to))
		}
	}
	return moves
}

// addPawnMove appends a single pawn move, expanding it into one move per
// promotion kind when it reaches the last rank.
func addPawnMove(from, to chess.Square, colour chess.Colour, moves []chess.Move) []chess.Move {
	if to.Rank() != lastRank(colour) {
		return append(moves, chess.NewMove(from, to))
	}
	for _, kind := range chess.PromotionKinds {
		moves = append(moves, chess.Move{From: from, To: to, Promotion: kind})
	}
	return moves
}

// enPassantVictim returns the square of the pawn captured by an en passant
// move landing on to.
func enPassantVictim(to chess.Square, colour chess.Colour) chess.Square {
	return to.Offset(0, -pawnDirection(colour))
}

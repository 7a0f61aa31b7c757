package engine

import "github.com/lgbarn/aichess-go/internal/chess"

// IsInCheck returns true if the given colour's king is in check.
func IsInCheck(board *chess.Board, colour chess.Colour) bool {
	kingSq := board.KingSquare(colour)
	if kingSq == chess.NoSquare {
		return false // No king found
	}
	return IsSquareAttacked(board, kingSq, colour.Opposite())
}

// IsSquareAttacked returns true if the square is attacked by the given colour.
func IsSquareAttacked(board *chess.Board, sq chess.Square, byColour chess.Colour) bool {
	// Pawns attack diagonally forward, so look one rank behind the target.
	pawn := chess.MakePiece(byColour, chess.Pawn)
	behind := -pawnDirection(byColour)
	if board.Get(sq.Offset(-1, behind)) == pawn || board.Get(sq.Offset(1, behind)) == pawn {
		return true
	}

	knight := chess.MakePiece(byColour, chess.Knight)
	for _, off := range knightOffsets {
		if board.Get(sq.Offset(off[0], off[1])) == knight {
			return true
		}
	}

	king := chess.MakePiece(byColour, chess.King)
	for _, off := range kingOffsets {
		if board.Get(sq.Offset(off[0], off[1])) == king {
			return true
		}
	}

	queen := chess.MakePiece(byColour, chess.Queen)
	bishop := chess.MakePiece(byColour, chess.Bishop)
	for _, dir := range diagonalDirs {
		if p := firstPieceAlong(board, sq, dir); p == bishop || p == queen {
			return true
		}
	}

	rook := chess.MakePiece(byColour, chess.Rook)
	for _, dir := range straightDirs {
		if p := firstPieceAlong(board, sq, dir); p == rook || p == queen {
			return true
		}
	}

	return false
}

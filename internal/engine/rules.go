// Package engine is the chess rules engine: legal move generation, move
// application, game status and the text formats (FEN, coordinate tokens)
// layered on the chess data model. All functions are pure over an explicit
// *chess.Board; callers that share a board must serialise access.
package engine

import (
	"github.com/lgbarn/aichess-go/internal/chess"
)

// SeventyFiveMoveLimit is the half-move clock value at which the game is
// drawn automatically.
const SeventyFiveMoveLimit = 150

// Status derives the game status from the board alone. Checkmate and
// stalemate take precedence over draws.
func Status(board *chess.Board) chess.GameStatus {
	if !HasLegalMoves(board) {
		if IsInCheck(board, board.ToMove) {
			return chess.Checkmate
		}
		return chess.Stalemate
	}
	if HasInsufficientMaterial(board) {
		return chess.DrawInsufficientMaterial
	}
	if board.HalfmoveClock >= SeventyFiveMoveLimit {
		return chess.DrawOther
	}
	return chess.InProgress
}

// Reset returns a fresh board in the standard starting position.
func Reset() *chess.Board {
	return NewInitialBoard()
}

// HasInsufficientMaterial returns true if neither side can possibly mate.
// Insufficient material includes:
// - K vs K
// - K+B vs K
// - K+N vs K
// - K and bishops vs K and bishops, all bishops on one square colour
func HasInsufficientMaterial(board *chess.Board) bool {
	var knights, lightBishops, darkBishops int
	var whiteMinors, blackMinors int

	for _, pp := range board.Pieces() {
		switch pp.Piece.Kind() {
		case chess.King:
			continue
		case chess.Pawn, chess.Rook, chess.Queen:
			// Any pawn, rook, or queen means sufficient material
			return false
		case chess.Knight:
			knights++
		case chess.Bishop:
			if pp.Square.IsLight() {
				lightBishops++
			} else {
				darkBishops++
			}
		}
		if pp.Piece.Colour() == chess.White {
			whiteMinors++
		} else {
			blackMinors++
		}
	}

	// K vs K, K+B vs K, K+N vs K
	if whiteMinors+blackMinors <= 1 {
		return true
	}

	// Bishops only, all on the same colour complex
	if knights == 0 && (lightBishops == 0 || darkBishops == 0) {
		return true
	}

	return false
}

package engine

import "github.com/lgbarn/aichess-go/internal/chess"

// LegalMoves returns every move for the side to move that does not leave
// its own king in check. Moves are ordered by origin square (a8 first).
func LegalMoves(board *chess.Board) []chess.Move {
	return legalMoves(board, false)
}

// HasLegalMoves returns true if the side to move has at least one legal move.
func HasLegalMoves(board *chess.Board) bool {
	return len(legalMoves(board, true)) > 0
}

// IsLegal reports whether move is a member of LegalMoves(board).
func IsLegal(board *chess.Board, move chess.Move) bool {
	piece := board.Get(move.From)
	if piece == chess.NoPiece || piece.Colour() != board.ToMove {
		return false
	}
	for _, m := range pieceMoves(board, move.From, piece, nil) {
		if m == move {
			return leavesKingSafe(board.Copy(), m)
		}
	}
	return false
}

// legalMoves filters pseudo-legal moves through make/unmake on a scratch
// copy. With firstOnly it stops at the first legal move.
func legalMoves(board *chess.Board, firstOnly bool) []chess.Move {
	scratch := board.Copy()
	var legal []chess.Move
	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		piece := board.Squares[sq]
		if piece == chess.NoPiece || piece.Colour() != board.ToMove {
			continue
		}
		for _, m := range pieceMoves(board, sq, piece, nil) {
			if !leavesKingSafe(scratch, m) {
				continue
			}
			legal = append(legal, m)
			if firstOnly {
				return legal
			}
		}
	}
	return legal
}

// pieceMoves appends the pseudo-legal moves of the piece on from.
func pieceMoves(board *chess.Board, from chess.Square, piece chess.Piece, moves []chess.Move) []chess.Move {
	colour := piece.Colour()
	switch piece.Kind() {
	case chess.Pawn:
		return addPawnMoves(board, from, colour, moves)
	case chess.Knight:
		return addStepMoves(board, from, colour, knightOffsets, moves)
	case chess.Bishop:
		return addSlidingMoves(board, from, colour, diagonalDirs, moves)
	case chess.Rook:
		return addSlidingMoves(board, from, colour, straightDirs, moves)
	case chess.Queen:
		return addSlidingMoves(board, from, colour, queenDirs, moves)
	case chess.King:
		moves = addStepMoves(board, from, colour, kingOffsets, moves)
		return addCastlingMoves(board, colour, moves)
	}
	return moves
}

// leavesKingSafe plays m on board, tests the mover's king and takes the
// move back. board is left unchanged.
func leavesKingSafe(board *chess.Board, m chess.Move) bool {
	colour := board.ToMove
	undo := MakeMove(board, m)
	safe := !IsInCheck(board, colour)
	UnmakeMove(board, undo)
	return safe
}

package engine

import (
	"github.com/lgbarn/aichess-go/internal/chess"
	"github.com/lgbarn/aichess-go/internal/errors"
)

// Undo is the reversible delta produced by MakeMove. Passing it to
// UnmakeMove restores the board exactly.
type Undo struct {
	Move          chess.Move
	Moved         chess.Piece
	Captured      chess.Piece
	CaptureSquare chess.Square
	Castling      chess.CastlingRights
	EnPassant     chess.Square
	HalfmoveClock uint
	MoveNumber    uint
}

// Apply returns the position reached by playing move on board. The input
// board is not modified. It fails with ErrGameOver once the game has ended
// and with ErrIllegalMove for any move not in LegalMoves(board).
func Apply(board *chess.Board, move chess.Move) (*chess.Board, error) {
	if status := Status(board); status.IsTerminal() {
		return nil, &errors.MoveError{
			Err:   errors.Wrapf(errors.ErrGameOver, "status %v", status),
			Token: move.String(),
			FEN:   BoardToFEN(board),
		}
	}
	if !IsLegal(board, move) {
		return nil, &errors.MoveError{
			Err:   errors.ErrIllegalMove,
			Token: move.String(),
			FEN:   BoardToFEN(board),
		}
	}
	next := board.Copy()
	MakeMove(next, move)
	return next, nil
}

// MakeMove plays move on board in place without checking legality and
// returns the delta needed to take it back. The move must at least be
// pseudo-legal: a piece of the side to move stands on move.From.
func MakeMove(board *chess.Board, move chess.Move) Undo {
	colour := board.ToMove
	moved := board.Get(move.From)
	undo := Undo{
		Move:          move,
		Moved:         moved,
		Captured:      board.Get(move.To),
		CaptureSquare: move.To,
		Castling:      board.Castling,
		EnPassant:     board.EnPassant,
		HalfmoveClock: board.HalfmoveClock,
		MoveNumber:    board.MoveNumber,
	}

	board.Set(move.From, chess.NoPiece)
	placed := moved

	switch moved.Kind() {
	case chess.Pawn:
		// En passant: the captured pawn is not on the destination square.
		if move.To == board.EnPassant && undo.Captured == chess.NoPiece && move.From.File() != move.To.File() {
			undo.CaptureSquare = enPassantVictim(move.To, colour)
			undo.Captured = board.Get(undo.CaptureSquare)
			board.Set(undo.CaptureSquare, chess.NoPiece)
		}
		if move.To.Rank() == lastRank(colour) {
			promotion := move.Promotion
			if !promotion.IsPromotionKind() {
				promotion = chess.Queen // Default to queen
			}
			placed = chess.MakePiece(colour, promotion)
		}
	case chess.King:
		if side, ok := castleFor(moved, move); ok {
			board.Set(side.rookTo, board.Get(side.rookFrom))
			board.Set(side.rookFrom, chess.NoPiece)
		}
	}
	board.Set(move.To, placed)

	board.Castling &^= castlingRightsLost[move.From] | castlingRightsLost[move.To]

	// Set en passant square if double pawn push
	board.EnPassant = chess.NoSquare
	if moved.Kind() == chess.Pawn && abs(move.To.Rank()-move.From.Rank()) == 2 {
		board.EnPassant = move.From.Offset(0, pawnDirection(colour))
	}

	if moved.Kind() == chess.Pawn || undo.Captured != chess.NoPiece {
		board.HalfmoveClock = 0
	} else {
		board.HalfmoveClock++
	}
	if colour == chess.Black {
		board.MoveNumber++
	}
	board.ToMove = colour.Opposite()

	return undo
}

// UnmakeMove reverts a move previously played with MakeMove.
func UnmakeMove(board *chess.Board, undo Undo) {
	move := undo.Move

	board.Set(move.To, chess.NoPiece)
	board.Set(move.From, undo.Moved)
	if undo.Captured != chess.NoPiece {
		board.Set(undo.CaptureSquare, undo.Captured)
	}
	if side, ok := castleFor(undo.Moved, move); ok {
		board.Set(side.rookFrom, board.Get(side.rookTo))
		board.Set(side.rookTo, chess.NoPiece)
	}

	board.Castling = undo.Castling
	board.EnPassant = undo.EnPassant
	board.HalfmoveClock = undo.HalfmoveClock
	board.MoveNumber = undo.MoveNumber
	board.ToMove = undo.Moved.Colour()
}

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

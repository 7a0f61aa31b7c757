package engine

import "github.com/lgbarn/aichess-go/internal/chess"

// castleSide describes one castling option in standard chess.
type castleSide struct {
	right    chess.CastlingRights
	kingFrom chess.Square
	kingTo   chess.Square
	rookFrom chess.Square
	rookTo   chess.Square
	// Squares that must be empty between king and rook.
	between []chess.Square
	// Squares the king stands on, crosses or lands on; none may be attacked.
	kingPath []chess.Square
}

var castleSides = map[chess.Colour][2]castleSide{
	chess.White: {
		{
			right: chess.WhiteKingside, kingFrom: chess.E1, kingTo: chess.G1,
			rookFrom: chess.H1, rookTo: chess.F1,
			between:  []chess.Square{chess.F1, chess.G1},
			kingPath: []chess.Square{chess.E1, chess.F1, chess.G1},
		},
		{
			right: chess.WhiteQueenside, kingFrom: chess.E1, kingTo: chess.C1,
			rookFrom: chess.A1, rookTo: chess.D1,
			between:  []chess.Square{chess.B1, chess.C1, chess.D1},
			kingPath: []chess.Square{chess.E1, chess.D1, chess.C1},
		},
	},
	chess.Black: {
		{
			right: chess.BlackKingside, kingFrom: chess.E8, kingTo: chess.G8,
			rookFrom: chess.H8, rookTo: chess.F8,
			between:  []chess.Square{chess.F8, chess.G8},
			kingPath: []chess.Square{chess.E8, chess.F8, chess.G8},
		},
		{
			right: chess.BlackQueenside, kingFrom: chess.E8, kingTo: chess.C8,
			rookFrom: chess.A8, rookTo: chess.D8,
			between:  []chess.Square{chess.B8, chess.C8, chess.D8},
			kingPath: []chess.Square{chess.E8, chess.D8, chess.C8},
		},
	},
}

// castlingRightsLost maps a square to the rights that vanish once any
// move starts or ends there: a king or rook leaving home, or a rook
// being captured on its home square.
var castlingRightsLost = func() [chess.NumSquares]chess.CastlingRights {
	var lost [chess.NumSquares]chess.CastlingRights
	lost[chess.E1] = chess.WhiteKingside | chess.WhiteQueenside
	lost[chess.H1] = chess.WhiteKingside
	lost[chess.A1] = chess.WhiteQueenside
	lost[chess.E8] = chess.BlackKingside | chess.BlackQueenside
	lost[chess.H8] = chess.BlackKingside
	lost[chess.A8] = chess.BlackQueenside
	return lost
}()

// addCastlingMoves appends the castling moves available to colour. The
// king-path attack test is done here; the general self-check filter in
// LegalMoves re-checks the destination.
func addCastlingMoves(board *chess.Board, colour chess.Colour, moves []chess.Move) []chess.Move {
	king := chess.MakePiece(colour, chess.King)
	rook := chess.MakePiece(colour, chess.Rook)
	enemy := colour.Opposite()

	for _, side := range castleSides[colour] {
		if !board.Castling.Has(side.right) {
			continue
		}
		if board.Get(side.kingFrom) != king || board.Get(side.rookFrom) != rook {
			continue
		}
		if !allEmpty(board, side.between) {
			continue
		}
		if anyAttacked(board, side.kingPath, enemy) {
			continue
		}
		moves = append(moves, chess.NewMove(side.kingFrom, side.kingTo))
	}
	return moves
}

// castleFor returns the castling option matching a king move, if any.
func castleFor(moved chess.Piece, m chess.Move) (castleSide, bool) {
	if moved.Kind() != chess.King {
		return castleSide{}, false
	}
	for _, side := range castleSides[moved.Colour()] {
		if m.From == side.kingFrom && m.To == side.kingTo {
			return side, true
		}
	}
	return castleSide{}, false
}

// sanitizeCastling drops rights whose king or rook is not on its home
// square, so a loaded position cannot claim impossible castles.
func sanitizeCastling(board *chess.Board) {
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		king := chess.MakePiece(colour, chess.King)
		rook := chess.MakePiece(colour, chess.Rook)
		for _, side := range castleSides[colour] {
			if board.Get(side.kingFrom) != king || board.Get(side.rookFrom) != rook {
				board.Castling &^= side.right
			}
		}
	}
}

func allEmpty(board *chess.Board, squares []chess.Square) bool {
	for _, sq := range squares {
		if !board.IsEmpty(sq) {
			return false
		}
	}
	return true
}

func anyAttacked(board *chess.Board, squares []chess.Square, by chess.Colour) bool {
	for _, sq := range squares {
		if IsSquareAttacked(board, sq, by) {
			return true
		}
	}
	return false
}

package chess

// Move is a from/to square pair with an optional promotion kind. A Move is
// only meaningful relative to a specific Board.
type Move struct {
	From      Square
	To        Square
	Promotion PieceKind
}

// NullMove is the zero-information move ("0000" in coordinate notation).
var NullMove = Move{From: NoSquare, To: NoSquare}

// NewMove creates a move without promotion.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to}
}

// IsNull reports whether m is the null move.
func (m Move) IsNull() bool {
	return m.From == NoSquare && m.To == NoSquare
}

// IsPromotion reports whether m carries a promotion kind.
func (m Move) IsPromotion() bool {
	return m.Promotion != NoKind
}

// String returns the coordinate token, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += string(m.Promotion.Letter() + ('a' - 'A'))
	}
	return s
}

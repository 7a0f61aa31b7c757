package chess

// Board represents a chess position with all state needed to continue play.
type Board struct {
	// Pieces indexed by Square; NoPiece for empty squares.
	Squares [NumSquares]Piece

	// Who has the next move.
	ToMove Colour

	// Remaining castling options.
	Castling CastlingRights

	// The square a pawn may capture onto en passant, or NoSquare.
	EnPassant Square

	// The half-move clock since the last pawn move or capture.
	HalfmoveClock uint

	// The full-move number, incremented after Black moves.
	MoveNumber uint
}

// NewBoard creates a new empty board with White to move.
func NewBoard() *Board {
	return &Board{
		ToMove:     White,
		EnPassant:  NoSquare,
		MoveNumber: 1,
	}
}

// backRank lists the home-rank pieces from the a-file to the h-file.
var backRank = [BoardSize]PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// SetupInitialPosition sets up the standard chess starting position.
func (b *Board) SetupInitialPosition() {
	b.Squares = [NumSquares]Piece{}
	for file := 0; file < BoardSize; file++ {
		b.Set(NewSquare(file, 1), W(backRank[file]))
		b.Set(NewSquare(file, 2), W(Pawn))
		b.Set(NewSquare(file, 7), B(Pawn))
		b.Set(NewSquare(file, 8), B(backRank[file]))
	}
	b.ToMove = White
	b.Castling = AllCastling
	b.EnPassant = NoSquare
	b.HalfmoveClock = 0
	b.MoveNumber = 1
}

// Get returns the piece on sq, or NoPiece when sq is empty or off the board.
func (b *Board) Get(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	return b.Squares[sq]
}

// Set places a piece on sq. Off-board squares are ignored.
func (b *Board) Set(sq Square, piece Piece) {
	if sq.Valid() {
		b.Squares[sq] = piece
	}
}

// IsEmpty reports whether sq holds no piece.
func (b *Board) IsEmpty(sq Square) bool {
	return b.Get(sq) == NoPiece
}

// KingSquare returns the square of colour's king, or NoSquare if absent.
func (b *Board) KingSquare(colour Colour) Square {
	king := MakePiece(colour, King)
	for sq := Square(0); sq < NumSquares; sq++ {
		if b.Squares[sq] == king {
			return sq
		}
	}
	return NoSquare
}

// Copy creates a deep copy of the board.
func (b *Board) Copy() *Board {
	newBoard := &Board{}
	*newBoard = *b
	return newBoard
}

// Equal reports whether two boards describe the same position and clocks.
func (b *Board) Equal(other *Board) bool {
	return *b == *other
}

// PlacedPiece pairs a square with the piece standing on it.
type PlacedPiece struct {
	Square Square
	Piece  Piece
}

// Pieces returns every occupied square in index order (a8 first).
func (b *Board) Pieces() []PlacedPiece {
	var out []PlacedPiece
	for sq := Square(0); sq < NumSquares; sq++ {
		if p := b.Squares[sq]; p != NoPiece {
			out = append(out, PlacedPiece{Square: sq, Piece: p})
		}
	}
	return out
}

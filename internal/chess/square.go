package chess

import "fmt"

// Square is a board index 0-63. Rows run top to bottom: index 0..7 is
// rank 8 (a8..h8) and index 56..63 is rank 1 (a1..h1).
type Square int8

// NoSquare marks the absence of a square (e.g. no en passant target).
const NoSquare Square = -1

// Named squares used by castling and tests.
const (
	A8 Square = iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A1
	B1
	C1
	D1
	E1
	F1
	G1
	H1
)

// NewSquare builds a square from a zero-based file (0 = a) and a
// one-based rank (1..8). Out-of-range input yields NoSquare.
func NewSquare(file, rank int) Square {
	if file < 0 || file >= BoardSize || rank < 1 || rank > BoardSize {
		return NoSquare
	}
	return Square((BoardSize-rank)*BoardSize + file)
}

// File returns the zero-based file (0 = a).
func (s Square) File() int {
	return int(s) % BoardSize
}

// Rank returns the one-based rank (1..8).
func (s Square) Rank() int {
	return BoardSize - int(s)/BoardSize
}

// Row returns the zero-based display row, 0 being rank 8.
func (s Square) Row() int {
	return int(s) / BoardSize
}

// Valid reports whether s is on the board.
func (s Square) Valid() bool {
	return s >= 0 && s < NumSquares
}

// Offset returns the square df files and dr ranks away, or NoSquare
// when that leaves the board.
func (s Square) Offset(df, dr int) Square {
	return NewSquare(s.File()+df, s.Rank()+dr)
}

// IsLight reports whether s is a light square (h1 and a8 are light).
func (s Square) IsLight() bool {
	return (s.File()+s.Rank())%2 == 0
}

// String returns algebraic coordinates such as "e4", or "-" for NoSquare.
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + s.File()), byte('0' + s.Rank())})
}

// ParseSquare parses algebraic coordinates such as "e4".
func ParseSquare(text string) (Square, error) {
	if len(text) != 2 {
		return NoSquare, fmt.Errorf("square %q: want 2 characters", text)
	}
	file, rank := text[0], text[1]
	if file < 'a' || file > 'h' {
		return NoSquare, fmt.Errorf("square %q: file %q out of range a-h", text, file)
	}
	if rank < '1' || rank > '8' {
		return NoSquare, fmt.Errorf("square %q: rank %q out of range 1-8", text, rank)
	}
	return NewSquare(int(file-'a'), int(rank-'0')), nil
}

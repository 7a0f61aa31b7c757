// Package render draws boards for the front ends: SVG for the browser and
// a plain text diagram for the console.
package render

import (
	"strings"

	"github.com/lgbarn/aichess-go/internal/chess"
)

var glyphs = [2][chess.NumPieceKinds]string{
	chess.Black: {"", "♟", "♞", "♝", "♜", "♛", "♚"},
	chess.White: {"", "♙", "♘", "♗", "♖", "♕", "♔"},
}

// Glyph returns the Unicode chess symbol for p, or "" for an empty square.
func Glyph(p chess.Piece) string {
	if p.IsEmpty() {
		return ""
	}
	return glyphs[p.Colour()][p.Kind()]
}

// AssetName returns the image file name for p, such as "wN.png", or ""
// for an empty square.
func AssetName(p chess.Piece) string {
	if p.IsEmpty() {
		return ""
	}
	colour := "b"
	if p.Colour() == chess.White {
		colour = "w"
	}
	return colour + string(p.Kind().Letter()) + ".png"
}

// Diagram returns a text board with rank 8 at the top, one FEN letter per
// square and '.' for empty squares.
func Diagram(board *chess.Board) string {
	var sb strings.Builder
	for row := 0; row < chess.BoardSize; row++ {
		sb.WriteByte(byte('8' - row))
		for file := 0; file < chess.BoardSize; file++ {
			sb.WriteByte(' ')
			sb.WriteByte(board.Get(chess.Square(row*chess.BoardSize + file)).FENLetter())
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}

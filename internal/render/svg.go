package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/lgbarn/aichess-go/internal/chess"
	"github.com/lgbarn/aichess-go/internal/engine"
)

const (
	defaultSquareSize = 45
	lightSquare       = "#f0d9b5"
	darkSquare        = "#b58863"
	lightHighlight    = "#cdd16a"
	darkHighlight     = "#aaa23a"
	checkColour       = "#ff0000"
)

// SVGOptions controls SVG output. The zero value draws a plain board with
// White at the bottom.
type SVGOptions struct {
	// SquareSize is the side of one square in pixels
	SquareSize int

	// Flipped puts Black at the bottom
	Flipped bool

	// Coordinates adds file letters and rank numbers around the board
	Coordinates bool

	// LastMove squares are highlighted unless it is the zero Move
	LastMove chess.Move

	// HighlightCheck marks the king of the side to move when it is in check
	HighlightCheck bool
}

// errWriter remembers the first write error so the SVG builder, which
// ignores errors, can still report one.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// SVG writes board as an SVG document to w.
func SVG(w io.Writer, board *chess.Board, opts SVGOptions) error {
	size := opts.SquareSize
	if size <= 0 {
		size = defaultSquareSize
	}
	margin := 0
	if opts.Coordinates {
		margin = size / 2
	}
	boardPx := size * chess.BoardSize

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(boardPx+2*margin, boardPx+2*margin, `viewBox="0 0 `+fmt.Sprint(boardPx+2*margin)+" "+fmt.Sprint(boardPx+2*margin)+`"`)
	canvas.Title("chess board")

	highlighted := func(sq chess.Square) bool {
		m := opts.LastMove
		return m != (chess.Move{}) && !m.IsNull() && (sq == m.From || sq == m.To)
	}
	check := chess.NoSquare
	if opts.HighlightCheck && engine.IsInCheck(board, board.ToMove) {
		check = board.KingSquare(board.ToMove)
	}

	canvas.Gid("squares")
	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		x, y := squareOrigin(sq, size, margin, opts.Flipped)
		fill := darkSquare
		if sq.IsLight() {
			fill = lightSquare
		}
		if highlighted(sq) {
			fill = darkHighlight
			if sq.IsLight() {
				fill = lightHighlight
			}
		}
		canvas.Rect(x, y, size, size, fmt.Sprintf(`class="square %s" fill="%s"`, sq, fill))
	}
	canvas.Gend()

	if check.Valid() {
		x, y := squareOrigin(check, size, margin, opts.Flipped)
		canvas.Circle(x+size/2, y+size/2, size/2, fmt.Sprintf(`class="check" fill="%s" fill-opacity="0.5"`, checkColour))
	}

	canvas.Gid("pieces")
	fontSize := size * 4 / 5
	for _, pp := range board.Pieces() {
		x, y := squareOrigin(pp.Square, size, margin, opts.Flipped)
		canvas.Text(x+size/2, y+size/2, Glyph(pp.Piece),
			fmt.Sprintf(`class="piece %s" font-size="%d" text-anchor="middle" dominant-baseline="central"`, AssetName(pp.Piece)[:2], fontSize))
	}
	canvas.Gend()

	if opts.Coordinates {
		drawCoordinates(canvas, size, margin, opts.Flipped)
	}
	canvas.End()
	return ew.err
}

// squareOrigin returns the top-left pixel of sq.
func squareOrigin(sq chess.Square, size, margin int, flipped bool) (x, y int) {
	col, row := sq.File(), sq.Row()
	if flipped {
		col, row = chess.BoardSize-1-col, chess.BoardSize-1-row
	}
	return margin + col*size, margin + row*size
}

func drawCoordinates(canvas *svg.SVG, size, margin int, flipped bool) {
	style := fmt.Sprintf(`class="coord" font-size="%d" text-anchor="middle" dominant-baseline="central"`, margin*2/3)
	boardPx := size * chess.BoardSize
	for i := 0; i < chess.BoardSize; i++ {
		file, rank := i, chess.BoardSize-i
		if flipped {
			file, rank = chess.BoardSize-1-i, i+1
		}
		centre := margin + i*size + size/2
		canvas.Text(centre, margin+boardPx+margin/2, string(rune('a'+file)), style)
		canvas.Text(margin/2, centre, fmt.Sprint(rank), style)
	}
}

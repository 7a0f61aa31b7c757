package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/lgbarn/aichess-go/internal/chess"
	"github.com/lgbarn/aichess-go/internal/engine"
	"github.com/lgbarn/aichess-go/internal/testutil"
)

func allPieces() []chess.Piece {
	var pieces []chess.Piece
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		for kind := chess.Pawn; kind <= chess.King; kind++ {
			pieces = append(pieces, chess.MakePiece(colour, kind))
		}
	}
	return pieces
}

func TestGlyphAndAssetName(t *testing.T) {
	glyphSeen := map[string]bool{}
	assetSeen := map[string]bool{}
	for _, p := range allPieces() {
		g, a := Glyph(p), AssetName(p)
		if g == "" || a == "" {
			t.Errorf("%v: Glyph = %q, AssetName = %q", p, g, a)
		}
		if glyphSeen[g] || assetSeen[a] {
			t.Errorf("%v: duplicate Glyph %q or AssetName %q", p, g, a)
		}
		glyphSeen[g], assetSeen[a] = true, true
	}

	if Glyph(chess.W(chess.King)) != "♔" || Glyph(chess.B(chess.Pawn)) != "♟" {
		t.Errorf("unexpected glyphs: %q %q", Glyph(chess.W(chess.King)), Glyph(chess.B(chess.Pawn)))
	}
	if AssetName(chess.W(chess.Knight)) != "wN.png" || AssetName(chess.B(chess.Queen)) != "bQ.png" {
		t.Errorf("unexpected asset names: %q %q", AssetName(chess.W(chess.Knight)), AssetName(chess.B(chess.Queen)))
	}
	if Glyph(chess.NoPiece) != "" || AssetName(chess.NoPiece) != "" {
		t.Error("empty square should have no glyph or asset")
	}
}

func TestDiagram(t *testing.T) {
	want := strings.Join([]string{
		"8 r n b q k b n r",
		"7 p p p p p p p p",
		"6 . . . . . . . .",
		"5 . . . . . . . .",
		"4 . . . . P . . .",
		"3 . . . . . . . .",
		"2 P P P P . P P P",
		"1 R N B Q K B N R",
		"  a b c d e f g h",
		"",
	}, "\n")

	board, err := engine.NewBoardFromFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if got := Diagram(board); got != want {
		t.Errorf("Diagram() =\n%s\nwant\n%s", got, want)
	}
}

func TestSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := SVG(&buf, engine.NewInitialBoard(), SVGOptions{}); err != nil {
		t.Fatalf("SVG() error = %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatalf("SVG() output is not an svg document:\n%s", out)
	}
	if n := strings.Count(out, "<rect"); n != 64 {
		t.Errorf("SVG() drew %d squares, want 64", n)
	}
	if n := strings.Count(out, `class="piece`); n != 32 {
		t.Errorf("SVG() drew %d pieces, want 32", n)
	}
	if !strings.Contains(out, "♔") || !strings.Contains(out, "♚") {
		t.Error("SVG() output is missing king glyphs")
	}
	if strings.Contains(out, `class="check"`) || strings.Contains(out, lightHighlight) {
		t.Error("SVG() drew highlights that were not asked for")
	}
	if strings.Contains(out, `class="coord"`) {
		t.Error("SVG() drew coordinates that were not asked for")
	}
}

func TestSVG_Options(t *testing.T) {
	board := testutil.MustBoard(t, testutil.FoolsMateFEN)
	var buf bytes.Buffer
	opts := SVGOptions{
		SquareSize:     60,
		Flipped:        true,
		Coordinates:    true,
		LastMove:       chess.NewMove(chess.D8, chess.H4),
		HighlightCheck: true,
	}
	if err := SVG(&buf, board, opts); err != nil {
		t.Fatalf("SVG() error = %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, `class="check"`) {
		t.Error("SVG() did not mark the king in check")
	}
	if strings.Count(out, darkHighlight)+strings.Count(out, lightHighlight) != 2 {
		t.Error("SVG() should highlight exactly the two last-move squares")
	}
	if n := strings.Count(out, `class="coord"`); n != 16 {
		t.Errorf("SVG() drew %d coordinates, want 16", n)
	}
	// 8 squares of 60px plus a 30px margin on each side.
	if !strings.Contains(out, `width="540"`) {
		t.Errorf("SVG() has the wrong size:\n%s", out[:200])
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestSVG_WriteError(t *testing.T) {
	if err := SVG(failingWriter{}, engine.NewInitialBoard(), SVGOptions{}); err == nil {
		t.Error("SVG() to a failing writer returned no error")
	}
}

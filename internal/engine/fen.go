package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/aichess-go/internal/chess"
	"github.com/lgbarn/aichess-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewBoardFromFEN creates a board from a FEN string. Trailing fields may be
// omitted; they default to White to move, no castling, no en passant and
// clocks "0 1".
func NewBoardFromFEN(fen string) (*chess.Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, fenError(fen, "empty FEN string")
	}
	if len(parts) > 6 {
		return nil, fenError(fen, "too many fields")
	}

	board := chess.NewBoard()

	if err := parsePiecePositions(board, parts[0]); err != nil {
		return nil, fenError(fen, err.Error())
	}
	if err := parseSideToMove(board, parts); err != nil {
		return nil, fenError(fen, err.Error())
	}
	if err := parseCastlingRights(board, parts); err != nil {
		return nil, fenError(fen, err.Error())
	}
	if err := parseEnPassant(board, parts); err != nil {
		return nil, fenError(fen, err.Error())
	}
	if err := parseClocks(board, parts); err != nil {
		return nil, fenError(fen, err.Error())
	}
	if err := validatePosition(board); err != nil {
		return nil, fenError(fen, err.Error())
	}

	return board, nil
}

func fenError(fen, msg string) error {
	return &errors.ParseError{Err: errors.ErrInvalidFEN, Input: fen, Got: msg}
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(board *chess.Board, positions string) error {
	ranks := strings.Split(positions, "/")
	if len(ranks) != chess.BoardSize {
		return fmt.Errorf("want %d ranks, got %d", chess.BoardSize, len(ranks))
	}

	for row, text := range ranks {
		rank := chess.BoardSize - row
		file := 0
		for i := 0; i < len(text); i++ {
			c := text[i]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			piece, ok := chess.PieceFromFENLetter(c)
			if !ok {
				return fmt.Errorf("invalid piece character %q", c)
			}
			if file >= chess.BoardSize {
				return fmt.Errorf("rank %d overflows", rank)
			}
			board.Set(chess.NewSquare(file, rank), piece)
			file++
		}
		if file != chess.BoardSize {
			return fmt.Errorf("rank %d has %d files", rank, file)
		}
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(board *chess.Board, parts []string) error {
	if len(parts) < 2 {
		return nil
	}
	switch parts[1] {
	case "w":
		board.ToMove = chess.White
	case "b":
		board.ToMove = chess.Black
	default:
		return fmt.Errorf("invalid side to move %q", parts[1])
	}
	return nil
}

// parseCastlingRights parses the castling availability field.
func parseCastlingRights(board *chess.Board, parts []string) error {
	board.Castling = chess.NoCastling
	if len(parts) < 3 || parts[2] == "-" {
		return nil
	}

	for _, c := range parts[2] {
		switch c {
		case 'K':
			board.Castling |= chess.WhiteKingside
		case 'Q':
			board.Castling |= chess.WhiteQueenside
		case 'k':
			board.Castling |= chess.BlackKingside
		case 'q':
			board.Castling |= chess.BlackQueenside
		default:
			return fmt.Errorf("invalid castling character %q", c)
		}
	}
	sanitizeCastling(board)
	return nil
}

// parseEnPassant parses the en passant target square field. A target that
// no pawn could have produced is dropped rather than rejected.
func parseEnPassant(board *chess.Board, parts []string) error {
	board.EnPassant = chess.NoSquare
	if len(parts) < 4 || parts[3] == "-" {
		return nil
	}
	sq, err := chess.ParseSquare(parts[3])
	if err != nil {
		return err
	}
	mover := board.ToMove
	wantRank := 6
	if mover == chess.Black {
		wantRank = 3
	}
	if sq.Rank() != wantRank {
		return fmt.Errorf("en passant square %v on wrong rank", sq)
	}
	victim := enPassantVictim(sq, mover)
	if board.Get(victim) == chess.MakePiece(mover.Opposite(), chess.Pawn) && board.IsEmpty(sq) {
		board.EnPassant = sq
	}
	return nil
}

// parseClocks parses the halfmove clock and fullmove number fields.
func parseClocks(board *chess.Board, parts []string) error {
	if len(parts) >= 5 {
		n, err := strconv.ParseUint(parts[4], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid halfmove clock %q", parts[4])
		}
		board.HalfmoveClock = uint(n)
	}
	if len(parts) >= 6 {
		n, err := strconv.ParseUint(parts[5], 10, 32)
		if err != nil || n == 0 {
			return fmt.Errorf("invalid fullmove number %q", parts[5])
		}
		board.MoveNumber = uint(n)
	}
	return nil
}

// validatePosition enforces the board invariants required for legal play.
func validatePosition(board *chess.Board) error {
	var kings [2]int
	for _, pp := range board.Pieces() {
		switch pp.Piece.Kind() {
		case chess.King:
			kings[pp.Piece.Colour()]++
		case chess.Pawn:
			if r := pp.Square.Rank(); r == 1 || r == 8 {
				return fmt.Errorf("pawn on back rank at %v", pp.Square)
			}
		}
	}
	if kings[chess.White] != 1 || kings[chess.Black] != 1 {
		return fmt.Errorf("want one king per side, got %d white and %d black", kings[chess.White], kings[chess.Black])
	}
	if IsInCheck(board, board.ToMove.Opposite()) {
		return fmt.Errorf("side not to move is in check")
	}
	return nil
}

// BoardToFEN converts a board to a FEN string.
func BoardToFEN(board *chess.Board) string {
	var sb strings.Builder

	writePiecePositions(&sb, board)
	sb.WriteByte(' ')
	writeSideToMove(&sb, board)
	sb.WriteByte(' ')
	sb.WriteString(board.Castling.String())
	sb.WriteByte(' ')
	sb.WriteString(board.EnPassant.String())
	sb.WriteByte(' ')
	fmt.Fprintf(&sb, "%d %d", board.HalfmoveClock, board.MoveNumber)

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *chess.Board) {
	for rank := chess.BoardSize; rank >= 1; rank-- {
		emptyCount := 0
		for file := 0; file < chess.BoardSize; file++ {
			piece := board.Get(chess.NewSquare(file, rank))
			if piece == chess.NoPiece {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(piece.FENLetter())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > 1 {
			sb.WriteByte('/')
		}
	}
}

// writeSideToMove writes the side to move to the builder.
func writeSideToMove(sb *strings.Builder, board *chess.Board) {
	if board.ToMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
}

// NewInitialBoard creates a board with the standard starting position.
func NewInitialBoard() *chess.Board {
	board := chess.NewBoard()
	board.SetupInitialPosition()
	return board
}

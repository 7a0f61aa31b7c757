// Package hashing provides position keys and repetition counting for games.
package hashing

import (
	"github.com/lgbarn/aichess-go/internal/chess"
	"github.com/lgbarn/aichess-go/internal/engine"
)

// Zobrist keys, generated once from a fixed seed so hashes are stable
// between runs.
var (
	zobristPiece      [2][chess.NumPieceKinds][chess.NumSquares]uint64
	zobristEnPassant  [chess.BoardSize]uint64
	zobristCastling   [16]uint64
	zobristSideToMove uint64
)

func init() {
	initZobrist()
}

// prng is an xorshift64* generator.
type prng struct {
	state uint64
}

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := &prng{state: 0x98F107A2BEEF1234}

	for colour := range zobristPiece {
		for kind := chess.Pawn; kind <= chess.King; kind++ {
			for sq := range zobristPiece[colour][kind] {
				zobristPiece[colour][kind][sq] = rng.next()
			}
		}
	}
	for file := range zobristEnPassant {
		zobristEnPassant[file] = rng.next()
	}
	for i := range zobristCastling {
		zobristCastling[i] = rng.next()
	}
	zobristSideToMove = rng.next()
}

// GenerateZobristHash computes the position key of board. Two boards get
// the same key when they agree on piece placement, side to move, castling
// rights and a usable en passant capture. The clocks are not hashed.
func GenerateZobristHash(board *chess.Board) uint64 {
	var hash uint64
	for _, pp := range board.Pieces() {
		hash ^= zobristPiece[pp.Piece.Colour()][pp.Piece.Kind()][pp.Square]
	}
	hash ^= zobristCastling[board.Castling&chess.AllCastling]
	if enPassantCapturable(board) {
		hash ^= zobristEnPassant[board.EnPassant.File()]
	}
	if board.ToMove == chess.Black {
		hash ^= zobristSideToMove
	}
	return hash
}

// enPassantCapturable reports whether the side to move has a legal en
// passant capture. A pinned capturer does not count.
func enPassantCapturable(board *chess.Board) bool {
	if !board.EnPassant.Valid() {
		return false
	}
	// The capturing pawn sits on the victim's rank, one file either side.
	dr := -1
	if board.ToMove == chess.Black {
		dr = 1
	}
	capturer := chess.MakePiece(board.ToMove, chess.Pawn)
	for _, df := range []int{-1, 1} {
		from := board.EnPassant.Offset(df, dr)
		if board.Get(from) == capturer && engine.IsLegal(board, chess.NewMove(from, board.EnPassant)) {
			return true
		}
	}
	return false
}

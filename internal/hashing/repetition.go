package hashing

import (
	"github.com/lgbarn/aichess-go/internal/chess"
)

// FivefoldLimit is the number of occurrences of one position that ends the
// game as a draw.
const FivefoldLimit = 5

// RepetitionTable counts how often each position key has occurred in a
// game. It is not safe for concurrent use; the owner serialises access.
type RepetitionTable struct {
	counts map[uint64]int
	// maxCount tracks the highest count seen since the last reset
	maxCount int
}

// NewRepetitionTable creates an empty table.
func NewRepetitionTable() *RepetitionTable {
	return &RepetitionTable{
		counts: make(map[uint64]int),
	}
}

// Record adds one occurrence of hash and returns its new count.
func (r *RepetitionTable) Record(hash uint64) int {
	r.counts[hash]++
	n := r.counts[hash]
	if n > r.maxCount {
		r.maxCount = n
	}
	return n
}

// RecordBoard records the position key of board.
func (r *RepetitionTable) RecordBoard(board *chess.Board) int {
	return r.Record(GenerateZobristHash(board))
}

// Count returns the number of occurrences of hash.
func (r *RepetitionTable) Count(hash uint64) int {
	return r.counts[hash]
}

// MaxCount returns the highest occurrence count of any position.
func (r *RepetitionTable) MaxCount() int {
	return r.maxCount
}

// IsFivefold reports whether any position has occurred FivefoldLimit
// times.
func (r *RepetitionTable) IsFivefold() bool {
	return r.maxCount >= FivefoldLimit
}

// Len returns the number of distinct positions recorded.
func (r *RepetitionTable) Len() int {
	return len(r.counts)
}

// Reset clears the table.
func (r *RepetitionTable) Reset() {
	r.counts = make(map[uint64]int)
	r.maxCount = 0
}

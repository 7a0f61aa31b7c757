// Package game holds live games: a Session owns one board plus the state
// the rules engine cannot derive from a single position (move history,
// repetition counts, resignation). Manager keeps many sessions keyed by id.
package game

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/lgbarn/aichess-go/internal/chess"
	"github.com/lgbarn/aichess-go/internal/engine"
	"github.com/lgbarn/aichess-go/internal/errors"
	"github.com/lgbarn/aichess-go/internal/hashing"
	"github.com/lgbarn/aichess-go/internal/opponent"
)

// Session is one game. All methods are safe for concurrent use.
type Session struct {
	mu          sync.Mutex
	id          uuid.UUID
	board       *chess.Board
	history     []chess.Move
	repetitions *hashing.RepetitionTable
	// resigned is set when the opponent had no move to offer
	resigned bool
}

// NewSession starts a game from the standard initial position.
func NewSession(id uuid.UUID) *Session {
	return newSession(id, engine.NewInitialBoard())
}

// NewSessionFromFEN starts a game from an arbitrary position.
func NewSessionFromFEN(id uuid.UUID, fen string) (*Session, error) {
	board, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		return nil, err
	}
	return newSession(id, board), nil
}

func newSession(id uuid.UUID, board *chess.Board) *Session {
	s := &Session{
		id:          id,
		board:       board,
		repetitions: hashing.NewRepetitionTable(),
	}
	s.repetitions.RecordBoard(board)
	return s
}

// ID returns the session id.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Board returns a copy of the current position.
func (s *Session) Board() *chess.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Copy()
}

// FEN returns the current position in FEN.
func (s *Session) FEN() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.BoardToFEN(s.board)
}

// History returns the moves played since the session started or was reset.
func (s *Session) History() []chess.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]chess.Move(nil), s.history...)
}

// LegalMoves returns the legal moves for the side to move, or none once
// the game is over.
func (s *Session) LegalMoves() []chess.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status().IsTerminal() {
		return nil
	}
	return engine.LegalMoves(s.board)
}

// Status returns the game status. On top of what the position shows, a
// fivefold repetition is DrawOther and a resignation is GameOver.
func (s *Session) Status() chess.GameStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status()
}

// Snapshot is a consistent view of a session at one instant.
type Snapshot struct {
	Board      *chess.Board
	FEN        string
	Status     chess.GameStatus
	History    []chess.Move
	LegalMoves []chess.Move
}

// LastMove returns the most recent move and whether there is one.
func (snap Snapshot) LastMove() (chess.Move, bool) {
	if len(snap.History) == 0 {
		return chess.Move{}, false
	}
	return snap.History[len(snap.History)-1], true
}

// Snapshot reads everything a caller needs to show the position under a
// single lock, so no move can land between the fields.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		Board:   s.board.Copy(),
		FEN:     engine.BoardToFEN(s.board),
		Status:  s.status(),
		History: append([]chess.Move(nil), s.history...),
	}
	if !snap.Status.IsTerminal() {
		snap.LegalMoves = engine.LegalMoves(s.board)
	}
	return snap
}

func (s *Session) status() chess.GameStatus {
	if status := engine.Status(s.board); status != chess.InProgress {
		return status
	}
	if s.repetitions.IsFivefold() {
		return chess.DrawOther
	}
	if s.resigned {
		return chess.GameOver
	}
	return chess.InProgress
}

// PlayToken parses a coordinate token and plays it. The game-over check
// comes first, then the token's format, then legality. The board is
// unchanged on any error.
func (s *Session) PlayToken(token string) (chess.Move, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkInProgress(token); err != nil {
		return chess.Move{}, err
	}
	move, err := engine.ParseMoveToken(token, s.board)
	if err != nil {
		return chess.Move{}, err
	}
	if err := s.apply(move); err != nil {
		return chess.Move{}, err
	}
	return move, nil
}

// Apply plays move.
func (s *Session) Apply(move chess.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkInProgress(move.String()); err != nil {
		return err
	}
	return s.apply(move)
}

// PlayOpponent asks opp for a move and plays it. When opp reports
// errors.ErrNoMove the game ends as GameOver. The session lock is not held
// while opp thinks; if the position changed meanwhile the reply is
// discarded with ErrIllegalMove.
func (s *Session) PlayOpponent(ctx context.Context, opp opponent.Opponent) (chess.Move, error) {
	s.mu.Lock()
	if err := s.checkInProgress(""); err != nil {
		s.mu.Unlock()
		return chess.Move{}, err
	}
	board := s.board.Copy()
	s.mu.Unlock()

	move, err := opp.ChooseMove(ctx, board)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if errors.Is(err, errors.ErrNoMove) && s.board.Equal(board) {
			s.resigned = true
		}
		return chess.Move{}, err
	}
	if !s.board.Equal(board) {
		return chess.Move{}, &errors.MoveError{
			Err:   errors.Wrap(errors.ErrIllegalMove, "position changed while the opponent was thinking"),
			Token: move.String(),
		}
	}
	if err := s.checkInProgress(move.String()); err != nil {
		return chess.Move{}, err
	}
	if err := s.apply(move); err != nil {
		return chess.Move{}, err
	}
	return move, nil
}

// Reset restarts the game from the standard initial position.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.board = engine.Reset()
	s.history = nil
	s.resigned = false
	s.repetitions.Reset()
	s.repetitions.RecordBoard(s.board)
}

// checkInProgress reports ErrGameOver for any terminal status, including
// the session-level ones engine.Apply cannot see.
func (s *Session) checkInProgress(token string) error {
	if status := s.status(); status.IsTerminal() {
		return &errors.MoveError{
			Err:   errors.Wrapf(errors.ErrGameOver, "status %v", status),
			Token: token,
			FEN:   engine.BoardToFEN(s.board),
			Ply:   len(s.history) + 1,
		}
	}
	return nil
}

func (s *Session) apply(move chess.Move) error {
	next, err := engine.Apply(s.board, move)
	if err != nil {
		var moveErr *errors.MoveError
		if errors.As(err, &moveErr) {
			moveErr.FEN = engine.BoardToFEN(s.board)
			moveErr.Ply = len(s.history) + 1
		}
		return err
	}
	s.board = next
	s.history = append(s.history, move)
	s.repetitions.RecordBoard(next)
	return nil
}

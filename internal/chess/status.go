package chess

// GameStatus is derived from a position; it is never stored on the Board.
type GameStatus int

const (
	InProgress GameStatus = iota
	Checkmate
	Stalemate
	DrawInsufficientMaterial
	// DrawOther covers automatic draws other than insufficient material:
	// the seventy-five-move rule and fivefold repetition.
	DrawOther
	// GameOver is a terminal state with no board-level cause, e.g. after
	// the opponent resigned.
	GameOver
)

// IsTerminal reports whether no further moves may be played.
func (s GameStatus) IsTerminal() bool {
	return s != InProgress
}

// String returns the status name.
func (s GameStatus) String() string {
	switch s {
	case InProgress:
		return "InProgress"
	case Checkmate:
		return "Checkmate"
	case Stalemate:
		return "Stalemate"
	case DrawInsufficientMaterial:
		return "DrawInsufficientMaterial"
	case DrawOther:
		return "DrawOther"
	case GameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Message returns the status line shown to players.
func (s GameStatus) Message() string {
	switch s {
	case InProgress:
		return "Game in progress..."
	case Checkmate:
		return "Checkmate! Game over."
	case Stalemate:
		return "Stalemate! Game over."
	case DrawInsufficientMaterial:
		return "Draw due to insufficient material."
	default:
		return "Game over!"
	}
}

// MarshalText encodes the status by name.
func (s GameStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

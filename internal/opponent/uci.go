package opponent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lgbarn/aichess-go/internal/chess"
	"github.com/lgbarn/aichess-go/internal/engine"
	"github.com/lgbarn/aichess-go/internal/errors"
)

const (
	defaultMoveTime = 500 * time.Millisecond
	// stopTimeout bounds the wait for bestmove after a search is stopped
	stopTimeout = 2 * time.Second
	// quitTimeout bounds the wait for the engine process to exit
	quitTimeout = 2 * time.Second
)

// UCIOptions configures a UCI bridge.
type UCIOptions struct {
	// MoveTime is passed as "go movetime"
	MoveTime time.Duration

	Logger zerolog.Logger
}

// UCI asks an external engine for moves over the UCI line protocol.
// Searches are serialised; the bridge is safe for concurrent use.
type UCI struct {
	mu       sync.Mutex
	w        io.Writer
	lines    <-chan string
	moveTime time.Duration
	log      zerolog.Logger

	name string
	last Evaluation

	// set when the bridge owns a process
	cmd       *exec.Cmd
	stdin     io.Closer
	closeOnce sync.Once
	closeErr  error
}

// StartUCI launches the engine at path and completes the handshake.
func StartUCI(ctx context.Context, path string, opts UCIOptions) (*UCI, error) {
	cmd := exec.Command(path)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, errors.Wrap(err, "uci stdin")
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.Wrap(err, "uci stdout")
	}
	if err := cmd.Start(); err != nil {
		return nil, errors.Wrapf(err, "start engine %q", path)
	}

	u, err := NewUCIFromPipes(ctx, stdout, stdin, opts)
	if err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return nil, err
	}
	u.cmd = cmd
	u.stdin = stdin
	u.log.Info().Str("path", path).Str("engine", u.name).Msg("engine started")
	return u, nil
}

// NewUCIFromPipes runs the handshake over r and w: uci/uciok, then a new
// game and isready/readyok.
func NewUCIFromPipes(ctx context.Context, r io.Reader, w io.Writer, opts UCIOptions) (*UCI, error) {
	u := &UCI{
		w:        w,
		lines:    readLines(r),
		moveTime: opts.MoveTime,
		log:      opts.Logger.With().Str("component", "uci").Logger(),
	}
	if u.moveTime <= 0 {
		u.moveTime = defaultMoveTime
	}

	if err := u.send("uci"); err != nil {
		return nil, err
	}
	err := u.waitFor(ctx, "uciok", func(line string) {
		if name, ok := strings.CutPrefix(line, "id name "); ok {
			u.name = name
		}
	})
	if err != nil {
		return nil, errors.Wrap(err, "uci handshake")
	}
	if err := u.newGame(ctx); err != nil {
		return nil, err
	}
	return u, nil
}

// readLines feeds r's lines into a channel that is closed at EOF.
func readLines(r io.Reader) <-chan string {
	ch := make(chan string, 64)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			ch <- scanner.Text()
		}
	}()
	return ch
}

// Name returns the engine's self-reported name.
func (u *UCI) Name() string {
	return u.name
}

// LastEvaluation returns the evaluation reported during the last search.
func (u *UCI) LastEvaluation() Evaluation {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.last
}

// NewGame tells the engine a new game starts.
func (u *UCI) NewGame(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.newGame(ctx)
}

func (u *UCI) newGame(ctx context.Context) error {
	if err := u.send("ucinewgame"); err != nil {
		return err
	}
	return u.ready(ctx)
}

func (u *UCI) ready(ctx context.Context) error {
	if err := u.send("isready"); err != nil {
		return err
	}
	return u.waitFor(ctx, "readyok", nil)
}

// ChooseMove implements Opponent. On cancellation the engine is told to
// stop and ctx.Err() is returned.
func (u *UCI) ChooseMove(ctx context.Context, board *chess.Board) (chess.Move, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	fen := engine.BoardToFEN(board)
	if err := u.send("position fen " + fen); err != nil {
		return chess.Move{}, err
	}
	if err := u.send(fmt.Sprintf("go movetime %d", u.moveTime.Milliseconds())); err != nil {
		return chess.Move{}, err
	}

	var eval Evaluation
	for {
		select {
		case <-ctx.Done():
			u.log.Debug().Str("fen", fen).Msg("search cancelled")
			_ = u.send("stop")
			u.drainBestMove()
			return chess.Move{}, ctx.Err()
		case line, ok := <-u.lines:
			if !ok {
				return chess.Move{}, errors.Wrap(errors.ErrEngineProtocol, "engine closed its output")
			}
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			switch fields[0] {
			case "info":
				parseInfo(line, &eval)
			case "bestmove":
				if len(fields) < 2 {
					return chess.Move{}, errors.Wrap(errors.ErrEngineProtocol, "bestmove without a move")
				}
				eval.BestMove = fields[1]
				u.last = eval
				u.log.Debug().
					Str("fen", fen).
					Str("move", fields[1]).
					Int("depth", eval.Depth).
					Str("eval", FormatEvaluation(&eval)).
					Msg("bestmove")
				return bestMove(board, fen, fields[1])
			}
		}
	}
}

// bestMove converts the engine's reply into a legal move for board.
func bestMove(board *chess.Board, fen, token string) (chess.Move, error) {
	if token == "(none)" || token == "0000" {
		return chess.Move{}, noMove(board)
	}
	move, err := engine.ParseMoveToken(token, board)
	if err != nil {
		return chess.Move{}, &errors.MoveError{
			Err:   errors.Wrapf(errors.ErrEngineProtocol, "unreadable bestmove (%v)", err),
			Token: token,
			FEN:   fen,
		}
	}
	if !engine.IsLegal(board, move) {
		return chess.Move{}, &errors.MoveError{
			Err:   errors.Wrap(errors.ErrEngineProtocol, "illegal bestmove"),
			Token: token,
			FEN:   fen,
		}
	}
	return move, nil
}

// drainBestMove discards output until the stopped search reports its
// move, so the next search starts in sync.
func (u *UCI) drainBestMove() {
	timer := time.NewTimer(stopTimeout)
	defer timer.Stop()
	for {
		select {
		case <-timer.C:
			u.log.Warn().Msg("no bestmove after stop")
			return
		case line, ok := <-u.lines:
			if !ok || strings.HasPrefix(line, "bestmove") {
				return
			}
		}
	}
}

// waitFor reads lines until one equals token, handing the others to
// onLine.
func (u *UCI) waitFor(ctx context.Context, token string, onLine func(string)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-u.lines:
			if !ok {
				return errors.Wrapf(errors.ErrEngineProtocol, "engine closed its output before %q", token)
			}
			if strings.TrimSpace(line) == token {
				return nil
			}
			if onLine != nil {
				onLine(line)
			}
		}
	}
}

func (u *UCI) send(command string) error {
	u.log.Trace().Str("cmd", command).Msg("send")
	if _, err := io.WriteString(u.w, command+"\n"); err != nil {
		return errors.Wrapf(err, "write %q", command)
	}
	return nil
}

// Close sends quit and, for a launched engine, waits for the process to
// exit, killing it if it does not.
func (u *UCI) Close() error {
	u.closeOnce.Do(func() {
		u.mu.Lock()
		defer u.mu.Unlock()

		_ = u.send("quit")
		if u.stdin != nil {
			_ = u.stdin.Close()
		}
		if u.cmd == nil {
			return
		}
		done := make(chan error, 1)
		go func() { done <- u.cmd.Wait() }()
		select {
		case u.closeErr = <-done:
		case <-time.After(quitTimeout):
			u.log.Warn().Msg("engine ignored quit; killing")
			_ = u.cmd.Process.Kill()
			u.closeErr = <-done
		}
	})
	return u.closeErr
}

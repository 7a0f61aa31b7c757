package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/lgbarn/aichess-go/internal/errors"
	"github.com/lgbarn/aichess-go/internal/game"
	"github.com/lgbarn/aichess-go/internal/opponent"
	"github.com/lgbarn/aichess-go/internal/render"
)

const consoleHelp = `Enter moves in UCI form, e.g. e2e4, g1f3, e7e8q.
Commands: moves, fen, reset, help, quit`

// runConsole plays one game per reset on in/out. The human plays White
// and opp answers every accepted move. It returns when in is exhausted,
// on quit, or as soon as ctx is cancelled, even while waiting for input.
func runConsole(ctx context.Context, opp opponent.Opponent, in io.Reader, out io.Writer) error {
	sess := game.NewSession(uuid.New())
	fmt.Fprintln(out, consoleHelp)
	fmt.Fprintln(out)
	printPosition(out, sess)

	lines, readErr := readLines(ctx, in)
	for {
		fmt.Fprint(out, "> ")
		var text string
		var ok bool
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case text, ok = <-lines:
		}
		if !ok {
			fmt.Fprintln(out)
			return <-readErr
		}

		line := strings.TrimSpace(text)
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprintln(out, consoleHelp)
			continue
		case "fen":
			fmt.Fprintln(out, sess.FEN())
			continue
		case "moves":
			var tokens []string
			for _, m := range sess.LegalMoves() {
				tokens = append(tokens, m.String())
			}
			sort.Strings(tokens)
			fmt.Fprintln(out, strings.Join(tokens, " "))
			continue
		case "reset":
			sess.Reset()
			if err := opponent.StartGame(ctx, opp); err != nil {
				return err
			}
			printPosition(out, sess)
			continue
		}

		if _, err := sess.PlayToken(line); err != nil {
			fmt.Fprintf(out, "%s. Try again.\n", rejection(err))
			continue
		}
		if sess.Status().IsTerminal() {
			printPosition(out, sess)
			continue
		}

		move, err := sess.PlayOpponent(ctx, opp)
		switch {
		case err == nil:
			fmt.Fprintf(out, "Computer plays %s\n", move)
		case errors.Is(err, errors.ErrNoMove):
			fmt.Fprintln(out, "Computer resigns.")
		case ctx.Err() != nil:
			return nil
		default:
			return err
		}
		printPosition(out, sess)
	}
}

// readLines scans in on its own goroutine so a blocked read cannot hold
// up cancellation. lines is closed when scanning stops; the scan error,
// if any, is then available on the second channel.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- nil
				return
			}
		}
		errc <- scanner.Err()
	}()
	return lines, errc
}

func printPosition(out io.Writer, sess *game.Session) {
	snap := sess.Snapshot()
	fmt.Fprint(out, render.Diagram(snap.Board))
	fmt.Fprintln(out, snap.Status.Message())
}

// rejection gives the message shown for a refused move, matching the web
// front end.
func rejection(err error) string {
	switch {
	case errors.Is(err, errors.ErrGameOver):
		return "Game over"
	case errors.Is(err, errors.ErrParse):
		return "Invalid move format"
	default:
		return "Invalid move"
	}
}

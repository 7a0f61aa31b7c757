package opponent

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// fakeEngine answers the UCI protocol over pipes. onGo returns the lines
// to send for a "go" command; returning nil leaves the search running
// until "stop" arrives.
type fakeEngine struct {
	onGo func(position string) []string

	mu       sync.Mutex
	commands []string
	done     chan struct{}
}

// startFakeEngine wires a bridge to a fake engine and returns both.
func startFakeEngine(t *testing.T, onGo func(position string) []string) (*UCI, *fakeEngine) {
	t.Helper()
	f := &fakeEngine{onGo: onGo, done: make(chan struct{})}

	cmdR, cmdW := io.Pipe()
	replyR, replyW := io.Pipe()
	go f.run(cmdR, replyW)
	t.Cleanup(func() {
		cmdW.Close()
		replyR.Close()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	u, err := NewUCIFromPipes(ctx, replyR, cmdW, UCIOptions{MoveTime: 250 * time.Millisecond, Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("NewUCIFromPipes() error = %v", err)
	}
	return u, f
}

func (f *fakeEngine) run(in io.Reader, out io.WriteCloser) {
	defer close(f.done)
	defer out.Close()

	send := func(lines ...string) {
		for _, l := range lines {
			io.WriteString(out, l+"\n")
		}
	}
	var position string
	searching := false

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		cmd := scanner.Text()
		f.mu.Lock()
		f.commands = append(f.commands, cmd)
		f.mu.Unlock()

		switch {
		case cmd == "uci":
			send("id name Fake 1.0", "id author nobody", "option name Hash type spin default 16", "uciok")
		case cmd == "isready":
			send("readyok")
		case strings.HasPrefix(cmd, "position fen "):
			position = strings.TrimPrefix(cmd, "position fen ")
		case strings.HasPrefix(cmd, "go"):
			if lines := f.onGo(position); lines != nil {
				send(lines...)
			} else {
				searching = true
			}
		case cmd == "stop":
			if searching {
				searching = false
				send("bestmove e2e4")
			}
		case cmd == "quit":
			return
		}
	}
}

func (f *fakeEngine) received() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.commands...)
}

func (f *fakeEngine) saw(cmd string) bool {
	for _, c := range f.received() {
		if c == cmd {
			return true
		}
	}
	return false
}

package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lgbarn/aichess-go/internal/config"
	"github.com/lgbarn/aichess-go/internal/errors"
	"github.com/lgbarn/aichess-go/internal/testutil"
)

func TestRunPerft(t *testing.T) {
	var out strings.Builder
	err := runPerft(context.Background(), &config.PerftConfig{Depth: 2}, &out)
	testutil.AssertNoError(t, err)

	testutil.AssertContains(t, out.String(), "e2e4: 20\n")
	testutil.AssertContains(t, out.String(), "Nodes searched: 400\n")
	testutil.AssertEqual(t, strings.Count(out.String(), ": 20\n"), 20)
}

func TestRunPerft_Kiwipete(t *testing.T) {
	var out strings.Builder
	err := runPerft(context.Background(), &config.PerftConfig{Depth: 2, FEN: testutil.KiwipeteFEN}, &out)
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, out.String(), "e1g1: 43\n")
	testutil.AssertContains(t, out.String(), "Nodes searched: 2039\n")
}

func TestRunPerft_BadFEN(t *testing.T) {
	var out strings.Builder
	err := runPerft(context.Background(), &config.PerftConfig{Depth: 1, FEN: "not a fen"}, &out)
	testutil.AssertErrorIs(t, err, errors.ErrInvalidFEN)
}

func TestRun_Console(t *testing.T) {
	cfg, err := config.NewConfigBuilder().WithMode(config.ConsoleMode).WithRandomOpponent(7).Build()
	testutil.AssertNoError(t, err)

	var out strings.Builder
	err = run(context.Background(), cfg, zerolog.Nop(), strings.NewReader("e2e4\nquit\n"), &out)
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, out.String(), "Computer plays ")
}

func TestRun_MissingEngine(t *testing.T) {
	cfg, err := config.NewConfigBuilder().
		WithMode(config.ConsoleMode).
		WithUCIOpponent("/nonexistent/aichess-engine", time.Second).
		Build()
	testutil.AssertNoError(t, err)

	var out strings.Builder
	if err := run(context.Background(), cfg, zerolog.Nop(), strings.NewReader(""), &out); err == nil {
		t.Error("run() with a missing engine succeeded")
	}
}

func TestRunWeb_ShutsDownOnCancel(t *testing.T) {
	cfg, err := config.NewConfigBuilder().WithAddr("127.0.0.1:0").WithRandomOpponent(1).Build()
	testutil.AssertNoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg, zerolog.Nop(), strings.NewReader(""), &strings.Builder{}) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		testutil.AssertNoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run() did not return after cancel")
	}
}

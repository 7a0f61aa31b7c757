package main

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lgbarn/aichess-go/internal/config"
	"github.com/lgbarn/aichess-go/internal/errors"
)

// Mode selection
var (
	mode = flag.String("mode", getenv("AICHESS_MODE", "web"), "Front end: web, console or perft")
)

// Web server flags
var (
	addr        = flag.String("addr", getenv("AICHESS_ADDR", ":5000"), "Listen address for web mode")
	maxSessions = flag.Int("max-sessions", getenvInt("AICHESS_MAX_SESSIONS", 1024), "Maximum live games; the least recently used is dropped")
)

// Opponent flags
var (
	opponentKind = flag.String("opponent", getenv("AICHESS_OPPONENT", "random"), "Computer opponent: random or uci")
	enginePath   = flag.String("engine", getenv("AICHESS_ENGINE", "stockfish"), "UCI engine binary (with -opponent uci)")
	moveTime     = flag.Duration("movetime", 500*time.Millisecond, "Engine thinking time per move")
	seed         = flag.Int64("seed", 0, "Random opponent seed (0 = time based)")
)

// Logging flags
var (
	logLevel  = flag.String("log-level", getenv("AICHESS_LOG_LEVEL", "info"), "Log level: debug, info, warn, error")
	logFormat = flag.String("log-format", getenv("AICHESS_LOG_FORMAT", "console"), "Log format: console or json")
)

// Perft flags
var (
	perftDepth = flag.Int("depth", 4, "Perft depth (with -mode perft)")
	perftFEN   = flag.String("fen", "", "Perft root position (default: initial position)")
)

// Informational flags
var (
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// buildConfig turns the parsed flags into a validated Config.
func buildConfig() (*config.Config, error) {
	m, err := config.ParseMode(strings.ToLower(*mode))
	if err != nil {
		return nil, err
	}

	b := config.NewConfigBuilder().
		WithMode(m).
		WithAddr(*addr).
		WithMaxSessions(*maxSessions).
		WithLogLevel(strings.ToLower(*logLevel)).
		WithLogFormat(config.LogFormat(strings.ToLower(*logFormat))).
		WithLogOutput(os.Stderr).
		WithPerft(*perftDepth, *perftFEN)

	switch config.OpponentKind(strings.ToLower(*opponentKind)) {
	case config.UCIOpponent:
		b.WithUCIOpponent(*enginePath, *moveTime)
	case config.RandomOpponent:
		b.WithRandomOpponent(*seed)
	default:
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "unknown opponent %q", *opponentKind)
	}
	return b.Build()
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

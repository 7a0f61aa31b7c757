// aichess lets a human play chess against a computer opponent, in the
// browser or on the terminal. It can also run perft counts for checking
// the move generator.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lgbarn/aichess-go/internal/config"
	"github.com/lgbarn/aichess-go/internal/game"
	"github.com/lgbarn/aichess-go/internal/httpx"
	"github.com/lgbarn/aichess-go/internal/opponent"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("aichess version %s\n", programVersion)
		os.Exit(0)
	}

	cfg, err := buildConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	logger, err := cfg.Log.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Stdin, os.Stdout); err != nil {
		logger.Error().Err(err).Msg("exiting")
		stop()
		os.Exit(1)
	}
}

// run starts the front end selected by cfg.Mode and blocks until it ends
// or ctx is cancelled.
func run(ctx context.Context, cfg *config.Config, log zerolog.Logger, in io.Reader, out io.Writer) error {
	if cfg.Mode == config.PerftMode {
		return runPerft(ctx, cfg.Perft, out)
	}

	opp, err := opponent.New(ctx, cfg.Opponent, log)
	if err != nil {
		return err
	}
	if c, ok := opp.(io.Closer); ok {
		defer func() {
			if err := c.Close(); err != nil {
				log.Warn().Err(err).Msg("closing opponent")
			}
		}()
	}

	switch cfg.Mode {
	case config.ConsoleMode:
		return runConsole(ctx, opp, in, out)
	default:
		return runWeb(ctx, cfg.Server, opp, log)
	}
}

// runWeb serves the browser front end until ctx is cancelled, then shuts
// down gracefully.
func runWeb(ctx context.Context, cfg *config.ServerConfig, opp opponent.Opponent, log zerolog.Logger) error {
	sessions, err := game.NewManager(cfg.MaxSessions, func(s *game.Session) {
		log.Debug().Str("session", s.ID().String()).Msg("session evicted")
	})
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv, err := httpx.NewServer(cfg, sessions, opp, log, reg)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Listen(cfg.Addr)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info().Msg("shutting down")
		return srv.Close(shutdownCtx)
	})
	return g.Wait()
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: aichess [options]\n\n")
	fmt.Fprintf(os.Stderr, "Play chess against a computer opponent.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nModes (-mode):\n")
	fmt.Fprintf(os.Stderr, "  web      Browser board on -addr (default)\n")
	fmt.Fprintf(os.Stderr, "  console  Type moves such as e2e4 on stdin; you play White\n")
	fmt.Fprintf(os.Stderr, "  perft    Print move generation counts for -fen at -depth\n")
	fmt.Fprintf(os.Stderr, "\nEnvironment: AICHESS_MODE, AICHESS_ADDR, AICHESS_MAX_SESSIONS, AICHESS_OPPONENT,\n")
	fmt.Fprintf(os.Stderr, "AICHESS_ENGINE, AICHESS_LOG_LEVEL and AICHESS_LOG_FORMAT set flag defaults.\n")
}

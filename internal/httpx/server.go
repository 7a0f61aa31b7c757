// Package httpx serves the browser front end: a page that shows the board
// and a small JSON API for submitting moves, asking the opponent to reply
// and restarting the game. Each browser gets its own session, tracked by
// cookie.
package httpx

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/lgbarn/aichess-go/internal/chess"
	"github.com/lgbarn/aichess-go/internal/config"
	"github.com/lgbarn/aichess-go/internal/errors"
	"github.com/lgbarn/aichess-go/internal/game"
	"github.com/lgbarn/aichess-go/internal/opponent"
	"github.com/lgbarn/aichess-go/internal/render"
)

//go:embed templates/index.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	// SessionCookie names the cookie carrying the session ID.
	SessionCookie = "aichess_session"

	maxJSONBodyBytes int64 = 1 << 12
	boardSquareSize        = 60
	opponentDelay          = 500 * time.Millisecond

	htmlCSP = "default-src 'self'; script-src 'self'; style-src 'self'; img-src 'self' data:; connect-src 'self'; frame-ancestors 'none'; base-uri 'none'; form-action 'self'"
	apiCSP  = "default-src 'none'; frame-ancestors 'none'; base-uri 'none'"
)

// Plain-text bodies returned by /user-move when a move is rejected.
const (
	msgGameOver      = "Game over"
	msgInvalidFormat = "Invalid move format"
	msgInvalidMove   = "Invalid move"
)

// Server wires the HTTP layer to game sessions and the opponent.
type Server struct {
	cfg      *config.ServerConfig
	sessions *game.Manager
	opp      opponent.Opponent
	log      zerolog.Logger
	tmpl     *template.Template
	reg      *prometheus.Registry
	metrics  *metrics
	handler  http.Handler

	srvMu  sync.Mutex
	srv    *http.Server
	closed bool
}

// NewServer builds a Server. Metrics are registered on reg; a nil reg
// gets a private registry.
func NewServer(cfg *config.ServerConfig, sessions *game.Manager, opp opponent.Opponent, log zerolog.Logger, reg *prometheus.Registry) (*Server, error) {
	if cfg == nil {
		cfg = config.NewServerConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sessions == nil || opp == nil {
		return nil, errors.Wrap(errors.ErrInvalidConfig, "server needs a session manager and an opponent")
	}
	tmpl, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, errors.Wrap(err, "parse templates")
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	s := &Server{
		cfg:      cfg,
		sessions: sessions,
		opp:      opp,
		log:      log.With().Str("component", "httpx").Logger(),
		tmpl:     tmpl,
		reg:      reg,
		metrics:  newMetrics(reg, sessions),
	}
	s.handler = s.withAccessLog(s.routes())
	return s, nil
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Listen serves until Close is called. It returns nil after a graceful
// shutdown.
func (s *Server) Listen(addr string) error {
	if addr == "" {
		addr = s.cfg.Addr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	s.srvMu.Lock()
	if s.closed {
		s.srvMu.Unlock()
		return nil
	}
	s.srv = srv
	s.srvMu.Unlock()
	defer func() {
		s.srvMu.Lock()
		s.srv = nil
		s.srvMu.Unlock()
	}()

	s.log.Info().Str("addr", addr).Msg("HTTP listening")
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close attempts a graceful shutdown of the HTTP server. A Listen that
// starts after Close returns at once.
func (s *Server) Close(ctx context.Context) error {
	s.srvMu.Lock()
	srv := s.srv
	s.closed = true
	s.srvMu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)

	mux.HandleFunc("/board", s.withJSON(s.handleBoard))
	mux.HandleFunc("/user-move", s.withAPI(s.handleUserMove))
	mux.HandleFunc("/ai-move", s.withAPI(s.handleAIMove))
	mux.HandleFunc("/reset", s.withAPI(s.handleReset))

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	mux.Handle("/metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{Registry: s.reg}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// ---- sessions ----

// session returns the caller's session, creating one and setting the
// cookie when the request carries no known ID.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *game.Session {
	id := uuid.Nil
	if c, err := r.Cookie(SessionCookie); err == nil {
		if parsed, err := uuid.Parse(c.Value); err == nil {
			id = parsed
		}
	}
	sess, created := s.sessions.GetOrCreate(id)
	if created {
		s.log.Debug().Str("session", sess.ID().String()).Msg("new session")
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    sess.ID().String(),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess
}

// ---- UI ----

type indexData struct {
	Title               string
	Status              string
	OpponentDelayMillis int64
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	applyHTMLSecurityHeaders(w.Header())
	sess := s.session(w, r)

	data := indexData{
		Title:               "Play Chess Against AI",
		Status:              sess.Status().Message(),
		OpponentDelayMillis: opponentDelay.Milliseconds(),
	}
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "index", data); err != nil {
		s.log.Error().Err(err).Msg("template exec")
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// ---- API: board ----

type boardResponse struct {
	SVG    string           `json:"svg"`
	Status string           `json:"status"`
	State  chess.GameStatus `json:"state"`
	FEN    string           `json:"fen"`
	ToMove string           `json:"to_move"`
	Moves  []string         `json:"moves"`
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	snap := s.session(w, r).Snapshot()

	opts := render.SVGOptions{
		SquareSize:     boardSquareSize,
		Coordinates:    true,
		HighlightCheck: true,
	}
	if last, ok := snap.LastMove(); ok {
		opts.LastMove = last
	}
	var svg strings.Builder
	if err := render.SVG(&svg, snap.Board, opts); err != nil {
		s.log.Error().Err(err).Msg("render board")
		writeError(w, http.StatusInternalServerError, "render failed")
		return
	}

	moves := make([]string, 0, len(snap.LegalMoves))
	for _, m := range snap.LegalMoves {
		moves = append(moves, m.String())
	}
	writeJSON(w, boardResponse{
		SVG:    svg.String(),
		Status: snap.Status.Message(),
		State:  snap.Status,
		FEN:    snap.FEN,
		ToMove: strings.ToLower(snap.Board.ToMove.String()),
		Moves:  moves,
	})
}

// ---- API: moves ----

type moveBody struct {
	Move string `json:"move"`
}

func (s *Server) handleUserMove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeText(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	defer r.Body.Close()
	sess := s.session(w, r)

	var body moveBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if isBodyTooLarge(err) {
			writeText(w, http.StatusRequestEntityTooLarge, "request too large")
			return
		}
		if sess.Status().IsTerminal() {
			s.rejectMove(w, sess, body.Move, errors.ErrGameOver)
			return
		}
		s.rejectMove(w, sess, body.Move, errors.ErrParse)
		return
	}

	move, err := sess.PlayToken(strings.TrimSpace(body.Move))
	if err != nil {
		s.rejectMove(w, sess, body.Move, err)
		return
	}
	s.metrics.moves.WithLabelValues(sourceUser, resultOK).Inc()
	s.log.Debug().
		Str("session", sess.ID().String()).
		Str("move", move.String()).
		Msg("user move")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) rejectMove(w http.ResponseWriter, sess *game.Session, token string, err error) {
	var msg, result string
	switch {
	case errors.Is(err, errors.ErrGameOver):
		msg, result = msgGameOver, resultGameOver
	case errors.Is(err, errors.ErrParse):
		msg, result = msgInvalidFormat, resultInvalidFormat
	default:
		msg, result = msgInvalidMove, resultIllegal
	}
	s.metrics.moves.WithLabelValues(sourceUser, result).Inc()
	s.log.Debug().
		Str("session", sess.ID().String()).
		Str("token", token).
		Err(err).
		Msg("move rejected")
	writeText(w, http.StatusBadRequest, msg)
}

func (s *Server) handleAIMove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeText(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	sess := s.session(w, r)

	start := time.Now()
	move, err := sess.PlayOpponent(r.Context(), s.opp)
	s.metrics.opponentTime.Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		s.metrics.moves.WithLabelValues(sourceOpponent, resultOK).Inc()
		s.log.Debug().
			Str("session", sess.ID().String()).
			Str("move", move.String()).
			Msg("opponent move")
	case errors.Is(err, errors.ErrGameOver):
		s.metrics.moves.WithLabelValues(sourceOpponent, resultGameOver).Inc()
	case errors.Is(err, errors.ErrNoMove):
		s.metrics.moves.WithLabelValues(sourceOpponent, resultNoMove).Inc()
		s.log.Info().Str("session", sess.ID().String()).Msg("opponent has no move")
	case errors.Is(err, errors.ErrIllegalMove):
		// The position changed while the opponent searched; the newer
		// request wins.
		s.metrics.moves.WithLabelValues(sourceOpponent, resultIllegal).Inc()
	default:
		s.metrics.moves.WithLabelValues(sourceOpponent, resultError).Inc()
		s.log.Error().Err(err).Str("session", sess.ID().String()).Msg("opponent failed")
		writeText(w, http.StatusServiceUnavailable, "opponent unavailable")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- API: reset ----

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeText(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	sess := s.session(w, r)
	sess.Reset()
	if err := opponent.StartGame(r.Context(), s.opp); err != nil {
		s.log.Warn().Err(err).Msg("opponent new game")
	}
	s.log.Debug().Str("session", sess.ID().String()).Msg("reset")
	w.WriteHeader(http.StatusNoContent)
}

// ---- middleware ----

func (s *Server) withJSON(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applyAPISecurityHeaders(w.Header())
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		h(w, r)
	}
}

func (s *Server) withAPI(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applyAPISecurityHeaders(w.Header())
		if r.Body != nil && r.Body != http.NoBody {
			r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
		}
		h(w, r)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(p []byte) (int, error) {
	if rec.status == 0 {
		rec.status = http.StatusOK
	}
	return rec.ResponseWriter.Write(p)
}

var knownRoutes = map[string]bool{
	"/": true, "/board": true, "/user-move": true, "/ai-move": true,
	"/reset": true, "/metrics": true, "/healthz": true,
}

func (s *Server) withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}

		route := r.URL.Path
		if strings.HasPrefix(route, "/static/") {
			route = "/static/"
		} else if !knownRoutes[route] {
			route = "other"
		}
		s.metrics.requests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()

		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// ---- helpers ----

func writeJSON(w http.ResponseWriter, v any) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	writeJSON(w, map[string]string{"error": msg})
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}

func applyHTMLSecurityHeaders(h http.Header) {
	h.Set("Content-Security-Policy", htmlCSP)
	h.Set("Cross-Origin-Opener-Policy", "same-origin")
	h.Set("X-Content-Type-Options", "nosniff")
}

func applyAPISecurityHeaders(h http.Header) {
	h.Set("Content-Security-Policy", apiCSP)
	h.Set("Cross-Origin-Opener-Policy", "same-origin")
	h.Set("X-Content-Type-Options", "nosniff")
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

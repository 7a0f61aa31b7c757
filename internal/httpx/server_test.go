package httpx

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbarn/aichess-go/internal/chess"
	"github.com/lgbarn/aichess-go/internal/errors"
	"github.com/lgbarn/aichess-go/internal/game"
	"github.com/lgbarn/aichess-go/internal/opponent"
)

const foolsMateFEN = "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"

type funcOpponent func(ctx context.Context, board *chess.Board) (chess.Move, error)

func (f funcOpponent) ChooseMove(ctx context.Context, board *chess.Board) (chess.Move, error) {
	return f(ctx, board)
}

type testClient struct {
	t       *testing.T
	handler http.Handler
	cookie  *http.Cookie
}

func newTestServer(t *testing.T, opp opponent.Opponent) (*Server, *game.Manager) {
	t.Helper()
	sessions, err := game.NewManager(16, nil)
	require.NoError(t, err)
	if opp == nil {
		opp = opponent.NewRandom(1)
	}
	srv, err := NewServer(nil, sessions, opp, zerolog.Nop(), prometheus.NewRegistry())
	require.NoError(t, err)
	return srv, sessions
}

func (c *testClient) do(method, path, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == SessionCookie {
			c.cookie = ck
		}
	}
	return rec
}

type boardView struct {
	SVG    string   `json:"svg"`
	Status string   `json:"status"`
	State  string   `json:"state"`
	FEN    string   `json:"fen"`
	ToMove string   `json:"to_move"`
	Moves  []string `json:"moves"`
}

func (c *testClient) board() boardView {
	c.t.Helper()
	rec := c.do(http.MethodGet, "/board", "")
	require.Equal(c.t, http.StatusOK, rec.Code)
	var b boardView
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &b))
	return b
}

func TestIndex(t *testing.T) {
	srv, sessions := newTestServer(t, nil)
	c := &testClient{t: t, handler: srv.Handler()}

	rec := c.do(http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Play Chess Against AI")
	assert.Contains(t, rec.Body.String(), "/static/app.js")
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "script-src 'self'")
	require.NotNil(t, c.cookie)
	assert.True(t, c.cookie.HttpOnly)
	assert.Equal(t, 1, sessions.Len())

	rec = c.do(http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStaticAssets(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	c := &testClient{t: t, handler: srv.Handler()}

	rec := c.do(http.MethodGet, "/static/app.js", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/user-move")
}

func TestBoard_Initial(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	c := &testClient{t: t, handler: srv.Handler()}

	b := c.board()
	assert.Contains(t, b.SVG, "<svg")
	assert.Equal(t, "Game in progress...", b.Status)
	assert.Equal(t, chess.InProgress.String(), b.State)
	assert.Equal(t, "white", b.ToMove)
	assert.Len(t, b.Moves, 20)
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", b.FEN)
}

func TestUserMove(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	c := &testClient{t: t, handler: srv.Handler()}

	rec := c.do(http.MethodPost, "/user-move", `{"move":"e2e4"}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	b := c.board()
	assert.Equal(t, "black", b.ToMove)
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", b.FEN)
}

func TestUserMove_Rejected(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad token", `{"move":"e2"}`, "Invalid move format"},
		{"off the board", `{"move":"e9e4"}`, "Invalid move format"},
		{"not json", `move=e2e4`, "Invalid move format"},
		{"missing move", `{}`, "Invalid move format"},
		{"illegal", `{"move":"e2e5"}`, "Invalid move"},
		{"wrong side", `{"move":"e7e5"}`, "Invalid move"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, nil)
			c := &testClient{t: t, handler: srv.Handler()}
			before := c.board().FEN

			rec := c.do(http.MethodPost, "/user-move", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.want, rec.Body.String())
			assert.Equal(t, before, c.board().FEN)
		})
	}
}

func TestUserMove_GameOver(t *testing.T) {
	srv, sessions := newTestServer(t, nil)
	sess, err := game.NewSessionFromFEN(uuid.New(), foolsMateFEN)
	require.NoError(t, err)
	sessions.Add(sess)
	c := &testClient{t: t, handler: srv.Handler(), cookie: &http.Cookie{Name: SessionCookie, Value: sess.ID().String()}}

	b := c.board()
	assert.Equal(t, chess.Checkmate.String(), b.State)
	assert.Equal(t, "Checkmate! Game over.", b.Status)
	assert.Empty(t, b.Moves)

	// Game over is reported before the token is even looked at.
	for _, body := range []string{`{"move":"e2e4"}`, `{"move":"zz"}`, `garbage`} {
		rec := c.do(http.MethodPost, "/user-move", body)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Game over", rec.Body.String())
	}
}

func TestAIMove(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	c := &testClient{t: t, handler: srv.Handler()}

	require.Equal(t, http.StatusNoContent, c.do(http.MethodPost, "/user-move", `{"move":"d2d4"}`).Code)
	require.Equal(t, http.StatusNoContent, c.do(http.MethodPost, "/ai-move", "").Code)

	b := c.board()
	assert.Equal(t, "white", b.ToMove)
	assert.Equal(t, chess.InProgress.String(), b.State)
}

func TestAIMove_GameOverIsNoContent(t *testing.T) {
	called := false
	srv, sessions := newTestServer(t, funcOpponent(func(context.Context, *chess.Board) (chess.Move, error) {
		called = true
		return chess.Move{}, nil
	}))
	sess, err := game.NewSessionFromFEN(uuid.New(), foolsMateFEN)
	require.NoError(t, err)
	sessions.Add(sess)
	c := &testClient{t: t, handler: srv.Handler(), cookie: &http.Cookie{Name: SessionCookie, Value: sess.ID().String()}}

	assert.Equal(t, http.StatusNoContent, c.do(http.MethodPost, "/ai-move", "").Code)
	assert.False(t, called, "opponent consulted after the game ended")
}

func TestAIMove_NoMoveEndsGame(t *testing.T) {
	srv, _ := newTestServer(t, funcOpponent(func(context.Context, *chess.Board) (chess.Move, error) {
		return chess.Move{}, errors.ErrNoMove
	}))
	c := &testClient{t: t, handler: srv.Handler()}

	require.Equal(t, http.StatusNoContent, c.do(http.MethodPost, "/user-move", `{"move":"e2e4"}`).Code)
	require.Equal(t, http.StatusNoContent, c.do(http.MethodPost, "/ai-move", "").Code)

	b := c.board()
	assert.Equal(t, chess.GameOver.String(), b.State)
	assert.Equal(t, "Game over!", b.Status)
}

func TestAIMove_OpponentFailure(t *testing.T) {
	srv, _ := newTestServer(t, funcOpponent(func(context.Context, *chess.Board) (chess.Move, error) {
		return chess.Move{}, errors.Wrap(errors.ErrEngineProtocol, "engine exited")
	}))
	c := &testClient{t: t, handler: srv.Handler()}

	rec := c.do(http.MethodPost, "/ai-move", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, chess.InProgress.String(), c.board().State)
}

func TestReset(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	c := &testClient{t: t, handler: srv.Handler()}

	require.Equal(t, http.StatusNoContent, c.do(http.MethodPost, "/user-move", `{"move":"g1f3"}`).Code)
	id := c.cookie.Value
	require.Equal(t, http.StatusNoContent, c.do(http.MethodPost, "/reset", "").Code)

	b := c.board()
	assert.Equal(t, "white", b.ToMove)
	assert.Len(t, b.Moves, 20)
	assert.Equal(t, id, c.cookie.Value, "reset kept the same session")
}

// startingOpponent records NewGame calls.
type startingOpponent struct {
	opponent.Opponent
	starts int
	err    error
}

func (o *startingOpponent) NewGame(context.Context) error {
	o.starts++
	return o.err
}

func TestReset_StartsOpponentGame(t *testing.T) {
	opp := &startingOpponent{Opponent: opponent.NewRandom(1)}
	srv, _ := newTestServer(t, opp)
	c := &testClient{t: t, handler: srv.Handler()}

	require.Equal(t, http.StatusNoContent, c.do(http.MethodPost, "/reset", "").Code)
	assert.Equal(t, 1, opp.starts)

	// A failing engine does not block the reset itself.
	opp.err = errors.ErrEngineProtocol
	require.Equal(t, http.StatusNoContent, c.do(http.MethodPost, "/reset", "").Code)
	assert.Equal(t, 2, opp.starts)
	assert.Len(t, c.board().Moves, 20)
}

func TestSessionsAreIndependent(t *testing.T) {
	srv, sessions := newTestServer(t, nil)
	alice := &testClient{t: t, handler: srv.Handler()}
	bob := &testClient{t: t, handler: srv.Handler()}

	require.Equal(t, http.StatusNoContent, alice.do(http.MethodPost, "/user-move", `{"move":"e2e4"}`).Code)

	assert.Equal(t, "black", alice.board().ToMove)
	assert.Equal(t, "white", bob.board().ToMove)
	assert.NotEqual(t, alice.cookie.Value, bob.cookie.Value)
	assert.Equal(t, 2, sessions.Len())
}

func TestUnknownCookieStartsNewGame(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	c := &testClient{t: t, handler: srv.Handler(), cookie: &http.Cookie{Name: SessionCookie, Value: "not-a-uuid"}}

	b := c.board()
	assert.Equal(t, chess.InProgress.String(), b.State)
	require.NotNil(t, c.cookie)
	_, err := uuid.Parse(c.cookie.Value)
	assert.NoError(t, err)
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	c := &testClient{t: t, handler: srv.Handler()}

	tests := []struct {
		method, path string
	}{
		{http.MethodPost, "/board"},
		{http.MethodGet, "/user-move"},
		{http.MethodGet, "/ai-move"},
		{http.MethodGet, "/reset"},
		{http.MethodPost, "/"},
	}
	for _, tt := range tests {
		rec := c.do(tt.method, tt.path, "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, "%s %s", tt.method, tt.path)
	}
}

func TestHealthzAndMetrics(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	c := &testClient{t: t, handler: srv.Handler()}

	rec := c.do(http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	c.do(http.MethodPost, "/user-move", `{"move":"e2e4"}`)
	c.do(http.MethodPost, "/user-move", `{"move":"e2"}`)

	rec = c.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `aichess_moves_total{result="ok",source="user"} 1`)
	assert.Contains(t, body, `aichess_moves_total{result="invalid_format",source="user"} 1`)
	assert.Contains(t, body, "aichess_sessions 1")
	assert.Contains(t, body, `aichess_http_requests_total{code="204",route="/user-move"} 1`)
}

func TestNewServer_Invalid(t *testing.T) {
	sessions, err := game.NewManager(4, nil)
	require.NoError(t, err)

	_, err = NewServer(nil, nil, opponent.NewRandom(1), zerolog.Nop(), nil)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))

	_, err = NewServer(nil, sessions, nil, zerolog.Nop(), nil)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
}

func TestListenAndClose(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	done := make(chan error, 1)
	go func() { done <- srv.Listen("127.0.0.1:0") }()

	require.Eventually(t, func() bool {
		srv.srvMu.Lock()
		defer srv.srvMu.Unlock()
		return srv.srv != nil
	}, time.Second, 5*time.Millisecond)
	require.NoError(t, srv.Close(context.Background()))
	assert.NoError(t, <-done)

	assert.NoError(t, srv.Listen("127.0.0.1:0"), "Listen after Close")
}

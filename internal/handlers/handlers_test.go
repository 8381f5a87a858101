package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathematico/server/internal/auth"
)

func newTestServer(t *testing.T) *GameServer {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewGameServer(logger)
}

func waitForCleanup(t *testing.T, gs *GameServer, id uuid.UUID) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := gs.round(id); !ok {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("round %v never cleaned up", id)
}

func TestBotOnlyRoundRunsToCompletion(t *testing.T) {
	gs := newTestServer(t)

	lr, err := gs.createRound([]string{"random", "random"}, 0)
	require.NoError(t, err)

	waitForCleanup(t, gs, lr.game.ID)
	_, ok := gs.Store.Get(lr.game.ID)
	assert.False(t, ok)
}

func TestCreateRoundRejectsUnknownStrategy(t *testing.T) {
	gs := newTestServer(t)

	_, err := gs.createRound([]string{"psychic"}, 0)
	assert.Error(t, err)
}

func TestRoundWithHumanSeatWaitsForConnection(t *testing.T) {
	gs := newTestServer(t)

	lr, err := gs.createRound([]string{"random"}, 1)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	_, ok := gs.round(lr.game.ID)
	assert.True(t, ok, "round should wait for its human seat")
	assert.False(t, lr.started)
	assert.NotNil(t, lr.openSeat())

	gs.cleanup(lr)
}

func TestClaimSeatNeverDoubleAssigns(t *testing.T) {
	gs := newTestServer(t)
	lr, err := gs.createRound(nil, 2)
	require.NoError(t, err)

	const joiners = 16
	var claimed int64
	var wg sync.WaitGroup
	for i := 0; i < joiners; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if st := lr.claimSeat(new(websocket.Conn), uuid.New()); st != nil {
				atomic.AddInt64(&claimed, 1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 2, claimed, "exactly one claimant per seat")
	assert.Nil(t, lr.openSeat())
}

func TestCreateGameHandler(t *testing.T) {
	gs := newTestServer(t)
	h := CreateGameHandler(gs)

	req := httptest.NewRequest(http.MethodPost, "/game/create",
		strings.NewReader(`{"bots":["random"],"seats":1}`))
	w := httptest.NewRecorder()
	h(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "game_id")
	assert.Contains(t, w.Body.String(), "/game/ws/")
}

func TestCreateGameHandlerRejectsEmptyRoster(t *testing.T) {
	gs := newTestServer(t)
	h := CreateGameHandler(gs)

	req := httptest.NewRequest(http.MethodPost, "/game/create",
		strings.NewReader(`{"bots":[],"seats":0}`))
	w := httptest.NewRecorder()
	h(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateGameHandlerRejectsGet(t *testing.T) {
	gs := newTestServer(t)
	h := CreateGameHandler(gs)

	req := httptest.NewRequest(http.MethodGet, "/game/create", nil)
	w := httptest.NewRecorder()
	h(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestLeaderboardUnavailableWithoutRedis(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/leaderboard", nil)
	w := httptest.NewRecorder()
	LeaderboardHandler(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestEnsureGuestMintsAndReusesToken(t *testing.T) {
	require.NoError(t, auth.Init())

	req := httptest.NewRequest(http.MethodGet, "/game/ws/x", nil)
	w := httptest.NewRecorder()
	id, err := EnsureGuest(w, req)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	cookie := w.Header().Get("Set-Cookie")
	require.Contains(t, cookie, "auth_token=")

	// Replaying the minted cookie resolves to the same guest.
	req2 := httptest.NewRequest(http.MethodGet, "/game/ws/x", nil)
	req2.Header.Set("Cookie", cookie)
	w2 := httptest.NewRecorder()
	id2, err := EnsureGuest(w2, req2)
	require.NoError(t, err)
	assert.Equal(t, id, id2)
	assert.Empty(t, w2.Header().Get("Set-Cookie"))
}

func TestExtractCookieToken(t *testing.T) {
	assert.Equal(t, "abc", extractCookieToken("auth_token=abc", "auth_token"))
	assert.Equal(t, "abc", extractCookieToken("other=x; auth_token=abc; more=y", "auth_token"))
	assert.Equal(t, "", extractCookieToken("other=x", "auth_token"))
}

func TestPingHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	PingHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func startTestServer(t *testing.T, opts ...Option) (*Server, string) {
	t.Helper()
	s := NewServer(quietLogger(), opts...)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		_ = s.Shutdown(t.Context())
		ts.Close()
	})
	return s, "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func request(t *testing.T, conn *websocket.Conn, msgType MessageType, requestID string) *Message {
	t.Helper()
	require.NoError(t, conn.WriteJSON(Message{Type: msgType, RequestID: requestID}))

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var resp Message
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, requestID, resp.RequestID)
	return &resp
}

func decode[T any](t *testing.T, msg *Message) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(msg.Data, &v))
	return v
}

func seed(n int64) *int64 { return &n }

func TestHealth(t *testing.T) {
	s := NewServer(quietLogger())
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestPlayRoundOverWebSocket(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = seed(42)
	_, url := startTestServer(t, WithConfig(cfg))
	conn := dial(t, url)

	// Play rounds until one does not end on the deal
	var state RoundStateData
	for i := 0; i < 20; i++ {
		resp := request(t, conn, MessageTypeNewRound, "deal")
		require.Equal(t, MessageTypeRoundState, resp.Type)
		state = decode[RoundStateData](t, resp)
		if state.Phase == "in_progress" {
			break
		}
		require.NotNil(t, state.Result)
	}
	require.Equal(t, "in_progress", state.Phase)

	assert.Len(t, state.Player, 2)
	require.Len(t, state.Dealer, 2)
	assert.Equal(t, "??", state.Dealer[1])
	assert.True(t, state.CanStand)
	assert.Nil(t, state.Result)
	assert.Len(t, state.RoundID, 26)

	resp := request(t, conn, MessageTypeStand, "stand")
	require.Equal(t, MessageTypeRoundState, resp.Type)
	state = decode[RoundStateData](t, resp)
	assert.Equal(t, "over", state.Phase)
	assert.False(t, state.CanHit)
	assert.False(t, state.CanStand)
	require.NotNil(t, state.Result)
	assert.NotEmpty(t, state.Result.Message)
	for _, c := range state.Dealer {
		assert.NotEqual(t, "??", c)
	}

	resp = request(t, conn, MessageTypeStand, "again")
	require.Equal(t, MessageTypeError, resp.Type)
	assert.Equal(t, "invalid_transition", decode[ErrorData](t, resp).Code)

	resp = request(t, conn, MessageTypeHistory, "history")
	require.Equal(t, MessageTypeHistoryData, resp.Type)
	history := decode[HistoryData](t, resp)
	require.NotEmpty(t, history.Rounds)
	assert.Equal(t, len(history.Rounds), history.Tally.Rounds)
	last := history.Rounds[len(history.Rounds)-1]
	assert.Equal(t, state.RoundID, last.RoundID)
}

func TestSeededSessionsReplay(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = seed(7)

	deal := func() RoundStateData {
		_, url := startTestServer(t, WithConfig(cfg))
		conn := dial(t, url)
		request(t, conn, MessageTypeNewRound, "1")
		resp := request(t, conn, MessageTypeState, "2")
		return decode[RoundStateData](t, resp)
	}

	a, b := deal(), deal()
	assert.Equal(t, a.Player, b.Player)
	assert.Equal(t, a.Dealer, b.Dealer)
}

func TestHitBeforeRoundIsRejected(t *testing.T) {
	_, url := startTestServer(t)
	conn := dial(t, url)

	resp := request(t, conn, MessageTypeHit, "hit")
	require.Equal(t, MessageTypeError, resp.Type)
	assert.Equal(t, "invalid_transition", decode[ErrorData](t, resp).Code)

	resp = request(t, conn, MessageTypeState, "state")
	state := decode[RoundStateData](t, resp)
	assert.Equal(t, "not_started", state.Phase)
	assert.Empty(t, state.Player)
}

func TestUnknownMessageType(t *testing.T) {
	_, url := startTestServer(t)
	conn := dial(t, url)

	resp := request(t, conn, MessageType("split"), "x")
	require.Equal(t, MessageTypeError, resp.Type)
	assert.Equal(t, "unknown_message_type", decode[ErrorData](t, resp).Code)
}

func TestReapIdleConnections(t *testing.T) {
	clock := quartz.NewMock(t)
	cfg := DefaultConfig()
	cfg.IdleTimeout = time.Minute
	s, url := startTestServer(t, WithConfig(cfg), WithClock(clock))
	conn := dial(t, url)

	request(t, conn, MessageTypeNewRound, "deal")
	require.Eventually(t, func() bool { return s.ConnectionCount() == 1 }, time.Second, 10*time.Millisecond)

	assert.Equal(t, 0, s.ReapIdle())

	clock.Advance(2 * time.Minute)
	assert.Equal(t, 1, s.ReapIdle())

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
	assert.Eventually(t, func() bool { return s.ConnectionCount() == 0 }, time.Second, 10*time.Millisecond)
}

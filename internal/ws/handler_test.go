package ws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/gamedock/gamedock/internal/notify"
)

func newTestStream(t *testing.T) (*notify.Hub, *websocket.Conn) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := notify.NewHub()
	t.Cleanup(hub.Close)

	handler := NewHandler(hub, nil, nil)
	router := gin.New()
	router.GET("/stream", handler.HandleConnection)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// Welcome message arrives first
	var welcome map[string]interface{}
	require.NoError(t, conn.ReadJSON(&welcome))
	require.Equal(t, "system", welcome["type"])

	return hub, conn
}

func TestStreamForwardsHubMessages(t *testing.T) {
	hub, conn := newTestStream(t)

	hub.Error("g1", "Install failed.")

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg map[string]interface{}
	require.NoError(t, conn.ReadJSON(&msg))
	require.Equal(t, "event", msg["type"])

	event, ok := msg["event"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "g1", event["game_id"])
}

func TestStreamAnswersPing(t *testing.T) {
	_, conn := newTestStream(t)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "ping"}))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg map[string]interface{}
	require.NoError(t, conn.ReadJSON(&msg))
	require.Equal(t, "pong", msg["type"])
}

// Pings and hub events arrive concurrently; the handler must funnel both
// through its single writer without corrupting the connection.
func TestStreamConcurrentPingsAndEvents(t *testing.T) {
	hub, conn := newTestStream(t)

	flood := make(chan struct{})
	go func() {
		defer close(flood)
		for i := 0; i < 200; i++ {
			hub.Changed(notify.PropertyRecentlyPlayed)
		}
	}()

	for i := 0; i < 50; i++ {
		require.NoError(t, conn.WriteJSON(map[string]string{"type": "ping"}))
	}
	<-flood

	// Drain until at least one pong has come through; every frame must
	// still decode cleanly.
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	sawPong := false
	sawEvent := false
	for !sawPong || !sawEvent {
		var msg map[string]interface{}
		require.NoError(t, conn.ReadJSON(&msg))
		switch msg["type"] {
		case "pong":
			sawPong = true
		case "event":
			sawEvent = true
		}
	}
}

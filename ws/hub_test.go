package ws_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TTPzZ/hermit-home/model"
	"github.com/TTPzZ/hermit-home/ws"
)

func newTestServer(t *testing.T) (*ws.Hub, *httptest.Server) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	hub := ws.NewHub(zerolog.Nop())

	router := gin.New()
	router.GET("/live", hub.Serve)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/live"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHubBroadcastsReading(t *testing.T) {
	hub, srv := newTestServer(t)
	conn := dial(t, srv)

	require.Eventually(t, func() bool {
		return hub.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	temperature := 24.5
	hub.Broadcast(&model.Reading{
		Temperature: &temperature,
		CreatedAt:   time.Now().UTC(),
	})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	var received model.Reading
	require.NoError(t, conn.ReadJSON(&received))
	require.NotNil(t, received.Temperature)
	assert.Equal(t, 24.5, *received.Temperature)
}

func TestHubEvictsClosedClient(t *testing.T) {
	hub, srv := newTestServer(t)
	conn := dial(t, srv)

	require.Eventually(t, func() bool {
		return hub.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	conn.Close()

	require.Eventually(t, func() bool {
		return hub.ClientCount() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestHubMultipleClients(t *testing.T) {
	hub, srv := newTestServer(t)
	first := dial(t, srv)
	second := dial(t, srv)

	require.Eventually(t, func() bool {
		return hub.ClientCount() == 2
	}, time.Second, 10*time.Millisecond)

	light := 512.0
	hub.Broadcast(&model.Reading{Light: &light, CreatedAt: time.Now().UTC()})

	for _, conn := range []*websocket.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(time.Second))
		var received model.Reading
		require.NoError(t, conn.ReadJSON(&received))
		require.NotNil(t, received.Light)
		assert.Equal(t, 512.0, *received.Light)
	}
}

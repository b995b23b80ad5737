package server

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func dialHub(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/livereload"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func TestHubBroadcastsReload(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := newTestServer(t, func(c *Config) { c.LiveReload = true })
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	a := dialHub(t, ts)
	defer a.Close()
	b := dialHub(t, ts)
	defer b.Close()

	hub := srv.Hub()
	require.Eventually(t, func() bool { return hub.Len() == 2 }, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, 2, hub.Reload())

	for _, conn := range []*websocket.Conn{a, b} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Equal(t, "reload", string(msg))
	}

	require.NoError(t, a.Close())
	require.Eventually(t, func() bool { return hub.Len() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Close()
	assert.Equal(t, 0, hub.Len())
	b.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := b.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
}

func TestHubRefusesClientsAfterClose(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewHub(nil)
	ts := httptest.NewServer(hub)
	defer ts.Close()
	hub.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
	assert.Equal(t, 0, hub.Len())
}

func TestHubReloadWithoutClients(t *testing.T) {
	assert.Equal(t, 0, NewHub(nil).Reload())
}

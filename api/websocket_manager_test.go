package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcastDropsClosedClients(t *testing.T) {
	hub := NewHub()
	upgrader := websocket.Upgrader{}
	registered := make(chan struct{}, 2)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Add(conn)
		registered <- struct{}{}
	}))
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http")
	alive, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer alive.Close()
	<-registered

	gone, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	<-registered
	require.Equal(t, 2, hub.Len())

	require.NoError(t, gone.Close())

	require.Eventually(t, func() bool {
		hub.Broadcast(Event{Type: EventThemesUpdated, Themes: 3})
		return hub.Len() == 1
	}, 5*time.Second, 50*time.Millisecond)

	require.NoError(t, alive.SetReadDeadline(time.Now().Add(5*time.Second)))
	var ev Event
	require.NoError(t, alive.ReadJSON(&ev))
	assert.Equal(t, EventThemesUpdated, ev.Type)
	assert.Equal(t, 3, ev.Themes)
}

package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frankentokens/theme"
)

const sourceCSS = `.uk-theme-emerald{--a: 1px;}
.dark.uk-theme-emerald{--a: 2px;}`

func newTestServer(t *testing.T) (*Server, *httptest.Server, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "franken-ui.css")
	require.NoError(t, os.WriteFile(path, []byte(sourceCSS), 0o644))

	manager, err := theme.NewManager(path, theme.Options{}, zerolog.Nop())
	require.NoError(t, err)

	srv := NewServer(manager, zerolog.Nop())
	mux := http.NewServeMux()
	srv.Register(mux)

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return srv, ts, path
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestHealth(t *testing.T) {
	_, ts, _ := newTestServer(t)

	resp, body := get(t, ts.URL+"/api/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestExportJSON(t *testing.T) {
	_, ts, _ := newTestServer(t)

	resp, body := get(t, ts.URL+"/api/export/themes.json")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment;")
	assert.JSONEq(t, `{"emerald":{"light":{"--a":"1px"},"dark":{"--a":"2px"}}}`, body)
}

func TestExportCSV(t *testing.T) {
	_, ts, _ := newTestServer(t)

	resp, body := get(t, ts.URL+"/api/export/themes.csv")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Equal(t, "theme,mode,token,value\nemerald,light,--a,\"1px\"\nemerald,dark,--a,\"2px\"", body)
}

func TestIndex(t *testing.T) {
	_, ts, _ := newTestServer(t)

	resp, body := get(t, ts.URL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `<button data-theme="emerald" class="active">Emerald</button>`)

	resp, _ = get(t, ts.URL+"/missing")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWebSocketReceivesReload(t *testing.T) {
	srv, ts, path := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var ev Event
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, Event{Type: EventConnected, Themes: 1}, ev)

	require.NoError(t, os.WriteFile(path, []byte(sourceCSS+"\n.uk-theme-amber{--a: 3px;}"), 0o644))
	require.NoError(t, srv.Reload())

	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, Event{Type: EventThemesUpdated, Themes: 2}, ev)
}

func TestReloadFailureKeepsThemes(t *testing.T) {
	srv, ts, path := newTestServer(t)
	require.NoError(t, os.Remove(path))

	assert.Error(t, srv.Reload())
	_, body := get(t, ts.URL+"/api/export/themes.csv")
	assert.Contains(t, body, "emerald,light")
}

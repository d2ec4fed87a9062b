package api

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"frankentokens/storage"
	"frankentokens/theme"
)

const EventConnected = "connected"

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link id="theme-css" rel="stylesheet" href="/api/theme?theme={{.Current}}">
</head>
<body>
<nav>{{.Menu}}</nav>
<p>{{.Count}} themes from {{.Source}}</p>
<script>
document.querySelectorAll("[data-theme]").forEach(function (b) {
  b.addEventListener("click", function () {
    document.getElementById("theme-css").href = "/api/theme?theme=" + b.dataset.theme;
  });
});
var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/api/ws");
ws.onmessage = function (e) {
  if (JSON.parse(e.data).type === "themes-updated") location.reload();
};
</script>
</body>
</html>`))

// Server exposes the extracted registry over HTTP.
type Server struct {
	manager  *theme.Manager
	themes   *theme.Handler
	hub      *Hub
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

func NewServer(manager *theme.Manager, logger zerolog.Logger) *Server {
	return &Server{
		manager: manager,
		themes:  theme.NewHandler(manager),
		hub:     NewHub(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/themes", s.themes.HandleThemes)
	mux.HandleFunc("/api/theme", s.themes.HandleTheme)
	mux.HandleFunc("/api/export/themes.json", s.handleExportJSON)
	mux.HandleFunc("/api/export/themes.csv", s.handleExportCSV)
	mux.HandleFunc("/api/ws", s.handleWS)
	mux.HandleFunc("/", s.handleIndex)
}

// Reload re-extracts the source stylesheet and notifies WebSocket clients.
func (s *Server) Reload() error {
	if err := s.manager.Reload(); err != nil {
		s.logger.Error().Err(err).Str("path", s.manager.Path()).Msg("reload failed")
		return err
	}
	s.hub.Broadcast(Event{Type: EventThemesUpdated, Themes: s.manager.Registry().Len()})
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	current := ""
	if names := s.manager.ListThemes(); len(names) > 0 {
		current = names[0]
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := indexTemplate.Execute(w, map[string]any{
		"Title":   "frankentokens",
		"Current": current,
		"Menu":    template.HTML(s.themes.GenerateThemeMenuHTML(current)),
		"Count":   s.manager.Registry().Len(),
		"Source":  s.manager.Path(),
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("render index")
	}
}

func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	data, err := storage.MarshalIndent(s.manager.Registry())
	if err != nil {
		http.Error(w, "failed to encode themes", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("franken-themes-%s.json", time.Now().Format("20060102-150405"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(data)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	filename := fmt.Sprintf("franken-themes-%s.csv", time.Now().Format("20060102-150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write([]byte(theme.CSV(s.manager.Registry())))
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	s.hub.Add(conn)
	defer s.hub.Remove(conn)

	if err := s.hub.Send(conn, Event{Type: EventConnected, Themes: s.manager.Registry().Len()}); err != nil {
		return
	}

	// Clients never send anything meaningful; reading detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("writeJSON")
	}
}

package theme

import (
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"frankentokens/model"
)

// Handler handles theme-related HTTP requests.
type Handler struct {
	manager *Manager
}

// NewHandler creates a new theme handler.
func NewHandler(manager *Manager) *Handler {
	return &Handler{
		manager: manager,
	}
}

// HandleTheme serves the CSS block of one theme and mode.
func (h *Handler) HandleTheme(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("theme")
	if name == "" {
		http.Error(w, "theme parameter required", http.StatusBadRequest)
		return
	}

	mode := model.ModeLight
	if qMode := r.URL.Query().Get("mode"); qMode != "" {
		switch model.Mode(qMode) {
		case model.ModeLight, model.ModeDark:
			mode = model.Mode(qMode)
		default:
			http.Error(w, "mode must be light or dark", http.StatusBadRequest)
			return
		}
	}

	if h.manager.GetTheme(name) == nil {
		http.Error(w, "theme not found", http.StatusNotFound)
		return
	}

	themeCSS := h.manager.ThemeCSS(name, mode)
	if themeCSS == "" {
		http.Error(w, "mode not available for theme", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write([]byte(themeCSS))
}

// ThemeSummary describes one theme in the theme listing.
type ThemeSummary struct {
	Name    string       `json:"name"`
	Display string       `json:"display"`
	Modes   []model.Mode `json:"modes"`
	Tokens  int          `json:"tokens"`
}

// HandleThemes returns every theme with the modes it defines.
func (h *Handler) HandleThemes(w http.ResponseWriter, r *http.Request) {
	names := h.manager.ListThemes()

	summaries := make([]ThemeSummary, 0, len(names))
	for _, name := range names {
		rec := h.manager.GetTheme(name)
		if rec == nil {
			continue
		}
		count := 0
		for _, mode := range rec.PresentModes() {
			count += rec.Tokens(mode).Len()
		}
		summaries = append(summaries, ThemeSummary{
			Name:    name,
			Display: DisplayName(name),
			Modes:   rec.PresentModes(),
			Tokens:  count,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	if err := json.NewEncoder(w).Encode(summaries); err != nil {
		http.Error(w, "failed to encode themes", http.StatusInternalServerError)
		return
	}
}

// GenerateThemeMenuHTML generates HTML buttons for the theme picker.
func (h *Handler) GenerateThemeMenuHTML(currentTheme string) string {
	var builder strings.Builder

	for _, name := range h.manager.ListThemes() {
		builder.WriteString(`<button data-theme="`)
		builder.WriteString(name)
		builder.WriteString(`"`)
		if name == currentTheme {
			builder.WriteString(` class="active"`)
		}
		builder.WriteString(`>`)
		builder.WriteString(DisplayName(name))
		builder.WriteString(`</button>`)
	}

	return builder.String()
}

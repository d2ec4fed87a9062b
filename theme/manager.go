package theme

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"frankentokens/model"
)

// Manager owns the registry extracted from a CSS file and re-extracts it on
// demand. It is safe for concurrent use.
type Manager struct {
	mu        sync.RWMutex
	cssPath   string
	extractor *Extractor
	registry  *model.Registry
	logger    zerolog.Logger
}

// NewManager creates a manager and performs the first extraction.
func NewManager(cssPath string, opts Options, logger zerolog.Logger) (*Manager, error) {
	m := &Manager{
		cssPath:   cssPath,
		extractor: NewExtractor(opts),
		registry:  model.NewRegistry(),
		logger:    logger,
	}

	if err := m.Reload(); err != nil {
		return nil, fmt.Errorf("load themes: %w", err)
	}

	return m, nil
}

// Path returns the source stylesheet path.
func (m *Manager) Path() string {
	return m.cssPath
}

// Reload re-reads the stylesheet and swaps in a fresh registry. On failure
// the previous registry is kept.
func (m *Manager) Reload() error {
	content, err := os.ReadFile(m.cssPath)
	if err != nil {
		return err
	}

	reg := m.extractor.Extract(string(content))

	m.mu.Lock()
	m.registry = reg
	m.mu.Unlock()

	m.logger.Info().
		Str("path", m.cssPath).
		Int("themes", reg.Len()).
		Msg("extracted themes")
	for _, rec := range reg.Records() {
		modes := make([]string, 0, 2)
		for _, mode := range rec.PresentModes() {
			modes = append(modes, fmt.Sprintf("%s=%d", mode, rec.Tokens(mode).Len()))
		}
		m.logger.Debug().Str("theme", rec.Name).Msg(strings.Join(modes, " "))
	}

	return nil
}

// Registry returns the current registry. Callers must not modify it.
func (m *Manager) Registry() *model.Registry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.registry
}

// GetTheme returns a theme by name, or nil if not found.
func (m *Manager) GetTheme(name string) *model.ThemeRecord {
	return m.Registry().Get(name)
}

// ListThemes returns theme names with the default theme first, then
// alphabetically.
func (m *Manager) ListThemes() []string {
	names := m.Registry().Names()
	sort.SliceStable(names, func(i, j int) bool {
		if names[i] == DefaultThemeName || names[j] == DefaultThemeName {
			return names[i] == DefaultThemeName && names[j] != DefaultThemeName
		}
		return names[i] < names[j]
	})
	return names
}

// ThemeCSS renders the tokens of one theme and mode back into a CSS block
// using the selector shape that mode is scanned with. It returns "" when the
// theme or mode is absent.
func (m *Manager) ThemeCSS(name string, mode model.Mode) string {
	rec := m.GetTheme(name)
	if rec == nil {
		return ""
	}
	tokens := rec.Tokens(mode)
	if tokens == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.selector(name, mode))
	b.WriteString(" {\n")
	for _, key := range tokens.Keys() {
		value, _ := tokens.Get(key)
		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
	return b.String()
}

func (m *Manager) selector(name string, mode model.Mode) string {
	if name == DefaultThemeName && m.extractor.opts.IncludeDefault {
		if mode == model.ModeDark {
			return ".dark"
		}
		return ":root"
	}
	class := "." + m.extractor.opts.Prefix + name
	if mode == model.ModeDark {
		return ".dark" + class
	}
	return class
}

// DisplayName turns "dark-blue" into "Dark Blue".
func DisplayName(name string) string {
	parts := strings.Split(name, "-")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

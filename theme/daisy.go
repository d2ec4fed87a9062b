package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"frankentokens/model"
)

// DaisyThemes are the theme files shipped by DaisyUI.
var DaisyThemes = []string{
	"light", "dark", "cupcake", "bumblebee", "emerald", "corporate",
	"synthwave", "retro", "cyberpunk", "valentine", "halloween", "garden",
	"forest", "aqua", "lofi", "pastel", "fantasy", "wireframe", "black",
	"luxury", "dracula", "cmyk", "autumn", "business", "acid", "lemonade",
	"night", "coffee", "winter", "dim", "nord", "sunset",
}

var (
	daisyLineRe     = regexp.MustCompile(`^\s*(--[\w-]+):\s*([^;]+);`)
	colorSchemeRe   = regexp.MustCompile(`color-scheme:\s*(\w+);`)
	colorSchemeName = "color-scheme"
)

// ParseDaisyTheme reads one DaisyUI theme file. Only declarations that
// start a line are considered.
func ParseDaisyTheme(css string) *model.TokenMap {
	tokens := model.NewTokenMap()
	for _, line := range strings.Split(css, "\n") {
		if !strings.Contains(line, "--") {
			continue
		}
		if m := daisyLineRe.FindStringSubmatch(line); m != nil {
			tokens.Set(m[1], strings.TrimSpace(m[2]))
		}
	}

	if strings.Contains(css, colorSchemeName+":") {
		if m := colorSchemeRe.FindStringSubmatch(css); m != nil {
			tokens.Set(colorSchemeName, m[1])
		}
	}
	return tokens
}

// LoadDaisyThemes reads <dir>/<name>.css for every name. Missing files are
// skipped; any other read failure is returned.
func LoadDaisyThemes(dir string, names []string) (*model.ThemeSet, error) {
	set := model.NewThemeSet()
	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(dir, name+".css"))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read daisy theme %s: %w", name, err)
		}
		set.Put(name, ParseDaisyTheme(string(content)))
	}
	return set, nil
}

package theme

import (
	"regexp"
	"strings"

	"frankentokens/model"
)

// DefaultPrefix is the FrankenUI theme class prefix.
const DefaultPrefix = "uk-theme-"

// DefaultThemeName names the theme built from :root and .dark blocks.
const DefaultThemeName = "default"

var (
	declarationRe = regexp.MustCompile(`(?i)(--[a-z0-9-]+)\s*:\s*([^;]+);`)
	rootBlockRe   = regexp.MustCompile(`:root\s*\{([^}]+)\}`)
	darkBlockRe   = regexp.MustCompile(`\.dark\s*\{([^}]+)\}`)
)

// coreColorTokens are the token stems kept for the default theme.
var coreColorTokens = []string{
	"--background", "--foreground", "--primary", "--secondary", "--muted",
	"--accent", "--destructive", "--border", "--input", "--ring",
}

// Options tunes extraction.
type Options struct {
	// Prefix is the theme class prefix. Empty means DefaultPrefix.
	Prefix string

	// IncludeDefault adds a "default" theme from the first :root and
	// standalone .dark blocks, restricted to core color tokens.
	IncludeDefault bool
}

type selectorShape struct {
	mode model.Mode
	re   *regexp.Regexp
	// standalone rejects matches whose class is compounded onto a
	// preceding simple selector, e.g. the tail of ".dark.uk-theme-x".
	standalone bool
}

// Extractor scans CSS text for theme blocks.
type Extractor struct {
	opts   Options
	shapes map[model.Mode]selectorShape
}

// NewExtractor compiles the selector patterns for opts.
func NewExtractor(opts Options) *Extractor {
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	class := `\.` + regexp.QuoteMeta(opts.Prefix) + `([a-z0-9-]+)\s*\{([^}]+)\}`

	return &Extractor{
		opts: opts,
		shapes: map[model.Mode]selectorShape{
			model.ModeLight: {
				mode:       model.ModeLight,
				re:         regexp.MustCompile(`(?i)` + class),
				standalone: true,
			},
			model.ModeDark: {
				mode: model.ModeDark,
				re:   regexp.MustCompile(`(?i)\.dark` + class),
			},
		},
	}
}

// Extract builds a registry from css with the default options.
func Extract(css string) *model.Registry {
	return NewExtractor(Options{}).Extract(css)
}

// Extract scans light blocks, then dark blocks.
func (e *Extractor) Extract(css string) *model.Registry {
	return e.ExtractModes(css, model.Modes...)
}

// ExtractModes scans the selector shapes in the given mode order. Merging is
// by key, so the resulting bindings do not depend on the order.
func (e *Extractor) ExtractModes(css string, modes ...model.Mode) *model.Registry {
	reg := model.NewRegistry()

	for _, mode := range modes {
		shape, ok := e.shapes[mode]
		if !ok {
			continue
		}
		for _, m := range shape.re.FindAllStringSubmatchIndex(css, -1) {
			if shape.standalone && compounded(css, m[0]) {
				continue
			}
			name := css[m[2]:m[3]]
			body := css[m[4]:m[5]]
			reg.Merge(name, mode, ParseBlock(body))
		}
	}

	if e.opts.IncludeDefault {
		extractDefault(css, reg)
	}

	return reg
}

// ParseBlock reads custom property declarations from a block body. A name
// declared twice keeps the later value.
func ParseBlock(body string) *model.TokenMap {
	tokens := model.NewTokenMap()
	for _, m := range declarationRe.FindAllStringSubmatch(body, -1) {
		tokens.Set(m[1], strings.TrimSpace(m[2]))
	}
	return tokens
}

func extractDefault(css string, reg *model.Registry) {
	if m := rootBlockRe.FindStringSubmatch(css); m != nil {
		reg.Merge(DefaultThemeName, model.ModeLight, coreTokens(m[1]))
	}

	for _, m := range darkBlockRe.FindAllStringSubmatchIndex(css, -1) {
		if compounded(css, m[0]) {
			continue
		}
		reg.Merge(DefaultThemeName, model.ModeDark, coreTokens(css[m[2]:m[3]]))
		break
	}
}

func coreTokens(body string) *model.TokenMap {
	all := ParseBlock(body)
	tokens := model.NewTokenMap()
	for _, name := range all.Keys() {
		if !isCoreColorToken(name) {
			continue
		}
		v, _ := all.Get(name)
		tokens.Set(name, v)
	}
	return tokens
}

func isCoreColorToken(name string) bool {
	for _, stem := range coreColorTokens {
		if strings.HasPrefix(name, stem) {
			return true
		}
	}
	return false
}

// compounded reports whether the selector starting at pos is glued to a
// preceding simple selector.
func compounded(css string, pos int) bool {
	if pos == 0 {
		return false
	}
	c := css[pos-1]
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '-', c == '_', c == ']', c == ')', c == '*', c == '\\':
		return true
	}
	return false
}

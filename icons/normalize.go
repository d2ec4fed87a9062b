// Package icons rewrites UIkit/FrankenUI icon markup so every SVG keeps its
// canonical viewBox size and the requested size is applied as a scale
// transform on the wrapper. UIkit spinner animations are authored against
// the viewBox, so resizing the SVG itself distorts them.
package icons

import (
	"math"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

// Selector matches icon and spinner wrappers.
const Selector = ".uk-icon, [uk-spinner], [data-uk-spinner]"

// scaleTolerance is how close to 1 both axes must be to leave an icon alone.
const scaleTolerance = 0.01

// UpdateSource delivers subtrees that changed after the initial pass.
type UpdateSource interface {
	OnUpdate(fn func(subtree *goquery.Selection))
}

// Hooks is a minimal UpdateSource: callbacks registered with OnUpdate run
// on every Emit.
type Hooks struct {
	fns []func(*goquery.Selection)
}

func (h *Hooks) OnUpdate(fn func(subtree *goquery.Selection)) {
	h.fns = append(h.fns, fn)
}

// Emit reports subtree as changed.
func (h *Hooks) Emit(subtree *goquery.Selection) {
	for _, fn := range h.fns {
		fn(subtree)
	}
}

type Normalizer struct {
	logger zerolog.Logger
}

func NewNormalizer(logger zerolog.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Attach normalizes the whole document, then keeps normalizing every
// subtree src reports. src may be nil.
func (n *Normalizer) Attach(doc *goquery.Document, src UpdateSource) int {
	count := n.Normalize(doc.Selection)
	if src != nil {
		src.OnUpdate(func(subtree *goquery.Selection) {
			n.Normalize(subtree)
		})
	}
	return count
}

// Normalize rewrites every icon below root and returns how many changed.
func (n *Normalizer) Normalize(root *goquery.Selection) int {
	count := 0
	root.Find(Selector).Each(func(_ int, icon *goquery.Selection) {
		if n.NormalizeIcon(icon) {
			count++
		}
	})
	n.logger.Debug().Int("icons", count).Msg("normalized icons")
	return count
}

// NormalizeIcon resets the first SVG inside icon to its viewBox size and
// scales the wrapper instead. It reports whether anything changed.
func (n *Normalizer) NormalizeIcon(icon *goquery.Selection) bool {
	svg := icon.Find("svg").First()
	if svg.Length() == 0 {
		return false
	}

	vbWidth, vbHeight, ok := parseViewBox(attr(svg, "viewBox"))
	if !ok {
		return false
	}

	width := parseLength(attr(svg, "width"))
	height := parseLength(attr(svg, "height"))
	if width == 0 || height == 0 {
		return false
	}

	scaleX := width / vbWidth
	scaleY := height / vbHeight
	if math.Abs(scaleX-1) < scaleTolerance && math.Abs(scaleY-1) < scaleTolerance {
		return false
	}

	// UIkit icons are square, so the X scale is applied uniformly.
	scale := scaleX

	svg.SetAttr("width", formatNumber(vbWidth))
	svg.SetAttr("height", formatNumber(vbHeight))

	style := parseInlineStyle(attr(icon, "style"))
	style.setDefault("display", "inline-flex")
	style.setDefault("align-items", "center")
	style.setDefault("justify-content", "center")
	style.setDefault("transform-origin", "center")

	transform := "scale(" + formatNumber(scale) + ")"
	if existing := style.get("transform"); existing != "" && existing != "none" {
		transform = existing + " " + transform
	}
	style.set("transform", transform)
	icon.SetAttr("style", style.String())

	n.logger.Trace().
		Float64("scale", scale).
		Str("viewBox", attr(svg, "viewBox")).
		Msg("rescaled icon")
	return true
}

// attr reads an attribute, tolerating parsers that lower-case SVG names.
func attr(s *goquery.Selection, name string) string {
	if v, ok := s.Attr(name); ok {
		return v
	}
	v, _ := s.Attr(strings.ToLower(name))
	return v
}

func parseViewBox(v string) (width, height float64, ok bool) {
	fields := strings.FieldsFunc(v, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})
	if len(fields) != 4 {
		return 0, 0, false
	}
	width, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return 0, 0, false
	}
	height, err = strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return 0, 0, false
	}
	if width <= 0 || height <= 0 {
		return 0, 0, false
	}
	return width, height, true
}

// parseLength accepts unitless and px lengths; anything else yields 0.
func parseLength(v string) float64 {
	v = strings.TrimSuffix(strings.TrimSpace(v), "px")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

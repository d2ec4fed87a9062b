package icons

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDoc(t *testing.T, body string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<!DOCTYPE html><html><body>" + body + "</body></html>"))
	require.NoError(t, err)
	return doc
}

func TestNormalizeScalesSpinner(t *testing.T) {
	doc := newDoc(t, `<div uk-spinner id="s"><svg width="60" height="60" viewBox="0 0 30 30"><circle r="14"></circle></svg></div>`)

	n := NewNormalizer(zerolog.Nop())
	assert.Equal(t, 1, n.Normalize(doc.Selection))

	svg := doc.Find("#s svg")
	w, _ := svg.Attr("width")
	h, _ := svg.Attr("height")
	assert.Equal(t, "30", w)
	assert.Equal(t, "30", h)

	style, _ := doc.Find("#s").Attr("style")
	assert.Equal(t, "display: inline-flex; align-items: center; justify-content: center; transform-origin: center; transform: scale(2);", style)
}

func TestNormalizeKeepsExistingStyle(t *testing.T) {
	doc := newDoc(t, `<span class="uk-icon" id="i" style="display: block; transform: rotate(45deg); color: red"><svg width="10" height="10" viewBox="0 0 20 20"></svg></span>`)

	n := NewNormalizer(zerolog.Nop())
	require.Equal(t, 1, n.Normalize(doc.Selection))

	style, _ := doc.Find("#i").Attr("style")
	assert.Equal(t, "display: block; transform: rotate(45deg) scale(0.5); color: red; align-items: center; justify-content: center; transform-origin: center;", style)
}

func TestNormalizeTransformNone(t *testing.T) {
	doc := newDoc(t, `<span data-uk-spinner id="i" style="transform: none"><svg width="45" height="45" viewBox="0 0 30 30"></svg></span>`)

	NewNormalizer(zerolog.Nop()).Normalize(doc.Selection)

	style, _ := doc.Find("#i").Attr("style")
	assert.Contains(t, style, "transform: scale(1.5);")
}

func TestNormalizeSkips(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{"no svg", `<span class="uk-icon"></span>`},
		{"already canonical", `<span class="uk-icon"><svg width="20" height="20" viewBox="0 0 20 20"></svg></span>`},
		{"within tolerance", `<span class="uk-icon"><svg width="20.1" height="20.1" viewBox="0 0 20 20"></svg></span>`},
		{"no viewBox", `<span class="uk-icon"><svg width="40" height="40"></svg></span>`},
		{"zero viewBox", `<span class="uk-icon"><svg width="40" height="40" viewBox="0 0 0 20"></svg></span>`},
		{"no size attrs", `<span class="uk-icon"><svg viewBox="0 0 20 20"></svg></span>`},
		{"relative size", `<span class="uk-icon"><svg width="2em" height="2em" viewBox="0 0 20 20"></svg></span>`},
		{"not an icon", `<span class="other"><svg width="40" height="40" viewBox="0 0 20 20"></svg></span>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newDoc(t, tt.html)
			before, err := doc.Html()
			require.NoError(t, err)

			assert.Equal(t, 0, NewNormalizer(zerolog.Nop()).Normalize(doc.Selection))

			after, err := doc.Html()
			require.NoError(t, err)
			assert.Equal(t, before, after)
		})
	}
}

func TestNormalizeCommaViewBoxAndPx(t *testing.T) {
	doc := newDoc(t, `<span class="uk-icon" id="i"><svg width="40px" height="40px" viewBox="0,0,20,20"></svg></span>`)

	assert.Equal(t, 1, NewNormalizer(zerolog.Nop()).Normalize(doc.Selection))
	w, _ := doc.Find("#i svg").Attr("width")
	assert.Equal(t, "20", w)
}

func TestAttachNormalizesUpdatedSubtrees(t *testing.T) {
	doc := newDoc(t, `<div id="root"><span class="uk-icon" id="a"><svg width="40" height="40" viewBox="0 0 20 20"></svg></span></div><div id="later"></div>`)

	hooks := &Hooks{}
	n := NewNormalizer(zerolog.Nop())
	assert.Equal(t, 1, n.Attach(doc, hooks))

	later := doc.Find("#later")
	later.AppendHtml(`<span class="uk-icon" id="b"><svg width="10" height="10" viewBox="0 0 20 20"></svg></span>`)
	_, hasStyle := doc.Find("#b").Attr("style")
	require.False(t, hasStyle)

	hooks.Emit(later)

	style, _ := doc.Find("#b").Attr("style")
	assert.Contains(t, style, "scale(0.5)")

	// #a was normalized already and stays untouched.
	styleA, _ := doc.Find("#a").Attr("style")
	assert.Equal(t, 1, strings.Count(styleA, "scale("))
}

func TestParseInlineStyle(t *testing.T) {
	s := parseInlineStyle("color: red; --gap: 4px; margin:0 auto")
	assert.Equal(t, "red", s.get("color"))
	assert.Equal(t, "0 auto", s.get("margin"))
	assert.Equal(t, "", parseInlineStyle("").String())
}

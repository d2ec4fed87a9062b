package theme

import (
	_ "embed"

	"github.com/goccy/go-json"

	"frankentokens/model"
)

//go:embed tailwind.json
var tailwindTokens []byte

// ColorFormats documents the color notation used by each source.
type ColorFormats struct {
	FrankenUI string `json:"frankenui"`
	DaisyUI   string `json:"daisyui"`
	Tailwind  string `json:"tailwind"`
}

// BundleMetadata describes a Bundle.
type BundleMetadata struct {
	Description         string       `json:"description"`
	FrankenUIThemeCount int          `json:"frankenui_theme_count"`
	DaisyUIThemeCount   int          `json:"daisyui_theme_count"`
	ColorFormats        ColorFormats `json:"color_formats"`
}

// Bundle combines every theme source into one document.
type Bundle struct {
	Metadata  BundleMetadata  `json:"metadata"`
	FrankenUI *model.Registry `json:"frankenui"`
	DaisyUI   *model.ThemeSet `json:"daisyui"`
	Tailwind  json.RawMessage `json:"tailwind"`
}

// NewBundle assembles a Bundle with the built-in Tailwind design tokens.
func NewBundle(franken *model.Registry, daisy *model.ThemeSet) *Bundle {
	return &Bundle{
		Metadata: BundleMetadata{
			Description:         "Complete theme extraction from MonsterUI (FrankenUI, DaisyUI, Tailwind CSS)",
			FrankenUIThemeCount: franken.Len(),
			DaisyUIThemeCount:   daisy.Len(),
			ColorFormats: ColorFormats{
				FrankenUI: "HSL (H S% L%)",
				DaisyUI:   "OKLCH (oklch(L% C H))",
				Tailwind:  "OKLCH (oklch(L% C H))",
			},
		},
		FrankenUI: franken,
		DaisyUI:   daisy,
		Tailwind:  json.RawMessage(tailwindTokens),
	}
}

// Package palette maps document fill and font colors to the CSS vocabulary
// used by the page stylesheet.
//
// The lookup tables are built once and never mutated. A Palette may be
// extended with extra fill classes at construction time (see New), after
// which it is read-only and safe to share.
package palette

import (
	"strings"

	"github.com/tenebris-tech/x2html/docx2html/model"
)

// Named swatches of the house design system.
const (
	Navy         model.Color = "1E4D8C"
	AltNavy      model.Color = "1B2A4A"
	Blue         model.Color = "2E86C1"
	Green        model.Color = "1A7A4A"
	Gold         model.Color = "B7860B"
	GoldVariant  model.Color = "C8960C"
	Sky          model.Color = "D6E4F0"
	SkyAlt       model.Color = "D6E4F7"
	LightGray    model.Color = "F4F6F8"
	LightGrayAlt model.Color = "F9F9F9"
	GoldTintA    model.Color = "FEF9EC"
	GoldTintB    model.Color = "FFFDF4"
	White        model.Color = "FFFFFF"
	LightGreen   model.Color = "C8E6C9"
	PaleGreen    model.Color = "DCEDC8"
	Yellow       model.Color = "FFF9C4"
	LightRed     model.Color = "FFCDD2"
	LightPurple  model.Color = "EDE7F6"
	PaleSky      model.Color = "F2F7FF"
	PaleSkyAlt   model.Color = "EEF4FF"
	DefaultInk   model.Color = "1A1A2E"
	Black        model.Color = "000000"
	DarkGray     model.Color = "333333"
	MidGray      model.Color = "888888"
	MidGrayDark  model.Color = "555555"
	MidGraySlate model.Color = "6B7A8D"
)

// Fallback classes used by the renderers.
const (
	ClassNavy  = "fill-navy"
	ClassWhite = "fill-white"
)

var fillClasses = map[model.Color]string{
	Navy:         ClassNavy,
	Blue:         "fill-blue",
	Green:        "fill-green",
	Gold:         "fill-gold",
	Sky:          "fill-sky",
	LightGray:    "fill-lightgray",
	GoldTintA:    "fill-goldtint-a",
	GoldTintB:    "fill-goldtint-b",
	White:        ClassWhite,
	AltNavy:      ClassNavy,
	LightGreen:   "fill-green-light",
	PaleGreen:    "fill-green-pale",
	Yellow:       "fill-yellow",
	LightRed:     "fill-red-light",
	LightPurple:  "fill-purple-light",
	SkyAlt:       "fill-sky",
	PaleSky:      "fill-sky-pale",
	PaleSkyAlt:   "fill-sky-pale",
	LightGrayAlt: "fill-lightgray",
}

// Run colors that match body ink are not styled.
var inkColors = map[model.Color]bool{
	Black:      true,
	DefaultInk: true,
	DarkGray:   true,
	White:      true,
	"WHITE":    true,
}

var cssVariables = map[model.Color]string{
	Blue:         "var(--blue)",
	Navy:         "var(--navy)",
	Green:        "var(--green)",
	Gold:         "var(--gold)",
	GoldVariant:  "var(--gold)",
	MidGray:      "var(--mid)",
	MidGrayDark:  "var(--mid)",
	MidGraySlate: "var(--mid)",
}

// Strong fills turn a shaded paragraph into a colored block.
var strongFills = map[model.Color]bool{
	Navy:    true,
	Blue:    true,
	Green:   true,
	Gold:    true,
	AltNavy: true,
}

// Palette resolves colors to CSS classes and inline styles
type Palette struct {
	classes map[model.Color]string
}

var defaultPalette = &Palette{classes: fillClasses}

// Default returns the built-in palette
func Default() *Palette {
	return defaultPalette
}

// New returns a palette with the built-in classes plus extra fill classes.
// Extra entries never replace built-in ones.
func New(extra map[string]string) *Palette {
	if len(extra) == 0 {
		return defaultPalette
	}
	classes := make(map[model.Color]string, len(fillClasses)+len(extra))
	for hex, class := range extra {
		c := model.NormalizeColor(hex)
		if !c.IsSet() || class == "" {
			continue
		}
		classes[c] = class
	}
	for c, class := range fillClasses {
		classes[c] = class
	}
	return &Palette{classes: classes}
}

// Lookup returns the class for a fill color
func (p *Palette) Lookup(c model.Color) (string, bool) {
	class, ok := p.classes[model.Color(strings.ToUpper(c.Hex()))]
	return class, ok
}

// Class returns the class for a fill color, or defaultClass when the color
// is absent or not in the table
func (p *Palette) Class(c model.Color, defaultClass string) string {
	if class, ok := p.Lookup(c); ok {
		return class
	}
	return defaultClass
}

// InlineColor returns the CSS color value for a run font color. Body ink
// colors and absent colors return ok=false and must not be styled.
func (p *Palette) InlineColor(c model.Color) (string, bool) {
	if !c.IsSet() {
		return "", false
	}
	c = model.Color(strings.ToUpper(c.Hex()))
	if inkColors[c] {
		return "", false
	}
	if v, ok := cssVariables[c]; ok {
		return v, true
	}
	return "#" + strings.ToLower(c.Hex()), true
}

// IsStrongFill reports whether a paragraph shading promotes the paragraph
// to a shaded block
func IsStrongFill(c model.Color) bool {
	return strongFills[model.Color(strings.ToUpper(c.Hex()))]
}

// Classes returns a copy of the fill class table
func (p *Palette) Classes() map[string]string {
	out := make(map[string]string, len(p.classes))
	for c, class := range p.classes {
		out[c.Hex()] = class
	}
	return out
}

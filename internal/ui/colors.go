package ui

import (
	"image/color"

	"github.com/tartampluch/go-wishlist/internal/config"
	"github.com/tartampluch/go-wishlist/internal/engine"
)

var palette = map[engine.Color]color.NRGBA{
	engine.ColorIndigo:  {R: 0x63, G: 0x66, B: 0xF1, A: 0xFF},
	engine.ColorRose:    {R: 0xF4, G: 0x3F, B: 0x5E, A: 0xFF},
	engine.ColorBlue:    {R: 0x3B, G: 0x82, B: 0xF6, A: 0xFF},
	engine.ColorEmerald: {R: 0x10, G: 0xB9, B: 0x81, A: 0xFF},
	engine.ColorAmber:   {R: 0xF5, G: 0x9E, B: 0x0B, A: 0xFF},
	engine.ColorViolet:  {R: 0x8B, G: 0x5C, B: 0xF6, A: 0xFF},
}

// stripeColor returns the card accent color, indigo for unknown values.
func stripeColor(c engine.Color) color.NRGBA {
	if rgba, ok := palette[c]; ok {
		return rgba
	}
	return palette[engine.ColorIndigo]
}

// colorLabel returns the localized name of a palette color.
func (app *WishlistApp) colorLabel(c engine.Color) string {
	return app.GetMsg(config.TKeyColorPrefix + c.String())
}

// colorOptions lists localized color names in palette order.
func (app *WishlistApp) colorOptions() []string {
	out := make([]string, len(engine.Palette))
	for i, c := range engine.Palette {
		out[i] = app.colorLabel(c)
	}
	return out
}

// colorFromLabel maps a localized color name back to its value.
func (app *WishlistApp) colorFromLabel(label string) (engine.Color, bool) {
	for _, c := range engine.Palette {
		if app.colorLabel(c) == label {
			return c, true
		}
	}
	return engine.ColorIndigo, false
}

package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"toroca/pkg/core"
)

// Glyphs holds one terminal symbol per cell state.
var Glyphs = [core.States]rune{
	'.', 'o', 'O', '#', '@', '*', '+', '=',
	'-', '|', '/', '\\', ':', ';', 'x', 'X',
}

var palette = buildPalette()

// Palette returns one colour per cell state. State 0 is near black; the
// remaining states walk once around the hue wheel so neighbouring phases
// get neighbouring colours.
func Palette() []color.RGBA {
	out := make([]color.RGBA, len(palette))
	copy(out, palette)
	return out
}

func buildPalette() []color.RGBA {
	p := make([]color.RGBA, core.States)
	p[0] = color.RGBA{R: 12, G: 12, B: 18, A: 255}
	for i := 1; i < core.States; i++ {
		hue := float64(i-1) / float64(core.States-1) * 360
		r, g, b := colorful.Hsv(hue, 0.75, 1).RGB255()
		p[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return p
}

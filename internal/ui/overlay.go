//go:build ebiten

package ui

import (
	"image/color"

	"toroca/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	lineHeight = 14
	padding    = 6
	charWidth  = 7
)

// Overlay draws the sim's parameter snapshot in a translucent box in the
// top-left corner of the view.
type Overlay struct {
	sim   core.Sim
	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim) *Overlay {
	o := &Overlay{sim: sim}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image, paused bool, tps int) {
	lines := Lines(o.sim, paused, tps)
	if len(lines) == 0 {
		return
	}
	width := 0
	for _, l := range lines {
		if len(l) > width {
			width = len(l)
		}
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(width*charWidth+2*padding), float64(len(lines)*lineHeight+2*padding))
	op.ColorScale.Scale(0, 0, 0, 0.6)
	screen.DrawImage(o.pixel, op)

	face := basicfont.Face7x13
	for i, l := range lines {
		text.Draw(screen, l, face, padding, padding+(i+1)*lineHeight-3, color.White)
	}
}

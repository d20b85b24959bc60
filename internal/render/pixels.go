package render

import (
	"image/color"

	"toroca/pkg/core"
)

// fillStateRGBA writes one RGBA pixel per cell into buf, which must hold at
// least 4*len(cells) bytes. Values outside the state range fold back into it
// the same way core.NewCellState does.
func fillStateRGBA(buf []byte, cells []uint8, colours []color.RGBA) {
	for i, v := range cells {
		col := colours[core.NewCellState(int(v)).Value()]
		px := buf[i*4 : i*4+4 : i*4+4]
		px[0], px[1], px[2], px[3] = col.R, col.G, col.B, col.A
	}
}

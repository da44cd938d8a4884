package cli

import (
	"image/color"

	"github.com/plus3/blockfall/tetris"
)

var palette = [...]color.RGBA{
	tetris.Empty: {R: 130, G: 130, B: 130, A: 255},
	1:            {R: 128, G: 0, B: 128, A: 255},
	2:            {R: 255, G: 165, B: 0, A: 255},
	3:            {R: 0, G: 0, B: 255, A: 255},
	4:            {R: 255, G: 255, B: 0, A: 255},
	5:            {R: 0, G: 128, B: 0, A: 255},
	6:            {R: 255, G: 0, B: 0, A: 255},
	7:            {R: 240, G: 248, B: 255, A: 255},
}

var wallColor = color.RGBA{R: 64, G: 64, B: 64, A: 255}

// CellColor is the fill used for a grid code. Walls and unknown codes
// share a dark gray.
func CellColor(c tetris.Cell) color.RGBA {
	if int(c) < len(palette) {
		return palette[c]
	}
	return wallColor
}

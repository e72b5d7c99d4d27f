package dxf

import "image/color"

// aciColors is the subset of the AutoCAD Color Index the importer
// resolves; anything else falls back to gray so imported underlays stay
// readable on both light and dark canvases.
var aciColors = map[int]color.RGBA{
	1: {R: 255, A: 255},                 // red
	2: {R: 255, G: 255, A: 255},         // yellow
	3: {G: 255, A: 255},                 // green
	4: {G: 255, B: 255, A: 255},         // cyan
	5: {B: 255, A: 255},                 // blue
	6: {R: 255, B: 255, A: 255},         // magenta
	7: {R: 255, G: 255, B: 255, A: 255}, // white/black
	8: {R: 128, G: 128, B: 128, A: 255},
	9: {R: 192, G: 192, B: 192, A: 255},
}

// defaultGray is the fallback for unknown or unmapped color indices.
var defaultGray = color.RGBA{R: 128, G: 128, B: 128, A: 255}

// resolveColor maps a layer's numeric color index to a display color.
// DXF negative indices mean the layer is switched off but keep the
// magnitude as the color.
func resolveColor(index int) color.RGBA {
	if index < 0 {
		index = -index
	}
	if c, ok := aciColors[index]; ok {
		return c
	}
	return defaultGray
}

package sheet

import "math"

// Print scale is the ratio of paper inches to one model foot, e.g. 0.25
// for the common 1/4" = 1' drawing scale.

// PageToModelScale returns output pixels per model pixel when rendering a
// sheet to fixed raster output at the given dpi and print scale.
func PageToModelScale(dpi, printInPerFt, pxPerFt float64) float64 {
	return dpi * printInPerFt / pxPerFt
}

// OutputPixels returns the raster dimensions of a page at the given dpi.
func OutputPixels(size PageSize, o Orientation, dpi float64) (w, h int) {
	wIn, hIn := size.DimensionsIn()
	if o == Landscape {
		wIn, hIn = hIn, wIn
	}
	return int(math.Round(wIn * dpi)), int(math.Round(hIn * dpi))
}

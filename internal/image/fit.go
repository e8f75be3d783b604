package imagepkg

import "math"

// Size is a width/height pair in canvas pixels. Fractional values are kept
// until the compositor snaps them to the pixel grid.
type Size struct {
	Width  float64
	Height float64
}

// Fit returns the largest size with the native aspect ratio that fits
// inside the box. Native dimensions must be positive.
func Fit(nativeW, nativeH, boxW, boxH float64) Size {
	scale := math.Min(boxW/nativeW, boxH/nativeH)
	return Size{Width: nativeW * scale, Height: nativeH * scale}
}

package imagepkg

import (
	"image"
	"math"
)

// Rect is a placement rectangle on the canvas.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Pixels snaps the rectangle to the pixel grid. Each edge is rounded on its
// own so two rectangles sharing an edge still share it after snapping.
func (r Rect) Pixels() image.Rectangle {
	return image.Rect(
		int(math.Round(r.X)),
		int(math.Round(r.Y)),
		int(math.Round(r.X+r.Width)),
		int(math.Round(r.Y+r.Height)),
	)
}

// Layout holds the placement of both images.
type Layout struct {
	Left  Rect
	Right Rect
}

// PlanLayout places the left image so its right edge sits on the vertical
// midline and the right image so its left edge sits on it. Both are centered
// vertically on their own.
func PlanLayout(canvasW, canvasH float64, left, right Size) Layout {
	mid := canvasW / 2
	return Layout{
		Left: Rect{
			X:      mid - left.Width,
			Y:      (canvasH - left.Height) / 2,
			Width:  left.Width,
			Height: left.Height,
		},
		Right: Rect{
			X:      mid,
			Y:      (canvasH - right.Height) / 2,
			Width:  right.Width,
			Height: right.Height,
		},
	}
}

// FitHalves fits each image into one half of the canvas and plans the layout.
func FitHalves(canvasW, canvasH float64, left, right image.Image) Layout {
	half := canvasW / 2
	lb, rb := left.Bounds(), right.Bounds()
	lf := Fit(float64(lb.Dx()), float64(lb.Dy()), half, canvasH)
	rf := Fit(float64(rb.Dx()), float64(rb.Dy()), half, canvasH)
	return PlanLayout(canvasW, canvasH, lf, rf)
}

package imagepkg

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// A3 landscape at roughly 300dpi.
const (
	CanvasWidth  = 4961
	CanvasHeight = 3508
)

// Surface is a fixed-size drawing surface. Compose redraws it from scratch.
type Surface struct {
	width  int
	height int
	img    *image.NRGBA
}

// NewSurface returns a surface of the given size. Pixels are allocated on
// the first Compose.
func NewSurface(width, height int) *Surface {
	return &Surface{width: width, height: height}
}

// NewA3Surface returns a surface with the A3 landscape canvas size.
func NewA3Surface() *Surface {
	return NewSurface(CanvasWidth, CanvasHeight)
}

// Width returns the fixed surface width.
func (s *Surface) Width() int { return s.width }

// Height returns the fixed surface height.
func (s *Surface) Height() int { return s.height }

// Image returns the current pixels, or nil before the first Compose.
func (s *Surface) Image() *image.NRGBA { return s.img }

// reset restores the fixed size and paints the whole surface opaque white.
func (s *Surface) reset() {
	if s.img == nil || s.img.Bounds().Dx() != s.width || s.img.Bounds().Dy() != s.height {
		s.img = imaging.New(s.width, s.height, color.White)
		return
	}
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
}

// Compose clears the surface to white and draws left and right scaled into
// their rectangles. Transparent regions of the sources show the white
// background, which keeps the JPEG output free of transparency artifacts.
func Compose(s *Surface, left, right image.Image, leftRect, rightRect Rect) {
	s.reset()
	drawInto(s.img, left, leftRect.Pixels())
	drawInto(s.img, right, rightRect.Pixels())
}

func drawInto(dst *image.NRGBA, src image.Image, r image.Rectangle) {
	if r.Empty() {
		return
	}
	scaled := imaging.Resize(src, r.Dx(), r.Dy(), imaging.Lanczos)
	draw.Draw(dst, r, scaled, image.Point{}, draw.Over)
}

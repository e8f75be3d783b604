package imagepkg

import (
	"bytes"
	"context"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// ThumbnailMaxSide bounds preview thumbnails.
const ThumbnailMaxSide = 480

// Thumbnail decodes data and returns a small JPEG for previews. Images
// already within maxSide are only re-encoded.
func Thumbnail(ctx context.Context, data []byte, maxSide int) ([]byte, error) {
	src, err := Load(ctx, data)
	if err != nil {
		return nil, err
	}
	b := src.Bounds()
	fit := Fit(float64(b.Dx()), float64(b.Dy()), float64(maxSide), float64(maxSide))
	w := int(math.Max(1, math.Round(math.Min(fit.Width, float64(b.Dx())))))
	h := int(math.Max(1, math.Round(math.Min(fit.Height, float64(b.Dy())))))

	dst := imaging.New(w, h, color.White)
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, dst, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package imagepkg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	// imaging registers jpeg, png, gif, bmp and tiff.
	_ "golang.org/x/image/webp"
)

// ErrDecode marks data that could not be decoded into an image.
var ErrDecode = errors.New("decode image")

const (
	// MaxImageDimension caps the width and height a header may claim.
	MaxImageDimension = 32768
	// MaxImagePixels caps the decoded bitmap at roughly 64MP (256 MB as RGBA).
	MaxImagePixels int64 = 64 * 1024 * 1024
)

// checkBounds reads only the image header so that lying dimensions are
// rejected before the decoder allocates the bitmap.
func checkBounds(data []byte) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: image bounds invalid (%d x %d)", ErrDecode, cfg.Width, cfg.Height)
	}
	if cfg.Width > MaxImageDimension || cfg.Height > MaxImageDimension {
		return fmt.Errorf("%w: image dimension exceeds limit (%d x %d)", ErrDecode, cfg.Width, cfg.Height)
	}
	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > MaxImagePixels {
		return fmt.Errorf("%w: image pixel count %d exceeds limit %d", ErrDecode, pixels, MaxImagePixels)
	}
	return nil
}

// Load decodes encoded image data into a bitmap, applying EXIF orientation.
// Images whose header exceeds MaxImageDimension or MaxImagePixels are
// rejected with ErrDecode.
func Load(ctx context.Context, data []byte) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkBounds(data); err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrDecode)
	}
	return img, nil
}

// LoadPair decodes both images concurrently. It succeeds only if both
// decodes succeed; the first failure cancels the other.
func LoadPair(ctx context.Context, left, right []byte) (image.Image, image.Image, error) {
	var l, r image.Image
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		img, err := Load(egCtx, left)
		if err != nil {
			return fmt.Errorf("left image: %w", err)
		}
		l = img
		return nil
	})
	eg.Go(func() error {
		img, err := Load(egCtx, right)
		if err != nil {
			return fmt.Errorf("right image: %w", err)
		}
		r = img
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

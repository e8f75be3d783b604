package imagepkg

import (
	"bytes"
	"context"
	"errors"
	"image/jpeg"
	"strings"
	"testing"
)

func TestLoadDecodesPNG(t *testing.T) {
	img, err := Load(context.Background(), encodePNG(t, solidImage(30, 20, red)))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 30 || b.Dy() != 20 {
		t.Fatalf("unexpected bounds %v", b)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	_, err := Load(context.Background(), []byte("definitely not an image"))
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}

func TestLoadRejectsOversizedHeader(t *testing.T) {
	tests := []struct {
		name string
		w, h uint32
	}{
		{"huge square", 60000, 60000},
		{"wide strip", MaxImageDimension + 1, 1},
		{"too many pixels", 9000, 9000},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(context.Background(), pngHeader(tc.w, tc.h))
			if !errors.Is(err, ErrDecode) {
				t.Fatalf("expected ErrDecode, got %v", err)
			}
			if _, err := Thumbnail(context.Background(), pngHeader(tc.w, tc.h), ThumbnailMaxSide); !errors.Is(err, ErrDecode) {
				t.Fatalf("Thumbnail: expected ErrDecode, got %v", err)
			}
		})
	}
}

func TestLoadPair(t *testing.T) {
	good := encodePNG(t, solidImage(10, 10, blue))

	l, r, err := LoadPair(context.Background(), good, good)
	if err != nil || l == nil || r == nil {
		t.Fatalf("LoadPair(good, good) = %v, %v, %v", l, r, err)
	}

	_, _, err = LoadPair(context.Background(), good, []byte("broken"))
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
	if !strings.Contains(err.Error(), "right image") {
		t.Fatalf("error does not name the failing side: %v", err)
	}
}

func TestThumbnailBoundsLongestSide(t *testing.T) {
	out, err := Thumbnail(context.Background(), encodePNG(t, solidImage(2000, 1000, green)), ThumbnailMaxSide)
	if err != nil {
		t.Fatalf("Thumbnail returned error: %v", err)
	}
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("thumbnail is not a JPEG: %v", err)
	}
	if cfg.Width != 480 || cfg.Height != 240 {
		t.Fatalf("unexpected thumbnail size %dx%d", cfg.Width, cfg.Height)
	}
}

func TestAccessQRPNG(t *testing.T) {
	b, err := AccessQRPNG("http://192.168.0.10:8080/", 64)
	if err != nil {
		t.Fatalf("AccessQRPNG returned error: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("\x89PNG")) {
		t.Fatal("QR output is not a PNG")
	}
	if _, err := AccessQRPNG("", 256); err == nil {
		t.Fatal("expected error for empty url")
	}
}

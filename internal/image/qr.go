package imagepkg

import (
	"errors"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	minQRSize = 128
	maxQRSize = 1024
)

// AccessQRPNG returns a PNG QR code pointing at url, so the page can be
// opened from a phone on the same network. size is clamped to a sane range.
func AccessQRPNG(url string, size int) ([]byte, error) {
	if url == "" {
		return nil, errors.New("qr: empty url")
	}
	switch {
	case size < minQRSize:
		size = minQRSize
	case size > maxQRSize:
		size = maxQRSize
	}
	return qrcode.Encode(url, qrcode.Medium, size)
}

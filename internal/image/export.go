package imagepkg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
)

const (
	// DefaultQuality favors quality over size (0.92 on a 0..1 scale).
	DefaultQuality        = 92
	DefaultFilenamePrefix = "POP_A3横"
)

// ErrEncoderUnsupported means the runtime could not produce the output image.
var ErrEncoderUnsupported = errors.New("output encoder unsupported")

// Encoder writes img to w at the given quality (1-100).
type Encoder interface {
	Encode(w io.Writer, img image.Image, quality int) error
}

// JPEGEncoder encodes baseline JPEG through imaging.
type JPEGEncoder struct{}

func (JPEGEncoder) Encode(w io.Writer, img image.Image, quality int) error {
	return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality))
}

var bufferPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// Artifact is an encoded output held in a pooled buffer. It must be
// released once handed off.
type Artifact struct {
	buf *bytes.Buffer
}

func (a *Artifact) Bytes() []byte {
	if a.buf == nil {
		return nil
	}
	return a.buf.Bytes()
}

func (a *Artifact) Len() int {
	if a.buf == nil {
		return 0
	}
	return a.buf.Len()
}

// Release returns the buffer to the pool. Bytes is empty afterwards.
func (a *Artifact) Release() {
	if a.buf == nil {
		return
	}
	a.buf.Reset()
	bufferPool.Put(a.buf)
	a.buf = nil
}

// Saver hands a finished artifact to the user, e.g. as an HTTP download.
// The artifact is only valid for the duration of the call.
type Saver interface {
	Save(ctx context.Context, filename string, a *Artifact) error
}

// SaverFunc adapts a function to Saver.
type SaverFunc func(ctx context.Context, filename string, a *Artifact) error

func (f SaverFunc) Save(ctx context.Context, filename string, a *Artifact) error {
	return f(ctx, filename, a)
}

// Exporter encodes a surface and passes it to a Saver under a timestamped name.
type Exporter struct {
	Encoder Encoder
	Quality int
	Prefix  string
	Now     func() time.Time
	Logger  *slog.Logger
}

// NewExporter returns an Exporter with the JPEG defaults.
func NewExporter() *Exporter {
	return &Exporter{
		Encoder: JPEGEncoder{},
		Quality: DefaultQuality,
		Prefix:  DefaultFilenamePrefix,
		Now:     time.Now,
		Logger:  slog.Default(),
	}
}

// Filename returns <prefix>_YYYYMMDD_HHMMSS.jpg for t in t's location.
func (e *Exporter) Filename(t time.Time) string {
	return fmt.Sprintf("%s_%s.jpg", e.Prefix, t.Format("20060102_150405"))
}

// Encode encodes the surface. Encoder failures and empty output are reported
// as ErrEncoderUnsupported.
func (e *Exporter) Encode(s *Surface) (*Artifact, error) {
	img := s.Image()
	if img == nil {
		return nil, errors.New("encode: surface has not been composed")
	}
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	a := &Artifact{buf: buf}
	if err := e.Encoder.Encode(buf, img, e.Quality); err != nil {
		a.Release()
		return nil, fmt.Errorf("%w: %v", ErrEncoderUnsupported, err)
	}
	if buf.Len() == 0 {
		a.Release()
		return nil, fmt.Errorf("%w: empty output", ErrEncoderUnsupported)
	}
	return a, nil
}

// Export encodes the surface and saves it. Nothing is saved when encoding
// fails. The artifact is released as soon as Save returns.
func (e *Exporter) Export(ctx context.Context, s *Surface, saver Saver) (string, error) {
	a, err := e.Encode(s)
	if err != nil {
		return "", err
	}
	defer a.Release()

	name := e.Filename(e.Now())
	size := a.Len()
	if err := saver.Save(ctx, name, a); err != nil {
		return "", fmt.Errorf("save %s: %w", name, err)
	}
	e.Logger.Info("merged image exported", "filename", name, "size", humanize.Bytes(uint64(size)))
	return name, nil
}

package merge

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"

	imagepkg "github.com/youruser/popmerge/internal/image"
)

// Snapshot is a copy of the session state for rendering.
type Snapshot struct {
	State    State
	CanMerge bool
	Status   Message
	Filename string
	Left     Preview
	Right    Preview
}

// LoadFunc decodes the left and right image data jointly.
type LoadFunc func(ctx context.Context, left, right []byte) (image.Image, image.Image, error)

// Orchestrator owns one user's selections and runs merges for them.
type Orchestrator struct {
	mu       sync.Mutex
	state    State
	files    [2]*File
	previews [2]Preview
	status   Message
	filename string

	width    int
	height   int
	load     LoadFunc
	exporter *imagepkg.Exporter
	logger   *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithSurfaceSize overrides the canvas size. Production uses A3.
func WithSurfaceSize(width, height int) Option {
	return func(o *Orchestrator) {
		o.width, o.height = width, height
	}
}

func WithExporter(e *imagepkg.Exporter) Option {
	return func(o *Orchestrator) { o.exporter = e }
}

func WithLoader(fn LoadFunc) Option {
	return func(o *Orchestrator) { o.load = fn }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// New returns an Orchestrator with nothing selected.
func New(opts ...Option) *Orchestrator {
	o := &Orchestrator{
		state:    StateIdle,
		previews: [2]Preview{Present(nil), Present(nil)},
		width:    imagepkg.CanvasWidth,
		height:   imagepkg.CanvasHeight,
		load:     imagepkg.LoadPair,
		exporter: imagepkg.NewExporter(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Select replaces the file on one side. A nil file clears it. Both previews
// are re-evaluated and the status line and last filename are cleared.
func (o *Orchestrator) Select(side Side, f *File) Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.files[side] = f
	o.previews[Left] = Present(o.files[Left])
	o.previews[Right] = Present(o.files[Right])
	o.status = MsgNone
	o.filename = ""

	// Select is accepted in every state.
	o.state, _ = Transition(o.state, Event{Kind: EventSelect, Valid: o.valid()})
	return o.snapshot()
}

// Snapshot returns the current state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshot()
}

// Merge composes both images and hands the JPEG to saver. It returns
// ErrNotReady or ErrMergeInProgress without side effects when the trigger
// is not enabled. Pipeline failures are returned after the status line has
// been updated.
func (o *Orchestrator) Merge(ctx context.Context, saver imagepkg.Saver) error {
	o.mu.Lock()
	next, err := Transition(o.state, Event{Kind: EventMergeStart})
	if err != nil {
		o.mu.Unlock()
		return err
	}
	o.state = next
	o.status = MsgMerging
	left, right := o.previews[Left].Image, o.previews[Right].Image
	o.mu.Unlock()

	name, err := o.run(ctx, left.Data, right.Data, saver)

	o.mu.Lock()
	defer o.mu.Unlock()
	switch {
	case err == nil:
		o.status = MsgDone
		o.filename = name
	case errors.Is(err, imagepkg.ErrEncoderUnsupported):
		o.status = MsgEncoderUnsupported
		o.logger.Warn("merge output unsupported", "error", err)
	default:
		o.status = MsgFailed
		o.logger.Error("merge failed", "left", left.Name, "right", right.Name, "error", err)
	}
	o.state, _ = Transition(o.state, Event{Kind: EventMergeDone, Valid: o.valid()})
	return err
}

func (o *Orchestrator) run(ctx context.Context, left, right []byte, saver imagepkg.Saver) (name string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("merge panicked: %v", p)
		}
	}()

	l, r, err := o.load(ctx, left, right)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	surface := imagepkg.NewSurface(o.width, o.height)
	layout := imagepkg.FitHalves(float64(o.width), float64(o.height), l, r)
	imagepkg.Compose(surface, l, r, layout.Left, layout.Right)

	return o.exporter.Export(ctx, surface, saver)
}

func (o *Orchestrator) valid() bool {
	return o.previews[Left].Valid() && o.previews[Right].Valid()
}

func (o *Orchestrator) snapshot() Snapshot {
	return Snapshot{
		State:    o.state,
		CanMerge: o.state == StateReady,
		Status:   o.status,
		Filename: o.filename,
		Left:     o.previews[Left],
		Right:    o.previews[Right],
	}
}

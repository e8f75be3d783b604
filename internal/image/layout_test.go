package imagepkg

import (
	"image"
	"math"
	"math/rand/v2"
	"testing"
)

func TestPlanLayoutAbutsAtMidline(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	const w, h = float64(CanvasWidth), float64(CanvasHeight)
	for i := 0; i < 1000; i++ {
		left := Fit(1+rng.Float64()*6000, 1+rng.Float64()*6000, w/2, h)
		right := Fit(1+rng.Float64()*6000, 1+rng.Float64()*6000, w/2, h)
		l := PlanLayout(w, h, left, right)

		if math.Abs(l.Left.X+l.Left.Width-w/2) > 1e-9 {
			t.Fatalf("left edge %v does not touch midline %v", l.Left.X+l.Left.Width, w/2)
		}
		if l.Right.X != w/2 {
			t.Fatalf("right x %v does not touch midline %v", l.Right.X, w/2)
		}
		if l.Left.X < -1e-9 || l.Right.X+l.Right.Width > w+1e-9 {
			t.Fatalf("layout leaves the canvas: %+v", l)
		}
		if math.Abs(l.Left.Y*2+l.Left.Height-h) > 1e-9 || math.Abs(l.Right.Y*2+l.Right.Height-h) > 1e-9 {
			t.Fatalf("layout not vertically centered: %+v", l)
		}
	}
}

func TestFitHalvesScenario(t *testing.T) {
	left := image.NewNRGBA(image.Rect(0, 0, 1000, 2000))
	right := image.NewNRGBA(image.Rect(0, 0, 3000, 1000))

	l := FitHalves(CanvasWidth, CanvasHeight, left, right)

	if math.Abs(l.Left.Width-1754) > 1e-6 || math.Abs(l.Left.Height-CanvasHeight) > 1e-6 || math.Abs(l.Left.Y) > 1e-6 {
		t.Fatalf("unexpected left rect: %+v", l.Left)
	}
	if math.Abs(l.Left.X-726.5) > 1e-6 {
		t.Fatalf("unexpected left x: %v", l.Left.X)
	}
	if l.Right.X != 2480.5 || math.Abs(l.Right.Width-2480.5) > 1e-6 {
		t.Fatalf("unexpected right rect: %+v", l.Right)
	}
	if math.Abs(l.Right.Height-826.8333333) > 1e-6 {
		t.Fatalf("unexpected right height: %v", l.Right.Height)
	}
	if math.Abs(l.Right.Y-(CanvasHeight-l.Right.Height)/2) > 1e-9 {
		t.Fatalf("right image not centered: %+v", l.Right)
	}
}

func TestRectPixelsShareMidlineColumn(t *testing.T) {
	l := PlanLayout(CanvasWidth, CanvasHeight, Size{Width: 1754, Height: 3508}, Size{Width: 2480.5, Height: 826.83})
	lp, rp := l.Left.Pixels(), l.Right.Pixels()
	if lp.Max.X != rp.Min.X {
		t.Fatalf("snapped rects do not abut: left %v right %v", lp, rp)
	}
	if rp.Max.X > CanvasWidth || lp.Min.X < 0 {
		t.Fatalf("snapped rects leave the canvas: left %v right %v", lp, rp)
	}
}

package img2paint

import (
	"math"
	"testing"

	"github.com/wbrown/img2paint/imageutil"
)

func TestCompositeLaw(t *testing.T) {
	t.Parallel()

	canvas := imageutil.CreateSolidImage(5, 5, 0.2, 0.4, 0.6)
	tex := imageutil.CreateSolidImage(1, 1, 0.25, 0.5, 1)
	color := []float64{1, 0, 0.5}

	Composite(canvas, 2, 2, color, tex)

	want := []float64{
		0.25*1 + 0.75*0.2,
		0.5*0 + 0.5*0.4,
		1 * 0.5,
	}
	for c, w := range want {
		if got := canvas.Get(2, 2, c); math.Abs(got-w) > 1e-12 {
			t.Errorf("channel %d = %g, want %g", c, got, w)
		}
	}
	// Neighbors are untouched.
	if got := canvas.Get(1, 2, 0); got != 0.2 {
		t.Errorf("neighbor changed to %g", got)
	}
}

func TestCompositeSingleChannelTexture(t *testing.T) {
	t.Parallel()

	canvas := imageutil.NewBuffer(3, 3, 3)
	tex := imageutil.CreateSolidImage(1, 1, 0.5)
	Composite(canvas, 1, 1, []float64{1, 0.5, 0.2}, tex)

	for c, want := range []float64{0.5, 0.25, 0.1} {
		if got := canvas.Get(1, 1, c); math.Abs(got-want) > 1e-12 {
			t.Errorf("channel %d = %g, want %g", c, got, want)
		}
	}
}

func TestCompositeAnchor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		w, h       int
		minX, maxX int
		minY, maxY int
	}{
		// Offsets are floor(w/2), the extra column goes right.
		{"odd", 3, 3, 9, 11, 9, 11},
		{"even", 4, 2, 8, 11, 9, 10},
		{"single", 1, 1, 10, 10, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canvas := imageutil.NewBuffer(21, 21, 1)
			tex := imageutil.CreateSolidImage(tt.w, tt.h, 1)
			Composite(canvas, 10, 10, []float64{1}, tex)

			for y := 0; y < canvas.H; y++ {
				for x := 0; x < canvas.W; x++ {
					inside := x >= tt.minX && x <= tt.maxX && y >= tt.minY && y <= tt.maxY
					got := canvas.Get(x, y, 0)
					if inside && got != 1 {
						t.Errorf("(%d,%d) = %g, want covered", x, y, got)
					}
					if !inside && got != 0 {
						t.Errorf("(%d,%d) = %g, want untouched", x, y, got)
					}
				}
			}
		})
	}
}

func TestCompositeClipsAtEdges(t *testing.T) {
	t.Parallel()

	canvas := imageutil.NewBuffer(4, 4, 1)
	tex := imageutil.CreateSolidImage(5, 5, 1)

	// Must not panic and must cover only in-bounds pixels.
	for _, p := range [][2]int{{0, 0}, {3, 3}, {-2, 1}, {5, 5}, {-10, -10}} {
		Composite(canvas, p[0], p[1], []float64{1}, tex)
	}
	if canvas.Get(0, 0, 0) != 1 || canvas.Get(3, 3, 0) != 1 {
		t.Error("corner strokes did not cover their corners")
	}
	if len(canvas.Pix) != 16 {
		t.Errorf("canvas grew to %d samples", len(canvas.Pix))
	}
}

func TestCompositeTransparentTexture(t *testing.T) {
	t.Parallel()

	canvas := imageutil.CreateGradientImage(8, 8)
	before := canvas.Clone()
	Composite(canvas, 4, 4, []float64{1, 1, 1}, imageutil.NewBuffer(5, 5, 1))
	if d := imageutil.CalculateMaxDiff(canvas, before); d != 0 {
		t.Errorf("zero alpha changed the canvas by %g", d)
	}
}

package img2paint

import (
	"errors"
	"math"
	"testing"

	"github.com/wbrown/img2paint/imageutil"
)

func TestScaleBrush(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		w, h, size int
		wantW      int
		wantH      int
	}{
		{"wide down", 100, 40, 50, 50, 20},
		{"tall down", 30, 90, 30, 10, 30},
		{"square up", 10, 10, 25, 25, 25},
		{"unchanged", 16, 8, 16, 16, 8},
		{"thin floors to one", 200, 1, 50, 50, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := imageutil.CreateSolidImage(tt.w, tt.h, 1)
			got, err := ScaleBrush(base, tt.size)
			if err != nil {
				t.Fatalf("ScaleBrush: %v", err)
			}
			if got.W != tt.wantW || got.H != tt.wantH {
				t.Errorf("got %dx%d, want %dx%d", got.W, got.H, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestScaleBrushBounded(t *testing.T) {
	t.Parallel()

	base := imageutil.CreateSolidImage(100, 50, 1)
	got, err := ScaleBrushBounded(base, 80, 20)
	if err != nil {
		t.Fatal(err)
	}
	if got.W != 40 || got.H != 20 {
		t.Errorf("got %dx%d, want 40x20", got.W, got.H)
	}
}

func TestScaleBrushErrors(t *testing.T) {
	t.Parallel()

	if _, err := ScaleBrush(imageutil.NewBuffer(0, 0, 1), 10); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("empty base: got %v, want ErrInvalidGeometry", err)
	}
	if _, err := ScaleBrush(imageutil.CreateSolidImage(4, 4, 1), 0); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("zero size: got %v, want ErrInvalidParameter", err)
	}
}

func TestBrushAtlas(t *testing.T) {
	t.Parallel()

	base := imageutil.CreateSolidImage(100, 40, 1)
	atlas, err := NewBrushAtlas(base, 50, 4)
	if err != nil {
		t.Fatal(err)
	}
	if atlas.Len() != 4 {
		t.Fatalf("Len = %d, want 4", atlas.Len())
	}

	for i, want := range []float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2} {
		if got := atlas.Angle(i); math.Abs(got-want) > 1e-12 {
			t.Errorf("Angle(%d) = %g, want %g", i, got, want)
		}
	}

	v0, err := atlas.Variant(0)
	if err != nil {
		t.Fatal(err)
	}
	if v0.W != 50 || v0.H != 20 {
		t.Errorf("variant 0 is %dx%d, want 50x20", v0.W, v0.H)
	}

	v1, err := atlas.Variant(1)
	if err != nil {
		t.Fatal(err)
	}
	if v1.W != 20 || v1.H != 50 {
		t.Errorf("quarter turn variant is %dx%d, want 20x50", v1.W, v1.H)
	}
	// The center of a solid texture stays covered after rotation.
	if v := v1.Get(10, 25, 0); v < 0.99 {
		t.Errorf("quarter turn center = %g, want ~1", v)
	}
}

func TestBrushAtlasVariantRange(t *testing.T) {
	t.Parallel()

	atlas, err := NewBrushAtlas(imageutil.CreateSolidImage(8, 8, 1), 8, 6)
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range []int{-1, 6, 100} {
		if _, err := atlas.Variant(b); !errors.Is(err, ErrBucketRange) {
			t.Errorf("Variant(%d): got %v, want ErrBucketRange", b, err)
		}
	}
	for b := 0; b < 6; b++ {
		if _, err := atlas.Variant(b); err != nil {
			t.Errorf("Variant(%d): %v", b, err)
		}
	}
}

func TestBrushAtlasInvalidAngles(t *testing.T) {
	t.Parallel()

	if _, err := NewBrushAtlas(imageutil.CreateSolidImage(8, 8, 1), 8, 0); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("got %v, want ErrInvalidParameter", err)
	}
}

func TestProceduralBrush(t *testing.T) {
	t.Parallel()

	tex, err := ProceduralBrush(64, 16)
	if err != nil {
		t.Fatal(err)
	}
	if tex.W != 64 || tex.H != 16 || tex.C != 1 {
		t.Fatalf("got %dx%dx%d, want 64x16x1", tex.W, tex.H, tex.C)
	}

	for i, v := range tex.Pix {
		if v < 0 || v > 1 {
			t.Fatalf("sample %d = %g outside [0,1]", i, v)
		}
	}

	center := tex.Get(32, 8, 0)
	if center < 0.5 {
		t.Errorf("center alpha = %g, want a solid stroke body", center)
	}
	if tip := tex.Get(0, 0, 0); tip > 0.01 {
		t.Errorf("corner alpha = %g, want transparent", tip)
	}

	// Tapered: the stroke is thinner near its tips than in the middle.
	column := func(x int) float64 {
		var sum float64
		for y := 0; y < tex.H; y++ {
			sum += tex.Get(x, y, 0)
		}
		return sum
	}
	if column(2) >= column(32) {
		t.Errorf("tip coverage %g not below middle coverage %g", column(2), column(32))
	}

	again, err := ProceduralBrush(64, 16)
	if err != nil {
		t.Fatal(err)
	}
	if d := imageutil.CalculateMaxDiff(tex, again); d != 0 {
		t.Errorf("procedural brush not deterministic, max diff %g", d)
	}
}

func TestProceduralBrushTooSmall(t *testing.T) {
	t.Parallel()

	if _, err := ProceduralBrush(1, 10); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("got %v, want ErrInvalidGeometry", err)
	}
}

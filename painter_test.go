package img2paint

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/wbrown/img2paint/imageutil"
)

func TestNewPainterDefaults(t *testing.T) {
	t.Parallel()

	p := NewPainter()
	if p.Strokes != DefaultStrokes || p.Size != DefaultSize || p.Noise != DefaultNoise ||
		p.Angles != DefaultAngles || p.Seed != DefaultSeed {
		t.Errorf("unexpected defaults: %+v", p)
	}
	if p.FineSize() != 12 {
		t.Errorf("FineSize = %d, want 12", p.FineSize())
	}
	if err := p.Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestPainterOptions(t *testing.T) {
	t.Parallel()

	p := NewPainter(
		WithStrokes(7),
		WithBrushSize(3),
		WithNoise(0),
		WithAngles(4),
		WithSeed(99),
		WithSharpnessSigma(2),
		WithTensorSigma(0.5, 3),
	)
	if p.Strokes != 7 || p.Size != 3 || p.Noise != 0 || p.Angles != 4 || p.Seed != 99 {
		t.Errorf("options not applied: %+v", p)
	}
	if p.SharpnessSigma != 2 || p.TensorSigma != 0.5 || p.TensorFactor != 3 {
		t.Errorf("sigma options not applied: %+v", p)
	}
	if p.FineSize() != 1 {
		t.Errorf("FineSize = %d, want 1 for size 3", p.FineSize())
	}
}

func TestPainterValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opt  PainterOption
	}{
		{"negative strokes", WithStrokes(-1)},
		{"zero size", WithBrushSize(0)},
		{"negative noise", WithNoise(-0.1)},
		{"zero angles", WithAngles(0)},
		{"negative sigma", WithSharpnessSigma(-1)},
		{"infinite noise", WithNoise(math.Inf(1))},
		{"infinite sharpness sigma", WithSharpnessSigma(math.Inf(1))},
		{"nan sharpness sigma", WithSharpnessSigma(math.NaN())},
		{"infinite tensor sigma", WithTensorSigma(math.Inf(1), 4)},
		{"infinite tensor factor", WithTensorSigma(1, math.Inf(1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := NewPainter(tt.opt).Validate(); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("got %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestPainterlyLayering(t *testing.T) {
	t.Parallel()

	src := imageutil.CreateEdgeImage(200, 200)
	brush := imageutil.CreateSolidImage(50, 50, 0.9)

	var order []Stroke
	p := NewPainter(
		WithStrokes(150),
		WithSeed(3),
		WithStrokeHook(func(s Stroke) {
			order = append(order, Stroke{Pass: s.Pass, X: s.X, Y: s.Y, Texture: s.Texture})
		}),
	)
	canvas := NewCanvas(src)
	res, err := p.Painterly(src, canvas, brush)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Passes) != 2 {
		t.Fatalf("got %d passes, want 2", len(res.Passes))
	}
	if res.Passes[0].Size != 50 || res.Passes[1].Size != 12 {
		t.Errorf("pass sizes %d,%d, want 50,12", res.Passes[0].Size, res.Passes[1].Size)
	}
	if res.Passes[0].Accepted != 150 {
		t.Errorf("coarse pass accepted %d, want 150", res.Passes[0].Accepted)
	}
	if res.Accepted() != len(order) {
		t.Errorf("Accepted() = %d, hook saw %d", res.Accepted(), len(order))
	}

	// Every coarse stroke precedes every fine stroke.
	seenFine := false
	for i, s := range order {
		if s.Pass == 2 {
			seenFine = true
		} else if seenFine {
			t.Fatalf("coarse stroke %d applied after a fine stroke", i)
		}
		if s.Pass == 1 && (s.Texture.W != 50 || s.Texture.H != 50) {
			t.Fatalf("coarse stroke texture %dx%d", s.Texture.W, s.Texture.H)
		}
		if s.Pass == 2 && (s.Texture.W != 12 || s.Texture.H != 12) {
			t.Fatalf("fine stroke texture %dx%d", s.Texture.W, s.Texture.H)
		}
	}
	if !seenFine {
		t.Fatal("no fine strokes placed")
	}

	// The coarse pass alone, with the same seed, matches the final canvas
	// wherever no fine stroke landed.
	coarse := NewCanvas(src)
	if _, err := NewPainter(WithStrokes(150), WithSeed(3)).SingleScalePaint(src, coarse, brush); err != nil {
		t.Fatal(err)
	}
	covered := imageutil.NewBuffer(200, 200, 1)
	for _, s := range order {
		if s.Pass == 2 {
			Composite(covered, s.X, s.Y, []float64{1}, imageutil.CreateSolidImage(12, 12, 1))
		}
	}
	differs := false
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			same := true
			for c := 0; c < 3; c++ {
				if canvas.Get(x, y, c) != coarse.Get(x, y, c) {
					same = false
				}
			}
			if covered.Get(x, y, 0) == 0 && !same {
				t.Fatalf("(%d,%d) changed without a fine stroke", x, y)
			}
			if !same {
				differs = true
			}
		}
	}
	if !differs {
		t.Error("fine pass left the canvas unchanged")
	}
}

func TestPainterlyReproducible(t *testing.T) {
	t.Parallel()

	src := noiseImage(64, 48, 4)
	brush, err := ProceduralBrush(32, 8)
	if err != nil {
		t.Fatal(err)
	}
	render := func(seed uint64) *imageutil.Buffer {
		canvas := NewCanvas(src)
		if _, err := NewPainter(WithStrokes(200), WithBrushSize(16), WithSeed(seed)).Painterly(src, canvas, brush); err != nil {
			t.Fatal(err)
		}
		return canvas
	}

	if d := imageutil.CalculateMaxDiff(render(1), render(1)); d != 0 {
		t.Errorf("same seed differs by %g", d)
	}
	if d := imageutil.CalculateMaxDiff(render(1), render(2)); d == 0 {
		t.Error("different seeds produced identical canvases")
	}
}

func TestPainterlyFlatImageSkipsFinePass(t *testing.T) {
	t.Parallel()

	src := imageutil.CreateSolidImage(40, 40, 0.2, 0.4, 0.6)
	p := NewPainter(WithStrokes(50), WithBrushSize(8))
	res, err := p.Painterly(src, NewCanvas(src), imageutil.CreateSolidImage(4, 4, 1))
	if err != nil {
		t.Fatal(err)
	}
	if res.Passes[1].Iterations != 0 || res.Passes[1].Accepted != 0 {
		t.Errorf("fine pass on flat image: %+v", res.Passes[1])
	}
}

func TestOrientedPaint(t *testing.T) {
	t.Parallel()

	src := imageutil.CreateDiscImage(80, 80, 25)
	brush, err := ProceduralBrush(40, 10)
	if err != nil {
		t.Fatal(err)
	}

	p := NewPainter(WithStrokes(120), WithBrushSize(20), WithAngles(12), WithSeed(8))
	a, b := NewCanvas(src), NewCanvas(src)
	res, err := p.OrientedPaint(src, a, brush)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Passes) != 2 || res.Passes[1].Size != 5 {
		t.Fatalf("unexpected passes: %+v", res.Passes)
	}
	if _, err := p.OrientedPaint(src, b, brush); err != nil {
		t.Fatal(err)
	}
	if d := imageutil.CalculateMaxDiff(a, b); d != 0 {
		t.Errorf("oriented render not reproducible, max diff %g", d)
	}
	if a.Max(0) == 0 {
		t.Error("oriented render left the canvas black")
	}
}

func TestSingleScaleOrientedPaint(t *testing.T) {
	t.Parallel()

	src := imageutil.CreateStripesImage(32, 32, 6)
	tensor, err := ComputeStructureTensor(src, 1, 4)
	if err != nil {
		t.Fatal(err)
	}
	p := NewPainter(WithStrokes(40), WithBrushSize(6), WithAngles(4))
	res, err := p.SingleScaleOrientedPaint(src, NewCanvas(src), imageutil.CreateSolidImage(6, 2, 1), UniformImportance(32, 32), tensor)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Passes) != 1 || res.Passes[0].Accepted != 40 {
		t.Errorf("unexpected result: %+v", res.Passes)
	}

	small, err := ComputeStructureTensor(imageutil.CreateSolidImage(8, 8, 1), 1, 4)
	if err != nil {
		t.Fatal(err)
	}
	_, err = p.SingleScaleOrientedPaint(src, NewCanvas(src), imageutil.CreateSolidImage(6, 2, 1), UniformImportance(32, 32), small)
	if !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("mismatched tensor: got %v, want ErrInvalidGeometry", err)
	}
}

func TestPainterGeometryErrors(t *testing.T) {
	t.Parallel()

	src := imageutil.CreateSolidImage(10, 10, 1, 1, 1)
	brush := imageutil.CreateSolidImage(3, 3, 1)
	p := NewPainter(WithStrokes(5), WithBrushSize(3))

	tests := []struct {
		name          string
		canvas, brush *imageutil.Buffer
	}{
		{"size mismatch", imageutil.NewBuffer(9, 10, 3), brush},
		{"too many channels", imageutil.NewBuffer(10, 10, 4), brush},
		{"empty brush", NewCanvas(src), imageutil.NewBuffer(0, 0, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := p.Painterly(src, tt.canvas, tt.brush); !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("got %v, want ErrInvalidGeometry", err)
			}
		})
	}
}

func TestCanvasFrom(t *testing.T) {
	t.Parallel()

	src := imageutil.CreateGradientImage(8, 4)
	canvas := CanvasFrom(src)
	if d := imageutil.CalculateMaxDiff(src, canvas); d != 0 {
		t.Errorf("CanvasFrom differs from source by %g", d)
	}
	canvas.Set(0, 0, 0, 0.5)
	if src.Get(0, 0, 0) == 0.5 {
		t.Error("CanvasFrom shares storage with the source")
	}
}

func TestPainterLogsPasses(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	src := imageutil.CreateEdgeImage(32, 32)

	p := NewPainter(WithStrokes(10), WithBrushSize(8), WithLogger(logger))
	if _, err := p.Painterly(src, NewCanvas(src), imageutil.CreateSolidImage(4, 4, 1)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Count(out, "pass finished") != 2 {
		t.Errorf("expected two pass logs, got:\n%s", out)
	}
	if !strings.Contains(out, "accepted=") {
		t.Errorf("pass log lacks accepted field:\n%s", out)
	}
}

func TestDiagnosticImages(t *testing.T) {
	t.Parallel()

	src := imageutil.CreateDiscImage(24, 24, 8)
	p := NewPainter()

	angle, err := p.AngleImage(src)
	if err != nil {
		t.Fatal(err)
	}
	sharp, err := p.SharpnessImage(src)
	if err != nil {
		t.Fatal(err)
	}
	for _, img := range []*imageutil.Buffer{angle, sharp} {
		if img.W != 24 || img.H != 24 || img.C != 1 {
			t.Errorf("diagnostic image is %dx%dx%d", img.W, img.H, img.C)
		}
	}
}

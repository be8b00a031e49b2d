package img2paint

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/wbrown/img2paint/imageutil"
)

// StrokeSource supplies the texture to composite for a stroke at (x, y).
type StrokeSource interface {
	Stroke(x, y int) (*imageutil.Buffer, error)
}

// FixedStroke uses the same texture everywhere.
type FixedStroke struct {
	Texture *imageutil.Buffer
}

// Stroke implements StrokeSource.
func (f FixedStroke) Stroke(x, y int) (*imageutil.Buffer, error) {
	return f.Texture, nil
}

// OrientedStroke picks the atlas variant matching the orientation bucket
// at (x, y).
type OrientedStroke struct {
	Atlas *BrushAtlas
	Field *OrientationField
}

// Stroke implements StrokeSource.
func (o OrientedStroke) Stroke(x, y int) (*imageutil.Buffer, error) {
	return o.Atlas.Variant(o.Field.At(x, y))
}

// ColorSource writes the base stroke color at (x, y) into dst.
type ColorSource interface {
	Color(x, y int, dst []float64)
}

// SourceColors samples colors from an image with clamped access.
type SourceColors struct {
	Image *imageutil.Buffer
}

// Color implements ColorSource.
func (s SourceColors) Color(x, y int, dst []float64) {
	for c := range dst {
		ch := min(c, s.Image.C-1)
		dst[c] = s.Image.GetClamped(x, y, ch)
	}
}

// Stroke describes one accepted stroke.
type Stroke struct {
	Pass    int
	X, Y    int
	Color   []float64
	Texture *imageutil.Buffer
}

// StrokeHook observes strokes in the order they are composited. The Color
// slice is reused between calls.
type StrokeHook func(Stroke)

// PassStats summarizes one sampling pass.
type PassStats struct {
	Pass           int
	Size           int
	Target         int
	TotalWeight    float64
	AcceptanceRate float64
	Iterations     int
	Accepted       int
	Elapsed        time.Duration
}

// TotalWeight returns the saturating sum of channel 0 of importance: values
// in (0, 1) add themselves, values >= 1 add exactly 1, everything else
// (including NaN) adds nothing.
func TotalWeight(importance *imageutil.Buffer) float64 {
	var sum float64
	for i := 0; i < len(importance.Pix); i += importance.C {
		v := importance.Pix[i]
		switch {
		case v >= 1:
			sum++
		case v > 0:
			sum += v
		}
	}
	return sum
}

// AcceptanceRate is the fraction of uniformly drawn positions expected to
// be accepted under importance.
func AcceptanceRate(importance *imageutil.Buffer) float64 {
	n := importance.W * importance.H
	if n == 0 {
		return 0
	}
	return TotalWeight(importance) / float64(n)
}

// Iterations returns the number of draws needed for an expected target
// acceptances at the given rate. A rate <= 0 yields no iterations.
func Iterations(target int, rate float64) int {
	if target <= 0 || !(rate > 0) {
		return 0
	}
	n := math.Ceil(float64(target) / rate)
	if n >= math.MaxInt {
		return math.MaxInt
	}
	return int(n)
}

// UniformImportance returns a width x height map accepting every position.
func UniformImportance(width, height int) *imageutil.Buffer {
	m := imageutil.NewBuffer(width, height, 1)
	m.Fill(1)
	return m
}

// Sampler places strokes on a canvas by importance-weighted rejection
// sampling. All random draws come from Rand, in a fixed order per
// iteration: x, y, the acceptance draw, then one noise draw per channel
// when accepted.
type Sampler struct {
	Rand *rand.Rand
	Hook StrokeHook

	// Pass is copied into PassStats and Stroke.
	Pass int
}

// Run draws Iterations(target, AcceptanceRate(importance)) positions and
// composites a stroke at every accepted one. Strokes are applied in draw
// order. Colors are multiplied by 1 - noise/2 + noise*U per channel.
func (s *Sampler) Run(
	canvas, importance *imageutil.Buffer,
	strokes StrokeSource,
	colors ColorSource,
	target int,
	noise float64,
) (PassStats, error) {
	stats := PassStats{Pass: s.Pass, Target: target}
	if canvas.Empty() {
		return stats, fmt.Errorf("pass %d canvas: %w", s.Pass, ErrInvalidGeometry)
	}
	if !importance.SameSize(canvas) {
		return stats, fmt.Errorf("pass %d importance %dx%d for canvas %dx%d: %w",
			s.Pass, importance.W, importance.H, canvas.W, canvas.H, ErrInvalidGeometry)
	}
	if target < 0 || !(noise >= 0) || math.IsInf(noise, 1) {
		return stats, fmt.Errorf("pass %d target %d noise %g: %w", s.Pass, target, noise, ErrInvalidParameter)
	}

	start := time.Now()
	stats.TotalWeight = TotalWeight(importance)
	stats.AcceptanceRate = stats.TotalWeight / float64(canvas.W*canvas.H)
	stats.Iterations = Iterations(target, stats.AcceptanceRate)

	color := make([]float64, canvas.C)
	for i := 0; i < stats.Iterations; i++ {
		x := s.Rand.IntN(canvas.W)
		y := s.Rand.IntN(canvas.H)
		u := s.Rand.Float64()
		if !(u < importance.Pix[importance.Offset(x, y)]) {
			continue
		}

		colors.Color(x, y, color)
		for c := range color {
			color[c] *= 1 - noise/2 + noise*s.Rand.Float64()
		}
		tex, err := strokes.Stroke(x, y)
		if err != nil {
			stats.Elapsed = time.Since(start)
			return stats, fmt.Errorf("pass %d stroke at (%d,%d): %w", s.Pass, x, y, err)
		}
		Composite(canvas, x, y, color, tex)
		stats.Accepted++

		if s.Hook != nil {
			s.Hook(Stroke{Pass: s.Pass, X: x, Y: y, Color: color, Texture: tex})
		}
	}
	stats.Elapsed = time.Since(start)
	return stats, nil
}

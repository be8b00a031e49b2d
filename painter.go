package img2paint

import (
	"fmt"
	"io"
	"math"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/wbrown/img2paint/imageutil"
)

// Default painter configuration.
const (
	DefaultStrokes = 10000
	DefaultSize    = 50
	DefaultNoise   = 0.3
	DefaultAngles  = 36
	DefaultSeed    = 1
)

// fineDivisor is the ratio between coarse and fine stroke sizes.
const fineDivisor = 4

// Painter renders images as layered brush strokes. A Painter holds only
// configuration and may be used for several renders; each render starts a
// fresh random sequence from Seed, so equal inputs give identical output.
type Painter struct {
	// Strokes is the expected number of accepted strokes per pass.
	Strokes int
	// Size is the larger brush dimension of the coarse pass.
	Size  int
	Noise float64
	// Angles is the number of brush orientations for oriented rendering.
	Angles int
	Seed   uint64

	SharpnessSigma float64
	TensorSigma    float64
	TensorFactor   float64

	logger *log.Logger
	hook   StrokeHook
}

// PainterOption is a functional option for configuring a Painter.
type PainterOption func(*Painter)

// NewPainter creates a Painter with the given options.
// Default values: Strokes=10000, Size=50, Noise=0.3, Angles=36, Seed=1,
// SharpnessSigma=1, TensorSigma=1, TensorFactor=4.
func NewPainter(opts ...PainterOption) *Painter {
	p := &Painter{
		Strokes:        DefaultStrokes,
		Size:           DefaultSize,
		Noise:          DefaultNoise,
		Angles:         DefaultAngles,
		Seed:           DefaultSeed,
		SharpnessSigma: DefaultSharpnessSigma,
		TensorSigma:    DefaultTensorSigma,
		TensorFactor:   DefaultTensorFactor,
		logger:         log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WithStrokes sets the expected stroke count per pass.
func WithStrokes(n int) PainterOption {
	return func(p *Painter) {
		p.Strokes = n
	}
}

// WithBrushSize sets the coarse brush size. The fine pass uses size/4.
func WithBrushSize(size int) PainterOption {
	return func(p *Painter) {
		p.Size = size
	}
}

// WithNoise sets the per-channel multiplicative color noise amplitude.
func WithNoise(noise float64) PainterOption {
	return func(p *Painter) {
		p.Noise = noise
	}
}

// WithAngles sets the number of brush orientations.
func WithAngles(n int) PainterOption {
	return func(p *Painter) {
		p.Angles = n
	}
}

// WithSeed sets the random seed.
func WithSeed(seed uint64) PainterOption {
	return func(p *Painter) {
		p.Seed = seed
	}
}

// WithSharpnessSigma sets the low-pass sigma of the sharpness map.
func WithSharpnessSigma(sigma float64) PainterOption {
	return func(p *Painter) {
		p.SharpnessSigma = sigma
	}
}

// WithTensorSigma sets the structure tensor gradient sigma and smoothing
// factor.
func WithTensorSigma(sigma, factor float64) PainterOption {
	return func(p *Painter) {
		p.TensorSigma = sigma
		p.TensorFactor = factor
	}
}

// WithLogger sets the logger used for pass progress.
func WithLogger(l *log.Logger) PainterOption {
	return func(p *Painter) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithStrokeHook registers a callback invoked after every composited
// stroke.
func WithStrokeHook(h StrokeHook) PainterOption {
	return func(p *Painter) {
		p.hook = h
	}
}

// Result reports what a render did.
type Result struct {
	Passes []PassStats
}

// Accepted returns the total number of strokes placed.
func (r Result) Accepted() int {
	var n int
	for _, p := range r.Passes {
		n += p.Accepted
	}
	return n
}

// NewCanvas returns a zero (black) canvas matching src.
func NewCanvas(src *imageutil.Buffer) *imageutil.Buffer {
	return imageutil.NewBuffer(src.W, src.H, src.C)
}

// CanvasFrom returns a canvas initialized with a copy of src.
func CanvasFrom(src *imageutil.Buffer) *imageutil.Buffer {
	return src.Clone()
}

// FineSize returns the brush size of the second pass.
func (p *Painter) FineSize() int {
	return max(1, p.Size/fineDivisor)
}

// Validate checks the configuration.
func (p *Painter) Validate() error {
	switch {
	case p.Strokes < 0:
		return fmt.Errorf("strokes %d: %w", p.Strokes, ErrInvalidParameter)
	case p.Size < 1:
		return fmt.Errorf("brush size %d: %w", p.Size, ErrInvalidParameter)
	case !(p.Noise >= 0) || math.IsInf(p.Noise, 1):
		return fmt.Errorf("noise %g: %w", p.Noise, ErrInvalidParameter)
	case p.Angles < 1:
		return fmt.Errorf("angles %d: %w", p.Angles, ErrInvalidParameter)
	case !validSigma(p.SharpnessSigma), !validSigma(p.TensorSigma), !validSigma(p.TensorFactor):
		return fmt.Errorf("sigma %g/%g factor %g must be finite and not negative: %w",
			p.SharpnessSigma, p.TensorSigma, p.TensorFactor, ErrInvalidParameter)
	}
	return nil
}

// Painterly renders src onto canvas in two passes with a non-oriented
// brush: a coarse pass at Size over the whole image, then a fine pass at
// Size/4 concentrated where the sharpness map is high.
func (p *Painter) Painterly(src, canvas, texture *imageutil.Buffer) (Result, error) {
	if err := p.check(src, canvas, texture); err != nil {
		return Result{}, err
	}
	sharp, err := SharpnessMap(src, p.SharpnessSigma)
	if err != nil {
		return Result{}, err
	}

	rng := p.newRand()
	var res Result
	for i, pass := range []struct {
		size       int
		importance *imageutil.Buffer
	}{
		{p.Size, UniformImportance(src.W, src.H)},
		{p.FineSize(), sharp},
	} {
		tex, err := ScaleBrush(texture, pass.size)
		if err != nil {
			return res, err
		}
		stats, err := p.runPass(rng, i+1, pass.size, canvas, pass.importance, FixedStroke{Texture: tex}, src)
		res.Passes = append(res.Passes, stats)
		if err != nil {
			return res, err
		}
	}
	return res, nil
}

// OrientedPaint is Painterly with strokes rotated to follow the local
// image structure. The structure tensor is computed once from src and each
// pass uses a brush atlas of Angles variants at its own size.
func (p *Painter) OrientedPaint(src, canvas, texture *imageutil.Buffer) (Result, error) {
	if err := p.check(src, canvas, texture); err != nil {
		return Result{}, err
	}
	field, err := p.orientation(src)
	if err != nil {
		return Result{}, err
	}
	sharp, err := SharpnessMap(src, p.SharpnessSigma)
	if err != nil {
		return Result{}, err
	}

	rng := p.newRand()
	var res Result
	for i, pass := range []struct {
		size       int
		importance *imageutil.Buffer
	}{
		{p.Size, UniformImportance(src.W, src.H)},
		{p.FineSize(), sharp},
	} {
		atlas, err := NewBrushAtlas(texture, pass.size, p.Angles)
		if err != nil {
			return res, err
		}
		strokes := OrientedStroke{Atlas: atlas, Field: field}
		stats, err := p.runPass(rng, i+1, pass.size, canvas, pass.importance, strokes, src)
		res.Passes = append(res.Passes, stats)
		if err != nil {
			return res, err
		}
	}
	return res, nil
}

// SingleScalePaint places Strokes strokes of size Size uniformly over the
// canvas with a fixed brush.
func (p *Painter) SingleScalePaint(src, canvas, texture *imageutil.Buffer) (Result, error) {
	return p.SingleScalePaintImportance(src, canvas, texture, UniformImportance(src.W, src.H))
}

// SingleScalePaintImportance is one pass of size Size guided by a
// caller-supplied importance map.
func (p *Painter) SingleScalePaintImportance(src, canvas, texture, importance *imageutil.Buffer) (Result, error) {
	if err := p.check(src, canvas, texture); err != nil {
		return Result{}, err
	}
	tex, err := ScaleBrush(texture, p.Size)
	if err != nil {
		return Result{}, err
	}
	stats, err := p.runPass(p.newRand(), 1, p.Size, canvas, importance, FixedStroke{Texture: tex}, src)
	return Result{Passes: []PassStats{stats}}, err
}

// SingleScaleOrientedPaint is one oriented pass of size Size using a
// caller-supplied importance map and structure tensor.
func (p *Painter) SingleScaleOrientedPaint(src, canvas, texture, importance *imageutil.Buffer, tensor *StructureTensor) (Result, error) {
	if err := p.check(src, canvas, texture); err != nil {
		return Result{}, err
	}
	if tensor == nil || tensor.W != src.W || tensor.H != src.H {
		return Result{}, fmt.Errorf("structure tensor does not match source: %w", ErrInvalidGeometry)
	}
	field, err := tensor.Buckets(p.Angles)
	if err != nil {
		return Result{}, err
	}
	atlas, err := NewBrushAtlas(texture, p.Size, p.Angles)
	if err != nil {
		return Result{}, err
	}
	strokes := OrientedStroke{Atlas: atlas, Field: field}
	stats, err := p.runPass(p.newRand(), 1, p.Size, canvas, importance, strokes, src)
	return Result{Passes: []PassStats{stats}}, err
}

// AngleImage returns the orientation of src as a gray image in [0, 1].
func (p *Painter) AngleImage(src *imageutil.Buffer) (*imageutil.Buffer, error) {
	t, err := ComputeStructureTensor(src, p.TensorSigma, p.TensorFactor)
	if err != nil {
		return nil, err
	}
	return t.OrientationImage(), nil
}

// SharpnessImage returns the sharpness map of src.
func (p *Painter) SharpnessImage(src *imageutil.Buffer) (*imageutil.Buffer, error) {
	return SharpnessMap(src, p.SharpnessSigma)
}

func (p *Painter) orientation(src *imageutil.Buffer) (*OrientationField, error) {
	t, err := ComputeStructureTensor(src, p.TensorSigma, p.TensorFactor)
	if err != nil {
		return nil, err
	}
	return t.Buckets(p.Angles)
}

func (p *Painter) check(src, canvas, texture *imageutil.Buffer) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if src.Empty() || canvas.Empty() || texture.Empty() {
		return fmt.Errorf("empty source, canvas or brush: %w", ErrInvalidGeometry)
	}
	if !src.SameSize(canvas) {
		return fmt.Errorf("source %dx%d and canvas %dx%d differ: %w",
			src.W, src.H, canvas.W, canvas.H, ErrInvalidGeometry)
	}
	if canvas.C > src.C {
		return fmt.Errorf("canvas has %d channels, source %d: %w", canvas.C, src.C, ErrInvalidGeometry)
	}
	return nil
}

func (p *Painter) newRand() *rand.Rand {
	return rand.New(rand.NewPCG(p.Seed, p.Seed^0x9e3779b97f4a7c15))
}

func (p *Painter) runPass(
	rng *rand.Rand,
	pass, size int,
	canvas, importance *imageutil.Buffer,
	strokes StrokeSource,
	src *imageutil.Buffer,
) (PassStats, error) {
	p.logger.Debug("pass started", "pass", pass, "size", size, "target", p.Strokes)

	s := &Sampler{Rand: rng, Hook: p.hook, Pass: pass}
	stats, err := s.Run(canvas, importance, strokes, SourceColors{Image: src}, p.Strokes, p.Noise)
	stats.Size = size
	if err != nil {
		p.logger.Error("pass failed", "pass", pass, "err", err)
		return stats, err
	}

	p.logger.Debug("pass finished",
		"pass", pass,
		"size", size,
		"target", p.Strokes,
		"iterations", stats.Iterations,
		"accepted", stats.Accepted,
		"elapsed", stats.Elapsed,
	)
	if stats.Iterations == 0 && p.Strokes > 0 {
		p.logger.Warn("importance map is empty, no strokes placed", "pass", pass)
	}
	return stats, nil
}

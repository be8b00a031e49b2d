package img2paint

import (
	"fmt"
	"math"

	"github.com/wbrown/img2paint/imageutil"
)

// BrushAtlas holds rotated variants of one stroke texture. Variant i is the
// size-normalized base texture rotated by i*2*pi/Len() about its center.
// Variants differ in pixel extent but all composite centered on the stroke
// position.
type BrushAtlas struct {
	variants []*imageutil.Buffer
}

// ScaleBrush resizes a stroke texture with bilinear interpolation so that
// its larger dimension equals size, preserving aspect ratio.
func ScaleBrush(base *imageutil.Buffer, size int) (*imageutil.Buffer, error) {
	return ScaleBrushBounded(base, size, size)
}

// ScaleBrushBounded resizes a stroke texture with bilinear interpolation by
// factor min(maxWidth/width, maxHeight/height), so the result fits within
// maxWidth x maxHeight.
func ScaleBrushBounded(base *imageutil.Buffer, maxWidth, maxHeight int) (*imageutil.Buffer, error) {
	if base.Empty() {
		return nil, fmt.Errorf("brush texture: %w", ErrInvalidGeometry)
	}
	if maxWidth < 1 || maxHeight < 1 {
		return nil, fmt.Errorf("brush size %dx%d: %w", maxWidth, maxHeight, ErrInvalidParameter)
	}

	factor := math.Min(
		float64(maxWidth)/float64(base.Width()),
		float64(maxHeight)/float64(base.Height()),
	)
	// The epsilon keeps w*(size/w) from flooring to size-1.
	const eps = 1e-9
	width := max(1, int(math.Floor(float64(base.Width())*factor+eps)))
	height := max(1, int(math.Floor(float64(base.Height())*factor+eps)))
	if width == base.Width() && height == base.Height() {
		return base.Clone(), nil
	}
	return imageutil.Resize(base, width, height, imageutil.InterpolationLinear), nil
}

// NewBrushAtlas scales base so its larger side is size and builds nAngles
// rotated variants of it.
func NewBrushAtlas(base *imageutil.Buffer, size, nAngles int) (*BrushAtlas, error) {
	return NewBrushAtlasBounded(base, size, size, nAngles)
}

// NewBrushAtlasBounded scales base to fit within maxWidth x maxHeight and
// builds nAngles rotated variants of it.
func NewBrushAtlasBounded(base *imageutil.Buffer, maxWidth, maxHeight, nAngles int) (*BrushAtlas, error) {
	if nAngles < 1 {
		return nil, fmt.Errorf("brush atlas with %d angles: %w", nAngles, ErrInvalidParameter)
	}
	scaled, err := ScaleBrushBounded(base, maxWidth, maxHeight)
	if err != nil {
		return nil, err
	}

	atlas := &BrushAtlas{variants: make([]*imageutil.Buffer, nAngles)}
	for i := range atlas.variants {
		theta := atlas.Angle(i)
		if theta == 0 {
			atlas.variants[i] = scaled.Clone()
			continue
		}
		atlas.variants[i] = imageutil.Rotate(scaled, theta)
	}
	return atlas, nil
}

// Len returns the number of orientation variants.
func (a *BrushAtlas) Len() int {
	return len(a.variants)
}

// Angle returns the rotation in radians applied to variant i.
func (a *BrushAtlas) Angle(i int) float64 {
	return float64(i) * 2 * math.Pi / float64(len(a.variants))
}

// Variant returns the texture for orientation bucket b. Buckets outside
// [0, Len()) return ErrBucketRange.
func (a *BrushAtlas) Variant(b int) (*imageutil.Buffer, error) {
	if b < 0 || b >= len(a.variants) {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrBucketRange, b, len(a.variants))
	}
	return a.variants[b], nil
}

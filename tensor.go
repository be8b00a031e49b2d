package img2paint

import (
	"fmt"
	"math"

	"github.com/wbrown/img2paint/imageutil"
)

const (
	// DefaultTensorSigma is the pre-gradient blur of the luminance.
	DefaultTensorSigma = 1.0

	// DefaultTensorFactor scales DefaultTensorSigma to get the blur applied
	// to the tensor field itself.
	DefaultTensorFactor = 4.0
)

// StructureTensor is the per-pixel second-moment matrix of the luminance
// gradient, smoothed over a neighborhood:
//
//	| XX  XY |
//	| XY  YY |
//
// XX and YY are never negative.
type StructureTensor struct {
	W, H int

	XX, XY, YY []float64
}

// ComputeStructureTensor computes the structure tensor of img. The luminance
// is blurred with sigmaG before taking Sobel gradients, and the outer
// product field is blurred with sigmaG*factor.
func ComputeStructureTensor(img *imageutil.Buffer, sigmaG, factor float64) (*StructureTensor, error) {
	if img.Empty() {
		return nil, fmt.Errorf("structure tensor: %w", ErrInvalidGeometry)
	}
	if !validSigma(sigmaG) || !validSigma(factor) {
		return nil, fmt.Errorf("structure tensor sigma %g factor %g: %w", sigmaG, factor, ErrInvalidParameter)
	}

	lum := imageutil.GaussianBlur(imageutil.Luminance(img), sigmaG)
	ix := imageutil.GradientX(lum)
	iy := imageutil.GradientY(lum)

	m := imageutil.NewBuffer(img.Width(), img.Height(), 3)
	for i := range ix.Pix {
		gx, gy := ix.Pix[i], iy.Pix[i]
		m.Pix[i*3] = gx * gx
		m.Pix[i*3+1] = gx * gy
		m.Pix[i*3+2] = gy * gy
	}
	m = imageutil.GaussianBlur(m, sigmaG*factor)

	t := &StructureTensor{
		W:  img.Width(),
		H:  img.Height(),
		XX: make([]float64, img.Width()*img.Height()),
		XY: make([]float64, img.Width()*img.Height()),
		YY: make([]float64, img.Width()*img.Height()),
	}
	for i := range t.XX {
		t.XX[i] = m.Pix[i*3]
		t.XY[i] = m.Pix[i*3+1]
		t.YY[i] = m.Pix[i*3+2]
	}
	return t, nil
}

// At returns the tensor components at (x, y).
func (t *StructureTensor) At(x, y int) (xx, xy, yy float64) {
	i := y*t.W + x
	return t.XX[i], t.XY[i], t.YY[i]
}

// Orientation returns the direction of least intensity variation at (x, y),
// the direction along the local edge, as a fraction of a full turn in
// [0, 1]. It is the angle of the eigenvector of the smaller eigenvalue,
// taken with the canonical sign of EigenSym2, so opposite directions agree.
// Flat pixels, whose gradient energy XX+YY is at most flatEnergy, and
// isotropic pixels report 0.
func (t *StructureTensor) Orientation(x, y int) float64 {
	i := y*t.W + x
	if t.XX[i]+t.YY[i] <= flatEnergy {
		return 0
	}
	_, v, _, _ := EigenSym2(t.XX[i], t.XY[i], t.YY[i])
	angle := math.Atan2(v[1], v[0])
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle / (2 * math.Pi)
}

// OrientationImage returns a single-channel buffer of Orientation values,
// useful for visualizing the orientation field.
func (t *StructureTensor) OrientationImage() *imageutil.Buffer {
	out := imageutil.NewBuffer(t.W, t.H, 1)
	imageutil.ForEachRow(t.H, func(y int) {
		for x := 0; x < t.W; x++ {
			out.Pix[y*t.W+x] = t.Orientation(x, y)
		}
	})
	return out
}

// OrientationField maps each pixel to one of N orientation buckets.
type OrientationField struct {
	W, H, N int

	buckets []int
}

// Bucket converts an orientation in [0, 1] to a bucket in [0, n). A full
// turn (1.0) wraps to bucket 0.
func Bucket(orientation float64, n int) int {
	b := int(math.Floor(orientation * float64(n)))
	b %= n
	if b < 0 {
		b = 0
	}
	return b
}

// Buckets discretizes the orientation field into nAngles buckets, matching
// the variants of a BrushAtlas with the same number of angles.
func (t *StructureTensor) Buckets(nAngles int) (*OrientationField, error) {
	if nAngles < 1 {
		return nil, fmt.Errorf("orientation buckets %d: %w", nAngles, ErrInvalidParameter)
	}

	f := &OrientationField{
		W:       t.W,
		H:       t.H,
		N:       nAngles,
		buckets: make([]int, t.W*t.H),
	}
	imageutil.ForEachRow(t.H, func(y int) {
		for x := 0; x < t.W; x++ {
			f.buckets[y*t.W+x] = Bucket(t.Orientation(x, y), nAngles)
		}
	})
	return f, nil
}

// At returns the bucket at (x, y).
func (f *OrientationField) At(x, y int) int {
	return f.buckets[y*f.W+x]
}

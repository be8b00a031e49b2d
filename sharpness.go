package img2paint

import (
	"fmt"
	"math"

	"github.com/wbrown/img2paint/imageutil"
)

// DefaultSharpnessSigma is the low-pass sigma used by SharpnessMap.
const DefaultSharpnessSigma = 1.0

// flatEnergy is the largest squared-gradient energy treated as flat. Blurring
// a constant leaves a residual of a few ulps, whose square lands far below
// it. It bounds both the sharpness peak and the structure tensor trace.
const flatEnergy = 1e-20

// SharpnessMap computes a single-channel detail-energy map in [0, 1].
//
// The luminance is split into a low-pass (Gaussian, sigma) and a high-pass
// residual. The squared residual is blurred with 4*sigma to estimate local
// detail density, then divided by its global maximum. A flat image has no
// detail energy and yields an all-zero map rather than NaN.
func SharpnessMap(img *imageutil.Buffer, sigma float64) (*imageutil.Buffer, error) {
	if img.Empty() {
		return nil, fmt.Errorf("sharpness map: %w", ErrInvalidGeometry)
	}
	if !validSigma(sigma) {
		return nil, fmt.Errorf("sharpness sigma %g: %w", sigma, ErrInvalidParameter)
	}

	lum := imageutil.Luminance(img)
	low := imageutil.GaussianBlur(lum, sigma)
	high := imageutil.Square(imageutil.Sub(lum, low))
	energy := imageutil.GaussianBlur(high, 4*sigma)

	peak := energy.Max(0)
	if !(peak > flatEnergy) || math.IsInf(peak, 0) {
		return imageutil.NewBuffer(img.Width(), img.Height(), 1), nil
	}
	energy.Scale(1 / peak)
	return energy, nil
}

// validSigma reports whether sigma is a usable blur width: finite and not
// negative.
func validSigma(sigma float64) bool {
	return sigma >= 0 && !math.IsInf(sigma, 1)
}

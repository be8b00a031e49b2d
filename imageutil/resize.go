package imageutil

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationArea uses Catmull-Rom for high-quality downscaling.
	// This is the closest equivalent to OpenCV's INTER_AREA.
	InterpolationArea Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	// Equivalent to OpenCV's INTER_LINEAR.
	InterpolationLinear

	// InterpolationNearest uses nearest-neighbor interpolation.
	// Fastest but lowest quality.
	InterpolationNearest
)

// interpolator returns the x/image/draw kernel for interp.
func interpolator(interp Interpolation) draw.Interpolator {
	switch interp {
	case InterpolationLinear:
		return draw.BiLinear
	case InterpolationNearest:
		return draw.NearestNeighbor
	default:
		return draw.CatmullRom
	}
}

// Resize resizes a buffer to the specified dimensions using the given
// interpolation method. Each channel is resampled independently at 16-bit
// precision, so samples are clamped to [0, 1].
func Resize(img *Buffer, width, height int, interp Interpolation) *Buffer {
	dst := NewBuffer(width, height, img.C)
	if width == 0 || height == 0 || img.Empty() {
		return dst
	}

	scaler := interpolator(interp)
	dstRect := image.Rect(0, 0, width, height)
	for c := 0; c < img.C; c++ {
		src := channelToGray16(img, c)
		out := image.NewGray16(dstRect)
		scaler.Scale(out, dstRect, src, src.Bounds(), draw.Src, nil)
		gray16ToChannel(out, dst, c)
	}
	return dst
}

// Scale resizes a buffer by factor on both axes. Each output dimension is
// rounded down and kept at least one pixel.
func Scale(img *Buffer, factor float64, interp Interpolation) *Buffer {
	width := max(1, int(float64(img.W)*factor))
	height := max(1, int(float64(img.H)*factor))
	return Resize(img, width, height, interp)
}

// ResizeToFit resizes an image so it fits within maxWidth x maxHeight while
// maintaining aspect ratio. Images already within bounds are returned as a
// copy. A non-positive bound leaves that axis unconstrained.
func ResizeToFit(img *Buffer, maxWidth, maxHeight int, interp Interpolation) *Buffer {
	factor := 1.0
	if maxWidth > 0 && img.W > maxWidth {
		factor = math.Min(factor, float64(maxWidth)/float64(img.W))
	}
	if maxHeight > 0 && img.H > maxHeight {
		factor = math.Min(factor, float64(maxHeight)/float64(img.H))
	}
	if factor == 1 {
		return img.Clone()
	}
	return Scale(img, factor, interp)
}

// RotatedSize returns the dimensions of the bounding box of a width x height
// rectangle rotated by theta radians.
func RotatedSize(width, height int, theta float64) (int, int) {
	sin, cos := math.Sincos(theta)
	w := math.Abs(float64(width)*cos) + math.Abs(float64(height)*sin)
	h := math.Abs(float64(width)*sin) + math.Abs(float64(height)*cos)
	// Tolerate the rounding noise of sin(pi) and friends.
	const eps = 1e-9
	return max(1, int(math.Ceil(w-eps))), max(1, int(math.Ceil(h-eps)))
}

// Rotate rotates a buffer by theta radians about its center using bilinear
// sampling. With y growing downward, a positive theta maps the +x axis onto
// (cos theta, sin theta). The output is enlarged to the rotated bounding box
// so no source content is cropped; uncovered pixels are zero.
func Rotate(img *Buffer, theta float64) *Buffer {
	width, height := RotatedSize(img.W, img.H, theta)
	dst := NewBuffer(width, height, img.C)
	if img.Empty() {
		return dst
	}

	sin, cos := math.Sincos(theta)
	csx, csy := float64(img.W)/2, float64(img.H)/2
	cdx, cdy := float64(width)/2, float64(height)/2

	// Source to destination: d = R*(s - cs) + cd.
	s2d := f64.Aff3{
		cos, -sin, cdx - (cos*csx - sin*csy),
		sin, cos, cdy - (sin*csx + cos*csy),
	}

	dstRect := image.Rect(0, 0, width, height)
	for c := 0; c < img.C; c++ {
		src := channelToGray16(img, c)
		out := image.NewGray16(dstRect)
		draw.BiLinear.Transform(out, s2d, src, src.Bounds(), draw.Src, nil)
		gray16ToChannel(out, dst, c)
	}
	return dst
}

// channelToGray16 copies channel c of img into a 16-bit gray image.
func channelToGray16(img *Buffer, c int) *image.Gray16 {
	g := image.NewGray16(image.Rect(0, 0, img.W, img.H))
	for y := 0; y < img.H; y++ {
		for x := 0; x < img.W; x++ {
			g.SetGray16(x, y, color.Gray16{Y: toUint16(img.Pix[img.index(x, y, c)])})
		}
	}
	return g
}

// gray16ToChannel writes a 16-bit gray image into channel c of dst.
func gray16ToChannel(g *image.Gray16, dst *Buffer, c int) {
	for y := 0; y < dst.H; y++ {
		for x := 0; x < dst.W; x++ {
			dst.Pix[dst.index(x, y, c)] = float64(g.Gray16At(x, y).Y) / 0xffff
		}
	}
}

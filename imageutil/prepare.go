package imageutil

// PrepareForPaint prepares a source photograph for painterly rendering.
//
// The function:
// 1. Converts any channel layout to 3-channel RGB
// 2. Downscales with area interpolation so the larger side is at most
// maxSize pixels (a non-positive maxSize keeps the original size)
//
// Painting cost grows with canvas area, and the structure tensor and
// sharpness map are computed at the canvas resolution, so large inputs are
// usually reduced before rendering.
//
// Parameters:
//   - img: The input image
//   - maxSize: Bound on the larger output dimension, 0 for no bound
//
// Returns:
//   - prepared: RGB buffer no larger than maxSize on either side
func PrepareForPaint(img *Buffer, maxSize int) *Buffer {
	rgb := img
	switch img.C {
	case 3:
	case 1:
		rgb = GrayToRGB(img)
	default:
		rgb = NewBuffer(img.W, img.H, 3)
		for i := 0; i < img.W*img.H; i++ {
			for c := 0; c < 3; c++ {
				rgb.Pix[i*3+c] = img.Pix[i*img.C+min(c, img.C-1)]
			}
		}
	}
	return ResizeToFit(rgb, maxSize, maxSize, InterpolationArea)
}

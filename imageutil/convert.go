package imageutil

// BT.601 luma weights, the same weights OpenCV's COLOR_BGR2GRAY uses.
const (
	lumaWeightR = 0.299
	lumaWeightG = 0.587
	lumaWeightB = 0.114
)

// Luminance converts a buffer to a single-channel luminance buffer using
// the standard luminance formula: Y = 0.299*R + 0.587*G + 0.114*B.
// Single-channel input is copied unchanged. Two-channel input uses the
// first channel only.
func Luminance(img *Buffer) *Buffer {
	if img.C == 1 {
		return img.Clone()
	}
	if img.C < 3 {
		return img.Channel(0)
	}

	lum := NewBuffer(img.W, img.H, 1)
	for i := range lum.Pix {
		p := img.Pix[i*img.C:]
		lum.Pix[i] = lumaWeightR*p[0] + lumaWeightG*p[1] + lumaWeightB*p[2]
	}
	return lum
}

// GrayToRGB expands a single-channel buffer to three identical channels,
// which is how orientation and sharpness maps are written to disk.
func GrayToRGB(gray *Buffer) *Buffer {
	rgb := NewBuffer(gray.W, gray.H, 3)
	for i, v := range gray.Pix {
		rgb.Pix[i*3] = v
		rgb.Pix[i*3+1] = v
		rgb.Pix[i*3+2] = v
	}
	return rgb
}

// Sub returns a - b sample by sample. The buffers must have identical
// dimensions.
func Sub(a, b *Buffer) *Buffer {
	out := NewBuffer(a.W, a.H, a.C)
	for i := range out.Pix {
		out.Pix[i] = a.Pix[i] - b.Pix[i]
	}
	return out
}

// Square returns a buffer with every sample squared.
func Square(a *Buffer) *Buffer {
	out := NewBuffer(a.W, a.H, a.C)
	for i, v := range a.Pix {
		out.Pix[i] = v * v
	}
	return out
}

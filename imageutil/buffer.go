// Package imageutil provides the floating-point pixel buffer and the pure Go
// filtering primitives (blur, gradients, resampling, rotation) used by the
// painterly renderer, along with image file loading and saving.
package imageutil

import (
	"image"
	"image/color"
	"math"
)

// Buffer is a W x H image with C interleaved channels stored as float64
// samples. Samples are commonly in [0, 1] but any range is allowed.
type Buffer struct {
	Pix []float64
	W   int
	H   int
	C   int
}

// NewBuffer creates a zero-filled buffer. Negative dimensions panic, the
// same way make does for a negative length. Zero-sized buffers are allowed
// but report Empty.
func NewBuffer(width, height, channels int) *Buffer {
	if width < 0 || height < 0 || channels < 0 {
		panic("imageutil: negative buffer dimensions")
	}
	return &Buffer{
		Pix: make([]float64, width*height*channels),
		W:   width,
		H:   height,
		C:   channels,
	}
}

// Width returns the buffer width.
func (b *Buffer) Width() int { return b.W }

// Height returns the buffer height.
func (b *Buffer) Height() int { return b.H }

// Channels returns the number of channels per pixel.
func (b *Buffer) Channels() int { return b.C }

// Empty reports whether the buffer has no pixels or no channels.
func (b *Buffer) Empty() bool {
	return b == nil || b.W <= 0 || b.H <= 0 || b.C <= 0
}

// index returns the offset of sample (x, y, c) in Pix.
func (b *Buffer) index(x, y, c int) int {
	return (y*b.W+x)*b.C + c
}

// Offset returns the index in Pix of channel 0 of pixel (x, y).
func (b *Buffer) Offset(x, y int) int {
	return (y*b.W + x) * b.C
}

// InBounds reports whether (x, y) is a pixel of the buffer.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// Get returns the sample at (x, y, c). Out of range coordinates panic.
func (b *Buffer) Get(x, y, c int) float64 {
	if !b.InBounds(x, y) || c < 0 || c >= b.C {
		panic("imageutil: Get out of range")
	}
	return b.Pix[b.index(x, y, c)]
}

// GetClamped returns the sample at (x, y, c) with x and y clamped to the
// nearest valid pixel.
func (b *Buffer) GetClamped(x, y, c int) float64 {
	x = clampInt(x, 0, b.W-1)
	y = clampInt(y, 0, b.H-1)
	return b.Pix[b.index(x, y, c)]
}

// Set stores v at (x, y, c). Out of range coordinates panic.
func (b *Buffer) Set(x, y, c int, v float64) {
	if !b.InBounds(x, y) || c < 0 || c >= b.C {
		panic("imageutil: Set out of range")
	}
	b.Pix[b.index(x, y, c)] = v
}

// Fill sets every pixel to vals. A single value is broadcast to every
// channel; otherwise vals must have one entry per channel.
func (b *Buffer) Fill(vals ...float64) {
	for i := range b.Pix {
		c := i % b.C
		if len(vals) == 1 {
			b.Pix[i] = vals[0]
		} else {
			b.Pix[i] = vals[c]
		}
	}
}

// Clone creates a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	clone := NewBuffer(b.W, b.H, b.C)
	copy(clone.Pix, b.Pix)
	return clone
}

// SameSize reports whether b and o have the same width and height.
func (b *Buffer) SameSize(o *Buffer) bool {
	return b.W == o.W && b.H == o.H
}

// Max returns the largest sample in channel c, or 0 for an empty buffer.
func (b *Buffer) Max(c int) float64 {
	if b.Empty() {
		return 0
	}
	m := math.Inf(-1)
	for i := c; i < len(b.Pix); i += b.C {
		if b.Pix[i] > m {
			m = b.Pix[i]
		}
	}
	return m
}

// Scale multiplies every sample by k in place.
func (b *Buffer) Scale(k float64) {
	for i := range b.Pix {
		b.Pix[i] *= k
	}
}

// Channel extracts channel c as a new single-channel buffer.
func (b *Buffer) Channel(c int) *Buffer {
	out := NewBuffer(b.W, b.H, 1)
	for i := range out.Pix {
		out.Pix[i] = b.Pix[i*b.C+c]
	}
	return out
}

// BufferFromImage converts any image.Image to a buffer with the given
// number of channels (1 for gray, 3 for RGB, 4 for RGBA). Samples are
// normalized to [0, 1].
func BufferFromImage(img image.Image, channels int) *Buffer {
	bounds := img.Bounds()
	buf := NewBuffer(bounds.Dx(), bounds.Dy(), channels)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			rgba := [4]float64{
				float64(r) / 0xffff,
				float64(g) / 0xffff,
				float64(b) / 0xffff,
				float64(a) / 0xffff,
			}
			i := buf.index(x-bounds.Min.X, y-bounds.Min.Y, 0)
			switch channels {
			case 1:
				buf.Pix[i] = lumaWeightR*rgba[0] + lumaWeightG*rgba[1] + lumaWeightB*rgba[2]
			default:
				for c := 0; c < channels && c < 4; c++ {
					buf.Pix[i+c] = rgba[c]
				}
			}
		}
	}
	return buf
}

// ToImage converts the buffer to a 16-bit, non-premultiplied image. Samples
// are clamped to [0, 1]. Single-channel buffers become gray, others use the first three
// channels as RGB and the fourth, if present, as alpha.
func (b *Buffer) ToImage() image.Image {
	if b.C == 1 {
		img := image.NewGray16(image.Rect(0, 0, b.W, b.H))
		for y := 0; y < b.H; y++ {
			for x := 0; x < b.W; x++ {
				img.SetGray16(x, y, color.Gray16{Y: toUint16(b.Pix[b.index(x, y, 0)])})
			}
		}
		return img
	}

	img := image.NewNRGBA64(image.Rect(0, 0, b.W, b.H))
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			i := b.index(x, y, 0)
			r := b.Pix[i]
			g := b.Pix[i+min(1, b.C-1)]
			bl := b.Pix[i+min(2, b.C-1)]
			a := uint16(0xffff)
			if b.C >= 4 {
				a = toUint16(b.Pix[i+3])
			}
			img.SetNRGBA64(x, y, color.NRGBA64{
				R: toUint16(r),
				G: toUint16(g),
				B: toUint16(bl),
				A: a,
			})
		}
	}
	return img
}

// toUint16 clamps a float to [0, 1] and converts to a 16-bit sample.
func toUint16(v float64) uint16 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 1 {
		return 0xffff
	}
	return uint16(math.Round(v * 0xffff))
}

package imageutil

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Kernel represents a 2D convolution kernel.
type Kernel struct {
	Values [][]float64
	Width  int
	Height int
}

// NewKernel creates a new kernel from a 2D slice.
func NewKernel(values [][]float64) *Kernel {
	height := len(values)
	width := 0
	if height > 0 {
		width = len(values[0])
	}
	return &Kernel{
		Values: values,
		Width:  width,
		Height: height,
	}
}

// maxKernelRadius bounds the half-width of any Gaussian kernel.
const maxKernelRadius = 4096

// GaussianKernel returns a normalized 1D Gaussian kernel with standard
// deviation sigma, truncated at ceil(3*sigma) on each side and at most
// maxKernelRadius. A non-positive or NaN sigma yields the identity kernel
// {1}; an infinite sigma yields a box of the maximum radius.
func GaussianKernel(sigma float64) []float64 {
	return gaussianKernel(sigma, maxKernelRadius)
}

func gaussianKernel(sigma float64, maxRadius int) []float64 {
	if !(sigma > 0) {
		return []float64{1}
	}
	radius := maxRadius
	if r := math.Ceil(3 * sigma); r < float64(maxRadius) {
		radius = int(r)
	}
	k := make([]float64, 2*radius+1)

	var sum float64
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		k[i+radius] = v
		sum += v
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

// Convolve applies a 2D kernel to every channel of a buffer.
// Border pixels are handled by replicating edge values.
func Convolve(img *Buffer, kernel *Kernel) *Buffer {
	width, height, channels := img.W, img.H, img.C
	dst := NewBuffer(width, height, channels)

	halfKW := kernel.Width / 2
	halfKH := kernel.Height / 2

	ForEachRow(height, func(y int) {
		for x := 0; x < width; x++ {
			for c := 0; c < channels; c++ {
				var sum float64
				for ky := 0; ky < kernel.Height; ky++ {
					for kx := 0; kx < kernel.Width; kx++ {
						sum += img.GetClamped(x+kx-halfKW, y+ky-halfKH, c) * kernel.Values[ky][kx]
					}
				}
				dst.Pix[dst.index(x, y, c)] = sum
			}
		}
	})

	return dst
}

// ConvolveSeparable applies a horizontal then a vertical pass of the same
// 1D kernel to every channel. Border pixels replicate edge values.
func ConvolveSeparable(img *Buffer, kernel []float64) *Buffer {
	width, height, channels := img.W, img.H, img.C
	radius := len(kernel) / 2

	tmp := NewBuffer(width, height, channels)
	ForEachRow(height, func(y int) {
		for x := 0; x < width; x++ {
			for c := 0; c < channels; c++ {
				var sum float64
				for k, w := range kernel {
					sum += img.GetClamped(x+k-radius, y, c) * w
				}
				tmp.Pix[tmp.index(x, y, c)] = sum
			}
		}
	})

	dst := NewBuffer(width, height, channels)
	ForEachRow(height, func(y int) {
		for x := 0; x < width; x++ {
			for c := 0; c < channels; c++ {
				var sum float64
				for k, w := range kernel {
					sum += tmp.GetClamped(x, y+k-radius, c) * w
				}
				dst.Pix[dst.index(x, y, c)] = sum
			}
		}
	})

	return dst
}

// GaussianBlur applies a separable Gaussian blur with standard deviation
// sigma. The output has the same dimensions as the input. The kernel never
// reaches further than the larger image dimension, since clamped edges make
// any wider support equivalent.
func GaussianBlur(img *Buffer, sigma float64) *Buffer {
	if !(sigma > 0) {
		return img.Clone()
	}
	return ConvolveSeparable(img, gaussianKernel(sigma, min(maxKernelRadius, max(img.W, img.H, 1))))
}

// ForEachRow calls fn for every row in [0, height), splitting rows into
// bands that run concurrently. Each row is written by exactly one call, so
// results do not depend on scheduling.
func ForEachRow(height int, fn func(y int)) {
	workers := runtime.GOMAXPROCS(0)
	if workers > height {
		workers = height
	}
	if workers <= 1 {
		for y := 0; y < height; y++ {
			fn(y)
		}
		return
	}

	band := (height + workers - 1) / workers
	var g errgroup.Group
	for start := 0; start < height; start += band {
		start, end := start, min(start+band, height)
		g.Go(func() error {
			for y := start; y < end; y++ {
				fn(y)
			}
			return nil
		})
	}
	// fn cannot fail; Wait only joins the bands.
	_ = g.Wait()
}

// clampInt clamps an integer to the given range.
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

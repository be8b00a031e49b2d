package imageutil

import "math"

// CreateGradientImage creates a horizontal gradient test image running from
// black at x=0 to white at the right edge.
func CreateGradientImage(width, height int) *Buffer {
	img := NewBuffer(width, height, 3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := float64(x) / float64(max(1, width-1))
			for c := 0; c < 3; c++ {
				img.Set(x, y, c, v)
			}
		}
	}
	return img
}

// CreateVerticalGradientImage creates a vertical gradient test image.
func CreateVerticalGradientImage(width, height int) *Buffer {
	img := NewBuffer(width, height, 3)
	for y := 0; y < height; y++ {
		v := float64(y) / float64(max(1, height-1))
		for x := 0; x < width; x++ {
			for c := 0; c < 3; c++ {
				img.Set(x, y, c, v)
			}
		}
	}
	return img
}

// CreateCheckerboardImage creates a checkerboard pattern for edge testing.
func CreateCheckerboardImage(width, height, squareSize int) *Buffer {
	img := NewBuffer(width, height, 3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if ((x/squareSize)+(y/squareSize))%2 == 0 {
				for c := 0; c < 3; c++ {
					img.Set(x, y, c, 1)
				}
			}
		}
	}
	return img
}

// CreateSolidImage creates a solid color image with one value per channel.
func CreateSolidImage(width, height int, rgb ...float64) *Buffer {
	img := NewBuffer(width, height, len(rgb))
	img.Fill(rgb...)
	return img
}

// CreateStripesImage creates vertical black and white stripes of the given
// period. Edges run along the y axis.
func CreateStripesImage(width, height, period int) *Buffer {
	img := NewBuffer(width, height, 3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x/period)%2 == 0 {
				for c := 0; c < 3; c++ {
					img.Set(x, y, c, 1)
				}
			}
		}
	}
	return img
}

// CreateDiscImage creates a white disc of the given radius centered on a
// black background.
func CreateDiscImage(width, height int, radius float64) *Buffer {
	img := NewBuffer(width, height, 3)
	cx, cy := float64(width)/2, float64(height)/2
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy) <= radius {
				for c := 0; c < 3; c++ {
					img.Set(x, y, c, 1)
				}
			}
		}
	}
	return img
}

// CreateEdgeImage creates a gray image with a white centered rectangle,
// for testing edge-sensitive filters.
func CreateEdgeImage(width, height int) *Buffer {
	img := CreateSolidImage(width, height, 0.5, 0.5, 0.5)
	rx1, ry1 := width/4, height/4
	rx2, ry2 := 3*width/4, 3*height/4
	for y := ry1; y < ry2; y++ {
		for x := rx1; x < rx2; x++ {
			for c := 0; c < 3; c++ {
				img.Set(x, y, c, 1)
			}
		}
	}
	return img
}

// CalculateMSE calculates the mean squared error between two buffers.
func CalculateMSE(img1, img2 *Buffer) float64 {
	if img1.W != img2.W || img1.H != img2.H || img1.C != img2.C {
		return math.MaxFloat64
	}
	if len(img1.Pix) == 0 {
		return 0
	}

	var sumSq float64
	for i := range img1.Pix {
		d := img1.Pix[i] - img2.Pix[i]
		sumSq += d * d
	}
	return sumSq / float64(len(img1.Pix))
}

// CalculateMaxDiff calculates the maximum absolute sample difference
// between two buffers.
func CalculateMaxDiff(img1, img2 *Buffer) float64 {
	if img1.W != img2.W || img1.H != img2.H || img1.C != img2.C {
		return math.Inf(1)
	}

	var maxDiff float64
	for i := range img1.Pix {
		if d := math.Abs(img1.Pix[i] - img2.Pix[i]); d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff
}

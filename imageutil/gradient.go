package imageutil

// Sobel kernels. X responds to horizontal change, Y to vertical change
// with y growing downward.
var (
	sobelX = NewKernel([][]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	})
	sobelY = NewKernel([][]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	})
)

// GradientX computes the horizontal Sobel gradient of every channel.
func GradientX(img *Buffer) *Buffer {
	return Convolve(img, sobelX)
}

// GradientY computes the vertical Sobel gradient of every channel.
func GradientY(img *Buffer) *Buffer {
	return Convolve(img, sobelY)
}

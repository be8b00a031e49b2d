package img2paint

import "math"

// isotropyTolerance is the relative eigenvalue spread below which a
// matrix has no preferred direction.
const isotropyTolerance = 1e-12

// EigenSym2 returns the eigen-decomposition of the symmetric 2x2 matrix
// [[a, b], [b, c]] in closed form. The pair is ordered so that l0 <= l1.
// Eigenvectors have unit length and v1 is v0 rotated by +90 degrees.
//
// The sign of v0 is canonical: v0[0] > 0, or v0[0] == 0 and v0[1] > 0. A
// direction and its opposite therefore always report the same vector.
//
// When the matrix is isotropic to within isotropyTolerance of its scale,
// every direction is an eigenvector; v0 is then (1, 0).
func EigenSym2(a, b, c float64) (l0 float64, v0 [2]float64, l1 float64, v1 [2]float64) {
	mean := (a + c) / 2
	r := math.Hypot((a-c)/2, b)
	l0, l1 = mean-r, mean+r

	if r <= isotropyTolerance*(math.Abs(a)+math.Abs(c)) {
		return l0, [2]float64{1, 0}, l1, [2]float64{0, 1}
	}

	// Both rows of (M - l0*I) give a candidate; keep the better conditioned.
	ux, uy := b, l0-a
	wx, wy := l0-c, b
	if wx*wx+wy*wy > ux*ux+uy*uy {
		ux, uy = wx, wy
	}

	n := math.Hypot(ux, uy)
	if n == 0 {
		ux, uy, n = 1, 0, 1
	}
	v0 = [2]float64{ux / n, uy / n}
	if v0[0] < 0 || (v0[0] == 0 && v0[1] < 0) {
		v0 = [2]float64{-v0[0], -v0[1]}
	}
	v1 = [2]float64{-v0[1], v0[0]}
	return l0, v0, l1, v1
}

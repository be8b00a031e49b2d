package img2paint

import "github.com/wbrown/img2paint/imageutil"

// Composite blends tex onto canvas centered at (x, y), tinted by color.
//
// Each texture value is used both as the alpha and as the intensity of the
// stroke:
//
//	canvas = tex*color + (1-tex)*canvas
//
// The texture covers [x-w/2, x+w-w/2) horizontally (and likewise
// vertically), so even sizes put the extra column and row on the positive
// side. Pixels falling outside the canvas are skipped. A single-channel
// texture is applied to every canvas channel; otherwise texture channel c
// blends canvas channel c. color must hold at least canvas.C values.
func Composite(canvas *imageutil.Buffer, x, y int, color []float64, tex *imageutil.Buffer) {
	offX, offY := tex.W/2, tex.H/2
	for dy := -offY; dy < tex.H-offY; dy++ {
		q := y + dy
		if q < 0 || q >= canvas.H {
			continue
		}
		ty := dy + offY
		for dx := -offX; dx < tex.W-offX; dx++ {
			p := x + dx
			if p < 0 || p >= canvas.W {
				continue
			}
			tx := dx + offX
			ci := canvas.Offset(p, q)
			ti := tex.Offset(tx, ty)
			for c := 0; c < canvas.C; c++ {
				tc := c
				if tex.C == 1 {
					tc = 0
				} else if tc >= tex.C {
					continue
				}
				a := tex.Pix[ti+tc]
				canvas.Pix[ci+c] = a*color[c] + (1-a)*canvas.Pix[ci+c]
			}
		}
	}
}

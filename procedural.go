package img2paint

import (
	"fmt"
	"image"
	"math"

	"github.com/golang/freetype/raster"
	"github.com/tanema/gween/ease"
	"golang.org/x/image/math/fixed"

	"github.com/wbrown/img2paint/imageutil"
)

const (
	// proceduralSegments is the number of outline samples per brush edge.
	proceduralSegments = 48

	// bristleCount controls the density of the streaks across the stroke.
	bristleCount = 7

	// bristleDepth is how much the streaks darken the stroke alpha.
	bristleDepth = 0.25
)

// ProceduralBrush rasterizes a horizontal, tapered brush stroke of the given
// size. The result is a single-channel texture whose value is the stroke
// alpha; Composite broadcasts it to every canvas channel. It is used when no
// brush texture file is supplied.
//
// The outline thickness follows an ease-out curve from each tip to the
// middle of the stroke, and faint bristle streaks run along its length.
// Output is deterministic for a given size.
func ProceduralBrush(width, height int) (*imageutil.Buffer, error) {
	if width < 2 || height < 2 {
		return nil, fmt.Errorf("procedural brush %dx%d: %w", width, height, ErrInvalidGeometry)
	}

	alpha := image.NewAlpha(image.Rect(0, 0, width, height))
	r := raster.NewRasterizer(width, height)
	r.UseNonZeroWinding = true

	w, h := float64(width), float64(height)
	cy := h / 2
	margin := 0.5

	// Upper edge left to right, then lower edge right to left.
	r.Start(pt(margin, cy))
	for i := 1; i <= proceduralSegments; i++ {
		t := float64(i) / proceduralSegments
		r.Add1(pt(margin+t*(w-2*margin), cy-taper(t)*(cy-margin)))
	}
	for i := proceduralSegments - 1; i >= 0; i-- {
		t := float64(i) / proceduralSegments
		r.Add1(pt(margin+t*(w-2*margin), cy+taper(t)*(cy-margin)))
	}
	r.Rasterize(raster.NewAlphaSrcPainter(alpha))

	tex := imageutil.NewBuffer(width, height, 1)
	for y := 0; y < height; y++ {
		// Streaks vary across the stroke and stay constant along it.
		v := (float64(y) + 0.5) / h
		streak := 1 - bristleDepth*0.5*(1+math.Cos(2*math.Pi*bristleCount*v))
		for x := 0; x < width; x++ {
			a := float64(alpha.AlphaAt(x, y).A) / 0xff
			tex.Set(x, y, 0, a*streak)
		}
	}
	return tex, nil
}

// taper returns the relative half-thickness of the stroke at t in [0, 1],
// zero at both tips and one in the middle.
func taper(t float64) float64 {
	d := math.Min(t, 1-t)
	return float64(ease.OutCubic(float32(d), 0, 1, 0.5))
}

func pt(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(math.Round(x * 64)),
		Y: fixed.Int26_6(math.Round(y * 64)),
	}
}

package render

import (
	"image/color"
	"math"
)

func (c *Canvas) hline(y int, col color.RGBA, alpha float64) {
	for x := 0; x < c.width; x++ {
		c.Blend(x, y, col, alpha)
	}
}

func (c *Canvas) vline(x int, col color.RGBA, alpha float64) {
	for y := 0; y < c.height; y++ {
		c.Blend(x, y, col, alpha)
	}
}

type rect struct {
	x, y, w, h float64
	radius     float64
}

// dist is the signed distance from (px, py) to the rounded rectangle edge;
// negative inside.
func (r rect) dist(px, py float64) float64 {
	hx := r.w / 2
	hy := r.h / 2
	qx := math.Abs(px-(r.x+hx)) - (hx - r.radius)
	qy := math.Abs(py-(r.y+hy)) - (hy - r.radius)
	outside := math.Hypot(math.Max(qx, 0), math.Max(qy, 0))
	inside := math.Min(math.Max(qx, qy), 0)
	return outside + inside - r.radius
}

// fillRoundRect draws r with a one pixel anti-aliased edge.
func (c *Canvas) fillRoundRect(r rect, col color.RGBA, alpha float64) {
	x0, y0 := int(math.Floor(r.x)), int(math.Floor(r.y))
	x1, y1 := int(math.Ceil(r.x+r.w)), int(math.Ceil(r.y+r.h))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			cov := coverage(r.dist(float64(x)+0.5, float64(y)+0.5))
			c.Blend(x, y, col, alpha*cov)
		}
	}
}

// glowRoundRect paints a halo of the given spread outside r, fading
// quadratically from peak to zero.
func (c *Canvas) glowRoundRect(r rect, spread float64, col color.RGBA, peak float64) {
	if spread <= 0 {
		return
	}
	x0, y0 := int(math.Floor(r.x-spread)), int(math.Floor(r.y-spread))
	x1, y1 := int(math.Ceil(r.x+r.w+spread)), int(math.Ceil(r.y+r.h+spread))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			d := r.dist(float64(x)+0.5, float64(y)+0.5)
			if d <= 0 || d >= spread {
				continue
			}
			f := 1 - d/spread
			c.Blend(x, y, col, peak*f*f)
		}
	}
}

func (c *Canvas) fillCircle(cx, cy, radius float64, col color.RGBA, alpha float64) {
	if radius <= 0 {
		return
	}
	x0, y0 := int(math.Floor(cx-radius)), int(math.Floor(cy-radius))
	x1, y1 := int(math.Ceil(cx+radius)), int(math.Ceil(cy+radius))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy) - radius
			c.Blend(x, y, col, alpha*coverage(d))
		}
	}
}

func (c *Canvas) glowCircle(cx, cy, radius, spread float64, col color.RGBA, peak float64) {
	if spread <= 0 {
		return
	}
	outer := radius + spread
	x0, y0 := int(math.Floor(cx-outer)), int(math.Floor(cy-outer))
	x1, y1 := int(math.Ceil(cx+outer)), int(math.Ceil(cy+outer))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy) - radius
			if d <= 0 || d >= spread {
				continue
			}
			f := 1 - d/spread
			c.Blend(x, y, col, peak*f*f)
		}
	}
}

// radialFade fills a disc whose opacity falls linearly from peak at the
// centre to zero at radius.
func (c *Canvas) radialFade(cx, cy, radius float64, col color.RGBA, peak float64) {
	if radius <= 0 {
		return
	}
	x0, y0 := int(math.Floor(cx-radius)), int(math.Floor(cy-radius))
	x1, y1 := int(math.Ceil(cx+radius)), int(math.Ceil(cy+radius))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			if d >= radius {
				continue
			}
			c.Blend(x, y, col, peak*(1-d/radius))
		}
	}
}

// coverage turns a signed edge distance into pixel coverage.
func coverage(d float64) float64 {
	switch {
	case d <= -0.5:
		return 1
	case d >= 0.5:
		return 0
	default:
		return 0.5 - d
	}
}

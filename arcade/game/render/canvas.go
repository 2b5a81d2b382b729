package render

import (
	"image/color"

	"tinygo.org/x/drivers"
)

var _ drivers.Displayer = (*Canvas)(nil)

// Canvas is an opaque RGBA8888 pixel target with source-over blending.
//
// It implements drivers.Displayer so tinyfont can draw straight onto it.
type Canvas struct {
	pix    []byte
	width  int
	height int
	stride int
}

// NewCanvas wraps pix (4 bytes per pixel, rows stride bytes apart).
func NewCanvas(pix []byte, width, height, stride int) *Canvas {
	if width < 0 || height < 0 || stride < width*4 || len(pix) < stride*height {
		return &Canvas{}
	}
	return &Canvas{pix: pix, width: width, height: height, stride: stride}
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// Clear fills the whole canvas with col at full opacity.
func (c *Canvas) Clear(col color.RGBA) {
	for y := 0; y < c.height; y++ {
		row := c.pix[y*c.stride : y*c.stride+c.width*4]
		for i := 0; i < len(row); i += 4 {
			row[i+0] = col.R
			row[i+1] = col.G
			row[i+2] = col.B
			row[i+3] = 0xFF
		}
	}
}

// At returns the pixel at (x, y), or transparent black outside the canvas.
func (c *Canvas) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return color.RGBA{}
	}
	off := y*c.stride + x*4
	return color.RGBA{R: c.pix[off], G: c.pix[off+1], B: c.pix[off+2], A: c.pix[off+3]}
}

// Blend composites col over the pixel at (x, y) with the given opacity.
// Out-of-bounds coordinates are clipped.
func (c *Canvas) Blend(x, y int, col color.RGBA, alpha float64) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height || alpha <= 0 {
		return
	}
	if alpha > 1 {
		alpha = 1
	}
	off := y*c.stride + x*4
	p := c.pix[off : off+4 : off+4]
	p[0] = mix(p[0], col.R, alpha)
	p[1] = mix(p[1], col.G, alpha)
	p[2] = mix(p[2], col.B, alpha)
	p[3] = 0xFF
}

func mix(dst, src uint8, a float64) uint8 {
	v := float64(src)*a + float64(dst)*(1-a)
	return uint8(v + 0.5)
}

func (c *Canvas) Size() (x, y int16) {
	return int16(c.width), int16(c.height)
}

func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	c.Blend(int(x), int(y), col, float64(col.A)/255)
}

func (c *Canvas) Display() error { return nil }

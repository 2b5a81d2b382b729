// Package render paints a snake frame onto an RGBA canvas.
package render

import (
	"image/color"
	"math"
	"strconv"
	"time"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freesans"

	"shadowsnake/arcade/game/engine"
	"shadowsnake/arcade/game/grid"
)

const (
	gridAlpha    = 0.5
	zoneAlpha    = 0.9
	segmentInset = 1
	cornerRadius = 5
	headGlow     = 15
	bodyGlow     = 10
	glowPeak     = 0.55
	foodGlow     = 15
	fadeSpan     = 0.6
	scoreX       = 20
	scoreBottom  = 40
)

// Palette holds every color the renderer uses.
type Palette struct {
	Background  color.RGBA
	Grid        color.RGBA
	Zone        color.RGBA
	Snake       color.RGBA
	SnakeShadow color.RGBA
	Food        color.RGBA
	FoodGlow    color.RGBA
	Text        color.RGBA
	TextShadow  color.RGBA
}

func DefaultPalette() Palette {
	return Palette{
		Background:  color.RGBA{R: 0x11, G: 0x18, B: 0x27, A: 0xFF},
		Grid:        color.RGBA{R: 0x1F, G: 0x29, B: 0x37, A: 0xFF},
		Zone:        color.RGBA{A: 0xFF},
		Snake:       color.RGBA{R: 0x00, G: 0xFF, B: 0xCC, A: 0xFF},
		SnakeShadow: color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		Food:        color.RGBA{R: 0xFF, G: 0x44, B: 0x44, A: 0xFF},
		FoodGlow:    color.RGBA{R: 0xFF, G: 0x00, B: 0x00, A: 0xFF},
		Text:        color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		TextShadow:  color.RGBA{A: 0xFF},
	}
}

type Config struct {
	CellSize int
	Palette  Palette
	Font     tinyfont.Fonter
}

func DefaultConfig() Config {
	return Config{
		CellSize: grid.CellSize,
		Palette:  DefaultPalette(),
		Font:     &freesans.Bold18pt7b,
	}
}

// Frame is everything one draw needs.
type Frame struct {
	State engine.State
	Zones []grid.DarkZone
}

type Renderer struct {
	cfg Config
}

func New(cfg Config) *Renderer {
	if cfg.CellSize <= 0 {
		cfg.CellSize = grid.CellSize
	}
	if cfg.Font == nil {
		cfg.Font = &freesans.Bold18pt7b
	}
	return &Renderer{cfg: cfg}
}

// Draw paints f in layer order: background, grid lines, dark zones, snake,
// food, score. at drives the food pulse.
func (r *Renderer) Draw(c *Canvas, f Frame, at time.Duration) {
	p := r.cfg.Palette
	c.Clear(p.Background)
	r.drawGrid(c)
	for _, z := range f.Zones {
		r.drawZone(c, z)
	}
	r.drawSnake(c, f.State)
	r.drawFood(c, f.State.Food, at)
	r.drawScore(c, f.State.Score)
}

func (r *Renderer) drawGrid(c *Canvas) {
	cell := r.cfg.CellSize
	col := r.cfg.Palette.Grid
	for x := 0; x <= c.Width(); x += cell {
		c.vline(x, col, gridAlpha)
	}
	for y := 0; y <= c.Height(); y += cell {
		c.hline(y, col, gridAlpha)
	}
}

func (r *Renderer) drawZone(c *Canvas, z grid.DarkZone) {
	cell := float64(r.cfg.CellSize)
	cx := float64(z.Center.X) * cell
	cy := float64(z.Center.Y) * cell
	c.radialFade(cx, cy, float64(z.Radius)*cell, r.cfg.Palette.Zone, zoneAlpha)
}

func (r *Renderer) drawSnake(c *Canvas, st engine.State) {
	col := r.SnakeColor(st.Mode)
	n := len(st.Snake)
	for i, seg := range st.Snake {
		box := r.cellRect(seg)
		spread := float64(bodyGlow)
		if i == 0 {
			spread = headGlow
		}
		alpha := SegmentAlpha(i, n)
		c.glowRoundRect(box, spread, col, glowPeak*alpha)
		c.fillRoundRect(box, col, alpha)
	}
}

func (r *Renderer) drawFood(c *Canvas, food grid.Position, at time.Duration) {
	cell := float64(r.cfg.CellSize)
	cx := float64(food.X)*cell + cell/2
	cy := float64(food.Y)*cell + cell/2
	radius := FoodRadius(r.cfg.CellSize, at)
	p := r.cfg.Palette
	c.glowCircle(cx, cy, radius, foodGlow, p.FoodGlow, glowPeak)
	c.fillCircle(cx, cy, radius, p.Food, 1)
}

func (r *Renderer) drawScore(c *Canvas, score int) {
	text := "Score: " + strconv.Itoa(score)
	x := int16(scoreX)
	y := int16(c.Height() - scoreBottom)
	p := r.cfg.Palette
	tinyfont.WriteLine(c, r.cfg.Font, x+2, y+2, text, p.TextShadow)
	tinyfont.WriteLine(c, r.cfg.Font, x, y, text, p.Text)
}

func (r *Renderer) cellRect(p grid.Position) rect {
	cell := float64(r.cfg.CellSize)
	return rect{
		x:      float64(p.X) * cell,
		y:      float64(p.Y) * cell,
		w:      cell - segmentInset,
		h:      cell - segmentInset,
		radius: math.Min(cornerRadius, (cell-segmentInset)/2),
	}
}

// SnakeColor returns the body color for mode.
func (r *Renderer) SnakeColor(m engine.ColorMode) color.RGBA {
	if m == engine.ModeShadow {
		return r.cfg.Palette.SnakeShadow
	}
	return r.cfg.Palette.Snake
}

// SegmentAlpha is the opacity of segment i in a snake of length n. The head
// is opaque and the tail fades by up to 60%.
func SegmentAlpha(i, n int) float64 {
	if n <= 0 || i <= 0 {
		return 1
	}
	return 1 - float64(i)/float64(n)*fadeSpan
}

// Pulse is the food radius offset at time at; it oscillates in [-2, 2] with a
// period of 400π ms.
func Pulse(at time.Duration) float64 {
	return math.Sin(float64(at.Milliseconds())/200) * 2
}

// FoodRadius is the food disc radius for a cell size at time at.
func FoodRadius(cellSize int, at time.Duration) float64 {
	r := float64(cellSize)/2 + Pulse(at)
	if r < 1 {
		return 1
	}
	return r
}

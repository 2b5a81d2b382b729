package main

import (
	"image/color"
	"math"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"shadowsnake/arcade/game/engine"
	"shadowsnake/arcade/game/grid"
	"shadowsnake/arcade/game/render"
)

// Each grid cell is two columns wide so cells look roughly square; the last
// row holds the status line.
const (
	colsPerCell = 2
	statusRows  = 1
	cellRune    = '█'
)

func termDims(cols, rows int) grid.Dims {
	return grid.Dims{
		Width:  max(1, cols/colsPerCell),
		Height: max(1, rows-statusRows),
	}
}

// keyName maps a terminal key event to the identifiers the input router
// understands.
func keyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyUp:
		return "ArrowUp"
	case tcell.KeyDown:
		return "ArrowDown"
	case tcell.KeyLeft:
		return "ArrowLeft"
	case tcell.KeyRight:
		return "ArrowRight"
	case tcell.KeyRune:
		return string(ev.Rune())
	}
	return ""
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

func tcellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func blend(dst, src color.RGBA, a float64) color.RGBA {
	mix := func(d, s uint8) uint8 { return uint8(float64(s)*a + float64(d)*(1-a) + 0.5) }
	return color.RGBA{R: mix(dst.R, src.R), G: mix(dst.G, src.G), B: mix(dst.B, src.B), A: 0xFF}
}

// zoneShade is the darkening applied to cell p, strongest at a zone centre.
func zoneShade(zones []grid.DarkZone, p grid.Position) float64 {
	var a float64
	for _, z := range zones {
		if z.Radius <= 0 {
			continue
		}
		d := math.Hypot(float64(p.X-z.Center.X), float64(p.Y-z.Center.Y))
		if d >= float64(z.Radius) {
			continue
		}
		a = math.Max(a, 0.9*(1-d/float64(z.Radius)))
	}
	return a
}

func setCell(s tcell.Screen, p grid.Position, r rune, st tcell.Style) {
	x := p.X * colsPerCell
	for i := 0; i < colsPerCell; i++ {
		s.SetContent(x+i, p.Y, r, nil, st)
	}
}

// drawTerm paints st in the same layer order as the pixel renderer: shaded
// background, snake, food, score.
func drawTerm(s tcell.Screen, st engine.State, zones []grid.DarkZone, pal render.Palette) {
	s.Clear()
	for y := 0; y < st.Dims.Height; y++ {
		for x := 0; x < st.Dims.Width; x++ {
			p := grid.Position{X: x, Y: y}
			bg := blend(pal.Background, pal.Zone, zoneShade(zones, p))
			setCell(s, p, ' ', tcell.StyleDefault.Background(tcellColor(bg)))
		}
	}

	snakeCol := pal.Snake
	if st.Mode == engine.ModeShadow {
		snakeCol = pal.SnakeShadow
	}
	// Tail first so the head wins where the body crosses itself.
	for i := len(st.Snake) - 1; i >= 0; i-- {
		fg := blend(pal.Background, snakeCol, render.SegmentAlpha(i, len(st.Snake)))
		setCell(s, st.Snake[i], cellRune, tcell.StyleDefault.Foreground(tcellColor(fg)))
	}
	setCell(s, st.Food, cellRune, tcell.StyleDefault.Foreground(tcellColor(pal.Food)))

	status := "Score: " + strconv.Itoa(st.Score) + "  arrows/wasd steer, q quits"
	style := tcell.StyleDefault.Foreground(tcellColor(pal.Text)).Bold(true)
	for i, r := range status {
		s.SetContent(i, st.Dims.Height, r, nil, style)
	}
	s.Show()
}

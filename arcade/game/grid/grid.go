// Package grid holds the cell geometry shared by the simulation, the input
// router and the renderers.
package grid

import "time"

const (
	// CellSize is the edge of one grid cell in pixels.
	CellSize = 30

	// TickInterval is the fixed simulation cadence.
	TickInterval = 100 * time.Millisecond

	// FoodScore is added to the score for every food eaten.
	FoodScore = 5
)

// Position is a cell coordinate: X is the column, Y the row.
type Position struct {
	X int
	Y int
}

// Add returns p moved by h without wrapping.
func (p Position) Add(h Heading) Position {
	return Position{X: p.X + h.DX, Y: p.Y + h.DY}
}

// Heading is a unit step in one of the four cardinal directions.
type Heading struct {
	DX int
	DY int
}

var (
	Up    = Heading{DX: 0, DY: -1}
	Down  = Heading{DX: 0, DY: 1}
	Left  = Heading{DX: -1, DY: 0}
	Right = Heading{DX: 1, DY: 0}
)

// Reverse returns the opposite heading.
func (h Heading) Reverse() Heading {
	return Heading{DX: -h.DX, DY: -h.DY}
}

func (h Heading) String() string {
	switch h {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// Dims is the playable area in cells.
type Dims struct {
	Width  int
	Height int
}

// DimsForViewport converts a pixel viewport into whole cells. Each axis is
// at least one cell so wrapping is always defined.
func DimsForViewport(widthPx, heightPx, cell int) Dims {
	if cell <= 0 {
		cell = CellSize
	}
	return Dims{Width: max(1, widthPx/cell), Height: max(1, heightPx/cell)}
}

// Cells returns the number of cells in the grid.
func (d Dims) Cells() int {
	return d.Width * d.Height
}

// Contains reports whether p lies inside [0,Width)x[0,Height).
func (d Dims) Contains(p Position) bool {
	return p.X >= 0 && p.X < d.Width && p.Y >= 0 && p.Y < d.Height
}

// Wrap maps p onto the torus described by d, one axis at a time.
func (d Dims) Wrap(p Position) Position {
	return Position{X: mod(p.X, d.Width), Y: mod(p.Y, d.Height)}
}

func mod(v, n int) int {
	if n <= 0 {
		return 0
	}
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// DarkZone is a circle, in cell units, that tints the snake while its head
// is inside. It never affects movement.
type DarkZone struct {
	Center Position
	Radius int
}

// Contains reports whether p is strictly closer to the centre than Radius.
func (z DarkZone) Contains(p Position) bool {
	dx := p.X - z.Center.X
	dy := p.Y - z.Center.Y
	return dx*dx+dy*dy < z.Radius*z.Radius
}

// InAnyZone reports whether p lies inside at least one zone.
func InAnyZone(zones []DarkZone, p Position) bool {
	for _, z := range zones {
		if z.Contains(p) {
			return true
		}
	}
	return false
}

// DefaultZones returns a fresh copy of the built-in dark zones.
func DefaultZones() []DarkZone {
	return []DarkZone{
		{Center: Position{X: 15, Y: 10}, Radius: 6},
		{Center: Position{X: 30, Y: 18}, Radius: 5},
		{Center: Position{X: 22, Y: 5}, Radius: 4},
	}
}

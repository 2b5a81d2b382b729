package engine

import "shadowsnake/arcade/game/grid"

// maxFoodSamples bounds rejection sampling before falling back to an
// enumeration of the free cells.
const maxFoodSamples = 64

// Rand is the part of a PRNG that food placement needs.
type Rand interface {
	Intn(n int) int
}

// Occupied is a set of cells.
type Occupied map[grid.Position]struct{}

// OccupiedBy returns the set of cells in ps.
func OccupiedBy(ps []grid.Position) Occupied {
	occ := make(Occupied, len(ps))
	for _, p := range ps {
		occ[p] = struct{}{}
	}
	return occ
}

func (o Occupied) Has(p grid.Position) bool {
	_, ok := o[p]
	return ok
}

// PlaceFood returns a uniformly random cell of d that is not in occupied.
//
// It samples at most maxFoodSamples cells, then enumerates the free cells in
// row-major order and picks one of them, so it always terminates. ok is false
// only when every cell is occupied.
func PlaceFood(rng Rand, occupied Occupied, d grid.Dims) (p grid.Position, ok bool) {
	if d.Width <= 0 || d.Height <= 0 {
		return grid.Position{}, false
	}
	if len(occupied) < d.Cells() {
		for i := 0; i < maxFoodSamples; i++ {
			p = grid.Position{X: rng.Intn(d.Width), Y: rng.Intn(d.Height)}
			if !occupied.Has(p) {
				return p, true
			}
		}
	}

	var free []grid.Position
	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			c := grid.Position{X: x, Y: y}
			if !occupied.Has(c) {
				free = append(free, c)
			}
		}
	}
	if len(free) == 0 {
		return grid.Position{}, false
	}
	return free[rng.Intn(len(free))], true
}

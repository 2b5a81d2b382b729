package engine

import (
	"fmt"

	"shadowsnake/arcade/game/grid"
)

// SelfCollision selects what happens when the head moves onto a body cell.
type SelfCollision uint8

const (
	// SelfCollisionPassThrough lets the head cross the body with no penalty.
	SelfCollisionPassThrough SelfCollision = iota
	// SelfCollisionReset restarts from the initial state, keeping the grid size.
	SelfCollisionReset
)

func (p SelfCollision) String() string {
	switch p {
	case SelfCollisionPassThrough:
		return "pass"
	case SelfCollisionReset:
		return "reset"
	default:
		return "unknown"
	}
}

// ParseSelfCollision accepts the String forms ("pass", "reset").
func ParseSelfCollision(s string) (SelfCollision, error) {
	switch s {
	case "pass", "":
		return SelfCollisionPassThrough, nil
	case "reset":
		return SelfCollisionReset, nil
	default:
		return 0, fmt.Errorf("unknown self-collision policy %q (want pass or reset)", s)
	}
}

// ResizePolicy selects how live state is fitted into new grid dimensions.
type ResizePolicy uint8

const (
	// ResizeWrap takes every segment and the food modulo the new dimensions.
	ResizeWrap ResizePolicy = iota
	// ResizeReset restarts from the initial state inside the new dimensions.
	ResizeReset
)

func (p ResizePolicy) String() string {
	switch p {
	case ResizeWrap:
		return "wrap"
	case ResizeReset:
		return "reset"
	default:
		return "unknown"
	}
}

// ParseResizePolicy accepts the String forms ("wrap", "reset").
func ParseResizePolicy(s string) (ResizePolicy, error) {
	switch s {
	case "wrap", "":
		return ResizeWrap, nil
	case "reset":
		return ResizeReset, nil
	default:
		return 0, fmt.Errorf("unknown resize policy %q (want wrap or reset)", s)
	}
}

// Config holds the seeds and rules of one simulation.
type Config struct {
	Dims  grid.Dims
	Zones []grid.DarkZone

	Start        grid.Position
	StartHeading grid.Heading
	Food         grid.Position
	FoodScore    int

	// Seed feeds the food placement PRNG. Equal seeds and inputs replay
	// identically.
	Seed uint64

	SelfCollision SelfCollision
	OnResize      ResizePolicy
}

// DefaultConfig returns the stock seeds for a grid of size d.
func DefaultConfig(d grid.Dims) Config {
	return Config{
		Dims:         d,
		Zones:        grid.DefaultZones(),
		Start:        grid.Position{X: 10, Y: 10},
		StartHeading: grid.Right,
		Food:         grid.Position{X: 15, Y: 15},
		FoodScore:    grid.FoodScore,
	}
}

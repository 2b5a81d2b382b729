// Package engine advances the snake simulation one tick at a time.
package engine

import (
	"golang.org/x/exp/rand"

	"shadowsnake/arcade/game/grid"
)

// ColorMode is the palette the renderer should use for the snake.
type ColorMode uint8

const (
	ModeDefault ColorMode = iota
	// ModeShadow is active while the head is inside a dark zone.
	ModeShadow
)

func (m ColorMode) String() string {
	if m == ModeShadow {
		return "shadow"
	}
	return "default"
}

// State is a snapshot of the simulation. Snake is head first.
type State struct {
	Snake   []grid.Position
	Food    grid.Position
	Heading grid.Heading
	Score   int
	Mode    ColorMode
	Dims    grid.Dims

	// Ticks counts ticks applied since the last reset.
	Ticks uint64
}

// Head returns the first segment.
func (s State) Head() grid.Position {
	if len(s.Snake) == 0 {
		return grid.Position{}
	}
	return s.Snake[0]
}

// Outcome describes what a Tick or Resize did.
type Outcome struct {
	Ate bool
	// SelfHit is set when the head moved onto a cell the body keeps, or
	// when a wrapping resize folded two segments onto one cell.
	SelfHit bool
	Reset   bool
	// Saturated is set when the snake filled the grid and no food could be
	// placed. The engine resets in that case.
	Saturated bool
}

// Engine owns the simulation state. It is not safe for concurrent use; one
// owner dispatches Tick, SetHeading and Resize sequentially.
type Engine struct {
	cfg Config
	st  State
	rng *rand.Rand
}

// New builds an engine in its initial state.
func New(cfg Config) *Engine {
	cfg.Dims = grid.Dims{Width: max(1, cfg.Dims.Width), Height: max(1, cfg.Dims.Height)}
	if cfg.FoodScore <= 0 {
		cfg.FoodScore = grid.FoodScore
	}
	if cfg.StartHeading == (grid.Heading{}) {
		cfg.StartHeading = grid.Right
	}
	cfg.Zones = append([]grid.DarkZone(nil), cfg.Zones...)

	e := &Engine{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
	e.reset(cfg.Dims)
	return e
}

// State returns a deep copy of the current state.
func (e *Engine) State() State {
	st := e.st
	st.Snake = append([]grid.Position(nil), e.st.Snake...)
	return st
}

// Zones returns the dark zones the engine tests against.
func (e *Engine) Zones() []grid.DarkZone {
	return append([]grid.DarkZone(nil), e.cfg.Zones...)
}

// SetHeading stores the heading used by the next Tick. Any cardinal heading
// is accepted, including the reverse of the current one.
func (e *Engine) SetHeading(h grid.Heading) {
	e.st.Heading = h
}

// Tick moves the snake one cell along the current heading.
func (e *Engine) Tick() Outcome {
	var out Outcome
	st := &e.st
	st.Ticks++

	head := st.Dims.Wrap(st.Snake[0].Add(st.Heading))
	out.Ate = head == st.Food
	out.SelfHit = e.hitsBody(head, out.Ate)
	if out.SelfHit && e.cfg.SelfCollision == SelfCollisionReset {
		out.Ate = false
		out.Reset = true
		e.reset(st.Dims)
		return out
	}

	next := make([]grid.Position, 0, len(st.Snake)+1)
	next = append(next, head)
	next = append(next, st.Snake...)
	if !out.Ate {
		next = next[:len(next)-1]
	}
	st.Snake = next

	if out.Ate {
		st.Score += e.cfg.FoodScore
		food, ok := PlaceFood(e.rng, OccupiedBy(st.Snake), st.Dims)
		if !ok {
			out.Saturated = true
			out.Reset = true
			e.reset(st.Dims)
			return out
		}
		st.Food = food
	}

	st.Mode = e.modeAt(head)
	return out
}

// Resize fits the state into d according to the configured policy.
//
// ResizeWrap takes every segment modulo d, so a body longer than the new
// width or height can fold onto itself. The fold is reported as SelfHit and
// handled like any other self collision: kept under pass-through, reset
// under SelfCollisionReset.
func (e *Engine) Resize(d grid.Dims) Outcome {
	var out Outcome
	d = grid.Dims{Width: max(1, d.Width), Height: max(1, d.Height)}
	if d == e.st.Dims {
		return out
	}

	if e.cfg.OnResize == ResizeReset {
		out.Reset = true
		e.reset(d)
		return out
	}

	st := &e.st
	st.Dims = d
	for i, p := range st.Snake {
		st.Snake[i] = d.Wrap(p)
	}
	if len(OccupiedBy(st.Snake)) < len(st.Snake) {
		out.SelfHit = true
		if e.cfg.SelfCollision == SelfCollisionReset {
			out.Reset = true
			e.reset(d)
			return out
		}
	}
	st.Food = d.Wrap(st.Food)
	if !e.placeFoodIfCovered() {
		out.Saturated = true
		out.Reset = true
		e.reset(d)
		return out
	}
	st.Mode = e.modeAt(st.Snake[0])
	return out
}

// Reset restores the initial seeds inside the current dimensions. Score and
// the tick counter return to zero.
func (e *Engine) Reset() {
	e.reset(e.st.Dims)
}

func (e *Engine) reset(d grid.Dims) {
	e.st = State{
		Snake:   []grid.Position{d.Wrap(e.cfg.Start)},
		Food:    d.Wrap(e.cfg.Food),
		Heading: e.cfg.StartHeading,
		Dims:    d,
	}
	// A 1x1 grid has no room for food; the food then shares the head cell.
	_ = e.placeFoodIfCovered()
	e.st.Mode = e.modeAt(e.st.Snake[0])
}

func (e *Engine) placeFoodIfCovered() bool {
	occ := OccupiedBy(e.st.Snake)
	if !occ.Has(e.st.Food) {
		return true
	}
	food, ok := PlaceFood(e.rng, occ, e.st.Dims)
	if !ok {
		return false
	}
	e.st.Food = food
	return true
}

// hitsBody reports whether head lands on a segment that stays after the
// move. The tail cell is vacated on a non-eating tick and does not count.
func (e *Engine) hitsBody(head grid.Position, eating bool) bool {
	body := e.st.Snake
	if !eating && len(body) > 0 {
		body = body[:len(body)-1]
	}
	for _, p := range body {
		if p == head {
			return true
		}
	}
	return false
}

func (e *Engine) modeAt(head grid.Position) ColorMode {
	if grid.InAnyZone(e.cfg.Zones, head) {
		return ModeShadow
	}
	return ModeDefault
}

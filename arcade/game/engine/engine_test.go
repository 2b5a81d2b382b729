package engine

import (
	"reflect"
	"testing"

	"golang.org/x/exp/rand"

	"shadowsnake/arcade/game/grid"
)

func newTestEngine(d grid.Dims) *Engine {
	cfg := DefaultConfig(d)
	cfg.Seed = 7
	return New(cfg)
}

func TestTickMovesAndEats(t *testing.T) {
	e := newTestEngine(grid.Dims{Width: 40, Height: 20})

	out := e.Tick()
	st := e.State()
	if out.Ate || len(st.Snake) != 1 || st.Head() != (grid.Position{X: 11, Y: 10}) {
		t.Fatalf("expected [(11,10)] without eating, got %v ate=%v", st.Snake, out.Ate)
	}

	for e.State().Head() != (grid.Position{X: 15, Y: 10}) {
		if out := e.Tick(); out.Ate {
			t.Fatal("unexpected eat on the way right")
		}
	}
	e.SetHeading(grid.Down)
	for i := 0; i < 4; i++ {
		e.Tick()
		if got := len(e.State().Snake); got != 1 {
			t.Fatalf("expected length 1 before food, got %d", got)
		}
	}

	out = e.Tick()
	st = e.State()
	if !out.Ate {
		t.Fatal("expected the tick reaching (15,15) to eat")
	}
	if st.Head() != (grid.Position{X: 15, Y: 15}) {
		t.Fatalf("expected head (15,15), got %v", st.Head())
	}
	if len(st.Snake) != 2 || st.Snake[1] != (grid.Position{X: 15, Y: 14}) {
		t.Fatalf("expected snake [(15,15) (15,14)], got %v", st.Snake)
	}
	if st.Score != 5 {
		t.Fatalf("expected score 5, got %d", st.Score)
	}
	for _, p := range st.Snake {
		if p == st.Food {
			t.Fatalf("food %v placed on the snake %v", st.Food, st.Snake)
		}
	}
	if !st.Dims.Contains(st.Food) {
		t.Fatalf("food %v outside %v", st.Food, st.Dims)
	}
}

func TestTickWrapsAtEdge(t *testing.T) {
	cfg := DefaultConfig(grid.Dims{Width: 40, Height: 20})
	cfg.Start = grid.Position{X: 39, Y: 5}
	e := New(cfg)

	e.Tick()
	if got := e.State().Head(); got != (grid.Position{X: 0, Y: 5}) {
		t.Fatalf("expected head (0,5), got %v", got)
	}

	e.SetHeading(grid.Up)
	for i := 0; i < 6; i++ {
		e.Tick()
	}
	if got := e.State().Head(); got != (grid.Position{X: 0, Y: 19}) {
		t.Fatalf("expected head (0,19) after wrapping up, got %v", got)
	}
}

func TestPlaceFoodSingleFreeCell(t *testing.T) {
	d := grid.Dims{Width: 5, Height: 5}
	free := grid.Position{X: 2, Y: 3}
	var cells []grid.Position
	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			if p := (grid.Position{X: x, Y: y}); p != free {
				cells = append(cells, p)
			}
		}
	}
	occ := OccupiedBy(cells)

	for seed := uint64(0); seed < 20; seed++ {
		got, ok := PlaceFood(rand.New(rand.NewSource(seed)), occ, d)
		if !ok || got != free {
			t.Fatalf("seed %d: expected %v, got %v ok=%v", seed, free, got, ok)
		}
	}

	got, ok := PlaceFood(stuckRand{}, occ, d)
	if !ok || got != free {
		t.Fatalf("expected fallback enumeration to find %v, got %v ok=%v", free, got, ok)
	}
}

func TestPlaceFoodFullGrid(t *testing.T) {
	d := grid.Dims{Width: 2, Height: 2}
	occ := OccupiedBy([]grid.Position{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}})
	if _, ok := PlaceFood(stuckRand{}, occ, d); ok {
		t.Fatal("expected no placement on a full grid")
	}
}

// stuckRand always draws zero, which keeps hitting an occupied cell.
type stuckRand struct{}

func (stuckRand) Intn(int) int { return 0 }

func TestReverseHeadingPassThrough(t *testing.T) {
	e := newTestEngine(grid.Dims{Width: 40, Height: 20})
	e.st.Snake = []grid.Position{{X: 12, Y: 10}, {X: 11, Y: 10}, {X: 10, Y: 10}}
	e.st.Food = grid.Position{X: 0, Y: 0}

	e.SetHeading(grid.Left)
	out := e.Tick()
	st := e.State()
	if !out.SelfHit || out.Reset {
		t.Fatalf("expected self hit without reset, got %+v", out)
	}
	want := []grid.Position{{X: 11, Y: 10}, {X: 12, Y: 10}, {X: 11, Y: 10}}
	if !reflect.DeepEqual(st.Snake, want) {
		t.Fatalf("expected %v, got %v", want, st.Snake)
	}
}

func TestReverseHeadingReset(t *testing.T) {
	cfg := DefaultConfig(grid.Dims{Width: 40, Height: 20})
	cfg.SelfCollision = SelfCollisionReset
	e := New(cfg)
	e.st.Snake = []grid.Position{{X: 12, Y: 10}, {X: 11, Y: 10}, {X: 10, Y: 10}}
	e.st.Score = 15

	e.SetHeading(grid.Left)
	out := e.Tick()
	st := e.State()
	if !out.SelfHit || !out.Reset {
		t.Fatalf("expected self hit with reset, got %+v", out)
	}
	if !reflect.DeepEqual(st.Snake, []grid.Position{{X: 10, Y: 10}}) || st.Score != 0 || st.Heading != grid.Right {
		t.Fatalf("expected initial state, got %+v", st)
	}
}

func TestReverseHeadingLengthTwoFollowsVacatedTail(t *testing.T) {
	for _, policy := range []SelfCollision{SelfCollisionPassThrough, SelfCollisionReset} {
		cfg := DefaultConfig(grid.Dims{Width: 40, Height: 20})
		cfg.SelfCollision = policy
		e := New(cfg)
		e.st.Snake = []grid.Position{{X: 11, Y: 10}, {X: 10, Y: 10}}

		e.SetHeading(grid.Left)
		out := e.Tick()
		if out.SelfHit || out.Reset {
			t.Fatalf("%s: expected no self hit onto the vacated tail, got %+v", policy, out)
		}
		want := []grid.Position{{X: 10, Y: 10}, {X: 11, Y: 10}}
		if got := e.State().Snake; !reflect.DeepEqual(got, want) {
			t.Fatalf("%s: expected %v, got %v", policy, want, got)
		}
	}
}

func TestColorModeFollowsHeadOnEatingTick(t *testing.T) {
	cfg := DefaultConfig(grid.Dims{Width: 40, Height: 20})
	cfg.Food = grid.Position{X: 11, Y: 10}
	e := New(cfg)

	out := e.Tick()
	st := e.State()
	if !out.Ate {
		t.Fatal("expected to eat at (11,10)")
	}
	if st.Mode != ModeShadow {
		t.Fatalf("expected shadow mode inside zone on an eating tick, got %s", st.Mode)
	}
}

func TestRandomWalkProperties(t *testing.T) {
	d := grid.Dims{Width: 9, Height: 7}
	cfg := DefaultConfig(d)
	cfg.Zones = []grid.DarkZone{{Center: grid.Position{X: 2, Y: 2}, Radius: 2}, {Center: grid.Position{X: 7, Y: 5}, Radius: 3}}
	cfg.Seed = 42
	e := New(cfg)

	drive := rand.New(rand.NewSource(99))
	headings := []grid.Heading{grid.Up, grid.Down, grid.Left, grid.Right}
	eats := 0
	for i := 0; i < 3000; i++ {
		if drive.Intn(4) == 0 {
			e.SetHeading(headings[drive.Intn(len(headings))])
		}
		before := e.State()
		out := e.Tick()
		after := e.State()
		if out.Reset {
			continue
		}

		want := d.Wrap(before.Head().Add(before.Heading))
		if after.Head() != want {
			t.Fatalf("tick %d: expected head %v, got %v", i, want, after.Head())
		}
		for _, p := range after.Snake {
			if !d.Contains(p) {
				t.Fatalf("tick %d: segment %v outside %v", i, p, d)
			}
		}
		if out.Ate {
			eats++
			if len(after.Snake) != len(before.Snake)+1 {
				t.Fatalf("tick %d: expected growth by 1, got %d -> %d", i, len(before.Snake), len(after.Snake))
			}
			if after.Score != before.Score+5 {
				t.Fatalf("tick %d: expected score +5, got %d -> %d", i, before.Score, after.Score)
			}
			if OccupiedBy(after.Snake).Has(after.Food) {
				t.Fatalf("tick %d: food %v on the snake", i, after.Food)
			}
		} else {
			if len(after.Snake) != len(before.Snake) {
				t.Fatalf("tick %d: expected constant length, got %d -> %d", i, len(before.Snake), len(after.Snake))
			}
			if after.Score != before.Score {
				t.Fatalf("tick %d: expected unchanged score, got %d -> %d", i, before.Score, after.Score)
			}
		}
		inZone := grid.InAnyZone(cfg.Zones, after.Head())
		if (after.Mode == ModeShadow) != inZone {
			t.Fatalf("tick %d: mode %s with head %v (in zone=%v)", i, after.Mode, after.Head(), inZone)
		}
	}
	if eats == 0 {
		t.Fatal("expected the walk to eat at least once")
	}
}

func TestResizeWrapKeepsStateInBounds(t *testing.T) {
	e := newTestEngine(grid.Dims{Width: 40, Height: 20})
	e.st.Snake = []grid.Position{{X: 30, Y: 15}, {X: 29, Y: 15}}
	e.st.Food = grid.Position{X: 35, Y: 12}
	e.st.Score = 10

	out := e.Resize(grid.Dims{Width: 20, Height: 10})
	st := e.State()
	if out.Reset {
		t.Fatal("did not expect a reset under the wrap policy")
	}
	want := []grid.Position{{X: 10, Y: 5}, {X: 9, Y: 5}}
	if !reflect.DeepEqual(st.Snake, want) {
		t.Fatalf("expected %v, got %v", want, st.Snake)
	}
	if st.Food != (grid.Position{X: 15, Y: 2}) {
		t.Fatalf("expected food (15,2), got %v", st.Food)
	}
	if st.Score != 10 || st.Dims != (grid.Dims{Width: 20, Height: 10}) {
		t.Fatalf("expected score kept and dims updated, got %+v", st)
	}
}

func TestResizeWrapMovesCoveredFood(t *testing.T) {
	e := newTestEngine(grid.Dims{Width: 40, Height: 20})
	e.st.Snake = []grid.Position{{X: 5, Y: 5}}
	e.st.Food = grid.Position{X: 25, Y: 15}

	e.Resize(grid.Dims{Width: 20, Height: 10})
	st := e.State()
	if st.Food == st.Head() {
		t.Fatalf("expected food moved off the head at %v", st.Head())
	}
	if !st.Dims.Contains(st.Food) {
		t.Fatalf("food %v outside %v", st.Food, st.Dims)
	}
}

func TestResizeWrapFoldsSegments(t *testing.T) {
	body := []grid.Position{{X: 25, Y: 5}, {X: 24, Y: 5}, {X: 5, Y: 5}, {X: 4, Y: 5}}
	small := grid.Dims{Width: 20, Height: 10}

	tests := []struct {
		policy    SelfCollision
		wantReset bool
		wantScore int
		want      []grid.Position
	}{
		{SelfCollisionPassThrough, false, 10, []grid.Position{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 5, Y: 5}, {X: 4, Y: 5}}},
		// The start cell (10,10) wraps into the 20x10 grid.
		{SelfCollisionReset, true, 0, []grid.Position{{X: 10, Y: 0}}},
	}
	for _, tt := range tests {
		cfg := DefaultConfig(grid.Dims{Width: 40, Height: 20})
		cfg.Seed = 7
		cfg.SelfCollision = tt.policy
		e := New(cfg)
		e.st.Snake = append([]grid.Position(nil), body...)
		e.st.Food = grid.Position{X: 30, Y: 15}
		e.st.Score = 10

		out := e.Resize(small)
		st := e.State()
		if !out.SelfHit || out.Reset != tt.wantReset {
			t.Fatalf("%s: expected fold reported with reset=%v, got %+v", tt.policy, tt.wantReset, out)
		}
		if !reflect.DeepEqual(st.Snake, tt.want) {
			t.Fatalf("%s: expected %v, got %v", tt.policy, tt.want, st.Snake)
		}
		if st.Score != tt.wantScore {
			t.Fatalf("%s: expected score %d, got %d", tt.policy, tt.wantScore, st.Score)
		}
		if _, covered := OccupiedBy(st.Snake)[st.Food]; covered {
			t.Fatalf("%s: food %v under the snake", tt.policy, st.Food)
		}
	}
}

func TestResizeResetPolicy(t *testing.T) {
	cfg := DefaultConfig(grid.Dims{Width: 40, Height: 20})
	cfg.OnResize = ResizeReset
	e := New(cfg)
	e.Tick()
	e.st.Score = 20

	out := e.Resize(grid.Dims{Width: 8, Height: 8})
	st := e.State()
	if !out.Reset {
		t.Fatal("expected reset")
	}
	if st.Score != 0 || st.Head() != (grid.Position{X: 2, Y: 2}) {
		t.Fatalf("expected fresh state wrapped into 8x8, got %+v", st)
	}
	if out := e.Resize(grid.Dims{Width: 8, Height: 8}); out.Reset {
		t.Fatal("expected same-size resize to be a no-op")
	}
}

func TestDeterministicWithSameSeed(t *testing.T) {
	run := func() State {
		cfg := DefaultConfig(grid.Dims{Width: 12, Height: 9})
		cfg.Seed = 1234
		e := New(cfg)
		for i := 0; i < 500; i++ {
			switch i % 37 {
			case 5:
				e.SetHeading(grid.Down)
			case 17:
				e.SetHeading(grid.Left)
			case 29:
				e.SetHeading(grid.Up)
			}
			e.Tick()
		}
		return e.State()
	}
	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected identical states, got %+v and %+v", a, b)
	}
}

func TestStateIsACopy(t *testing.T) {
	e := newTestEngine(grid.Dims{Width: 40, Height: 20})
	st := e.State()
	st.Snake[0] = grid.Position{X: 0, Y: 0}
	if e.State().Head() != (grid.Position{X: 10, Y: 10}) {
		t.Fatal("mutating a snapshot changed the engine")
	}
}

func TestParsePolicies(t *testing.T) {
	if p, err := ParseSelfCollision("reset"); err != nil || p != SelfCollisionReset {
		t.Fatalf("expected reset, got %v err=%v", p, err)
	}
	if _, err := ParseSelfCollision("explode"); err == nil {
		t.Fatal("expected error for unknown policy")
	}
	if p, err := ParseResizePolicy("wrap"); err != nil || p != ResizeWrap {
		t.Fatalf("expected wrap, got %v err=%v", p, err)
	}
	if _, err := ParseResizePolicy("clamp"); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}

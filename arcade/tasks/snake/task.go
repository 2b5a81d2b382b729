// Package snake runs the game as a kernel task. The task owns the engine
// and the framebuffer; every state change happens inside its select loop.
package snake

import (
	"fmt"
	"time"

	"shadowsnake/arcade/client/logger"
	"shadowsnake/arcade/game/engine"
	"shadowsnake/arcade/game/grid"
	"shadowsnake/arcade/game/input"
	"shadowsnake/arcade/game/render"
	"shadowsnake/arcade/kernel"
	"shadowsnake/arcade/proto"
	"shadowsnake/hal"
)

// shutdownLogRetries bounds how many ticks the final score line may wait for
// room in the logger queue.
const shutdownLogRetries = 4

type Config struct {
	// Engine.Dims is ignored; the task derives it from the framebuffer.
	Engine engine.Config
	Render render.Config
	// StepInterval is the time between engine ticks.
	StepInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		Engine:       engine.DefaultConfig(grid.Dims{}),
		Render:       render.DefaultConfig(),
		StepInterval: grid.TickInterval,
	}
}

type Task struct {
	disp   hal.Display
	ep     kernel.Capability
	logCap kernel.Capability
	cfg    Config

	fb   hal.Framebuffer
	eng  *engine.Engine
	rend *render.Renderer

	lastStep uint64
}

func New(disp hal.Display, ep, logCap kernel.Capability, cfg Config) *Task {
	if cfg.StepInterval <= 0 {
		cfg.StepInterval = grid.TickInterval
	}
	if cfg.Render.CellSize <= 0 {
		cfg.Render.CellSize = grid.CellSize
	}
	return &Task{disp: disp, ep: ep, logCap: logCap, cfg: cfg}
}

func (t *Task) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(t.ep)
	if !ok {
		return
	}
	if t.disp == nil {
		return
	}
	t.fb = t.disp.Framebuffer()
	if t.fb == nil || t.fb.Format() != hal.PixelFormatRGBA8888 {
		return
	}

	ecfg := t.cfg.Engine
	ecfg.Dims = grid.DimsForViewport(t.fb.Width(), t.fb.Height(), t.cfg.Render.CellSize)
	t.eng = engine.New(ecfg)
	t.rend = render.New(t.cfg.Render)
	t.lastStep = ctx.NowTick()
	st := t.eng.State()
	logger.Logf(ctx, t.logCap, "snake: task %d start %dx%d cells", ctx.TaskID(), st.Dims.Width, st.Dims.Height)
	t.render(ctx.NowTick())

	done := make(chan struct{})
	defer close(done)

	tickCh := make(chan uint64, 1)
	go func() {
		last := ctx.NowTick()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			default:
			}
			last = ctx.WaitTick(last)
			select {
			case tickCh <- last:
			default:
			}
		}
	}()

	interval := uint64(t.cfg.StepInterval / time.Millisecond)
	if interval == 0 {
		interval = 1
	}

	for {
		select {
		case <-ctx.Done():
			return

		case msg, ok := <-ch:
			if !ok {
				return
			}
			switch proto.Kind(msg.Kind) {
			case proto.MsgAppShutdown:
				line := fmt.Sprintf("snake: shutdown score=%d", t.eng.State().Score)
				_ = logger.LogRetry(ctx, t.logCap, line, shutdownLogRetries)
				return

			case proto.MsgKeyDown:
				key, ok := proto.DecodeKeyPayload(msg.Payload())
				if !ok {
					continue
				}
				if h, ok := input.Route(key); ok {
					t.eng.SetHeading(h)
				}

			case proto.MsgViewport:
				w, h, ok := proto.DecodeViewportPayload(msg.Payload())
				if !ok {
					continue
				}
				t.resize(ctx, w, h)
			}

		case now := <-tickCh:
			if now-t.lastStep < interval {
				continue
			}
			// Advance on the fixed cadence; only a stall longer than a
			// whole interval resynchronises with now.
			t.lastStep += interval
			if now-t.lastStep >= interval {
				t.lastStep = now
			}
			t.step(ctx)
			t.render(now)
		}
	}
}

func (t *Task) step(ctx *kernel.Context) {
	out := t.eng.Tick()
	st := t.eng.State()
	switch {
	case out.Saturated:
		logger.Logf(ctx, t.logCap, "snake: grid full, reset")
	case out.Reset:
		logger.Logf(ctx, t.logCap, "snake: self hit, reset")
	case out.Ate:
		logger.Logf(ctx, t.logCap, "snake: ate score=%d len=%d", st.Score, len(st.Snake))
	}
}

func (t *Task) resize(ctx *kernel.Context, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	if err := t.fb.Resize(w, h); err != nil {
		logger.Logf(ctx, t.logCap, "snake: resize %dx%d: %v", w, h, err)
		return
	}
	d := grid.DimsForViewport(w, h, t.cfg.Render.CellSize)
	out := t.eng.Resize(d)
	if out.Reset {
		logger.Logf(ctx, t.logCap, "snake: resize %dx%d cells, reset", d.Width, d.Height)
	} else {
		logger.Logf(ctx, t.logCap, "snake: resize %dx%d cells", d.Width, d.Height)
	}
	t.render(ctx.NowTick())
}

// render draws the current state into the back buffer and presents it. now
// is the kernel tick in milliseconds and only drives the food pulse.
func (t *Task) render(now uint64) {
	c := render.NewCanvas(t.fb.Buffer(), t.fb.Width(), t.fb.Height(), t.fb.StrideBytes())
	t.rend.Draw(c, render.Frame{State: t.eng.State(), Zones: t.eng.Zones()}, time.Duration(now)*time.Millisecond)
	_ = t.fb.Present()
}

// State returns the engine snapshot; it is only safe to call after Run has
// returned.
func (t *Task) State() engine.State {
	if t.eng == nil {
		return engine.State{}
	}
	return t.eng.State()
}

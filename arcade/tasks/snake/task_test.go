package snake

import (
	"image/color"
	"testing"
	"time"

	"shadowsnake/arcade/game/grid"
	"shadowsnake/arcade/game/render"
	"shadowsnake/arcade/kernel"
	"shadowsnake/arcade/proto"
	"shadowsnake/hal"
)

type fakeFramebuffer struct {
	w, h    int
	back    []byte
	front   []byte
	present chan hal.Size
}

func newFakeFramebuffer(w, h int) *fakeFramebuffer {
	fb := &fakeFramebuffer{present: make(chan hal.Size, 16)}
	_ = fb.Resize(w, h)
	return fb
}

func (f *fakeFramebuffer) Width() int              { return f.w }
func (f *fakeFramebuffer) Height() int             { return f.h }
func (f *fakeFramebuffer) Format() hal.PixelFormat { return hal.PixelFormatRGBA8888 }
func (f *fakeFramebuffer) StrideBytes() int        { return f.w * 4 }
func (f *fakeFramebuffer) Buffer() []byte          { return f.back }

func (f *fakeFramebuffer) Resize(w, h int) error {
	if w <= 0 || h <= 0 {
		return hal.ErrInvalidSize
	}
	f.w, f.h = w, h
	f.back = make([]byte, w*h*4)
	return nil
}

func (f *fakeFramebuffer) Present() error {
	f.front = append(f.front[:0], f.back...)
	f.present <- hal.Size{Width: f.w, Height: f.h}
	return nil
}

func (f *fakeFramebuffer) frontAt(x, y int) color.RGBA {
	off := y*f.w*4 + x*4
	p := f.front[off : off+4]
	return color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

type fakeDisplay struct{ fb *fakeFramebuffer }

func (d fakeDisplay) Framebuffer() hal.Framebuffer { return d.fb }
func (d fakeDisplay) Resizes() <-chan hal.Size     { return nil }

type taskFunc func(*kernel.Context)

func (f taskFunc) Run(ctx *kernel.Context) { f(ctx) }

func recvWithTimeout[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out")
		var zero T
		return zero
	}
}

func TestTaskStepsRendersAndResizes(t *testing.T) {
	k := kernel.New()
	gameEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	fb := newFakeFramebuffer(300, 240)
	cfg := DefaultConfig()
	cfg.Engine.Start = grid.Position{X: 2, Y: 2}
	cfg.Engine.Food = grid.Position{X: 7, Y: 7}
	cfg.Engine.Seed = 3
	task := New(fakeDisplay{fb: fb}, gameEP.Restrict(kernel.RightRecv), logEP.Restrict(kernel.RightSend), cfg)
	k.AddTask(task)

	sends := make(chan func(*kernel.Context), 4)
	k.AddTask(taskFunc(func(ctx *kernel.Context) {
		for {
			select {
			case <-ctx.Done():
				return
			case f := <-sends:
				f(ctx)
			}
		}
	}))
	send := func(kind proto.Kind, payload []byte) {
		sends <- func(ctx *kernel.Context) {
			if res := ctx.Send(gameEP, uint16(kind), payload); res != kernel.SendOK {
				t.Errorf("send %s: %s", kind, res)
			}
		}
	}

	if got := recvWithTimeout(t, fb.present); got != (hal.Size{Width: 300, Height: 240}) {
		t.Fatalf("expected first frame at 300x240, got %+v", got)
	}

	// The same-size viewport acts as a barrier: it redraws after the key
	// has been handled.
	send(proto.MsgKeyDown, proto.KeyPayload("ArrowDown"))
	send(proto.MsgKeyDown, proto.KeyPayload("W"))
	send(proto.MsgViewport, proto.ViewportPayload(300, 240))
	recvWithTimeout(t, fb.present)

	k.TickTo(uint64(grid.TickInterval / time.Millisecond))
	recvWithTimeout(t, fb.present)

	head := fb.frontAt(2*grid.CellSize+15, 3*grid.CellSize+15)
	if want := render.DefaultPalette().Snake; head != want {
		t.Fatalf("expected head drawn at (2,3) in %v, got %v", want, head)
	}

	send(proto.MsgViewport, proto.ViewportPayload(150, 90))
	if got := recvWithTimeout(t, fb.present); got != (hal.Size{Width: 150, Height: 90}) {
		t.Fatalf("expected resized frame 150x90, got %+v", got)
	}

	send(proto.MsgAppShutdown, nil)
	k.Stop()
	k.Wait()

	st := task.State()
	if st.Dims != (grid.Dims{Width: 5, Height: 3}) {
		t.Fatalf("expected 5x3 cells, got %+v", st.Dims)
	}
	if st.Head() != (grid.Position{X: 2, Y: 0}) {
		t.Fatalf("expected head wrapped to (2,0), got %+v", st.Head())
	}
	if st.Heading != grid.Down {
		t.Fatalf("expected heading down, got %v", st.Heading)
	}
}

func TestTaskIgnoresShortTickGaps(t *testing.T) {
	k := kernel.New()
	gameEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	fb := newFakeFramebuffer(120, 120)
	task := New(fakeDisplay{fb: fb}, gameEP, kernel.Capability{}, DefaultConfig())
	k.AddTask(task)

	recvWithTimeout(t, fb.present)
	k.TickTo(50)
	select {
	case <-fb.present:
		t.Fatal("expected no frame before the step interval")
	case <-time.After(50 * time.Millisecond):
	}

	k.Stop()
	k.Wait()
	if got := task.State().Ticks; got != 0 {
		t.Fatalf("expected no engine ticks, got %d", got)
	}
}

func TestTaskHoldsFixedCadence(t *testing.T) {
	k := kernel.New()
	gameEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	fb := newFakeFramebuffer(120, 120)
	task := New(fakeDisplay{fb: fb}, gameEP, kernel.Capability{}, DefaultConfig())
	k.AddTask(task)
	recvWithTimeout(t, fb.present)

	expectFrame := func(tick uint64) {
		t.Helper()
		k.TickTo(tick)
		recvWithTimeout(t, fb.present)
	}
	expectIdle := func(tick uint64) {
		t.Helper()
		k.TickTo(tick)
		select {
		case <-fb.present:
			t.Fatalf("expected no frame at tick %d", tick)
		case <-time.After(50 * time.Millisecond):
		}
	}

	// A late step at 130 must not push the next one out to 230.
	expectFrame(130)
	expectFrame(200)
	// After a long stall the cadence restarts from the stalled tick.
	expectFrame(1000)
	expectIdle(1050)
	expectFrame(1100)

	k.Stop()
	k.Wait()
	if got := task.State().Ticks; got != 4 {
		t.Fatalf("expected 4 engine ticks, got %d", got)
	}
}

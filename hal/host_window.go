//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"

	"shadowsnake/internal/buildinfo"
)

// RunWindow starts a resizable desktop window that shows the framebuffer and
// forwards keyboard input and viewport changes. It blocks until the window
// closes.
func RunWindow(newApp func(HAL) func() error, cfg HostConfig) error {
	cfg = cfg.withDefaults()
	h := newHost(cfg)
	step := newApp(h)

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle("Shadow Snake (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	fbImg   *ebiten.Image
	scratch []byte
	step    func() error

	viewport Size
}

func (g *hostGame) Update() error {
	g.h.kbd.poll()
	g.h.t.step()
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	var w, h int
	g.scratch, w, h = g.h.disp.fb.snapshot(g.scratch)
	if w == 0 || h == 0 {
		return
	}
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != w || g.fbImg.Bounds().Dy() != h {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(w, h)
	}
	g.fbImg.WritePixels(g.scratch)
	screen.DrawImage(g.fbImg, nil)
}

// Layout keeps one framebuffer pixel per logical window pixel and reports
// size changes to the game.
func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := Size{Width: max(1, outsideWidth), Height: max(1, outsideHeight)}
	if s != g.viewport {
		g.viewport = s
		g.h.disp.notifyResize(s)
	}
	return s.Width, s.Height
}

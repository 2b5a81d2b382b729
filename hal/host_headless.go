package hal

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64
	// Shot, when set, names a PNG file that receives the last presented
	// frame once the run ends.
	Shot string
}

// RunHeadless runs the game without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig, hc HostConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	hc = hc.withDefaults()

	h := newHost(hc)
	h.disp.notifyResize(Size{Width: hc.Width, Height: hc.Height})
	step := newApp(h)

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	err := runHeadlessLoop(ctx, h, step, t.C, cfg.Ticks)
	if cfg.Shot != "" && err == nil {
		return writePNG(cfg.Shot, h.disp.fb)
	}
	return err
}

func runHeadlessLoop(ctx context.Context, h *hostHAL, step func() error, ticks <-chan time.Time, limit uint64) error {
	var n uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticks:
			h.t.step()
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			n++
			if limit > 0 && n >= limit {
				return nil
			}
		}
	}
}

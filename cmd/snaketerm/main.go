// Command snaketerm plays the snake game in a terminal.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"shadowsnake/arcade/game/engine"
	"shadowsnake/arcade/game/grid"
	"shadowsnake/arcade/game/input"
	"shadowsnake/arcade/game/render"
)

type config struct {
	seed          uint64
	selfCollision string
	onResize      string
	step          time.Duration
}

func main() {
	var cfg config
	flag.Uint64Var(&cfg.seed, "seed", uint64(time.Now().UnixNano()), "Food placement seed.")
	flag.StringVar(&cfg.selfCollision, "self-collision", "pass", "Head entering the body: pass or reset.")
	flag.StringVar(&cfg.onResize, "on-resize", "wrap", "Terminal resize: wrap or reset.")
	flag.DurationVar(&cfg.step, "step", grid.TickInterval, "Time between moves.")
	flag.Parse()

	// The screen owns the terminal while the game runs; log lines are
	// buffered and flushed once it is finalised.
	var logBuf bytes.Buffer
	log := zerolog.New(zerolog.ConsoleWriter{Out: &logBuf, NoColor: true}).With().Timestamp().Logger()

	err := run(cfg, log)
	os.Stderr.Write(logBuf.Bytes())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg config, log zerolog.Logger) error {
	ecfg := engine.DefaultConfig(grid.Dims{})
	ecfg.Seed = cfg.seed
	var err error
	if ecfg.SelfCollision, err = engine.ParseSelfCollision(cfg.selfCollision); err != nil {
		return err
	}
	if ecfg.OnResize, err = engine.ParseResizePolicy(cfg.onResize); err != nil {
		return err
	}
	if cfg.step <= 0 {
		cfg.step = grid.TickInterval
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	ecfg.Dims = termDims(screen.Size())
	eng := engine.New(ecfg)
	pal := render.DefaultPalette()
	log.Info().Int("width", ecfg.Dims.Width).Int("height", ecfg.Dims.Height).Uint64("seed", cfg.seed).Msg("start")

	quit := make(chan struct{})
	defer close(quit)
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(cfg.step)
	defer ticker.Stop()

	drawTerm(screen, eng.State(), eng.Zones(), pal)
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if isQuit(ev) {
					log.Info().Int("score", eng.State().Score).Msg("quit")
					return nil
				}
				if h, ok := input.Route(keyName(ev)); ok {
					eng.SetHeading(h)
				}
			case *tcell.EventResize:
				screen.Sync()
				d := termDims(ev.Size())
				if out := eng.Resize(d); out.Reset {
					log.Info().Int("width", d.Width).Int("height", d.Height).Msg("resize reset")
				}
				drawTerm(screen, eng.State(), eng.Zones(), pal)
			}

		case <-ticker.C:
			out := eng.Tick()
			st := eng.State()
			switch {
			case out.Saturated:
				log.Info().Msg("grid full, reset")
			case out.Reset:
				log.Info().Msg("self hit, reset")
			case out.Ate:
				log.Debug().Int("score", st.Score).Int("len", len(st.Snake)).Msg("ate")
			}
			drawTerm(screen, st, eng.Zones(), pal)
		}
	}
}

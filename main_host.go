package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"shadowsnake/app"
	"shadowsnake/arcade/game/engine"
	"shadowsnake/arcade/game/input"
	"shadowsnake/hal"
	"shadowsnake/internal/buildinfo"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var (
		cfg           hal.HeadlessConfig
		host          hal.HostConfig
		seed          uint64
		selfCollision string
		onResize      string
		showVersion   bool
	)
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Host frame rate in headless mode.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N frames in headless mode (0 = run forever).")
	flag.StringVar(&cfg.Shot, "shot", "", "Write the last frame as PNG when a headless run ends.")
	flag.IntVar(&host.Width, "width", hal.DefaultWidth, "Viewport width in pixels.")
	flag.IntVar(&host.Height, "height", hal.DefaultHeight, "Viewport height in pixels.")
	flag.Uint64Var(&seed, "seed", 0, "Food placement seed.")
	flag.StringVar(&selfCollision, "self-collision", "pass", "Head entering the body: pass or reset.")
	flag.StringVar(&onResize, "on-resize", "wrap", "Viewport change: wrap or reset.")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit.")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags]\n\nSteer with: %s\n\n", os.Args[0], strings.Join(input.Keys(), " "))
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Println(buildinfo.Long())
		return
	}

	appCfg := app.DefaultConfig()
	appCfg.Snake.Engine.Seed = seed
	var err error
	if appCfg.Snake.Engine.SelfCollision, err = engine.ParseSelfCollision(selfCollision); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if appCfg.Snake.Engine.OnResize, err = engine.ParseResizePolicy(onResize); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var sys *app.System
	newApp := func(h hal.HAL) func() error {
		sys = app.New(h, appCfg)
		return sys.Step
	}

	if cfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = hal.RunHeadless(ctx, newApp, cfg, host)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
	} else {
		err = hal.RunWindow(newApp, host)
	}

	if sys != nil {
		if cerr := sys.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		log.Error().Err(err).Msg("shadowsnake")
		os.Exit(1)
	}
}

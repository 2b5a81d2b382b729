package hal

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultWidth and DefaultHeight size the viewport before the first resize.
const (
	DefaultWidth  = 1200
	DefaultHeight = 600
)

// HostConfig sizes the host surfaces.
type HostConfig struct {
	Width  int
	Height int
}

func (c HostConfig) withDefaults() HostConfig {
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	return c
}

type hostHAL struct {
	logger *hostLogger
	disp   *hostDisplay
	kbd    *hostKeyboard
	t      *hostTime
}

// New returns a host HAL implementation.
func New(cfg HostConfig) HAL {
	return newHost(cfg)
}

func newHost(cfg HostConfig) *hostHAL {
	cfg = cfg.withDefaults()
	return &hostHAL{
		logger: &hostLogger{log: log.Logger.With().Str("component", "game").Logger()},
		disp:   newHostDisplay(newHostFramebuffer(cfg.Width, cfg.Height)),
		kbd:    newHostKeyboard(),
		t:      newHostTime(),
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return h.disp }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd} }
func (h *hostHAL) Time() Time       { return h.t }

type hostDisplay struct {
	fb      *hostFramebuffer
	resizes chan Size
}

func newHostDisplay(fb *hostFramebuffer) *hostDisplay {
	return &hostDisplay{fb: fb, resizes: make(chan Size, 1)}
}

func (d *hostDisplay) Framebuffer() Framebuffer { return d.fb }
func (d *hostDisplay) Resizes() <-chan Size     { return d.resizes }

// notifyResize replaces any pending size with s. It is called from the host
// loop only.
func (d *hostDisplay) notifyResize(s Size) {
	select {
	case <-d.resizes:
	default:
	}
	select {
	case d.resizes <- s:
	default:
	}
}

type hostInput struct {
	kbd *hostKeyboard
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }

// hostLogger forwards game log lines to zerolog. zerolog serialises writes
// per event so no extra locking is needed.
type hostLogger struct {
	log zerolog.Logger
}

func (l *hostLogger) WriteLineString(s string) {
	l.log.Info().Msg(s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.log.Info().Msg(string(b))
}

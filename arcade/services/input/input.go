// Package input turns host keyboard and viewport events into IPC messages
// for the game task.
package input

import (
	"shadowsnake/arcade/kernel"
	"shadowsnake/arcade/proto"
	"shadowsnake/hal"
)

// sendRetries bounds how many ticks a forward waits on a full game queue.
const sendRetries = 8

type Service struct {
	disp hal.Display
	in   hal.Input
	game kernel.Capability
}

func New(d hal.Display, in hal.Input, game kernel.Capability) *Service {
	return &Service{disp: d, in: in, game: game}
}

func (s *Service) Run(ctx *kernel.Context) {
	if !s.game.Valid() {
		return
	}
	var events <-chan hal.KeyEvent
	if s.in != nil {
		if kbd := s.in.Keyboard(); kbd != nil {
			events = kbd.Events()
		}
	}
	var resizes <-chan hal.Size
	if s.disp != nil {
		resizes = s.disp.Resizes()
	}
	if events == nil && resizes == nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			s.forwardKey(ctx, ev)
		case sz, ok := <-resizes:
			if !ok {
				resizes = nil
				continue
			}
			ctx.SendRetry(s.game, uint16(proto.MsgViewport), proto.ViewportPayload(sz.Width, sz.Height), sendRetries)
		}
	}
}

// forwardKey sends key presses only; releases carry no direction change.
func (s *Service) forwardKey(ctx *kernel.Context, ev hal.KeyEvent) {
	if !ev.Press {
		return
	}
	name := ev.Name()
	if name == "" {
		return
	}
	ctx.SendRetry(s.game, uint16(proto.MsgKeyDown), proto.KeyPayload(name), sendRetries)
}

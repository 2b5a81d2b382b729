// Package app wires the kernel, services and the snake task for a HAL.
package app

import (
	"sync"
	"sync/atomic"

	"shadowsnake/arcade/kernel"
	"shadowsnake/arcade/proto"
	"shadowsnake/arcade/services/input"
	"shadowsnake/arcade/services/logger"
	"shadowsnake/arcade/tasks/snake"
	"shadowsnake/hal"
)

type Config struct {
	Snake snake.Config
}

func DefaultConfig() Config {
	return Config{Snake: snake.DefaultConfig()}
}

// System is a running game. Step is called once per host frame; Close tears
// everything down.
type System struct {
	k      *kernel.Kernel
	gameEP kernel.Capability
	owned  []kernel.Capability

	panicked atomic.Pointer[kernel.PanicInfo]

	stopTicks chan struct{}
	closeOnce sync.Once
}

// New starts the kernel, the services and the snake task.
func New(h hal.HAL, cfg Config) *System {
	k := kernel.New()
	s := &System{k: k, stopTicks: make(chan struct{})}
	s.installPanicHandler(h)

	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	gameEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	s.gameEP = gameEP.Restrict(kernel.RightSend)
	s.owned = []kernel.Capability{logEP, gameEP}

	k.AddTask(logger.New(h.Logger(), logEP.Restrict(kernel.RightRecv)))
	k.AddTask(snake.New(h.Display(), gameEP.Restrict(kernel.RightRecv), logEP.Restrict(kernel.RightSend), cfg.Snake))
	k.AddTask(input.New(h.Display(), h.Input(), s.gameEP))

	if ht := h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			go s.forwardTicks(ch)
		}
	}
	return s
}

func (s *System) forwardTicks(ch <-chan uint64) {
	for {
		select {
		case <-s.stopTicks:
			return
		case seq := <-ch:
			s.k.TickTo(seq)
		}
	}
}

// Step is the per-frame host hook. It fails once a task has panicked.
func (s *System) Step() error {
	return s.panicErr()
}

// Close asks the game to shut down, stops the kernel and waits for every
// task. No frame is drawn and no message is accepted after Close returns.
func (s *System) Close() error {
	s.closeOnce.Do(func() {
		s.k.Post(s.gameEP, uint16(proto.MsgAppShutdown), nil)
		close(s.stopTicks)
		s.k.Stop()
		s.k.Wait()
		for _, ep := range s.owned {
			s.k.CloseEndpoint(ep)
		}
	})
	return s.panicErr()
}

// Package logger drains log lines sent over IPC into a hal.Logger.
package logger

import (
	"shadowsnake/arcade/kernel"
	"shadowsnake/arcade/proto"
	"shadowsnake/hal"
)

type Service struct {
	log hal.Logger
	ep  kernel.Capability
}

func New(log hal.Logger, ep kernel.Capability) *Service {
	return &Service{log: log, ep: ep}
}

func (s *Service) Run(ctx *kernel.Context) {
	in, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}
	for {
		select {
		case <-ctx.Done():
			s.drain(ctx)
			return
		case msg, ok := <-in:
			if !ok {
				return
			}
			s.handle(msg)
		}
	}
}

// drain writes whatever is already queued so shutdown lines are not lost.
func (s *Service) drain(ctx *kernel.Context) {
	for {
		msg, ok := ctx.TryRecv(s.ep)
		if !ok {
			return
		}
		s.handle(msg)
	}
}

func (s *Service) handle(msg kernel.Message) {
	if s.log == nil {
		return
	}
	if msg.Kind != uint16(proto.MsgLogLine) {
		return
	}
	s.log.WriteLineBytes(msg.Payload())
}

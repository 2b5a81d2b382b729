package app

import (
	"fmt"
	"strings"

	"shadowsnake/arcade/kernel"
	"shadowsnake/hal"
)

// installPanicHandler logs the first task panic with its stack and records it
// so the next Step reports it to the host loop.
func (s *System) installPanicHandler(h hal.HAL) {
	kernel.SetPanicHandler(func(info kernel.PanicInfo) {
		s.panicked.Store(&info)

		l := h.Logger()
		if l == nil {
			return
		}
		l.WriteLineString(fmt.Sprintf("panic: task=%d value=%v", info.TaskID, info.Value))
		for _, line := range strings.Split(string(info.Stack), "\n") {
			if line == "" {
				continue
			}
			l.WriteLineString(line)
		}
	})
}

// panicErr returns a non-nil error once any task has panicked.
func (s *System) panicErr() error {
	if !kernel.InPanicMode() {
		return nil
	}
	if info := s.panicked.Load(); info != nil {
		return fmt.Errorf("task %d panicked: %v", info.TaskID, info.Value)
	}
	return fmt.Errorf("task panicked")
}

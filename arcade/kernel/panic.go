package kernel

import (
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// PanicInfo describes a task that panicked inside AddTask's recover.
type PanicInfo struct {
	TaskID TaskID
	Value  any
	Stack  []byte
}

// The kernel runs one game per process, so the tripped flag is global. The
// host frame loop polls it through app.System.Step and exits with an error.
var panicState struct {
	once    sync.Once
	tripped atomic.Bool
	handler atomic.Pointer[func(PanicInfo)]
}

// InPanicMode reports whether a task has panicked since the process started.
func InPanicMode() bool {
	return panicState.tripped.Load()
}

// SetPanicHandler registers fn to receive the first task panic. Later panics
// only unwind their own goroutine. fn runs on the panicking task's goroutine
// and must not panic itself.
func SetPanicHandler(fn func(PanicInfo)) {
	panicState.handler.Store(&fn)
}

func triggerPanic(info PanicInfo) {
	panicState.once.Do(func() {
		panicState.tripped.Store(true)
		info.Stack = debug.Stack()
		if fn := panicState.handler.Load(); fn != nil && *fn != nil {
			(*fn)(info)
		}
	})
}

// Package logger is the task-side client of the logger service.
package logger

import (
	"fmt"

	"shadowsnake/arcade/kernel"
	"shadowsnake/arcade/proto"
)

// Log sends a log line to the logger service. Lines longer than one message
// are cut. The call drops the line when the queue is full.
func Log(ctx *kernel.Context, logCap kernel.Capability, line string) kernel.SendResult {
	if !logCap.Valid() {
		return kernel.SendErrInvalidCap
	}
	return ctx.Send(logCap, uint16(proto.MsgLogLine), payload(line))
}

// Logf formats and sends a log line.
func Logf(ctx *kernel.Context, logCap kernel.Capability, format string, args ...any) kernel.SendResult {
	return Log(ctx, logCap, fmt.Sprintf(format, args...))
}

// LogRetry waits up to limit ticks for room in the logger queue. Tasks use it
// for lines that must not be dropped, such as the final score.
func LogRetry(ctx *kernel.Context, logCap kernel.Capability, line string, limit int) error {
	if !logCap.Valid() {
		return nil
	}
	if res := ctx.SendRetry(logCap, uint16(proto.MsgLogLine), payload(line), limit); res != kernel.SendOK {
		return fmt.Errorf("logger send: %s", res)
	}
	return nil
}

func payload(line string) []byte {
	b := []byte(line)
	if len(b) > kernel.MaxMessageBytes {
		b = b[:kernel.MaxMessageBytes]
	}
	return proto.LogLinePayload(b)
}

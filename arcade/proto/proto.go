package proto

// Kind identifies the message type carried in kernel.Message.Kind.
type Kind uint16

const (
	MsgLogLine Kind = iota + 1
	MsgKeyDown
	MsgViewport
	MsgAppShutdown
)

func (k Kind) String() string {
	switch k {
	case MsgLogLine:
		return "log_line"
	case MsgKeyDown:
		return "key_down"
	case MsgViewport:
		return "viewport"
	case MsgAppShutdown:
		return "app_shutdown"
	default:
		return "unknown"
	}
}

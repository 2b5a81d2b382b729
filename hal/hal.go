package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrInvalidSize = errors.New("invalid framebuffer size")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGBA8888 is 32bpp, bytes in R, G, B, A order.
	PixelFormatRGBA8888 PixelFormat = iota + 1
)

// Framebuffer is a double-buffered pixel surface.
//
// Buffer returns the back buffer; it belongs to the single task that draws.
// Present publishes the back buffer atomically so the host never shows a
// partially drawn frame.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	// Resize reallocates both buffers. Contents are undefined until the next
	// draw.
	Resize(width, height int) error
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
)

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Name returns the DOM-style key identifier ("ArrowUp", "w", ...).
func (e KeyEvent) Name() string {
	switch e.Code {
	case KeyUp:
		return "ArrowUp"
	case KeyDown:
		return "ArrowDown"
	case KeyLeft:
		return "ArrowLeft"
	case KeyRight:
		return "ArrowRight"
	case KeyEscape:
		return "Escape"
	}
	if e.Rune != 0 {
		return string(e.Rune)
	}
	return ""
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Size is a viewport size in pixels.
type Size struct {
	Width  int
	Height int
}

// Display provides the framebuffer and viewport size changes.
type Display interface {
	Framebuffer() Framebuffer
	// Resizes delivers the latest viewport size. Intermediate sizes may be
	// coalesced.
	Resizes() <-chan Size
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
}

// Time provides a base tick stream of one tick per millisecond.
type Time interface {
	Ticks() <-chan uint64
}

// HAL provides the only contact point between the game and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Time() Time
}

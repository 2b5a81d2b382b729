package proto

import "encoding/binary"

// MaxKeyBytes bounds a key identifier ("ArrowRight" is the longest we route).
const MaxKeyBytes = 32

// KeyPayload encodes a MsgKeyDown payload: the UTF-8 key identifier as-is.
func KeyPayload(key string) []byte {
	if len(key) > MaxKeyBytes {
		key = key[:MaxKeyBytes]
	}
	return []byte(key)
}

func DecodeKeyPayload(b []byte) (key string, ok bool) {
	if len(b) == 0 || len(b) > MaxKeyBytes {
		return "", false
	}
	return string(b), true
}

// ViewportPayload encodes a MsgViewport payload.
//
// Layout (little-endian):
//   - u16: width in pixels
//   - u16: height in pixels
//
// Values are clamped to [0, 65535].
func ViewportPayload(width, height int) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint16(buf[0:2], clampU16(width))
	binary.LittleEndian.PutUint16(buf[2:4], clampU16(height))
	return buf
}

func DecodeViewportPayload(b []byte) (width, height int, ok bool) {
	if len(b) != 4 {
		return 0, 0, false
	}
	width = int(binary.LittleEndian.Uint16(b[0:2]))
	height = int(binary.LittleEndian.Uint16(b[2:4]))
	return width, height, true
}

func clampU16(v int) uint16 {
	if v < 0 {
		return 0
	}
	if v > 0xFFFF {
		return 0xFFFF
	}
	return uint16(v)
}

package hal

import "sync"

type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	back   []byte
	front  []byte
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	f := &hostFramebuffer{}
	f.alloc(max(1, width), max(1, height))
	return f
}

func (f *hostFramebuffer) alloc(width, height int) {
	f.width = width
	f.height = height
	f.stride = width * 4
	f.back = make([]byte, f.stride*height)
	f.front = make([]byte, f.stride*height)
}

func (f *hostFramebuffer) Width() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.width
}

func (f *hostFramebuffer) Height() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.height
}

func (f *hostFramebuffer) Format() PixelFormat { return PixelFormatRGBA8888 }

func (f *hostFramebuffer) StrideBytes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stride
}

func (f *hostFramebuffer) Buffer() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.back
}

func (f *hostFramebuffer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidSize
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if width == f.width && height == f.height {
		return nil
	}
	f.alloc(width, height)
	return nil
}

func (f *hostFramebuffer) Present() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(f.front, f.back)
	return nil
}

// snapshot copies the front buffer into dst, growing it as needed.
func (f *hostFramebuffer) snapshot(dst []byte) (out []byte, width, height int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cap(dst) < len(f.front) {
		dst = make([]byte, len(f.front))
	}
	dst = dst[:len(f.front)]
	copy(dst, f.front)
	return dst, f.width, f.height
}

package hal

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

func (f *hostFramebuffer) frontImage() *image.RGBA {
	pix, w, h := f.snapshot(nil)
	return &image.RGBA{Pix: pix, Stride: w * 4, Rect: image.Rect(0, 0, w, h)}
}

// writePNG saves the last presented frame.
func writePNG(path string, fb *hostFramebuffer) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create screenshot: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close screenshot: %w", cerr)
		}
	}()
	if err := png.Encode(file, fb.frontImage()); err != nil {
		return fmt.Errorf("encode screenshot: %w", err)
	}
	return nil
}

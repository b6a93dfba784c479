// Package texture provides single-channel pixel buffers that a renderer can
// sample and upload when they change.
package texture

import (
	"image"
	"sync"
	"sync/atomic"
)

// Texture is a width x height luminance image backed by a byte slice it does
// not own. Writers mark it dirty; the consumer clears the flag after upload.
type Texture struct {
	mu          sync.RWMutex
	img         *image.Gray
	needsUpdate atomic.Bool
}

// New wraps pix as a width x height texture. pix must hold width*height bytes.
func New(pix []byte, width, height int) *Texture {
	if len(pix) < width*height {
		panic("texture: pixel buffer too small")
	}
	return &Texture{
		img: &image.Gray{
			Pix:    pix,
			Stride: width,
			Rect:   image.Rect(0, 0, width, height),
		},
	}
}

func (t *Texture) Width() int  { return t.img.Rect.Dx() }
func (t *Texture) Height() int { return t.img.Rect.Dy() }

// At returns the value of the pixel at (x, y).
func (t *Texture) At(x, y int) byte {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.img.GrayAt(x, y).Y
}

// Set writes v at the raw offset into the backing slice and marks the texture dirty.
func (t *Texture) Set(offset int, v byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.img.Pix[offset] = v
	t.needsUpdate.Store(true)
}

func (t *Texture) NeedsUpdate() bool { return t.needsUpdate.Load() }

func (t *Texture) ClearNeedsUpdate() { t.needsUpdate.Store(false) }

// Upload calls fn with the current image if the texture is dirty, clearing the
// flag first so writes made during fn are not lost. fn must not retain img or
// modify it. Reports whether fn ran.
func (t *Texture) Upload(fn func(img *image.Gray)) bool {
	if !t.needsUpdate.CompareAndSwap(true, false) {
		return false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	fn(t.img)
	return true
}

// Snapshot returns a copy of the current image.
func (t *Texture) Snapshot() *image.Gray {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := image.NewGray(t.img.Rect)
	copy(out.Pix, t.img.Pix)
	return out
}

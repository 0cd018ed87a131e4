package system

import (
	"image"
	"sync"
)

// FramePool recycles fixed-size RGBA canvases between frame workers to keep
// a long render from hammering the garbage collector.
type FramePool struct {
	rect image.Rectangle
	pool sync.Pool
}

func NewFramePool(width, height int) *FramePool {
	rect := image.Rect(0, 0, width, height)
	return &FramePool{
		rect: rect,
		pool: sync.Pool{
			New: func() any {
				return image.NewRGBA(rect)
			},
		},
	}
}

// Get returns a canvas cleared to zero.
func (p *FramePool) Get() *image.RGBA {
	img := p.pool.Get().(*image.RGBA)
	clear(img.Pix)
	return img
}

func (p *FramePool) Put(img *image.RGBA) {
	if img == nil || img.Rect != p.rect {
		return
	}
	p.pool.Put(img)
}

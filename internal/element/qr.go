package element

import (
	"image"
	"sync"

	qrcode "github.com/skip2/go-qrcode"
)

// QR is a timed QR code, typically placed over an outro to link somewhere.
type QR struct {
	Element

	content string
	size    int // rendered side length in pixels before element scaling

	once    sync.Once
	img     image.Image
	loadErr error
}

// NewQR creates a QR element encoding the given content.
func NewQR(content string, size int) *QR {
	if size <= 0 {
		size = 256
	}
	return &QR{Element: newElement(), content: content, size: size}
}

func (q *QR) Content() string { return q.content }

// Bitmap encodes the QR code once and caches the raster.
func (q *QR) Bitmap() (image.Image, error) {
	q.once.Do(func() {
		code, err := qrcode.New(q.content, qrcode.Medium)
		if err != nil {
			q.loadErr = err
			return
		}
		q.img = code.Image(q.size)
	})
	return q.img, q.loadErr
}

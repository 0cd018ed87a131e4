package element

import (
	"image"
	"sync"

	"github.com/ivlev/vidcomp/internal/asset"
)

// Image is a timed still image. PDF paths place a rendered page. Decoding is
// deferred to the first Bitmap call so a misconfigured path only fails the
// element that references it.
type Image struct {
	Element

	path string
	page int

	once    sync.Once
	img     image.Image
	loadErr error
}

// NewImage creates an image element for the given file.
func NewImage(path string) *Image {
	return &Image{Element: newElement(), path: path}
}

func (i *Image) Path() string { return i.path }

// SetPage selects the page for PDF sources (zero-based).
func (i *Image) SetPage(n int) *Image { i.page = n; return i }

// Bitmap decodes the image once and caches it. Safe for concurrent frame
// sampling.
func (i *Image) Bitmap() (image.Image, error) {
	i.once.Do(func() {
		i.img, i.loadErr = asset.LoadImage(i.path, i.page)
	})
	return i.img, i.loadErr
}

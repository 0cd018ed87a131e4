// Package asset loads still images and probes media durations for the
// element layer.
package asset

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// PDF pages render at a fixed DPI; plenty for 1080p placement.
const pdfDPI = 150

// LoadImage decodes a still image. PDF paths render the requested page
// (zero-based) to a still; every other extension goes through image.Decode
// with the png/jpeg/bmp/tiff/webp decoders registered.
func LoadImage(path string, page int) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return loadPDFPage(path, page)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("asset: decode %s: %w", path, err)
	}
	return img, nil
}

func loadPDFPage(path string, page int) (image.Image, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("asset: open pdf %s: %w", path, err)
	}
	defer doc.Close()

	if page < 0 || page >= doc.NumPage() {
		return nil, fmt.Errorf("asset: pdf %s has %d pages, page %d requested", path, doc.NumPage(), page)
	}
	img, err := doc.ImageDPI(page, pdfDPI)
	if err != nil {
		return nil, fmt.Errorf("asset: render pdf page %d of %s: %w", page, path, err)
	}
	return img, nil
}

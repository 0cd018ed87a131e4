package render

import (
	"image"
	"image/color"
	"log"
	"os"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/ivlev/vidcomp/internal/element"
)

// faceCache hands out sized font faces. A face is not safe for concurrent
// use, so each cached entry carries a lock the frame workers take while
// shaping.
type faceCache struct {
	defaultPath string

	mu    sync.Mutex
	fonts map[string]*sfnt.Font
	faces map[faceKey]*lockedFace
}

type faceKey struct {
	path string
	size float64
}

type lockedFace struct {
	mu   sync.Mutex
	face font.Face
}

func newFaceCache(defaultPath string) *faceCache {
	return &faceCache{
		defaultPath: defaultPath,
		fonts:       make(map[string]*sfnt.Font),
		faces:       make(map[faceKey]*lockedFace),
	}
}

func (c *faceCache) font(path string) (*sfnt.Font, error) {
	if f, ok := c.fonts[path]; ok {
		return f, nil
	}
	var data []byte
	if path == "" {
		data = goregular.TTF
	} else {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	c.fonts[path] = f
	return f, nil
}

// acquire returns a locked face for the path/size pair; the caller must call
// the returned release func when done shaping.
func (c *faceCache) acquire(path string, size float64) (font.Face, func(), error) {
	if path == "" {
		path = c.defaultPath
	}

	c.mu.Lock()
	key := faceKey{path: path, size: size}
	lf, ok := c.faces[key]
	if !ok {
		fnt, err := c.font(path)
		if err != nil {
			c.mu.Unlock()
			return nil, nil, err
		}
		face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			c.mu.Unlock()
			return nil, nil, err
		}
		lf = &lockedFace{face: face}
		c.faces[key] = lf
	}
	c.mu.Unlock()

	lf.mu.Lock()
	return lf.face, lf.mu.Unlock, nil
}

// drawText rasterizes the text block at its natural size with the effective
// color; scale, rotation, alpha and corner radius apply during compositing.
func (r *Renderer) drawText(t *element.Text, col [3]float64) *image.RGBA {
	if t.Text() == "" || t.Size() <= 0 {
		return nil
	}

	face, release, err := r.faces.acquire(t.FontPath(), t.Size())
	if err != nil {
		log.Printf("[!] Skipping text %q: font: %v", t.Text(), err)
		return nil
	}
	defer release()

	lines := strings.Split(t.Text(), "\n")
	metrics := face.Metrics()
	lineHeight := (metrics.Ascent + metrics.Descent).Ceil() + int(t.LineSpacing())

	widths := make([]int, len(lines))
	maxWidth := 1
	for i, line := range lines {
		widths[i] = font.MeasureString(face, line).Ceil()
		if widths[i] > maxWidth {
			maxWidth = widths[i]
		}
	}

	canvas := image.NewRGBA(image.Rect(0, 0, maxWidth, lineHeight*len(lines)))
	src := image.NewUniform(color.RGBA{
		R: uint8(col[0] + 0.5),
		G: uint8(col[1] + 0.5),
		B: uint8(col[2] + 0.5),
		A: 255,
	})
	d := &font.Drawer{Dst: canvas, Src: src, Face: face}

	for i, line := range lines {
		x := 0
		switch t.Alignment() {
		case element.AlignCenter:
			x = (maxWidth - widths[i]) / 2
		case element.AlignRight:
			x = maxWidth - widths[i]
		}
		d.Dot = fixed.Point26_6{
			X: fixed.I(x),
			Y: fixed.I(i*lineHeight) + metrics.Ascent,
		}
		d.DrawString(line)
	}
	return canvas
}

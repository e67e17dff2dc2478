package sprite

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"io/fs"
	"path"

	// Spritesheet decoders for image.Decode and ebitenutil.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/pkg/errors"
)

// Image is a spritesheet or a frame sub-bitmap. Frames returned by Shared
// borrow the parent's pixels and must not outlive it.
type Image interface {
	Width() int
	Height() int
	// Shared returns the w×h sub-bitmap at (x, y), relative to the image's
	// own top-left corner, sharing the parent's pixel storage.
	Shared(x, y, w, h int) Image
	// Lock makes the pixels readable. Callers must Unlock when done.
	Lock() (image.Image, error)
	Unlock()
}

// ImageLoader loads spritesheets by path. Implementations cache by path so
// sprites declaring the same source_file share one image.
type ImageLoader interface {
	Load(path string) (Image, error)
}

// --- ebiten ---

// EbitenImage is an Image backed by an *ebiten.Image.
type EbitenImage struct {
	img    *ebiten.Image
	pixels *image.RGBA
}

// NewEbitenImage wraps img.
func NewEbitenImage(img *ebiten.Image) *EbitenImage {
	return &EbitenImage{img: img}
}

// Ebiten returns the wrapped image for drawing.
func (e *EbitenImage) Ebiten() *ebiten.Image { return e.img }

func (e *EbitenImage) Width() int  { return e.img.Bounds().Dx() }
func (e *EbitenImage) Height() int { return e.img.Bounds().Dy() }

func (e *EbitenImage) Shared(x, y, w, h int) Image {
	o := e.img.Bounds().Min
	r := image.Rect(o.X+x, o.Y+y, o.X+x+w, o.Y+y+h)
	return &EbitenImage{img: e.img.SubImage(r).(*ebiten.Image)}
}

// Lock reads the pixels back from the GPU. Ebitengine refuses pixel reads
// before the game loop has started; that case is reported as an error.
func (e *EbitenImage) Lock() (img image.Image, err error) {
	if e.pixels != nil {
		return e.pixels, nil
	}
	defer func() {
		if r := recover(); r != nil {
			img, err = nil, fmt.Errorf("sprite: reading pixels: %v", r)
		}
	}()
	b := e.img.Bounds()
	pix := image.NewRGBA(b)
	e.img.ReadPixels(pix.Pix)
	e.pixels = pix
	return pix, nil
}

func (e *EbitenImage) Unlock() { e.pixels = nil }

// --- memory ---

// MemoryImage is an Image over an in-memory image.Image. It needs no
// graphics context, so headless tools and tests use it.
type MemoryImage struct {
	img image.Image
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// NewMemoryImage wraps img. Images that cannot produce sub-images are
// copied into an *image.NRGBA first.
func NewMemoryImage(img image.Image) *MemoryImage {
	if _, ok := img.(subImager); !ok {
		dst := image.NewNRGBA(img.Bounds())
		draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
		img = dst
	}
	return &MemoryImage{img: img}
}

// Image returns the wrapped image.
func (m *MemoryImage) Image() image.Image { return m.img }

func (m *MemoryImage) Width() int  { return m.img.Bounds().Dx() }
func (m *MemoryImage) Height() int { return m.img.Bounds().Dy() }

func (m *MemoryImage) Shared(x, y, w, h int) Image {
	o := m.img.Bounds().Min
	r := image.Rect(o.X+x, o.Y+y, o.X+x+w, o.Y+y+h)
	return &MemoryImage{img: m.img.(subImager).SubImage(r)}
}

func (m *MemoryImage) Lock() (image.Image, error) { return m.img, nil }
func (m *MemoryImage) Unlock()                    {}

// --- loaders ---

// EbitenLoader decodes spritesheets from an fs.FS into ebiten images.
type EbitenLoader struct {
	fsys  fs.FS
	cache map[string]*EbitenImage
}

// NewEbitenLoader returns a loader reading from fsys.
func NewEbitenLoader(fsys fs.FS) *EbitenLoader {
	return &EbitenLoader{fsys: fsys, cache: make(map[string]*EbitenImage)}
}

func (l *EbitenLoader) Load(name string) (Image, error) {
	name = path.Clean(name)
	if img, ok := l.cache[name]; ok {
		return img, nil
	}
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, errors.Wrapf(err, "sprite: loading image %s", name)
	}
	eimg, _, err := ebitenutil.NewImageFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "sprite: decoding image %s", name)
	}
	img := NewEbitenImage(eimg)
	l.cache[name] = img
	return img, nil
}

// Release deallocates every cached image. Frames of sprites loaded through
// l become unusable.
func (l *EbitenLoader) Release() {
	for name, img := range l.cache {
		img.img.Deallocate()
		delete(l.cache, name)
	}
}

// MemoryLoader decodes spritesheets from an fs.FS into memory images.
type MemoryLoader struct {
	fsys  fs.FS
	cache map[string]*MemoryImage
}

// NewMemoryLoader returns a loader reading from fsys.
func NewMemoryLoader(fsys fs.FS) *MemoryLoader {
	return &MemoryLoader{fsys: fsys, cache: make(map[string]*MemoryImage)}
}

func (l *MemoryLoader) Load(name string) (Image, error) {
	name = path.Clean(name)
	if img, ok := l.cache[name]; ok {
		return img, nil
	}
	if l.fsys == nil {
		return nil, errors.Errorf("sprite: loading image %s: no file system", name)
	}
	f, err := l.fsys.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "sprite: loading image %s", name)
	}
	defer f.Close()
	decoded, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "sprite: decoding image %s", name)
	}
	img := NewMemoryImage(decoded)
	l.cache[name] = img
	return img, nil
}

// Add registers an already decoded image under name, bypassing the file
// system. Tests and tools that generate sheets use it.
func (l *MemoryLoader) Add(name string, img image.Image) {
	l.cache[path.Clean(name)] = NewMemoryImage(img)
}

package sprite

import (
	"image"
	"image/color"
	"testing"
	"testing/fstest"
)

// plainImage has no SubImage method.
type plainImage struct{ r image.Rectangle }

func (p plainImage) ColorModel() color.Model { return color.NRGBAModel }
func (p plainImage) Bounds() image.Rectangle { return p.r }
func (p plainImage) At(x, y int) color.Color { return color.NRGBA{R: uint8(x), A: 0xff} }

func TestMemoryImageShared(t *testing.T) {
	img := NewMemoryImage(opaqueSheet(32, 16))
	if img.Width() != 32 || img.Height() != 16 {
		t.Fatalf("size = %dx%d", img.Width(), img.Height())
	}
	sub := img.Shared(8, 4, 8, 8).(*MemoryImage)
	if sub.Width() != 8 || sub.Height() != 8 {
		t.Errorf("sub size = %dx%d", sub.Width(), sub.Height())
	}
	// Nested sub-images are relative to their parent.
	nested := sub.Shared(2, 2, 4, 4).(*MemoryImage)
	if got := nested.Image().Bounds(); got != image.Rect(10, 6, 14, 10) {
		t.Errorf("nested bounds = %v", got)
	}
	px, err := nested.Lock()
	if err != nil {
		t.Fatal(err)
	}
	defer nested.Unlock()
	if c := color.NRGBAModel.Convert(px.At(10, 6)).(color.NRGBA); c.R != 10 || c.G != 6 {
		t.Errorf("pixel = %+v, want R=10 G=6", c)
	}
}

func TestNewMemoryImageCopiesPlainImages(t *testing.T) {
	img := NewMemoryImage(plainImage{r: image.Rect(0, 0, 4, 2)})
	if _, ok := img.Image().(*image.NRGBA); !ok {
		t.Fatalf("wrapped %T, want *image.NRGBA", img.Image())
	}
	sub := img.Shared(3, 0, 1, 1).(*MemoryImage)
	if c := color.NRGBAModel.Convert(sub.Image().At(3, 0)).(color.NRGBA); c.R != 3 {
		t.Errorf("copied pixel = %+v", c)
	}
}

func TestMemoryLoader(t *testing.T) {
	fsys := fstest.MapFS{
		"a/sheet.png": {Data: encodePNG(t, opaqueSheet(6, 3))},
		"a/junk.png":  {Data: []byte("not an image")},
	}
	l := NewMemoryLoader(fsys)

	first, err := l.Load("a/sheet.png")
	if err != nil {
		t.Fatal(err)
	}
	if first.Width() != 6 || first.Height() != 3 {
		t.Errorf("size = %dx%d", first.Width(), first.Height())
	}
	again, _ := l.Load("a/../a/./sheet.png")
	if again != first {
		t.Error("cleaned path should hit the cache")
	}

	if _, err := l.Load("a/junk.png"); err == nil {
		t.Error("decoding junk should fail")
	}
	if _, err := l.Load("a/missing.png"); err == nil {
		t.Error("missing file should fail")
	}

	l.Add("generated.png", opaqueSheet(2, 2))
	if img, err := l.Load("./generated.png"); err != nil || img.Width() != 2 {
		t.Errorf("added image: %v, %v", img, err)
	}
}

func TestMemoryLoaderWithoutFS(t *testing.T) {
	l := NewMemoryLoader(nil)
	if _, err := l.Load("sheet.png"); err == nil {
		t.Error("loading without a file system should fail")
	}
}

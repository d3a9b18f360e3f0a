package texture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPNGRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tex.png")

	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	src.SetNRGBA(1, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	c := got.NRGBAAt(1, 2)
	if c.R != 10 || c.G != 20 || c.B != 30 || c.A != 255 {
		t.Errorf("pixel = %+v, want {10 20 30 255}", c)
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	if _, err := Load("garment.bmp"); err == nil {
		t.Fatal("unsupported extension accepted")
	}
}

func TestToNRGBAForcesOpaqueForGray(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 2, 2))
	g.SetGray(0, 0, color.Gray{Y: 128})
	out := ToNRGBA(g)
	if a := out.NRGBAAt(0, 0).A; a != 255 {
		t.Errorf("alpha = %d, want 255", a)
	}
}

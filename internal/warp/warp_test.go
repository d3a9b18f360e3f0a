package warp

import (
	"image"
	"testing"

	"pose-warp/internal/geom"
)

// gradientImage builds a 20x20 opaque texture whose channels encode
// the pixel coordinates.
func gradientImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i] = uint8(x * 10)
			img.Pix[i+1] = uint8(y * 10)
			img.Pix[i+2] = 100
			img.Pix[i+3] = 255
		}
	}
	return img
}

func squareMesh() ([][3]int, []geom.Point) {
	pts := []geom.Point{{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 20, Y: 20}, {X: 0, Y: 20}}
	return [][3]int{{0, 1, 2}, {0, 2, 3}}, pts
}

func TestRemapIdentity(t *testing.T) {
	src := gradientImage()
	tris, pts := squareMesh()

	out := Remap(src, tris, pts, pts, 20, 20)

	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			si := src.PixOffset(x, y)
			di := out.PixOffset(x, y)
			if out.Pix[di+3] != 255 {
				t.Fatalf("pixel (%d,%d) uncovered", x, y)
			}
			for c := 0; c < 3; c++ {
				if out.Pix[di+c] != src.Pix[si+c] {
					t.Fatalf("pixel (%d,%d) channel %d = %d, want %d",
						x, y, c, out.Pix[di+c], src.Pix[si+c])
				}
			}
		}
	}
}

func TestRemapTranslation(t *testing.T) {
	src := gradientImage()
	tris, pts := squareMesh()
	shift := geom.Point{X: 5, Y: 3}
	moved := make([]geom.Point, len(pts))
	for i, p := range pts {
		moved[i] = p.Add(shift)
	}

	out := Remap(src, tris, pts, moved, 30, 30)

	// Interior of the shifted square must reproduce the source.
	for y := 4; y < 22; y++ {
		for x := 6; x < 24; x++ {
			si := src.PixOffset(x-5, y-3)
			di := out.PixOffset(x, y)
			if out.Pix[di+3] != 255 {
				t.Fatalf("pixel (%d,%d) uncovered", x, y)
			}
			if out.Pix[di] != src.Pix[si] || out.Pix[di+1] != src.Pix[si+1] {
				t.Fatalf("pixel (%d,%d) = (%d,%d), want (%d,%d)",
					x, y, out.Pix[di], out.Pix[di+1], src.Pix[si], src.Pix[si+1])
			}
		}
	}

	// Far corner outside the warped region stays transparent.
	if a := out.Pix[out.PixOffset(0, 29)+3]; a != 0 {
		t.Errorf("pixel outside warped mesh has alpha %d", a)
	}
}

func TestRemapFirstTriangleClaimsSeam(t *testing.T) {
	// Left half red, right half blue.
	src := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			i := src.PixOffset(x, y)
			if x < 10 {
				src.Pix[i] = 255
			} else {
				src.Pix[i+2] = 255
			}
			src.Pix[i+3] = 255
		}
	}

	// Two triangles mapped onto the same deformed area: the first
	// samples the red region, the second the blue region.
	orig := []geom.Point{
		{X: 0, Y: 0}, {X: 9, Y: 0}, {X: 0, Y: 9},
		{X: 11, Y: 0}, {X: 19, Y: 0}, {X: 11, Y: 9},
	}
	deformed := []geom.Point{
		{X: 0, Y: 0}, {X: 9, Y: 0}, {X: 0, Y: 9},
		{X: 0, Y: 0}, {X: 9, Y: 0}, {X: 0, Y: 9},
	}
	tris := [][3]int{{0, 1, 2}, {3, 4, 5}}

	out := Remap(src, tris, orig, deformed, 20, 20)

	i := out.PixOffset(2, 2)
	if out.Pix[i] < 200 || out.Pix[i+2] > 50 {
		t.Errorf("overlap pixel = (%d,%d,%d), want the first triangle's red",
			out.Pix[i], out.Pix[i+1], out.Pix[i+2])
	}
}

func TestRemapSkipsDegenerateTriangle(t *testing.T) {
	src := gradientImage()
	orig := []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 8}}
	// Deformed corners are collinear.
	deformed := []geom.Point{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: 10, Y: 10}}

	out := Remap(src, [][3]int{{0, 1, 2}}, orig, deformed, 20, 20)
	for i := 3; i < len(out.Pix); i += 4 {
		if out.Pix[i] != 0 {
			t.Fatal("degenerate triangle painted pixels")
		}
	}
}

func TestReflect(t *testing.T) {
	cases := []struct{ i, n, want int }{
		{0, 10, 0},
		{9, 10, 9},
		{-1, 10, 1},
		{10, 10, 8},
		{-3, 10, 3},
		{19, 10, 1},
		{5, 1, 0},
	}
	for _, tc := range cases {
		if got := reflect(tc.i, tc.n); got != tc.want {
			t.Errorf("reflect(%d, %d) = %d, want %d", tc.i, tc.n, got, tc.want)
		}
	}
}

func TestSampleReflectBorders(t *testing.T) {
	src := gradientImage()
	// Sampling just outside the image must mirror interior texels,
	// never darken toward zero.
	r, _, _, a := SampleReflect(src, -0.5, 5)
	if a != 255 {
		t.Fatalf("alpha = %d, want 255", a)
	}
	if r > 10 {
		t.Errorf("reflected border sample r = %d, want near column 0", r)
	}
}

package mesh

import (
	"errors"
	"math"
	"testing"

	"pose-warp/internal/geom"
)

func square10() geom.Polygon {
	return geom.Polygon{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
}

func totalArea(tris []Triangle) float64 {
	var sum float64
	for _, t := range tris {
		sum += t.Area()
	}
	return sum
}

func TestTriangulateSquare(t *testing.T) {
	boundary := square10()
	handles := []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}

	tris, err := Triangulate(boundary, handles, 2)
	if err != nil {
		t.Fatalf("Triangulate: %v", err)
	}
	if len(tris) < 4 {
		t.Fatalf("got %d triangles, want >= 4", len(tris))
	}

	// The square is convex, so the triangles must tile it exactly.
	if a := totalArea(tris); math.Abs(a-100) > 1e-6 {
		t.Errorf("total area = %v, want 100", a)
	}

	// Every handle must appear verbatim as a triangle corner.
	for _, h := range handles {
		found := false
		for _, tri := range tris {
			for _, c := range tri {
				if c.Dist(h) < 1e-9 {
					found = true
				}
			}
		}
		if !found {
			t.Errorf("handle %v is not a mesh vertex", h)
		}
	}
}

func TestTriangulateConcave(t *testing.T) {
	// L-shape: 10x10 square minus its 5x5 top-right quadrant.
	boundary := geom.Polygon{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5},
		{X: 5, Y: 5}, {X: 5, Y: 10}, {X: 0, Y: 10},
	}
	tris, err := Triangulate(boundary, nil, 8)
	if err != nil {
		t.Fatalf("Triangulate: %v", err)
	}

	// Centroid filtering carves the notch out of the Delaunay hull;
	// the tiled area must track the polygon area within sampling
	// tolerance.
	want := boundary.Area()
	if a := totalArea(tris); math.Abs(a-want) > want*0.1 {
		t.Errorf("total area = %v, want ~%v", a, want)
	}

	// No triangle centroid may sit inside the notch.
	for _, tri := range tris {
		c := tri.Centroid()
		if c.X > 5.001 && c.Y > 5.001 {
			t.Errorf("triangle centroid %v inside the notch", c)
		}
	}
}

func TestTriangulateInvalidBoundary(t *testing.T) {
	cases := []struct {
		name     string
		boundary geom.Polygon
		segments int
	}{
		{"too few points", geom.Polygon{{X: 0, Y: 0}, {X: 1, Y: 1}}, 4},
		{"zero area", geom.Polygon{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: 10, Y: 10}}, 4},
		{"bad segment count", square10(), 0},
	}
	for _, tc := range cases {
		_, err := Triangulate(tc.boundary, nil, tc.segments)
		if !errors.Is(err, ErrInvalidBoundary) {
			t.Errorf("%s: err = %v, want ErrInvalidBoundary", tc.name, err)
		}
	}
}

func TestTriangulateDeterministic(t *testing.T) {
	boundary := square10()
	a, err := Triangulate(boundary, nil, 3)
	if err != nil {
		t.Fatalf("Triangulate: %v", err)
	}
	b, err := Triangulate(boundary, nil, 3)
	if err != nil {
		t.Fatalf("Triangulate: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("triangle counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		for k := 0; k < 3; k++ {
			if a[i][k] != b[i][k] {
				t.Fatalf("triangle %d differs between runs", i)
			}
		}
	}
}

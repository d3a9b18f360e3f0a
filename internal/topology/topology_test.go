package topology

import (
	"errors"
	"testing"

	"pose-warp/internal/geom"
	"pose-warp/internal/mesh"
)

// twoTriangleSquare is the unit square split along its diagonal.
func twoTriangleSquare() []mesh.Triangle {
	a := geom.Point{X: 0, Y: 0}
	b := geom.Point{X: 1, Y: 0}
	c := geom.Point{X: 1, Y: 1}
	d := geom.Point{X: 0, Y: 1}
	return []mesh.Triangle{{a, b, c}, {a, c, d}}
}

func TestIndexAssignsStableIDs(t *testing.T) {
	topo, err := Index(twoTriangleSquare())
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if len(topo.Mesh.Vertices) != 4 {
		t.Fatalf("got %d vertices, want 4", len(topo.Mesh.Vertices))
	}
	// First-seen order: a, b, c from the first triangle, d from the second.
	want := []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	for i, w := range want {
		if topo.Mesh.Vertices[i].Dist(w) > 1e-12 {
			t.Errorf("vertex %d = %v, want %v", i, topo.Mesh.Vertices[i], w)
		}
	}
	if len(topo.Edges) != 5 {
		t.Fatalf("got %d edges, want 5", len(topo.Edges))
	}
}

func TestIndexMergesNearbyCoordinates(t *testing.T) {
	tris := twoTriangleSquare()
	// Perturb the shared corner below the canonicalization tolerance.
	tris[1][0].X += 1e-9
	topo, err := Index(tris)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if len(topo.Mesh.Vertices) != 4 {
		t.Errorf("perturbed corner split: %d vertices, want 4", len(topo.Mesh.Vertices))
	}
}

func TestNeighborhoodSizes(t *testing.T) {
	topo, err := Index(twoTriangleSquare())
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	interior := 0
	for i, nb := range topo.Neighborhoods {
		switch nb.Kind {
		case BoundaryEdge:
			if nb.Size() != 3 || nb.Verts[3] != -1 {
				t.Errorf("edge %d: malformed boundary neighborhood %+v", i, nb)
			}
		case InteriorEdge:
			interior++
			if nb.Size() != 4 || nb.Verts[3] < 0 {
				t.Errorf("edge %d: malformed interior neighborhood %+v", i, nb)
			}
		}
		// Endpoints always lead the neighborhood.
		e := topo.Edges[i]
		if nb.Verts[0] != e.I || nb.Verts[1] != e.J {
			t.Errorf("edge %d: neighborhood endpoints %v, want %v", i, nb.Verts[:2], e)
		}
	}
	if interior != 1 {
		t.Errorf("got %d interior edges, want 1 (the diagonal)", interior)
	}
}

func TestEveryTriangleEdgePresent(t *testing.T) {
	tris, err := mesh.Triangulate(
		geom.Polygon{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
		nil, 3)
	if err != nil {
		t.Fatalf("Triangulate: %v", err)
	}
	topo, err := Index(tris)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	edgeSet := make(map[Edge]bool)
	for _, e := range topo.Edges {
		edgeSet[e] = true
	}
	for ti, tri := range topo.Mesh.Triangles {
		for k := 0; k < 3; k++ {
			e := Edge{I: tri[k], J: tri[(k+1)%3]}
			if e.I > e.J {
				e.I, e.J = e.J, e.I
			}
			if !edgeSet[e] {
				t.Errorf("triangle %d edge %v missing from edge set", ti, e)
			}
		}
	}
}

func TestIndexRejectsDegenerateTriangle(t *testing.T) {
	a := geom.Point{X: 0, Y: 0}
	b := geom.Point{X: 1, Y: 0}
	_, err := Index([]mesh.Triangle{{a, b, a}})
	if !errors.Is(err, ErrTopologyFault) {
		t.Fatalf("err = %v, want ErrTopologyFault", err)
	}
}

func TestIndexRejectsOverSharedEdge(t *testing.T) {
	a := geom.Point{X: 0, Y: 0}
	b := geom.Point{X: 2, Y: 0}
	// Three triangles all sharing edge a-b.
	tris := []mesh.Triangle{
		{a, b, geom.Point{X: 1, Y: 1}},
		{a, b, geom.Point{X: 1, Y: -1}},
		{a, b, geom.Point{X: 1, Y: 2}},
	}
	_, err := Index(tris)
	if !errors.Is(err, ErrTopologyFault) {
		t.Fatalf("err = %v, want ErrTopologyFault", err)
	}
}

func TestFindVertex(t *testing.T) {
	topo, err := Index(twoTriangleSquare())
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	id, ok := topo.FindVertex(geom.Point{X: 1, Y: 1})
	if !ok || id != 2 {
		t.Errorf("FindVertex(1,1) = %d, %v; want 2, true", id, ok)
	}
	if _, ok := topo.FindVertex(geom.Point{X: 5, Y: 5}); ok {
		t.Error("FindVertex reported a vertex that does not exist")
	}
}

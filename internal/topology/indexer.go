// Package topology assigns stable integer vertex ids to a raw triangle
// soup and derives the deduplicated edge set with per-edge vertex
// neighborhoods. Everything downstream (rigidity factors, deformation,
// texture remapping) addresses vertices by these ids.
package topology

import (
	"errors"
	"fmt"
	"math"

	"pose-warp/internal/geom"
	"pose-warp/internal/mesh"
)

// ErrTopologyFault reports a malformed or non-manifold triangulation:
// degenerate triangles, or an edge shared by more than two triangles.
var ErrTopologyFault = errors.New("topology fault")

// coordTol is the coordinate canonicalization tolerance. Two points
// closer than this along both axes collapse into one vertex id.
const coordTol = 1e-6

// Mesh is the indexed form: vertices with ids 0..N-1 in first-seen
// order and triangles as id triples.
type Mesh struct {
	Vertices  []geom.Point
	Triangles [][3]int
}

// Edge is an undirected vertex pair with I < J.
type Edge struct {
	I, J int
}

// EdgeKind tags the two neighborhood shapes an edge can have.
type EdgeKind uint8

const (
	// BoundaryEdge belongs to a single triangle: neighborhood of 3.
	BoundaryEdge EdgeKind = iota
	// InteriorEdge is shared by two triangles: neighborhood of 4.
	InteriorEdge
)

// Neighborhood holds the vertices surrounding one edge: the endpoints
// first, then the opposing wing vertex of each adjacent triangle.
// Verts[3] is -1 for a boundary edge.
type Neighborhood struct {
	Kind  EdgeKind
	Verts [4]int
}

// Size returns the number of vertices in the neighborhood: 3 or 4.
func (n Neighborhood) Size() int {
	if n.Kind == InteriorEdge {
		return 4
	}
	return 3
}

// Topology is the immutable indexed mesh shared by all frames.
type Topology struct {
	Mesh          Mesh
	Edges         []Edge
	Neighborhoods []Neighborhood // parallel to Edges

	ids map[coordKey]int
}

type coordKey struct {
	x, y int64
}

func keyOf(p geom.Point) coordKey {
	return coordKey{
		x: int64(math.Round(p.X / coordTol)),
		y: int64(math.Round(p.Y / coordTol)),
	}
}

// Index builds the topology from a raw triangle list. Vertex ids are
// assigned in first-seen order over the triangles; coordinates are
// canonicalized by rounding with coordTol so float noise cannot split
// one vertex into several ids.
func Index(tris []mesh.Triangle) (*Topology, error) {
	if len(tris) == 0 {
		return nil, fmt.Errorf("topology: empty triangle list: %w", ErrTopologyFault)
	}

	t := &Topology{ids: make(map[coordKey]int)}

	for ti, tri := range tris {
		var ids [3]int
		for k, p := range tri {
			key := keyOf(p)
			id, ok := t.ids[key]
			if !ok {
				id = len(t.Mesh.Vertices)
				t.ids[key] = id
				t.Mesh.Vertices = append(t.Mesh.Vertices, p)
			}
			ids[k] = id
		}
		if ids[0] == ids[1] || ids[1] == ids[2] || ids[0] == ids[2] {
			return nil, fmt.Errorf("topology: degenerate triangle %d: %w", ti, ErrTopologyFault)
		}
		t.Mesh.Triangles = append(t.Mesh.Triangles, ids)
	}

	// Dedup edges, keeping first-seen order, and record each adjacent
	// triangle's opposing vertex.
	type adj struct {
		wings [2]int
		count int
	}
	seen := make(map[Edge]*adj)
	for _, tri := range t.Mesh.Triangles {
		for k := 0; k < 3; k++ {
			a, b := tri[k], tri[(k+1)%3]
			opp := tri[(k+2)%3]
			e := Edge{I: a, J: b}
			if e.I > e.J {
				e.I, e.J = e.J, e.I
			}
			ad, ok := seen[e]
			if !ok {
				ad = &adj{wings: [2]int{-1, -1}}
				seen[e] = ad
				t.Edges = append(t.Edges, e)
			}
			if ad.count >= 2 {
				return nil, fmt.Errorf("topology: edge %d-%d in more than two triangles: %w", e.I, e.J, ErrTopologyFault)
			}
			ad.wings[ad.count] = opp
			ad.count++
		}
	}

	t.Neighborhoods = make([]Neighborhood, len(t.Edges))
	for i, e := range t.Edges {
		ad := seen[e]
		nb := Neighborhood{Verts: [4]int{e.I, e.J, ad.wings[0], -1}}
		if ad.count == 2 {
			nb.Kind = InteriorEdge
			nb.Verts[3] = ad.wings[1]
		}
		t.Neighborhoods[i] = nb
	}
	return t, nil
}

// FindVertex resolves a coordinate to its vertex id through the same
// canonicalization Index used. Handle points injected into the mesh
// resolve exactly.
func (t *Topology) FindVertex(p geom.Point) (int, bool) {
	id, ok := t.ids[keyOf(p)]
	return id, ok
}

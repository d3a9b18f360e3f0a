// Package mesh triangulates a garment boundary polygon into the point
// set and triangle list the deformation rig is built from.
package mesh

import (
	"errors"
	"fmt"
	"math"

	"pose-warp/internal/geom"
)

// ErrInvalidBoundary reports reference geometry the builder cannot
// triangulate: fewer than three vertices, zero/negative area, or a
// non-positive segment count.
var ErrInvalidBoundary = errors.New("invalid boundary")

// Triangle is one triangle of the built mesh as raw coordinates.
// Identity assignment happens later in the topology indexer.
type Triangle [3]geom.Point

// Centroid returns the triangle's barycenter.
func (t Triangle) Centroid() geom.Point {
	return geom.Point{
		X: (t[0].X + t[1].X + t[2].X) / 3,
		Y: (t[0].Y + t[1].Y + t[2].Y) / 3,
	}
}

// Area returns the triangle's absolute area.
func (t Triangle) Area() float64 {
	return math.Abs(t[1].Sub(t[0]).Cross(t[2].Sub(t[0]))) / 2
}

// Triangulate meshes the interior of a simple polygon boundary.
//
// The point set is the boundary resampled to roughly spacing-length
// segments, an interior lattice with alternating rows offset by half a
// spacing, and the handle points injected verbatim so each handle is an
// exact mesh vertex. spacing = max(width, height) / segments.
// Triangles whose centroid falls outside the polygon are discarded,
// which carves concave regions out of the Delaunay hull.
func Triangulate(boundary geom.Polygon, handles []geom.Point, segments int) ([]Triangle, error) {
	if len(boundary) < 3 {
		return nil, fmt.Errorf("mesh: %d boundary points: %w", len(boundary), ErrInvalidBoundary)
	}
	if boundary.Area() < 1e-9 {
		return nil, fmt.Errorf("mesh: zero-area boundary: %w", ErrInvalidBoundary)
	}
	if segments < 1 {
		return nil, fmt.Errorf("mesh: segment count %d: %w", segments, ErrInvalidBoundary)
	}

	min, max := boundary.Bounds()
	span := max.X - min.X
	if dy := max.Y - min.Y; dy > span {
		span = dy
	}
	spacing := span / float64(segments)

	pts := []geom.Point(boundary.Resample(spacing))

	// Handles become exact vertices. Skip any that already coincide
	// with a boundary sample.
	for _, h := range handles {
		dup := false
		for _, p := range pts {
			if p.Dist(h) < 1e-6 {
				dup = true
				break
			}
		}
		if !dup {
			pts = append(pts, h)
		}
	}
	nFixed := len(pts)

	// Staggered interior lattice. Points hugging the boundary or a
	// handle are dropped to avoid sliver triangles.
	rows := int(math.Ceil((max.Y - min.Y) / spacing))
	cols := int(math.Ceil((max.X-min.X)/spacing)) + 1
	for j := 0; j <= rows; j++ {
		y := min.Y + float64(j)*spacing
		offset := 0.0
		if j%2 == 1 {
			offset = spacing / 2
		}
		for i := 0; i <= cols; i++ {
			p := geom.Point{X: min.X + float64(i)*spacing + offset, Y: y}
			if !boundary.Contains(p) {
				continue
			}
			if boundary.DistToBoundary(p) < spacing/4 {
				continue
			}
			near := false
			for _, f := range pts[:nFixed] {
				if p.Dist(f) < spacing/2 {
					near = true
					break
				}
			}
			if !near {
				pts = append(pts, p)
			}
		}
	}

	tris := delaunay(pts)

	out := make([]Triangle, 0, len(tris))
	for _, t := range tris {
		tri := Triangle{pts[t[0]], pts[t[1]], pts[t[2]]}
		if tri.Area() < 1e-9 {
			continue
		}
		if boundary.Contains(tri.Centroid()) {
			out = append(out, tri)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("mesh: triangulation produced no interior triangles: %w", ErrInvalidBoundary)
	}
	return out, nil
}

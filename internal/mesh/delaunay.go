package mesh

import (
	"math"

	"pose-warp/internal/geom"
)

type tri [3]int

// delaunay runs incremental Bowyer–Watson triangulation over the point
// set and returns triangles as index triples into pts. The result
// covers the convex hull; the caller filters against the boundary.
func delaunay(pts []geom.Point) []tri {
	n := len(pts)
	if n < 3 {
		return nil
	}

	// Super-triangle generously enclosing every point. Its three
	// vertices are appended after the real points and filtered out at
	// the end.
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	d := math.Max(maxX-minX, maxY-minY)
	if d == 0 {
		return nil
	}
	midX, midY := (minX+maxX)/2, (minY+maxY)/2

	all := make([]geom.Point, n, n+3)
	copy(all, pts)
	all = append(all,
		geom.Point{X: midX - 20*d, Y: midY - d},
		geom.Point{X: midX, Y: midY + 20*d},
		geom.Point{X: midX + 20*d, Y: midY - d},
	)

	triangles := []tri{{n, n + 1, n + 2}}

	for pi := 0; pi < n; pi++ {
		p := all[pi]

		// Triangles whose circumcircle contains the new point. The
		// test is epsilon-inclusive so cocircular lattice points
		// resolve into one deterministic cavity instead of leaving
		// slivers behind.
		var bad []int
		for ti, t := range triangles {
			if inCircumcircle(p, all[t[0]], all[t[1]], all[t[2]]) {
				bad = append(bad, ti)
			}
		}

		// Boundary of the cavity: edges used by exactly one bad
		// triangle. Order of first encounter is kept so the output
		// triangle order is deterministic.
		edgeCount := make(map[[2]int]int)
		var edgeOrder [][2]int
		for _, ti := range bad {
			t := triangles[ti]
			for k := 0; k < 3; k++ {
				a, b := t[k], t[(k+1)%3]
				if a > b {
					a, b = b, a
				}
				e := [2]int{a, b}
				if edgeCount[e] == 0 {
					edgeOrder = append(edgeOrder, e)
				}
				edgeCount[e]++
			}
		}

		// Drop bad triangles.
		kept := triangles[:0]
		badSet := make(map[int]bool, len(bad))
		for _, ti := range bad {
			badSet[ti] = true
		}
		for ti, t := range triangles {
			if !badSet[ti] {
				kept = append(kept, t)
			}
		}
		triangles = kept

		// Re-triangulate the cavity as a fan from the new point.
		for _, e := range edgeOrder {
			if edgeCount[e] == 1 {
				triangles = append(triangles, tri{e[0], e[1], pi})
			}
		}
	}

	// Strip triangles touching the super-triangle.
	out := triangles[:0]
	for _, t := range triangles {
		if t[0] < n && t[1] < n && t[2] < n {
			out = append(out, t)
		}
	}
	return out
}

// inCircumcircle reports whether p lies inside (or numerically on) the
// circumcircle of triangle abc.
func inCircumcircle(p, a, b, c geom.Point) bool {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if math.Abs(d) < 1e-12 {
		return false
	}
	aa := a.X*a.X + a.Y*a.Y
	bb := b.X*b.X + b.Y*b.Y
	cc := c.X*c.X + c.Y*c.Y
	ux := (aa*(b.Y-c.Y) + bb*(c.Y-a.Y) + cc*(a.Y-b.Y)) / d
	uy := (aa*(c.X-b.X) + bb*(a.X-c.X) + cc*(b.X-a.X)) / d
	r2 := (ux-a.X)*(ux-a.X) + (uy-a.Y)*(uy-a.Y)
	d2 := (ux-p.X)*(ux-p.X) + (uy-p.Y)*(uy-p.Y)
	return d2 <= r2+1e-9
}

package geom

import "math"

// Polygon is a closed simple polygon given as an ordered vertex ring.
// The closing edge from the last vertex back to the first is implicit.
type Polygon []Point

// SignedArea returns the shoelace area. Positive for counter-clockwise rings.
func (pg Polygon) SignedArea() float64 {
	n := len(pg)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += pg[i].X*pg[j].Y - pg[j].X*pg[i].Y
	}
	return sum / 2
}

// Area returns the absolute enclosed area.
func (pg Polygon) Area() float64 {
	return math.Abs(pg.SignedArea())
}

// Bounds returns the axis-aligned bounding box.
func (pg Polygon) Bounds() (min, max Point) {
	min = Point{math.Inf(1), math.Inf(1)}
	max = Point{math.Inf(-1), math.Inf(-1)}
	for _, p := range pg {
		if p.X < min.X {
			min.X = p.X
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// Contains reports whether p lies inside the polygon (even-odd rule).
// Points exactly on an edge are not reliably classified; callers that
// care use DistToBoundary as a guard.
func (pg Polygon) Contains(p Point) bool {
	n := len(pg)
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := pg[i], pg[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// DistToBoundary returns the distance from p to the nearest polygon edge.
func (pg Polygon) DistToBoundary(p Point) float64 {
	n := len(pg)
	min := math.Inf(1)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if d := distToSegment(p, pg[i], pg[j]); d < min {
			min = d
		}
	}
	return min
}

// Resample subdivides every edge into segments of at most the given
// spacing, keeping all original vertices. Coarse input boundaries would
// otherwise produce long edges and degenerate sliver triangles.
func (pg Polygon) Resample(spacing float64) Polygon {
	n := len(pg)
	if n < 3 || spacing <= 0 {
		return pg
	}
	out := make(Polygon, 0, n*2)
	for i := 0; i < n; i++ {
		a := pg[i]
		b := pg[(i+1)%n]
		out = append(out, a)
		length := a.Dist(b)
		steps := int(math.Ceil(length / spacing))
		for k := 1; k < steps; k++ {
			t := float64(k) / float64(steps)
			out = append(out, Point{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t})
		}
	}
	return out
}

func distToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Dist(a)
	}
	t := p.Sub(a).Dot(ab) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Dist(a.Add(ab.Scale(t)))
}

package geom

import "math"

// Point is a 2D point (value type, stack-allocated).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (a Point) Add(b Point) Point {
	return Point{a.X + b.X, a.Y + b.Y}
}

func (a Point) Sub(b Point) Point {
	return Point{a.X - b.X, a.Y - b.Y}
}

func (p Point) Scale(s float64) Point {
	return Point{p.X * s, p.Y * s}
}

func (a Point) Dot(b Point) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Cross returns the z-component of the 2D cross product.
func (a Point) Cross(b Point) float64 {
	return a.X*b.Y - a.Y*b.X
}

func (p Point) Len() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

func (a Point) Dist(b Point) float64 {
	return a.Sub(b).Len()
}

// Package warp remaps a source texture triangle-by-triangle from its
// original mesh positions onto deformed positions.
package warp

import (
	"image"
	"math"

	"pose-warp/internal/geom"
	"pose-warp/internal/mathutil"
)

// Remap warps src onto a width×height canvas. For each triangle the
// unique affine map from its deformed corners back to its original
// (texture-space) corners is derived, a coverage mask is rasterized
// for the integer-rounded deformed triangle, and masked pixels are
// filled by sampling src through the map.
//
// Seam policy: every canvas pixel is claimed by exactly one triangle;
// the first triangle in list order to cover a pixel wins and later
// triangles skip it. Degenerate deformed triangles are skipped whole.
func Remap(src *image.NRGBA, tris [][3]int, orig, deformed []geom.Point, width, height int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	claimed := make([]bool, width*height)

	for _, tri := range tris {
		warpTriangle(dst, claimed, src, tri, orig, deformed)
	}
	return dst
}

// warpTriangle rasterizes one deformed triangle into dst.
//
// This is the HOT PATH — designed for zero allocation in the inner loop.
func warpTriangle(dst *image.NRGBA, claimed []bool, src *image.NRGBA, tri [3]int, orig, deformed []geom.Point) {
	nv := len(deformed)
	for _, i := range tri {
		if i < 0 || i >= nv || i >= len(orig) {
			return
		}
	}

	d0, d1, d2 := deformed[tri[0]], deformed[tri[1]], deformed[tri[2]]
	o0, o1, o2 := orig[tri[0]], orig[tri[1]], orig[tri[2]]

	// Affine map deformed→original: rows [x, y, 1] of the deformed
	// corners against each original coordinate axis.
	a := mathutil.Mat3{
		d0.X, d0.Y, 1,
		d1.X, d1.Y, 1,
		d2.X, d2.Y, 1,
	}
	inv, ok := a.Inverse()
	if !ok {
		// Deformed triangle collapsed to a line or point.
		return
	}
	cx := inv.MulVec([3]float64{o0.X, o1.X, o2.X})
	cy := inv.MulVec([3]float64{o0.Y, o1.Y, o2.Y})

	// Coverage mask over the integer-rounded deformed triangle.
	x0 := math.Round(d0.X)
	y0 := math.Round(d0.Y)
	x1 := math.Round(d1.X)
	y1 := math.Round(d1.Y)
	x2 := math.Round(d2.X)
	y2 := math.Round(d2.Y)

	w := dst.Rect.Dx()
	h := dst.Rect.Dy()
	minX := int(math.Min(math.Min(x0, x1), x2))
	maxX := int(math.Max(math.Max(x0, x1), x2))
	minY := int(math.Min(math.Min(y0, y1), y2))
	maxY := int(math.Max(math.Max(y0, y1), y2))
	if minX < 0 {
		minX = 0
	}
	if maxX > w-1 {
		maxX = w - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY > h-1 {
		maxY = h - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup on the rounded corners.
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det
	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	stride := dst.Stride
	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) - y2
		rowOff := sy * w
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			mIdx := rowOff + sx
			if claimed[mIdx] {
				continue
			}
			claimed[mIdx] = true

			fx := float64(sx)
			fy := float64(sy)
			u := cx[0]*fx + cx[1]*fy + cx[2]
			v := cy[0]*fx + cy[1]*fy + cy[2]
			cr, cg, cb, ca := SampleReflect(src, u, v)

			pxIdx := sy*stride + sx*4
			dst.Pix[pxIdx] = cr
			dst.Pix[pxIdx+1] = cg
			dst.Pix[pxIdx+2] = cb
			dst.Pix[pxIdx+3] = ca
		}
	}
}

package warp

import "image"

// SampleReflect performs bilinear filtering with reflected borders.
// Reflection instead of clamping or wrapping keeps patch edges from
// pulling in black and producing dark seams between triangles.
// Returns RGBA as uint8. Accesses tex.Pix directly for performance.
func SampleReflect(tex *image.NRGBA, x, y float64) (r, g, b, a uint8) {
	w := tex.Rect.Dx()
	h := tex.Rect.Dy()

	x0 := int(fastFloor(x))
	y0 := int(fastFloor(y))
	dx := x - float64(x0)
	dy := y - float64(y0)

	ix0 := reflect(x0, w)
	ix1 := reflect(x0+1, w)
	iy0 := reflect(y0, h)
	iy1 := reflect(y0+1, h)

	stride := tex.Stride
	pix := tex.Pix

	// Four texels
	i00 := iy0*stride + ix0*4
	i10 := iy0*stride + ix1*4
	i01 := iy1*stride + ix0*4
	i11 := iy1*stride + ix1*4

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	fr := float64(pix[i00])*w00 + float64(pix[i10])*w10 + float64(pix[i01])*w01 + float64(pix[i11])*w11
	fg := float64(pix[i00+1])*w00 + float64(pix[i10+1])*w10 + float64(pix[i01+1])*w01 + float64(pix[i11+1])*w11
	fb := float64(pix[i00+2])*w00 + float64(pix[i10+2])*w10 + float64(pix[i01+2])*w01 + float64(pix[i11+2])*w11
	fa := float64(pix[i00+3])*w00 + float64(pix[i10+3])*w10 + float64(pix[i01+3])*w01 + float64(pix[i11+3])*w11

	return uint8(fr + 0.5), uint8(fg + 0.5), uint8(fb + 0.5), uint8(fa + 0.5)
}

// reflect folds an out-of-range index back into [0, n).
func reflect(i, n int) int {
	if n <= 1 {
		return 0
	}
	period := 2*n - 2
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - i
	}
	return i
}

func fastFloor(v float64) float64 {
	f := float64(int(v))
	if v < f {
		f--
	}
	return f
}

package postprocess

import "image"

// FillPinholes closes isolated transparent pixels inside the warped
// region. Integer rounding of triangle corners can leave single-pixel
// gaps along seams; a transparent pixel with at least minNeighbors
// opaque 8-neighbors is filled with their average color.
func FillPinholes(img *image.NRGBA) *image.NRGBA {
	const minNeighbors = 6

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	stride := img.Stride

	out := image.NewNRGBA(b)
	copy(out.Pix, img.Pix)

	dx := [8]int{-1, 0, 1, -1, 1, -1, 0, 1}
	dy := [8]int{-1, -1, -1, 0, 0, 1, 1, 1}

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*stride + x*4
			if img.Pix[i+3] != 0 {
				continue
			}
			var sumR, sumG, sumB, sumA, count int
			for k := 0; k < 8; k++ {
				ni := (y+dy[k])*stride + (x+dx[k])*4
				if img.Pix[ni+3] == 0 {
					continue
				}
				count++
				sumR += int(img.Pix[ni])
				sumG += int(img.Pix[ni+1])
				sumB += int(img.Pix[ni+2])
				sumA += int(img.Pix[ni+3])
			}
			if count >= minNeighbors {
				out.Pix[i] = uint8(sumR / count)
				out.Pix[i+1] = uint8(sumG / count)
				out.Pix[i+2] = uint8(sumB / count)
				out.Pix[i+3] = uint8(sumA / count)
			}
		}
	}
	return out
}

package service

import (
	"image"

	"pdf-workbench/internal/domain"
)

// ComputeDiffMask compares two bitmaps over their shared top-left area
// (min width × min height). A pixel differs when any of its R, G or B
// channels differs by more than threshold. Alpha is ignored.
func ComputeDiffMask(left, right *image.RGBA, threshold uint8) *domain.DiffMask {
	lb, rb := left.Bounds(), right.Bounds()
	width := min(lb.Dx(), rb.Dx())
	height := min(lb.Dy(), rb.Dy())
	mask := domain.NewDiffMask(width, height)

	t := int(threshold)
	for y := 0; y < height; y++ {
		lo := left.PixOffset(lb.Min.X, lb.Min.Y+y)
		ro := right.PixOffset(rb.Min.X, rb.Min.Y+y)
		for x := 0; x < width; x++ {
			l := left.Pix[lo+x*4 : lo+x*4+3 : lo+x*4+3]
			r := right.Pix[ro+x*4 : ro+x*4+3 : ro+x*4+3]
			if absDiff(l[0], r[0]) > t || absDiff(l[1], r[1]) > t || absDiff(l[2], r[2]) > t {
				mask.Set(x, y)
			}
		}
	}
	return mask
}

func absDiff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}

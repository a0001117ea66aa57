/*
DESCRIPTION
  morph.go provides structuring elements and the erosion and dilation used to
  denoise binary difference frames.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package detect

import (
	"image"
	"math"

	"github.com/ausocean/objdetect/config"
)

// kernel is a structuring element, held as the offsets of its set elements
// from its centre.
type kernel []image.Point

// newKernel returns a size by size structuring element of the given shape,
// laid out the same way as OpenCV's getStructuringElement.
func newKernel(shape uint8, size int) kernel {
	r := size / 2
	var k kernel
	for i := 0; i < size; i++ {
		j1, j2 := 0, 0
		switch {
		case shape == config.KernelRect, shape == config.KernelCross && i == r:
			j2 = size
		case shape == config.KernelCross:
			j1, j2 = r, r+1
		default:
			dy := i - r
			var dx int
			if r > 0 {
				dx = int(math.RoundToEven(float64(r) * math.Sqrt(float64(r*r-dy*dy)/float64(r*r))))
			}
			j1 = max(r-dx, 0)
			j2 = min(r+dx+1, size)
		}
		for j := j1; j < j2; j++ {
			k = append(k, image.Pt(j-r, i-r))
		}
	}
	return k
}

// erode sets each pixel of dst to the minimum of the src pixels under k
// centred on it. Positions outside src are ignored.
func erode(dst, src *image.Gray, k kernel) { morph(dst, src, k, true) }

// dilate sets each pixel of dst to the maximum of the src pixels under k
// centred on it. Positions outside src are ignored.
func dilate(dst, src *image.Gray, k kernel) { morph(dst, src, k, false) }

func morph(dst, src *image.Gray, k kernel, isErode bool) {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var v uint8
			if isErode {
				v = maxValue
			}
			for _, o := range k {
				xx, yy := x+o.X, y+o.Y
				if xx < 0 || yy < 0 || xx >= w || yy >= h {
					continue
				}
				s := src.Pix[yy*src.Stride+xx]
				if isErode && s < v || !isErode && s > v {
					v = s
				}
			}
			dst.Pix[y*dst.Stride+x] = v
		}
	}
}

/*
DESCRIPTION
  contour.go provides contour extraction from binary masks using Suzuki and
  Abe's border following, along with contour area and bounding boxes.

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
)

// Neighbour directions, in counterclockwise order as seen on screen.
var neighbours = [8]image.Point{
	{1, 0},   // E
	{1, -1},  // NE
	{0, -1},  // N
	{-1, -1}, // NW
	{-1, 0},  // W
	{-1, 1},  // SW
	{0, 1},   // S
	{1, 1},   // SE
}

const (
	dirE = 0
	dirW = 4
)

// FindContours returns the borders of all 8-connected regions of non-zero
// pixels in mask, both outer borders and borders of holes, in the order their
// starting pixels are met in a raster scan. Points where the border continues
// in a straight line are omitted.
func FindContours(mask *image.Gray) [][]image.Point {
	b := mask.Bounds()
	w, h := b.Dx(), b.Dy()

	// Pad with zeros so that borders on the image edge can be followed.
	pw := w + 2
	f := make([]int32, pw*(h+2))
	for y := 0; y < h; y++ {
		row := mask.Pix[y*mask.Stride : y*mask.Stride+w]
		for x, v := range row {
			if v != 0 {
				f[(y+1)*pw+x+1] = 1
			}
		}
	}

	var off [8]int
	for d, n := range neighbours {
		off[d] = n.Y*pw + n.X
	}

	toPoint := func(i int) image.Point {
		return image.Pt(i%pw-1+b.Min.X, i/pw-1+b.Min.Y)
	}

	var contours [][]image.Point
	nbd := int32(1)
	for y := 1; y <= h; y++ {
		for x := 1; x <= w; x++ {
			p := y*pw + x
			if f[p] == 1 && f[p-1] == 0 {
				nbd++
				contours = append(contours, simplify(followBorder(f, off, p, dirW, nbd), toPoint))
			}
			if f[p] >= 1 && f[p+1] == 0 {
				nbd++
				contours = append(contours, simplify(followBorder(f, off, p, dirE, nbd), toPoint))
			}
		}
	}
	return contours
}

// followBorder follows the border starting at index start of f, where from
// is the direction of the zero pixel that identified the border. Pixels of the
// border are labelled nbd, or -nbd where their right neighbour is background.
func followBorder(f []int32, off [8]int, start, from int, nbd int32) []int {
	// Search clockwise for the first non-zero neighbour.
	found := -1
	for k := 0; k < 8; k++ {
		d := (from - k + 8) % 8
		if f[start+off[d]] != 0 {
			found = d
			break
		}
	}
	if found == -1 {
		f[start] = -nbd
		return []int{start}
	}

	first := start + off[found]
	cur := start
	back := found // Direction from cur to the previous border pixel.
	var border []int
	for {
		// Search counterclockwise, starting after the previous pixel, for the next.
		eastZero := false
		next, nextDir := -1, -1
		for k := 1; k <= 8; k++ {
			d := (back + k) % 8
			q := cur + off[d]
			if f[q] != 0 {
				next, nextDir = q, d
				break
			}
			if d == dirE {
				eastZero = true
			}
		}

		border = append(border, cur)
		switch {
		case eastZero:
			f[cur] = -nbd
		case f[cur] == 1:
			f[cur] = nbd
		}

		if next == start && cur == first {
			return border
		}
		cur = next
		back = (nextDir + 4) % 8
	}
}

// simplify converts border indices to points, dropping points that lie in
// the middle of horizontal, vertical or diagonal runs.
func simplify(border []int, toPoint func(int) image.Point) []image.Point {
	pts := make([]image.Point, len(border))
	for i, idx := range border {
		pts[i] = toPoint(idx)
	}
	n := len(pts)
	if n < 3 {
		return pts
	}
	out := make([]image.Point, 0, n)
	for i, pt := range pts {
		in := pt.Sub(pts[(i-1+n)%n])
		next := pts[(i+1)%n].Sub(pt)
		if in != next {
			out = append(out, pt)
		}
	}
	return out
}

// ContourArea returns the area enclosed by contour using the shoelace
// formula. The result does not depend on the contour's orientation.
func ContourArea(contour []image.Point) float64 {
	n := len(contour)
	if n < 3 {
		return 0
	}
	var sum int
	for i, p := range contour {
		q := contour[(i+1)%n]
		sum += p.X*q.Y - q.X*p.Y
	}
	return math.Abs(float64(sum)) / 2
}

// BoundingRect returns the smallest rectangle containing every point of
// contour.
func BoundingRect(contour []image.Point) image.Rectangle {
	if len(contour) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: contour[0], Max: contour[0]}
	for _, p := range contour[1:] {
		if p.X < r.Min.X {
			r.Min.X = p.X
		}
		if p.Y < r.Min.Y {
			r.Min.Y = p.Y
		}
		if p.X > r.Max.X {
			r.Max.X = p.X
		}
		if p.Y > r.Max.Y {
			r.Max.Y = p.Y
		}
	}
	r.Max = r.Max.Add(image.Pt(1, 1))
	return r
}

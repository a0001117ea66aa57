/*
DESCRIPTION
  draw.go provides the drawing primitives used by the native pipeline to
  annotate final frames.

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
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// drawLine draws a one pixel wide line from a to b inclusive.
func drawLine(img draw.Image, a, b image.Point, c color.Color) {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	e := dx + dy
	for {
		img.Set(a.X, a.Y, c)
		if a == b {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			a.X += sx
		}
		if e2 <= dx {
			e += dx
			a.Y += sy
		}
	}
}

// drawPolyline draws lines between consecutive points of pts, closing the
// shape if closed is true.
func drawPolyline(img draw.Image, pts []image.Point, closed bool, c color.Color) {
	switch len(pts) {
	case 0:
		return
	case 1:
		img.Set(pts[0].X, pts[0].Y, c)
		return
	}
	for i := 1; i < len(pts); i++ {
		drawLine(img, pts[i-1], pts[i], c)
	}
	if closed {
		drawLine(img, pts[len(pts)-1], pts[0], c)
	}
}

// drawRect draws the outline of the pixels covered by r.
func drawRect(img draw.Image, r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	tl, br := r.Min, r.Max.Sub(image.Pt(1, 1))
	drawPolyline(img, []image.Point{tl, {br.X, tl.Y}, br, {tl.X, br.Y}}, true, c)
}

// drawText draws each line with its baseline at the matching origin from
// LineOrigins.
func drawText(img draw.Image, lines []string, org image.Point, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
	}
	for i, o := range LineOrigins(org, len(lines)) {
		d.Dot = fixed.P(o.X, o.Y)
		d.DrawString(lines[i])
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

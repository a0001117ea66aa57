/*
DESCRIPTION
  text.go provides formatting and layout of the text drawn onto final frames.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package detect

import (
	"fmt"
	"image"
	"strconv"
	"time"
)

// Text layout.
const (
	lineSpacing   = 15 // Pixels between the baselines of consecutive lines.
	objectTextGap = 5  // Pixels between a bounding box and its text.
)

// FrameInfoOrigin is where frame information text starts on a final frame.
var FrameInfoOrigin = image.Pt(5, 10)

// FrameInfo returns the lines reporting a frame's number and how long it took
// to process.
func FrameInfo(n int, elapsed time.Duration) []string {
	return []string{
		fmt.Sprintf("Frame Number: %d", n),
		fmt.Sprintf("Processing Time: %d ms", elapsed.Milliseconds()),
	}
}

// ObjectInfo returns the lines describing a detection's area and position.
func ObjectInfo(d *Detection) []string {
	return []string{
		"Area: " + strconv.FormatFloat(d.Area, 'f', -1, 64),
		fmt.Sprintf("Position: (%d, %d)", d.Center.X, d.Center.Y),
	}
}

// LineOrigins returns the origins of n lines of text, the first at org and
// each following one lineSpacing pixels lower.
func LineOrigins(org image.Point, n int) []image.Point {
	pts := make([]image.Point, n)
	for i := range pts {
		pts[i] = image.Pt(org.X, org.Y+i*lineSpacing)
	}
	return pts
}

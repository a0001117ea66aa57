/*
DESCRIPTION
  native.go provides a pure Go implementation of the detection pipeline that
  operates on image.Image frames. It is used when OpenCV is not available.

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
	"image/draw"

	"github.com/pkg/errors"
)

// Fixed point luma weights, matching OpenCV's 8 bit RGB to gray conversion.
const (
	lumaR     = 4899
	lumaG     = 9617
	lumaB     = 1868
	lumaShift = 14
)

// Native is a detection pipeline written in pure Go. Frames are given as
// image.Image; stage frames are *image.RGBA for colour and *image.Gray for
// single channel stages.
type Native struct {
	params Params
	knl    kernel

	// Scratch buffers, reallocated only when the reference size changes.
	ref   *image.RGBA
	diff  *image.RGBA
	gray  *image.Gray
	bin   *image.Gray
	den   *image.Gray
	tmp   *image.Gray
	final *image.RGBA
}

// NewNative returns a new Native pipeline using parameters p.
func NewNative(p Params) (*Native, error) {
	n := &Native{}
	err := n.Configure(p)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Configure replaces the pipeline parameters.
func (n *Native) Configure(p Params) error {
	err := p.Validate()
	if err != nil {
		return errors.Wrap(err, "invalid pipeline parameters")
	}
	n.params = p
	n.knl = newKernel(p.KernelShape, p.KernelSize)
	return nil
}

// SetReference copies ref as the frame subsequent frames are compared to.
func (n *Native) SetReference(ref image.Image) error {
	if ref == nil {
		return errors.New("nil reference frame")
	}
	r := image.Rect(0, 0, ref.Bounds().Dx(), ref.Bounds().Dy())
	if n.ref == nil || n.ref.Rect != r {
		n.alloc(r)
	}
	draw.Draw(n.ref, r, ref, ref.Bounds().Min, draw.Src)
	return nil
}

func (n *Native) alloc(r image.Rectangle) {
	n.ref = image.NewRGBA(r)
	n.diff = image.NewRGBA(r)
	n.gray = image.NewGray(r)
	n.bin = image.NewGray(r)
	n.den = image.NewGray(r)
	n.tmp = image.NewGray(r)
	n.final = image.NewRGBA(r)
}

// MotionMask computes the denoised binary mask of the change between the
// reference frame and cur. The returned image is owned by n and is
// overwritten by the next call.
func (n *Native) MotionMask(cur image.Image) (*image.Gray, error) {
	if n.ref == nil {
		return nil, ErrNoReference
	}
	if cur == nil {
		return nil, errors.New("nil frame")
	}
	if cur.Bounds().Size() != n.ref.Rect.Size() {
		return nil, errors.Wrapf(ErrSizeMismatch, "got %v, want %v", cur.Bounds().Size(), n.ref.Rect.Size())
	}

	// The final frame starts as a copy of the current frame.
	draw.Draw(n.final, n.final.Rect, cur, cur.Bounds().Min, draw.Src)

	absDiff(n.diff, n.ref, n.final)
	toGray(n.gray, n.diff)
	threshold(n.bin, n.gray, uint8(n.params.Threshold))
	n.denoise()
	return n.den, nil
}

// denoise erodes then dilates the binary frame, leaving the result in n.den.
func (n *Native) denoise() {
	src := n.bin
	spare := func() *image.Gray {
		if src == n.den {
			return n.tmp
		}
		return n.den
	}
	for i := 0; i < n.params.ErodeIterations; i++ {
		dst := spare()
		erode(dst, src, n.knl)
		src = dst
	}
	for i := 0; i < n.params.DilateIterations; i++ {
		dst := spare()
		dilate(dst, src, n.knl)
		src = dst
	}
	switch src {
	case n.bin:
		copy(n.den.Pix, n.bin.Pix)
	case n.tmp:
		n.den, n.tmp = n.tmp, n.den
	}
}

// Process computes the motion mask for cur and annotates the largest region
// of change on the final stage frame.
func (n *Native) Process(cur image.Image) (*Detection, error) {
	mask, err := n.MotionMask(cur)
	if err != nil {
		return nil, err
	}
	return n.SelectAndAnnotate(mask, n.final), nil
}

// SelectAndAnnotate finds the contour of mask with the largest area and, if
// there is one, draws it, its bounding box and its area and position onto
// dst.
func (n *Native) SelectAndAnnotate(mask *image.Gray, dst draw.Image) *Detection {
	contours := FindContours(mask)
	areas := make([]float64, len(contours))
	for i, c := range contours {
		areas[i] = ContourArea(c)
	}
	i := largest(areas)
	if i == -1 {
		return nil
	}

	d := newDetection(contours[i], areas[i], BoundingRect(contours[i]))
	drawPolyline(dst, d.Contour, true, drawColor)
	drawRect(dst, d.Box, drawColor)
	drawText(dst, ObjectInfo(d), d.TextOrigin(), drawColor)
	return d
}

// Stages returns the frames produced by the last call to Process.
func (n *Native) Stages() Stages[image.Image] {
	return Stages[image.Image]{
		Reference: n.ref,
		Diff:      n.diff,
		Gray:      n.gray,
		Binary:    n.bin,
		Denoised:  n.den,
		Final:     n.final,
	}
}

// WriteText draws lines onto img, which must implement draw.Image.
func (n *Native) WriteText(img image.Image, lines []string, org image.Point) error {
	dst, ok := img.(draw.Image)
	if !ok {
		return errors.Errorf("cannot draw on %T", img)
	}
	drawText(dst, lines, org, drawColor)
	return nil
}

// Close implements Pipeline; Native holds no external resources.
func (n *Native) Close() error { return nil }

// absDiff sets each colour channel of dst to the absolute difference of a
// and b. All three images must have the same bounds.
func absDiff(dst, a, b *image.RGBA) {
	for i := 0; i < len(dst.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			x, y := a.Pix[i+c], b.Pix[i+c]
			if x > y {
				dst.Pix[i+c] = x - y
			} else {
				dst.Pix[i+c] = y - x
			}
		}
		dst.Pix[i+3] = 0xff
	}
}

// toGray converts src to luma using the weighting of OpenCV's RGB to gray
// conversion.
func toGray(dst *image.Gray, src *image.RGBA) {
	for i, j := 0, 0; j < len(dst.Pix); i, j = i+4, j+1 {
		r, g, b := uint32(src.Pix[i]), uint32(src.Pix[i+1]), uint32(src.Pix[i+2])
		dst.Pix[j] = uint8((r*lumaR + g*lumaG + b*lumaB + 1<<(lumaShift-1)) >> lumaShift)
	}
}

// threshold sets pixels of dst to maxValue where src is strictly greater than
// t, and to zero elsewhere.
func threshold(dst, src *image.Gray, t uint8) {
	for i, v := range src.Pix {
		if v > t {
			dst.Pix[i] = maxValue
		} else {
			dst.Pix[i] = 0
		}
	}
}

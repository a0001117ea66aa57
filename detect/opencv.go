//go:build withcv
// +build withcv

/*
DESCRIPTION
  opencv.go provides the detection pipeline implemented with gocv. Frames are
  8 bit, 3 channel BGR gocv.Mats as produced by gocv.VideoCapture.

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

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/ausocean/objdetect/config"
)

// Text drawing parameters.
const (
	fontScale     = 1.0
	fontThickness = 1
)

// OpenCV is a detection pipeline built on gocv.
type OpenCV struct {
	params Params
	knl    gocv.Mat // Structuring element for erosion and dilation.

	// Stage buffers, reused between frames. gocv reallocates them only when
	// the frame size changes.
	ref   gocv.Mat
	diff  gocv.Mat
	gray  gocv.Mat
	bin   gocv.Mat
	den   gocv.Mat
	final gocv.Mat
}

// NewOpenCV returns a new OpenCV pipeline using parameters p.
func NewOpenCV(p Params) (*OpenCV, error) {
	o := &OpenCV{
		knl:   gocv.NewMat(),
		ref:   gocv.NewMat(),
		diff:  gocv.NewMat(),
		gray:  gocv.NewMat(),
		bin:   gocv.NewMat(),
		den:   gocv.NewMat(),
		final: gocv.NewMat(),
	}
	err := o.Configure(p)
	if err != nil {
		o.Close()
		return nil, err
	}
	return o, nil
}

// Configure replaces the pipeline parameters and rebuilds the structuring
// element.
func (o *OpenCV) Configure(p Params) error {
	err := p.Validate()
	if err != nil {
		return errors.Wrap(err, "invalid pipeline parameters")
	}
	o.params = p
	o.knl.Close()
	o.knl = gocv.GetStructuringElement(morphShape(p.KernelShape), image.Pt(p.KernelSize, p.KernelSize))
	return nil
}

func morphShape(s uint8) gocv.MorphShape {
	switch s {
	case config.KernelCross:
		return gocv.MorphCross
	case config.KernelEllipse:
		return gocv.MorphEllipse
	default:
		return gocv.MorphRect
	}
}

// SetReference copies ref as the frame subsequent frames are compared to.
func (o *OpenCV) SetReference(ref gocv.Mat) error {
	if ref.Empty() {
		return errors.New("empty reference frame")
	}
	if ref.Type() != gocv.MatTypeCV8UC3 {
		return errors.Errorf("reference frame must be 8 bit BGR, got type %v", ref.Type())
	}
	ref.CopyTo(&o.ref)
	return nil
}

// MotionMask computes the denoised binary mask of the change between the
// reference frame and cur. The returned Mat is owned by o.
func (o *OpenCV) MotionMask(cur gocv.Mat) (gocv.Mat, error) {
	if o.ref.Empty() {
		return gocv.Mat{}, ErrNoReference
	}
	if cur.Rows() != o.ref.Rows() || cur.Cols() != o.ref.Cols() || cur.Type() != o.ref.Type() {
		return gocv.Mat{}, errors.Wrapf(
			ErrSizeMismatch,
			"got %dx%d type %v, want %dx%d type %v",
			cur.Cols(), cur.Rows(), cur.Type(), o.ref.Cols(), o.ref.Rows(), o.ref.Type(),
		)
	}

	gocv.AbsDiff(o.ref, cur, &o.diff)
	gocv.CvtColor(o.diff, &o.gray, gocv.ColorBGRToGray)
	gocv.Threshold(o.gray, &o.bin, float32(o.params.Threshold), maxValue, gocv.ThresholdBinary)

	// Remove noise, then restore the extent of what survived.
	o.bin.CopyTo(&o.den)
	for i := 0; i < o.params.ErodeIterations; i++ {
		gocv.Erode(o.den, &o.den, o.knl)
	}
	for i := 0; i < o.params.DilateIterations; i++ {
		gocv.Dilate(o.den, &o.den, o.knl)
	}
	return o.den, nil
}

// Process computes the motion mask for cur and annotates the largest region
// of change on the final stage frame.
func (o *OpenCV) Process(cur gocv.Mat) (*Detection, error) {
	mask, err := o.MotionMask(cur)
	if err != nil {
		return nil, err
	}
	cur.CopyTo(&o.final)
	return o.SelectAndAnnotate(mask, &o.final), nil
}

// SelectAndAnnotate finds the contour of mask with the largest area and, if
// there is one, draws it, its bounding box and its area and position onto
// dst.
func (o *OpenCV) SelectAndAnnotate(mask gocv.Mat, dst *gocv.Mat) *Detection {
	contours := gocv.FindContours(mask, gocv.RetrievalList, gocv.ChainApproxSimple)
	defer contours.Close()

	areas := make([]float64, contours.Size())
	for i := range areas {
		areas[i] = gocv.ContourArea(contours.At(i))
	}
	i := largest(areas)
	if i == -1 {
		return nil
	}

	c := contours.At(i)
	d := newDetection(c.ToPoints(), areas[i], gocv.BoundingRect(c))

	pv := gocv.NewPointsVectorFromPoints([][]image.Point{d.Contour})
	defer pv.Close()
	gocv.Polylines(dst, pv, true, drawColor, 1)
	gocv.Rectangle(dst, d.Box, drawColor, 1)
	o.WriteText(*dst, ObjectInfo(d), d.TextOrigin())
	return d
}

// Stages returns the frames produced by the last call to Process.
func (o *OpenCV) Stages() Stages[gocv.Mat] {
	return Stages[gocv.Mat]{
		Reference: o.ref,
		Diff:      o.diff,
		Gray:      o.gray,
		Binary:    o.bin,
		Denoised:  o.den,
		Final:     o.final,
	}
}

// WriteText draws each line with a separate call, since OpenCV does not
// handle line breaks.
func (o *OpenCV) WriteText(img gocv.Mat, lines []string, org image.Point) error {
	for i, pt := range LineOrigins(org, len(lines)) {
		gocv.PutText(&img, lines[i], pt, gocv.FontHersheyPlain, fontScale, drawColor, fontThickness)
	}
	return nil
}

// Close frees resources used by gocv. It has to be done manually,
// due to gocv using c-go.
func (o *OpenCV) Close() error {
	for _, m := range []*gocv.Mat{&o.knl, &o.ref, &o.diff, &o.gray, &o.bin, &o.den, &o.final} {
		m.Close()
	}
	return nil
}

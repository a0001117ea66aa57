/*
DESCRIPTION
  detect.go provides the types shared by the object detection pipelines:
  parameters, detections, the per stage frames and the Pipeline interface.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package detect provides motion based object detection using static
// background subtraction. Each frame is compared against a fixed reference
// frame, the absolute difference is reduced to grayscale, thresholded and
// denoised by erosion then dilation, and the largest connected region of the
// resulting mask is reported as the detected object.
//
// Two implementations are provided: OpenCV, built on gocv and only available
// with the withcv build tag, and Native, written in pure Go.
package detect

import (
	"image"
	"image/color"

	"github.com/pkg/errors"

	"github.com/ausocean/objdetect/config"
)

// Default pipeline parameters.
const (
	DefaultThreshold        = 50
	DefaultErodeIterations  = 3
	DefaultDilateIterations = 3
	DefaultKernelSize       = 3
)

// Value of a changed pixel in a binary mask.
const maxValue = 255

// ErrSizeMismatch is returned when a current frame does not have the same
// dimensions as the reference frame.
var ErrSizeMismatch = errors.New("frame size does not match reference frame")

// ErrNoReference is returned when a frame is processed before a reference
// frame has been set.
var ErrNoReference = errors.New("reference frame not set")

// drawColor is used for every annotation drawn on the final frame.
var drawColor = color.RGBA{255, 0, 0, 255}

// Params holds the tunable parameters of a detection pipeline.
type Params struct {
	Threshold        int   // Grayscale difference a pixel must exceed to be considered changed.
	ErodeIterations  int   // Number of erosion passes.
	DilateIterations int   // Number of dilation passes.
	KernelShape      uint8 // Structuring element shape, one of config.KernelRect, config.KernelCross or config.KernelEllipse.
	KernelSize       int   // Structuring element width and height.
}

// DefaultParams returns the parameters used when none are configured.
func DefaultParams() Params {
	return Params{
		Threshold:        DefaultThreshold,
		ErodeIterations:  DefaultErodeIterations,
		DilateIterations: DefaultDilateIterations,
		KernelShape:      config.KernelRect,
		KernelSize:       DefaultKernelSize,
	}
}

// ParamsFrom returns the pipeline parameters held by a validated Config.
func ParamsFrom(c config.Config) Params {
	return Params{
		Threshold:        int(c.Threshold),
		ErodeIterations:  int(c.ErodeIterations),
		DilateIterations: int(c.DilateIterations),
		KernelShape:      c.KernelShape,
		KernelSize:       int(c.KernelSize),
	}
}

// Validate checks that p can be used by a pipeline.
func (p Params) Validate() error {
	switch {
	case p.Threshold < 0 || p.Threshold > maxValue:
		return errors.Errorf("threshold out of range: %d", p.Threshold)
	case p.ErodeIterations < 0:
		return errors.Errorf("negative erode iterations: %d", p.ErodeIterations)
	case p.DilateIterations < 0:
		return errors.Errorf("negative dilate iterations: %d", p.DilateIterations)
	case p.KernelSize < 1 || p.KernelSize%2 == 0 || p.KernelSize > config.MaxKernelSize:
		return errors.Errorf("kernel size must be odd and between 1 and %d: %d", config.MaxKernelSize, p.KernelSize)
	case p.KernelShape > config.KernelEllipse:
		return errors.Errorf("unknown kernel shape: %d", p.KernelShape)
	}
	return nil
}

// Detection is the largest region of change found in a frame.
type Detection struct {
	Contour []image.Point   // Boundary of the region.
	Area    float64         // Area enclosed by Contour.
	Box     image.Rectangle // Bounding box of Contour.
	Center  image.Point     // Centre of Box.
}

func newDetection(contour []image.Point, area float64, box image.Rectangle) *Detection {
	return &Detection{
		Contour: contour,
		Area:    area,
		Box:     box,
		Center:  Center(box),
	}
}

// Center returns the centre of r using integer division.
func Center(r image.Rectangle) image.Point {
	return image.Pt(r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2)
}

// TextOrigin returns the point the detection's area and position text is
// drawn from, just right of the bounding box at the height of its centre.
func (d *Detection) TextOrigin() image.Point {
	return image.Pt(d.Box.Max.X+objectTextGap, d.Center.Y)
}

// largest returns the index of the first maximum of areas, or -1 if areas is
// empty.
func largest(areas []float64) int {
	idx := -1
	var best float64
	for i, a := range areas {
		if idx == -1 || a > best {
			idx, best = i, a
		}
	}
	return idx
}

// Stages holds the frames produced by each step of a pipeline run. The frames
// are owned by the pipeline and are overwritten by the next call to Process.
type Stages[F any] struct {
	Reference F // Copy of the reference frame.
	Diff      F // Per channel absolute difference of reference and current.
	Gray      F // Grayscale of Diff.
	Binary    F // Thresholded Gray.
	Denoised  F // Binary after erosion and dilation.
	Final     F // Copy of the current frame with annotations.
}

// Pipeline is implemented by the detection backends. F is the frame type
// used by the backend.
type Pipeline[F any] interface {
	// SetReference sets the frame that all subsequent frames are compared
	// against. The pipeline keeps its own copy.
	SetReference(ref F) error

	// Process computes the motion mask of cur against the reference, selects
	// the largest region of change and draws it onto the final stage frame.
	// A nil Detection with a nil error means no change was found.
	Process(cur F) (*Detection, error)

	// Stages returns the frames produced by the last call to Process.
	Stages() Stages[F]

	// WriteText draws lines of text onto img, the first line at org and each
	// following line below the previous.
	WriteText(img F, lines []string, org image.Point) error

	// Configure replaces the pipeline parameters.
	Configure(p Params) error

	// Close releases resources held by the pipeline.
	Close() error
}

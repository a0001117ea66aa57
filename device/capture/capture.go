//go:build withcv
// +build withcv

/*
DESCRIPTION
  capture.go provides an implementation of the Source interface for video
  files decoded by OpenCV.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package capture provides a video source backed by gocv's VideoCapture.
package capture

import (
	"io"
	"sync"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/ausocean/objdetect/config"
	"github.com/ausocean/utils/logging"
)

// ErrNotStarted is returned when frames are requested from a capture that is
// not running.
var ErrNotStarted = errors.New("capture not started")

// Capture is an implementation of the Source interface for any video file
// OpenCV can decode.
type Capture struct {
	vc    *gocv.VideoCapture
	frame gocv.Mat
	path  string
	set   bool
	log   logging.Logger
	mu    sync.Mutex
}

// New returns a new Capture.
func New(l logging.Logger) *Capture { return &Capture{log: l} }

// NewWith returns a new Capture for path i.e. the Set method does not need to
// be called.
func NewWith(l logging.Logger, path string) *Capture {
	return &Capture{log: l, path: path, set: true}
}

// Name returns the name of the source.
func (c *Capture) Name() string { return "Capture" }

// Set takes the file path from the InputPath field of cfg.
func (c *Capture) Set(cfg config.Config) error {
	if cfg.InputPath == "" {
		return errors.New("no input path")
	}
	c.path = cfg.InputPath
	c.set = true
	return nil
}

// Start opens the video file.
func (c *Capture) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.set {
		return errors.New("capture has not been set with config")
	}
	vc, err := gocv.OpenVideoCapture(c.path)
	if err != nil {
		return errors.Wrap(err, "could not open video capture")
	}
	if !vc.IsOpened() {
		vc.Close()
		return errors.Errorf("could not open %s", c.path)
	}
	c.vc = vc
	c.frame = gocv.NewMat()
	c.log.Debug("opened video capture", "path", c.path, "frames", vc.Get(gocv.VideoCaptureFrameCount))
	return nil
}

// Stop closes the video file and frees the frame buffer.
func (c *Capture) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.vc == nil {
		return nil
	}
	err := c.vc.Close()
	c.frame.Close()
	c.vc = nil
	return err
}

// IsRunning is used to determine if the video file is open.
func (c *Capture) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vc != nil && c.vc.IsOpened()
}

// Next reads the next frame, or returns io.EOF at the end of the video. The
// returned Mat is owned by c and is only valid until the next call to Next.
func (c *Capture) Next() (gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.vc == nil {
		return gocv.Mat{}, ErrNotStarted
	}
	if !c.vc.Read(&c.frame) || c.frame.Empty() {
		return gocv.Mat{}, io.EOF
	}
	return c.frame, nil
}

// Seek sets the index of the next frame read.
func (c *Capture) Seek(frame int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.vc == nil {
		return ErrNotStarted
	}
	c.vc.Set(gocv.VideoCapturePosFrames, float64(frame))
	return nil
}

/*
DESCRIPTION
  device.go provides Source, an interface that describes a configurable video
  source that can be started and stopped and from which frames may be
  obtained, along with a manually fed implementation.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package device provides an interface and implementations for video sources
// that can be started and stopped and from which frames can be obtained.
package device

import (
	"fmt"
	"image"
	"io"
	"os"
	"sync"

	"github.com/pkg/errors"

	"github.com/ausocean/objdetect/config"
	"github.com/ausocean/objdetect/device/imgseq"
	"github.com/ausocean/objdetect/device/mjpeg"
	"github.com/ausocean/utils/logging"
)

// Source describes a configurable video source from which frames of type F
// can be obtained one at a time.
type Source[F any] interface {
	// Name returns the name of the Source.
	Name() string

	// Set allows for configuration of the Source using a Config struct. An
	// implementation should specify what fields are considered.
	Set(c config.Config) error

	// Start opens the stream, after which Next may be called.
	Start() error

	// Stop closes the stream. From this point calls to Next will fail.
	Stop() error

	// IsRunning is used to determine if the stream is open.
	IsRunning() bool

	// Next returns the next frame of the stream, or io.EOF once the stream is
	// exhausted.
	Next() (F, error)

	// Seek positions the stream so that the next call to Next returns the
	// frame with the given zero based index.
	Seek(frame int) error
}

// MultiError implements the built in error interface. MultiError is used to
// collect errors from stopping several sources.
type MultiError []error

func (me MultiError) Error() string {
	if len(me) == 0 {
		panic("device: invalid use of MultiError")
	}
	return fmt.Sprintf("%v", []error(me))
}

// Open returns a started pure Go Source for the InputPath of c: an image
// sequence if it names a directory, otherwise an MJPEG file.
func Open(c config.Config) (Source[image.Image], error) {
	fi, err := os.Stat(c.InputPath)
	if err != nil {
		return nil, errors.Wrap(err, "could not stat input")
	}

	var s Source[image.Image]
	if fi.IsDir() {
		s = imgseq.New(c.Logger)
	} else {
		s = mjpeg.New(c.Logger)
	}
	err = s.Set(c)
	if err != nil {
		return nil, errors.Wrapf(err, "could not set %s source", s.Name())
	}
	err = s.Start()
	if err != nil {
		return nil, errors.Wrapf(err, "could not start %s source", s.Name())
	}
	return s, nil
}

// Manual is an implementation of Source whose frames are supplied through
// software. Frames written with Write are kept, so that seeking replays them.
type Manual[F any] struct {
	mu        sync.Mutex
	frames    []F
	pos       int
	isRunning bool
	log       logging.Logger
}

// NewManual returns a new Manual holding frames.
func NewManual[F any](l logging.Logger, frames ...F) *Manual[F] {
	return &Manual[F]{log: l, frames: frames}
}

// Name returns the name of Manual i.e. "Manual".
func (m *Manual[F]) Name() string { return "Manual" }

// Set is a stub to satisfy the Source interface; no configuration fields are
// required by Manual.
func (m *Manual[F]) Set(c config.Config) error { return nil }

// Start marks the source running and positions it at the first frame.
func (m *Manual[F]) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.isRunning = true
	m.pos = 0
	return nil
}

// Stop sets the isRunning flag to false.
func (m *Manual[F]) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.isRunning = false
	return nil
}

// IsRunning returns true if Start has been called and Stop has not been called
// after.
func (m *Manual[F]) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isRunning
}

// Write appends f to the frames of the source.
func (m *Manual[F]) Write(f F) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frames = append(m.frames, f)
}

// Next returns the next frame, or io.EOF if every frame has been read.
func (m *Manual[F]) Next() (F, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var f F
	if !m.isRunning {
		return f, errors.New("manual source has not been started")
	}
	if m.pos >= len(m.frames) {
		return f, io.EOF
	}
	f = m.frames[m.pos]
	m.pos++
	return f, nil
}

// Seek sets the index of the next frame returned by Next.
func (m *Manual[F]) Seek(frame int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if frame < 0 || frame > len(m.frames) {
		return errors.Errorf("frame %d out of range", frame)
	}
	m.log.Debug("seeking manual source", "frame", frame)
	m.pos = frame
	return nil
}

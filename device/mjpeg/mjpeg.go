/*
DESCRIPTION
  mjpeg.go provides an implementation of the Source interface for MJPEG files,
  that is files holding a series of concatenated JPEG images.

AUTHORS
  Dan Kortschak <dan@ausocean.org>
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package mjpeg provides a video source for MJPEG files.
package mjpeg

import (
	"bufio"
	"bytes"
	"image"
	"image/jpeg"
	"io"
	"os"
	"sync"

	"github.com/pkg/errors"

	"github.com/ausocean/objdetect/config"
	"github.com/ausocean/utils/logging"
)

// JPEG markers.
var (
	soi = []byte{0xff, 0xd8}
	eoi = []byte{0xff, 0xd9}
)

// ErrNotStarted is returned when frames are requested from a source that is
// not running.
var ErrNotStarted = errors.New("MJPEG source not started")

// MJPEG is an implementation of the Source interface for a file of
// concatenated JPEG images.
type MJPEG struct {
	f         *os.File
	r         *bufio.Reader
	path      string
	isRunning bool
	log       logging.Logger
	set       bool
	mu        sync.Mutex
}

// New returns a new MJPEG.
func New(l logging.Logger) *MJPEG { return &MJPEG{log: l} }

// NewWith returns a new MJPEG with the path provided i.e. the Set method does
// not need to be called.
func NewWith(l logging.Logger, path string) *MJPEG {
	return &MJPEG{log: l, path: path, set: true}
}

// Name returns the name of the source.
func (m *MJPEG) Name() string { return "MJPEG" }

// Set takes the file path from the InputPath field of c.
func (m *MJPEG) Set(c config.Config) error {
	if c.InputPath == "" {
		return errors.New("no input path")
	}
	m.path = c.InputPath
	m.set = true
	return nil
}

// Start opens the file.
func (m *MJPEG) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return errors.New("MJPEG source has not been set with config")
	}
	f, err := os.Open(m.path)
	if err != nil {
		return errors.Wrap(err, "could not open MJPEG file")
	}
	m.f = f
	m.r = bufio.NewReader(f)
	m.isRunning = true
	return nil
}

// Stop closes the file such that any further calls to Next will fail.
func (m *MJPEG) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.f == nil {
		return nil
	}
	err := m.f.Close()
	if err != nil {
		return err
	}
	m.f, m.r = nil, nil
	m.isRunning = false
	return nil
}

// IsRunning is used to determine if the file is open.
func (m *MJPEG) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.f != nil && m.isRunning
}

// Next decodes and returns the next JPEG image of the file, or io.EOF at the
// end of the file.
func (m *MJPEG) Next() (image.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.r == nil {
		return nil, ErrNotStarted
	}
	buf, err := readFrame(m.r)
	if err != nil {
		return nil, err
	}
	img, err := jpeg.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, errors.Wrap(err, "could not decode JPEG frame")
	}
	return img, nil
}

// Seek rewinds the file and skips frame images.
func (m *MJPEG) Seek(frame int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.f == nil {
		return ErrNotStarted
	}
	_, err := m.f.Seek(0, io.SeekStart)
	if err != nil {
		return errors.Wrap(err, "could not seek to start of file")
	}
	m.r.Reset(m.f)
	for i := 0; i < frame; i++ {
		_, err = readFrame(m.r)
		if err != nil {
			return errors.Wrapf(err, "could not skip to frame %d", frame)
		}
	}
	m.log.Debug("seeked MJPEG file", "frame", frame)
	return nil
}

// readFrame returns the bytes of the next JPEG image from r, from its start of
// image marker to the end of image marker that closes it. Images embedded in
// the frame, such as thumbnails, are included. io.EOF is returned only if r
// is exhausted before the frame begins.
func readFrame(r *bufio.Reader) ([]byte, error) {
	buf := make([]byte, 2, 4<<10)
	n, err := io.ReadFull(r, buf)
	switch {
	case n == 0 && err == io.EOF:
		return nil, io.EOF
	case err != nil:
		return nil, err
	}
	if !bytes.Equal(buf, soi) {
		return nil, errors.Errorf("not JPEG frame start: %#v", buf)
	}

	nImg := 1
	var last byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		buf = append(buf, b)

		if last == soi[0] && b == soi[1] {
			nImg++
		}
		if last == eoi[0] && b == eoi[1] {
			nImg--
		}
		if nImg == 0 {
			return buf, nil
		}
		last = b
	}
}

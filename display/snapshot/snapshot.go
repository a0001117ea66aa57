/*
DESCRIPTION
  snapshot.go provides a headless implementation of the Display interface that
  saves each shown frame as a PNG file and reads keys from a text stream.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package snapshot provides a Display that writes frames to disk.
package snapshot

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"

	"github.com/ausocean/objdetect/config"
	"github.com/ausocean/utils/logging"
)

// Key codes returned by WaitKey.
const (
	keyNext = '\n'
	keyEsc  = 27
)

// Converter converts a frame to an image.Image so that it can be encoded.
type Converter[F any] func(F) (image.Image, error)

// Image is the Converter for frames that are already images.
func Image(img image.Image) (image.Image, error) { return img, nil }

// Snapshot saves each frame shown under a name to its own directory below
// the output path, numbering the files by the order they were shown.
type Snapshot[F any] struct {
	dir     string
	scale   float64
	convert Converter[F]
	keys    *bufio.Scanner
	seq     map[string]int
	exit    int
	log     logging.Logger
}

// New returns a new Snapshot writing to the OutputPath of c, scaled by its
// SnapshotScale. Keys are read a line at a time from keys.
func New[F any](c config.Config, keys io.Reader, convert Converter[F]) *Snapshot[F] {
	exit := c.ExitKey
	if exit == 0 {
		exit = keyEsc
	}
	return &Snapshot[F]{
		dir:     c.OutputPath,
		scale:   c.SnapshotScale,
		convert: convert,
		keys:    bufio.NewScanner(keys),
		seq:     make(map[string]int),
		exit:    exit,
		log:     c.Logger,
	}
}

// Show writes f to <output>/<name>/<n>.png, where n counts the frames shown
// under name.
func (s *Snapshot[F]) Show(name string, f F) error {
	img, err := s.convert(f)
	if err != nil {
		return errors.Wrapf(err, "could not convert %s", name)
	}
	if s.scale > 0 && s.scale < 1 {
		w := uint(float64(img.Bounds().Dx()) * s.scale)
		img = resize.Resize(w, 0, img, resize.Bilinear)
	}

	dir := filepath.Join(s.dir, dirName(name))
	err = os.MkdirAll(dir, 0o755)
	if err != nil {
		return errors.Wrap(err, "could not create snapshot directory")
	}

	path := filepath.Join(dir, fmt.Sprintf("%06d.png", s.seq[name]))
	s.seq[name]++
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "could not create snapshot")
	}
	err = encode(file, img)
	if err != nil {
		return errors.Wrapf(err, "could not write %s", path)
	}
	s.log.Debug("wrote snapshot", "path", path)
	return nil
}

// encode writes img to w as PNG and closes w. An error from Close is
// returned if encoding succeeded.
func encode(w io.WriteCloser, img image.Image) error {
	err := png.Encode(w, img)
	cerr := w.Close()
	if err != nil {
		return errors.Wrap(err, "could not encode PNG")
	}
	if cerr != nil {
		return errors.Wrap(cerr, "could not close file")
	}
	return nil
}

// dirName returns the directory used for frames shown under name, e.g.
// "final-frame" for "Final Frame".
func dirName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// WaitKey blocks until a line is read. An empty line advances to the next
// frame. A line of "q" or "esc", or the end of input, returns the exit key
// code. Any other line returns its first character.
func (s *Snapshot[F]) WaitKey() int {
	if !s.keys.Scan() {
		return s.exit
	}
	line := strings.TrimSpace(s.keys.Text())
	switch strings.ToLower(line) {
	case "":
		return keyNext
	case "q", "esc":
		return s.exit
	default:
		return int(line[0])
	}
}

// Close is a stub to satisfy the Display interface; files are closed as
// they are written.
func (s *Snapshot[F]) Close() error { return nil }

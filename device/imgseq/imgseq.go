/*
DESCRIPTION
  imgseq.go provides an implementation of the Source interface for a
  directory of still images played back as a video.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package imgseq provides a video source for a directory of image files.
package imgseq

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/ausocean/objdetect/config"
	"github.com/ausocean/utils/logging"
)

// Extensions of files treated as frames.
var exts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// ErrNotStarted is returned when frames are requested from a source that is
// not running.
var ErrNotStarted = errors.New("image sequence not started")

// Sequence is an implementation of the Source interface for a directory of
// PNG and JPEG images, read in lexical order of their file names.
type Sequence struct {
	dir       string
	files     []string
	pos       int
	isRunning bool
	set       bool
	log       logging.Logger
	mu        sync.Mutex
}

// New returns a new Sequence.
func New(l logging.Logger) *Sequence { return &Sequence{log: l} }

// NewWith returns a new Sequence for dir i.e. the Set method does not need to
// be called.
func NewWith(l logging.Logger, dir string) *Sequence {
	return &Sequence{log: l, dir: dir, set: true}
}

// Name returns the name of the source.
func (s *Sequence) Name() string { return "ImageSequence" }

// Set takes the directory from the InputPath field of c.
func (s *Sequence) Set(c config.Config) error {
	if c.InputPath == "" {
		return errors.New("no input path")
	}
	s.dir = c.InputPath
	s.set = true
	return nil
}

// Start lists the image files of the directory.
func (s *Sequence) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return errors.New("image sequence has not been set with config")
	}
	files, err := list(s.dir)
	if err != nil {
		return err
	}
	s.log.Debug("listed image sequence", "dir", s.dir, "frames", len(files))
	s.files = files
	s.pos = 0
	s.isRunning = true
	return nil
}

// list returns the paths of the image files in dir, sorted by name.
func list(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "could not read image directory")
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !exts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Stop marks the sequence as stopped.
func (s *Sequence) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isRunning = false
	return nil
}

// IsRunning is used to determine if the sequence is started.
func (s *Sequence) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

// Next decodes and returns the next image, or io.EOF after the last one.
func (s *Sequence) Next() (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isRunning {
		return nil, ErrNotStarted
	}
	if s.pos >= len(s.files) {
		return nil, io.EOF
	}
	path := s.files[s.pos]
	s.pos++

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not open image")
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "could not decode %s", path)
	}
	return img, nil
}

// Seek sets the index of the next image returned by Next.
func (s *Sequence) Seek(frame int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isRunning {
		return ErrNotStarted
	}
	if frame < 0 || frame > len(s.files) {
		return errors.Errorf("frame %d out of range", frame)
	}
	s.pos = frame
	return nil
}

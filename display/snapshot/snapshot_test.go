/*
DESCRIPTION
  snapshot_test.go provides testing of the snapshot display.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package snapshot

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/ausocean/objdetect/config"
	"github.com/ausocean/objdetect/display"
	"github.com/ausocean/utils/logging"
)

func newConfig(t *testing.T, scale float64) config.Config {
	return config.Config{
		OutputPath:    t.TempDir(),
		SnapshotScale: scale,
		ExitKey:       27,
		Logger:        (*logging.TestLogger)(t),
	}
}

func decode(t *testing.T, path string) image.Image {
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("could not open snapshot: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("could not decode snapshot: %v", err)
	}
	return img
}

func TestShow(t *testing.T) {
	c := newConfig(t, 1)
	s := New[image.Image](c, strings.NewReader(""), Image)

	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for i := 0; i < 2; i++ {
		err := s.Show(display.Final, img)
		if err != nil {
			t.Fatalf("could not show frame: %v", err)
		}
	}
	err := s.Show(display.Gray, image.NewGray(img.Rect))
	if err != nil {
		t.Fatalf("could not show frame: %v", err)
	}

	for _, p := range []string{
		"final-frame/000000.png",
		"final-frame/000001.png",
		"grayscale-difference-frame/000000.png",
	} {
		got := decode(t, filepath.Join(c.OutputPath, p)).Bounds()
		if got != img.Rect {
			t.Errorf("%s: unexpected bounds: got %v, want %v", p, got, img.Rect)
		}
	}
}

func TestShowScaled(t *testing.T) {
	c := newConfig(t, 0.5)
	s := New[image.Image](c, strings.NewReader(""), Image)
	err := s.Show(display.Raw, image.NewRGBA(image.Rect(0, 0, 40, 20)))
	if err != nil {
		t.Fatalf("could not show frame: %v", err)
	}
	got := decode(t, filepath.Join(c.OutputPath, "raw-frame", "000000.png")).Bounds()
	if got.Dx() != 20 || got.Dy() != 10 {
		t.Errorf("unexpected scaled size %dx%d, want 20x10", got.Dx(), got.Dy())
	}
}

func TestShowConvertError(t *testing.T) {
	bad := func(int) (image.Image, error) { return nil, errors.New("bad frame") }
	s := New[int](newConfig(t, 1), strings.NewReader(""), bad)
	if err := s.Show(display.Raw, 0); err == nil {
		t.Error("expected conversion error")
	}
}

func TestWaitKey(t *testing.T) {
	s := New[image.Image](newConfig(t, 1), strings.NewReader("\nn\nq\n"), Image)
	for i, want := range []int{'\n', 'n', 27, 27} {
		if got := s.WaitKey(); got != want {
			t.Errorf("key %d: got %d, want %d", i, got, want)
		}
	}
}

// failingFile discards writes and fails to close.
type failingFile struct {
	closed bool
}

func (f *failingFile) Write(p []byte) (int, error) { return len(p), nil }

func (f *failingFile) Close() error {
	f.closed = true
	return errors.New("disk full")
}

func TestEncodeCloseError(t *testing.T) {
	f := &failingFile{}
	err := encode(f, image.NewGray(image.Rect(0, 0, 4, 4)))
	if err == nil {
		t.Error("expected error from close")
	}
	if !f.closed {
		t.Error("file not closed")
	}
}

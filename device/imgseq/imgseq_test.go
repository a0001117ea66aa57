/*
DESCRIPTION
  imgseq_test.go provides testing of the image sequence source.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package imgseq

import (
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ausocean/objdetect/config"
	"github.com/ausocean/utils/logging"
)

// writePNG writes a w by 4 image to dir/name.
func writePNG(t *testing.T, dir, name string, w int) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("could not create file: %v", err)
	}
	defer f.Close()
	err = png.Encode(f, image.NewGray(image.Rect(0, 0, w, 4)))
	if err != nil {
		t.Fatalf("could not encode image: %v", err)
	}
}

func TestSequence(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "frame002.png", 2)
	writePNG(t, dir, "frame000.png", 10)
	writePNG(t, dir, "frame001.PNG", 1)
	err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a frame"), 0o644)
	if err != nil {
		t.Fatalf("could not write file: %v", err)
	}

	s := New((*logging.TestLogger)(t))
	err = s.Set(config.Config{InputPath: dir})
	if err != nil {
		t.Fatalf("could not set source: %v", err)
	}
	err = s.Start()
	if err != nil {
		t.Fatalf("could not start source: %v", err)
	}
	defer s.Stop()

	for i, want := range []int{10, 1, 2} {
		img, err := s.Next()
		if err != nil {
			t.Fatalf("frame %d: did not expect error: %v", i, err)
		}
		if got := img.Bounds().Dx(); got != want {
			t.Errorf("frame %d: unexpected width: got %d, want %d", i, got, want)
		}
	}
	_, err = s.Next()
	if err != io.EOF {
		t.Errorf("expected io.EOF after last frame, got %v", err)
	}

	err = s.Seek(0)
	if err != nil {
		t.Fatalf("could not seek: %v", err)
	}
	img, err := s.Next()
	if err != nil {
		t.Fatalf("did not expect error after seek: %v", err)
	}
	if got := img.Bounds().Dx(); got != 10 {
		t.Errorf("unexpected width after seek: got %d, want 10", got)
	}

	if err := s.Seek(4); err == nil {
		t.Error("expected error seeking past the end")
	}
}

func TestNotStarted(t *testing.T) {
	s := NewWith((*logging.TestLogger)(t), t.TempDir())
	if _, err := s.Next(); err != ErrNotStarted {
		t.Errorf("expected ErrNotStarted, got %v", err)
	}
	if err := New((*logging.TestLogger)(t)).Start(); err == nil {
		t.Error("expected error starting unset source")
	}
}

func TestBadImage(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "bad.png"), []byte("garbage"), 0o644)
	if err != nil {
		t.Fatalf("could not write file: %v", err)
	}
	s := NewWith((*logging.TestLogger)(t), dir)
	err = s.Start()
	if err != nil {
		t.Fatalf("could not start source: %v", err)
	}
	if _, err := s.Next(); err == nil {
		t.Error("expected decode error")
	}
}

//go:build withcv
// +build withcv

/*
DESCRIPTION
  window.go provides an implementation of the Display interface using OpenCV
  highgui windows.

AUTHORS
  Scott Barnard <scott@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package window provides a Display made of gocv windows.
package window

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/ausocean/objdetect/config"
	"github.com/ausocean/objdetect/display"
)

// Windows shows each named frame in its own window.
type Windows struct {
	windows []*gocv.Window
	byName  map[string]*gocv.Window
	delay   int
}

// New returns a new Windows. Keys are waited for for the KeyDelay of c in
// milliseconds, or indefinitely if it is zero.
func New(c config.Config) *Windows {
	return &Windows{byName: make(map[string]*gocv.Window), delay: int(c.KeyDelay)}
}

// Open creates the windows for names in order, so that they are laid out
// predictably before the first frame arrives.
func (w *Windows) Open(names ...string) {
	for _, n := range names {
		w.window(n)
	}
}

func (w *Windows) window(name string) *gocv.Window {
	win, ok := w.byName[name]
	if !ok {
		win = gocv.NewWindow(name)
		w.byName[name] = win
		w.windows = append(w.windows, win)
	}
	return win
}

// Show displays m in the window called name, creating the window if needed.
func (w *Windows) Show(name string, m gocv.Mat) error {
	if m.Empty() {
		return errors.Errorf("cannot show empty frame in %s", name)
	}
	w.window(name).IMShow(m)
	return nil
}

// WaitKey waits for a key press in any window.
func (w *Windows) WaitKey() int {
	if len(w.windows) == 0 {
		return display.KeyNone
	}
	return w.windows[0].WaitKey(w.delay)
}

// Close frees resources used by gocv. Every window is closed even if closing
// one fails.
func (w *Windows) Close() error {
	err := display.CloseAll(w.windows)
	w.windows = nil
	w.byName = make(map[string]*gocv.Window)
	return err
}

/*
DESCRIPTION
  display.go provides Display, an interface describing where the stages of
  object detection are shown and how key presses are obtained.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package display provides an interface for showing frames and reading keys,
// and the names of the frames shown for each processed frame.
package display

import (
	"io"

	"github.com/ausocean/objdetect/device"
)

// Names of the frames shown for each processed frame.
const (
	Background = "Background Frame"
	Raw        = "Raw Frame"
	Gray       = "Grayscale Difference Frame"
	Binary     = "Binary Difference Frame"
	Denoised   = "Denoised Difference Frame"
	Final      = "Final Frame"
)

// Names holds the frame names in the order they are shown.
var Names = []string{Background, Raw, Gray, Binary, Denoised, Final}

// KeyNone is returned by WaitKey when no key was pressed in time.
const KeyNone = -1

// Display shows frames of type F under a name and reports key presses.
type Display[F any] interface {
	// Show displays f under name, replacing whatever was last shown there.
	Show(name string, f F) error

	// WaitKey waits for a key press and returns its code, or KeyNone.
	WaitKey() int

	// Close releases any resources held by the display.
	Close() error
}

// CloseAll closes each of cs, returning a device.MultiError holding every
// error encountered, or nil.
func CloseAll[C io.Closer](cs []C) error {
	var errs device.MultiError
	for _, c := range cs {
		err := c.Close()
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) != 0 {
		return errs
	}
	return nil
}

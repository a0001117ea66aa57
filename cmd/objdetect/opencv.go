//go:build withcv
// +build withcv

/*
DESCRIPTION
  opencv.go wires the gocv detection pipeline to its sources and displays.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package main

import (
	"context"
	"image"
	"io"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/ausocean/objdetect/config"
	"github.com/ausocean/objdetect/detect"
	"github.com/ausocean/objdetect/device/capture"
	"github.com/ausocean/objdetect/display"
	"github.com/ausocean/objdetect/display/snapshot"
	"github.com/ausocean/objdetect/display/window"
	"github.com/ausocean/objdetect/driver"
)

// runOpenCV runs detection on any video file OpenCV can decode with the gocv
// pipeline.
func runOpenCV(ctx context.Context, cfg config.Config, keys io.Reader, updates <-chan map[string]string) error {
	src := capture.New(cfg.Logger)
	err := src.Set(cfg)
	if err != nil {
		return errors.Wrap(driver.ErrOpen, err.Error())
	}
	err = src.Start()
	if err != nil {
		return errors.Wrap(driver.ErrOpen, err.Error())
	}

	p, err := detect.NewOpenCV(detect.ParamsFrom(cfg))
	if err != nil {
		src.Stop()
		return errors.Wrap(err, "could not create pipeline")
	}

	var disp display.Display[gocv.Mat]
	switch cfg.Display {
	case config.DisplaySnapshot:
		disp = snapshot.New[gocv.Mat](cfg, keys, matToImage)
	default:
		w := window.New(cfg)
		w.Open(display.Names...)
		disp = w
	}

	return run(ctx, cfg, driver.New[gocv.Mat](cfg, src, p, disp), updates)
}

func matToImage(m gocv.Mat) (image.Image, error) { return m.ToImage() }

// matWindows shows images in gocv windows.
type matWindows struct {
	*window.Windows
}

// Show converts img to a Mat and shows it in the window called name.
func (w matWindows) Show(name string, img image.Image) error {
	m, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return errors.Wrapf(err, "could not convert %s", name)
	}
	defer m.Close()
	return w.Windows.Show(name, m)
}

// imageWindows returns a window display for image frames.
func imageWindows(cfg config.Config) (display.Display[image.Image], error) {
	w := window.New(cfg)
	w.Open(display.Names...)
	return matWindows{w}, nil
}

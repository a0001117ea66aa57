//go:build !withcv
// +build !withcv

/*
DESCRIPTION
  nocv.go replaces the gocv wiring for builds without OpenCV, falling back to
  the pure Go pipeline.

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

	"github.com/ausocean/objdetect/config"
	"github.com/ausocean/objdetect/display"
)

// runOpenCV uses the pure Go pipeline, since OpenCV is unavailable.
func runOpenCV(ctx context.Context, cfg config.Config, keys io.Reader, updates <-chan map[string]string) error {
	cfg.Logger.Warning(pkg + "built without OpenCV, using native backend")
	return runNative(ctx, cfg, keys, updates)
}

// imageWindows is unavailable without OpenCV.
func imageWindows(cfg config.Config) (display.Display[image.Image], error) {
	return nil, errors.New("window display requires a build with the withcv tag")
}

/*
DESCRIPTION
  native.go wires the pure Go detection pipeline to its sources and displays.

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
	"github.com/ausocean/objdetect/detect"
	"github.com/ausocean/objdetect/device"
	"github.com/ausocean/objdetect/display"
	"github.com/ausocean/objdetect/display/snapshot"
	"github.com/ausocean/objdetect/driver"
)

// runNative runs detection on an MJPEG file or image directory with the pure
// Go pipeline.
func runNative(ctx context.Context, cfg config.Config, keys io.Reader, updates <-chan map[string]string) error {
	src, err := device.Open(cfg)
	if err != nil {
		return errors.Wrap(driver.ErrOpen, err.Error())
	}

	p, err := detect.NewNative(detect.ParamsFrom(cfg))
	if err != nil {
		src.Stop()
		return errors.Wrap(err, "could not create pipeline")
	}

	var disp display.Display[image.Image]
	if cfg.Display == config.DisplayWindow {
		disp, err = imageWindows(cfg)
		if err != nil {
			cfg.Logger.Warning(pkg+"window display unavailable, saving snapshots", "error", err.Error())
		}
	}
	if disp == nil {
		disp = snapshot.New[image.Image](cfg, keys, snapshot.Image)
	}

	return run(ctx, cfg, driver.New[image.Image](cfg, src, p, disp), updates)
}

/*
DESCRIPTION
  driver.go provides Driver, which reads frames from a source, runs them
  through a detection pipeline and shows every stage on a display until the
  exit key is pressed.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package driver provides the frame loop that ties a video source, a
// detection pipeline and a display together.
package driver

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/ausocean/objdetect/config"
	"github.com/ausocean/objdetect/detect"
	"github.com/ausocean/objdetect/device"
	"github.com/ausocean/objdetect/display"
	"github.com/ausocean/utils/logging"
)

var (
	// ErrOpen is returned by Run when the source could not be started.
	ErrOpen = errors.New("unable to open source")

	// ErrEmptyStream is returned by Run when the source reaches its end twice
	// without producing a frame.
	ErrEmptyStream = errors.New("stream has no frames")
)

// Driver runs the detection loop for frames of type F.
type Driver[F any] struct {
	cfg     config.Config
	src     device.Source[F]
	pipe    detect.Pipeline[F]
	disp    display.Display[F]
	updates <-chan map[string]string
	timings Timings
	frame   int // Position of the last frame read, counting from 1.
	log     logging.Logger
}

// New returns a new Driver. The Logger and ExitKey of c are used by the
// loop; c is otherwise kept so that updates can be applied to it.
func New[F any](c config.Config, src device.Source[F], p detect.Pipeline[F], d display.Display[F]) *Driver[F] {
	return &Driver[F]{cfg: c, src: src, pipe: p, disp: d, log: c.Logger}
}

// Watch sets a channel of variable updates, such as those from a
// config.Watcher, that are applied between frames.
func (d *Driver[F]) Watch(updates <-chan map[string]string) { d.updates = updates }

// Config returns a copy of the driver's current config.
func (d *Driver[F]) Config() config.Config { return d.cfg }

// Timings returns the processing times recorded so far.
func (d *Driver[F]) Timings() *Timings { return &d.timings }

// Update applies vars to the driver's config, sets the logger's level and
// reconfigures the pipeline with the result.
func (d *Driver[F]) Update(vars map[string]string) error {
	d.cfg.Update(vars)
	err := d.cfg.Validate()
	if err != nil {
		return errors.Wrap(err, "invalid config")
	}
	d.log.SetLevel(d.cfg.LogLevel)
	err = d.pipe.Configure(detect.ParamsFrom(d.cfg))
	if err != nil {
		return errors.Wrap(err, "could not configure pipeline")
	}
	d.log.Info("config updated", "vars", vars)
	return nil
}

// poll applies a pending update, if there is one, without blocking.
func (d *Driver[F]) poll() {
	select {
	case vars := <-d.updates:
		err := d.Update(vars)
		if err != nil {
			d.log.Warning("could not apply update", "error", err.Error())
		}
	default:
	}
}

// Run starts the source if needed, takes its first frame as the reference and
// then processes frames until the exit key is pressed or ctx is done. The
// stream restarts from its first frame whenever it ends. Run returns nil when
// the exit key is pressed.
func (d *Driver[F]) Run(ctx context.Context) error {
	if !d.src.IsRunning() {
		err := d.src.Start()
		if err != nil {
			return errors.Wrap(ErrOpen, err.Error())
		}
	}

	ref, err := d.src.Next()
	switch {
	case err == io.EOF:
		return ErrEmptyStream
	case err != nil:
		return errors.Wrap(err, "could not read reference frame")
	}
	err = d.pipe.SetReference(ref)
	if err != nil {
		return errors.Wrap(err, "could not set reference frame")
	}
	d.frame = 1
	d.log.Info("reference frame set", "source", d.src.Name())

	var restarted bool
	for {
		d.poll()

		cur, err := d.src.Next()
		if err == io.EOF {
			if restarted {
				return ErrEmptyStream
			}
			d.log.Info("end of stream, restarting", "frames", d.frame)
			err = d.src.Seek(0)
			if err != nil {
				return errors.Wrap(err, "could not restart stream")
			}
			d.frame = 0
			restarted = true
			continue
		}
		if err != nil {
			return errors.Wrap(err, "could not read frame")
		}
		restarted = false
		d.frame++

		err = d.step(cur)
		if err != nil {
			return errors.Wrapf(err, "could not process frame %d", d.frame)
		}

		key := d.disp.WaitKey()
		if key == d.cfg.ExitKey {
			d.log.Info("exit key pressed", "frame", d.frame)
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}
}

// step processes cur, annotates the final frame with the frame number and
// processing time, and shows every stage.
func (d *Driver[F]) step(cur F) error {
	start := time.Now()
	det, err := d.pipe.Process(cur)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	d.timings.Add(elapsed)

	st := d.pipe.Stages()
	err = d.pipe.WriteText(st.Final, detect.FrameInfo(d.frame, elapsed), detect.FrameInfoOrigin)
	if err != nil {
		return errors.Wrap(err, "could not write frame info")
	}

	if det != nil {
		d.log.Debug("object detected", "frame", d.frame, "area", det.Area, "x", det.Center.X, "y", det.Center.Y)
	}

	for _, s := range []struct {
		name  string
		frame F
	}{
		{display.Background, st.Reference},
		{display.Raw, cur},
		{display.Gray, st.Gray},
		{display.Binary, st.Binary},
		{display.Denoised, st.Denoised},
		{display.Final, st.Final},
	} {
		err = d.disp.Show(s.name, s.frame)
		if err != nil {
			return errors.Wrapf(err, "could not show %s", s.name)
		}
	}
	return nil
}

// Close stops the source and closes the pipeline and display, returning all
// errors encountered.
func (d *Driver[F]) Close() error {
	var errs device.MultiError
	if d.src.IsRunning() {
		if err := d.src.Stop(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := d.pipe.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := d.disp.Close(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) != 0 {
		return errs
	}
	return nil
}

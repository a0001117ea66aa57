/*
DESCRIPTION
  config.go provides the Config struct holding the parameters of an
  objdetect run, along with validation and string map based updating.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package config contains the configuration settings for objdetect.
package config

import (
	"github.com/ausocean/utils/logging"
)

// Pipeline backends.
const (
	BackendOpenCV = iota
	BackendNative
)

// Display collaborators.
const (
	DisplayWindow = iota
	DisplaySnapshot
)

// Structuring element shapes used for erosion and dilation.
const (
	KernelRect = iota
	KernelCross
	KernelEllipse
)

// MaxKernelSize is the largest structuring element size accepted.
const MaxKernelSize = 31

// Config provides parameters relevant to an objdetect run. Zero values are
// treated as unset and are defaulted by Validate.
type Config struct {
	// Backend selects the image processing implementation, either
	// BackendOpenCV (gocv) or BackendNative (pure Go).
	Backend uint8

	// Display selects where the processing stages are shown. DisplayWindow
	// uses OpenCV windows, DisplaySnapshot writes images to OutputPath.
	Display uint8

	// Threshold is the grayscale difference a pixel must exceed to be
	// considered changed. Valid values are 1 to 255.
	Threshold uint

	ErodeIterations  uint // Number of erosion passes applied to the binary difference frame.
	DilateIterations uint // Number of dilation passes applied after erosion.

	// NoErode and NoDilate are set when zero passes were explicitly
	// requested, so that Validate keeps a zero count instead of defaulting it.
	NoErode  bool
	NoDilate bool

	KernelShape uint8 // Shape of the structuring element, one of KernelRect, KernelCross or KernelEllipse.
	KernelSize  uint  // Width and height of the structuring element, must be odd and at most MaxKernelSize.

	// ExitKey is the key code that stops the run. Any other key advances to
	// the next frame.
	ExitKey int

	// KeyDelay is the time in milliseconds to wait for a key press after
	// showing a frame. Zero blocks until a key is pressed.
	KeyDelay uint

	// InputPath is the location of the video. For the native backend this may
	// be an MJPEG file or a directory of images.
	InputPath string

	// Logger holds an implementation of the Logger interface. This must be set
	// for objdetect to work correctly.
	Logger logging.Logger

	// LogLevel is the logging verbosity level.
	// Valid values are defined by enums from the logger package: logging.Debug,
	// logging.Info, logging.Warning logging.Error, logging.Fatal.
	LogLevel int8

	LogPath  string // Location of the rotated log file.
	Suppress bool   // Holds logger suppression state.

	// OutputPath is the directory snapshots are written to when the snapshot
	// display is used.
	OutputPath string

	// SnapshotScale is the factor snapshot images are scaled by before being
	// written. Valid values are in (0, 1].
	SnapshotScale float64

	// TimingPlot is the path of a PNG plot of per frame processing times
	// written at the end of a run. No plot is written if empty.
	TimingPlot string
}

// Validate checks for any errors in the config fields and defaults settings
// if particular parameters have not been defined.
func (c *Config) Validate() error {
	for _, v := range Variables {
		if v.Validate != nil {
			v.Validate(c)
		}
	}
	return nil
}

// Update takes a map of configuration variable names and their corresponding
// values, parses the string values and converting into correct type, and then
// sets the config struct fields as appropriate.
func (c *Config) Update(vars map[string]string) {
	for _, value := range Variables {
		if v, ok := vars[value.Name]; ok && value.Update != nil {
			value.Update(c, v)
		}
	}
}

func (c *Config) LogInvalidField(name string, def interface{}) {
	c.Logger.Info(name+" bad or unset, defaulting", name, def)
}

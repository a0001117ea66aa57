/*
DESCRIPTION
  variables.go contains a list of structs that provide a variable Name, type in
  a string format, a function for updating the variable in the Config struct
  from a string, and finally, a validation function to check the validity of the
  corresponding field value in the Config.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ausocean/utils/logging"
)

// Config map Keys.
const (
	KeyBackend          = "Backend"
	KeyDilateIterations = "DilateIterations"
	KeyDisplay          = "Display"
	KeyErodeIterations  = "ErodeIterations"
	KeyExitKey          = "ExitKey"
	KeyInputPath        = "InputPath"
	KeyKernelShape      = "KernelShape"
	KeyKernelSize       = "KernelSize"
	KeyKeyDelay         = "KeyDelay"
	KeyLogging          = "logging"
	KeyLogPath          = "LogPath"
	KeyOutputPath       = "OutputPath"
	KeySnapshotScale    = "SnapshotScale"
	KeySuppress         = "Suppress"
	KeyThreshold        = "Threshold"
	KeyTimingPlot       = "TimingPlot"
)

// Config map parameter types.
const (
	typeString = "string"
	typeInt    = "int"
	typeUint   = "uint"
	typeBool   = "bool"
	typeFloat  = "float"
)

// Default variable values.
const (
	defaultBackend       = BackendOpenCV
	defaultDisplay       = DisplayWindow
	defaultVerbosity     = logging.Info
	defaultLogPath       = "objdetect.log"
	defaultOutputPath    = "frames"
	defaultSnapshotScale = 1.0

	// Detection pipeline defaults.
	defaultThreshold        = 50
	defaultErodeIterations  = 3
	defaultDilateIterations = 3
	defaultKernelShape      = KernelRect
	defaultKernelSize       = 3

	// Escape.
	defaultExitKey = 27
)

// Variables describes the variables that can be used for objdetect control.
// These structs provide the name and type of variable, a function for updating
// this variable in a Config, and a function for validating the value of the variable.
var Variables = []struct {
	Name     string
	Type     string
	Update   func(*Config, string)
	Validate func(*Config)
}{
	{
		Name: KeyBackend,
		Type: "enum:opencv,native",
		Update: func(c *Config, v string) {
			c.Backend = parseEnum(KeyBackend, v, map[string]uint8{"opencv": BackendOpenCV, "native": BackendNative}, c)
		},
		Validate: func(c *Config) {
			if c.Backend > BackendNative {
				c.LogInvalidField(KeyBackend, defaultBackend)
				c.Backend = defaultBackend
			}
		},
	},
	{
		Name:   KeyDilateIterations,
		Type:   typeUint,
		Update: func(c *Config, v string) {
			c.DilateIterations, c.NoDilate = parseIterations(KeyDilateIterations, v, c)
		},
		Validate: func(c *Config) {
			if c.NoDilate {
				c.DilateIterations = 0
				return
			}
			c.DilateIterations = lessThanOrEqual(KeyDilateIterations, c.DilateIterations, 0, c, defaultDilateIterations)
		},
	},
	{
		Name: KeyDisplay,
		Type: "enum:window,snapshot",
		Update: func(c *Config, v string) {
			c.Display = parseEnum(KeyDisplay, v, map[string]uint8{"window": DisplayWindow, "snapshot": DisplaySnapshot}, c)
		},
		Validate: func(c *Config) {
			if c.Display > DisplaySnapshot {
				c.LogInvalidField(KeyDisplay, defaultDisplay)
				c.Display = defaultDisplay
			}
		},
	},
	{
		Name:   KeyErodeIterations,
		Type:   typeUint,
		Update: func(c *Config, v string) {
			c.ErodeIterations, c.NoErode = parseIterations(KeyErodeIterations, v, c)
		},
		Validate: func(c *Config) {
			if c.NoErode {
				c.ErodeIterations = 0
				return
			}
			c.ErodeIterations = lessThanOrEqual(KeyErodeIterations, c.ErodeIterations, 0, c, defaultErodeIterations)
		},
	},
	{
		Name:   KeyExitKey,
		Type:   typeInt,
		Update: func(c *Config, v string) { c.ExitKey = parseInt(KeyExitKey, v, c) },
		Validate: func(c *Config) {
			if c.ExitKey <= 0 {
				c.LogInvalidField(KeyExitKey, defaultExitKey)
				c.ExitKey = defaultExitKey
			}
		},
	},
	{
		Name:   KeyInputPath,
		Type:   typeString,
		Update: func(c *Config, v string) { c.InputPath = v },
	},
	{
		Name: KeyKernelShape,
		Type: "enum:rect,cross,ellipse",
		Update: func(c *Config, v string) {
			c.KernelShape = parseEnum(
				KeyKernelShape,
				v,
				map[string]uint8{
					"rect":    KernelRect,
					"cross":   KernelCross,
					"ellipse": KernelEllipse,
				},
				c,
			)
		},
		Validate: func(c *Config) {
			if c.KernelShape > KernelEllipse {
				c.LogInvalidField(KeyKernelShape, defaultKernelShape)
				c.KernelShape = defaultKernelShape
			}
		},
	},
	{
		Name:   KeyKernelSize,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.KernelSize = parseUint(KeyKernelSize, v, c) },
		Validate: func(c *Config) {
			if c.KernelSize == 0 || c.KernelSize%2 == 0 || c.KernelSize > MaxKernelSize {
				c.LogInvalidField(KeyKernelSize, defaultKernelSize)
				c.KernelSize = defaultKernelSize
			}
		},
	},
	{
		Name:   KeyKeyDelay,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.KeyDelay = parseUint(KeyKeyDelay, v, c) },
	},
	{
		Name: KeyLogging,
		Type: "enum:Debug,Info,Warning,Error,Fatal",
		Update: func(c *Config, v string) {
			switch v {
			case "Debug":
				c.LogLevel = logging.Debug
			case "Info":
				c.LogLevel = logging.Info
			case "Warning":
				c.LogLevel = logging.Warning
			case "Error":
				c.LogLevel = logging.Error
			case "Fatal":
				c.LogLevel = logging.Fatal
			default:
				c.Logger.Warning("invalid Logging param", "value", v)
			}
		},
		Validate: func(c *Config) {
			switch c.LogLevel {
			case logging.Debug, logging.Info, logging.Warning, logging.Error, logging.Fatal:
			default:
				c.LogInvalidField("LogLevel", defaultVerbosity)
				c.LogLevel = defaultVerbosity
			}
		},
	},
	{
		Name:   KeyLogPath,
		Type:   typeString,
		Update: func(c *Config, v string) { c.LogPath = v },
		Validate: func(c *Config) {
			if c.LogPath == "" {
				c.LogInvalidField(KeyLogPath, defaultLogPath)
				c.LogPath = defaultLogPath
			}
		},
	},
	{
		Name:   KeyOutputPath,
		Type:   typeString,
		Update: func(c *Config, v string) { c.OutputPath = v },
		Validate: func(c *Config) {
			if c.OutputPath == "" {
				c.LogInvalidField(KeyOutputPath, defaultOutputPath)
				c.OutputPath = defaultOutputPath
			}
		},
	},
	{
		Name: KeySnapshotScale,
		Type: typeFloat,
		Update: func(c *Config, v string) {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				c.Logger.Warning("invalid SnapshotScale param", "value", v)
			}
			c.SnapshotScale = f
		},
		Validate: func(c *Config) {
			if c.SnapshotScale <= 0 || c.SnapshotScale > 1 {
				c.LogInvalidField(KeySnapshotScale, defaultSnapshotScale)
				c.SnapshotScale = defaultSnapshotScale
			}
		},
	},
	{
		Name: KeySuppress,
		Type: typeBool,
		Update: func(c *Config, v string) {
			c.Suppress = parseBool(KeySuppress, v, c)
			if l, ok := c.Logger.(*logging.JSONLogger); ok {
				l.SetSuppress(c.Suppress)
			}
		},
	},
	{
		Name:   KeyThreshold,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.Threshold = parseUint(KeyThreshold, v, c) },
		Validate: func(c *Config) {
			if c.Threshold == 0 || c.Threshold > 255 {
				c.LogInvalidField(KeyThreshold, defaultThreshold)
				c.Threshold = defaultThreshold
			}
		},
	},
	{
		Name:   KeyTimingPlot,
		Type:   typeString,
		Update: func(c *Config, v string) { c.TimingPlot = v },
	},
}

func parseUint(n, v string, c *Config) uint {
	_v, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		c.Logger.Warning(fmt.Sprintf("expected unsigned int for param %s", n), "value", v)
	}
	return uint(_v)
}

// parseIterations parses a pass count, reporting whether zero passes were
// explicitly requested. Unparseable values leave the count unset.
func parseIterations(n, v string, c *Config) (uint, bool) {
	_v, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		c.Logger.Warning(fmt.Sprintf("expected unsigned int for param %s", n), "value", v)
		return 0, false
	}
	return uint(_v), _v == 0
}

func parseInt(n, v string, c *Config) int {
	_v, err := strconv.Atoi(v)
	if err != nil {
		c.Logger.Warning(fmt.Sprintf("expected integer for param %s", n), "value", v)
	}
	return _v
}

func parseBool(n, v string, c *Config) (b bool) {
	switch strings.ToLower(v) {
	case "true":
		b = true
	case "false":
		b = false
	default:
		c.Logger.Warning(fmt.Sprintf("expect bool for param %s", n), "value", v)
	}
	return
}

func parseEnum(n, v string, enums map[string]uint8, c *Config) uint8 {
	_v, ok := enums[strings.ToLower(v)]
	if !ok {
		c.Logger.Warning(fmt.Sprintf("invalid value for %s param", n), "value", v)
	}
	return _v
}

func lessThanOrEqual(n string, v, cmp uint, c *Config, def uint) uint {
	if v <= cmp {
		c.LogInvalidField(n, def)
		return def
	}
	return v
}

/*
DESCRIPTION
  config_test.go provides testing for the Config struct methods (Validate and Update).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package config

import (
	"testing"

	"github.com/ausocean/utils/logging"
	"github.com/google/go-cmp/cmp"
)

type dumbLogger struct{}

func (dl *dumbLogger) Log(l int8, m string, a ...interface{})  {}
func (dl *dumbLogger) SetLevel(l int8)                         {}
func (dl *dumbLogger) Debug(msg string, args ...interface{})   {}
func (dl *dumbLogger) Info(msg string, args ...interface{})    {}
func (dl *dumbLogger) Warning(msg string, args ...interface{}) {}
func (dl *dumbLogger) Error(msg string, args ...interface{})   {}
func (dl *dumbLogger) Fatal(msg string, args ...interface{})   {}

func TestValidate(t *testing.T) {
	dl := &dumbLogger{}

	want := Config{
		Logger:           dl,
		Backend:          defaultBackend,
		Display:          defaultDisplay,
		Threshold:        defaultThreshold,
		ErodeIterations:  defaultErodeIterations,
		DilateIterations: defaultDilateIterations,
		KernelShape:      defaultKernelShape,
		KernelSize:       defaultKernelSize,
		ExitKey:          defaultExitKey,
		LogLevel:         defaultVerbosity,
		LogPath:          defaultLogPath,
		OutputPath:       defaultOutputPath,
		SnapshotScale:    defaultSnapshotScale,
	}

	got := Config{Logger: dl}
	err := (&got).Validate()
	if err != nil {
		t.Fatalf("did not expect error: %v", err)
	}

	if !cmp.Equal(got, want) {
		t.Errorf("configs not equal\nwant: %v\ngot: %v", want, got)
	}
}

func TestValidateBadValues(t *testing.T) {
	tests := []struct {
		name string
		in   Config
		want func(Config) bool
	}{
		{
			name: "threshold too large",
			in:   Config{Threshold: 300},
			want: func(c Config) bool { return c.Threshold == defaultThreshold },
		},
		{
			name: "even kernel",
			in:   Config{KernelSize: 4},
			want: func(c Config) bool { return c.KernelSize == defaultKernelSize },
		},
		{
			name: "kernel too large",
			in:   Config{KernelSize: 200001},
			want: func(c Config) bool { return c.KernelSize == defaultKernelSize },
		},
		{
			name: "largest kernel kept",
			in:   Config{KernelSize: MaxKernelSize},
			want: func(c Config) bool { return c.KernelSize == MaxKernelSize },
		},
		{
			name: "odd kernel kept",
			in:   Config{KernelSize: 5},
			want: func(c Config) bool { return c.KernelSize == 5 },
		},
		{
			name: "scale above one",
			in:   Config{SnapshotScale: 1.5},
			want: func(c Config) bool { return c.SnapshotScale == defaultSnapshotScale },
		},
		{
			name: "unknown backend",
			in:   Config{Backend: 9},
			want: func(c Config) bool { return c.Backend == defaultBackend },
		},
		{
			name: "independent dilation",
			in:   Config{ErodeIterations: 2, DilateIterations: 5},
			want: func(c Config) bool { return c.ErodeIterations == 2 && c.DilateIterations == 5 },
		},
	}

	for _, test := range tests {
		c := test.in
		c.Logger = (*logging.TestLogger)(t)
		err := c.Validate()
		if err != nil {
			t.Fatalf("%s: did not expect error: %v", test.name, err)
		}
		if !test.want(c) {
			t.Errorf("%s: unexpected config after validation: %+v", test.name, c)
		}
	}
}

func TestUpdateZeroIterations(t *testing.T) {
	c := Config{Logger: (*logging.TestLogger)(t)}
	c.Update(map[string]string{KeyErodeIterations: "0", KeyDilateIterations: "0"})
	err := c.Validate()
	if err != nil {
		t.Fatalf("did not expect error: %v", err)
	}
	if c.ErodeIterations != 0 || c.DilateIterations != 0 {
		t.Errorf("explicit zero passes not kept: erode %d, dilate %d", c.ErodeIterations, c.DilateIterations)
	}

	c.Update(map[string]string{KeyErodeIterations: "2", KeyDilateIterations: "bad"})
	err = c.Validate()
	if err != nil {
		t.Fatalf("did not expect error: %v", err)
	}
	if c.ErodeIterations != 2 || c.NoErode {
		t.Errorf("unexpected erosion after update: %d, NoErode %v", c.ErodeIterations, c.NoErode)
	}
	if c.DilateIterations != defaultDilateIterations {
		t.Errorf("bad dilation value not defaulted: got %d", c.DilateIterations)
	}
}

func TestUpdate(t *testing.T) {
	updateMap := map[string]string{
		"Backend":          "native",
		"DilateIterations": "4",
		"Display":          "snapshot",
		"ErodeIterations":  "2",
		"ExitKey":          "113",
		"InputPath":        "/inputpath",
		"KernelShape":      "cross",
		"KernelSize":       "5",
		"KeyDelay":         "40",
		"logging":          "Error",
		"LogPath":          "/logpath",
		"OutputPath":       "/outputpath",
		"SnapshotScale":    "0.5",
		"Suppress":         "true",
		"Threshold":        "30",
		"TimingPlot":       "/plot.png",
	}

	dl := &dumbLogger{}

	want := Config{
		Logger:           dl,
		Backend:          BackendNative,
		DilateIterations: 4,
		Display:          DisplaySnapshot,
		ErodeIterations:  2,
		ExitKey:          113,
		InputPath:        "/inputpath",
		KernelShape:      KernelCross,
		KernelSize:       5,
		KeyDelay:         40,
		LogLevel:         logging.Error,
		LogPath:          "/logpath",
		OutputPath:       "/outputpath",
		SnapshotScale:    0.5,
		Suppress:         true,
		Threshold:        30,
		TimingPlot:       "/plot.png",
	}

	got := Config{Logger: dl}
	got.Update(updateMap)
	if !cmp.Equal(want, got) {
		t.Errorf("configs not equal\nwant: %v\ngot: %v", want, got)
	}
}

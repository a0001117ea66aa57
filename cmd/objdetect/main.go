/*
DESCRIPTION
  objdetect detects the largest moving object in a video by comparing each
  frame against the first, showing every stage of the comparison.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main is a command for background subtraction object detection.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/objdetect/config"
	"github.com/ausocean/objdetect/driver"
	"github.com/ausocean/utils/logging"
)

// Current software version.
const version = "v1.0.0"

// Logging configuration.
const (
	logPath      = "objdetect.log"
	logMaxSize   = 500 // MB
	logMaxBackup = 10
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = false
)

// Misc constants.
const (
	profilePath = "objdetect.prof"
	pkg         = "objdetect: "
)

// This is set to true if the 'profile' build tag is provided on build.
var canProfile = false

// flagVars maps command line flags to the config variables they set. Flags
// take precedence over values from a config file.
var flagVars = []struct {
	name, key, usage string
}{
	{"backend", config.KeyBackend, "detection backend: opencv or native"},
	{"display", config.KeyDisplay, "display: window or snapshot"},
	{"out", config.KeyOutputPath, "snapshot output directory"},
	{"threshold", config.KeyThreshold, "binary threshold for the difference frame"},
	{"erode", config.KeyErodeIterations, "erosion iterations"},
	{"dilate", config.KeyDilateIterations, "dilation iterations"},
	{"kernel", config.KeyKernelShape, "structuring element: rect, cross or ellipse"},
	{"kernel-size", config.KeyKernelSize, "structuring element size, odd"},
	{"delay", config.KeyKeyDelay, "milliseconds to wait for a key, 0 waits forever"},
	{"plot", config.KeyTimingPlot, "file to save a plot of processing times to"},
	{"log", config.KeyLogPath, "log file path"},
}

func main() {
	showVersion := flag.Bool("v", false, "show version")
	configPath := flag.String("config", "", "path of a Key=Value config file, watched for changes")
	for _, f := range flagVars {
		flag.String(f.name, "", f.usage)
	}
	flag.Parse()
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	vars := make(map[string]string)
	if *configPath != "" {
		var err error
		vars, err = config.ReadFile(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, pkg+err.Error())
			os.Exit(1)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		for _, v := range flagVars {
			if v.name == f.Name {
				vars[v.key] = f.Value.String()
			}
		}
	})

	path := logPath
	if p, ok := vars[config.KeyLogPath]; ok && p != "" {
		path = p
	}

	// Create lumberjack logger to handle logging to file.
	fileLog := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	defer fileLog.Close()

	// Create logger that we call methods on to log, which in turn writes to the
	// lumberjack logger.
	log := logging.New(logVerbosity, fileLog, logSuppress)
	log.Info("starting objdetect", "version", version)

	if canProfile {
		profile(log)
		defer pprof.StopCPUProfile()
		log.Info("profiling started")
	}

	in := bufio.NewReader(os.Stdin)
	input := flag.Arg(0)
	if input == "" {
		fmt.Print("Enter video file: ")
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			log.Error(pkg+"could not read video file path", "error", err.Error())
			os.Exit(1)
		}
		input = strings.TrimSpace(line)
	}

	cfg := config.Config{Logger: log}
	cfg.Update(vars)
	cfg.InputPath = input
	err := cfg.Validate()
	if err != nil {
		log.Fatal(pkg+"invalid config", "error", err.Error())
	}
	log.SetLevel(cfg.LogLevel)

	var updates <-chan map[string]string
	if *configPath != "" {
		w, err := config.NewWatcher(*configPath, log)
		if err != nil {
			log.Warning(pkg+"could not watch config file", "error", err.Error())
		} else {
			defer w.Close()
			updates = w.Updates()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch cfg.Backend {
	case config.BackendNative:
		err = runNative(ctx, cfg, in, updates)
	default:
		err = runOpenCV(ctx, cfg, in, updates)
	}

	switch {
	case err == nil, errors.Is(err, context.Canceled):
		log.Info("objdetect finished")
	case errors.Is(err, driver.ErrOpen):
		log.Error(pkg+"could not open input", "path", input, "error", err.Error())
		fmt.Printf("Unable to open %s\n", input)
		in.ReadString('\n')
		os.Exit(1)
	default:
		log.Error(pkg+"detection failed", "error", err.Error())
		fmt.Fprintln(os.Stderr, pkg+err.Error())
		os.Exit(1)
	}
}

// run prints usage information for the opened stream, runs d until it
// finishes and reports its processing times.
func run[F any](ctx context.Context, cfg config.Config, d *driver.Driver[F], updates <-chan map[string]string) error {
	defer func() {
		err := d.Close()
		if err != nil {
			cfg.Logger.Error(pkg+"could not close driver", "error", err.Error())
		}
	}()

	fmt.Printf("%s is opened\n", cfg.InputPath)
	fmt.Println("Press ESCAPE key to exit")
	fmt.Println("Press any other key to go to the next frame")

	d.Watch(updates)
	err := d.Run(ctx)

	t := d.Timings()
	t.Log(cfg.Logger)
	if cfg.TimingPlot != "" && t.Len() != 0 {
		perr := t.Plot(cfg.TimingPlot)
		if perr != nil {
			cfg.Logger.Warning(pkg+"could not plot timings", "error", perr.Error())
		}
	}
	return err
}

func profile(l logging.Logger) {
	f, err := os.Create(profilePath)
	if err != nil {
		l.Fatal(pkg+"could not create CPU profile", "error", err.Error())
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		l.Fatal(pkg+"could not start CPU profile", "error", err.Error())
	}
}

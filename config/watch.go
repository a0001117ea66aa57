/*
DESCRIPTION
  watch.go provides reading of configuration variables from a file and a
  Watcher that delivers new variables whenever that file changes.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package config

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/ausocean/utils/logging"
)

// ReadVars parses Key=Value lines from r. Blank lines and lines starting
// with # are ignored. Later lines override earlier ones.
func ReadVars(r io.Reader) (map[string]string, error) {
	vars := make(map[string]string)
	s := bufio.NewScanner(r)
	for n := 1; s.Scan(); n++ {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			return nil, errors.Errorf("line %d: expected Key=Value, got %q", n, line)
		}
		vars[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "could not scan config")
	}
	return vars, nil
}

// ReadFile reads configuration variables from the file at path.
func ReadFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not open config file")
	}
	defer f.Close()
	return ReadVars(f)
}

// Watcher delivers the variables of a config file each time the file is
// written. Only the most recent, unconsumed set of variables is kept.
type Watcher struct {
	path    string
	log     logging.Logger
	fw      *fsnotify.Watcher
	updates chan map[string]string
	done    chan struct{}
}

// NewWatcher starts watching the config file at path. The directory holding
// the file is watched so that editors replacing the file are noticed.
func NewWatcher(path string, l logging.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "could not create file watcher")
	}
	err = fw.Add(filepath.Dir(path))
	if err != nil {
		fw.Close()
		return nil, errors.Wrap(err, "could not watch config directory")
	}
	w := &Watcher{
		path:    filepath.Clean(path),
		log:     l,
		fw:      fw,
		updates: make(chan map[string]string, 1),
		done:    make(chan struct{}),
	}
	go w.watch()
	return w, nil
}

// Updates returns the channel on which new variables are delivered.
func (w *Watcher) Updates() <-chan map[string]string { return w.updates }

// Close stops watching.
func (w *Watcher) Close() error {
	err := w.fw.Close()
	<-w.done
	return err
}

func (w *Watcher) watch() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			vars, err := ReadFile(w.path)
			if err != nil {
				w.log.Warning("could not read changed config", "path", w.path, "error", err.Error())
				continue
			}
			w.log.Debug("config file changed", "path", w.path, "vars", len(vars))

			// Replace any update that has not been consumed yet.
			select {
			case <-w.updates:
			default:
			}
			w.updates <- vars
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.log.Error("config watcher error", "error", err.Error())
		}
	}
}

/*
DESCRIPTION
  watch_test.go provides testing for config file reading and watching.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ausocean/utils/logging"
	"github.com/google/go-cmp/cmp"
)

func TestReadVars(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    map[string]string
		wantErr bool
	}{
		{
			name: "empty",
			in:   "",
			want: map[string]string{},
		},
		{
			name: "comments and spacing",
			in:   "# pipeline\nThreshold = 40\n\n  ErodeIterations=2\n",
			want: map[string]string{"Threshold": "40", "ErodeIterations": "2"},
		},
		{
			name: "later wins",
			in:   "Threshold=40\nThreshold=60\n",
			want: map[string]string{"Threshold": "60"},
		},
		{
			name:    "missing separator",
			in:      "Threshold 40\n",
			wantErr: true,
		},
	}

	for _, test := range tests {
		got, err := ReadVars(strings.NewReader(test.in))
		if (err != nil) != test.wantErr {
			t.Errorf("%s: unexpected error state: %v", test.name, err)
			continue
		}
		if test.wantErr {
			continue
		}
		if !cmp.Equal(got, test.want) {
			t.Errorf("%s: did not get expected vars\nwant: %v\ngot: %v", test.name, test.want, got)
		}
	}
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "objdetect.conf")
	err := os.WriteFile(path, []byte("Threshold=50\n"), 0644)
	if err != nil {
		t.Fatalf("could not write config file: %v", err)
	}

	w, err := NewWatcher(path, (*logging.TestLogger)(t))
	if err != nil {
		t.Fatalf("could not create watcher: %v", err)
	}
	defer w.Close()

	err = os.WriteFile(path, []byte("Threshold=70\nKernelShape=cross\n"), 0644)
	if err != nil {
		t.Fatalf("could not rewrite config file: %v", err)
	}

	want := map[string]string{"Threshold": "70", "KernelShape": "cross"}
	deadline := time.After(5 * time.Second)
	for {
		select {
		case got := <-w.Updates():
			// A write may be observed before all bytes land; wait for the full file.
			if cmp.Equal(got, want) {
				return
			}
		case <-deadline:
			t.Fatal("did not get config update")
		}
	}
}

/*
DESCRIPTION
  timings_test.go provides testing of processing time statistics.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package driver

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ausocean/utils/logging"
)

func TestSummary(t *testing.T) {
	tests := []struct {
		name string
		in   []time.Duration
		want Summary
	}{
		{
			name: "empty",
			want: Summary{},
		},
		{
			name: "single",
			in:   []time.Duration{3 * time.Millisecond},
			want: Summary{N: 1, Mean: 3, Min: 3, Max: 3, P95: 3},
		},
		{
			name: "several",
			in:   []time.Duration{4 * time.Millisecond, time.Millisecond, 3 * time.Millisecond, 2 * time.Millisecond},
			want: Summary{N: 4, Mean: 2.5, StdDev: math.Sqrt(5.0 / 3), Min: 1, Max: 4, P95: 4},
		},
	}

	for _, test := range tests {
		var tm Timings
		for _, d := range test.in {
			tm.Add(d)
		}
		got := tm.Summary()
		if !cmp.Equal(got, test.want, cmpopts.EquateApprox(0, 1e-9)) {
			t.Errorf("%s: unexpected summary\n%s", test.name, cmp.Diff(test.want, got))
		}
	}
}

func TestPlot(t *testing.T) {
	var tm Timings
	path := filepath.Join(t.TempDir(), "timings.png")
	if err := tm.Plot(path); err == nil {
		t.Error("expected error plotting no timings")
	}

	for i := 1; i <= 10; i++ {
		tm.Add(time.Duration(i) * time.Millisecond)
	}
	err := tm.Plot(path)
	if err != nil {
		t.Fatalf("could not plot: %v", err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("could not stat plot: %v", err)
	}
	if fi.Size() == 0 {
		t.Error("plot is empty")
	}

	tm.Log((*logging.TestLogger)(t))
}

/*
DESCRIPTION
  text_test.go provides testing of annotation text and layout.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package detect

import (
	"image"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestFrameInfo(t *testing.T) {
	got := FrameInfo(42, 17*time.Millisecond+900*time.Microsecond)
	want := []string{"Frame Number: 42", "Processing Time: 17 ms"}
	if !cmp.Equal(got, want) {
		t.Errorf("unexpected frame info\n%s", cmp.Diff(want, got))
	}
}

func TestObjectInfo(t *testing.T) {
	tests := []struct {
		d    Detection
		want []string
	}{
		{
			d:    Detection{Area: 5841, Center: image.Pt(60, 40)},
			want: []string{"Area: 5841", "Position: (60, 40)"},
		},
		{
			d:    Detection{Area: 1420.5, Center: image.Pt(3, 7)},
			want: []string{"Area: 1420.5", "Position: (3, 7)"},
		},
		{
			d:    Detection{Area: 0, Center: image.Pt(0, 0)},
			want: []string{"Area: 0", "Position: (0, 0)"},
		},
	}
	for i, test := range tests {
		got := ObjectInfo(&test.d)
		if !cmp.Equal(got, test.want) {
			t.Errorf("test %d: unexpected object info\n%s", i, cmp.Diff(test.want, got))
		}
	}
}

func TestLineOrigins(t *testing.T) {
	got := LineOrigins(image.Pt(5, 10), 3)
	want := []image.Point{{5, 10}, {5, 25}, {5, 40}}
	if !cmp.Equal(got, want) {
		t.Errorf("unexpected origins\n%s", cmp.Diff(want, got))
	}
	if n := len(LineOrigins(image.Pt(0, 0), 0)); n != 0 {
		t.Errorf("expected no origins, got %d", n)
	}
}

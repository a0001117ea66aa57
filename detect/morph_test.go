/*
DESCRIPTION
  morph_test.go provides testing of structuring elements, erosion and
  dilation.

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
	"image/color"
	"testing"

	"github.com/ausocean/objdetect/config"
)

func colorGray(v uint8) color.Gray { return color.Gray{Y: v} }

func TestNewKernel(t *testing.T) {
	tests := []struct {
		name  string
		shape uint8
		size  int
		want  int
	}{
		{name: "rect 1", shape: config.KernelRect, size: 1, want: 1},
		{name: "rect 3", shape: config.KernelRect, size: 3, want: 9},
		{name: "cross 3", shape: config.KernelCross, size: 3, want: 5},
		{name: "cross 5", shape: config.KernelCross, size: 5, want: 9},
		{name: "ellipse 3", shape: config.KernelEllipse, size: 3, want: 5},
		{name: "ellipse 5", shape: config.KernelEllipse, size: 5, want: 17},
	}
	for _, test := range tests {
		k := newKernel(test.shape, test.size)
		if len(k) != test.want {
			t.Errorf("%s: want %d elements, got %d", test.name, test.want, len(k))
		}
		for _, o := range k {
			if o.X < -test.size/2 || o.X > test.size/2 || o.Y < -test.size/2 || o.Y > test.size/2 {
				t.Errorf("%s: offset %v outside kernel", test.name, o)
			}
		}
	}
}

func TestErodeDilate(t *testing.T) {
	k := newKernel(config.KernelRect, 3)
	src := newMask(12, 12, []image.Rectangle{image.Rect(2, 2, 9, 8), image.Rect(10, 0, 11, 1)})

	eroded := image.NewGray(src.Rect)
	erode(eroded, src, k)
	if want := newMask(12, 12, []image.Rectangle{image.Rect(3, 3, 8, 7)}); !equalGray(eroded, want) {
		t.Error("unexpected erosion result")
	}

	dilated := image.NewGray(src.Rect)
	dilate(dilated, eroded, k)
	if want := newMask(12, 12, []image.Rectangle{image.Rect(2, 2, 9, 8)}); !equalGray(dilated, want) {
		t.Error("unexpected dilation result")
	}
}

func TestErodeIgnoresOutside(t *testing.T) {
	k := newKernel(config.KernelRect, 3)
	src := newMask(6, 6, []image.Rectangle{image.Rect(0, 0, 6, 6)})
	dst := image.NewGray(src.Rect)
	erode(dst, src, k)
	if !equalGray(dst, src) {
		t.Error("erosion of a full mask should leave it unchanged")
	}
}

func TestCrossKernelKeepsCorners(t *testing.T) {
	// Opening a 3x3 square with a cross leaves a plus sign.
	k := newKernel(config.KernelCross, 3)
	src := newMask(7, 7, []image.Rectangle{image.Rect(2, 2, 5, 5)})
	eroded := image.NewGray(src.Rect)
	erode(eroded, src, k)
	dilated := image.NewGray(src.Rect)
	dilate(dilated, eroded, k)

	want := newMask(7, 7, []image.Rectangle{image.Rect(3, 2, 4, 5), image.Rect(2, 3, 5, 4)})
	if !equalGray(dilated, want) {
		t.Error("unexpected cross open result")
	}
}

func equalGray(a, b *image.Gray) bool {
	if a.Rect != b.Rect {
		return false
	}
	for y := a.Rect.Min.Y; y < a.Rect.Max.Y; y++ {
		for x := a.Rect.Min.X; x < a.Rect.Max.X; x++ {
			if a.GrayAt(x, y) != b.GrayAt(x, y) {
				return false
			}
		}
	}
	return true
}

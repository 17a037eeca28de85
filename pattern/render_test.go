// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package pattern

import (
	"image"
	"testing"
)

func TestRender(t *testing.T) {
	var p Pattern
	p.SetAt(0, 0, TileWithHeight(MaxHeight))
	p.SetAt(1, 0, TileWithHeight(MinHeight))
	p.SetAt(2, 0, NewTile(0, Stairs))

	const scale = 8
	img := Render(&p, scale)

	if bounds := img.Bounds(); bounds.Dx() != Width*scale || bounds.Dy() != Width*scale {
		t.Fatalf("image is %v", bounds)
	}

	if c := img.RGBAAt(0, 0); c != wallColor.Color() {
		t.Errorf("wall pixel is %v", c)
	}
	if c := img.RGBAAt(scale, 0); c != pitColor.Color() {
		t.Errorf("pit pixel is %v", c)
	}
	if c := img.RGBAAt(3*scale, 0); c != floorColor.Color() {
		t.Errorf("floor pixel is %v", c)
	}

	// Marker in the middle, floor at the edge
	if c := img.RGBAAt(2*scale+scale/2, scale/2); c != prefabColors[Stairs].Color() {
		t.Errorf("marker pixel is %v", c)
	}
	if c := img.RGBAAt(2*scale, 0); c != floorColor.Color() {
		t.Errorf("marker tile edge is %v", c)
	}

	expectPanic(t, "Render(0)", func() { Render(&p, 0) })
}

func TestHeightColor(t *testing.T) {
	previous := HeightColor(MinHeight)
	for h := MinHeight + 1; h <= MaxHeight; h++ {
		c := HeightColor(int8(h))
		if c[0] < previous[0] {
			t.Errorf("height %d is darker than height %d", h, h-1)
		}
		previous = c
	}
}

func TestThumbnail(t *testing.T) {
	var p Pattern
	p.FillRow(TileWithHeight(MaxHeight), 0)

	for _, size := range []int{1, 16, 50, 96, 100} {
		img := Thumbnail(&p, size)
		if bounds := img.Bounds(); bounds.Dx() != size || bounds.Dy() != size {
			t.Errorf("thumbnail %d is %v", size, bounds)
		}
	}

	// Exact multiples are not resampled
	if _, ok := Thumbnail(&p, 32).(*image.RGBA); !ok {
		t.Error("expected plain render")
	}

	expectPanic(t, "Thumbnail(0)", func() { Thumbnail(&p, 0) })
}

// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package pattern

import (
	"fmt"
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/nfnt/resize"
)

type ColorVec [3]float32

var (
	pitColor   = RGB(20, 10, 30)
	floorColor = RGB(105, 110, 115)
	wallColor  = Gray(235)
)

var prefabColors = [prefabCount]ColorVec{
	Melee:       RGB(220, 40, 40),
	Projectile:  RGB(240, 140, 20),
	HideousMass: RGB(150, 30, 160),
	JumpPad:     RGB(40, 200, 90),
	Stairs:      RGB(50, 120, 230),
}

// HeightColor returns the color of a tile height, darkest for pits and
// lightest for walls.
func HeightColor(height int8) ColorVec {
	if height < 0 {
		return floorColor.Lerp(pitColor, float32(height)/MinHeight)
	}
	return floorColor.Lerp(wallColor, float32(height)/MaxHeight)
}

// Render draws each tile of p as a scale x scale square. Tiles with a prefab
// get a marker in the middle.
func Render(p *Pattern, scale int) *image.RGBA {
	if scale < 1 {
		panic(fmt.Sprintf("invalid render scale %d", scale))
	}

	img := image.NewRGBA(image.Rect(0, 0, Width*scale, Width*scale))

	// Marker is the middle half of the tile
	inset := scale / 4

	for j := 0; j < Width; j++ {
		for i := 0; i < Width; i++ {
			tile := p.At(i, j)
			c := HeightColor(tile.height).Color()

			var marker color.RGBA
			hasMarker := tile.prefab != None && tile.prefab.Valid()
			if hasMarker {
				marker = prefabColors[tile.prefab].Color()
			}

			for y := 0; y < scale; y++ {
				for x := 0; x < scale; x++ {
					pixel := c
					if hasMarker && x >= inset && x < scale-inset && y >= inset && y < scale-inset {
						pixel = marker
					}
					img.SetRGBA(i*scale+x, j*scale+y, pixel)
				}
			}
		}
	}

	return img
}

// Thumbnail renders p as a size x size image. Sizes that are not a multiple
// of Width are scaled down from the next larger render.
func Thumbnail(p *Pattern, size int) image.Image {
	if size < 1 {
		panic(fmt.Sprintf("invalid thumbnail size %d", size))
	}

	scale := (size + Width - 1) / Width
	img := Render(p, scale)
	if scale*Width == size {
		return img
	}
	return resize.Resize(uint(size), uint(size), img, resize.Bilinear)
}

func Gray(v byte) ColorVec {
	return RGB(v, v, v)
}

func RGB(r, g, b byte) ColorVec {
	const factor = 1.0 / 255
	return ColorVec{float32(r) * factor, float32(g) * factor, float32(b) * factor}
}

func (vec ColorVec) String() string {
	return fmt.Sprintf("vec4(%.3f, %.3f, %.3f, 1.0)", vec[0], vec[1], vec[2])
}

func (vec ColorVec) Lerp(other ColorVec, factor float32) ColorVec {
	factor = clamp(factor)
	for i := range vec {
		vec[i] += (other[i] - vec[i]) * factor
	}
	return vec
}

func (vec ColorVec) Color() color.RGBA {
	return color.RGBA{R: floatToByte(vec[0]), G: floatToByte(vec[1]), B: floatToByte(vec[2]), A: 255}
}

func clamp(f float32) float32 {
	return math32.Max(0, math32.Min(f, 1))
}

func floatToByte(f float32) byte {
	return byte(math32.Floor(clamp(f)*255 + 0.5))
}

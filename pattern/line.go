// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package pattern

import "fmt"

// Line is a selection of tiles on a straight segment of a Pattern.
// It holds offsets, not pointers, so every access goes through the Pattern.
type Line struct {
	p *Pattern
	// A segment never has more points than the width of a pattern.
	buf [Width]uint8
	len uint8
}

func greatestCommonDivisor(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// drawLine writes the offsets of the lattice points from a to b into buf.
// Only points that are exact multiples of the reduced step are selected, so
// a segment with coprime deltas contains just its endpoints.
func drawLine(a, b Point, buf *[Width]uint8) int {
	dx := b.X - a.X
	dy := b.Y - a.Y

	gcd := greatestCommonDivisor(dx, dy)
	if gcd == 0 {
		buf[0] = uint8(a.Index())
		return 1
	}

	stepX := dx / gcd
	stepY := dy / gcd

	for i := 0; i <= gcd; i++ {
		buf[i] = uint8(Point{X: a.X + i*stepX, Y: a.Y + i*stepY}.Index())
	}

	return gcd + 1
}

// Line selects the tiles on the segment from a to b, including both.
// b must not be left of or above a. Panics if either point is out of range.
func (p *Pattern) Line(a, b Point) Line {
	if !a.Valid() {
		panic(fmt.Sprintf("start point (%d, %d) is out of range", a.X, a.Y))
	}
	if !b.Valid() {
		panic(fmt.Sprintf("end point (%d, %d) is out of range", b.X, b.Y))
	}
	if b.X < a.X || b.Y < a.Y {
		panic(fmt.Sprintf("end point (%d, %d) is before start point (%d, %d)", b.X, b.Y, a.X, a.Y))
	}

	line := Line{p: p}
	line.len = uint8(drawLine(a, b, &line.buf))
	return line
}

// Len returns the number of selected tiles.
func (line *Line) Len() int {
	return int(line.len)
}

// Offset returns the row-major offset of the i'th selected tile.
func (line *Line) Offset(i int) int {
	if i < 0 || i >= int(line.len) {
		panic(fmt.Sprintf("line index %d is out of range [0, %d)", i, line.len))
	}
	return int(line.buf[i])
}

// Offsets returns the offsets of all selected tiles in order.
func (line *Line) Offsets() []int {
	offsets := make([]int, line.len)
	for i := range offsets {
		offsets[i] = int(line.buf[i])
	}
	return offsets
}

// Point returns the coordinate of the i'th selected tile.
func (line *Line) Point(i int) Point {
	return PointOf(line.Offset(i))
}

// Tile returns the i'th selected tile.
func (line *Line) Tile(i int) Tile {
	return line.p.tiles[line.Offset(i)]
}

// SetTile sets the i'th selected tile.
func (line *Line) SetTile(i int, tile Tile) {
	line.p.tiles[line.Offset(i)] = tile
}

// Set sets every selected tile to tile.
func (line *Line) Set(tile Tile) {
	for i := 0; i < int(line.len); i++ {
		line.p.tiles[line.buf[i]] = tile
	}
}

// Each calls fn with each selected tile in order. fn may modify the tile.
func (line *Line) Each(fn func(i int, tile *Tile)) {
	for i := 0; i < int(line.len); i++ {
		fn(i, &line.p.tiles[line.buf[i]])
	}
}

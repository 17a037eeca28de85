// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package pattern implements Cybergrind patterns: 16x16 grids of tiles with
// a height and an optional prefab, and their two section text format.
package pattern

import (
	"fmt"
	"strings"
)

const (
	// Width is the width and height of a Pattern.
	Width = 16
	// Size is the number of tiles in a Pattern.
	Size = Width * Width
)

// Pattern is a 16x16 array of tiles stored in row-major order.
// The zero value is a valid pattern with every tile at height 0 and no prefab.
// It is 512 bytes, so small enough to copy by value if necessary.
//
// A Pattern is not safe for concurrent use.
type Pattern struct {
	tiles [Size]Tile
}

// Point is a coordinate on a Pattern. X is the column and Y is the row.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// New creates a Pattern with all tiles at height 0 and no prefab.
func New() *Pattern {
	return new(Pattern)
}

// FromTiles copies up to Size tiles in order. Extra tiles are ignored.
func FromTiles(tiles []Tile) Pattern {
	var p Pattern
	copy(p.tiles[:], tiles)
	return p
}

// FromArray creates a Pattern from all of its tiles.
func FromArray(tiles [Size]Tile) Pattern {
	return Pattern{tiles: tiles}
}

// Valid returns true if the point is on a Pattern.
func (point Point) Valid() bool {
	return point.X >= 0 && point.X < Width && point.Y >= 0 && point.Y < Width
}

// Index returns the row-major offset of the point.
// Panics if the point is not on a Pattern.
func (point Point) Index() int {
	if !point.Valid() {
		panic(fmt.Sprintf("point (%d, %d) is out of range", point.X, point.Y))
	}
	return point.Y*Width + point.X
}

// PointOf is the inverse of Point.Index.
func PointOf(index int) Point {
	checkIndex(index)
	return Point{X: index % Width, Y: index / Width}
}

func checkIndex(index int) {
	if index < 0 || index >= Size {
		panic(fmt.Sprintf("index %d is out of range", index))
	}
}

func checkLine(name string, i int) {
	if i < 0 || i >= Width {
		panic(fmt.Sprintf("%s %d is out of range", name, i))
	}
}

// At gets the tile at column x and row y. Panics if either is not in [0, Width).
func (p *Pattern) At(x, y int) Tile {
	return p.tiles[Point{X: x, Y: y}.Index()]
}

// SetAt sets the tile at column x and row y. Panics if either is not in [0, Width).
func (p *Pattern) SetAt(x, y int, tile Tile) {
	p.tiles[Point{X: x, Y: y}.Index()] = tile
}

// TileAt returns a pointer to the tile at column x and row y for in place edits.
// Panics if either is not in [0, Width).
func (p *Pattern) TileAt(x, y int) *Tile {
	return &p.tiles[Point{X: x, Y: y}.Index()]
}

// Index gets the tile at a row-major offset. Panics if i is not in [0, Size).
func (p *Pattern) Index(i int) Tile {
	checkIndex(i)
	return p.tiles[i]
}

// SetIndex sets the tile at a row-major offset. Panics if i is not in [0, Size).
func (p *Pattern) SetIndex(i int, tile Tile) {
	checkIndex(i)
	p.tiles[i] = tile
}

// TileIndex returns a pointer to the tile at a row-major offset.
// Panics if i is not in [0, Size).
func (p *Pattern) TileIndex(i int) *Tile {
	checkIndex(i)
	return &p.tiles[i]
}

// FillRow copies tile to every cell of row.
func (p *Pattern) FillRow(tile Tile, row int) {
	checkLine("row", row)
	for i := 0; i < Width; i++ {
		p.tiles[row*Width+i] = tile
	}
}

// FillColumn copies tile to every cell of column.
func (p *Pattern) FillColumn(tile Tile, column int) {
	checkLine("column", column)
	for i := 0; i < Width; i++ {
		p.tiles[i*Width+column] = tile
	}
}

// Tiles returns a copy of all tiles in row-major order.
func (p *Pattern) Tiles() [Size]Tile {
	return p.tiles
}

// Slice returns a copy of the tiles with offsets in [from, to).
func (p *Pattern) Slice(from, to int) []Tile {
	if from < 0 || to > Size || from > to {
		panic(fmt.Sprintf("slice [%d:%d] is out of range", from, to))
	}
	tiles := make([]Tile, to-from)
	copy(tiles, p.tiles[from:to])
	return tiles
}

// Equal returns true if both patterns have identical tiles.
func (p *Pattern) Equal(other *Pattern) bool {
	return p.tiles == other.tiles
}

// String returns a debug representation with one row per line.
func (p *Pattern) String() string {
	var builder strings.Builder
	for rows := p.Rows(); rows.Next(); {
		row := rows.Row()
		for i, tile := range row {
			if i > 0 {
				builder.WriteByte(' ')
			}
			builder.WriteString(tile.String())
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}

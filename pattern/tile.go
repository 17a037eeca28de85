// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package pattern

import (
	"strconv"
)

const (
	// MinHeight is the lowest height a Tile can have.
	MinHeight = -50
	// MaxHeight is the highest height a Tile can have.
	MaxHeight = 50
)

// Tile is one cell of a Pattern.
// It contains a height anywhere between MinHeight and MaxHeight, and an optional Prefab.
// The zero value has a height of 0 and no prefab.
type Tile struct {
	height int8
	prefab Prefab
}

// ValidHeight returns true if height is in [MinHeight, MaxHeight].
func ValidHeight(height int) bool {
	return height >= MinHeight && height <= MaxHeight
}

// checkHeight is the only place heights are range checked.
func checkHeight(height int) int8 {
	if height > MaxHeight {
		panic("height cannot be greater than " + strconv.Itoa(MaxHeight) + ": " + strconv.Itoa(height))
	}
	if height < MinHeight {
		panic("height cannot be less than " + strconv.Itoa(MinHeight) + ": " + strconv.Itoa(height))
	}
	return int8(height)
}

// NewTile creates a Tile. Panics if height is out of range.
func NewTile(height int8, prefab Prefab) Tile {
	return Tile{height: checkHeight(int(height)), prefab: prefab}
}

// TileWithHeight creates a Tile with no prefab. Panics if height is out of range.
func TileWithHeight(height int8) Tile {
	return Tile{height: checkHeight(int(height))}
}

// TileWithPrefab creates a Tile with a height of 0.
func TileWithPrefab(prefab Prefab) Tile {
	return Tile{prefab: prefab}
}

// SetHeight sets the height. Panics if height is out of range.
func (tile *Tile) SetHeight(height int8) {
	tile.height = checkHeight(int(height))
}

// SetPrefab sets the prefab.
func (tile *Tile) SetPrefab(prefab Prefab) {
	tile.prefab = prefab
}

func (tile Tile) Height() int8 {
	return tile.height
}

func (tile Tile) Prefab() Prefab {
	return tile.prefab
}

// Add returns the tile raised by delta.
// Panics if the resulting height is out of range.
func (tile Tile) Add(delta int8) Tile {
	tile.height = checkHeight(int(tile.height) + int(delta))
	return tile
}

// Sub returns the tile lowered by delta.
// Panics if the resulting height is out of range.
func (tile Tile) Sub(delta int8) Tile {
	tile.height = checkHeight(int(tile.height) - int(delta))
	return tile
}

// String formats the tile as [height] or [height, prefab letter].
func (tile Tile) String() string {
	buf := make([]byte, 0, 8)
	buf = append(buf, '[')
	buf = strconv.AppendInt(buf, int64(tile.height), 10)
	if tile.prefab != None {
		buf = append(buf, ',', ' ', tile.prefab.debugLetter())
	}
	return string(append(buf, ']'))
}

func (prefab Prefab) debugLetter() byte {
	switch prefab {
	case HideousMass:
		return 'M'
	case Projectile:
		return 'p'
	case Melee:
		return 'm'
	case Stairs:
		return 's'
	case JumpPad:
		return 'j'
	default:
		return ' '
	}
}

// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package pattern

import (
	"math/rand"
	"strings"
	"testing"
)

// randomPattern returns a pattern with random heights and prefabs.
func randomPattern(r *rand.Rand) Pattern {
	var p Pattern
	for i := 0; i < Size; i++ {
		height := int8(r.Intn(MaxHeight-MinHeight+1) + MinHeight)
		p.SetIndex(i, NewTile(height, Prefab(r.Intn(int(prefabCount)))))
	}
	return p
}

func TestPattern_New(t *testing.T) {
	p := New()
	for i := 0; i < Size; i++ {
		if tile := p.Index(i); tile != (Tile{}) {
			t.Fatalf("tile %d of new pattern is %v", i, tile)
		}
	}
}

func TestPattern_Coordinates(t *testing.T) {
	var p Pattern
	wall := TileWithHeight(20)

	p.SetAt(3, 7, wall)
	if p.Index(7*Width+3) != wall {
		t.Error("SetAt(3, 7) did not set offset 115")
	}
	if p.At(3, 7) != wall {
		t.Error("At(3, 7) did not return tile")
	}

	p.TileAt(15, 15).SetPrefab(Melee)
	if p.Index(Size-1).Prefab() != Melee {
		t.Error("TileAt(15, 15) does not alias the last tile")
	}

	p.TileIndex(0).SetHeight(-5)
	if p.At(0, 0).Height() != -5 {
		t.Error("TileIndex(0) does not alias the first tile")
	}

	for i := 0; i < Size; i++ {
		point := PointOf(i)
		if point.Index() != i {
			t.Errorf("PointOf(%d).Index() = %d", i, point.Index())
		}
	}

	expectPanic(t, "At(16, 0)", func() { p.At(16, 0) })
	expectPanic(t, "At(0, 16)", func() { p.At(0, 16) })
	expectPanic(t, "At(-1, 0)", func() { p.At(-1, 0) })
	expectPanic(t, "SetAt(0, -1)", func() { p.SetAt(0, -1, wall) })
	expectPanic(t, "Index(256)", func() { p.Index(Size) })
	expectPanic(t, "SetIndex(-1)", func() { p.SetIndex(-1, wall) })
	expectPanic(t, "FillRow(16)", func() { p.FillRow(wall, Width) })
	expectPanic(t, "FillColumn(-1)", func() { p.FillColumn(wall, -1) })
	expectPanic(t, "Slice(10, 5)", func() { p.Slice(10, 5) })
}

func TestPattern_FromTiles(t *testing.T) {
	tiles := make([]Tile, Size+44)
	for i := range tiles {
		tiles[i] = TileWithHeight(int8(i%101 - 50))
	}

	p := FromTiles(tiles)
	for i := 0; i < Size; i++ {
		if p.Index(i) != tiles[i] {
			t.Fatalf("tile %d is %v, expected %v", i, p.Index(i), tiles[i])
		}
	}

	short := FromTiles(tiles[:10])
	for i := 10; i < Size; i++ {
		if short.Index(i) != (Tile{}) {
			t.Fatalf("tile %d not default after short input", i)
		}
	}

	var array [Size]Tile
	copy(array[:], tiles)
	if fromArray := FromArray(array); !fromArray.Equal(&p) {
		t.Error("FromArray differs from FromTiles")
	}
}

func TestPattern_Fill(t *testing.T) {
	wall := NewTile(20, Stairs)

	for line := 0; line < Width; line++ {
		var rowPattern, columnPattern Pattern
		rowPattern.FillRow(wall, line)
		columnPattern.FillColumn(wall, line)

		for y := 0; y < Width; y++ {
			for x := 0; x < Width; x++ {
				if expected := y == line; (rowPattern.At(x, y) == wall) != expected {
					t.Errorf("FillRow(%d) at (%d, %d): %v", line, x, y, rowPattern.At(x, y))
				}
				if expected := x == line; (columnPattern.At(x, y) == wall) != expected {
					t.Errorf("FillColumn(%d) at (%d, %d): %v", line, x, y, columnPattern.At(x, y))
				}
			}
		}
	}
}

func TestPattern_Rows(t *testing.T) {
	tile := NewTile(10, Stairs)
	var p Pattern
	for i := 0; i < Width; i++ {
		p.SetAt(i, i, tile)
	}

	count := 0
	for rows := p.Rows(); rows.Next(); {
		row := rows.Row()
		if row[rows.Y()] != tile {
			t.Errorf("row %d does not have tile on diagonal", rows.Y())
		}
		row[0] = NewTile(-1, None) // copy, must not write through
		count++
	}
	if count != Width {
		t.Errorf("Rows yielded %d rows", count)
	}
	if p.At(0, 1) != (Tile{}) {
		t.Error("Rows wrote through")
	}

	// Restartable
	rows := p.Rows()
	for rows.Next() {
	}
	if rows.Next() {
		t.Error("Next true after end")
	}
}

func TestPattern_RowsMut(t *testing.T) {
	tile := NewTile(10, Stairs)
	var p Pattern

	for rows := p.RowsMut(); rows.Next(); {
		row := rows.Row()
		if len(row) != Width {
			t.Fatalf("row has %d tiles", len(row))
		}
		row[rows.Y()] = tile
	}

	for i := 0; i < Width; i++ {
		if p.At(i, i) != tile {
			t.Errorf("RowsMut did not write (%d, %d)", i, i)
		}
	}
	if p.At(1, 0) != (Tile{}) {
		t.Error("RowsMut wrote off diagonal")
	}
}

func TestPattern_Slice(t *testing.T) {
	p := randomPattern(rand.New(rand.NewSource(1)))
	slice := p.Slice(16, 48)
	if len(slice) != 32 {
		t.Fatalf("Slice(16, 48) has %d tiles", len(slice))
	}
	for i, tile := range slice {
		if tile != p.Index(16+i) {
			t.Errorf("slice tile %d differs", i)
		}
	}
	original := p.Index(16)
	if original.Prefab() == Melee {
		slice[0].SetPrefab(None)
	} else {
		slice[0].SetPrefab(Melee)
	}
	if p.Index(16) != original {
		t.Error("Slice aliases pattern")
	}
}

func TestPattern_String(t *testing.T) {
	var p Pattern
	p.SetAt(1, 0, NewTile(-3, HideousMass))
	lines := strings.Split(p.String(), "\n")
	if len(lines) != Width+1 {
		t.Fatalf("String has %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "[0] [-3, M] [0]") {
		t.Errorf("unexpected first line %q", lines[0])
	}
}

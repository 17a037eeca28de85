// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package pattern

// Rows iterates the rows of a Pattern from top to bottom.
// It can be used like this:
// for rows := p.Rows(); rows.Next(); { row := rows.Row() }
type Rows struct {
	p *Pattern
	y int
}

// RowsMut iterates the rows of a Pattern with write access to each tile.
// Rows must not be retained after the Pattern is copied or replaced.
type RowsMut struct {
	p *Pattern
	y int
}

// Rows returns an iterator over copies of each row.
func (p *Pattern) Rows() Rows {
	return Rows{p: p, y: -1}
}

// RowsMut returns an iterator over views of each row that alias the Pattern.
func (p *Pattern) RowsMut() RowsMut {
	return RowsMut{p: p, y: -1}
}

// Next advances to the next row. It returns false after the last row.
func (rows *Rows) Next() bool {
	if rows.y >= Width-1 {
		rows.y = Width
		return false
	}
	rows.y++
	return true
}

// Y is the index of the current row.
func (rows *Rows) Y() int {
	return rows.y
}

// Row returns a copy of the current row.
func (rows *Rows) Row() (row [Width]Tile) {
	checkLine("row", rows.y)
	copy(row[:], rows.p.tiles[rows.y*Width:(rows.y+1)*Width])
	return
}

// Next advances to the next row. It returns false after the last row.
func (rows *RowsMut) Next() bool {
	if rows.y >= Width-1 {
		rows.y = Width
		return false
	}
	rows.y++
	return true
}

// Y is the index of the current row.
func (rows *RowsMut) Y() int {
	return rows.y
}

// Row returns the current row. Writes to it modify the Pattern.
func (rows *RowsMut) Row() []Tile {
	checkLine("row", rows.y)
	return rows.p.tiles[rows.y*Width : (rows.y+1)*Width : (rows.y+1)*Width]
}

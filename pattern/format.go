// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package pattern

import (
	"io"
	"strconv"
)

const (
	// MaxFileSize is the length of the longest possible pattern file:
	// 16 rows of 16 "(-50)" cells, a blank line and 16 rows of 16 prefabs.
	MaxFileSize = Width*(Width*len("(-50)")+1) + 1 + Width*(Width+1)

	// FileExtension is the extension of pattern files.
	FileExtension = ".cgp"
)

// AppendText appends the pattern file representation of p to buf.
//
// The first section has one line per row with a height per tile. Heights
// from 0 to 9 are written as a single digit, all others in parentheses such
// as (-37) or (12). A blank line follows, then one line per row with a
// prefab byte per tile.
func (p *Pattern) AppendText(buf []byte) []byte {
	for row := 0; row < Width; row++ {
		for _, tile := range p.tiles[row*Width : (row+1)*Width] {
			buf = appendHeight(buf, tile.height)
		}
		buf = append(buf, '\n')
	}

	buf = append(buf, '\n')

	for row := 0; row < Width; row++ {
		for _, tile := range p.tiles[row*Width : (row+1)*Width] {
			buf = append(buf, tile.prefab.Byte())
		}
		buf = append(buf, '\n')
	}

	return buf
}

func appendHeight(buf []byte, height int8) []byte {
	if height >= 0 && height <= 9 {
		return append(buf, '0'+byte(height))
	}
	buf = append(buf, '(')
	buf = strconv.AppendInt(buf, int64(height), 10)
	return append(buf, ')')
}

// MarshalText implements encoding.TextMarshaler.
func (p *Pattern) MarshalText() ([]byte, error) {
	return p.AppendText(make([]byte, 0, MaxFileSize)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// p is left unchanged if text is invalid.
func (p *Pattern) UnmarshalText(text []byte) error {
	parsed, err := Parse(text)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// WriteTo writes the pattern file representation of p to w.
func (p *Pattern) WriteTo(w io.Writer) (int64, error) {
	buf, _ := p.MarshalText()
	n, err := w.Write(buf)
	return int64(n), err
}

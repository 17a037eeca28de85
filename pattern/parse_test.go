// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package pattern

import (
	"errors"
	"strings"
	"testing"
)

// replaceLine replaces 1-based line n of text.
func replaceLine(text string, n int, line string) string {
	lines := strings.Split(text, "\n")
	lines[n-1] = line
	return strings.Join(lines, "\n")
}

// setByte replaces the byte at a 1-based line and column of text.
func setByte(text string, line, column int, b byte) string {
	lines := strings.Split(text, "\n")
	buf := []byte(lines[line-1])
	buf[column-1] = b
	lines[line-1] = string(buf)
	return strings.Join(lines, "\n")
}

func TestParse_Valid(t *testing.T) {
	p, err := ParseString(emptyText)
	if err != nil {
		t.Fatal(err)
	}
	if !p.Equal(New()) {
		t.Error("empty text did not parse to empty pattern")
	}

	text := replaceLine(emptyText, 1, "9(10)(-1)(5)(9)(-50)(50)000000000")
	text = replaceLine(text, 18, "0npHJs0000000000")
	p, err = ParseString(text)
	if err != nil {
		t.Fatal(err)
	}

	heights := []int8{9, 10, -1, 5, 9, -50, 50, 0}
	for i, height := range heights {
		if p.At(i, 0).Height() != height {
			t.Errorf("(%d, 0) has height %d, expected %d", i, p.At(i, 0).Height(), height)
		}
	}
	prefabs := []Prefab{None, Melee, Projectile, HideousMass, JumpPad, Stairs, None}
	for i, prefab := range prefabs {
		if p.At(i, 0).Prefab() != prefab {
			t.Errorf("(%d, 0) has prefab %v, expected %v", i, p.At(i, 0).Prefab(), prefab)
		}
	}

	// Trailing data is ignored
	if _, err = ParseString(emptyText + "garbage"); err != nil {
		t.Errorf("trailing data: %v", err)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
		err  ParseError
	}{
		{
			name: "invalid height char",
			text: setByte(emptyText, 3, 5, 'z'),
			err:  ParseError{Line: 3, Column: 5, Kind: InvalidHeightChar, Char: 'z'},
		},
		{
			name: "leading zero",
			text: replaceLine(emptyText, 1, "(07)000000000000000"),
			err:  ParseError{Line: 1, Column: 2, Kind: LeadingZero, Char: '0'},
		},
		{
			name: "negative zero",
			text: replaceLine(emptyText, 4, "00(-0)0000000000000"),
			err:  ParseError{Line: 4, Column: 5, Kind: LeadingZero, Char: '0'},
		},
		{
			name: "duplicate negative",
			text: replaceLine(emptyText, 1, "(--5)000000000000000"),
			err:  ParseError{Line: 1, Column: 3, Kind: DuplicateNegative, Char: '-'},
		},
		{
			name: "trailing negative",
			text: replaceLine(emptyText, 1, "(5-)000000000000000"),
			err:  ParseError{Line: 1, Column: 3, Kind: InvalidHeightChar, Char: '-'},
		},
		{
			name: "too high",
			text: replaceLine(emptyText, 2, "0(51)00000000000000"),
			err:  ParseError{Line: 2, Column: 5, Kind: InvalidHeightValue, Char: ')'},
		},
		{
			name: "too low",
			text: replaceLine(emptyText, 16, "000000000000000(-51)"),
			err:  ParseError{Line: 16, Column: 20, Kind: InvalidHeightValue, Char: ')'},
		},
		{
			name: "overflow",
			text: replaceLine(emptyText, 1, "(123456789)000000000000000"),
			err:  ParseError{Line: 1, Column: 11, Kind: InvalidHeightValue, Char: ')'},
		},
		{
			name: "empty parentheses",
			text: replaceLine(emptyText, 1, "()000000000000000"),
			err:  ParseError{Line: 1, Column: 2, Kind: InvalidHeightChar, Char: ')'},
		},
		{
			name: "lone negative",
			text: replaceLine(emptyText, 1, "(-)000000000000000"),
			err:  ParseError{Line: 1, Column: 3, Kind: InvalidHeightChar, Char: ')'},
		},
		{
			name: "unclosed parentheses",
			text: replaceLine(emptyText, 1, "000000000000000(12"),
			err:  ParseError{Line: 1, Column: 19, Kind: InvalidHeightChar, Char: '\n'},
		},
		{
			name: "letter in parentheses",
			text: replaceLine(emptyText, 1, "(1a)000000000000000"),
			err:  ParseError{Line: 1, Column: 3, Kind: InvalidHeightChar, Char: 'a'},
		},
		{
			name: "long line",
			text: replaceLine(emptyText, 5, "00000000000000000"),
			err:  ParseError{Line: 5, Column: 17, Kind: ExpectedNewline, Char: '0'},
		},
		{
			name: "long line after parentheses",
			text: replaceLine(emptyText, 5, "(10)00000000000000(-3)1"),
			err:  ParseError{Line: 5, Column: 23, Kind: ExpectedNewline, Char: '1'},
		},
		{
			name: "short line",
			text: replaceLine(emptyText, 1, "000000000000000"),
			err:  ParseError{Line: 1, Column: 16, Kind: InvalidHeightChar, Char: '\n'},
		},
		{
			name: "missing separator",
			text: strings.Replace(emptyText, "\n\n", "\n", 1),
			err:  ParseError{Line: 17, Column: 1, Kind: ExpectedNewline, Char: '0'},
		},
		{
			name: "invalid prefab",
			text: setByte(emptyText, 18, 4, 'x'),
			err:  ParseError{Line: 18, Column: 4, Kind: InvalidPrefab, Char: 'x'},
		},
		{
			name: "prefab in height section",
			text: setByte(emptyText, 1, 1, 'n'),
			err:  ParseError{Line: 1, Column: 1, Kind: InvalidHeightChar, Char: 'n'},
		},
		{
			name: "height in prefab section",
			text: setByte(emptyText, 33, 16, '5'),
			err:  ParseError{Line: 33, Column: 16, Kind: InvalidPrefab, Char: '5'},
		},
		{
			name: "long prefab line",
			text: replaceLine(emptyText, 20, "0000000000000000s"),
			err:  ParseError{Line: 20, Column: 17, Kind: ExpectedNewline, Char: 's'},
		},
		{
			name: "carriage return",
			text: strings.Replace(emptyText, "\n", "\r\n", 1),
			err:  ParseError{Line: 1, Column: 17, Kind: ExpectedNewline, Char: '\r'},
		},
		{
			name: "empty",
			text: "",
			err:  ParseError{Line: 1, Column: 1, Kind: UnexpectedEnd},
		},
		{
			name: "truncated heights",
			text: emptyText[:100],
			err:  ParseError{Line: 6, Column: 16, Kind: UnexpectedEnd},
		},
		{
			name: "missing final newline",
			text: emptyText[:len(emptyText)-1],
			err:  ParseError{Line: 33, Column: 17, Kind: UnexpectedEnd},
		},
	}

	for _, test := range tests {
		_, err := ParseString(test.text)
		if err == nil {
			t.Errorf("%s: expected error", test.name)
			continue
		}

		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Errorf("%s: expected ParseError, found %T", test.name, err)
			continue
		}
		if *parseErr != test.err {
			t.Errorf("%s: expected %+v, found %+v", test.name, test.err, *parseErr)
		}
	}
}

func TestParse_NoPartialResult(t *testing.T) {
	text := replaceLine(emptyText, 1, "9999999999999999")
	text = setByte(text, 20, 1, '?')

	tile := NewTile(3, Stairs)
	var pattern Pattern
	pattern.SetIndex(0, tile)

	if err := pattern.UnmarshalText([]byte(text)); err == nil {
		t.Fatal("expected error")
	}
	if pattern.Index(0) != tile || pattern.Index(1) != (Tile{}) {
		t.Error("failed UnmarshalText modified pattern")
	}

	parsed, err := ParseString(text)
	if err == nil || !parsed.Equal(New()) {
		t.Error("failed Parse returned partial pattern")
	}
}

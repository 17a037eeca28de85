// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package pattern

import (
	"errors"
	"testing"
)

func TestParseError_Error(t *testing.T) {
	tests := []struct {
		err ParseError
		str string
	}{
		{
			ParseError{Line: 1, Column: 3, Char: '-', Kind: DuplicateNegative},
			`Error parsing line 1, column 3: Duplicate negative symbol "-"`,
		},
		{
			ParseError{Line: 1, Column: 3, Char: 'g', Kind: InvalidPrefab},
			`Error parsing line 1, column 3: Invalid prefab character "g"`,
		},
		{
			ParseError{Line: 1, Column: 3, Char: 11, Kind: ExpectedNewline},
			`Error parsing line 1, column 3: Expected newline but got 0x0b`,
		},
		{
			ParseError{Line: 1, Column: 3, Char: 11, Kind: InvalidHeightChar},
			`Error parsing line 1, column 3: Invalid height char 0x0b`,
		},
		{
			ParseError{Line: 2, Column: 5, Char: ')', Kind: InvalidHeightValue},
			`Error parsing line 2, column 5: Extreme height value: ")"`,
		},
		{
			ParseError{Line: 12, Column: 2, Char: '0', Kind: LeadingZero},
			`Error parsing line 12, column 2: Leading zero in parentheses "0"`,
		},
		{
			ParseError{Line: 33, Column: 17, Char: 0, Kind: UnexpectedEnd},
			`Error parsing line 33, column 17: Unexpected end of input 0x00`,
		},
		{
			ParseError{Line: 4, Column: 1, Char: 127, Kind: InvalidHeightChar},
			`Error parsing line 4, column 1: Invalid height char 0x7f`,
		},
		{
			ParseError{Line: 4, Column: 1, Char: 160, Kind: InvalidHeightChar},
			`Error parsing line 4, column 1: Invalid height char 0xa0`,
		},
		{
			ParseError{Line: 4, Column: 1, Char: 0xe9, Kind: InvalidHeightChar},
			`Error parsing line 4, column 1: Invalid height char "é"`,
		},
	}

	for _, test := range tests {
		err := test.err
		if str := err.Error(); str != test.str {
			t.Errorf("expected %s, found %s", test.str, str)
		}
	}
}

func TestParseErrorKind_String(t *testing.T) {
	if InvalidPrefab.String() != "InvalidPrefab" {
		t.Errorf("found %s", InvalidPrefab.String())
	}
	if ParseErrorKind(200).String() != "ParseErrorKind(200)" {
		t.Errorf("found %s", ParseErrorKind(200).String())
	}
}

func TestIOError(t *testing.T) {
	cause := errors.New("permission denied")
	var err error = &IOError{Err: cause}

	if !errors.Is(err, cause) {
		t.Error("IOError does not unwrap")
	}
	if err.Error() != "pattern io: permission denied" {
		t.Errorf("found %s", err.Error())
	}

	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		t.Error("IOError is a ParseError")
	}
}

// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package pattern

import (
	"fmt"
)

// ParseErrorKind is the reason a pattern file could not be parsed.
type ParseErrorKind uint8

const (
	// ExpectedNewline means a newline was expected, but a different byte was found.
	ExpectedNewline ParseErrorKind = iota
	// InvalidHeightValue means a parsed height is not between MinHeight and MaxHeight.
	InvalidHeightValue
	// DuplicateNegative means there are two negative signs in a parsed height.
	DuplicateNegative
	// LeadingZero means a number in parentheses starts with a zero.
	LeadingZero
	// InvalidHeightChar means an unexpected byte was found while parsing a height.
	InvalidHeightChar
	// InvalidPrefab means an invalid prefab byte was found while parsing prefabs.
	InvalidPrefab
	// UnexpectedEnd means the input ended before the pattern was complete.
	UnexpectedEnd
)

var parseErrorKindNames = [...]string{
	ExpectedNewline:    "ExpectedNewline",
	InvalidHeightValue: "InvalidHeightValue",
	DuplicateNegative:  "DuplicateNegative",
	LeadingZero:        "LeadingZero",
	InvalidHeightChar:  "InvalidHeightChar",
	InvalidPrefab:      "InvalidPrefab",
	UnexpectedEnd:      "UnexpectedEnd",
}

var parseErrorKindMessages = [...]string{
	ExpectedNewline:    "Expected newline but got",
	InvalidHeightValue: "Extreme height value:",
	DuplicateNegative:  "Duplicate negative symbol",
	LeadingZero:        "Leading zero in parentheses",
	InvalidHeightChar:  "Invalid height char",
	InvalidPrefab:      "Invalid prefab character",
	UnexpectedEnd:      "Unexpected end of input",
}

func (kind ParseErrorKind) String() string {
	if int(kind) < len(parseErrorKindNames) {
		return parseErrorKindNames[kind]
	}
	return fmt.Sprintf("ParseErrorKind(%d)", uint8(kind))
}

// Message is the human readable description used in ParseError.Error.
func (kind ParseErrorKind) Message() string {
	if int(kind) < len(parseErrorKindMessages) {
		return parseErrorKindMessages[kind]
	}
	return kind.String()
}

// ParseError is returned when trying to parse invalid data.
// Line and Column are 1-based. Lines are counted across both sections.
type ParseError struct {
	Line   uint32
	Column uint32
	Kind   ParseErrorKind
	Char   byte
}

func (err *ParseError) Error() string {
	c := err.Char
	if (c >= 32 && c <= 126) || c >= 161 {
		return fmt.Sprintf("Error parsing line %d, column %d: %s \"%c\"", err.Line, err.Column, err.Kind.Message(), rune(c))
	}
	return fmt.Sprintf("Error parsing line %d, column %d: %s 0x%02x", err.Line, err.Column, err.Kind.Message(), c)
}

// IOError wraps a failure to read or write a pattern file, as opposed to a
// ParseError, which means the contents were invalid.
type IOError struct {
	Err error
}

func (err *IOError) Error() string {
	return "pattern io: " + err.Err.Error()
}

func (err *IOError) Unwrap() error {
	return err.Err
}

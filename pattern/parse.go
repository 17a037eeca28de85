// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package pattern

// parser scans a pattern file and tracks the position of the current byte.
type parser struct {
	buf    []byte
	off    int
	line   uint32
	column uint32
}

func (p *parser) fail(kind ParseErrorKind, char byte) *ParseError {
	return &ParseError{Line: p.line, Column: p.column, Kind: kind, Char: char}
}

// current returns the byte being scanned.
func (p *parser) current() (byte, *ParseError) {
	if p.off >= len(p.buf) {
		return 0, p.fail(UnexpectedEnd, 0)
	}
	return p.buf[p.off], nil
}

func (p *parser) advance() {
	p.off++
	p.column++
}

// newline consumes the newline that ends a line.
func (p *parser) newline() *ParseError {
	char, err := p.current()
	if err != nil {
		return err
	}
	if char != '\n' {
		return p.fail(ExpectedNewline, char)
	}
	p.off++
	p.line++
	p.column = 1
	return nil
}

// parentheses parses a height such as (-37) starting at the opening
// parenthesis and stops on the closing one.
func (p *parser) parentheses() (int8, *ParseError) {
	var (
		negative  bool
		digits    int
		magnitude int
		char      byte
		err       *ParseError
	)

	p.advance()

	for {
		if char, err = p.current(); err != nil {
			return 0, err
		}
		if char == ')' {
			break
		}

		switch {
		case char == '-':
			if negative {
				return 0, p.fail(DuplicateNegative, char)
			}
			if digits > 0 {
				return 0, p.fail(InvalidHeightChar, char)
			}
			negative = true
		case char >= '0' && char <= '9':
			if char == '0' && digits == 0 {
				return 0, p.fail(LeadingZero, char)
			}
			magnitude = magnitude*10 + int(char-'0')
			// Saturate so long digit runs can't overflow.
			if magnitude > MaxHeight+1 {
				magnitude = MaxHeight + 1
			}
			digits++
		default:
			return 0, p.fail(InvalidHeightChar, char)
		}

		p.advance()
	}

	if digits == 0 {
		return 0, p.fail(InvalidHeightChar, char)
	}

	height := magnitude
	if negative {
		height = -height
	}
	if !ValidHeight(height) {
		return 0, p.fail(InvalidHeightValue, char)
	}

	return int8(height), nil
}

func (p *parser) heights(pattern *Pattern) *ParseError {
	for row := 0; row < Width; row++ {
		for column := 0; column < Width; column++ {
			char, err := p.current()
			if err != nil {
				return err
			}

			var height int8
			if char == '(' {
				if height, err = p.parentheses(); err != nil {
					return err
				}
			} else if char >= '0' && char <= '9' {
				height = int8(char - '0')
			} else {
				return p.fail(InvalidHeightChar, char)
			}

			pattern.tiles[row*Width+column].SetHeight(height)
			p.advance()
		}

		if err := p.newline(); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) prefabs(pattern *Pattern) *ParseError {
	for row := 0; row < Width; row++ {
		for column := 0; column < Width; column++ {
			char, err := p.current()
			if err != nil {
				return err
			}

			prefab, ok := ParsePrefab(char)
			if !ok {
				return p.fail(InvalidPrefab, char)
			}

			pattern.tiles[row*Width+column].prefab = prefab
			p.advance()
		}

		if err := p.newline(); err != nil {
			return err
		}
	}
	return nil
}

// Parse reads a Pattern from a pattern file. It stops at the first invalid
// byte and returns a *ParseError with its position. Bytes after the prefab
// section are ignored.
//
// A height is a single digit, or "(" then an optional leading "-" then at
// least one digit without a leading zero then ")". Forms like "()", "(-)"
// and "(5-)" are rejected.
func Parse(buf []byte) (Pattern, error) {
	var pattern Pattern
	p := parser{buf: buf, line: 1, column: 1}

	if err := p.heights(&pattern); err != nil {
		return Pattern{}, err
	}

	// Blank line between sections
	if err := p.newline(); err != nil {
		return Pattern{}, err
	}

	if err := p.prefabs(&pattern); err != nil {
		return Pattern{}, err
	}

	return pattern, nil
}

// ParseString is like Parse but takes a string.
func ParseString(str string) (Pattern, error) {
	return Parse([]byte(str))
}

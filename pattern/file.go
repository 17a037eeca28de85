// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package pattern

import (
	"io"
	"os"
)

// WriteToPath creates a file at path, truncating it if it already exists,
// and writes the pattern file representation of p to it.
// Failures are returned as *IOError.
func (p *Pattern) WriteToPath(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return &IOError{Err: err}
	}

	if _, err = p.WriteTo(file); err != nil {
		_ = file.Close()
		return &IOError{Err: err}
	}

	if err = file.Close(); err != nil {
		return &IOError{Err: err}
	}
	return nil
}

// ParseReader reads up to MaxFileSize bytes from r and parses them.
// Read failures are returned as *IOError, invalid contents as *ParseError.
func ParseReader(r io.Reader) (Pattern, error) {
	buf, err := io.ReadAll(io.LimitReader(r, int64(MaxFileSize)))
	if err != nil {
		return Pattern{}, &IOError{Err: err}
	}
	return Parse(buf)
}

// ParsePath opens the file at path read-only and parses it.
// Failures to open or read are returned as *IOError, invalid contents as *ParseError.
func ParsePath(path string) (Pattern, error) {
	file, err := os.Open(path)
	if err != nil {
		return Pattern{}, &IOError{Err: err}
	}
	defer file.Close()

	return ParseReader(file)
}

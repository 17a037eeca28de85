// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"errors"
	"sync"

	"github.com/SoftbearStudios/cgp/pattern"
)

type (
	// PatternUpdate is the whole open pattern, sent after every change.
	PatternUpdate struct {
		Name    string          `json:"name"`
		Pattern pattern.Pattern `json:"pattern"`
	}

	// Problem means an inbound was rejected. Line and Column are set for text that failed to parse.
	Problem struct {
		Message string `json:"message"`
		Kind    string `json:"kind,omitempty"`
		Line    uint32 `json:"line,omitempty"`
		Column  uint32 `json:"column,omitempty"`
	}

	// Published confirms a publish.
	Published struct {
		Name  string `json:"name"`
		Bytes int    `json:"bytes"`
	}
)

func init() {
	registerOutbound(
		&PatternUpdate{},
		Problem{},
		Published{},
	)
}

var patternUpdatePool = sync.Pool{
	New: func() interface{} {
		return &PatternUpdate{}
	},
}

// NewPatternUpdate copies the session's pattern so the hub may keep editing it.
func NewPatternUpdate(session *Session) *PatternUpdate {
	update := patternUpdatePool.Get().(*PatternUpdate)
	update.Name = session.Name
	update.Pattern = session.Pattern
	return update
}

// Pool Uses pointers for reuse in pool
func (update *PatternUpdate) Pool() {
	*update = PatternUpdate{}
	patternUpdatePool.Put(update)
}

func (problem Problem) Pool() {}

func (published Published) Pool() {}

// problemOf describes err, with the position if err is a *pattern.ParseError.
func problemOf(err error) Problem {
	var parseErr *pattern.ParseError
	if errors.As(err, &parseErr) {
		return Problem{
			Message: parseErr.Error(),
			Kind:    parseErr.Kind.String(),
			Line:    parseErr.Line,
			Column:  parseErr.Column,
		}
	}
	return Problem{Message: err.Error()}
}

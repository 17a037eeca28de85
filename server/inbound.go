// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"errors"
	"fmt"

	"github.com/SoftbearStudios/cgp/pattern"
	"github.com/SoftbearStudios/cgp/pattern/noise"
)

// Make sure to register in init function
type (
	// Paint is the tile an edit writes.
	Paint struct {
		Height int            `json:"height"`
		Prefab pattern.Prefab `json:"prefab"`
	}

	// Adjust raises (or lowers, if Delta is negative) the tiles on a line.
	Adjust struct {
		From  pattern.Point `json:"from"`
		To    pattern.Point `json:"to"`
		Delta int           `json:"delta"`
	}

	// DrawLine paints the tiles on a line.
	DrawLine struct {
		Paint
		From pattern.Point `json:"from"`
		To   pattern.Point `json:"to"`
	}

	// FillColumn paints a whole column.
	FillColumn struct {
		Paint
		Column int `json:"column"`
	}

	// FillRow paints a whole row.
	FillRow struct {
		Paint
		Row int `json:"row"`
	}

	// Generate replaces the open pattern with a generated arena.
	Generate struct {
		Seed int64 `json:"seed"`
	}

	// ImportText replaces the open pattern with one in the text format.
	ImportText struct {
		Text string `json:"text"`
	}

	// InvalidInbound means invalid message type from client (possibly out of date).
	// NOTE: Do not register, otherwise client could send type "invalidInbound"
	InvalidInbound struct {
		messageType messageType
	}

	// Open opens a pattern by name, creating an empty one if it was never published.
	// Everyone with the same pattern open sees each other's edits.
	Open struct {
		Name string `json:"name"`
	}

	// Publish saves the open pattern under Name, or its own name if Name is empty.
	Publish struct {
		Name string `json:"name"`
		Auth string `json:"auth"` // Auth unlocks reserved names
	}

	// SetTile paints one tile.
	SetTile struct {
		Paint
		X int `json:"x"`
		Y int `json:"y"`
	}
)

func init() {
	registerInbound(
		Adjust{},
		DrawLine{},
		FillColumn{},
		FillRow{},
		Generate{},
		ImportText{},
		Open{},
		Publish{},
		SetTile{},
	)
}

// ErrNoSession means an edit arrived before any Open.
var ErrNoSession = errors.New("no pattern open")

func (paint Paint) tile() (pattern.Tile, error) {
	if !pattern.ValidHeight(paint.Height) {
		return pattern.Tile{}, fmt.Errorf("height %d is not in [%d, %d]", paint.Height, pattern.MinHeight, pattern.MaxHeight)
	}
	if !paint.Prefab.Valid() {
		return pattern.Tile{}, fmt.Errorf("invalid prefab %d", uint8(paint.Prefab))
	}
	return pattern.NewTile(int8(paint.Height), paint.Prefab), nil
}

func checkPoint(point pattern.Point) error {
	if !point.Valid() {
		return fmt.Errorf("point (%d, %d) is not on the pattern", point.X, point.Y)
	}
	return nil
}

func checkLine(name string, i int) error {
	if i < 0 || i >= pattern.Width {
		return fmt.Errorf("%s %d is not in [0, %d)", name, i, pattern.Width)
	}
	return nil
}

// line selects from a to b in either order. Lines must not rise to the right.
func line(p *pattern.Pattern, a, b pattern.Point) (pattern.Line, error) {
	if err := checkPoint(a); err != nil {
		return pattern.Line{}, err
	}
	if err := checkPoint(b); err != nil {
		return pattern.Line{}, err
	}
	if b.X < a.X || b.Y < a.Y {
		a, b = b, a
	}
	if b.X < a.X || b.Y < a.Y {
		return pattern.Line{}, fmt.Errorf("line from (%d, %d) to (%d, %d) rises to the right", a.X, a.Y, b.X, b.Y)
	}
	return p.Line(a, b), nil
}

// edit runs fn on the editor's open pattern and shares the result.
// If fn fails nothing must have changed.
func (h *Hub) edit(client Client, editor *Editor, fn func(p *pattern.Pattern) error) {
	session := editor.Session
	if session == nil {
		client.Send(problemOf(ErrNoSession))
		return
	}

	if err := fn(&session.Pattern); err != nil {
		client.Send(problemOf(err))
		return
	}

	h.broadcast(session)
}

func (data Adjust) Process(h *Hub, client Client, editor *Editor) {
	h.edit(client, editor, func(p *pattern.Pattern) error {
		selection, err := line(p, data.From, data.To)
		if err != nil {
			return err
		}

		if data.Delta < -(pattern.MaxHeight-pattern.MinHeight) || data.Delta > pattern.MaxHeight-pattern.MinHeight {
			return fmt.Errorf("delta %d is too large", data.Delta)
		}

		// Check every tile before changing any
		for i := 0; i < selection.Len(); i++ {
			if height := int(selection.Tile(i).Height()) + data.Delta; !pattern.ValidHeight(height) {
				point := selection.Point(i)
				return fmt.Errorf("height at (%d, %d) would be %d", point.X, point.Y, height)
			}
		}

		selection.Each(func(_ int, tile *pattern.Tile) {
			*tile = tile.Add(int8(data.Delta))
		})
		return nil
	})
}

func (data DrawLine) Process(h *Hub, client Client, editor *Editor) {
	h.edit(client, editor, func(p *pattern.Pattern) error {
		tile, err := data.tile()
		if err != nil {
			return err
		}
		selection, err := line(p, data.From, data.To)
		if err != nil {
			return err
		}
		selection.Set(tile)
		return nil
	})
}

func (data FillColumn) Process(h *Hub, client Client, editor *Editor) {
	h.edit(client, editor, func(p *pattern.Pattern) error {
		tile, err := data.tile()
		if err != nil {
			return err
		}
		if err = checkLine("column", data.Column); err != nil {
			return err
		}
		p.FillColumn(tile, data.Column)
		return nil
	})
}

func (data FillRow) Process(h *Hub, client Client, editor *Editor) {
	h.edit(client, editor, func(p *pattern.Pattern) error {
		tile, err := data.tile()
		if err != nil {
			return err
		}
		if err = checkLine("row", data.Row); err != nil {
			return err
		}
		p.FillRow(tile, data.Row)
		return nil
	})
}

func (data Generate) Process(h *Hub, client Client, editor *Editor) {
	h.edit(client, editor, func(p *pattern.Pattern) error {
		noise.NewDefault(data.Seed).Fill(p)
		return nil
	})
}

func (data ImportText) Process(h *Hub, client Client, editor *Editor) {
	h.edit(client, editor, func(p *pattern.Pattern) error {
		return p.UnmarshalText([]byte(data.Text))
	})
}

func (data InvalidInbound) Process(_ *Hub, client Client, _ *Editor) {
	client.Send(Problem{Message: "invalid message type " + string(data.messageType)})
}

func (data Open) Process(h *Hub, client Client, editor *Editor) {
	name, err := normalizeName(data.Name)
	if err != nil {
		client.Send(problemOf(err))
		return
	}

	session, err := h.open(editor, name)
	if err != nil {
		client.Send(problemOf(err))
		return
	}

	client.Send(NewPatternUpdate(session))
}

func (data Publish) Process(h *Hub, client Client, editor *Editor) {
	session := editor.Session
	if session == nil {
		client.Send(problemOf(ErrNoSession))
		return
	}

	name := session.Name
	if data.Name != "" {
		var err error
		if name, err = normalizeName(data.Name); err != nil {
			client.Send(problemOf(err))
			return
		}
	}

	authed := h.auth != "" && data.Auth == h.auth
	if err := moderateName(name, authed); err != nil {
		client.Send(problemOf(err))
		return
	}

	size, err := h.publish(name, &session.Pattern)
	if err != nil {
		client.Send(problemOf(err))
		return
	}
	editor.Published++

	h.audit(name, size, editor)
	client.Send(Published{Name: name, Bytes: size})
}

func (data SetTile) Process(h *Hub, client Client, editor *Editor) {
	h.edit(client, editor, func(p *pattern.Pattern) error {
		tile, err := data.tile()
		if err != nil {
			return err
		}
		point := pattern.Point{X: data.X, Y: data.Y}
		if err = checkPoint(point); err != nil {
			return err
		}
		p.SetIndex(point.Index(), tile)
		return nil
	})
}

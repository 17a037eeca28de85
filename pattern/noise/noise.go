// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package noise generates arena patterns from perlin noise.
package noise

import (
	"math/rand"

	"github.com/SoftbearStudios/cgp/pattern"
	"github.com/aquilax/go-perlin"
	"github.com/chewxy/math32"
)

// Options control the shape of generated arenas.
type Options struct {
	Seed int64
	// Frequency is noise cycles per tile.
	Frequency float32
	// Amplitude is the maximum height before clamping.
	Amplitude float32
	// Terrace snaps heights to multiples of itself; 1 or less disables it.
	Terrace int
	// Enemies is how many tiles get an enemy prefab.
	Enemies int
	// JumpPads is how many tiles get a jump pad.
	JumpPads int
}

// DefaultOptions are gentle hills with a handful of enemies.
func DefaultOptions(seed int64) Options {
	return Options{
		Seed:      seed,
		Frequency: 0.11,
		Amplitude: 30,
		Terrace:   2,
		Enemies:   8,
		JumpPads:  2,
	}
}

// Generator generates arena patterns using perlin noise.
type Generator struct {
	options Options

	hi *perlin.Perlin // for smaller/higher frequency details
	lo *perlin.Perlin // for larger/lower frequency details
}

// NewDefault creates a Generator with DefaultOptions.
func NewDefault(seed int64) *Generator {
	return New(DefaultOptions(seed))
}

// New creates a new Generator.
func New(options Options) *Generator {
	if options.Enemies+options.JumpPads > pattern.Size {
		options.Enemies = pattern.Size - options.JumpPads
		if options.Enemies < 0 {
			options.Enemies, options.JumpPads = 0, pattern.Size
		}
	}

	return &Generator{
		options: options,
		hi:      perlin.NewPerlin(1.5, 2.0, 4, options.Seed),
		lo:      perlin.NewPerlin(2.5, 3.0, 4, options.Seed+1),
	}
}

// Generate returns a new arena. Equal options generate equal arenas.
func (g *Generator) Generate() pattern.Pattern {
	var p pattern.Pattern
	g.Fill(&p)
	return p
}

// Fill overwrites every tile of p with a generated arena.
func (g *Generator) Fill(p *pattern.Pattern) {
	frequency := float64(g.options.Frequency)

	for j := 0; j < pattern.Width; j++ {
		for i := 0; i < pattern.Width; i++ {
			x := float64(i) * frequency
			y := float64(j) * frequency

			h := float32(g.hi.Noise2D(x, y))*0.35 + float32(g.lo.Noise2D(x*0.5, y*0.5))*0.65
			p.SetAt(i, j, pattern.TileWithHeight(g.quantize(h*g.options.Amplitude)))
		}
	}

	g.scatter(p)
}

// quantize rounds a height to a terrace and clamps it to the tile range.
func (g *Generator) quantize(h float32) int8 {
	step := float32(1)
	if g.options.Terrace > 1 {
		step = float32(g.options.Terrace)
	}

	h = math32.Floor(h/step+0.5) * step
	return clampHeight(h)
}

// scatter places prefabs on distinct random tiles.
func (g *Generator) scatter(p *pattern.Pattern) {
	r := rand.New(rand.NewSource(g.options.Seed))
	offsets := r.Perm(pattern.Size)

	enemies := [...]pattern.Prefab{pattern.Melee, pattern.Projectile, pattern.Melee, pattern.HideousMass}

	for i, offset := range offsets {
		tile := p.TileIndex(offset)
		switch {
		case i < g.options.Enemies:
			tile.SetPrefab(enemies[r.Intn(len(enemies))])
		case i < g.options.Enemies+g.options.JumpPads:
			tile.SetPrefab(pattern.JumpPad)
		default:
			tile.SetPrefab(pattern.None)
		}
	}
}

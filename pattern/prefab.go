// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package pattern

import "fmt"

// Prefab is a spawning option for a tile.
// There can only be one prefab per tile.
type Prefab uint8

const (
	// None will not place/spawn anything on the tile.
	None Prefab = iota
	// Melee will spawn a melee enemy on the tile.
	Melee
	// Projectile will spawn a projectile enemy on the tile.
	Projectile
	// HideousMass will spawn a Hideous Mass on the tile.
	HideousMass
	// JumpPad will place a jump pad on the tile.
	JumpPad
	// Stairs will place stairs on the tile.
	Stairs

	prefabCount
)

var prefabNames = [prefabCount]string{
	None:        "none",
	Melee:       "melee",
	Projectile:  "projectile",
	HideousMass: "hideousMass",
	JumpPad:     "jumpPad",
	Stairs:      "stairs",
}

// prefabBytes are the characters used in the second section of a pattern file.
var prefabBytes = [prefabCount]byte{
	None:        '0',
	Melee:       'n',
	Projectile:  'p',
	HideousMass: 'H',
	JumpPad:     'J',
	Stairs:      's',
}

// ParsePrefab returns the Prefab encoded by a pattern file byte.
func ParsePrefab(b byte) (Prefab, bool) {
	switch b {
	case '0':
		return None, true
	case 'n':
		return Melee, true
	case 'p':
		return Projectile, true
	case 'H':
		return HideousMass, true
	case 'J':
		return JumpPad, true
	case 's':
		return Stairs, true
	}
	return None, false
}

// Valid returns true if the Prefab is one of the declared constants.
func (prefab Prefab) Valid() bool {
	return prefab < prefabCount
}

// Byte returns the pattern file byte of the Prefab.
func (prefab Prefab) Byte() byte {
	if !prefab.Valid() {
		panic(fmt.Sprintf("invalid prefab %d", uint8(prefab)))
	}
	return prefabBytes[prefab]
}

func (prefab Prefab) String() string {
	if !prefab.Valid() {
		return fmt.Sprintf("Prefab(%d)", uint8(prefab))
	}
	return prefabNames[prefab]
}

func (prefab Prefab) MarshalText() ([]byte, error) {
	if !prefab.Valid() {
		return nil, fmt.Errorf("invalid prefab %d", uint8(prefab))
	}
	return []byte{prefabBytes[prefab]}, nil
}

func (prefab *Prefab) UnmarshalText(text []byte) error {
	if len(text) == 1 {
		if p, ok := ParsePrefab(text[0]); ok {
			*prefab = p
			return nil
		}
	}
	return fmt.Errorf("invalid prefab %q", text)
}

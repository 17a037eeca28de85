// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"errors"
	"strings"

	"github.com/finnbear/moderation"
)

const (
	nameLengthMin = 1
	nameLengthMax = 32
)

var (
	ErrInvalidName       = errors.New("names are 1 to 32 letters, digits, '-' or '_'")
	ErrInappropriateName = errors.New("inappropriate name")
	ErrReservedName      = errors.New("reserved name")
)

var reservedNames = [...]string{
	"admin",
	"administrator",
	"console",
	"default",
	"dev",
	"developer",
	"mod",
	"moderator",
	"official",
	"owner",
	"root",
	"server",
	"staff",
	"system",
}

// normalizeName lowercases name and checks it is safe to use as a file name.
func normalizeName(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) < nameLengthMin || len(name) > nameLengthMax {
		return "", ErrInvalidName
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-' || c == '_') {
			return "", ErrInvalidName
		}
	}
	return name, nil
}

// moderateName checks that a normalized name may be published.
// authed unlocks reserved names but not inappropriate ones.
func moderateName(name string, authed bool) error {
	// Separators hide words from the scanner
	spaced := strings.NewReplacer("-", " ", "_", " ").Replace(name)
	if moderation.Scan(spaced).Is(moderation.Inappropriate) || moderation.Scan(name).Is(moderation.Inappropriate) {
		return ErrInappropriateName
	}

	if !authed {
		for _, reservedName := range reservedNames {
			if name == reservedName {
				return ErrReservedName
			}
		}
	}
	return nil
}

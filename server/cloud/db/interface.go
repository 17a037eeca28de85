// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package db

type Database interface {
	// RecordPattern stores the entry unless a newer one exists.
	RecordPattern(pattern Pattern) error
	ReadPatterns() (patterns []Pattern, err error)
	UpdateServer(server Server) error
}

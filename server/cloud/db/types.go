// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package db

import (
	"net"
)

// Pattern is an index entry of a published pattern. The text itself lives in the filesystem.
type Pattern struct {
	Name    string `dynamo:"name"`
	Size    int    `dynamo:"size"`
	Updated int64  `dynamo:"updated"` // unix millis
}

type Server struct {
	Region  string `dynamo:"region"`
	IP      net.IP `dynamo:"ip"`
	Editors int    `dynamo:"editors"`
	TTL     int64  `dynamo:"ttl,omitempty"`
}

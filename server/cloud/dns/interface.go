// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package dns

import (
	"net"
)

type DNS interface {
	Hostname(region string) string
	UpdateRoute(region string, address net.IP) error
}

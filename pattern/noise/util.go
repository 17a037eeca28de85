// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"github.com/SoftbearStudios/cgp/pattern"
	"github.com/chewxy/math32"
)

func clampHeight(f float32) int8 {
	return int8(math32.Max(pattern.MinHeight, math32.Min(f, pattern.MaxHeight)))
}

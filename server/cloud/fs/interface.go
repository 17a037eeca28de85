// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package fs

type Filesystem interface {
	UploadPattern(name string, data []byte) error
	// DownloadPattern returns nil data if there is no such pattern.
	DownloadPattern(name string) ([]byte, error)
}

// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"fmt"
	"log"
	"sort"
	"time"
)

// Cloud stores published patterns beyond the local directory.
// Methods may be called from any goroutine.
type Cloud interface {
	fmt.Stringer
	UpdateServer(editors int) error
	UploadPattern(name string, data []byte) error
	// DownloadPattern returns nil data if the pattern was never published.
	DownloadPattern(name string) ([]byte, error)
	RecordPattern(name string, size int) error
	ReadPatterns() ([]string, error)
	UpdatePeriod() time.Duration
}

// Offline is a Cloud that stores nothing.
type Offline struct{}

func (offline Offline) String() string {
	return "offline"
}

func (offline Offline) UpdateServer(editors int) error {
	return nil
}

func (offline Offline) UploadPattern(name string, data []byte) error {
	return nil
}

func (offline Offline) DownloadPattern(name string) ([]byte, error) {
	return nil, nil
}

func (offline Offline) RecordPattern(name string, size int) error {
	return nil
}

func (offline Offline) ReadPatterns() ([]string, error) {
	return nil, nil
}

func (offline Offline) UpdatePeriod() time.Duration {
	return time.Hour
}

// Status is served by ServeIndex.
type Status struct {
	Editors  int      `json:"editors"`
	Sessions int      `json:"sessions"`
	Patterns []string `json:"patterns"`
}

// Cloud updates the server entry and the status, which lists patterns published anywhere.
func (h *Hub) Cloud() {
	editors := h.clients.Len
	sessions := len(h.sessions)
	h.cloudGeneration++
	generation := h.cloudGeneration

	go func() {
		if err := h.cloud.UpdateServer(editors); err != nil {
			log.Println("Error updating server:", err)
		}

		names, err := h.cloud.ReadPatterns()
		if err != nil {
			log.Println("Error reading patterns:", err)
		}
		h.storeStatus(generation, Status{Editors: editors, Sessions: sessions, Patterns: names})
	}()
}

// storeStatus stores status from the cloud unless a later generation was already stored.
func (h *Hub) storeStatus(generation uint64, status Status) {
	h.statusMutex.Lock()
	defer h.statusMutex.Unlock()

	if generation < h.statusGeneration {
		return
	}
	h.statusGeneration = generation
	h.cloudStatus = status
	h.marshalStatus()
}

// refreshStatus stores the last status from the cloud with the current local patterns.
func (h *Hub) refreshStatus() {
	h.statusMutex.Lock()
	defer h.statusMutex.Unlock()
	h.marshalStatus()
}

// marshalStatus adds locally published patterns to the cloud status and stores it as JSON.
// statusMutex must be held.
func (h *Hub) marshalStatus() {
	status := h.cloudStatus

	seen := make(map[string]bool, len(status.Patterns))
	names := make([]string, 0, len(status.Patterns))
	for _, name := range status.Patterns {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	var local []string
	for name := range h.publishedPatterns() {
		if !seen[name] {
			local = append(local, name)
		}
	}
	sort.Strings(local)
	status.Patterns = append(names, local...)

	statusJSON, err := json.Marshal(&status)
	if err != nil {
		log.Println("Error marshaling status:", err)
		return
	}
	h.statusJSON.Store(statusJSON)
}

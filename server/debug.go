// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"fmt"
	"runtime"
	"sort"
	"time"
)

// Debug prints debugging info to console.
func (h *Hub) Debug() {
	fmt.Printf("Debug [%v] %s\n", time.Now().Format(time.UnixDate), h.cloud)
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	fmt.Printf(" - memstats: %dM/%dM\n", stats.HeapInuse/1e6, stats.NextGC/1e6)

	idle := 0
	for client := h.clients.First; client != nil; client = client.Data().Next {
		if client.Data().Editor.Session == nil {
			idle++
		}
	}

	sessions := make([]*Session, 0, len(h.sessions))
	for _, session := range h.sessions {
		sessions = append(sessions, session)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Name < sessions[j].Name
	})

	fmt.Printf(" - clients: %d, idle: %d, sessions: %d, published: %d\n", h.clients.Len, idle, len(sessions), len(h.publishedPatterns()))
	for _, session := range sessions {
		fmt.Printf("   - %s: %d editors\n", session.Name, session.Editors)
	}
}

// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"image/png"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/SoftbearStudios/cgp/pattern"
)

func (h *Hub) ServeIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	buf, ok := h.statusJSON.Load().([]byte)
	if ok {
		_, _ = w.Write(buf)
	}
}

// ServePattern serves /patterns/<name>.cgp in the text format.
func (h *Hub) ServePattern(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(r.URL.Path[strings.LastIndexByte(r.URL.Path, '/')+1:], pattern.FileExtension)

	text, ok := h.publishedPatterns()[name]
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(text)
}

const (
	thumbnailSizeDefault = 96
	thumbnailSizeMax     = 512
)

// ServeThumbnail serves /thumbnails/<name>.png?size=<pixels> of a published pattern.
func (h *Hub) ServeThumbnail(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(r.URL.Path[strings.LastIndexByte(r.URL.Path, '/')+1:], ".png")

	size := thumbnailSizeDefault
	if param := r.URL.Query().Get("size"); param != "" {
		var err error
		if size, err = strconv.Atoi(param); err != nil || size < 1 || size > thumbnailSizeMax {
			http.Error(w, "invalid size", http.StatusBadRequest)
			return
		}
	}

	text, ok := h.publishedPatterns()[name]
	if !ok {
		http.NotFound(w, r)
		return
	}

	// Published text was valid when it was stored
	p, err := pattern.Parse(text)
	if err != nil {
		log.Printf("Error parsing published pattern %q: %v\n", name, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "image/png")
	if err = png.Encode(w, pattern.Thumbnail(&p, size)); err != nil {
		log.Println("Error encoding thumbnail:", err)
	}
}

func (h *Hub) ServeSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade error", err)
		return
	}

	h.Register(NewSocketClient(conn))
}

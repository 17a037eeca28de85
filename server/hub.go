// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SoftbearStudios/cgp/pattern"
)

const debugPeriod = time.Minute

// Hub maintains the set of active clients and the patterns they have open.
// Patterns are only touched by the hub goroutine.
type Hub struct {
	clients  ClientList // implemented as double-linked list
	sessions map[string]*Session

	// Flags
	dir      string
	auditLog string
	auth     string

	// Cloud (and things that are served atomically by HTTP)
	cloud           Cloud
	cloudGeneration uint64 // incremented by hub goroutine per Cloud call
	statusJSON      atomic.Value
	published       atomic.Value // map[string][]byte of pattern text, replaced on publish

	// Guards the last status from the cloud
	statusMutex      sync.Mutex
	statusGeneration uint64
	cloudStatus      Status

	// Inbound channels
	inbound    chan SignedInbound
	register   chan Client
	unregister chan Client

	// Timer based events
	cloudTicker *time.Ticker
	debugTicker *time.Ticker
}

type HubOptions struct {
	// Cloud defaults to Offline.
	Cloud Cloud
	// Dir is where published patterns are written.
	Dir string
	// AuditLog is a CSV file with a line per publish. Empty disables it.
	AuditLog string
	// Auth unlocks reserved names.
	Auth string
}

// Session is a pattern open by one or more editors.
type Session struct {
	Name    string
	Pattern pattern.Pattern
	Editors int
}

func NewHub(options HubOptions) *Hub {
	if options.Cloud == nil {
		options.Cloud = Offline{}
	}

	h := &Hub{
		sessions:    make(map[string]*Session),
		dir:         options.Dir,
		auditLog:    options.AuditLog,
		auth:        options.Auth,
		cloud:       options.Cloud,
		inbound:     make(chan SignedInbound, 64),
		register:    make(chan Client, 8),
		unregister:  make(chan Client, 16),
		cloudTicker: time.NewTicker(options.Cloud.UpdatePeriod()),
		debugTicker: time.NewTicker(debugPeriod),
	}
	h.published.Store(loadPublished(options.Dir))
	h.refreshStatus()
	return h
}

// loadPublished reads every valid pattern file in dir.
func loadPublished(dir string) map[string][]byte {
	published := make(map[string][]byte)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Println("Error reading published patterns:", err)
		}
		return published
	}

	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), pattern.FileExtension)
		if entry.IsDir() || name == entry.Name() {
			continue
		}
		if normalized, err := normalizeName(name); err != nil || normalized != name {
			log.Printf("Skipping pattern file %q: invalid name\n", entry.Name())
			continue
		}

		p, err := pattern.ParsePath(filepath.Join(dir, entry.Name()))
		if err != nil {
			log.Printf("Skipping pattern file %q: %v\n", entry.Name(), err)
			continue
		}

		published[name], _ = p.MarshalText()
	}

	return published
}

func (h *Hub) Run() {
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		}
		println("That's it, I'm out -hub") // Don't waste time debugging hub exists
		os.Exit(1)
	}()

	h.Cloud()

	for {
		select {
		case client := <-h.register:
			h.add(client)
		case client := <-h.unregister:
			h.remove(client)
		case in := <-h.inbound:
			// Read all messages currently in the channel
			n := len(h.inbound)

			for {
				h.process(in)

				if n--; n <= 0 {
					break
				}

				in = <-h.inbound
			}
		case <-h.cloudTicker.C:
			h.Cloud()
		case <-h.debugTicker.C:
			h.Debug()
		}
	}
}

// Register adds a client. Safe to call from any goroutine.
func (h *Hub) Register(client Client) {
	h.register <- client
}

// Unregister removes a client. Safe to call from any goroutine, including the hub's.
func (h *Hub) Unregister(client Client) {
	// Needs to go through when called on hub goroutine.
	select {
	case h.unregister <- client:
	default:
		go func() {
			h.unregister <- client
		}()
	}
}

// Receive queues an inbound from client. Must not be called on the hub goroutine.
func (h *Hub) Receive(client Client, in Inbound) {
	h.inbound <- SignedInbound{Client: client, Inbound: in}
}

func (h *Hub) add(client Client) {
	h.clients.Add(client)
	client.Data().Hub = h
	client.Init()
}

func (h *Hub) remove(client Client) {
	data := client.Data()
	if data.Hub != h {
		return // Destroyed twice
	}

	client.Close()
	h.leave(&data.Editor)
	data.Hub = nil
	h.clients.Remove(client)
}

func (h *Hub) process(in SignedInbound) {
	// If not same hub the message is old
	data := in.Client.Data()
	if h == data.Hub {
		in.Process(h, in.Client, &data.Editor)
	}
}

// open moves editor to the named session, loading it if nobody has it open.
func (h *Hub) open(editor *Editor, name string) (*Session, error) {
	if editor.Session != nil && editor.Session.Name == name {
		return editor.Session, nil
	}

	session := h.sessions[name]
	if session == nil {
		p, err := h.load(name)
		if err != nil {
			return nil, err
		}
		session = &Session{Name: name, Pattern: p}
		h.sessions[name] = session
	}

	h.leave(editor)
	session.Editors++
	editor.Session = session
	return session, nil
}

// leave closes the editor's session, forgetting unpublished edits if it was the last one.
func (h *Hub) leave(editor *Editor) {
	session := editor.Session
	if session == nil {
		return
	}

	editor.Session = nil
	if session.Editors--; session.Editors <= 0 {
		delete(h.sessions, session.Name)
	}
}

// load returns the published pattern, or an empty one if name was never published.
func (h *Hub) load(name string) (pattern.Pattern, error) {
	if text, ok := h.publishedPatterns()[name]; ok {
		return pattern.Parse(text)
	}

	text, err := h.cloud.DownloadPattern(name)
	if err != nil {
		log.Printf("Error downloading pattern %q: %v\n", name, err)
		return pattern.Pattern{}, fmt.Errorf("could not load %s: cloud unavailable", name)
	}
	if text == nil {
		return pattern.Pattern{}, nil
	}
	return pattern.Parse(text)
}

// broadcast sends the session's pattern to everyone editing it.
func (h *Hub) broadcast(session *Session) {
	for client := h.clients.First; client != nil; client = client.Data().Next {
		if client.Data().Editor.Session == session {
			client.Send(NewPatternUpdate(session))
		}
	}
}

func (h *Hub) publishedPatterns() map[string][]byte {
	published, _ := h.published.Load().(map[string][]byte)
	return published
}

// publish writes p as name, then shares it over HTTP and with the cloud.
// Returns the size of the written text.
func (h *Hub) publish(name string, p *pattern.Pattern) (int, error) {
	if err := os.MkdirAll(h.dir, 0755); err != nil {
		return 0, &pattern.IOError{Err: err}
	}
	if err := p.WriteToPath(filepath.Join(h.dir, name+pattern.FileExtension)); err != nil {
		return 0, err
	}

	text, err := p.MarshalText()
	if err != nil {
		return 0, err
	}

	// Copy on write, readers hold the old map
	old := h.publishedPatterns()
	published := make(map[string][]byte, len(old)+1)
	for k, v := range old {
		published[k] = v
	}
	published[name] = text
	h.published.Store(published)
	h.refreshStatus()

	go func() {
		if err := h.cloud.UploadPattern(name, text); err != nil {
			log.Printf("Error uploading pattern %q: %v\n", name, err)
			return
		}
		if err := h.cloud.RecordPattern(name, len(text)); err != nil {
			log.Printf("Error recording pattern %q: %v\n", name, err)
		}
	}()

	return len(text), nil
}

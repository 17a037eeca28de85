// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	_ "net/http/pprof"

	"github.com/SoftbearStudios/cgp/server"
	"github.com/SoftbearStudios/cgp/server/cloud"
	"golang.org/x/net/netutil"
)

func main() {
	var (
		audit          string
		auth           string
		dir            string
		port           int
		maxConnections int
	)

	flag.StringVar(&audit, "audit", "", "csv file to log publishes to")
	flag.StringVar(&auth, "auth", "", "admin auth code")
	flag.StringVar(&dir, "dir", "patterns", "directory of published patterns")
	flag.IntVar(&port, "port", 8192, "http service port")
	flag.IntVar(&maxConnections, "max-connections", 256, "maximum number of inbound TCP connections")
	flag.Parse()

	if maxConnections < 1 {
		log.Fatal("invalid argument max-connections: ", maxConnections)
	}

	var c server.Cloud

	c, err := cloud.New()
	if err != nil {
		// Cloud is not required for server to function, just log an error
		log.Printf("Cloud error: %v\n", err)

		c = server.Offline{}
	}
	log.Println("Cloud:", c)

	hub := server.NewHub(server.HubOptions{
		Cloud:    c,
		Dir:      dir,
		AuditLog: audit,
		Auth:     auth,
	})

	go hub.Run()

	http.HandleFunc("/", hub.ServeIndex)
	http.HandleFunc("/patterns/", hub.ServePattern)
	http.HandleFunc("/thumbnails/", hub.ServeThumbnail)
	http.HandleFunc("/ws", hub.ServeSocket)

	l, err := net.Listen("tcp", fmt.Sprint(":", port))
	if err != nil {
		log.Fatalf("Listen: %v", err)
	}
	defer l.Close()

	l = netutil.LimitListener(l, maxConnections)

	log.Printf("Workshop started on port %d\n", port)
	log.Fatal("Serve: ", http.Serve(l, nil))
}

// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"bytes"
	"net"
	"testing"

	"github.com/SoftbearStudios/cgp/server/cloud/db"
)

func TestParseUserData(t *testing.T) {
	data, err := parseUserData("REGION=\"us-east-1\"\nSTAGE=prod\r\nignored\nDOMAIN = example.com\nROUTE53_ZONEID=Z123\n")
	if err != nil {
		t.Fatal(err)
	}
	if data.Region != "us-east-1" || data.Stage != "prod" || data.Domain != "example.com" || data.Route53ZoneID != "Z123" {
		t.Errorf("parsed %+v", *data)
	}

	data, err = parseUserData("REGION=eu-west-1\nSTAGE=dev")
	if err != nil {
		t.Fatal(err)
	}
	if data.Domain != "" {
		t.Errorf("unexpected domain %q", data.Domain)
	}

	for _, userData := range []string{
		"",
		"STAGE=dev",
		"REGION=eu-west-1",
		"REGION=eu-west-1\nSTAGE=dev\nDOMAIN=example.com",
	} {
		if _, err := parseUserData(userData); err == nil {
			t.Errorf("expected error for %q", userData)
		}
	}
}

func TestSortPatterns(t *testing.T) {
	names := sortPatterns([]db.Pattern{
		{Name: "b", Updated: 5},
		{Name: "old", Updated: 1},
		{Name: "a", Updated: 5},
		{Name: "new", Updated: 9},
	})

	expected := []string{"new", "a", "b", "old"}
	if len(names) != len(expected) {
		t.Fatalf("got %v", names)
	}
	for i := range names {
		if names[i] != expected[i] {
			t.Errorf("got %v, expected %v", names, expected)
			break
		}
	}
}

func TestCloud_Nil(t *testing.T) {
	var cloud *Cloud

	if s := cloud.String(); s != "[offline]" {
		t.Errorf("nil cloud is %q", s)
	}
	if err := cloud.UpdateServer(3); err != nil {
		t.Error(err)
	}
	if err := cloud.UploadPattern("arena", []byte("x")); err != nil {
		t.Error(err)
	}
	if data, err := cloud.DownloadPattern("arena"); data != nil || err != nil {
		t.Errorf("download gave %v, %v", data, err)
	}
	if err := cloud.RecordPattern("arena", 1); err != nil {
		t.Error(err)
	}
	if names, err := cloud.ReadPatterns(); names != nil || err != nil {
		t.Errorf("read gave %v, %v", names, err)
	}
}

var _ db.Database = (*db.DynamoDBDatabase)(nil)

// memoryDatabase is a db.Database that keeps the newest entry per pattern.
type memoryDatabase struct {
	patterns map[string]db.Pattern
	servers  []db.Server
}

func (database *memoryDatabase) RecordPattern(pattern db.Pattern) error {
	if old, ok := database.patterns[pattern.Name]; ok && old.Updated >= pattern.Updated {
		return nil
	}
	database.patterns[pattern.Name] = pattern
	return nil
}

func (database *memoryDatabase) ReadPatterns() (patterns []db.Pattern, err error) {
	for _, pattern := range database.patterns {
		patterns = append(patterns, pattern)
	}
	return
}

func (database *memoryDatabase) UpdateServer(server db.Server) error {
	database.servers = append(database.servers, server)
	return nil
}

type memoryFilesystem map[string][]byte

func (filesystem memoryFilesystem) UploadPattern(name string, data []byte) error {
	filesystem[name] = data
	return nil
}

func (filesystem memoryFilesystem) DownloadPattern(name string) ([]byte, error) {
	return filesystem[name], nil
}

func TestCloud_Memory(t *testing.T) {
	database := &memoryDatabase{patterns: make(map[string]db.Pattern)}
	cloud := &Cloud{
		region:   "us-east-1",
		ip:       net.IPv4(127, 0, 0, 1),
		database: database,
		fs:       make(memoryFilesystem),
	}

	if s := cloud.String(); s != "[us-east-1 127.0.0.1]" {
		t.Errorf("cloud is %q", s)
	}

	if err := cloud.UpdateServer(2); err != nil {
		t.Fatal(err)
	}
	if len(database.servers) != 1 || database.servers[0].Editors != 2 || database.servers[0].Region != "us-east-1" {
		t.Errorf("servers %+v", database.servers)
	}

	if err := cloud.UploadPattern("arena", []byte("text")); err != nil {
		t.Fatal(err)
	}
	if data, err := cloud.DownloadPattern("arena"); err != nil || !bytes.Equal(data, []byte("text")) {
		t.Errorf("download gave %q, %v", data, err)
	}
	if data, err := cloud.DownloadPattern("missing"); data != nil || err != nil {
		t.Errorf("download gave %q, %v", data, err)
	}

	if err := cloud.RecordPattern("arena", 4); err != nil {
		t.Fatal(err)
	}
	names, err := cloud.ReadPatterns()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 1 || names[0] != "arena" {
		t.Errorf("patterns %v", names)
	}
}

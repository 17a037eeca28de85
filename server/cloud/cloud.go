// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cloud backs the workshop with AWS: published patterns in S3,
// an index of them in DynamoDB and an optional Route53 record.
package cloud

import (
	"fmt"
	"net"
	"sort"
	"strings"
	"time"

	"github.com/SoftbearStudios/cgp/server/cloud/db"
	"github.com/SoftbearStudios/cgp/server/cloud/dns"
	"github.com/SoftbearStudios/cgp/server/cloud/fs"
)

const updatePeriod = 30 * time.Second

// A nil cloud is valid to use with any methods (acts as a no-op)
// This just means server is in offline mode
type Cloud struct {
	region   string
	ip       net.IP
	database db.Database
	dns      dns.DNS // nil without a domain
	fs       fs.Filesystem
}

func (cloud *Cloud) String() string {
	var builder strings.Builder
	builder.WriteByte('[')
	if cloud == nil {
		builder.WriteString("offline")
	} else {
		builder.WriteString(cloud.region)
		builder.WriteByte(' ')
		builder.WriteString(cloud.ip.String())
		if cloud.dns != nil {
			builder.WriteByte(' ')
			builder.WriteString(cloud.dns.Hostname(cloud.region))
		}
	}
	builder.WriteByte(']')
	return builder.String()
}

// New returns nil cloud on error
func New() (*Cloud, error) {
	userData, err := loadUserData()
	if err != nil {
		return nil, fmt.Errorf("user data: %w", err)
	}

	cloud := &Cloud{region: userData.Region}

	cloud.ip, err = getPublicIP()
	if err != nil {
		return nil, fmt.Errorf("public ip: %w", err)
	}
	session, err := getAWSSession(cloud.region)
	if err != nil {
		return nil, fmt.Errorf("aws session: %w", err)
	}

	cloud.database, err = db.NewDynamoDBDatabase(session, userData.Stage)
	if err != nil {
		return nil, err
	}
	cloud.fs, err = fs.NewS3Filesystem(session, userData.Stage)
	if err != nil {
		return nil, err
	}

	if userData.Domain != "" {
		route53DNS, err := dns.NewRoute53DNS(session, userData.Domain, userData.Route53ZoneID)
		if err != nil {
			return nil, err
		}
		if err = route53DNS.UpdateRoute(cloud.region, cloud.ip); err != nil {
			return nil, fmt.Errorf("route: %w", err)
		}
		cloud.dns = route53DNS
	}

	if err = cloud.UpdateServer(0); err != nil {
		return nil, err
	}

	return cloud, nil
}

func (cloud *Cloud) UpdatePeriod() time.Duration {
	return updatePeriod
}

// UpdateServer must be called at least every UpdatePeriod or the entry expires.
func (cloud *Cloud) UpdateServer(editors int) error {
	if cloud == nil {
		return nil
	}
	return cloud.database.UpdateServer(db.Server{
		Region:  cloud.region,
		IP:      cloud.ip,
		Editors: editors,
		TTL:     time.Now().Unix() + int64(updatePeriod/time.Second) + 5,
	})
}

func (cloud *Cloud) UploadPattern(name string, data []byte) error {
	if cloud == nil {
		return nil
	}
	return cloud.fs.UploadPattern(name, data)
}

// DownloadPattern returns nil data if the pattern was never published.
func (cloud *Cloud) DownloadPattern(name string) ([]byte, error) {
	if cloud == nil {
		return nil, nil
	}
	return cloud.fs.DownloadPattern(name)
}

func (cloud *Cloud) RecordPattern(name string, size int) error {
	if cloud == nil {
		return nil
	}
	return cloud.database.RecordPattern(db.Pattern{
		Name:    name,
		Size:    size,
		Updated: time.Now().UnixNano() / int64(time.Millisecond),
	})
}

// ReadPatterns returns the names of indexed patterns, most recently updated first.
func (cloud *Cloud) ReadPatterns() ([]string, error) {
	if cloud == nil {
		return nil, nil
	}

	patterns, err := cloud.database.ReadPatterns()
	if err != nil {
		return nil, err
	}
	return sortPatterns(patterns), nil
}

func sortPatterns(patterns []db.Pattern) []string {
	sort.Slice(patterns, func(i, j int) bool {
		a, b := patterns[i], patterns[j]
		if a.Updated != b.Updated {
			return a.Updated > b.Updated
		}
		return a.Name < b.Name
	})

	names := make([]string, len(patterns))
	for i, pattern := range patterns {
		names[i] = pattern.Name
	}
	return names
}

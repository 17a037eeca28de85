// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package db

import (
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/guregu/dynamo"
)

type DynamoDBDatabase struct {
	svc           *dynamodb.DynamoDB
	db            *dynamo.DB
	patternsTable dynamo.Table
	serversTable  dynamo.Table
}

func NewDynamoDBDatabase(session *session.Session, stage string) (*DynamoDBDatabase, error) {
	ddb := &DynamoDBDatabase{svc: dynamodb.New(session)}
	ddb.db = dynamo.NewFromIface(ddb.svc)
	ddb.patternsTable = ddb.db.Table("cgp-" + stage + "-patterns")
	ddb.serversTable = ddb.db.Table("cgp-" + stage + "-servers")
	return ddb, nil
}

func (ddb *DynamoDBDatabase) RecordPattern(pattern Pattern) error {
	err := ddb.patternsTable.Put(pattern).If("attribute_not_exists(updated) OR updated < ?", pattern.Updated).Run()
	if err != nil {
		// Out of order publish from another server
		if _, ok := err.(*dynamodb.ConditionalCheckFailedException); ok {
			return nil
		}
	}
	return err
}

func (ddb *DynamoDBDatabase) ReadPatterns() (patterns []Pattern, err error) {
	iter := ddb.patternsTable.Scan().Iter()

	var pattern Pattern
	for iter.Next(&pattern) {
		patterns = append(patterns, pattern)
		pattern = Pattern{}
	}
	err = iter.Err()
	return
}

func (ddb *DynamoDBDatabase) UpdateServer(server Server) error {
	return ddb.serversTable.Put(server).Run()
}

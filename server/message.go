// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"reflect"
	"strings"
)

var (
	// Valid inbound message types: messageType to type
	inboundMessageTypes = make(map[messageType]reflect.Type)
	// Valid outbound message types: to messageType
	outboundMessageTypes = make(map[reflect.Type]messageType)
)

type (
	// Inbound is a message from an editor, processed on the hub goroutine.
	Inbound interface {
		Process(h *Hub, client Client, editor *Editor)
	}

	// Outbound is a message to an editor.
	Outbound interface {
		// Pool returns the contents of outbound to their sync.Pool
		Pool()
	}

	// Message is marshaled as {"type": ..., "data": ...}.
	Message struct {
		Data interface{}
	}

	messageJSON struct {
		Data interface{} `json:"data"`
		Type messageType `json:"type"`
	}

	messageType string

	SignedInbound struct {
		Client Client
		Inbound
	}
)

func uncapitalize(str string) string {
	return strings.ToLower(str[0:1]) + str[1:]
}

func messageTypeOf(val reflect.Value) messageType {
	return messageType(uncapitalize(reflect.Indirect(val).Type().Name()))
}

func registerInbound(inbounds ...Inbound) {
	for _, in := range inbounds {
		val := reflect.ValueOf(in)
		inboundMessageTypes[messageTypeOf(val)] = val.Type()
	}
}

func registerOutbound(outbounds ...Outbound) {
	for _, out := range outbounds {
		val := reflect.ValueOf(out)
		outboundMessageTypes[val.Type()] = messageTypeOf(val)
	}
}

func (message Message) messageJSON() messageJSON {
	typ := reflect.TypeOf(message.Data)

	mType, ok := outboundMessageTypes[typ]
	if !ok {
		// Panic because outbounds only come from trusted sources
		panic("invalid outbound message type " + reflect.ValueOf(message.Data).String())
	}

	return messageJSON{Data: message.Data, Type: mType}
}

// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"reflect"
	"strconv"
	"sync"
	"unsafe"

	"github.com/SoftbearStudios/cgp/pattern"
	jsoniter "github.com/json-iterator/go"
)

// Make sure functions get run first
var json = func() jsoniter.API {
	neverEmpty := func(pointer unsafe.Pointer) bool { return false }

	// Encoders
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(Message{}).String(), encodeMessage, neverEmpty)
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(pattern.Pattern{}).String(), encodePattern, neverEmpty)
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(pattern.Prefab(0)).String(), encodePrefab, neverEmpty)

	// Decoders
	jsoniter.RegisterTypeDecoderFunc(reflect.TypeOf(Message{}).String(), decodeMessage)
	jsoniter.RegisterTypeDecoderFunc(reflect.TypeOf(pattern.Pattern{}).String(), decodePattern)
	jsoniter.RegisterTypeDecoderFunc(reflect.TypeOf(pattern.Prefab(0)).String(), decodePrefab)

	return jsoniter.Config{
		IndentionStep:                 0,
		MarshalFloatWith6Digits:       true,
		EscapeHTML:                    false,
		SortMapKeys:                   true,
		UseNumber:                     false,
		DisallowUnknownFields:         false,
		TagKey:                        "json",
		OnlyTaggedField:               false,
		ValidateJsonRawMessage:        false,
		ObjectFieldMustBeSimpleString: true,
		CaseSensitive:                 true,
	}.Froze()
}()

func encodeMessage(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	message := (*Message)(ptr)
	stream.WriteVal(message.messageJSON())
}

// Encodes a pattern as {"heights": [256 ints], "prefabs": "256 file bytes"}
func encodePattern(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	p := (*pattern.Pattern)(ptr)

	stream.WriteObjectStart()
	stream.WriteObjectField("heights")

	buf := append(stream.Buffer(), '[')
	for i := 0; i < pattern.Size; i++ {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendInt(buf, int64(p.Index(i).Height()), 10)
	}
	buf = append(buf, ']')
	stream.SetBuffer(buf)

	stream.WriteMore()
	stream.WriteObjectField("prefabs")

	// Prefab bytes never need escaping
	buf = append(stream.Buffer(), '"')
	for i := 0; i < pattern.Size; i++ {
		buf = append(buf, p.Index(i).Prefab().Byte())
	}
	buf = append(buf, '"')
	stream.SetBuffer(buf)

	stream.WriteObjectEnd()
}

// Decodes a pattern, failing on missing fields or values out of range.
func decodePattern(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	var (
		decoded pattern.Pattern
		heights int
		prefabs int
	)

	iter.ReadObjectCB(func(iter *jsoniter.Iterator, field string) bool {
		switch field {
		case "heights":
			heights = 0
			iter.ReadArrayCB(func(iter *jsoniter.Iterator) bool {
				height := iter.ReadInt()
				if iter.Error != nil {
					return false
				}
				if heights >= pattern.Size {
					iter.ReportError("decodePattern", "too many heights")
					return false
				}
				if !pattern.ValidHeight(height) {
					iter.ReportError("decodePattern", "height out of range: "+strconv.Itoa(height))
					return false
				}
				decoded.TileIndex(heights).SetHeight(int8(height))
				heights++
				return true
			})
		case "prefabs":
			str := iter.ReadString()
			if iter.Error != nil {
				return false
			}
			if len(str) != pattern.Size {
				iter.ReportError("decodePattern", "expected "+strconv.Itoa(pattern.Size)+" prefabs")
				return false
			}
			for i := 0; i < len(str); i++ {
				prefab, ok := pattern.ParsePrefab(str[i])
				if !ok {
					iter.ReportError("decodePattern", "invalid prefab: "+strconv.QuoteRune(rune(str[i])))
					return false
				}
				decoded.TileIndex(i).SetPrefab(prefab)
			}
			prefabs = len(str)
		default:
			iter.Skip()
		}
		return iter.Error == nil
	})

	if iter.Error != nil {
		return
	}
	if heights != pattern.Size || prefabs != pattern.Size {
		iter.ReportError("decodePattern", "incomplete pattern")
		return
	}

	*(*pattern.Pattern)(ptr) = decoded
}

func encodePrefab(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	prefab := *(*pattern.Prefab)(ptr)
	stream.SetBuffer(append(stream.Buffer(), '"', prefab.Byte(), '"'))
}

func decodePrefab(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	str := iter.ReadString()
	if iter.Error != nil {
		return
	}

	var prefab pattern.Prefab
	ok := len(str) == 1
	if ok {
		prefab, ok = pattern.ParsePrefab(str[0])
	}
	if !ok {
		iter.ReportError("decodePrefab", "invalid prefab: "+strconv.Quote(str))
		return
	}
	*(*pattern.Prefab)(ptr) = prefab
}

// Buffers large enough to hold most inbounds
var decodeMessagePool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, 0, 256)
		return &buf
	},
}

// decodeMessage reads "type" first, wherever it is, then "data" into the registered inbound type.
func decodeMessage(ptr unsafe.Pointer, topLevelIter *jsoniter.Iterator) {
	bufPtr := decodeMessagePool.Get().(*[]byte)

	// Read bytes so can read twice
	messageBytes := topLevelIter.SkipAndAppendBytes((*bufPtr)[:0])
	defer func() {
		*bufPtr = messageBytes[:0]
		decodeMessagePool.Put(bufPtr)
	}()
	if topLevelIter.Error != nil {
		return
	}

	// Pool iterator with previous pool
	pool := topLevelIter.Pool()
	iter := pool.BorrowIterator(messageBytes)
	defer pool.ReturnIterator(iter)

	var (
		mType messageType
		found bool
	)
	iter.ReadObjectCB(func(i *jsoniter.Iterator, field string) bool {
		if field == "type" {
			mType = messageType(i.ReadString())
			found = true
			return false
		}
		i.Skip()
		return true
	})

	if err := iter.Error; err != nil {
		topLevelIter.Error = err
		return
	}
	if !found {
		topLevelIter.ReportError("decodeMessage", "no inbound message type")
		return
	}

	message := (*Message)(ptr)

	inboundType, ok := inboundMessageTypes[mType]
	if !ok {
		message.Data = InvalidInbound{messageType: mType}
		return
	}

	// Interface of *inbound
	in := reflect.New(inboundType)

	iter.ResetBytes(messageBytes)
	iter.ReadObjectCB(func(i *jsoniter.Iterator, field string) bool {
		if field == "data" {
			i.ReadVal(in.Interface())
			return false
		}
		i.Skip()
		return true
	})

	if err := iter.Error; err != nil {
		topLevelIter.Error = err
		return
	}

	message.Data = in.Elem().Interface()
}

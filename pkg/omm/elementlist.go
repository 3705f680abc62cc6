//
//  Copyright 2023 PayPal Inc.
//
//  Licensed to the Apache Software Foundation (ASF) under one or more
//  contributor license agreements.  See the NOTICE file distributed with
//  this work for additional information regarding copyright ownership.
//  The ASF licenses this file to You under the Apache License, Version 2.0
//  (the "License"); you may not use this file except in compliance with
//  the License.  You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.
//

package omm

import (
	"strconv"

	"rwf/pkg/codec"
	"rwf/pkg/dictionary"
)

const (
	kElementListHasInfo         = 0x01
	kElementListHasStandardData = 0x08
)

// ElementEntry is keyed by name and carries its own data type on the wire.
type ElementEntry struct {
	Name string
	Load Data
}

func (e *ElementEntry) LoadType() codec.DataType {
	return dataTypeOf(e.Load)
}

type ElementList struct {
	lifecycle
	elementListNum *int16
	entries        []ElementEntry
	count          int
	body           []byte
	ref            RefIterator[ElementEntry]
}

func NewElementList() *ElementList {
	return &ElementList{}
}

func (el *ElementList) DataType() codec.DataType {
	return codec.DataTypeElementList
}

func DecodeElementList(b []byte, major, minor uint8, dict dictionary.Dictionary) (*ElementList, error) {
	if err := checkVersion(major); err != nil {
		return nil, err
	}
	return decodeElementList(b, decodeCtx{major: major, minor: minor, dict: dict})
}

func decodeElementList(b []byte, ctx decodeCtx) (*ElementList, error) {
	el := &ElementList{}
	r := codec.NewReader(b)
	flags := r.Uint8()
	if flags&kElementListHasInfo != 0 {
		num := r.Int16()
		el.elementListNum = &num
	}
	if flags&kElementListHasStandardData != 0 {
		el.count = int(r.Uint16())
		el.body = r.Rest()
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	el.bind(b, ctx)
	return el, nil
}

func (el *ElementList) ElementListNum() (int16, bool) {
	if el.elementListNum == nil {
		return 0, false
	}
	return *el.elementListNum, true
}

func (el *ElementList) HasInfo() bool {
	return el.elementListNum != nil
}

func (el *ElementList) SetInfo(elementListNum int16) error {
	if err := el.mutate(); err != nil {
		return err
	}
	el.elementListNum = &elementListNum
	return nil
}

func (el *ElementList) Add(name string, load Data) error {
	if err := checkEntryLoad(load); err != nil {
		return err
	}
	if len(name) > 0x7FFF {
		return newError(ErrorCodeInvalidArgument, "element name longer than 32767 bytes")
	}
	if t := dataTypeOf(load); t == codec.DataTypeError {
		return newError(ErrorCodeInvalidArgument, "Attempt to add entry of ERROR to ElementList")
	}
	if err := el.mutate(); err != nil {
		return err
	}
	if len(el.entries) >= 0xFFFF {
		return newError(ErrorCodeInvalidUsage, "ElementList is full")
	}
	el.entries = append(el.entries, ElementEntry{Name: name, Load: orNoData(load)})
	return nil
}

func (el *ElementList) Clear() {
	el.lifecycle.reset()
	el.elementListNum = nil
	el.entries = nil
	el.count = 0
	el.body = nil
	el.ref.reset(nil)
}

func (el *ElementList) mutate() error {
	if el.state == StateWireBound {
		entries, err := collect[ElementEntry](el.cursor(el.dict))
		if err != nil {
			return err
		}
		el.entries = entries
		el.count = 0
		el.body = nil
	}
	el.touch()
	return nil
}

func (el *ElementList) Size() int {
	if el.state == StateWireBound {
		return el.count
	}
	return len(el.entries)
}

func (el *ElementList) cursor(dict dictionary.Dictionary) cursor[ElementEntry] {
	if el.state != StateWireBound {
		return &sliceCursor[ElementEntry]{entries: el.entries}
	}
	ctx := decodeCtx{major: el.wire.major, minor: el.wire.minor, dict: dict}
	return newWireCursor(el.body, el.count, ctx, parseElementEntry)
}

func parseElementEntry(r *codec.Reader, ctx decodeCtx, e *ElementEntry) {
	e.Name = string(r.Buffer15())
	t := codec.DataType(r.Uint8())
	payload := r.Buffer32()
	if r.Err() != nil {
		return
	}
	e.Load = ctx.load(t, payload)
}

func (el *ElementList) Iterator() *Iterator[ElementEntry] {
	return &Iterator[ElementEntry]{c: el.cursor(el.dict), detach: func(e *ElementEntry) (err error) {
		e.Load, err = detachData(e.Load, el.dict)
		return err
	}}
}

func (el *ElementList) IteratorByRef() *RefIterator[ElementEntry] {
	return el.ref.reset(el.cursor(el.dict))
}

func (el *ElementList) encodeTo(w *codec.Writer) {
	if el.state == StateWireBound {
		w.PutBytes(el.wire.data)
		return
	}
	flags := uint8(kElementListHasStandardData)
	if el.elementListNum != nil {
		flags |= kElementListHasInfo
	}
	w.PutUint8(flags)
	if el.elementListNum != nil {
		w.PutInt16(*el.elementListNum)
	}
	w.PutUint16(uint16(len(el.entries)))
	for i := range el.entries {
		e := &el.entries[i]
		w.PutString15(e.Name)
		w.PutUint8(uint8(wireTypeOf(e.Load)))
		encodePayload(w, e.Load)
	}
}

func (el *ElementList) render(r *renderer) {
	head := "ElementList"
	if el.elementListNum != nil {
		head += attr("ElementListNum", strconv.Itoa(int(*el.elementListNum)))
	}
	r.line(head)
	r.push()
	it := Iterator[ElementEntry]{c: el.cursor(r.dict)}
	for it.HasNext() {
		e := it.Next()
		if it.Err() != nil {
			break
		}
		r.entry("ElementEntry"+attr("name", e.Name), "ElementEntryEnd", e.Load, nil)
	}
	r.iterError(it.Err())
	r.pop()
	r.line("ElementListEnd")
}

func (el *ElementList) Encode(buf []byte) (int, error) {
	return encodeInto(el, buf)
}

func (el *ElementList) Marshal() ([]byte, error) {
	return marshalObject(el)
}

func (el *ElementList) Clone() (*ElementList, error) {
	o, err := cloneOf(el)
	if err != nil {
		return nil, err
	}
	return o.(*ElementList), nil
}

func (el *ElementList) String() string {
	return stringOf(el)
}

func (el *ElementList) StringWithDictionary(dict dictionary.Dictionary) string {
	return stringWithDictionaryOf(el, dict)
}

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
	"bytes"
	"fmt"
	"strconv"

	"rwf/pkg/codec"
	"rwf/pkg/dictionary"
)

const (
	kMapHasSummaryData      = 0x01
	kMapHasPerEntryPermData = 0x02
	kMapHasTotalCountHint   = 0x04
	kMapHasKeyFieldID       = 0x08

	kMapEntryHasPermData = 0x01
)

type MapAction uint8

const (
	MapActionUpdate MapAction = 1
	MapActionAdd    MapAction = 2
	MapActionDelete MapAction = 3
)

func (a MapAction) String() string {
	switch a {
	case MapActionUpdate:
		return "Update"
	case MapActionAdd:
		return "Add"
	case MapActionDelete:
		return "Delete"
	}
	return "Unknown MapAction value " + strconv.Itoa(int(a))
}

// MapEntry is keyed by a primitive. All keys of a map share one type.
type MapEntry struct {
	Action   MapAction
	Key      codec.Primitive
	PermData []byte
	Load     Data
}

func (e *MapEntry) LoadType() codec.DataType {
	return dataTypeOf(e.Load)
}

func (e *MapEntry) HasPermData() bool {
	return e.PermData != nil
}

type Map struct {
	lifecycle
	guard          loadTypeGuard
	keyType        codec.DataType
	keyFieldID     *int16
	summary        Data
	totalCountHint *uint32
	entries        []MapEntry
	count          int
	body           []byte
	ref            RefIterator[MapEntry]
}

func NewMap() *Map {
	return &Map{}
}

func (m *Map) DataType() codec.DataType {
	return codec.DataTypeMap
}

func DecodeMap(b []byte, major, minor uint8, dict dictionary.Dictionary) (*Map, error) {
	if err := checkVersion(major); err != nil {
		return nil, err
	}
	return decodeMap(b, decodeCtx{major: major, minor: minor, dict: dict})
}

func decodeMap(b []byte, ctx decodeCtx) (*Map, error) {
	m := &Map{}
	r := codec.NewReader(b)
	flags := r.Uint8()
	m.keyType = codec.DataType(r.Uint8())
	ct, err := codec.ContainerTypeFromWire(r.Uint8())
	if r.Err() != nil {
		return nil, r.Err()
	}
	if err != nil {
		return nil, err
	}
	if !validKeyType(m.keyType) {
		return nil, fmt.Errorf("%w: map key type %s", codec.ErrInvalidData, m.keyType)
	}
	if flags&kMapHasKeyFieldID != 0 {
		fid := r.Int16()
		m.keyFieldID = &fid
	}
	if flags&kMapHasSummaryData != 0 {
		if m.summary, err = ctx.decode(ct, r.Buffer32()); err != nil {
			return nil, err
		}
	}
	if flags&kMapHasTotalCountHint != 0 {
		hint := r.U32ob()
		m.totalCountHint = &hint
	}
	m.count = int(r.Uint16())
	m.body = r.Rest()
	if err = r.Err(); err != nil {
		return nil, err
	}
	m.guard.restore(ct, m.summary != nil, m.count)
	m.bind(b, ctx)
	return m, nil
}

func validKeyType(t codec.DataType) bool {
	return t.IsPrimitive() && t != codec.DataTypeArray
}

func (m *Map) ContainerType() codec.DataType {
	return m.guard.declared()
}

// KeyType is fixed by the first key added. An empty map reports Buffer.
func (m *Map) KeyType() codec.DataType {
	if m.keyType == codec.DataTypeUnknown {
		return codec.DataTypeBuffer
	}
	return m.keyType
}

func (m *Map) KeyFieldID() (int16, bool) {
	if m.keyFieldID == nil {
		return 0, false
	}
	return *m.keyFieldID, true
}

func (m *Map) SetKeyFieldID(fid int16) error {
	if err := m.mutate(); err != nil {
		return err
	}
	m.keyFieldID = &fid
	return nil
}

func (m *Map) SummaryData() (Data, bool) {
	return m.summary, m.summary != nil
}

func (m *Map) HasSummaryData() bool {
	return m.summary != nil
}

func (m *Map) SetSummaryData(d Data) error {
	if isNoData(d) {
		return newError(ErrorCodeInvalidArgument, "Attempt to set summaryData() with NO_DATA")
	}
	if err := checkContainerLoad("Map summaryData()", d); err != nil {
		return err
	}
	if err := m.guard.checkSummary("Map", d.DataType()); err != nil {
		return err
	}
	if err := m.mutate(); err != nil {
		return err
	}
	m.guard.noteSummary(d.DataType())
	m.summary = d
	return nil
}

func (m *Map) TotalCountHint() (uint32, bool) {
	if m.totalCountHint == nil {
		return 0, false
	}
	return *m.totalCountHint, true
}

func (m *Map) SetTotalCountHint(n uint32) error {
	if err := m.mutate(); err != nil {
		return err
	}
	m.totalCountHint = &n
	return nil
}

// Add appends an entry under key. Delete entries carry no load.
func (m *Map) Add(key codec.Primitive, action MapAction, load Data, permData []byte) error {
	if action < MapActionUpdate || action > MapActionDelete {
		return newError(ErrorCodeInvalidArgument, "Invalid MapAction "+strconv.Itoa(int(action)))
	}
	if key == nil || !validKeyType(key.DataType()) {
		return newError(ErrorCodeInvalidArgument, "Map key must be a non-array primitive")
	}
	if action == MapActionDelete {
		load = NoData{}
	}
	if err := checkContainerLoad("MapEntry load", load); err != nil {
		return err
	}
	if len(permData) > 0x7FFF {
		return newError(ErrorCodeInvalidArgument, "permission data longer than 32767 bytes")
	}
	if m.Size() >= 0xFFFF {
		return newError(ErrorCodeInvalidUsage, "Map is full")
	}
	kt := key.DataType()
	if m.keyType != codec.DataTypeUnknown && kt != m.keyType {
		return newError(ErrorCodeInvalidArgument,
			"Attempt to add key of "+kt.ConstName()+" while Map key type is set to "+m.keyType.ConstName())
	}
	if err := m.guard.checkAdd("Map", dataTypeOf(load)); err != nil {
		return err
	}
	if err := m.mutate(); err != nil {
		return err
	}
	m.guard.noteAdd(dataTypeOf(load))
	m.keyType = kt
	m.entries = append(m.entries, MapEntry{Action: action, Key: key, PermData: permData, Load: orNoData(load)})
	return nil
}

func (m *Map) Clear() {
	m.lifecycle.reset()
	m.guard = loadTypeGuard{}
	m.keyType = codec.DataTypeUnknown
	m.keyFieldID = nil
	m.summary = nil
	m.totalCountHint = nil
	m.entries = nil
	m.count = 0
	m.body = nil
	m.ref.reset(nil)
}

func (m *Map) mutate() error {
	if m.state == StateWireBound {
		entries, err := collect[MapEntry](m.cursor(m.dict))
		if err != nil {
			return err
		}
		m.entries = entries
		m.count = 0
		m.body = nil
	}
	m.touch()
	return nil
}

func (m *Map) Size() int {
	if m.state == StateWireBound {
		return m.count
	}
	return len(m.entries)
}

func (m *Map) cursor(dict dictionary.Dictionary) cursor[MapEntry] {
	if m.state != StateWireBound {
		return &sliceCursor[MapEntry]{entries: m.entries}
	}
	ctx := decodeCtx{major: m.wire.major, minor: m.wire.minor, dict: dict}
	t, kt := m.ContainerType(), m.KeyType()
	return newWireCursor(m.body, m.count, ctx, func(r *codec.Reader, ctx decodeCtx, e *MapEntry) {
		b := r.Uint8()
		flags := b >> 4
		e.Action = MapAction(b & 0x0F)
		if flags&kMapEntryHasPermData != 0 {
			e.PermData = r.Buffer15()
		}
		keyBytes := r.Buffer32()
		if r.Err() != nil {
			return
		}
		key, err := codec.DecodePrimitive(kt, keyBytes)
		if err != nil {
			r.Fail(err)
			return
		}
		e.Key = key
		if e.Action == MapActionDelete {
			e.Load = NoData{}
			return
		}
		payload := r.Buffer32()
		if r.Err() != nil {
			return
		}
		e.Load = ctx.load(t, payload)
	})
}

func (m *Map) Iterator() *Iterator[MapEntry] {
	return &Iterator[MapEntry]{c: m.cursor(m.dict), detach: func(e *MapEntry) (err error) {
		e.PermData = bytes.Clone(e.PermData)
		if e.Key != nil {
			var k Data
			if k, err = detachData(e.Key, nil); err != nil {
				return err
			}
			e.Key = k.(codec.Primitive)
		}
		e.Load, err = detachData(e.Load, m.dict)
		return err
	}}
}

func (m *Map) IteratorByRef() *RefIterator[MapEntry] {
	return m.ref.reset(m.cursor(m.dict))
}

func (m *Map) encodeTo(w *codec.Writer) {
	if m.state == StateWireBound {
		w.PutBytes(m.wire.data)
		return
	}
	var flags uint8
	if m.summary != nil {
		flags |= kMapHasSummaryData
	}
	for i := range m.entries {
		if m.entries[i].PermData != nil {
			flags |= kMapHasPerEntryPermData
			break
		}
	}
	if m.totalCountHint != nil {
		flags |= kMapHasTotalCountHint
	}
	if m.keyFieldID != nil {
		flags |= kMapHasKeyFieldID
	}
	ct, err := codec.ContainerTypeToWire(m.ContainerType())
	if err != nil {
		w.Fail(err)
		return
	}
	w.PutUint8(flags)
	w.PutUint8(uint8(m.KeyType()))
	w.PutUint8(ct)
	if m.keyFieldID != nil {
		w.PutInt16(*m.keyFieldID)
	}
	if m.summary != nil {
		encodePayload(w, m.summary)
	}
	if m.totalCountHint != nil {
		w.PutU32ob(*m.totalCountHint)
	}
	w.PutUint16(uint16(len(m.entries)))
	for i := range m.entries {
		e := &m.entries[i]
		var eflags uint8
		if e.PermData != nil {
			eflags |= kMapEntryHasPermData
		}
		w.PutUint8(eflags<<4 | uint8(e.Action))
		if e.PermData != nil {
			w.PutBuffer15(e.PermData)
		}
		km := w.Reserve()
		codec.EncodePrimitive(w, e.Key)
		w.Finish(km)
		if e.Action != MapActionDelete {
			encodePayload(w, e.Load)
		}
	}
}

func (m *Map) render(r *renderer) {
	head := "Map"
	if m.totalCountHint != nil {
		head += attr("totalCountHint", strconv.FormatUint(uint64(*m.totalCountHint), 10))
	}
	if m.keyFieldID != nil {
		head += attr("keyFieldId", strconv.Itoa(int(*m.keyFieldID)))
	}
	r.line(head)
	r.push()
	if m.summary != nil {
		r.summary(m.summary)
	}
	it := Iterator[MapEntry]{c: m.cursor(r.dict)}
	for it.HasNext() {
		e := it.Next()
		if it.Err() != nil {
			break
		}
		head := "MapEntry" + attr("action", e.Action.String()) +
			" key" + attr("dataType", e.Key.DataType().String()) + attr("value", r.value(e.Key))
		if e.PermData != nil {
			head += attr("permissionData", hexString(e.PermData))
		}
		r.entry(head, "MapEntryEnd", e.Load, nil)
	}
	r.iterError(it.Err())
	r.pop()
	r.line("MapEnd")
}

func (m *Map) Encode(buf []byte) (int, error) {
	return encodeInto(m, buf)
}

func (m *Map) Marshal() ([]byte, error) {
	return marshalObject(m)
}

func (m *Map) Clone() (*Map, error) {
	o, err := cloneOf(m)
	if err != nil {
		return nil, err
	}
	return o.(*Map), nil
}

func (m *Map) String() string {
	return stringOf(m)
}

func (m *Map) StringWithDictionary(dict dictionary.Dictionary) string {
	return stringWithDictionaryOf(m, dict)
}

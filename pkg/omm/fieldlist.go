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

	"github.com/golang/glog"

	"rwf/pkg/codec"
	"rwf/pkg/dictionary"
)

const (
	kFieldListHasInfo         = 0x01
	kFieldListHasStandardData = 0x08
)

type FieldListInfo struct {
	DictionaryID uint16
	FieldListNum int16
}

// FieldEntry is keyed by field id. The wire carries no type for the load, so a
// decoded load takes the type the dictionary gives the field.
type FieldEntry struct {
	FieldID int16
	Load    Data
}

func (e *FieldEntry) LoadType() codec.DataType {
	return dataTypeOf(e.Load)
}

// Name resolves the field name through dict, or returns "" when unknown.
func (e *FieldEntry) Name(dict dictionary.Dictionary) string {
	if dict != nil {
		if f, ok := dict.Field(e.FieldID); ok {
			return f.Name
		}
	}
	return ""
}

type FieldList struct {
	lifecycle
	info    *FieldListInfo
	entries []FieldEntry
	count   int
	body    []byte
	ref     RefIterator[FieldEntry]
}

func NewFieldList() *FieldList {
	return &FieldList{}
}

func (fl *FieldList) DataType() codec.DataType {
	return codec.DataTypeFieldList
}

// DecodeFieldList binds b. Entry types are looked up in dict.
func DecodeFieldList(b []byte, major, minor uint8, dict dictionary.Dictionary) (*FieldList, error) {
	if err := checkVersion(major); err != nil {
		return nil, err
	}
	return decodeFieldList(b, decodeCtx{major: major, minor: minor, dict: dict})
}

func decodeFieldList(b []byte, ctx decodeCtx) (*FieldList, error) {
	fl := &FieldList{}
	r := codec.NewReader(b)
	flags := r.Uint8()
	if flags&kFieldListHasInfo != 0 {
		fl.info = &FieldListInfo{DictionaryID: r.U15rb(), FieldListNum: r.Int16()}
	}
	if flags&kFieldListHasStandardData != 0 {
		fl.count = int(r.Uint16())
		fl.body = r.Rest()
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	fl.bind(b, ctx)
	return fl, nil
}

func (fl *FieldList) Info() (FieldListInfo, bool) {
	if fl.info == nil {
		return FieldListInfo{}, false
	}
	return *fl.info, true
}

func (fl *FieldList) HasInfo() bool {
	return fl.info != nil
}

func (fl *FieldList) SetInfo(dictionaryID uint16, fieldListNum int16) error {
	if dictionaryID > 0x7FFF {
		return newError(ErrorCodeInvalidArgument, "dictionaryId "+strconv.Itoa(int(dictionaryID))+" exceeds 32767")
	}
	if err := fl.mutate(); err != nil {
		return err
	}
	fl.info = &FieldListInfo{DictionaryID: dictionaryID, FieldListNum: fieldListNum}
	return nil
}

// Add appends an entry. A nil load is NoData.
func (fl *FieldList) Add(fid int16, load Data) error {
	if err := checkEntryLoad(load); err != nil {
		return err
	}
	if err := fl.mutate(); err != nil {
		return err
	}
	if len(fl.entries) >= 0xFFFF {
		return newError(ErrorCodeInvalidUsage, "FieldList is full")
	}
	fl.entries = append(fl.entries, FieldEntry{FieldID: fid, Load: orNoData(load)})
	return nil
}

// Clear returns fl to Blank.
func (fl *FieldList) Clear() {
	fl.lifecycle.reset()
	fl.info = nil
	fl.entries = nil
	fl.count = 0
	fl.body = nil
	fl.ref.reset(nil)
}

// mutate materializes bound entries before the first change to a WireBound list.
func (fl *FieldList) mutate() error {
	if fl.state == StateWireBound {
		entries, err := collect[FieldEntry](fl.cursor(fl.dict))
		if err != nil {
			return err
		}
		fl.entries = entries
		fl.count = 0
		fl.body = nil
	}
	fl.touch()
	return nil
}

func (fl *FieldList) Size() int {
	if fl.state == StateWireBound {
		return fl.count
	}
	return len(fl.entries)
}

func (fl *FieldList) cursor(dict dictionary.Dictionary) cursor[FieldEntry] {
	if fl.state != StateWireBound {
		return &sliceCursor[FieldEntry]{entries: fl.entries}
	}
	ctx := decodeCtx{major: fl.wire.major, minor: fl.wire.minor, dict: dict}
	return newWireCursor(fl.body, fl.count, ctx, parseFieldEntry)
}

func parseFieldEntry(r *codec.Reader, ctx decodeCtx, e *FieldEntry) {
	e.FieldID = r.Int16()
	payload := r.Buffer32()
	if r.Err() != nil {
		return
	}
	var def dictionary.FieldDef
	ok := false
	if ctx.dict != nil {
		def, ok = ctx.dict.Field(e.FieldID)
	}
	if !ok {
		if glog.V(2) {
			glog.Infof("fid %d not in dictionary, keeping %d bytes undecoded", e.FieldID, len(payload))
		}
		e.Load = ErrorData{Code: ErrorDataFieldIDNotFound, Type: codec.DataTypeUnknown, Raw: payload}
		return
	}
	e.Load = ctx.load(def.Type, payload)
}

func (fl *FieldList) Iterator() *Iterator[FieldEntry] {
	return &Iterator[FieldEntry]{c: fl.cursor(fl.dict), detach: func(e *FieldEntry) (err error) {
		e.Load, err = detachData(e.Load, fl.dict)
		return err
	}}
}

func (fl *FieldList) IteratorByRef() *RefIterator[FieldEntry] {
	return fl.ref.reset(fl.cursor(fl.dict))
}

func (fl *FieldList) encodeTo(w *codec.Writer) {
	if fl.state == StateWireBound {
		w.PutBytes(fl.wire.data)
		return
	}
	flags := uint8(kFieldListHasStandardData)
	if fl.info != nil {
		flags |= kFieldListHasInfo
	}
	w.PutUint8(flags)
	if fl.info != nil {
		w.PutU15rb(fl.info.DictionaryID)
		w.PutInt16(fl.info.FieldListNum)
	}
	w.PutUint16(uint16(len(fl.entries)))
	for i := range fl.entries {
		w.PutInt16(fl.entries[i].FieldID)
		encodePayload(w, fl.entries[i].Load)
	}
}

func (fl *FieldList) render(r *renderer) {
	head := "FieldList"
	if fl.info != nil {
		head += attr("FieldListNum", strconv.Itoa(int(fl.info.FieldListNum))) +
			attr("DictionaryId", strconv.Itoa(int(fl.info.DictionaryID)))
	}
	r.line(head)
	r.push()
	it := Iterator[FieldEntry]{c: fl.cursor(r.dict)}
	for it.HasNext() {
		e := it.Next()
		if it.Err() != nil {
			break
		}
		fid := e.FieldID
		r.entry("FieldEntry"+attr("fid", strconv.Itoa(int(fid)))+attr("name", e.Name(r.dict)),
			"FieldEntryEnd", e.Load, func(p codec.Primitive) string { return r.fieldValue(fid, p) })
	}
	r.iterError(it.Err())
	r.pop()
	r.line("FieldListEnd")
}

func (fl *FieldList) Encode(buf []byte) (int, error) {
	return encodeInto(fl, buf)
}

func (fl *FieldList) Marshal() ([]byte, error) {
	return marshalObject(fl)
}

func (fl *FieldList) Clone() (*FieldList, error) {
	o, err := cloneOf(fl)
	if err != nil {
		return nil, err
	}
	return o.(*FieldList), nil
}

func (fl *FieldList) String() string {
	return stringOf(fl)
}

func (fl *FieldList) StringWithDictionary(dict dictionary.Dictionary) string {
	return stringWithDictionaryOf(fl, dict)
}

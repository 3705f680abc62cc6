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
	"strconv"

	"rwf/pkg/codec"
	"rwf/pkg/dictionary"
)

const (
	kFilterListHasPerEntryPermData = 0x01
	kFilterListHasTotalCountHint   = 0x02

	kFilterEntryHasPermData      = 0x01
	kFilterEntryHasContainerType = 0x02
)

type FilterAction uint8

const (
	FilterActionUpdate FilterAction = 1
	FilterActionSet    FilterAction = 2
	FilterActionClear  FilterAction = 3
)

func (a FilterAction) String() string {
	switch a {
	case FilterActionUpdate:
		return "Update"
	case FilterActionSet:
		return "Set"
	case FilterActionClear:
		return "Clear"
	}
	return "Unknown FilterAction value " + strconv.Itoa(int(a))
}

// FilterEntry is keyed by a filter id. Unlike the other keyed containers each
// entry may carry its own container type.
type FilterEntry struct {
	Action   FilterAction
	FilterID uint8
	PermData []byte
	Load     Data
}

func (e *FilterEntry) LoadType() codec.DataType {
	return dataTypeOf(e.Load)
}

func (e *FilterEntry) HasPermData() bool {
	return e.PermData != nil
}

type FilterList struct {
	lifecycle
	totalCountHint *uint8
	containerType  codec.DataType
	entries        []FilterEntry
	count          int
	body           []byte
	ref            RefIterator[FilterEntry]
}

func NewFilterList() *FilterList {
	return &FilterList{}
}

func (fl *FilterList) DataType() codec.DataType {
	return codec.DataTypeFilterList
}

func DecodeFilterList(b []byte, major, minor uint8, dict dictionary.Dictionary) (*FilterList, error) {
	if err := checkVersion(major); err != nil {
		return nil, err
	}
	return decodeFilterList(b, decodeCtx{major: major, minor: minor, dict: dict})
}

func decodeFilterList(b []byte, ctx decodeCtx) (*FilterList, error) {
	fl := &FilterList{}
	r := codec.NewReader(b)
	flags := r.Uint8()
	ct, err := codec.ContainerTypeFromWire(r.Uint8())
	if r.Err() != nil {
		return nil, r.Err()
	}
	if err != nil {
		return nil, err
	}
	fl.containerType = ct
	if flags&kFilterListHasTotalCountHint != 0 {
		hint := r.Uint8()
		fl.totalCountHint = &hint
	}
	fl.count = int(r.Uint8())
	fl.body = r.Rest()
	if err = r.Err(); err != nil {
		return nil, err
	}
	fl.bind(b, ctx)
	return fl, nil
}

// ContainerType is the type declared for entries that carry no type of their own.
func (fl *FilterList) ContainerType() codec.DataType {
	if fl.containerType == codec.DataTypeUnknown {
		return codec.DataTypeNoData
	}
	return fl.containerType
}

func (fl *FilterList) TotalCountHint() (uint8, bool) {
	if fl.totalCountHint == nil {
		return 0, false
	}
	return *fl.totalCountHint, true
}

func (fl *FilterList) SetTotalCountHint(n uint8) error {
	if err := fl.mutate(); err != nil {
		return err
	}
	fl.totalCountHint = &n
	return nil
}

// Add appends an entry. Clear entries carry no load.
func (fl *FilterList) Add(filterID uint8, action FilterAction, load Data, permData []byte) error {
	if action < FilterActionUpdate || action > FilterActionClear {
		return newError(ErrorCodeInvalidArgument, "Invalid FilterAction "+strconv.Itoa(int(action)))
	}
	if action == FilterActionClear {
		load = NoData{}
	}
	if err := checkContainerLoad("FilterEntry load", load); err != nil {
		return err
	}
	if len(permData) > 0x7FFF {
		return newError(ErrorCodeInvalidArgument, "permission data longer than 32767 bytes")
	}
	if err := fl.mutate(); err != nil {
		return err
	}
	if len(fl.entries) >= 0xFF {
		return newError(ErrorCodeInvalidUsage, "FilterList is full")
	}
	if t := dataTypeOf(load); fl.ContainerType() == codec.DataTypeNoData && t != codec.DataTypeNoData {
		fl.containerType = t
	}
	fl.entries = append(fl.entries, FilterEntry{Action: action, FilterID: filterID, PermData: permData, Load: orNoData(load)})
	return nil
}

func (fl *FilterList) Clear() {
	fl.lifecycle.reset()
	fl.totalCountHint = nil
	fl.containerType = codec.DataTypeUnknown
	fl.entries = nil
	fl.count = 0
	fl.body = nil
	fl.ref.reset(nil)
}

func (fl *FilterList) mutate() error {
	if fl.state == StateWireBound {
		entries, err := collect[FilterEntry](fl.cursor(fl.dict))
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

func (fl *FilterList) Size() int {
	if fl.state == StateWireBound {
		return fl.count
	}
	return len(fl.entries)
}

func (fl *FilterList) cursor(dict dictionary.Dictionary) cursor[FilterEntry] {
	if fl.state != StateWireBound {
		return &sliceCursor[FilterEntry]{entries: fl.entries}
	}
	ctx := decodeCtx{major: fl.wire.major, minor: fl.wire.minor, dict: dict}
	listType := fl.ContainerType()
	return newWireCursor(fl.body, fl.count, ctx, func(r *codec.Reader, ctx decodeCtx, e *FilterEntry) {
		b := r.Uint8()
		flags := b >> 4
		e.Action = FilterAction(b & 0x0F)
		e.FilterID = r.Uint8()
		t := listType
		if flags&kFilterEntryHasContainerType != 0 {
			ct, err := codec.ContainerTypeFromWire(r.Uint8())
			if err != nil {
				r.Fail(err)
				return
			}
			t = ct
		}
		if flags&kFilterEntryHasPermData != 0 {
			e.PermData = r.Buffer15()
		}
		if e.Action == FilterActionClear {
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

func (fl *FilterList) Iterator() *Iterator[FilterEntry] {
	return &Iterator[FilterEntry]{c: fl.cursor(fl.dict), detach: func(e *FilterEntry) (err error) {
		e.PermData = bytes.Clone(e.PermData)
		e.Load, err = detachData(e.Load, fl.dict)
		return err
	}}
}

func (fl *FilterList) IteratorByRef() *RefIterator[FilterEntry] {
	return fl.ref.reset(fl.cursor(fl.dict))
}

func (fl *FilterList) encodeTo(w *codec.Writer) {
	if fl.state == StateWireBound {
		w.PutBytes(fl.wire.data)
		return
	}
	var flags uint8
	for i := range fl.entries {
		if fl.entries[i].PermData != nil {
			flags |= kFilterListHasPerEntryPermData
			break
		}
	}
	if fl.totalCountHint != nil {
		flags |= kFilterListHasTotalCountHint
	}
	listType := fl.ContainerType()
	ct, err := codec.ContainerTypeToWire(listType)
	if err != nil {
		w.Fail(err)
		return
	}
	w.PutUint8(flags)
	w.PutUint8(ct)
	if fl.totalCountHint != nil {
		w.PutUint8(*fl.totalCountHint)
	}
	w.PutUint8(uint8(len(fl.entries)))
	for i := range fl.entries {
		e := &fl.entries[i]
		var eflags uint8
		t := wireTypeOf(e.Load)
		if e.Action != FilterActionClear && t != listType {
			eflags |= kFilterEntryHasContainerType
		}
		if e.PermData != nil {
			eflags |= kFilterEntryHasPermData
		}
		w.PutUint8(eflags<<4 | uint8(e.Action))
		w.PutUint8(e.FilterID)
		if eflags&kFilterEntryHasContainerType != 0 {
			et, err := codec.ContainerTypeToWire(t)
			if err != nil {
				w.Fail(err)
				return
			}
			w.PutUint8(et)
		}
		if e.PermData != nil {
			w.PutBuffer15(e.PermData)
		}
		if e.Action != FilterActionClear {
			encodePayload(w, e.Load)
		}
	}
}

func (fl *FilterList) render(r *renderer) {
	head := "FilterList"
	if fl.totalCountHint != nil {
		head += attr("totalCountHint", strconv.Itoa(int(*fl.totalCountHint)))
	}
	r.line(head)
	r.push()
	it := Iterator[FilterEntry]{c: fl.cursor(r.dict)}
	for it.HasNext() {
		e := it.Next()
		if it.Err() != nil {
			break
		}
		head := "FilterEntry" + attr("action", e.Action.String()) + attr("filterId", strconv.Itoa(int(e.FilterID)))
		if e.PermData != nil {
			head += attr("permissionData", hexString(e.PermData))
		}
		r.entry(head, "FilterEntryEnd", e.Load, nil)
	}
	r.iterError(it.Err())
	r.pop()
	r.line("FilterListEnd")
}

func (fl *FilterList) Encode(buf []byte) (int, error) {
	return encodeInto(fl, buf)
}

func (fl *FilterList) Marshal() ([]byte, error) {
	return marshalObject(fl)
}

func (fl *FilterList) Clone() (*FilterList, error) {
	o, err := cloneOf(fl)
	if err != nil {
		return nil, err
	}
	return o.(*FilterList), nil
}

func (fl *FilterList) String() string {
	return stringOf(fl)
}

func (fl *FilterList) StringWithDictionary(dict dictionary.Dictionary) string {
	return stringWithDictionaryOf(fl, dict)
}

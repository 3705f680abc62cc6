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
	kVectorHasSummaryData      = 0x01
	kVectorHasPerEntryPermData = 0x02
	kVectorHasTotalCountHint   = 0x04
	kVectorSupportsSorting     = 0x08

	kVectorEntryHasPermData = 0x01
)

type VectorAction uint8

const (
	VectorActionUpdate VectorAction = 1
	VectorActionSet    VectorAction = 2
	VectorActionClear  VectorAction = 3
	VectorActionInsert VectorAction = 4
	VectorActionDelete VectorAction = 5
)

func (a VectorAction) String() string {
	switch a {
	case VectorActionUpdate:
		return "Update"
	case VectorActionSet:
		return "Set"
	case VectorActionClear:
		return "Clear"
	case VectorActionInsert:
		return "Insert"
	case VectorActionDelete:
		return "Delete"
	}
	return "Unknown VectorAction value " + strconv.Itoa(int(a))
}

func (a VectorAction) hasLoad() bool {
	return a != VectorActionDelete && a != VectorActionClear
}

type VectorEntry struct {
	Action   VectorAction
	Index    uint32
	PermData []byte
	Load     Data
}

func (e *VectorEntry) LoadType() codec.DataType {
	return dataTypeOf(e.Load)
}

func (e *VectorEntry) HasPermData() bool {
	return e.PermData != nil
}

type Vector struct {
	lifecycle
	guard          loadTypeGuard
	summary        Data
	totalCountHint *uint32
	sortable       bool
	entries        []VectorEntry
	count          int
	body           []byte
	ref            RefIterator[VectorEntry]
}

func NewVector() *Vector {
	return &Vector{}
}

func (v *Vector) DataType() codec.DataType {
	return codec.DataTypeVector
}

func DecodeVector(b []byte, major, minor uint8, dict dictionary.Dictionary) (*Vector, error) {
	if err := checkVersion(major); err != nil {
		return nil, err
	}
	return decodeVector(b, decodeCtx{major: major, minor: minor, dict: dict})
}

func decodeVector(b []byte, ctx decodeCtx) (*Vector, error) {
	v := &Vector{}
	r := codec.NewReader(b)
	flags := r.Uint8()
	ct, err := codec.ContainerTypeFromWire(r.Uint8())
	if r.Err() != nil {
		return nil, r.Err()
	}
	if err != nil {
		return nil, err
	}
	if flags&kVectorHasSummaryData != 0 {
		if v.summary, err = ctx.decode(ct, r.Buffer32()); err != nil {
			return nil, err
		}
	}
	if flags&kVectorHasTotalCountHint != 0 {
		hint := r.U32ob()
		v.totalCountHint = &hint
	}
	v.sortable = flags&kVectorSupportsSorting != 0
	v.count = int(r.Uint16())
	v.body = r.Rest()
	if err = r.Err(); err != nil {
		return nil, err
	}
	v.guard.restore(ct, v.summary != nil, v.count)
	v.bind(b, ctx)
	return v, nil
}

// ContainerType is the load type fixed by the summary or the first entry.
func (v *Vector) ContainerType() codec.DataType {
	return v.guard.declared()
}

func (v *Vector) SummaryData() (Data, bool) {
	return v.summary, v.summary != nil
}

func (v *Vector) HasSummaryData() bool {
	return v.summary != nil
}

// SetSummaryData sets the summary and fixes the entry load type to its type.
func (v *Vector) SetSummaryData(d Data) error {
	if isNoData(d) {
		return newError(ErrorCodeInvalidArgument, "Attempt to set summaryData() with NO_DATA")
	}
	if err := checkContainerLoad("Vector summaryData()", d); err != nil {
		return err
	}
	if err := v.guard.checkSummary("Vector", d.DataType()); err != nil {
		return err
	}
	if err := v.mutate(); err != nil {
		return err
	}
	v.guard.noteSummary(d.DataType())
	v.summary = d
	return nil
}

func (v *Vector) TotalCountHint() (uint32, bool) {
	if v.totalCountHint == nil {
		return 0, false
	}
	return *v.totalCountHint, true
}

func (v *Vector) SetTotalCountHint(n uint32) error {
	if err := v.mutate(); err != nil {
		return err
	}
	v.totalCountHint = &n
	return nil
}

func (v *Vector) Sortable() bool {
	return v.sortable
}

func (v *Vector) SetSortable(sortable bool) error {
	if err := v.mutate(); err != nil {
		return err
	}
	v.sortable = sortable
	return nil
}

// Add appends an entry. Delete and Clear entries carry no load.
func (v *Vector) Add(index uint32, action VectorAction, load Data, permData []byte) error {
	if action < VectorActionUpdate || action > VectorActionDelete {
		return newError(ErrorCodeInvalidArgument, "Invalid VectorAction "+strconv.Itoa(int(action)))
	}
	if !action.hasLoad() {
		load = NoData{}
	}
	if err := checkContainerLoad("VectorEntry load", load); err != nil {
		return err
	}
	if len(permData) > 0x7FFF {
		return newError(ErrorCodeInvalidArgument, "permission data longer than 32767 bytes")
	}
	if v.Size() >= 0xFFFF {
		return newError(ErrorCodeInvalidUsage, "Vector is full")
	}
	if err := v.guard.checkAdd("Vector", dataTypeOf(load)); err != nil {
		return err
	}
	if err := v.mutate(); err != nil {
		return err
	}
	v.guard.noteAdd(dataTypeOf(load))
	v.entries = append(v.entries, VectorEntry{Action: action, Index: index, PermData: permData, Load: orNoData(load)})
	return nil
}

func (v *Vector) Clear() {
	v.lifecycle.reset()
	v.guard = loadTypeGuard{}
	v.summary = nil
	v.totalCountHint = nil
	v.sortable = false
	v.entries = nil
	v.count = 0
	v.body = nil
	v.ref.reset(nil)
}

func (v *Vector) mutate() error {
	if v.state == StateWireBound {
		entries, err := collect[VectorEntry](v.cursor(v.dict))
		if err != nil {
			return err
		}
		v.entries = entries
		v.count = 0
		v.body = nil
	}
	v.touch()
	return nil
}

func (v *Vector) Size() int {
	if v.state == StateWireBound {
		return v.count
	}
	return len(v.entries)
}

func (v *Vector) cursor(dict dictionary.Dictionary) cursor[VectorEntry] {
	if v.state != StateWireBound {
		return &sliceCursor[VectorEntry]{entries: v.entries}
	}
	ctx := decodeCtx{major: v.wire.major, minor: v.wire.minor, dict: dict}
	t := v.ContainerType()
	return newWireCursor(v.body, v.count, ctx, func(r *codec.Reader, ctx decodeCtx, e *VectorEntry) {
		b := r.Uint8()
		flags := b >> 4
		e.Action = VectorAction(b & 0x0F)
		e.Index = r.U32ob()
		if flags&kVectorEntryHasPermData != 0 {
			e.PermData = r.Buffer15()
		}
		if !e.Action.hasLoad() {
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

func (v *Vector) Iterator() *Iterator[VectorEntry] {
	return &Iterator[VectorEntry]{c: v.cursor(v.dict), detach: func(e *VectorEntry) (err error) {
		e.PermData = bytes.Clone(e.PermData)
		e.Load, err = detachData(e.Load, v.dict)
		return err
	}}
}

func (v *Vector) IteratorByRef() *RefIterator[VectorEntry] {
	return v.ref.reset(v.cursor(v.dict))
}

func (v *Vector) encodeTo(w *codec.Writer) {
	if v.state == StateWireBound {
		w.PutBytes(v.wire.data)
		return
	}
	var flags uint8
	if v.summary != nil {
		flags |= kVectorHasSummaryData
	}
	for i := range v.entries {
		if v.entries[i].PermData != nil {
			flags |= kVectorHasPerEntryPermData
			break
		}
	}
	if v.totalCountHint != nil {
		flags |= kVectorHasTotalCountHint
	}
	if v.sortable {
		flags |= kVectorSupportsSorting
	}
	ct, err := codec.ContainerTypeToWire(v.ContainerType())
	if err != nil {
		w.Fail(err)
		return
	}
	w.PutUint8(flags)
	w.PutUint8(ct)
	if v.summary != nil {
		encodePayload(w, v.summary)
	}
	if v.totalCountHint != nil {
		w.PutU32ob(*v.totalCountHint)
	}
	w.PutUint16(uint16(len(v.entries)))
	for i := range v.entries {
		e := &v.entries[i]
		var eflags uint8
		if e.PermData != nil {
			eflags |= kVectorEntryHasPermData
		}
		w.PutUint8(eflags<<4 | uint8(e.Action))
		w.PutU32ob(e.Index)
		if e.PermData != nil {
			w.PutBuffer15(e.PermData)
		}
		if e.Action.hasLoad() {
			encodePayload(w, e.Load)
		}
	}
}

func (v *Vector) render(r *renderer) {
	head := "Vector" + attr("sortable", strconv.FormatBool(v.sortable))
	if v.totalCountHint != nil {
		head += attr("totalCountHint", strconv.FormatUint(uint64(*v.totalCountHint), 10))
	}
	r.line(head)
	r.push()
	if v.summary != nil {
		r.summary(v.summary)
	}
	it := Iterator[VectorEntry]{c: v.cursor(r.dict)}
	for it.HasNext() {
		e := it.Next()
		if it.Err() != nil {
			break
		}
		head := "VectorEntry" + attr("action", e.Action.String()) + attr("index", strconv.FormatUint(uint64(e.Index), 10))
		if e.PermData != nil {
			head += attr("permissionData", hexString(e.PermData))
		}
		r.entry(head, "VectorEntryEnd", e.Load, nil)
	}
	r.iterError(it.Err())
	r.pop()
	r.line("VectorEnd")
}

func (v *Vector) Encode(buf []byte) (int, error) {
	return encodeInto(v, buf)
}

func (v *Vector) Marshal() ([]byte, error) {
	return marshalObject(v)
}

func (v *Vector) Clone() (*Vector, error) {
	o, err := cloneOf(v)
	if err != nil {
		return nil, err
	}
	return o.(*Vector), nil
}

func (v *Vector) String() string {
	return stringOf(v)
}

func (v *Vector) StringWithDictionary(dict dictionary.Dictionary) string {
	return stringWithDictionaryOf(v, dict)
}

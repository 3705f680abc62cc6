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
	kSeriesHasSummaryData    = 0x01
	kSeriesHasTotalCountHint = 0x02
)

// SeriesEntry carries only a load; entries have no key and no action.
type SeriesEntry struct {
	Load Data
}

func (e *SeriesEntry) LoadType() codec.DataType {
	return dataTypeOf(e.Load)
}

type Series struct {
	lifecycle
	guard          loadTypeGuard
	summary        Data
	totalCountHint *uint32
	entries        []SeriesEntry
	count          int
	body           []byte
	ref            RefIterator[SeriesEntry]
}

func NewSeries() *Series {
	return &Series{}
}

func (s *Series) DataType() codec.DataType {
	return codec.DataTypeSeries
}

func DecodeSeries(b []byte, major, minor uint8, dict dictionary.Dictionary) (*Series, error) {
	if err := checkVersion(major); err != nil {
		return nil, err
	}
	return decodeSeries(b, decodeCtx{major: major, minor: minor, dict: dict})
}

func decodeSeries(b []byte, ctx decodeCtx) (*Series, error) {
	s := &Series{}
	r := codec.NewReader(b)
	flags := r.Uint8()
	ct, err := codec.ContainerTypeFromWire(r.Uint8())
	if r.Err() != nil {
		return nil, r.Err()
	}
	if err != nil {
		return nil, err
	}
	if flags&kSeriesHasSummaryData != 0 {
		if s.summary, err = ctx.decode(ct, r.Buffer32()); err != nil {
			return nil, err
		}
	}
	if flags&kSeriesHasTotalCountHint != 0 {
		hint := r.U32ob()
		s.totalCountHint = &hint
	}
	s.count = int(r.Uint16())
	s.body = r.Rest()
	if err = r.Err(); err != nil {
		return nil, err
	}
	s.guard.restore(ct, s.summary != nil, s.count)
	s.bind(b, ctx)
	return s, nil
}

func (s *Series) ContainerType() codec.DataType {
	return s.guard.declared()
}

func (s *Series) SummaryData() (Data, bool) {
	return s.summary, s.summary != nil
}

func (s *Series) HasSummaryData() bool {
	return s.summary != nil
}

func (s *Series) SetSummaryData(d Data) error {
	if isNoData(d) {
		return newError(ErrorCodeInvalidArgument, "Attempt to set summaryData() with NO_DATA")
	}
	if err := checkContainerLoad("Series summaryData()", d); err != nil {
		return err
	}
	if err := s.guard.checkSummary("Series", d.DataType()); err != nil {
		return err
	}
	if err := s.mutate(); err != nil {
		return err
	}
	s.guard.noteSummary(d.DataType())
	s.summary = d
	return nil
}

func (s *Series) TotalCountHint() (uint32, bool) {
	if s.totalCountHint == nil {
		return 0, false
	}
	return *s.totalCountHint, true
}

func (s *Series) SetTotalCountHint(n uint32) error {
	if err := s.mutate(); err != nil {
		return err
	}
	s.totalCountHint = &n
	return nil
}

func (s *Series) Add(load Data) error {
	if err := checkContainerLoad("SeriesEntry load", load); err != nil {
		return err
	}
	if s.Size() >= 0xFFFF {
		return newError(ErrorCodeInvalidUsage, "Series is full")
	}
	if err := s.guard.checkAdd("Series", dataTypeOf(load)); err != nil {
		return err
	}
	if err := s.mutate(); err != nil {
		return err
	}
	s.guard.noteAdd(dataTypeOf(load))
	s.entries = append(s.entries, SeriesEntry{Load: orNoData(load)})
	return nil
}

func (s *Series) Clear() {
	s.lifecycle.reset()
	s.guard = loadTypeGuard{}
	s.summary = nil
	s.totalCountHint = nil
	s.entries = nil
	s.count = 0
	s.body = nil
	s.ref.reset(nil)
}

func (s *Series) mutate() error {
	if s.state == StateWireBound {
		entries, err := collect[SeriesEntry](s.cursor(s.dict))
		if err != nil {
			return err
		}
		s.entries = entries
		s.count = 0
		s.body = nil
	}
	s.touch()
	return nil
}

func (s *Series) Size() int {
	if s.state == StateWireBound {
		return s.count
	}
	return len(s.entries)
}

func (s *Series) cursor(dict dictionary.Dictionary) cursor[SeriesEntry] {
	if s.state != StateWireBound {
		return &sliceCursor[SeriesEntry]{entries: s.entries}
	}
	ctx := decodeCtx{major: s.wire.major, minor: s.wire.minor, dict: dict}
	t := s.ContainerType()
	return newWireCursor(s.body, s.count, ctx, func(r *codec.Reader, ctx decodeCtx, e *SeriesEntry) {
		payload := r.Buffer32()
		if r.Err() != nil {
			return
		}
		e.Load = ctx.load(t, payload)
	})
}

func (s *Series) Iterator() *Iterator[SeriesEntry] {
	return &Iterator[SeriesEntry]{c: s.cursor(s.dict), detach: func(e *SeriesEntry) (err error) {
		e.Load, err = detachData(e.Load, s.dict)
		return err
	}}
}

func (s *Series) IteratorByRef() *RefIterator[SeriesEntry] {
	return s.ref.reset(s.cursor(s.dict))
}

func (s *Series) encodeTo(w *codec.Writer) {
	if s.state == StateWireBound {
		w.PutBytes(s.wire.data)
		return
	}
	var flags uint8
	if s.summary != nil {
		flags |= kSeriesHasSummaryData
	}
	if s.totalCountHint != nil {
		flags |= kSeriesHasTotalCountHint
	}
	ct, err := codec.ContainerTypeToWire(s.ContainerType())
	if err != nil {
		w.Fail(err)
		return
	}
	w.PutUint8(flags)
	w.PutUint8(ct)
	if s.summary != nil {
		encodePayload(w, s.summary)
	}
	if s.totalCountHint != nil {
		w.PutU32ob(*s.totalCountHint)
	}
	w.PutUint16(uint16(len(s.entries)))
	for i := range s.entries {
		encodePayload(w, s.entries[i].Load)
	}
}

func (s *Series) render(r *renderer) {
	head := "Series"
	if s.totalCountHint != nil {
		head += attr("totalCountHint", strconv.FormatUint(uint64(*s.totalCountHint), 10))
	}
	r.line(head)
	r.push()
	if s.summary != nil {
		r.summary(s.summary)
	}
	it := Iterator[SeriesEntry]{c: s.cursor(r.dict)}
	for it.HasNext() {
		e := it.Next()
		if it.Err() != nil {
			break
		}
		r.entry("SeriesEntry", "SeriesEntryEnd", e.Load, nil)
	}
	r.iterError(it.Err())
	r.pop()
	r.line("SeriesEnd")
}

func (s *Series) Encode(buf []byte) (int, error) {
	return encodeInto(s, buf)
}

func (s *Series) Marshal() ([]byte, error) {
	return marshalObject(s)
}

func (s *Series) Clone() (*Series, error) {
	o, err := cloneOf(s)
	if err != nil {
		return nil, err
	}
	return o.(*Series), nil
}

func (s *Series) String() string {
	return stringOf(s)
}

func (s *Series) StringWithDictionary(dict dictionary.Dictionary) string {
	return stringWithDictionaryOf(s, dict)
}

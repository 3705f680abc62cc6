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
	"errors"
	"flag"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rwf/pkg/codec"
	"rwf/pkg/dictionary"
)

func loadDict(t testing.TB) *dictionary.DataDictionary {
	t.Helper()
	d, err := dictionary.LoadFile("../dictionary/testdata/fields.toml")
	require.NoError(t, err)
	return d
}

func priceList(t testing.TB) *FieldList {
	t.Helper()
	fl := NewFieldList()
	require.NoError(t, fl.Add(22, codec.NewReal(3990, codec.RealExponentNeg2)))
	require.NoError(t, fl.Add(15, codec.Enum(840)))
	return fl
}

func rebind[T any](t testing.TB, o object, decode func([]byte, uint8, uint8, dictionary.Dictionary) (T, error), dict dictionary.Dictionary) T {
	t.Helper()
	b, err := marshalObject(o)
	require.NoError(t, err)
	v, err := decode(b, codec.MajorVersion, codec.MinorVersion, dict)
	require.NoError(t, err)
	return v
}

const kPriceListText = "FieldList\n" +
	"    FieldEntry fid=\"22\" name=\"BID\" dataType=\"Real\" value=\"39.90\"\n" +
	"    FieldEntry fid=\"15\" name=\"CURRENCY\" dataType=\"Enum\" value=\"USD\"\n" +
	"FieldListEnd\n"

func TestFieldListRoundTrip(t *testing.T) {
	dict := loadDict(t)
	fl := priceList(t)
	require.NoError(t, fl.SetInfo(1, 77))

	got := rebind(t, fl, DecodeFieldList, dict)
	assert.Equal(t, StateWireBound, got.Lifecycle())
	assert.Equal(t, 2, got.Size())
	info, ok := got.Info()
	require.True(t, ok)
	assert.Equal(t, FieldListInfo{DictionaryID: 1, FieldListNum: 77}, info)

	it := got.Iterator()
	require.True(t, it.HasNext())
	e := it.Next()
	assert.Equal(t, int16(22), e.FieldID)
	assert.Equal(t, "BID", e.Name(dict))
	assert.Equal(t, codec.NewReal(3990, codec.RealExponentNeg2), e.Load)
	e = it.Next()
	assert.Equal(t, codec.Enum(840), e.Load)
	assert.False(t, it.HasNext())
	assert.NoError(t, it.Err())

	got = rebind(t, priceList(t), DecodeFieldList, dict)
	assert.Equal(t, kPriceListText, got.String())
}

func TestFieldListUnknownField(t *testing.T) {
	dict := loadDict(t)
	fl := NewFieldList()
	require.NoError(t, fl.Add(9999, codec.UInt(5)))
	require.NoError(t, fl.Add(1, codec.UInt(7)))
	b, err := fl.Marshal()
	require.NoError(t, err)

	got, err := DecodeFieldList(b, codec.MajorVersion, codec.MinorVersion, dict)
	require.NoError(t, err)
	it := got.Iterator()
	e := it.Next()
	ed, ok := e.Load.(ErrorData)
	require.True(t, ok)
	assert.Equal(t, ErrorDataFieldIDNotFound, ed.Code)
	assert.Equal(t, []byte{5}, ed.Raw)
	assert.Equal(t, codec.UInt(7), it.Next().Load)

	// the undecodable entry survives a rewrite of the list
	require.NoError(t, got.Add(6, codec.NewReal(1, codec.RealExponent0)))
	again, err := got.Marshal()
	require.NoError(t, err)
	assert.Equal(t, b[3:], again[3:len(b)])
}

func TestElementListRoundTrip(t *testing.T) {
	dict := loadDict(t)
	el := NewElementList()
	require.NoError(t, el.SetInfo(5))
	arr := codec.NewArray(codec.DataTypeUInt, 2, codec.UInt(1), codec.UInt(300))
	state := codec.NewState(codec.StreamStateOpen, codec.DataStateOk, codec.StatusCodeNone, "All is well")
	qos := codec.QoS{Timeliness: codec.QoSTimelinessRealtime, Rate: codec.QoSRateTickByTick}
	loads := []Data{
		codec.UInt(5),
		codec.Int(-42),
		codec.Double(1.5),
		codec.Ascii("IBM"),
		codec.NewDate(2024, 1, 5),
		codec.NewTime(9, 5, 1, 2, 3, 4),
		state,
		qos,
		arr,
		priceList(t),
		NoData{},
		Opaque{1, 2, 3},
	}
	for i, d := range loads {
		require.NoError(t, el.Add("e"+string(rune('a'+i)), d))
	}

	got := rebind(t, el, DecodeElementList, dict)
	num, ok := got.ElementListNum()
	require.True(t, ok)
	assert.Equal(t, int16(5), num)
	require.Equal(t, len(loads), got.Size())

	it := got.Iterator()
	for i := 0; it.HasNext(); i++ {
		e := it.Next()
		assert.Equal(t, "e"+string(rune('a'+i)), e.Name)
		assert.Equal(t, loads[i].DataType(), e.LoadType())
		switch want := loads[i].(type) {
		case *FieldList:
			nested, ok := e.Load.(*FieldList)
			require.True(t, ok)
			assert.Equal(t, want.Size(), nested.Size())
		case NoData:
			assert.Equal(t, NoData{}, e.Load)
		default:
			assert.Equal(t, want, e.Load)
		}
	}
	assert.NoError(t, it.Err())
}

func TestEmptyFilterListRender(t *testing.T) {
	dict := loadDict(t)
	const want = "FilterList\nFilterListEnd\n"

	assert.Equal(t, want, NewFilterList().StringWithDictionary(dict))
	got := rebind(t, NewFilterList(), DecodeFilterList, dict)
	assert.Equal(t, want, got.String())
	assert.Equal(t, 0, got.Size())
	assert.False(t, got.Iterator().HasNext())
}

func TestFilterListEntryTypes(t *testing.T) {
	dict := loadDict(t)
	fl := NewFilterList()
	require.NoError(t, fl.SetTotalCountHint(3))
	el := NewElementList()
	require.NoError(t, el.Add("Name", codec.Ascii("Direct Feed")))
	require.NoError(t, fl.Add(1, FilterActionSet, el, nil))
	require.NoError(t, fl.Add(2, FilterActionUpdate, priceList(t), []byte{0x03, 0x01}))
	require.NoError(t, fl.Add(3, FilterActionClear, el, nil))
	assert.Equal(t, codec.DataTypeElementList, fl.ContainerType())

	got := rebind(t, fl, DecodeFilterList, dict)
	hint, ok := got.TotalCountHint()
	require.True(t, ok)
	assert.Equal(t, uint8(3), hint)

	var entries []FilterEntry
	it := got.Iterator()
	for it.HasNext() {
		entries = append(entries, it.Next())
	}
	require.NoError(t, it.Err())
	require.Len(t, entries, 3)
	assert.Equal(t, FilterActionSet, entries[0].Action)
	assert.Equal(t, codec.DataTypeElementList, entries[0].LoadType())
	assert.Equal(t, uint8(2), entries[1].FilterID)
	assert.Equal(t, codec.DataTypeFieldList, entries[1].LoadType())
	assert.Equal(t, []byte{0x03, 0x01}, entries[1].PermData)
	assert.Equal(t, FilterActionClear, entries[2].Action)
	assert.Equal(t, codec.DataTypeNoData, entries[2].LoadType())
	assert.False(t, entries[2].HasPermData())
}

func TestVectorContainerTypeConflict(t *testing.T) {
	v := NewVector()
	require.NoError(t, v.SetSummaryData(NewFieldList()))
	err := v.Add(1, VectorActionSet, NewElementList(), nil)
	require.Error(t, err)
	assert.True(t, IsErrorCode(err, ErrorCodeContainerTypeConflict))
	assert.Equal(t, "Attempt to add entry of ELEMENT_LIST while Vector entry load type is set to FIELD_LIST with summaryData() method", err.Error())
	assert.NoError(t, v.Add(2, VectorActionDelete, nil, nil))
	assert.NoError(t, v.Add(3, VectorActionSet, NewFieldList(), nil))

	v = NewVector()
	require.NoError(t, v.Add(1, VectorActionSet, NewFieldList(), nil))
	err = v.Add(2, VectorActionSet, NewMap(), nil)
	assert.Equal(t, "Attempt to add entry of MAP while Vector entry load type is set to FIELD_LIST with add() method", err.Error())
	err = v.SetSummaryData(NewElementList())
	assert.Equal(t, "Attempt to set summaryData() with ELEMENT_LIST while Vector entry load type is set to FIELD_LIST with add() method", err.Error())
	assert.Equal(t, 1, v.Size())

	err = NewSeries().SetSummaryData(codec.UInt(1))
	assert.True(t, IsErrorCode(err, ErrorCodeInvalidArgument))
}

func TestVectorRoundTrip(t *testing.T) {
	dict := loadDict(t)
	v := NewVector()
	require.NoError(t, v.SetSummaryData(priceList(t)))
	require.NoError(t, v.SetTotalCountHint(10))
	require.NoError(t, v.SetSortable(true))
	require.NoError(t, v.Add(0, VectorActionInsert, priceList(t), []byte{0xAA}))
	require.NoError(t, v.Add(7, VectorActionDelete, priceList(t), nil))
	require.NoError(t, v.Add(1<<20, VectorActionUpdate, priceList(t), nil))

	got := rebind(t, v, DecodeVector, dict)
	assert.True(t, got.Sortable())
	hint, ok := got.TotalCountHint()
	assert.True(t, ok)
	assert.Equal(t, uint32(10), hint)
	summary, ok := got.SummaryData()
	require.True(t, ok)
	assert.Equal(t, codec.DataTypeFieldList, summary.DataType())
	assert.Equal(t, codec.DataTypeFieldList, got.ContainerType())

	it := got.Iterator()
	e := it.Next()
	assert.Equal(t, VectorActionInsert, e.Action)
	assert.Equal(t, uint32(0), e.Index)
	assert.Equal(t, []byte{0xAA}, e.PermData)
	assert.Equal(t, kPriceListText, e.Load.(*FieldList).String())
	e = it.Next()
	assert.Equal(t, VectorActionDelete, e.Action)
	assert.Equal(t, uint32(7), e.Index)
	assert.Equal(t, NoData{}, e.Load)
	e = it.Next()
	assert.Equal(t, uint32(1<<20), e.Index)
	assert.False(t, it.HasNext())

	// the decoded type guard still applies
	err := got.Add(9, VectorActionSet, NewElementList(), nil)
	assert.True(t, IsErrorCode(err, ErrorCodeContainerTypeConflict))
}

func TestSeriesRoundTrip(t *testing.T) {
	dict := loadDict(t)
	s := NewSeries()
	for i := 0; i < 3; i++ {
		el := NewElementList()
		require.NoError(t, el.Add("Count", codec.UInt(uint64(i))))
		require.NoError(t, s.Add(el))
	}
	require.NoError(t, s.SetTotalCountHint(3))

	got := rebind(t, s, DecodeSeries, dict)
	assert.Equal(t, 3, got.Size())
	assert.False(t, got.HasSummaryData())
	i := 0
	for it := got.Iterator(); it.HasNext(); i++ {
		el, ok := it.Next().Load.(*ElementList)
		require.True(t, ok)
		e := el.Iterator().Next()
		assert.Equal(t, codec.UInt(uint64(i)), e.Load)
	}
	assert.Equal(t, 3, i)
}

func TestMapRoundTrip(t *testing.T) {
	dict := loadDict(t)
	m := NewMap()
	require.NoError(t, m.SetKeyFieldID(3386))
	require.NoError(t, m.Add(codec.Ascii("IBM.N"), MapActionAdd, priceList(t), nil))
	require.NoError(t, m.Add(codec.Ascii("MSFT.O"), MapActionUpdate, priceList(t), []byte{1}))
	require.NoError(t, m.Add(codec.Ascii("GOOG.O"), MapActionDelete, nil, nil))

	err := m.Add(codec.UInt(1), MapActionAdd, nil, nil)
	assert.True(t, IsErrorCode(err, ErrorCodeInvalidArgument))
	assert.Equal(t, codec.DataTypeAscii, m.KeyType())

	got := rebind(t, m, DecodeMap, dict)
	fid, ok := got.KeyFieldID()
	require.True(t, ok)
	assert.Equal(t, int16(3386), fid)
	assert.Equal(t, codec.DataTypeAscii, got.KeyType())

	var keys []string
	it := got.Iterator()
	for it.HasNext() {
		e := it.Next()
		keys = append(keys, e.Key.String())
		if e.Action == MapActionDelete {
			assert.Equal(t, NoData{}, e.Load)
		} else {
			assert.Equal(t, codec.DataTypeFieldList, e.LoadType())
		}
	}
	assert.Equal(t, []string{"IBM.N", "MSFT.O", "GOOG.O"}, keys)
	assert.True(t, strings.Contains(got.String(), "MapEntry action=\"Add\" key dataType=\"Ascii\" value=\"IBM.N\" dataType=\"FieldList\""))
}

func TestIteratorStrategiesAgree(t *testing.T) {
	dict := loadDict(t)
	m := NewMap()
	for _, k := range []string{"A", "B", "C", "D"} {
		require.NoError(t, m.Add(codec.Ascii(k), MapActionAdd, priceList(t), []byte(k)))
	}
	got := rebind(t, m, DecodeMap, dict)

	var copies []MapEntry
	for it := got.Iterator(); it.HasNext(); {
		copies = append(copies, it.Next())
	}
	ref := got.IteratorByRef()
	assert.Same(t, ref, got.IteratorByRef())
	n := 0
	for ; ref.HasNext(); n++ {
		e := ref.Next()
		assert.Equal(t, copies[n].Action, e.Action)
		assert.Equal(t, copies[n].Key, e.Key)
		assert.Equal(t, copies[n].PermData, e.PermData)
		assert.Equal(t, copies[n].Load.(*FieldList).String(), e.Load.(*FieldList).String())
	}
	assert.NoError(t, ref.Err())
	assert.Equal(t, got.Size(), n)
	assert.Len(t, copies, got.Size())
	// copies outlive the traversal
	assert.Equal(t, codec.Ascii("A"), copies[0].Key)

	ref.Next()
	assert.True(t, IsErrorCode(ref.Err(), ErrorCodeInvalidUsage))
}

func loadText(d Data, dict dictionary.Dictionary) string {
	if o, ok := d.(object); ok {
		return renderString(o, dict)
	}
	return fmt.Sprintf("%T %v", d, d)
}

func assertIteratorsAgree[E any](t *testing.T, it *Iterator[E], ref *RefIterator[E], size int, text func(*E) string) {
	t.Helper()
	var copies []string
	for it.HasNext() {
		e := it.Next()
		copies = append(copies, text(&e))
	}
	require.NoError(t, it.Err())
	var refs []string
	for ref.HasNext() {
		refs = append(refs, text(ref.Next()))
	}
	require.NoError(t, ref.Err())
	assert.Len(t, copies, size)
	assert.Equal(t, copies, refs)
}

func TestIteratorsAgreePerContainer(t *testing.T) {
	dict := loadDict(t)

	fl := NewFieldList()
	require.NoError(t, fl.Add(22, codec.NewReal(3990, codec.RealExponentNeg2)))
	require.NoError(t, fl.Add(7002, Opaque("abc")))
	require.NoError(t, fl.Add(-5, codec.UInt(1)))
	gotFL := rebind(t, fl, DecodeFieldList, dict)
	assertIteratorsAgree(t, gotFL.Iterator(), gotFL.IteratorByRef(), 3, func(e *FieldEntry) string {
		return fmt.Sprint(e.FieldID, " ", loadText(e.Load, dict))
	})

	el := NewElementList()
	require.NoError(t, el.Add("Count", codec.UInt(2)))
	require.NoError(t, el.Add("Prices", priceList(t)))
	require.NoError(t, el.Add("Empty", nil))
	gotEL := rebind(t, el, DecodeElementList, dict)
	assertIteratorsAgree(t, gotEL.Iterator(), gotEL.IteratorByRef(), 3, func(e *ElementEntry) string {
		return e.Name + " " + loadText(e.Load, dict)
	})

	filters := NewFilterList()
	require.NoError(t, filters.Add(1, FilterActionSet, priceList(t), []byte{1}))
	require.NoError(t, filters.Add(2, FilterActionClear, nil, nil))
	gotFilters := rebind(t, filters, DecodeFilterList, dict)
	assertIteratorsAgree(t, gotFilters.Iterator(), gotFilters.IteratorByRef(), 2, func(e *FilterEntry) string {
		return fmt.Sprint(e.Action, e.FilterID, e.PermData, " ", loadText(e.Load, dict))
	})

	v := NewVector()
	require.NoError(t, v.Add(1, VectorActionSet, priceList(t), []byte{2}))
	require.NoError(t, v.Add(5, VectorActionClear, nil, nil))
	gotV := rebind(t, v, DecodeVector, dict)
	assertIteratorsAgree(t, gotV.Iterator(), gotV.IteratorByRef(), 2, func(e *VectorEntry) string {
		return fmt.Sprint(e.Action, e.Index, e.PermData, " ", loadText(e.Load, dict))
	})

	s := NewSeries()
	require.NoError(t, s.Add(priceList(t)))
	require.NoError(t, s.Add(priceList(t)))
	gotS := rebind(t, s, DecodeSeries, dict)
	assertIteratorsAgree(t, gotS.Iterator(), gotS.IteratorByRef(), 2, func(e *SeriesEntry) string {
		return loadText(e.Load, dict)
	})

	// populated containers agree too
	assertIteratorsAgree(t, v.Iterator(), v.IteratorByRef(), 2, func(e *VectorEntry) string {
		return fmt.Sprint(e.Action, e.Index, e.PermData, " ", e.LoadType())
	})
}

func TestIteratorCopiesAreIndependent(t *testing.T) {
	dict := loadDict(t)
	build := func() *Vector {
		v := NewVector()
		require.NoError(t, v.Add(1, VectorActionSet, priceList(t), []byte{1, 2}))
		require.NoError(t, v.Add(2, VectorActionSet, priceList(t), nil))
		return v
	}
	populated := build()
	want, err := build().Marshal()
	require.NoError(t, err)

	for name, v := range map[string]*Vector{
		"populated": populated,
		"wirebound": rebind(t, build(), DecodeVector, dict),
	} {
		t.Run(name, func(t *testing.T) {
			e := v.Iterator().Next()
			e.PermData[0] = 9
			require.NoError(t, e.Load.(*FieldList).Add(21, codec.NewReal(1, codec.RealExponent0)))

			again := v.Iterator().Next()
			assert.Equal(t, []byte{1, 2}, again.PermData)
			assert.Equal(t, 2, again.Load.(*FieldList).Size())
			got, err := v.Marshal()
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	m := NewMap()
	require.NoError(t, m.Add(codec.Buffer("key"), MapActionAdd, priceList(t), nil))
	me := m.Iterator().Next()
	me.Key.(codec.Buffer)[0] = 'K'
	assert.Equal(t, codec.Buffer("key"), m.Iterator().Next().Key)

	el := NewElementList()
	require.NoError(t, el.Add("Blob", Opaque("blob")))
	ee := el.Iterator().Next()
	ee.Load.(Opaque)[0] = 'B'
	assert.Equal(t, Opaque("blob"), el.Iterator().Next().Load)
}

func TestRejectedAddKeepsWireBound(t *testing.T) {
	dict := loadDict(t)

	v := NewVector()
	require.NoError(t, v.SetSummaryData(priceList(t)))
	require.NoError(t, v.Add(1, VectorActionSet, priceList(t), nil))
	gotV := rebind(t, v, DecodeVector, dict)
	err := gotV.Add(2, VectorActionSet, NewElementList(), nil)
	assert.True(t, IsErrorCode(err, ErrorCodeContainerTypeConflict))
	err = gotV.SetSummaryData(NewElementList())
	assert.True(t, IsErrorCode(err, ErrorCodeContainerTypeConflict))
	assert.Equal(t, StateWireBound, gotV.Lifecycle())
	assert.NotEqual(t, kJustEncodedText, gotV.String())

	s := NewSeries()
	require.NoError(t, s.Add(priceList(t)))
	gotS := rebind(t, s, DecodeSeries, dict)
	err = gotS.Add(NewMap())
	assert.True(t, IsErrorCode(err, ErrorCodeContainerTypeConflict))
	err = gotS.SetSummaryData(NewElementList())
	assert.True(t, IsErrorCode(err, ErrorCodeContainerTypeConflict))
	assert.Equal(t, StateWireBound, gotS.Lifecycle())

	m := NewMap()
	require.NoError(t, m.Add(codec.Ascii("IBM.N"), MapActionAdd, priceList(t), nil))
	gotM := rebind(t, m, DecodeMap, dict)
	err = gotM.Add(codec.UInt(1), MapActionAdd, priceList(t), nil)
	assert.True(t, IsErrorCode(err, ErrorCodeInvalidArgument))
	err = gotM.Add(codec.Ascii("MSFT.O"), MapActionAdd, NewElementList(), nil)
	assert.True(t, IsErrorCode(err, ErrorCodeContainerTypeConflict))
	err = gotM.SetSummaryData(NewSeries())
	assert.True(t, IsErrorCode(err, ErrorCodeContainerTypeConflict))
	assert.Equal(t, StateWireBound, gotM.Lifecycle())
	assert.Equal(t, 1, gotM.Size())

	// an accepted change still materializes the entries
	require.NoError(t, gotM.Add(codec.Ascii("MSFT.O"), MapActionAdd, priceList(t), nil))
	assert.Equal(t, StatePopulated, gotM.Lifecycle())
	assert.Equal(t, 2, gotM.Size())
}

func TestMutateWireBound(t *testing.T) {
	dict := loadDict(t)
	got := rebind(t, priceList(t), DecodeFieldList, dict)
	require.NoError(t, got.Add(21, codec.NewReal(4000, codec.RealExponentNeg2)))
	assert.Equal(t, StatePopulated, got.Lifecycle())
	assert.Equal(t, 3, got.Size())
	assert.Equal(t, kJustEncodedText, got.String())
	assert.Contains(t, got.StringWithDictionary(dict), "name=\"HST_CLOSE\"")

	got.Clear()
	assert.Equal(t, StateBlank, got.Lifecycle())
	assert.Equal(t, 0, got.Size())
}

func TestEncodeBufferTooSmall(t *testing.T) {
	fl := priceList(t)
	n, err := fl.Encode(make([]byte, 3))
	assert.Equal(t, 0, n)
	assert.True(t, errors.Is(err, codec.ErrBufferTooSmall))
	_, err = fl.Clone()
	assert.True(t, IsErrorCode(err, ErrorCodeCloneOfEmptyBuffer))

	buf := make([]byte, 64)
	n, err = fl.Encode(buf)
	require.NoError(t, err)
	b, err := fl.Marshal()
	require.NoError(t, err)
	assert.Equal(t, b, buf[:n])
}

func TestEncodeExactBuffer(t *testing.T) {
	big := NewFieldList()
	require.NoError(t, big.Add(7002, Opaque(bytes.Repeat([]byte{0x33}, 300))))
	require.NoError(t, big.Add(22, codec.NewReal(3990, codec.RealExponentNeg2)))

	msg := NewUpdateMsg()
	require.NoError(t, msg.SetName("IBM.N"))
	require.NoError(t, msg.SetPayload(big))

	for _, o := range []interface {
		Marshal() ([]byte, error)
		Encode([]byte) (int, error)
	}{priceList(t), big, msg} {
		want, err := o.Marshal()
		require.NoError(t, err)

		buf := make([]byte, len(want))
		n, err := o.Encode(buf)
		require.NoError(t, err)
		assert.Equal(t, want, buf[:n])

		_, err = o.Encode(make([]byte, len(want)-1))
		assert.True(t, errors.Is(err, codec.ErrBufferTooSmall))
	}
}

func TestMarshalGrowth(t *testing.T) {
	saved := Conf
	defer func() { Conf = saved }()
	Conf.InitialBufferSize = 16
	Conf.MaxBufferSize = 1 << 20

	fl := NewFieldList()
	for i := 0; i < 500; i++ {
		require.NoError(t, fl.Add(int16(i), codec.UInt(uint64(i))))
	}
	b, err := fl.Marshal()
	require.NoError(t, err)
	assert.Greater(t, len(b), 1000)

	Conf.MaxBufferSize = 64
	_, err = fl.Marshal()
	assert.True(t, errors.Is(err, codec.ErrBufferTooSmall))
}

func TestDecodeErrors(t *testing.T) {
	b, err := priceList(t).Marshal()
	require.NoError(t, err)

	_, err = DecodeFieldList(b, codec.MajorVersion+1, 0, nil)
	assert.True(t, errors.Is(err, codec.ErrUnsupportedVersion))

	_, err = DecodeVector([]byte{0x00, 0x7F}, codec.MajorVersion, codec.MinorVersion, nil)
	assert.True(t, errors.Is(err, codec.ErrUnsupportedDataType))

	// an entry count larger than the body stops the iterator with an error
	got, err := DecodeFieldList(b[:len(b)-2], codec.MajorVersion, codec.MinorVersion, loadDict(t))
	require.NoError(t, err)
	it := got.Iterator()
	for it.HasNext() {
		it.Next()
	}
	assert.Error(t, it.Err())
	assert.Contains(t, got.String(), "Error reason=")
}

func TestUndecodableLoadsKeptAsErrorData(t *testing.T) {
	require.NoError(t, flag.Set("v", "2"))
	defer flag.Set("v", "0")

	dict := loadDict(t)
	fl := NewFieldList()
	require.NoError(t, fl.Add(16, ErrorData{Type: codec.DataTypeDate, Raw: []byte{1, 2}}))
	require.NoError(t, fl.Add(-5, codec.UInt(1)))
	got := rebind(t, fl, DecodeFieldList, dict)

	it := got.Iterator()
	bad := it.Next().Load.(ErrorData)
	assert.Equal(t, ErrorDataIncompleteData, bad.Code)
	assert.Equal(t, codec.DataTypeDate, bad.Type)
	assert.Equal(t, []byte{1, 2}, bad.Raw)
	unknown := it.Next().Load.(ErrorData)
	assert.Equal(t, ErrorDataFieldIDNotFound, unknown.Code)
	require.NoError(t, it.Err())

	// undecodable loads re-encode unchanged
	b, err := got.Marshal()
	require.NoError(t, err)
	want, err := fl.Marshal()
	require.NoError(t, err)
	assert.Equal(t, want, b)
}

func TestContainerClone(t *testing.T) {
	dict := loadDict(t)
	src := rebind(t, priceList(t), DecodeFieldList, dict)
	c, err := src.Clone()
	require.NoError(t, err)
	assert.Equal(t, StateWireBound, c.Lifecycle())
	assert.Equal(t, src.String(), c.String())

	require.NoError(t, c.Add(21, codec.NewReal(1, codec.RealExponent0)))
	assert.Equal(t, 2, src.Size())
	assert.Equal(t, 3, c.Size())
}

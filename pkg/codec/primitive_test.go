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

package codec

import (
	"bytes"
	"errors"
	"math"
	"reflect"
	"testing"
)

func encodeContent(t *testing.T, p Primitive) []byte {
	t.Helper()
	w := NewWriter(make([]byte, 256))
	EncodePrimitive(w, p)
	if w.Err() != nil {
		t.Fatalf("encode %s: %s", p.DataType(), w.Err())
	}
	return append([]byte(nil), w.Bytes()...)
}

func TestPrimitiveRoundTrip(t *testing.T) {
	values := []Primitive{
		Int(0),
		Int(-1),
		Int(127),
		Int(128),
		Int(-129),
		Int(math.MinInt64),
		UInt(255),
		UInt(256),
		UInt(math.MaxUint64),
		Float(1.5),
		Double(-2.25),
		Enum(5),
		Enum(0x1234),
		NewReal(12345, RealExponentNeg2),
		NewReal(-7, RealDivisor4),
		NewReal(3, RealExponentPos2),
		Real{Hint: RealInfinity},
		Real{Hint: RealNotANumber},
		NewDate(2024, 2, 29),
		NewTime(9, 30, 0, 0, 0, 0),
		NewTime(9, 30, 15, 250, 0, 0),
		NewTime(23, 59, 59, 999, 999, 999),
		DateTime{Date: NewDate(1999, 12, 31), Time: NewTime(1, 2, 3, 0, 7, 0)},
		QoS{Timeliness: QoSTimelinessRealtime, Rate: QoSRateTickByTick, Dynamic: true},
		QoS{Timeliness: QoSTimelinessDelayed, Rate: QoSRateTimeConflated, TimeInfo: 15, RateInfo: 500},
		NewState(StreamStateOpen, DataStateOk, StatusCodeNone, "All is well"),
		NewState(StreamStateClosed, DataStateSuspect, StatusCodeNotFound, ""),
		Buffer{0x00, 0x01, 0xFF},
		Ascii("IBM.N"),
		Utf8("déjà vu"),
		Rmtes("rmtes"),
		NewArray(DataTypeInt, 2, Int(1), Int(-2), Int(300)),
		NewArray(DataTypeAscii, 0, Ascii("A"), Ascii("BC"), Blank{Type: DataTypeAscii}),
		NewArray(DataTypeReal, 0, NewReal(1, RealExponent0), NewReal(25, RealExponentNeg1)),
	}
	for _, v := range values {
		b := encodeContent(t, v)
		got, err := DecodePrimitive(v.DataType(), b)
		if err != nil {
			t.Fatalf("decode %s %s: %s", v.DataType(), v, err)
		}
		if !reflect.DeepEqual(got, v) {
			t.Errorf("%s: expected %#v, got %#v", v.DataType(), v, got)
		}
	}
}

func TestMinimalWidth(t *testing.T) {
	tests := []struct {
		p      Primitive
		expect []byte
	}{
		{Int(0), []byte{0x00}},
		{Int(-1), []byte{0xFF}},
		{Int(128), []byte{0x00, 0x80}},
		{UInt(256), []byte{0x01, 0x00}},
		{NewReal(12345, RealExponentNeg2), []byte{0x0C, 0x30, 0x39}},
		{Real{Hint: RealNegInfinity}, []byte{0x22}},
		{NewTime(9, 30, 0, 0, 0, 0), []byte{0x09, 0x1E}},
		{NewState(StreamStateOpen, DataStateOk, StatusCodeNone, "ok"), []byte{0x09, 0x00, 0x02, 'o', 'k'}},
	}
	for _, tc := range tests {
		if b := encodeContent(t, tc.p); !bytes.Equal(b, tc.expect) {
			t.Errorf("%s %s: expected % X, got % X", tc.p.DataType(), tc.p, tc.expect, b)
		}
	}
}

func TestBlankDecode(t *testing.T) {
	for _, dt := range []DataType{DataTypeInt, DataTypeReal, DataTypeDate, DataTypeAscii, DataTypeState} {
		p, err := DecodePrimitive(dt, nil)
		if err != nil {
			t.Fatal(err)
		}
		if !IsBlank(p) || p.DataType() != dt || p.String() != kBlankString {
			t.Errorf("expected blank %s, got %#v", dt, p)
		}
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		dt     DataType
		b      []byte
		target error
	}{
		{DataTypeReal, []byte{31, 0x01}, ErrInvalidRealHint},
		{DataTypeReal, []byte{byte(RealInfinity), 0x01}, ErrInvalidData},
		{DataTypeFloat, []byte{1, 2, 3}, ErrInvalidData},
		{DataTypeInt, make([]byte, 9), ErrInvalidData},
		{DataTypeDate, []byte{32, 1, 0, 1}, ErrValueOutOfRange},
		{DataTypeTime, []byte{1, 2, 3, 4}, ErrInvalidData},
		{DataTypeTime, []byte{24, 0}, ErrValueOutOfRange},
		{DataTypeState, []byte{0x09, 0x00, 0x05, 'a'}, ErrInvalidData},
		{DataTypeArray, []byte{byte(DataTypeInt), 3, 0, 1, 0, 0, 0}, ErrInvalidData},
		{DataTypeFieldList, []byte{0}, ErrUnsupportedDataType},
	}
	for _, tc := range tests {
		_, err := DecodePrimitive(tc.dt, tc.b)
		if !errors.Is(err, tc.target) {
			t.Errorf("%s % X: expected %v, got %v", tc.dt, tc.b, tc.target, err)
		}
	}
}

func TestEncodeInvalid(t *testing.T) {
	for _, p := range []Primitive{
		NewReal(1, RealHint(40)),
		NewTime(10, 60, 0, 0, 0, 0),
		NewArray(DataTypeInt, 1, Int(300)),
		NewArray(DataTypeInt, 0, UInt(1)),
		NewArray(DataTypeAscii, 3, Ascii("abc")),
	} {
		w := NewWriter(make([]byte, 64))
		EncodePrimitive(w, p)
		if w.Err() == nil {
			t.Errorf("expected error encoding %#v", p)
		}
	}
}

func TestPrimitiveString(t *testing.T) {
	tests := []struct {
		p      Primitive
		expect string
	}{
		{NewReal(12345, RealExponentNeg2), "123.45"},
		{NewReal(-5, RealExponentNeg3), "-0.005"},
		{NewReal(3, RealExponentPos2), "300"},
		{NewReal(3, RealDivisor4), "0.75"},
		{Real{Hint: RealNotANumber}, "NaN"},
		{NewDate(2024, 1, 5), "05 JAN 2024"},
		{NewTime(9, 5, 1, 2, 3, 4), "09:05:01:002:003:004"},
		{QoS{Timeliness: QoSTimelinessRealtime, Rate: QoSRateTickByTick}, "RealTime/TickByTick"},
		{NewState(StreamStateOpen, DataStateOk, StatusCodeNone, "All is well"), "Open / Ok / None / 'All is well'"},
		{Buffer{0xAB, 0x01}, "AB01"},
	}
	for _, tc := range tests {
		if s := tc.p.String(); s != tc.expect {
			t.Errorf("expected %q, got %q", tc.expect, s)
		}
	}
}

func TestRealFromFloat(t *testing.T) {
	if r := RealFromFloat(123.45, RealExponentNeg2); r != NewReal(12345, RealExponentNeg2) {
		t.Errorf("got %#v", r)
	}
	if r := RealFromFloat(math.Inf(-1), RealExponent0); r.Hint != RealNegInfinity {
		t.Errorf("got %#v", r)
	}
	if f := NewReal(-7, RealDivisor4).Float64(); f != -1.75 {
		t.Errorf("got %v", f)
	}
}

func TestContainerTypeWire(t *testing.T) {
	b, err := ContainerTypeToWire(DataTypeFieldList)
	if err != nil || b != 4 {
		t.Fatalf("FieldList wire %d %v", b, err)
	}
	dt, err := ContainerTypeFromWire(b)
	if err != nil || dt != DataTypeFieldList {
		t.Fatalf("FieldList from wire %s %v", dt, err)
	}
	if _, err = ContainerTypeToWire(DataTypeInt); err == nil {
		t.Error("Int must not be accepted as a container type")
	}
}

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
	"fmt"
	"math"
	"strconv"
)

// Primitive is the closed set of scalar values the codec knows how to put on the
// wire. Only types declared in this package implement it.
type Primitive interface {
	DataType() DataType
	String() string
	encode(w *Writer)
}

type (
	Int    int64
	UInt   uint64
	Float  float32
	Double float64
	Enum   uint16
	Buffer []byte
	Ascii  string
	Utf8   string
	Rmtes  []byte

	// Blank is a primitive of the given type carrying no value. It is what
	// zero-length content decodes to.
	Blank struct {
		Type DataType
	}
)

const kBlankString = "(blank data)"

func (v Int) DataType() DataType    { return DataTypeInt }
func (v UInt) DataType() DataType   { return DataTypeUInt }
func (v Float) DataType() DataType  { return DataTypeFloat }
func (v Double) DataType() DataType { return DataTypeDouble }
func (v Enum) DataType() DataType   { return DataTypeEnum }
func (v Buffer) DataType() DataType { return DataTypeBuffer }
func (v Ascii) DataType() DataType  { return DataTypeAscii }
func (v Utf8) DataType() DataType   { return DataTypeUtf8 }
func (v Rmtes) DataType() DataType  { return DataTypeRmtes }
func (v Blank) DataType() DataType  { return v.Type }

func (v Int) String() string    { return strconv.FormatInt(int64(v), 10) }
func (v UInt) String() string   { return strconv.FormatUint(uint64(v), 10) }
func (v Float) String() string  { return strconv.FormatFloat(float64(v), 'g', -1, 32) }
func (v Double) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (v Enum) String() string   { return strconv.FormatUint(uint64(v), 10) }
func (v Buffer) String() string { return fmt.Sprintf("%X", []byte(v)) }
func (v Ascii) String() string  { return string(v) }
func (v Utf8) String() string   { return string(v) }
func (v Rmtes) String() string  { return string(v) }
func (v Blank) String() string  { return kBlankString }

func (v Int) encode(w *Writer) {
	putUintN(w, uint64(v), intSize(int64(v)))
}

func (v UInt) encode(w *Writer) {
	putUintN(w, uint64(v), uintSize(uint64(v)))
}

func (v Float) encode(w *Writer) {
	w.PutUint32(math.Float32bits(float32(v)))
}

func (v Double) encode(w *Writer) {
	w.PutUint64(math.Float64bits(float64(v)))
}

func (v Enum) encode(w *Writer) {
	putUintN(w, uint64(v), uintSize(uint64(v)))
}

func (v Buffer) encode(w *Writer) { w.PutBytes(v) }
func (v Ascii) encode(w *Writer)  { w.PutString(string(v)) }
func (v Utf8) encode(w *Writer)   { w.PutString(string(v)) }
func (v Rmtes) encode(w *Writer)  { w.PutBytes(v) }
func (v Blank) encode(w *Writer) {}

// EncodePrimitive writes the content of p. The caller owns the length prefix.
func EncodePrimitive(w *Writer, p Primitive) {
	if p == nil {
		w.Fail(errorf(ErrUnsupportedDataType, "nil primitive"))
		return
	}
	p.encode(w)
}

// DecodePrimitive decodes content b as a value of type t. Buffer-like values alias b.
func DecodePrimitive(t DataType, b []byte) (Primitive, error) {
	if !t.IsPrimitive() {
		return nil, errorf(ErrUnsupportedDataType, t.String()+" is not a primitive type")
	}
	if len(b) == 0 {
		return Blank{Type: t}, nil
	}
	switch t {
	case DataTypeInt:
		if len(b) > 8 {
			return nil, errorf(ErrInvalidData, "Int length "+strconv.Itoa(len(b)))
		}
		return Int(getInt(b)), nil
	case DataTypeUInt:
		if len(b) > 8 {
			return nil, errorf(ErrInvalidData, "UInt length "+strconv.Itoa(len(b)))
		}
		return UInt(getUint(b)), nil
	case DataTypeFloat:
		if len(b) != 4 {
			return nil, errorf(ErrInvalidData, "Float length "+strconv.Itoa(len(b)))
		}
		return Float(math.Float32frombits(EncByteOrder.Uint32(b))), nil
	case DataTypeDouble:
		if len(b) != 8 {
			return nil, errorf(ErrInvalidData, "Double length "+strconv.Itoa(len(b)))
		}
		return Double(math.Float64frombits(EncByteOrder.Uint64(b))), nil
	case DataTypeEnum:
		if len(b) > 2 {
			return nil, errorf(ErrInvalidData, "Enum length "+strconv.Itoa(len(b)))
		}
		return Enum(getUint(b)), nil
	case DataTypeReal:
		return decodeReal(b)
	case DataTypeDate:
		return decodeDate(b)
	case DataTypeTime:
		return decodeTime(b)
	case DataTypeDateTime:
		return decodeDateTime(b)
	case DataTypeQoS:
		return decodeQoS(b)
	case DataTypeState:
		return decodeState(b)
	case DataTypeArray:
		return decodeArray(b)
	case DataTypeBuffer:
		return Buffer(b), nil
	case DataTypeAscii:
		return Ascii(b), nil
	case DataTypeUtf8:
		return Utf8(b), nil
	case DataTypeRmtes:
		return Rmtes(b), nil
	}
	return nil, errorf(ErrUnsupportedDataType, t.String())
}

// IsBlank reports whether p carries no value.
func IsBlank(p Primitive) bool {
	_, ok := p.(Blank)
	return ok
}

func uintSize(v uint64) int {
	n := 1
	for v > 0xFF {
		v >>= 8
		n++
	}
	return n
}

func intSize(v int64) int {
	for n := 1; n < 8; n++ {
		bits := uint(8*n - 1)
		if v >= -(int64(1)<<bits) && v < int64(1)<<bits {
			return n
		}
	}
	return 8
}

func putUintN(w *Writer, v uint64, n int) {
	if !w.ensure(n) {
		return
	}
	for i := n - 1; i >= 0; i-- {
		w.buf[w.off] = uint8(v >> (8 * uint(i)))
		w.off++
	}
}

func getUint(b []byte) (v uint64) {
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return
}

func getInt(b []byte) int64 {
	v := getUint(b)
	shift := uint(64 - 8*len(b))
	return int64(v<<shift) >> shift
}

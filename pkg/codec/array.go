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
	"strconv"
	"strings"
)

// Array is a homogeneous list of primitives. ItemWidth zero means each item is
// prefixed with its own length, otherwise every item occupies exactly ItemWidth
// bytes.
type Array struct {
	ItemType  DataType
	ItemWidth uint8
	Items     []Primitive
}

func NewArray(itemType DataType, itemWidth uint8, items ...Primitive) Array {
	return Array{ItemType: itemType, ItemWidth: itemWidth, Items: items}
}

func (v Array) DataType() DataType { return DataTypeArray }

func (v Array) String() string {
	var sb strings.Builder
	sb.WriteString("OmmArray with entries of dataType=\"")
	sb.WriteString(v.ItemType.String())
	sb.WriteString("\" [")
	for i, item := range v.Items {
		if i != 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(item.String())
	}
	sb.WriteString("]")
	return sb.String()
}

// validFixedWidth reports whether items of type t may be packed at width.
func validFixedWidth(t DataType, width uint8) bool {
	switch t {
	case DataTypeInt, DataTypeUInt:
		return width == 1 || width == 2 || width == 4 || width == 8
	case DataTypeEnum:
		return width == 1 || width == 2
	case DataTypeFloat:
		return width == 4
	case DataTypeDouble:
		return width == 8
	case DataTypeDate:
		return width == kDateLen
	}
	return false
}

func (v Array) Validate() error {
	if !v.ItemType.IsPrimitive() || v.ItemType == DataTypeArray {
		return errorf(ErrUnsupportedDataType, "array item type "+v.ItemType.String())
	}
	if v.ItemWidth != 0 && !validFixedWidth(v.ItemType, v.ItemWidth) {
		return errorf(ErrInvalidData, "array item width "+strconv.Itoa(int(v.ItemWidth))+" for "+v.ItemType.String())
	}
	if len(v.Items) > 0xFFFF {
		return errorf(ErrValueOutOfRange, "array count "+strconv.Itoa(len(v.Items)))
	}
	for i, item := range v.Items {
		if item == nil || item.DataType() != v.ItemType {
			return errorf(ErrUnsupportedDataType, "array item "+strconv.Itoa(i)+" is not "+v.ItemType.String())
		}
		if v.ItemWidth != 0 && IsBlank(item) {
			return errorf(ErrInvalidData, "blank item in fixed width array")
		}
	}
	return nil
}

func (v Array) encode(w *Writer) {
	if err := v.Validate(); err != nil {
		w.Fail(err)
		return
	}
	w.PutUint8(uint8(v.ItemType))
	w.PutUint8(v.ItemWidth)
	w.PutUint16(uint16(len(v.Items)))
	for _, item := range v.Items {
		if v.ItemWidth != 0 {
			encodeFixed(w, item, int(v.ItemWidth))
			continue
		}
		m := w.Len()
		w.PutUint8(0)
		item.encode(w)
		if w.Err() != nil {
			return
		}
		n := w.Len() - m - 1
		if n > 0xFFFF {
			w.Fail(errorf(ErrValueOutOfRange, "array item length "+strconv.Itoa(n)))
			return
		}
		content := append([]byte(nil), w.Bytes()[m+1:]...)
		w.Truncate(m)
		w.PutU16ob(uint16(n))
		w.PutBytes(content)
	}
}

func encodeFixed(w *Writer, item Primitive, width int) {
	switch x := item.(type) {
	case Int:
		if intSize(int64(x)) > width {
			w.Fail(errorf(ErrValueOutOfRange, x.String()+" does not fit in "+strconv.Itoa(width)+" bytes"))
			return
		}
		putUintN(w, uint64(x), width)
	case UInt:
		if uintSize(uint64(x)) > width {
			w.Fail(errorf(ErrValueOutOfRange, x.String()+" does not fit in "+strconv.Itoa(width)+" bytes"))
			return
		}
		putUintN(w, uint64(x), width)
	case Enum:
		if uintSize(uint64(x)) > width {
			w.Fail(errorf(ErrValueOutOfRange, x.String()+" does not fit in "+strconv.Itoa(width)+" bytes"))
			return
		}
		putUintN(w, uint64(x), width)
	default:
		item.encode(w)
	}
}

func decodeArray(b []byte) (Primitive, error) {
	r := NewReader(b)
	v := Array{
		ItemType:  DataType(r.Uint8()),
		ItemWidth: r.Uint8(),
	}
	count := int(r.Uint16())
	if err := r.Err(); err != nil {
		return nil, err
	}
	if !v.ItemType.IsPrimitive() || v.ItemType == DataTypeArray {
		return nil, errorf(ErrUnsupportedDataType, "array item type "+v.ItemType.String())
	}
	if v.ItemWidth != 0 && !validFixedWidth(v.ItemType, v.ItemWidth) {
		return nil, errorf(ErrInvalidData, "array item width "+strconv.Itoa(int(v.ItemWidth)))
	}
	v.Items = make([]Primitive, 0, count)
	for i := 0; i < count; i++ {
		var content []byte
		if v.ItemWidth != 0 {
			content = r.Bytes(int(v.ItemWidth))
		} else {
			n := r.U16ob()
			content = r.Bytes(int(n))
		}
		if err := r.Err(); err != nil {
			return nil, err
		}
		item, err := DecodePrimitive(v.ItemType, content)
		if err != nil {
			return nil, err
		}
		v.Items = append(v.Items, item)
	}
	if r.Remaining() != 0 {
		return nil, errorf(ErrInvalidData, "array trailing bytes")
	}
	return v, nil
}

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
	"errors"
	"fmt"

	"github.com/golang/glog"

	"rwf/pkg/codec"
	"rwf/pkg/dictionary"
)

// Data is anything that can be the load of an entry, a summary, or the attrib or
// payload of a message: a codec.Primitive, a container, a Msg, NoData, one of the
// opaque blob types or ErrorData.
type Data interface {
	DataType() codec.DataType
}

type (
	NoData   struct{}
	Opaque   []byte
	XML      []byte
	JSON     []byte
	AnsiPage []byte
)

func (NoData) DataType() codec.DataType   { return codec.DataTypeNoData }
func (Opaque) DataType() codec.DataType   { return codec.DataTypeOpaque }
func (XML) DataType() codec.DataType      { return codec.DataTypeXML }
func (JSON) DataType() codec.DataType     { return codec.DataTypeJSON }
func (AnsiPage) DataType() codec.DataType { return codec.DataTypeAnsiPage }

type ErrorDataCode uint8

const (
	ErrorDataFieldIDNotFound ErrorDataCode = iota + 1
	ErrorDataIncompleteData
	ErrorDataUnsupportedDataType
	ErrorDataNoDictionary
)

var errorDataCodeNames = map[ErrorDataCode]string{
	ErrorDataFieldIDNotFound:     "FieldIdNotFound",
	ErrorDataIncompleteData:      "IncompleteData",
	ErrorDataUnsupportedDataType: "UnsupportedDataType",
	ErrorDataNoDictionary:        "NoDictionary",
}

func (c ErrorDataCode) String() string {
	if s, ok := errorDataCodeNames[c]; ok {
		return s
	}
	return "UnknownError"
}

// ErrorData stands in for a load that could not be decoded. Raw keeps the
// undecoded content and Type the type it was read as, so the entry still
// re-encodes unchanged.
type ErrorData struct {
	Code ErrorDataCode
	Type codec.DataType
	Raw  []byte
	Err  error
}

func (ErrorData) DataType() codec.DataType { return codec.DataTypeError }

func newErrorData(err error, t codec.DataType, raw []byte) ErrorData {
	code := ErrorDataIncompleteData
	if errors.Is(err, codec.ErrUnsupportedDataType) {
		code = ErrorDataUnsupportedDataType
	}
	return ErrorData{Code: code, Type: t, Raw: raw, Err: err}
}

// object is implemented by every container and message.
type object interface {
	Data
	life() *lifecycle
	encodeTo(w *codec.Writer)
	render(r *renderer)
}

func isNoData(d Data) bool {
	return d == nil || d.DataType() == codec.DataTypeNoData
}

// dataTypeOf treats a nil load as NoData.
func dataTypeOf(d Data) codec.DataType {
	if d == nil {
		return codec.DataTypeNoData
	}
	return d.DataType()
}

// wireTypeOf is the type written for d; an undecoded load keeps the type it
// was read as.
func wireTypeOf(d Data) codec.DataType {
	if ed, ok := d.(ErrorData); ok {
		return ed.Type
	}
	return dataTypeOf(d)
}

// checkEntryLoad accepts the implementations encodeLoad knows how to write.
func checkEntryLoad(d Data) error {
	switch d.(type) {
	case nil, NoData, codec.Primitive, object, Opaque, XML, JSON, AnsiPage, ErrorData:
		return nil
	}
	return newError(ErrorCodeInvalidArgument, fmt.Sprintf("Unsupported load implementation %T", d))
}

// checkContainerLoad rejects loads that cannot sit where a container type is
// declared on the wire.
func checkContainerLoad(where string, d Data) error {
	if err := checkEntryLoad(d); err != nil {
		return err
	}
	if t := dataTypeOf(d); !t.IsContainer() {
		return newError(ErrorCodeInvalidArgument,
			"Attempt to use "+t.ConstName()+" as "+where+"; only container types are allowed")
	}
	return nil
}

func orNoData(d Data) Data {
	if d == nil {
		return NoData{}
	}
	return d
}

// encodeLoad writes the content of d without a length prefix.
func encodeLoad(w *codec.Writer, d Data) {
	switch v := d.(type) {
	case nil, NoData:
	case codec.Primitive:
		codec.EncodePrimitive(w, v)
	case object:
		v.encodeTo(w)
	case Opaque:
		w.PutBytes(v)
	case XML:
		w.PutBytes(v)
	case JSON:
		w.PutBytes(v)
	case AnsiPage:
		w.PutBytes(v)
	case ErrorData:
		w.PutBytes(v.Raw)
	default:
		w.Fail(fmt.Errorf("%w: %T", codec.ErrUnsupportedDataType, d))
	}
}

// encodePayload writes d behind a u32ob length.
func encodePayload(w *codec.Writer, d Data) {
	m := w.Reserve()
	encodeLoad(w, d)
	w.Finish(m)
}

type decodeCtx struct {
	major uint8
	minor uint8
	dict  dictionary.Dictionary
}

func (c decodeCtx) decode(t codec.DataType, b []byte) (Data, error) {
	switch {
	case t == codec.DataTypeNoData:
		return NoData{}, nil
	case t.IsPrimitive():
		p, err := codec.DecodePrimitive(t, b)
		if err != nil {
			return nil, err
		}
		return p, nil
	case len(b) == 0:
		return NoData{}, nil
	}
	var (
		o   object
		err error
	)
	switch t {
	case codec.DataTypeOpaque:
		return Opaque(b), nil
	case codec.DataTypeXML:
		return XML(b), nil
	case codec.DataTypeJSON:
		return JSON(b), nil
	case codec.DataTypeAnsiPage:
		return AnsiPage(b), nil
	case codec.DataTypeFieldList:
		o, err = decodeFieldList(b, c)
	case codec.DataTypeElementList:
		o, err = decodeElementList(b, c)
	case codec.DataTypeFilterList:
		o, err = decodeFilterList(b, c)
	case codec.DataTypeVector:
		o, err = decodeVector(b, c)
	case codec.DataTypeSeries:
		o, err = decodeSeries(b, c)
	case codec.DataTypeMap:
		o, err = decodeMap(b, c)
	case codec.DataTypeMsg:
		o, err = decodeMsg(b, c)
	default:
		return nil, fmt.Errorf("%w: %s", codec.ErrUnsupportedDataType, t)
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

// load decodes like decode but folds failures into ErrorData.
func (c decodeCtx) load(t codec.DataType, b []byte) Data {
	d, err := c.decode(t, b)
	if err != nil {
		if glog.V(2) {
			glog.Infof("%s load of %d bytes kept as ErrorData: %s", t, len(b), err)
		}
		return newErrorData(err, t, b)
	}
	return d
}

func (c decodeCtx) decodeObject(t codec.DataType, b []byte) (object, error) {
	d, err := c.decode(t, b)
	if err != nil {
		return nil, err
	}
	o, ok := d.(object)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a container", codec.ErrUnsupportedDataType, t)
	}
	return o, nil
}

func currentCtx(dict dictionary.Dictionary) decodeCtx {
	return decodeCtx{major: Conf.MajorVersion, minor: Conf.MinorVersion, dict: dict}
}

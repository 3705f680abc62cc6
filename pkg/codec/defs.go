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
	"encoding/binary"
	"strconv"
)

type DataType uint8

const (
	DataTypeUnknown  DataType = 0
	DataTypeInt      DataType = 3
	DataTypeUInt     DataType = 4
	DataTypeFloat    DataType = 5
	DataTypeDouble   DataType = 6
	DataTypeReal     DataType = 8
	DataTypeDate     DataType = 9
	DataTypeTime     DataType = 10
	DataTypeDateTime DataType = 11
	DataTypeQoS      DataType = 12
	DataTypeState    DataType = 13
	DataTypeEnum     DataType = 14
	DataTypeArray    DataType = 15
	DataTypeBuffer   DataType = 16
	DataTypeAscii    DataType = 17
	DataTypeUtf8     DataType = 18
	DataTypeRmtes    DataType = 19

	DataTypeNoData      DataType = 128
	DataTypeOpaque      DataType = 130
	DataTypeXML         DataType = 131
	DataTypeFieldList   DataType = 132
	DataTypeElementList DataType = 133
	DataTypeAnsiPage    DataType = 134
	DataTypeFilterList  DataType = 135
	DataTypeVector      DataType = 136
	DataTypeMap         DataType = 137
	DataTypeSeries      DataType = 138
	DataTypeMsg         DataType = 141
	DataTypeJSON        DataType = 142

	// never on the wire
	DataTypeError DataType = 255
)

const (
	kContainerTypeBase = 128
)

// Protocol version spoken by this codec. Decoders accept any minor version of the
// same major version.
const (
	MajorVersion uint8 = 14
	MinorVersion uint8 = 1
)

var (
	EncByteOrder = binary.BigEndian
)

var (
	dataTypeNameMap = map[DataType]string{
		DataTypeUnknown:     "Unknown",
		DataTypeInt:         "Int",
		DataTypeUInt:        "UInt",
		DataTypeFloat:       "Float",
		DataTypeDouble:      "Double",
		DataTypeReal:        "Real",
		DataTypeDate:        "Date",
		DataTypeTime:        "Time",
		DataTypeDateTime:    "DateTime",
		DataTypeQoS:         "Qos",
		DataTypeState:       "State",
		DataTypeEnum:        "Enum",
		DataTypeArray:       "OmmArray",
		DataTypeBuffer:      "Buffer",
		DataTypeAscii:       "Ascii",
		DataTypeUtf8:        "Utf8",
		DataTypeRmtes:       "Rmtes",
		DataTypeNoData:      "NoData",
		DataTypeOpaque:      "Opaque",
		DataTypeXML:         "Xml",
		DataTypeFieldList:   "FieldList",
		DataTypeElementList: "ElementList",
		DataTypeAnsiPage:    "AnsiPage",
		DataTypeFilterList:  "FilterList",
		DataTypeVector:      "Vector",
		DataTypeMap:         "Map",
		DataTypeSeries:      "Series",
		DataTypeMsg:         "Msg",
		DataTypeJSON:        "Json",
		DataTypeError:       "Error",
	}

	dataTypeConstNameMap = map[DataType]string{
		DataTypeInt:         "INT",
		DataTypeUInt:        "UINT",
		DataTypeFloat:       "FLOAT",
		DataTypeDouble:      "DOUBLE",
		DataTypeReal:        "REAL",
		DataTypeDate:        "DATE",
		DataTypeTime:        "TIME",
		DataTypeDateTime:    "DATETIME",
		DataTypeQoS:         "QOS",
		DataTypeState:       "STATE",
		DataTypeEnum:        "ENUM",
		DataTypeArray:       "ARRAY",
		DataTypeBuffer:      "BUFFER",
		DataTypeAscii:       "ASCII",
		DataTypeUtf8:        "UTF8",
		DataTypeRmtes:       "RMTES",
		DataTypeNoData:      "NO_DATA",
		DataTypeOpaque:      "OPAQUE",
		DataTypeXML:         "XML",
		DataTypeFieldList:   "FIELD_LIST",
		DataTypeElementList: "ELEMENT_LIST",
		DataTypeAnsiPage:    "ANSI_PAGE",
		DataTypeFilterList:  "FILTER_LIST",
		DataTypeVector:      "VECTOR",
		DataTypeMap:         "MAP",
		DataTypeSeries:      "SERIES",
		DataTypeMsg:         "MSG",
		DataTypeJSON:        "JSON",
		DataTypeError:       "ERROR",
	}
)

func (t DataType) String() string {
	if name, ok := dataTypeNameMap[t]; ok {
		return name
	}
	return "Unknown DataType " + strconv.Itoa(int(t))
}

// ParseDataType maps either the display name ("Real") or the upper-case name
// ("REAL") back to its DataType.
func ParseDataType(name string) (DataType, bool) {
	for t, n := range dataTypeConstNameMap {
		if n == name {
			return t, true
		}
	}
	for t, n := range dataTypeNameMap {
		if n == name {
			return t, true
		}
	}
	return DataTypeUnknown, false
}

// ConstName returns the upper-case name used in usage error texts, e.g. FIELD_LIST.
func (t DataType) ConstName() string {
	if name, ok := dataTypeConstNameMap[t]; ok {
		return name
	}
	return "UNKNOWN"
}

func (t DataType) IsPrimitive() bool {
	switch t {
	case DataTypeInt, DataTypeUInt, DataTypeFloat, DataTypeDouble, DataTypeReal,
		DataTypeDate, DataTypeTime, DataTypeDateTime, DataTypeQoS, DataTypeState,
		DataTypeEnum, DataTypeArray, DataTypeBuffer, DataTypeAscii, DataTypeUtf8, DataTypeRmtes:
		return true
	}
	return false
}

// IsContainer reports whether t can be the declared load type of a container or
// the payload/attrib of a message.
func (t DataType) IsContainer() bool {
	switch t {
	case DataTypeNoData, DataTypeOpaque, DataTypeXML, DataTypeFieldList, DataTypeElementList,
		DataTypeAnsiPage, DataTypeFilterList, DataTypeVector, DataTypeMap, DataTypeSeries,
		DataTypeMsg, DataTypeJSON:
		return true
	}
	return false
}

// ContainerTypeToWire maps a container data type to its one-byte wire form.
func ContainerTypeToWire(t DataType) (uint8, error) {
	if !t.IsContainer() {
		return 0, ErrUnsupportedDataType
	}
	return uint8(t) - kContainerTypeBase, nil
}

func ContainerTypeFromWire(b uint8) (DataType, error) {
	t := DataType(int(b) + kContainerTypeBase)
	if b > 127 || !t.IsContainer() {
		return DataTypeUnknown, ErrUnsupportedDataType
	}
	return t, nil
}

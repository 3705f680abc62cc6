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

// Package dictionary resolves field ids to names, wire types and enum display
// strings.
package dictionary

import (
	"fmt"
	"sort"
	"strconv"

	"rwf/pkg/codec"
)

type FieldDef struct {
	ID   int16
	Name string
	Type codec.DataType
}

type Dictionary interface {
	IsLoaded() bool
	Field(fid int16) (FieldDef, bool)
	EnumDisplay(fid int16, value uint16) (string, bool)
}

// DataDictionary is an in-memory Dictionary. It is not safe for concurrent
// mutation but may be shared by any number of readers once populated.
type DataDictionary struct {
	fields map[int16]FieldDef
	names  map[string]int16
	enums  map[int16]map[uint16]string
}

func New() *DataDictionary {
	return &DataDictionary{
		fields: make(map[int16]FieldDef),
		names:  make(map[string]int16),
		enums:  make(map[int16]map[uint16]string),
	}
}

func (d *DataDictionary) IsLoaded() bool {
	return d != nil && len(d.fields) != 0
}

func (d *DataDictionary) NumFields() int {
	return len(d.fields)
}

// Fields returns every field definition ordered by field id.
func (d *DataDictionary) Fields() []FieldDef {
	defs := make([]FieldDef, 0, len(d.fields))
	for _, f := range d.fields {
		defs = append(defs, f)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs
}

func (d *DataDictionary) AddField(fid int16, name string, t codec.DataType) error {
	if !t.IsPrimitive() && !t.IsContainer() {
		return fmt.Errorf("field %d %s: unsupported type %s", fid, name, t)
	}
	if name == "" {
		return fmt.Errorf("field %d: empty name", fid)
	}
	if prev, ok := d.fields[fid]; ok && prev.Name != name {
		return fmt.Errorf("field %d defined as both %s and %s", fid, prev.Name, name)
	}
	d.fields[fid] = FieldDef{ID: fid, Name: name, Type: t}
	d.names[name] = fid
	return nil
}

func (d *DataDictionary) AddEnum(fid int16, value uint16, display string) {
	m := d.enums[fid]
	if m == nil {
		m = make(map[uint16]string)
		d.enums[fid] = m
	}
	m[value] = display
}

func (d *DataDictionary) Field(fid int16) (FieldDef, bool) {
	if d == nil {
		return FieldDef{}, false
	}
	f, ok := d.fields[fid]
	return f, ok
}

func (d *DataDictionary) FieldByName(name string) (FieldDef, bool) {
	if d == nil {
		return FieldDef{}, false
	}
	fid, ok := d.names[name]
	if !ok {
		return FieldDef{}, false
	}
	return d.fields[fid], true
}

func (d *DataDictionary) EnumDisplay(fid int16, value uint16) (string, bool) {
	if d == nil {
		return "", false
	}
	s, ok := d.enums[fid][value]
	return s, ok
}

// NumEnums returns how many enum values have a display string for fid.
func (d *DataDictionary) NumEnums(fid int16) int {
	if d == nil {
		return 0
	}
	return len(d.enums[fid])
}

// FieldName returns the name of fid or its decimal form when fid is unknown.
func FieldName(d Dictionary, fid int16) string {
	if d != nil {
		if f, ok := d.Field(fid); ok {
			return f.Name
		}
	}
	return strconv.Itoa(int(fid))
}

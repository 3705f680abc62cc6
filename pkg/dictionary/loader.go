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

package dictionary

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/golang/glog"

	"rwf/pkg/codec"
)

type (
	tomlField struct {
		Id   int16
		Name string
		Type string
	}
	tomlEnum struct {
		Fids   []int16
		Values map[string]string
	}
	tomlDictionary struct {
		Field []tomlField
		Enum  []tomlEnum
	}
)

func LoadFile(path string) (*DataDictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func LoadBytes(b []byte) (*DataDictionary, error) {
	return Load(bytes.NewReader(b))
}

// Load reads a TOML dictionary made of [[Field]] tables (Id, Name, Type) and
// [[Enum]] tables (Fids, Values keyed by the decimal enum value).
func Load(r io.Reader) (*DataDictionary, error) {
	var td tomlDictionary
	if _, err := toml.NewDecoder(r).Decode(&td); err != nil {
		return nil, err
	}
	d := New()
	for _, f := range td.Field {
		t, ok := codec.ParseDataType(f.Type)
		if !ok {
			return nil, fmt.Errorf("field %d %s: unknown type %q", f.Id, f.Name, f.Type)
		}
		if err := d.AddField(f.Id, f.Name, t); err != nil {
			return nil, err
		}
	}
	for _, e := range td.Enum {
		for k, display := range e.Values {
			v, err := strconv.ParseUint(k, 10, 16)
			if err != nil {
				return nil, fmt.Errorf("enum value %q: %w", k, err)
			}
			for _, fid := range e.Fids {
				d.AddEnum(fid, uint16(v), display)
			}
		}
	}
	if glog.V(2) {
		glog.Infof("dictionary loaded with %d fields, %d enum tables", len(d.fields), len(d.enums))
	}
	return d, nil
}

// WriteTo writes d back out in the format Load accepts, ordered by field id.
func (d *DataDictionary) WriteTo(w io.Writer) (int64, error) {
	var td tomlDictionary
	for _, f := range d.Fields() {
		td.Field = append(td.Field, tomlField{Id: f.ID, Name: f.Name, Type: f.Type.ConstName()})
	}
	fids := make([]int, 0, len(d.enums))
	for fid := range d.enums {
		fids = append(fids, int(fid))
	}
	sort.Ints(fids)
	for _, fid := range fids {
		e := tomlEnum{Fids: []int16{int16(fid)}, Values: make(map[string]string)}
		for v, s := range d.enums[int16(fid)] {
			e.Values[strconv.Itoa(int(v))] = s
		}
		td.Enum = append(td.Enum, e)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(td); err != nil {
		return 0, err
	}
	return buf.WriteTo(w)
}

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


// Package cfg holds layered TOML configuration: a file, then dotted-key overrides
// from the command line, decoded section by section into typed structs.
package cfg

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/golang/glog"
)

type (
	// Config is a tree of properties whose keys match case-insensitively while the
	// spelling first seen is kept for output.
	//
	// Note: It is not goroutine safe.
	Config struct {
		root table
	}
	table map[string]*entry
	entry struct {
		key   string
		value interface{} // table or a TOML scalar/array
	}
)

// ReadFrom loads the properties of i, a struct or a map.
func (c *Config) ReadFrom(i interface{}) error {
	var buf bytes.Buffer
	if i != nil {
		if err := toml.NewEncoder(&buf).Encode(i); err != nil {
			return err
		}
	}
	return c.ReadFromToml(&buf)
}

func (c *Config) ReadFromToml(r io.Reader) error {
	m := make(map[string]interface{})
	if _, err := toml.NewDecoder(r).Decode(&m); err != nil {
		return err
	}
	c.root = fromMap(m)
	return nil
}

func (c *Config) ReadFromTomlBytes(b []byte) error {
	return c.ReadFromToml(bytes.NewReader(b))
}

func (c *Config) ReadFromTomlFile(file string) error {
	m := make(map[string]interface{})
	if _, err := toml.DecodeFile(file, &m); err != nil {
		return err
	}
	c.root = fromMap(m)
	return nil
}

func (c *Config) WriteToToml(w io.Writer) error {
	return toml.NewEncoder(w).Encode(toMap(c.root))
}

// WriteTo decodes the properties into v, a pointer to a struct or map. Keys absent
// from c leave the matching fields of v untouched, so v can carry defaults.
func (c *Config) WriteTo(v interface{}) error {
	var buf bytes.Buffer
	if err := c.WriteToToml(&buf); err != nil {
		return err
	}
	_, err := toml.Decode(buf.String(), v)
	return err
}

// Merge overlays overrides onto c. A key holding a table on one side and a value
// on the other is a type mismatch.
func (c *Config) Merge(overrides *Config) error {
	if c.root == nil {
		c.root = make(table)
	}
	return c.root.merge(overrides.root, "")
}

// WriteToKVList writes one "dotted.key=value" line per leaf, sorted by key.
func (c *Config) WriteToKVList(w io.Writer) {
	var lines []string
	c.root.walk("", func(k string, v interface{}) {
		lines = append(lines, fmt.Sprintf("%s=%v", k, v))
	})
	sort.Strings(lines)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}

// GetValue returns the value at a dotted key, a map[string]interface{} for tables,
// or nil when absent.
func (c *Config) GetValue(dotDelimitedKey string) interface{} {
	e := c.root.lookup(strings.Split(dotDelimitedKey, "."))
	if e == nil {
		return nil
	}
	if t, ok := e.value.(table); ok {
		return toMap(t)
	}
	return e.value
}

// GetConfig returns the sub-tree at a dotted key. A missing key yields an empty
// Config.
func (c *Config) GetConfig(dotDelimitedKey string) (conf Config, err error) {
	e := c.root.lookup(strings.Split(dotDelimitedKey, "."))
	if e == nil {
		return
	}
	t, ok := e.value.(table)
	if !ok {
		err = fmt.Errorf("%s is not a table", dotDelimitedKey)
		return
	}
	conf.root = t.clone()
	return
}

// SetKeyValue sets the value at a dotted key, creating intermediate tables.
func (c *Config) SetKeyValue(dotDelimitedKey string, v interface{}) error {
	keys := strings.Split(dotDelimitedKey, ".")
	over := make(table)
	t := over
	for _, k := range keys[:len(keys)-1] {
		sub := make(table)
		t[strings.ToLower(k)] = &entry{key: k, value: sub}
		t = sub
	}
	last := keys[len(keys)-1]
	t[strings.ToLower(last)] = &entry{key: last, value: v}
	return c.Merge(&Config{root: over})
}

func fromMap(m map[string]interface{}) table {
	t := make(table, len(m))
	for k, v := range m {
		lk := strings.ToLower(k)
		if _, found := t[lk]; found {
			glog.Warningf("key: %s found, skip", k)
			continue
		}
		if sub, ok := v.(map[string]interface{}); ok {
			t[lk] = &entry{key: k, value: fromMap(sub)}
		} else {
			t[lk] = &entry{key: k, value: v}
		}
	}
	return t
}

func toMap(t table) map[string]interface{} {
	m := make(map[string]interface{}, len(t))
	for _, e := range t {
		if sub, ok := e.value.(table); ok {
			m[e.key] = toMap(sub)
		} else {
			m[e.key] = e.value
		}
	}
	return m
}

func (t table) clone() table {
	out := make(table, len(t))
	for k, e := range t {
		if sub, ok := e.value.(table); ok {
			out[k] = &entry{key: e.key, value: sub.clone()}
		} else {
			out[k] = &entry{key: e.key, value: e.value}
		}
	}
	return out
}

func (t table) lookup(keys []string) *entry {
	e, ok := t[strings.ToLower(keys[0])]
	if !ok {
		return nil
	}
	if len(keys) == 1 {
		return e
	}
	sub, ok := e.value.(table)
	if !ok {
		return nil
	}
	return sub.lookup(keys[1:])
}

func (t table) merge(from table, prefix string) error {
	for k, e := range from {
		fromSub, fromIsTable := e.value.(table)
		to, found := t[k]
		if !found {
			if fromIsTable {
				sub := make(table)
				t[k] = &entry{key: e.key, value: sub}
				if err := sub.merge(fromSub, prefix+e.key+"."); err != nil {
					return err
				}
			} else {
				t[k] = &entry{key: e.key, value: e.value}
			}
			continue
		}
		toSub, toIsTable := to.value.(table)
		switch {
		case toIsTable && fromIsTable:
			if err := toSub.merge(fromSub, prefix+to.key+"."); err != nil {
				return err
			}
		case toIsTable != fromIsTable:
			return fmt.Errorf("type mismatch for %s%s", prefix, to.key)
		default:
			to.value = e.value
		}
	}
	return nil
}

func (t table) walk(prefix string, fn func(string, interface{})) {
	for _, e := range t {
		if sub, ok := e.value.(table); ok {
			sub.walk(prefix+e.key+".", fn)
		} else {
			fn(prefix+e.key, e.value)
		}
	}
}

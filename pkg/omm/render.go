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
	"strings"

	"github.com/golang/glog"

	"rwf/pkg/codec"
	"rwf/pkg/dictionary"
	"rwf/pkg/util"
)

const kIndent = "    "

// renderer writes the indented text form shared by every container and message.
type renderer struct {
	dict   dictionary.Dictionary
	sb     strings.Builder
	indent int
}

func (r *renderer) line(s string) {
	for i := 0; i < r.indent; i++ {
		r.sb.WriteString(kIndent)
	}
	r.sb.WriteString(s)
	r.sb.WriteByte('\n')
}

func (r *renderer) push() {
	r.indent++
}

func (r *renderer) pop() {
	if r.indent > 0 {
		r.indent--
	}
}

func (r *renderer) String() string {
	return r.sb.String()
}

func attr(name, value string) string {
	return " " + name + "=\"" + value + "\""
}

func hexString(b []byte) string {
	return util.ToSpacedHexString(b)
}

// value is the default rendering of a primitive.
func (r *renderer) value(p codec.Primitive) string {
	if p == nil {
		return ""
	}
	if b, ok := p.(codec.Buffer); ok {
		return hexString(b)
	}
	return p.String()
}

// fieldValue renders enums through the dictionary display table when one exists.
func (r *renderer) fieldValue(fid int16, p codec.Primitive) string {
	if e, ok := p.(codec.Enum); ok && r.dict != nil {
		if s, found := r.dict.EnumDisplay(fid, uint16(e)); found {
			return s
		}
	}
	return r.value(p)
}

// entry renders one entry. Primitive and NoData loads stay on the head line;
// everything else nests between head and end.
func (r *renderer) entry(head, end string, d Data, value func(codec.Primitive) string) {
	if value == nil {
		value = r.value
	}
	head += attr("dataType", dataTypeOf(d).String())
	switch v := d.(type) {
	case nil, NoData:
		r.line(head)
		return
	case codec.Array:
		r.line(head)
		r.push()
		r.array(v, value)
		r.pop()
		r.line(end)
		return
	case codec.Primitive:
		r.line(head + attr("value", value(v)))
		return
	}
	r.line(head)
	r.push()
	r.data(d)
	r.pop()
	r.line(end)
}

func (r *renderer) array(a codec.Array, value func(codec.Primitive) string) {
	r.line("OmmArray with entries of" + attr("dataType", a.ItemType.String()))
	r.push()
	for _, item := range a.Items {
		r.line("value=\"" + value(item) + "\"")
	}
	r.pop()
	r.line("OmmArrayEnd")
}

// data renders a non-primitive load as a block of its own.
func (r *renderer) data(d Data) {
	switch v := d.(type) {
	case object:
		v.render(r)
	case Opaque:
		r.blob("Opaque", v)
	case XML:
		r.text("Xml", string(v))
	case JSON:
		r.text("Json", string(v))
	case AnsiPage:
		r.blob("AnsiPage", v)
	case ErrorData:
		r.line("Error" + attr("ErrorCode", v.Code.String()))
		r.push()
		if v.Err != nil {
			r.line("reason=\"" + v.Err.Error() + "\"")
		}
		r.hexLines(v.Raw)
		r.pop()
		r.line("ErrorEnd")
	}
}

func (r *renderer) blob(name string, b []byte) {
	r.line(name)
	r.push()
	r.hexLines(b)
	r.pop()
	r.line(name + "End")
}

func (r *renderer) text(name, s string) {
	r.line(name)
	r.push()
	for _, l := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		r.line(l)
	}
	r.pop()
	r.line(name + "End")
}

func (r *renderer) hexLines(b []byte) {
	if len(b) == 0 {
		return
	}
	var sb strings.Builder
	util.HexDump(&sb, b)
	for _, l := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
		r.line(l)
	}
}

func (r *renderer) summary(d Data) {
	r.entry("SummaryData", "SummaryDataEnd", d, nil)
}

// iterError notes a framing error that stopped a traversal.
func (r *renderer) iterError(err error) {
	if err != nil {
		glog.Warningf("render stopped on framing error: %s", err)
		r.line("Error" + attr("reason", err.Error()))
	}
}

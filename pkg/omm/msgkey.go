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
	"strconv"

	"rwf/pkg/codec"
)

const (
	kKeyHasServiceID  = 0x01
	kKeyHasName       = 0x02
	kKeyHasNameType   = 0x04
	kKeyHasFilter     = 0x08
	kKeyHasIdentifier = 0x10
	kKeyHasAttrib     = 0x20
)

// msgKey identifies the item a message is about. A message carries a key on the
// wire iff at least one member is set.
type msgKey struct {
	serviceID  *uint16
	name       *string
	nameType   *uint8
	filter     *uint32
	identifier *int32
	attrib     Data
}

func (k *msgKey) present() bool {
	return k.serviceID != nil || k.name != nil || k.nameType != nil ||
		k.filter != nil || k.identifier != nil || k.attrib != nil
}

func (k *msgKey) flags() (f uint16) {
	if k.serviceID != nil {
		f |= kKeyHasServiceID
	}
	if k.name != nil {
		f |= kKeyHasName
	}
	if k.nameType != nil {
		f |= kKeyHasNameType
	}
	if k.filter != nil {
		f |= kKeyHasFilter
	}
	if k.identifier != nil {
		f |= kKeyHasIdentifier
	}
	if k.attrib != nil {
		f |= kKeyHasAttrib
	}
	return
}

func (k *msgKey) encode(w *codec.Writer) {
	w.PutU15rb(k.flags())
	if k.serviceID != nil {
		w.PutU16ob(*k.serviceID)
	}
	if k.name != nil {
		w.PutString15(*k.name)
	}
	if k.nameType != nil {
		w.PutUint8(*k.nameType)
	}
	if k.filter != nil {
		w.PutUint32(*k.filter)
	}
	if k.identifier != nil {
		w.PutInt32(*k.identifier)
	}
	if k.attrib != nil {
		ct, err := codec.ContainerTypeToWire(dataTypeOf(k.attrib))
		if err != nil {
			w.Fail(err)
			return
		}
		w.PutUint8(ct)
		encodePayload(w, k.attrib)
	}
}

func (k *msgKey) decode(b []byte, ctx decodeCtx) error {
	r := codec.NewReader(b)
	flags := r.U15rb()
	if flags&kKeyHasServiceID != 0 {
		id := r.U16ob()
		k.serviceID = &id
	}
	if flags&kKeyHasName != 0 {
		name := string(r.Buffer15())
		k.name = &name
	}
	if flags&kKeyHasNameType != 0 {
		t := r.Uint8()
		k.nameType = &t
	}
	if flags&kKeyHasFilter != 0 {
		f := r.Uint32()
		k.filter = &f
	}
	if flags&kKeyHasIdentifier != 0 {
		id := r.Int32()
		k.identifier = &id
	}
	if flags&kKeyHasAttrib != 0 {
		ct, err := codec.ContainerTypeFromWire(r.Uint8())
		if r.Err() != nil {
			return r.Err()
		}
		if err != nil {
			return err
		}
		if k.attrib, err = ctx.decode(ct, r.Buffer32()); err != nil {
			return err
		}
	}
	return r.Err()
}

func (k *msgKey) render(r *renderer) {
	if k.name != nil {
		r.line("name=\"" + *k.name + "\"")
	}
	if k.nameType != nil {
		r.line("nameType=\"" + strconv.Itoa(int(*k.nameType)) + "\"")
	}
	if k.serviceID != nil {
		r.line("serviceId=\"" + strconv.Itoa(int(*k.serviceID)) + "\"")
	}
	if k.filter != nil {
		r.line("filter=\"" + strconv.FormatUint(uint64(*k.filter), 10) + "\"")
	}
	if k.identifier != nil {
		r.line("id=\"" + strconv.Itoa(int(*k.identifier)) + "\"")
	}
	if k.attrib != nil {
		r.entry("Attrib", "AttribEnd", k.attrib, nil)
	}
}

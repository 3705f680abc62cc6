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

	"github.com/golang/glog"

	"rwf/pkg/dictionary"
)

type LifecycleState uint8

const (
	StateBlank LifecycleState = iota
	StatePopulated
	StateWireBound
)

func (s LifecycleState) String() string {
	switch s {
	case StateBlank:
		return "Blank"
	case StatePopulated:
		return "Populated"
	case StateWireBound:
		return "WireBound"
	}
	return "LifecycleState(" + strconv.Itoa(int(s)) + ")"
}

const (
	kJustEncodedText         = "\ntoString() method could not be used for just encoded object. Use toString(dictionary) for just encoded object.\n"
	kDictionaryNotLoadedText = "\nDictionary is not loaded.\n"
	kNoDictionaryText        = "\ntoString() method could not be used for decoded object without dictionary. Use toString(dictionary) instead.\n"
	kCloneEmptyBufferText    = "Failed to clone empty encoded buffer"
	kRenderFailedText        = "\nFailed to encode object for rendering.\n"
)

type wireBuffer struct {
	data  []byte
	major uint8
	minor uint8
}

// lifecycle is embedded in every container and message.
type lifecycle struct {
	state   LifecycleState
	wire    wireBuffer
	dict    dictionary.Dictionary
	encoded bool
}

func (l *lifecycle) life() *lifecycle {
	return l
}

func (l *lifecycle) Lifecycle() LifecycleState {
	return l.state
}

// Dictionary returns the dictionary bound at decode time, if any.
func (l *lifecycle) Dictionary() dictionary.Dictionary {
	return l.dict
}

func (l *lifecycle) bind(b []byte, ctx decodeCtx) {
	l.state = StateWireBound
	l.wire = wireBuffer{data: b, major: ctx.major, minor: ctx.minor}
	l.dict = ctx.dict
	l.encoded = true
}

// touch records a setter call. The bound bytes no longer describe the object.
func (l *lifecycle) touch() {
	l.state = StatePopulated
	l.wire = wireBuffer{}
}

func (l *lifecycle) markEncoded() {
	if l.state == StateBlank {
		l.state = StatePopulated
	}
	l.encoded = true
}

func (l *lifecycle) reset() {
	*l = lifecycle{}
}

func isLoaded(dict dictionary.Dictionary) bool {
	return dict != nil && dict.IsLoaded()
}

func stringOf(o object) string {
	l := o.life()
	if l.state != StateWireBound {
		return kJustEncodedText
	}
	if !isLoaded(l.dict) {
		return kNoDictionaryText
	}
	return renderString(o, l.dict)
}

func stringWithDictionaryOf(o object, dict dictionary.Dictionary) string {
	if !isLoaded(dict) {
		return kDictionaryNotLoadedText
	}
	if o.life().state == StateWireBound {
		return renderString(o, dict)
	}
	dt := o.DataType()
	b, err := marshal(o.encodeTo)
	if err == nil {
		o, err = currentCtx(dict).decodeObject(dt, b)
	}
	if err != nil {
		glog.Warningf("render %s: %s", dt, err)
		return kRenderFailedText
	}
	return renderString(o, dict)
}

func cloneOf(o object) (object, error) {
	l := o.life()
	if l.state == StateBlank || !l.encoded {
		return nil, newError(ErrorCodeCloneOfEmptyBuffer,
			kCloneEmptyBufferText+" of "+o.DataType().String()+"; encode or decode it first")
	}
	b, err := marshal(o.encodeTo)
	if err != nil {
		return nil, err
	}
	return currentCtx(l.dict).decodeObject(o.DataType(), b)
}

func encodeInto(o object, buf []byte) (int, error) {
	w := newBoundedWriter(buf)
	o.encodeTo(w)
	if err := w.Err(); err != nil {
		return 0, err
	}
	o.life().markEncoded()
	return w.Len(), nil
}

func marshalObject(o object) ([]byte, error) {
	b, err := marshal(o.encodeTo)
	if err != nil {
		return nil, err
	}
	o.life().markEncoded()
	return b, nil
}

func renderString(o object, dict dictionary.Dictionary) string {
	r := &renderer{dict: dict}
	o.render(r)
	return r.String()
}

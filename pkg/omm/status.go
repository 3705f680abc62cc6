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
	"rwf/pkg/codec"
	"rwf/pkg/dictionary"
)

const (
	kStatusHasExtendedHeader = 0x001
	kStatusHasPermData       = 0x002
	kStatusHasMsgKey         = 0x008
	kStatusHasGroupID        = 0x010
	kStatusHasState          = 0x020
	kStatusClearCache        = 0x040
	kStatusPrivateStream     = 0x080
	kStatusHasPostUserInfo   = 0x100
)

type StatusMsg struct {
	msgBase
	itemState     *codec.State
	itemGroup     []byte
	permData      []byte
	postUserInfo  *PostUserInfo
	clearCache    bool
	privateStream bool
}

func NewStatusMsg() *StatusMsg {
	return &StatusMsg{}
}

func (m *StatusMsg) Class() MsgClass    { return MsgClassStatus }
func (m *StatusMsg) keyFlag() uint16    { return kStatusHasMsgKey }
func (m *StatusMsg) extHdrFlag() uint16 { return kStatusHasExtendedHeader }

func (m *StatusMsg) State() (codec.State, bool) {
	if m.itemState == nil {
		return codec.State{}, false
	}
	return *m.itemState, true
}

func (m *StatusMsg) SetState(s codec.State) error {
	if len(s.Text) > 0x7FFF {
		return newError(ErrorCodeInvalidArgument, "state text longer than 32767 bytes")
	}
	m.touch()
	m.itemState = &s
	return nil
}

func (m *StatusMsg) ItemGroup() ([]byte, bool) {
	return m.itemGroup, m.itemGroup != nil
}

func (m *StatusMsg) SetItemGroup(b []byte) error {
	if err := checkBuffer15("item group", b); err != nil {
		return err
	}
	m.touch()
	m.itemGroup = b
	return nil
}

func (m *StatusMsg) PermissionData() ([]byte, bool) {
	return m.permData, m.permData != nil
}

func (m *StatusMsg) SetPermissionData(b []byte) error {
	if err := checkBuffer15("permission data", b); err != nil {
		return err
	}
	m.touch()
	m.permData = b
	return nil
}

func (m *StatusMsg) PublisherID() (PostUserInfo, bool) {
	if m.postUserInfo == nil {
		return PostUserInfo{}, false
	}
	return *m.postUserInfo, true
}

func (m *StatusMsg) SetPublisherID(address, userID uint32) {
	m.touch()
	m.postUserInfo = &PostUserInfo{Address: address, UserID: userID}
}

func (m *StatusMsg) ClearCache() bool    { return m.clearCache }
func (m *StatusMsg) PrivateStream() bool { return m.privateStream }

func (m *StatusMsg) SetClearCache(v bool) {
	m.touch()
	m.clearCache = v
}

func (m *StatusMsg) SetPrivateStream(v bool) {
	m.touch()
	m.privateStream = v
}

func (m *StatusMsg) Clear() {
	*m = StatusMsg{}
}

func (m *StatusMsg) classFlags() (f uint16) {
	if m.permData != nil {
		f |= kStatusHasPermData
	}
	if m.itemGroup != nil {
		f |= kStatusHasGroupID
	}
	if m.itemState != nil {
		f |= kStatusHasState
	}
	if m.clearCache {
		f |= kStatusClearCache
	}
	if m.privateStream {
		f |= kStatusPrivateStream
	}
	if m.postUserInfo != nil {
		f |= kStatusHasPostUserInfo
	}
	return
}

func (m *StatusMsg) encodeFields(w *codec.Writer) {
	if m.itemState != nil {
		codec.EncodePrimitive(w, *m.itemState)
	}
	if m.itemGroup != nil {
		w.PutBuffer15(m.itemGroup)
	}
	if m.permData != nil {
		w.PutBuffer15(m.permData)
	}
	if m.postUserInfo != nil {
		m.postUserInfo.encode(w)
	}
}

func (m *StatusMsg) decodeFields(r *codec.Reader, flags uint16) {
	if flags&kStatusHasState != 0 {
		s := codec.ReadState(r)
		m.itemState = &s
	}
	if flags&kStatusHasGroupID != 0 {
		m.itemGroup = r.Buffer15()
	}
	if flags&kStatusHasPermData != 0 {
		m.permData = r.Buffer15()
	}
	if flags&kStatusHasPostUserInfo != 0 {
		p := readPostUserInfo(r)
		m.postUserInfo = &p
	}
	m.clearCache = flags&kStatusClearCache != 0
	m.privateStream = flags&kStatusPrivateStream != 0
}

func (m *StatusMsg) renderFields(r *renderer) {
	renderFlag(r, m.clearCache, "clearCache")
	renderFlag(r, m.privateStream, "privateStream")
	if m.itemState != nil {
		r.line("state=\"" + m.itemState.String() + "\"")
	}
	if m.itemGroup != nil {
		r.line("itemGroup=\"" + hexString(m.itemGroup) + "\"")
	}
	renderPermData(r, m.permData)
	if m.postUserInfo != nil {
		m.postUserInfo.render(r)
	}
}

func (m *StatusMsg) encodeTo(w *codec.Writer) { encodeMsg(w, m) }
func (m *StatusMsg) render(r *renderer)       { renderMsg(r, m) }

func (m *StatusMsg) Encode(buf []byte) (int, error) {
	return encodeInto(m, buf)
}

func (m *StatusMsg) Marshal() ([]byte, error) {
	return marshalObject(m)
}

func (m *StatusMsg) Clone() (*StatusMsg, error) {
	o, err := cloneOf(m)
	if err != nil {
		return nil, err
	}
	return o.(*StatusMsg), nil
}

func (m *StatusMsg) String() string {
	return stringOf(m)
}

func (m *StatusMsg) StringWithDictionary(dict dictionary.Dictionary) string {
	return stringWithDictionaryOf(m, dict)
}

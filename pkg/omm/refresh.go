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
	"rwf/pkg/dictionary"
)

const (
	kRefreshHasExtendedHeader = 0x0001
	kRefreshHasPermData       = 0x0002
	kRefreshHasMsgKey         = 0x0008
	kRefreshHasSeqNum         = 0x0010
	kRefreshSolicited         = 0x0020
	kRefreshComplete          = 0x0040
	kRefreshHasQoS            = 0x0080
	kRefreshClearCache        = 0x0100
	kRefreshDoNotCache        = 0x0200
	kRefreshPrivateStream     = 0x0400
	kRefreshHasPostUserInfo   = 0x0800
	kRefreshHasPartNum        = 0x1000
)

// RefreshMsg always carries a state and an item group, possibly empty.
type RefreshMsg struct {
	msgBase
	seqNum        *uint32
	itemState     codec.State
	itemGroup     []byte
	qos           *codec.QoS
	partNum       *uint16
	permData      []byte
	postUserInfo  *PostUserInfo
	solicited     bool
	complete      bool
	clearCache    bool
	doNotCache    bool
	privateStream bool
}

func NewRefreshMsg() *RefreshMsg {
	return &RefreshMsg{}
}

func (m *RefreshMsg) Class() MsgClass    { return MsgClassRefresh }
func (m *RefreshMsg) keyFlag() uint16    { return kRefreshHasMsgKey }
func (m *RefreshMsg) extHdrFlag() uint16 { return kRefreshHasExtendedHeader }

func (m *RefreshMsg) SeqNum() (uint32, bool) {
	if m.seqNum == nil {
		return 0, false
	}
	return *m.seqNum, true
}

func (m *RefreshMsg) SetSeqNum(n uint32) {
	m.touch()
	m.seqNum = &n
}

func (m *RefreshMsg) State() codec.State {
	return m.itemState
}

func (m *RefreshMsg) SetState(s codec.State) error {
	if len(s.Text) > 0x7FFF {
		return newError(ErrorCodeInvalidArgument, "state text longer than 32767 bytes")
	}
	m.touch()
	m.itemState = s
	return nil
}

func (m *RefreshMsg) ItemGroup() []byte {
	return m.itemGroup
}

func (m *RefreshMsg) SetItemGroup(b []byte) error {
	if err := checkBuffer15("item group", b); err != nil {
		return err
	}
	m.touch()
	m.itemGroup = b
	return nil
}

func (m *RefreshMsg) QoS() (codec.QoS, bool) {
	if m.qos == nil {
		return codec.QoS{}, false
	}
	return *m.qos, true
}

func (m *RefreshMsg) SetQoS(q codec.QoS) {
	m.touch()
	m.qos = &q
}

func (m *RefreshMsg) PartNum() (uint16, bool) {
	if m.partNum == nil {
		return 0, false
	}
	return *m.partNum, true
}

func (m *RefreshMsg) SetPartNum(n uint16) error {
	if err := checkPartNum(n); err != nil {
		return err
	}
	m.touch()
	m.partNum = &n
	return nil
}

func (m *RefreshMsg) PermissionData() ([]byte, bool) {
	return m.permData, m.permData != nil
}

func (m *RefreshMsg) SetPermissionData(b []byte) error {
	if err := checkBuffer15("permission data", b); err != nil {
		return err
	}
	m.touch()
	m.permData = b
	return nil
}

// PublisherID is the identity of the provider that published the refresh.
func (m *RefreshMsg) PublisherID() (PostUserInfo, bool) {
	if m.postUserInfo == nil {
		return PostUserInfo{}, false
	}
	return *m.postUserInfo, true
}

func (m *RefreshMsg) SetPublisherID(address, userID uint32) {
	m.touch()
	m.postUserInfo = &PostUserInfo{Address: address, UserID: userID}
}

func (m *RefreshMsg) Solicited() bool     { return m.solicited }
func (m *RefreshMsg) Complete() bool      { return m.complete }
func (m *RefreshMsg) ClearCache() bool    { return m.clearCache }
func (m *RefreshMsg) DoNotCache() bool    { return m.doNotCache }
func (m *RefreshMsg) PrivateStream() bool { return m.privateStream }

func (m *RefreshMsg) SetSolicited(v bool) {
	m.touch()
	m.solicited = v
}

func (m *RefreshMsg) SetComplete(v bool) {
	m.touch()
	m.complete = v
}

func (m *RefreshMsg) SetClearCache(v bool) {
	m.touch()
	m.clearCache = v
}

func (m *RefreshMsg) SetDoNotCache(v bool) {
	m.touch()
	m.doNotCache = v
}

func (m *RefreshMsg) SetPrivateStream(v bool) {
	m.touch()
	m.privateStream = v
}

func (m *RefreshMsg) Clear() {
	*m = RefreshMsg{}
}

func (m *RefreshMsg) classFlags() (f uint16) {
	if m.permData != nil {
		f |= kRefreshHasPermData
	}
	if m.seqNum != nil {
		f |= kRefreshHasSeqNum
	}
	if m.solicited {
		f |= kRefreshSolicited
	}
	if m.complete {
		f |= kRefreshComplete
	}
	if m.qos != nil {
		f |= kRefreshHasQoS
	}
	if m.clearCache {
		f |= kRefreshClearCache
	}
	if m.doNotCache {
		f |= kRefreshDoNotCache
	}
	if m.privateStream {
		f |= kRefreshPrivateStream
	}
	if m.postUserInfo != nil {
		f |= kRefreshHasPostUserInfo
	}
	if m.partNum != nil {
		f |= kRefreshHasPartNum
	}
	return
}

func (m *RefreshMsg) encodeFields(w *codec.Writer) {
	if m.seqNum != nil {
		w.PutUint32(*m.seqNum)
	}
	codec.EncodePrimitive(w, m.itemState)
	w.PutBuffer15(m.itemGroup)
	if m.qos != nil {
		codec.EncodePrimitive(w, *m.qos)
	}
	if m.partNum != nil {
		w.PutU15rb(*m.partNum)
	}
	if m.permData != nil {
		w.PutBuffer15(m.permData)
	}
	if m.postUserInfo != nil {
		m.postUserInfo.encode(w)
	}
}

func (m *RefreshMsg) decodeFields(r *codec.Reader, flags uint16) {
	if flags&kRefreshHasSeqNum != 0 {
		n := r.Uint32()
		m.seqNum = &n
	}
	m.itemState = codec.ReadState(r)
	m.itemGroup = r.Buffer15()
	if flags&kRefreshHasQoS != 0 {
		q := codec.ReadQoS(r)
		m.qos = &q
	}
	if flags&kRefreshHasPartNum != 0 {
		n := r.U15rb()
		m.partNum = &n
	}
	if flags&kRefreshHasPermData != 0 {
		m.permData = r.Buffer15()
	}
	if flags&kRefreshHasPostUserInfo != 0 {
		p := readPostUserInfo(r)
		m.postUserInfo = &p
	}
	m.solicited = flags&kRefreshSolicited != 0
	m.complete = flags&kRefreshComplete != 0
	m.clearCache = flags&kRefreshClearCache != 0
	m.doNotCache = flags&kRefreshDoNotCache != 0
	m.privateStream = flags&kRefreshPrivateStream != 0
}

func (m *RefreshMsg) renderFields(r *renderer) {
	renderFlag(r, m.solicited, "solicited")
	renderFlag(r, m.complete, "RefreshComplete")
	renderFlag(r, m.clearCache, "clearCache")
	renderFlag(r, m.doNotCache, "doNotCache")
	renderFlag(r, m.privateStream, "privateStream")
	if m.seqNum != nil {
		r.line("seqNum=\"" + strconv.FormatUint(uint64(*m.seqNum), 10) + "\"")
	}
	if m.partNum != nil {
		r.line("partNum=\"" + strconv.Itoa(int(*m.partNum)) + "\"")
	}
	r.line("state=\"" + m.itemState.String() + "\"")
	r.line("itemGroup=\"" + hexString(m.itemGroup) + "\"")
	if m.qos != nil {
		r.line("qos=\"" + m.qos.String() + "\"")
	}
	renderPermData(r, m.permData)
	if m.postUserInfo != nil {
		m.postUserInfo.render(r)
	}
}

func (m *RefreshMsg) encodeTo(w *codec.Writer) { encodeMsg(w, m) }
func (m *RefreshMsg) render(r *renderer)       { renderMsg(r, m) }

func (m *RefreshMsg) Encode(buf []byte) (int, error) {
	return encodeInto(m, buf)
}

func (m *RefreshMsg) Marshal() ([]byte, error) {
	return marshalObject(m)
}

func (m *RefreshMsg) Clone() (*RefreshMsg, error) {
	o, err := cloneOf(m)
	if err != nil {
		return nil, err
	}
	return o.(*RefreshMsg), nil
}

func (m *RefreshMsg) String() string {
	return stringOf(m)
}

func (m *RefreshMsg) StringWithDictionary(dict dictionary.Dictionary) string {
	return stringWithDictionaryOf(m, dict)
}

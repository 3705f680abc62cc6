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
	kUpdateHasExtendedHeader = 0x001
	kUpdateHasPermData       = 0x002
	kUpdateHasMsgKey         = 0x008
	kUpdateHasSeqNum         = 0x010
	kUpdateHasConfInfo       = 0x020
	kUpdateDoNotCache        = 0x040
	kUpdateDoNotConflate     = 0x080
	kUpdateDoNotRipple       = 0x100
	kUpdateHasPostUserInfo   = 0x200
)

// ConflationInfo describes how many updates were folded into one and over what time.
type ConflationInfo struct {
	Count uint16
	Time  uint16
}

type UpdateMsg struct {
	msgBase
	updateType    uint8
	seqNum        *uint32
	conflation    *ConflationInfo
	permData      []byte
	postUserInfo  *PostUserInfo
	doNotCache    bool
	doNotConflate bool
	doNotRipple   bool
}

func NewUpdateMsg() *UpdateMsg {
	return &UpdateMsg{}
}

func (m *UpdateMsg) Class() MsgClass    { return MsgClassUpdate }
func (m *UpdateMsg) keyFlag() uint16    { return kUpdateHasMsgKey }
func (m *UpdateMsg) extHdrFlag() uint16 { return kUpdateHasExtendedHeader }

func (m *UpdateMsg) UpdateType() uint8 {
	return m.updateType
}

func (m *UpdateMsg) SetUpdateType(t uint8) {
	m.touch()
	m.updateType = t
}

func (m *UpdateMsg) SeqNum() (uint32, bool) {
	if m.seqNum == nil {
		return 0, false
	}
	return *m.seqNum, true
}

func (m *UpdateMsg) SetSeqNum(n uint32) {
	m.touch()
	m.seqNum = &n
}

func (m *UpdateMsg) Conflated() (ConflationInfo, bool) {
	if m.conflation == nil {
		return ConflationInfo{}, false
	}
	return *m.conflation, true
}

func (m *UpdateMsg) SetConflated(count, time uint16) error {
	if count > 0x7FFF {
		return newError(ErrorCodeInvalidArgument, "conflatedCount "+strconv.Itoa(int(count))+" exceeds 32767")
	}
	m.touch()
	m.conflation = &ConflationInfo{Count: count, Time: time}
	return nil
}

func (m *UpdateMsg) PermissionData() ([]byte, bool) {
	return m.permData, m.permData != nil
}

func (m *UpdateMsg) SetPermissionData(b []byte) error {
	if err := checkBuffer15("permission data", b); err != nil {
		return err
	}
	m.touch()
	m.permData = b
	return nil
}

func (m *UpdateMsg) PostUserInfo() (PostUserInfo, bool) {
	if m.postUserInfo == nil {
		return PostUserInfo{}, false
	}
	return *m.postUserInfo, true
}

func (m *UpdateMsg) SetPostUserInfo(address, userID uint32) {
	m.touch()
	m.postUserInfo = &PostUserInfo{Address: address, UserID: userID}
}

func (m *UpdateMsg) DoNotCache() bool    { return m.doNotCache }
func (m *UpdateMsg) DoNotConflate() bool { return m.doNotConflate }
func (m *UpdateMsg) DoNotRipple() bool   { return m.doNotRipple }

func (m *UpdateMsg) SetDoNotCache(v bool) {
	m.touch()
	m.doNotCache = v
}

func (m *UpdateMsg) SetDoNotConflate(v bool) {
	m.touch()
	m.doNotConflate = v
}

func (m *UpdateMsg) SetDoNotRipple(v bool) {
	m.touch()
	m.doNotRipple = v
}

func (m *UpdateMsg) Clear() {
	*m = UpdateMsg{}
}

func (m *UpdateMsg) classFlags() (f uint16) {
	if m.permData != nil {
		f |= kUpdateHasPermData
	}
	if m.seqNum != nil {
		f |= kUpdateHasSeqNum
	}
	if m.conflation != nil {
		f |= kUpdateHasConfInfo
	}
	if m.doNotCache {
		f |= kUpdateDoNotCache
	}
	if m.doNotConflate {
		f |= kUpdateDoNotConflate
	}
	if m.doNotRipple {
		f |= kUpdateDoNotRipple
	}
	if m.postUserInfo != nil {
		f |= kUpdateHasPostUserInfo
	}
	return
}

func (m *UpdateMsg) encodeFields(w *codec.Writer) {
	w.PutUint8(m.updateType)
	if m.seqNum != nil {
		w.PutUint32(*m.seqNum)
	}
	if m.conflation != nil {
		w.PutU15rb(m.conflation.Count)
		w.PutUint16(m.conflation.Time)
	}
	if m.permData != nil {
		w.PutBuffer15(m.permData)
	}
	if m.postUserInfo != nil {
		m.postUserInfo.encode(w)
	}
}

func (m *UpdateMsg) decodeFields(r *codec.Reader, flags uint16) {
	m.updateType = r.Uint8()
	if flags&kUpdateHasSeqNum != 0 {
		n := r.Uint32()
		m.seqNum = &n
	}
	if flags&kUpdateHasConfInfo != 0 {
		m.conflation = &ConflationInfo{Count: r.U15rb(), Time: r.Uint16()}
	}
	if flags&kUpdateHasPermData != 0 {
		m.permData = r.Buffer15()
	}
	if flags&kUpdateHasPostUserInfo != 0 {
		p := readPostUserInfo(r)
		m.postUserInfo = &p
	}
	m.doNotCache = flags&kUpdateDoNotCache != 0
	m.doNotConflate = flags&kUpdateDoNotConflate != 0
	m.doNotRipple = flags&kUpdateDoNotRipple != 0
}

func (m *UpdateMsg) renderFields(r *renderer) {
	r.line("updateTypeNum=\"" + strconv.Itoa(int(m.updateType)) + "\"")
	if m.seqNum != nil {
		r.line("seqNum=\"" + strconv.FormatUint(uint64(*m.seqNum), 10) + "\"")
	}
	if m.conflation != nil {
		r.line("conflatedCount=\"" + strconv.Itoa(int(m.conflation.Count)) + "\"")
		r.line("conflatedTime=\"" + strconv.Itoa(int(m.conflation.Time)) + "\"")
	}
	renderFlag(r, m.doNotCache, "doNotCache")
	renderFlag(r, m.doNotConflate, "doNotConflate")
	renderFlag(r, m.doNotRipple, "doNotRipple")
	renderPermData(r, m.permData)
	if m.postUserInfo != nil {
		m.postUserInfo.render(r)
	}
}

func (m *UpdateMsg) encodeTo(w *codec.Writer) { encodeMsg(w, m) }
func (m *UpdateMsg) render(r *renderer)       { renderMsg(r, m) }

func (m *UpdateMsg) Encode(buf []byte) (int, error) {
	return encodeInto(m, buf)
}

func (m *UpdateMsg) Marshal() ([]byte, error) {
	return marshalObject(m)
}

func (m *UpdateMsg) Clone() (*UpdateMsg, error) {
	o, err := cloneOf(m)
	if err != nil {
		return nil, err
	}
	return o.(*UpdateMsg), nil
}

func (m *UpdateMsg) String() string {
	return stringOf(m)
}

func (m *UpdateMsg) StringWithDictionary(dict dictionary.Dictionary) string {
	return stringWithDictionaryOf(m, dict)
}

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
	kPostHasExtendedHeader = 0x001
	kPostHasPostID         = 0x002
	kPostHasMsgKey         = 0x004
	kPostHasSeqNum         = 0x008
	kPostComplete          = 0x020
	kPostSolicitAck        = 0x040
	kPostHasPermData       = 0x080
	kPostHasPartNum        = 0x100
	kPostHasUserRights     = 0x200
)

// Post user rights.
const (
	PostUserRightsCreate     uint16 = 0x1
	PostUserRightsDelete     uint16 = 0x2
	PostUserRightsModifyPerm uint16 = 0x4
)

// PostMsg contributes content upstream. The publisher identity is always on
// the wire and is zero when never set.
type PostMsg struct {
	msgBase
	postUserInfo   PostUserInfo
	seqNum         *uint32
	postID         *uint32
	permData       []byte
	partNum        *uint16
	postUserRights *uint16
	complete       bool
	solicitAck     bool
}

func NewPostMsg() *PostMsg {
	return &PostMsg{}
}

func (m *PostMsg) Class() MsgClass    { return MsgClassPost }
func (m *PostMsg) keyFlag() uint16    { return kPostHasMsgKey }
func (m *PostMsg) extHdrFlag() uint16 { return kPostHasExtendedHeader }

func (m *PostMsg) PublisherID() PostUserInfo {
	return m.postUserInfo
}

func (m *PostMsg) SetPublisherID(address, userID uint32) {
	m.touch()
	m.postUserInfo = PostUserInfo{Address: address, UserID: userID}
}

func (m *PostMsg) SeqNum() (uint32, bool) {
	if m.seqNum == nil {
		return 0, false
	}
	return *m.seqNum, true
}

func (m *PostMsg) SetSeqNum(n uint32) {
	m.touch()
	m.seqNum = &n
}

func (m *PostMsg) PostID() (uint32, bool) {
	if m.postID == nil {
		return 0, false
	}
	return *m.postID, true
}

func (m *PostMsg) SetPostID(id uint32) {
	m.touch()
	m.postID = &id
}

func (m *PostMsg) PermissionData() ([]byte, bool) {
	return m.permData, m.permData != nil
}

func (m *PostMsg) SetPermissionData(b []byte) error {
	if err := checkBuffer15("permission data", b); err != nil {
		return err
	}
	m.touch()
	m.permData = b
	return nil
}

func (m *PostMsg) PartNum() (uint16, bool) {
	if m.partNum == nil {
		return 0, false
	}
	return *m.partNum, true
}

func (m *PostMsg) SetPartNum(n uint16) error {
	if err := checkPartNum(n); err != nil {
		return err
	}
	m.touch()
	m.partNum = &n
	return nil
}

func (m *PostMsg) PostUserRights() (uint16, bool) {
	if m.postUserRights == nil {
		return 0, false
	}
	return *m.postUserRights, true
}

func (m *PostMsg) SetPostUserRights(rights uint16) error {
	if rights > 0x7FFF {
		return newError(ErrorCodeInvalidArgument, "postUserRights "+strconv.Itoa(int(rights))+" exceeds 32767")
	}
	m.touch()
	m.postUserRights = &rights
	return nil
}

func (m *PostMsg) Complete() bool   { return m.complete }
func (m *PostMsg) SolicitAck() bool { return m.solicitAck }

func (m *PostMsg) SetComplete(v bool) {
	m.touch()
	m.complete = v
}

func (m *PostMsg) SetSolicitAck(v bool) {
	m.touch()
	m.solicitAck = v
}

func (m *PostMsg) Clear() {
	*m = PostMsg{}
}

func (m *PostMsg) classFlags() (f uint16) {
	if m.postID != nil {
		f |= kPostHasPostID
	}
	if m.seqNum != nil {
		f |= kPostHasSeqNum
	}
	if m.complete {
		f |= kPostComplete
	}
	if m.solicitAck {
		f |= kPostSolicitAck
	}
	if m.permData != nil {
		f |= kPostHasPermData
	}
	if m.partNum != nil {
		f |= kPostHasPartNum
	}
	if m.postUserRights != nil {
		f |= kPostHasUserRights
	}
	return
}

func (m *PostMsg) encodeFields(w *codec.Writer) {
	m.postUserInfo.encode(w)
	if m.seqNum != nil {
		w.PutUint32(*m.seqNum)
	}
	if m.postID != nil {
		w.PutUint32(*m.postID)
	}
	if m.permData != nil {
		w.PutBuffer15(m.permData)
	}
	if m.partNum != nil {
		w.PutU15rb(*m.partNum)
	}
	if m.postUserRights != nil {
		w.PutU15rb(*m.postUserRights)
	}
}

func (m *PostMsg) decodeFields(r *codec.Reader, flags uint16) {
	m.postUserInfo = readPostUserInfo(r)
	if flags&kPostHasSeqNum != 0 {
		n := r.Uint32()
		m.seqNum = &n
	}
	if flags&kPostHasPostID != 0 {
		id := r.Uint32()
		m.postID = &id
	}
	if flags&kPostHasPermData != 0 {
		m.permData = r.Buffer15()
	}
	if flags&kPostHasPartNum != 0 {
		n := r.U15rb()
		m.partNum = &n
	}
	if flags&kPostHasUserRights != 0 {
		n := r.U15rb()
		m.postUserRights = &n
	}
	m.complete = flags&kPostComplete != 0
	m.solicitAck = flags&kPostSolicitAck != 0
}

func (m *PostMsg) renderFields(r *renderer) {
	renderFlag(r, m.complete, "MessageComplete")
	renderFlag(r, m.solicitAck, "SolicitAck")
	if m.seqNum != nil {
		r.line("seqNum=\"" + strconv.FormatUint(uint64(*m.seqNum), 10) + "\"")
	}
	if m.postID != nil {
		r.line("postId=\"" + strconv.FormatUint(uint64(*m.postID), 10) + "\"")
	}
	if m.partNum != nil {
		r.line("partNum=\"" + strconv.Itoa(int(*m.partNum)) + "\"")
	}
	if m.postUserRights != nil {
		r.line("postUserRights=\"" + strconv.Itoa(int(*m.postUserRights)) + "\"")
	}
	renderPermData(r, m.permData)
	m.postUserInfo.render(r)
}

func (m *PostMsg) encodeTo(w *codec.Writer) { encodeMsg(w, m) }
func (m *PostMsg) render(r *renderer)       { renderMsg(r, m) }

func (m *PostMsg) Encode(buf []byte) (int, error) {
	return encodeInto(m, buf)
}

func (m *PostMsg) Marshal() ([]byte, error) {
	return marshalObject(m)
}

func (m *PostMsg) Clone() (*PostMsg, error) {
	o, err := cloneOf(m)
	if err != nil {
		return nil, err
	}
	return o.(*PostMsg), nil
}

func (m *PostMsg) String() string {
	return stringOf(m)
}

func (m *PostMsg) StringWithDictionary(dict dictionary.Dictionary) string {
	return stringWithDictionaryOf(m, dict)
}

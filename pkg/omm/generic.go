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
	kGenericHasExtendedHeader = 0x001
	kGenericHasPermData       = 0x002
	kGenericHasMsgKey         = 0x004
	kGenericHasSeqNum         = 0x008
	kGenericComplete          = 0x010
	kGenericHasSecondarySeq   = 0x020
	kGenericHasPartNum        = 0x040
	kGenericProviderDriven    = 0x080
)

// GenericMsg is a bidirectional message on an open stream. Multi-part exchanges
// mark their last part with Complete.
type GenericMsg struct {
	msgBase
	seqNum          *uint32
	secondarySeqNum *uint32
	partNum         *uint16
	permData        []byte
	complete        bool
	providerDriven  bool
}

func NewGenericMsg() *GenericMsg {
	return &GenericMsg{}
}

func (m *GenericMsg) Class() MsgClass    { return MsgClassGeneric }
func (m *GenericMsg) keyFlag() uint16    { return kGenericHasMsgKey }
func (m *GenericMsg) extHdrFlag() uint16 { return kGenericHasExtendedHeader }

func (m *GenericMsg) SeqNum() (uint32, bool) {
	if m.seqNum == nil {
		return 0, false
	}
	return *m.seqNum, true
}

func (m *GenericMsg) SetSeqNum(n uint32) {
	m.touch()
	m.seqNum = &n
}

func (m *GenericMsg) SecondarySeqNum() (uint32, bool) {
	if m.secondarySeqNum == nil {
		return 0, false
	}
	return *m.secondarySeqNum, true
}

func (m *GenericMsg) SetSecondarySeqNum(n uint32) {
	m.touch()
	m.secondarySeqNum = &n
}

func (m *GenericMsg) PartNum() (uint16, bool) {
	if m.partNum == nil {
		return 0, false
	}
	return *m.partNum, true
}

func (m *GenericMsg) SetPartNum(n uint16) error {
	if err := checkPartNum(n); err != nil {
		return err
	}
	m.touch()
	m.partNum = &n
	return nil
}

func (m *GenericMsg) PermissionData() ([]byte, bool) {
	return m.permData, m.permData != nil
}

func (m *GenericMsg) SetPermissionData(b []byte) error {
	if err := checkBuffer15("permission data", b); err != nil {
		return err
	}
	m.touch()
	m.permData = b
	return nil
}

func (m *GenericMsg) Complete() bool       { return m.complete }
func (m *GenericMsg) ProviderDriven() bool { return m.providerDriven }

func (m *GenericMsg) SetComplete(v bool) {
	m.touch()
	m.complete = v
}

func (m *GenericMsg) SetProviderDriven(v bool) {
	m.touch()
	m.providerDriven = v
}

func (m *GenericMsg) Clear() {
	*m = GenericMsg{}
}

func (m *GenericMsg) classFlags() (f uint16) {
	if m.permData != nil {
		f |= kGenericHasPermData
	}
	if m.seqNum != nil {
		f |= kGenericHasSeqNum
	}
	if m.complete {
		f |= kGenericComplete
	}
	if m.secondarySeqNum != nil {
		f |= kGenericHasSecondarySeq
	}
	if m.partNum != nil {
		f |= kGenericHasPartNum
	}
	if m.providerDriven {
		f |= kGenericProviderDriven
	}
	return
}

func (m *GenericMsg) encodeFields(w *codec.Writer) {
	if m.seqNum != nil {
		w.PutUint32(*m.seqNum)
	}
	if m.secondarySeqNum != nil {
		w.PutUint32(*m.secondarySeqNum)
	}
	if m.partNum != nil {
		w.PutU15rb(*m.partNum)
	}
	if m.permData != nil {
		w.PutBuffer15(m.permData)
	}
}

func (m *GenericMsg) decodeFields(r *codec.Reader, flags uint16) {
	if flags&kGenericHasSeqNum != 0 {
		n := r.Uint32()
		m.seqNum = &n
	}
	if flags&kGenericHasSecondarySeq != 0 {
		n := r.Uint32()
		m.secondarySeqNum = &n
	}
	if flags&kGenericHasPartNum != 0 {
		n := r.U15rb()
		m.partNum = &n
	}
	if flags&kGenericHasPermData != 0 {
		m.permData = r.Buffer15()
	}
	m.complete = flags&kGenericComplete != 0
	m.providerDriven = flags&kGenericProviderDriven != 0
}

func (m *GenericMsg) renderFields(r *renderer) {
	renderFlag(r, m.complete, "MessageComplete")
	renderFlag(r, m.providerDriven, "ProviderDriven")
	if m.seqNum != nil {
		r.line("seqNum=\"" + strconv.FormatUint(uint64(*m.seqNum), 10) + "\"")
	}
	if m.secondarySeqNum != nil {
		r.line("secondarySeqNum=\"" + strconv.FormatUint(uint64(*m.secondarySeqNum), 10) + "\"")
	}
	if m.partNum != nil {
		r.line("partNum=\"" + strconv.Itoa(int(*m.partNum)) + "\"")
	}
	renderPermData(r, m.permData)
}

func (m *GenericMsg) encodeTo(w *codec.Writer) { encodeMsg(w, m) }
func (m *GenericMsg) render(r *renderer)       { renderMsg(r, m) }

func (m *GenericMsg) Encode(buf []byte) (int, error) {
	return encodeInto(m, buf)
}

func (m *GenericMsg) Marshal() ([]byte, error) {
	return marshalObject(m)
}

func (m *GenericMsg) Clone() (*GenericMsg, error) {
	o, err := cloneOf(m)
	if err != nil {
		return nil, err
	}
	return o.(*GenericMsg), nil
}

func (m *GenericMsg) String() string {
	return stringOf(m)
}

func (m *GenericMsg) StringWithDictionary(dict dictionary.Dictionary) string {
	return stringWithDictionaryOf(m, dict)
}

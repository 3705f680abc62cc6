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
	kAckHasExtendedHeader = 0x001
	kAckHasText           = 0x002
	kAckPrivateStream     = 0x004
	kAckHasSeqNum         = 0x008
	kAckHasMsgKey         = 0x010
	kAckHasNakCode        = 0x020
)

type NakCode uint8

const (
	NakCodeNone           NakCode = 0
	NakCodeAccessDenied   NakCode = 1
	NakCodeDeniedBySource NakCode = 2
	NakCodeSourceDown     NakCode = 3
	NakCodeSourceUnknown  NakCode = 4
	NakCodeNoResources    NakCode = 5
	NakCodeNoResponse     NakCode = 6
	NakCodeGatewayDown    NakCode = 7
	NakCodeSymbolUnknown  NakCode = 10
	NakCodeNotOpen        NakCode = 11
	NakCodeInvalidContent NakCode = 12
)

var nakCodeNames = map[NakCode]string{
	NakCodeNone:           "NoneCode",
	NakCodeAccessDenied:   "AccessDenied",
	NakCodeDeniedBySource: "DeniedBySource",
	NakCodeSourceDown:     "SourceDown",
	NakCodeSourceUnknown:  "SourceUnknown",
	NakCodeNoResources:    "NoResources",
	NakCodeNoResponse:     "NoResponse",
	NakCodeGatewayDown:    "GatewayDown",
	NakCodeSymbolUnknown:  "SymbolUnknown",
	NakCodeNotOpen:        "NotOpen",
	NakCodeInvalidContent: "InvalidContent",
}

func (c NakCode) String() string {
	if s, ok := nakCodeNames[c]; ok {
		return s
	}
	return "Unknown NakCode value " + strconv.Itoa(int(c))
}

// AckMsg answers a PostMsg that asked for an acknowledgement. A set NakCode
// turns it into a negative acknowledgement; Text explains either outcome.
type AckMsg struct {
	msgBase
	ackID         uint32
	nakCode       *NakCode
	text          *string
	seqNum        *uint32
	privateStream bool
}

func NewAckMsg() *AckMsg {
	return &AckMsg{}
}

func (m *AckMsg) Class() MsgClass    { return MsgClassAck }
func (m *AckMsg) keyFlag() uint16    { return kAckHasMsgKey }
func (m *AckMsg) extHdrFlag() uint16 { return kAckHasExtendedHeader }

func (m *AckMsg) AckID() uint32 {
	return m.ackID
}

func (m *AckMsg) SetAckID(id uint32) {
	m.touch()
	m.ackID = id
}

func (m *AckMsg) NakCode() (NakCode, bool) {
	if m.nakCode == nil {
		return NakCodeNone, false
	}
	return *m.nakCode, true
}

func (m *AckMsg) SetNakCode(c NakCode) {
	m.touch()
	m.nakCode = &c
}

func (m *AckMsg) Text() (string, bool) {
	if m.text == nil {
		return "", false
	}
	return *m.text, true
}

func (m *AckMsg) SetText(text string) error {
	if len(text) > 0x7FFF {
		return newError(ErrorCodeInvalidArgument, "text longer than 32767 bytes")
	}
	m.touch()
	m.text = &text
	return nil
}

func (m *AckMsg) SeqNum() (uint32, bool) {
	if m.seqNum == nil {
		return 0, false
	}
	return *m.seqNum, true
}

func (m *AckMsg) SetSeqNum(n uint32) {
	m.touch()
	m.seqNum = &n
}

func (m *AckMsg) PrivateStream() bool {
	return m.privateStream
}

func (m *AckMsg) SetPrivateStream(v bool) {
	m.touch()
	m.privateStream = v
}

func (m *AckMsg) Clear() {
	*m = AckMsg{}
}

func (m *AckMsg) classFlags() (f uint16) {
	if m.text != nil {
		f |= kAckHasText
	}
	if m.privateStream {
		f |= kAckPrivateStream
	}
	if m.seqNum != nil {
		f |= kAckHasSeqNum
	}
	if m.nakCode != nil {
		f |= kAckHasNakCode
	}
	return
}

func (m *AckMsg) encodeFields(w *codec.Writer) {
	w.PutUint32(m.ackID)
	if m.nakCode != nil {
		w.PutUint8(uint8(*m.nakCode))
	}
	if m.text != nil {
		w.PutString15(*m.text)
	}
	if m.seqNum != nil {
		w.PutUint32(*m.seqNum)
	}
}

func (m *AckMsg) decodeFields(r *codec.Reader, flags uint16) {
	m.ackID = r.Uint32()
	if flags&kAckHasNakCode != 0 {
		c := NakCode(r.Uint8())
		m.nakCode = &c
	}
	if flags&kAckHasText != 0 {
		text := string(r.Buffer15())
		m.text = &text
	}
	if flags&kAckHasSeqNum != 0 {
		n := r.Uint32()
		m.seqNum = &n
	}
	m.privateStream = flags&kAckPrivateStream != 0
}

func (m *AckMsg) renderFields(r *renderer) {
	r.line("ackId=\"" + strconv.FormatUint(uint64(m.ackID), 10) + "\"")
	renderFlag(r, m.privateStream, "privateStream")
	if m.nakCode != nil {
		r.line("nackCode=\"" + m.nakCode.String() + "\"")
	}
	if m.text != nil {
		r.line("text=\"" + *m.text + "\"")
	}
	if m.seqNum != nil {
		r.line("seqNum=\"" + strconv.FormatUint(uint64(*m.seqNum), 10) + "\"")
	}
}

func (m *AckMsg) encodeTo(w *codec.Writer) { encodeMsg(w, m) }
func (m *AckMsg) render(r *renderer)       { renderMsg(r, m) }

func (m *AckMsg) Encode(buf []byte) (int, error) {
	return encodeInto(m, buf)
}

func (m *AckMsg) Marshal() ([]byte, error) {
	return marshalObject(m)
}

func (m *AckMsg) Clone() (*AckMsg, error) {
	o, err := cloneOf(m)
	if err != nil {
		return nil, err
	}
	return o.(*AckMsg), nil
}

func (m *AckMsg) String() string {
	return stringOf(m)
}

func (m *AckMsg) StringWithDictionary(dict dictionary.Dictionary) string {
	return stringWithDictionaryOf(m, dict)
}

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
	"fmt"
	"net"
	"strconv"

	"github.com/golang/glog"

	"rwf/pkg/codec"
	"rwf/pkg/dictionary"
)

type MsgClass uint8

const (
	MsgClassRefresh MsgClass = 2
	MsgClassStatus  MsgClass = 3
	MsgClassUpdate  MsgClass = 4
	MsgClassAck     MsgClass = 6
	MsgClassGeneric MsgClass = 7
	MsgClassPost    MsgClass = 8
)

var msgClassNames = map[MsgClass]string{
	MsgClassRefresh: "RefreshMsg",
	MsgClassStatus:  "StatusMsg",
	MsgClassUpdate:  "UpdateMsg",
	MsgClassAck:     "AckMsg",
	MsgClassGeneric: "GenericMsg",
	MsgClassPost:    "PostMsg",
}

func (c MsgClass) String() string {
	if s, ok := msgClassNames[c]; ok {
		return s
	}
	return "Unknown MsgClass " + strconv.Itoa(int(c))
}

// Well known domain types.
const (
	DomainLogin                 uint8 = 1
	DomainSource                uint8 = 4
	DomainDictionary            uint8 = 5
	DomainMarketPrice           uint8 = 6
	DomainMarketByOrder         uint8 = 7
	DomainMarketByPrice         uint8 = 8
	DomainMarketMaker           uint8 = 9
	DomainSymbolList            uint8 = 10
	DomainServiceProviderStatus uint8 = 11
	DomainHistory               uint8 = 12
	DomainHeadline              uint8 = 13
	DomainStory                 uint8 = 14
	DomainReplayHeadline        uint8 = 15
	DomainReplayStory           uint8 = 16
	DomainTransaction           uint8 = 17
	DomainYieldCurve            uint8 = 22
	DomainContribution          uint8 = 27
	DomainProviderAdmin         uint8 = 29
	DomainAnalytics             uint8 = 30
	DomainReference             uint8 = 31
	DomainSystem                uint8 = 127
)

var domainNames = map[uint8]string{
	DomainLogin:                 "Login Domain",
	DomainSource:                "Directory Domain",
	DomainDictionary:            "Dictionary Domain",
	DomainMarketPrice:           "MarketPrice Domain",
	DomainMarketByOrder:         "MarketByOrder Domain",
	DomainMarketByPrice:         "MarketByPrice Domain",
	DomainMarketMaker:           "MarketMaker Domain",
	DomainSymbolList:            "SymbolList Domain",
	DomainServiceProviderStatus: "ServiceProviderStatus Domain",
	DomainHistory:               "History Domain",
	DomainHeadline:              "Headline Domain",
	DomainStory:                 "Story Domain",
	DomainReplayHeadline:        "ReplayHeadline Domain",
	DomainReplayStory:           "ReplayStory Domain",
	DomainTransaction:           "Transaction Domain",
	DomainYieldCurve:            "YieldCurve Domain",
	DomainContribution:          "Contribution Domain",
	DomainProviderAdmin:         "ProviderAdmin Domain",
	DomainAnalytics:             "Analytics Domain",
	DomainReference:             "Reference Domain",
	DomainSystem:                "System Domain",
}

func DomainName(domain uint8) string {
	if s, ok := domainNames[domain]; ok {
		return s
	}
	return "Unknown Domain " + strconv.Itoa(int(domain))
}

// PostUserInfo identifies the publisher of a posted or republished item.
type PostUserInfo struct {
	Address uint32
	UserID  uint32
}

// AddressString renders Address as a dotted IPv4 address.
func (p PostUserInfo) AddressString() string {
	return net.IPv4(byte(p.Address>>24), byte(p.Address>>16), byte(p.Address>>8), byte(p.Address)).String()
}

func (p PostUserInfo) encode(w *codec.Writer) {
	w.PutUint32(p.Address)
	w.PutUint32(p.UserID)
}

func readPostUserInfo(r *codec.Reader) PostUserInfo {
	return PostUserInfo{Address: r.Uint32(), UserID: r.Uint32()}
}

func (p PostUserInfo) render(r *renderer) {
	r.line("publisherIdUserId=\"" + strconv.FormatUint(uint64(p.UserID), 10) + "\"")
	r.line("publisherIdUserAddress=\"" + p.AddressString() + "\"")
}

// Msg is implemented by the six message classes. A Msg may itself be the load
// of an entry or the payload of another message.
type Msg interface {
	object
	Class() MsgClass
	DomainType() uint8
	StreamID() int32
	HasMsgKey() bool
	Name() (string, bool)
	NameType() (uint8, bool)
	ServiceID() (uint16, bool)
	Filter() (uint32, bool)
	Identifier() (int32, bool)
	Attrib() Data
	Payload() Data
	ExtendedHeader() ([]byte, bool)
	Lifecycle() LifecycleState
	Encode(buf []byte) (int, error)
	Marshal() ([]byte, error)
	String() string
	StringWithDictionary(dict dictionary.Dictionary) string
}

// msgCodec is the class specific half of a message.
type msgCodec interface {
	Msg
	base() *msgBase
	keyFlag() uint16
	extHdrFlag() uint16
	classFlags() uint16
	encodeFields(w *codec.Writer)
	decodeFields(r *codec.Reader, flags uint16)
	renderFields(r *renderer)
}

// msgBase holds what every message class shares.
type msgBase struct {
	lifecycle
	domainType uint8
	streamID   int32
	key        msgKey
	extHdr     []byte
	payload    Data
}

func (m *msgBase) base() *msgBase {
	return m
}

func (m *msgBase) DataType() codec.DataType {
	return codec.DataTypeMsg
}

func (m *msgBase) DomainType() uint8 {
	return m.domainType
}

func (m *msgBase) SetDomainType(domain uint8) {
	m.touch()
	m.domainType = domain
}

func (m *msgBase) StreamID() int32 {
	return m.streamID
}

func (m *msgBase) SetStreamID(id int32) {
	m.touch()
	m.streamID = id
}

func (m *msgBase) HasMsgKey() bool {
	return m.key.present()
}

func (m *msgBase) Name() (string, bool) {
	if m.key.name == nil {
		return "", false
	}
	return *m.key.name, true
}

func (m *msgBase) SetName(name string) error {
	if len(name) > 0x7FFF {
		return newError(ErrorCodeInvalidArgument, "name longer than 32767 bytes")
	}
	m.touch()
	m.key.name = &name
	return nil
}

func (m *msgBase) NameType() (uint8, bool) {
	if m.key.nameType == nil {
		return 0, false
	}
	return *m.key.nameType, true
}

func (m *msgBase) SetNameType(t uint8) {
	m.touch()
	m.key.nameType = &t
}

func (m *msgBase) ServiceID() (uint16, bool) {
	if m.key.serviceID == nil {
		return 0, false
	}
	return *m.key.serviceID, true
}

func (m *msgBase) SetServiceID(id uint16) {
	m.touch()
	m.key.serviceID = &id
}

func (m *msgBase) Filter() (uint32, bool) {
	if m.key.filter == nil {
		return 0, false
	}
	return *m.key.filter, true
}

func (m *msgBase) SetFilter(f uint32) {
	m.touch()
	m.key.filter = &f
}

func (m *msgBase) Identifier() (int32, bool) {
	if m.key.identifier == nil {
		return 0, false
	}
	return *m.key.identifier, true
}

func (m *msgBase) SetIdentifier(id int32) {
	m.touch()
	m.key.identifier = &id
}

// Attrib returns the key attrib, NoData when unset.
func (m *msgBase) Attrib() Data {
	return orNoData(m.key.attrib)
}

// SetAttrib sets the key attrib. NoData removes it.
func (m *msgBase) SetAttrib(d Data) error {
	if err := checkContainerLoad("attrib", d); err != nil {
		return err
	}
	m.touch()
	if isNoData(d) {
		m.key.attrib = nil
	} else {
		m.key.attrib = d
	}
	return nil
}

func (m *msgBase) Payload() Data {
	return orNoData(m.payload)
}

func (m *msgBase) SetPayload(d Data) error {
	if err := checkContainerLoad("payload", d); err != nil {
		return err
	}
	m.touch()
	m.payload = orNoData(d)
	return nil
}

func (m *msgBase) ExtendedHeader() ([]byte, bool) {
	return m.extHdr, m.extHdr != nil
}

func (m *msgBase) SetExtendedHeader(b []byte) error {
	if len(b) > 0x7FFF {
		return newError(ErrorCodeInvalidArgument, "extended header longer than 32767 bytes")
	}
	m.touch()
	m.extHdr = b
	return nil
}

// DecodeMsg binds b to a message of the class named in its header.
func DecodeMsg(b []byte, major, minor uint8, dict dictionary.Dictionary) (Msg, error) {
	if err := checkVersion(major); err != nil {
		return nil, err
	}
	return decodeMsg(b, decodeCtx{major: major, minor: minor, dict: dict})
}

func newMsgOf(class MsgClass) msgCodec {
	switch class {
	case MsgClassRefresh:
		return NewRefreshMsg()
	case MsgClassStatus:
		return NewStatusMsg()
	case MsgClassUpdate:
		return NewUpdateMsg()
	case MsgClassAck:
		return NewAckMsg()
	case MsgClassGeneric:
		return NewGenericMsg()
	case MsgClassPost:
		return NewPostMsg()
	}
	return nil
}

func decodeMsg(b []byte, ctx decodeCtx) (Msg, error) {
	r := codec.NewReader(b)
	hdr := r.Bytes(int(r.Uint16()))
	if err := r.Err(); err != nil {
		return nil, err
	}
	h := codec.NewReader(hdr)
	class := MsgClass(h.Uint8())
	domain := h.Uint8()
	stream := h.Int32()
	flags := h.U15rb()
	ctByte := h.Uint8()
	if err := h.Err(); err != nil {
		return nil, err
	}
	ct, err := codec.ContainerTypeFromWire(ctByte)
	if err != nil {
		return nil, err
	}
	m := newMsgOf(class)
	if m == nil {
		return nil, fmt.Errorf("%w: message class %d", codec.ErrInvalidData, class)
	}
	mb := m.base()
	mb.domainType = domain
	mb.streamID = stream
	m.decodeFields(h, flags)
	if flags&m.extHdrFlag() != 0 {
		mb.extHdr = h.Buffer15()
	}
	if err = h.Err(); err != nil {
		return nil, err
	}
	// header bytes past the known fields belong to a newer minor version
	if n := h.Remaining(); n > 0 && glog.V(2) {
		glog.Infof("%s: skipped %d unknown header bytes (wire %d.%d)", class, n, ctx.major, ctx.minor)
	}
	if flags&m.keyFlag() != 0 {
		if err = mb.key.decode(r.Buffer32(), ctx); err != nil {
			return nil, err
		}
		if r.Err() != nil {
			return nil, r.Err()
		}
	}
	if mb.payload, err = ctx.decode(ct, r.Rest()); err != nil {
		return nil, err
	}
	mb.bind(b, ctx)
	return m, nil
}

// encodeMsg always writes from the fields, so changes made to a held payload
// or attrib after decoding are picked up.
func encodeMsg(w *codec.Writer, m msgCodec) {
	mb := m.base()
	ct, err := codec.ContainerTypeToWire(dataTypeOf(mb.payload))
	if err != nil {
		w.Fail(err)
		return
	}
	flags := m.classFlags()
	if mb.key.present() {
		flags |= m.keyFlag()
	}
	if mb.extHdr != nil {
		flags |= m.extHdrFlag()
	}
	start := w.Len()
	w.PutUint16(0)
	w.PutUint8(uint8(m.Class()))
	w.PutUint8(mb.domainType)
	w.PutInt32(mb.streamID)
	w.PutU15rb(flags)
	w.PutUint8(ct)
	m.encodeFields(w)
	if mb.extHdr != nil {
		w.PutBuffer15(mb.extHdr)
	}
	if w.Err() != nil {
		return
	}
	hlen := w.Len() - start - 2
	if hlen > 0xFFFF {
		w.Fail(fmt.Errorf("%w: message header length %d", codec.ErrValueOutOfRange, hlen))
		return
	}
	w.SetUint16(start, uint16(hlen))
	if mb.key.present() {
		km := w.Reserve()
		mb.key.encode(w)
		w.Finish(km)
	}
	encodeLoad(w, mb.payload)
}

func renderMsg(r *renderer, m msgCodec) {
	mb := m.base()
	name := m.Class().String()
	r.line(name)
	r.push()
	r.line("streamId=\"" + strconv.Itoa(int(mb.streamID)) + "\"")
	r.line("domain=\"" + DomainName(mb.domainType) + "\"")
	m.renderFields(r)
	mb.key.render(r)
	if mb.extHdr != nil {
		r.line("extendedHeader=\"" + hexString(mb.extHdr) + "\"")
	}
	r.entry("Payload", "PayloadEnd", mb.payload, nil)
	r.pop()
	r.line(name + "End")
}

func renderFlag(r *renderer, set bool, name string) {
	if set {
		r.line(name)
	}
}

func renderPermData(r *renderer, b []byte) {
	if b != nil {
		r.line("permissionData=\"" + hexString(b) + "\"")
	}
}

// CloneMsg clones any message class.
func CloneMsg(m Msg) (Msg, error) {
	o, err := cloneOf(m)
	if err != nil {
		return nil, err
	}
	return o.(Msg), nil
}

func checkPartNum(n uint16) error {
	if n > 0x7FFF {
		return newError(ErrorCodeInvalidArgument, "partNum "+strconv.Itoa(int(n))+" exceeds 32767")
	}
	return nil
}

func checkBuffer15(what string, b []byte) error {
	if len(b) > 0x7FFF {
		return newError(ErrorCodeInvalidArgument, what+" longer than 32767 bytes")
	}
	return nil
}

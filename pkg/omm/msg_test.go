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
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rwf/pkg/codec"
	"rwf/pkg/dictionary"
)

func decodeMsgBytes(t testing.TB, m Msg, dict dictionary.Dictionary) Msg {
	t.Helper()
	b, err := m.Marshal()
	require.NoError(t, err)
	got, err := DecodeMsg(b, codec.MajorVersion, codec.MinorVersion, dict)
	require.NoError(t, err)
	require.Equal(t, m.Class(), got.Class())
	return got
}

func newRefresh(t testing.TB) *RefreshMsg {
	t.Helper()
	m := NewRefreshMsg()
	m.SetStreamID(5)
	m.SetDomainType(DomainMarketPrice)
	require.NoError(t, m.SetName("IBM.N"))
	m.SetServiceID(1)
	require.NoError(t, m.SetState(codec.NewState(codec.StreamStateOpen, codec.DataStateOk, codec.StatusCodeNone, "Refresh Completed")))
	require.NoError(t, m.SetItemGroup([]byte{0, 1}))
	m.SetSolicited(true)
	m.SetComplete(true)
	require.NoError(t, m.SetPayload(priceList(t)))
	return m
}

func TestRefreshRoundTrip(t *testing.T) {
	dict := loadDict(t)
	m := newRefresh(t)
	m.SetSeqNum(42)
	m.SetQoS(codec.QoS{Timeliness: codec.QoSTimelinessDelayed, Rate: codec.QoSRateTimeConflated, TimeInfo: 15, RateInfo: 500})
	require.NoError(t, m.SetPartNum(3))
	require.NoError(t, m.SetPermissionData([]byte{0x03, 0x04}))
	m.SetPublisherID(0x0A000001, 99)
	m.SetClearCache(true)
	m.SetPrivateStream(true)
	m.SetNameType(1)
	m.SetFilter(7)
	m.SetIdentifier(-3)
	attrib := NewElementList()
	require.NoError(t, attrib.Add("ApplicationId", codec.Ascii("256")))
	require.NoError(t, m.SetAttrib(attrib))
	require.NoError(t, m.SetExtendedHeader([]byte("ext")))

	got := decodeMsgBytes(t, m, dict).(*RefreshMsg)
	assert.Equal(t, StateWireBound, got.Lifecycle())
	assert.Equal(t, int32(5), got.StreamID())
	assert.Equal(t, DomainMarketPrice, got.DomainType())
	n, ok := got.SeqNum()
	assert.True(t, ok)
	assert.Equal(t, uint32(42), n)
	assert.Equal(t, m.State(), got.State())
	assert.Equal(t, []byte{0, 1}, got.ItemGroup())
	q, ok := got.QoS()
	assert.True(t, ok)
	assert.Equal(t, uint16(500), q.RateInfo)
	part, ok := got.PartNum()
	assert.True(t, ok)
	assert.Equal(t, uint16(3), part)
	perm, ok := got.PermissionData()
	assert.True(t, ok)
	assert.Equal(t, []byte{0x03, 0x04}, perm)
	pub, ok := got.PublisherID()
	assert.True(t, ok)
	assert.Equal(t, "10.0.0.1", pub.AddressString())
	assert.True(t, got.Solicited())
	assert.True(t, got.Complete())
	assert.True(t, got.ClearCache())
	assert.False(t, got.DoNotCache())
	assert.True(t, got.PrivateStream())

	assert.True(t, got.HasMsgKey())
	name, _ := got.Name()
	assert.Equal(t, "IBM.N", name)
	nt, _ := got.NameType()
	assert.Equal(t, uint8(1), nt)
	svc, _ := got.ServiceID()
	assert.Equal(t, uint16(1), svc)
	f, _ := got.Filter()
	assert.Equal(t, uint32(7), f)
	id, _ := got.Identifier()
	assert.Equal(t, int32(-3), id)
	assert.Equal(t, codec.DataTypeElementList, got.Attrib().DataType())
	ext, ok := got.ExtendedHeader()
	assert.True(t, ok)
	assert.Equal(t, []byte("ext"), ext)
	require.Equal(t, codec.DataTypeFieldList, got.Payload().DataType())
	assert.Equal(t, kPriceListText, got.Payload().(*FieldList).String())
}

func TestUpdateRoundTrip(t *testing.T) {
	m := NewUpdateMsg()
	m.SetStreamID(-1)
	m.SetUpdateType(1)
	require.NoError(t, m.SetConflated(3, 250))
	m.SetDoNotConflate(true)
	m.SetDoNotRipple(true)
	m.SetPostUserInfo(0x7F000001, 12)

	got := decodeMsgBytes(t, m, nil).(*UpdateMsg)
	assert.Equal(t, int32(-1), got.StreamID())
	assert.Equal(t, uint8(1), got.UpdateType())
	ci, ok := got.Conflated()
	assert.True(t, ok)
	assert.Equal(t, ConflationInfo{Count: 3, Time: 250}, ci)
	assert.False(t, got.DoNotCache())
	assert.True(t, got.DoNotConflate())
	assert.True(t, got.DoNotRipple())
	pui, ok := got.PostUserInfo()
	assert.True(t, ok)
	assert.Equal(t, uint32(12), pui.UserID)
	_, ok = got.SeqNum()
	assert.False(t, ok)
	_, ok = got.PermissionData()
	assert.False(t, ok)
	assert.False(t, got.HasMsgKey())
	assert.Equal(t, NoData{}, got.Payload())
	assert.Equal(t, NoData{}, got.Attrib())

	assert.True(t, IsErrorCode(m.SetConflated(0x8000, 0), ErrorCodeInvalidArgument))
}

func TestStatusRoundTrip(t *testing.T) {
	m := NewStatusMsg()
	m.SetDomainType(DomainLogin)
	got := decodeMsgBytes(t, m, nil).(*StatusMsg)
	_, ok := got.State()
	assert.False(t, ok)
	_, ok = got.ItemGroup()
	assert.False(t, ok)

	require.NoError(t, m.SetState(codec.NewState(codec.StreamStateClosed, codec.DataStateSuspect, codec.StatusCodeNotFound, "gone")))
	require.NoError(t, m.SetItemGroup([]byte{}))
	m.SetClearCache(true)
	got = decodeMsgBytes(t, m, nil).(*StatusMsg)
	s, ok := got.State()
	assert.True(t, ok)
	assert.Equal(t, "gone", s.Text)
	assert.Equal(t, codec.StreamStateClosed, s.StreamState)
	g, ok := got.ItemGroup()
	assert.True(t, ok)
	assert.Empty(t, g)
	assert.True(t, got.ClearCache())
	assert.False(t, got.PrivateStream())
}

func TestGenericRoundTrip(t *testing.T) {
	m := NewGenericMsg()
	m.SetSecondarySeqNum(9)
	require.NoError(t, m.SetPartNum(0x7FFF))
	m.SetComplete(true)
	m.SetProviderDriven(true)
	require.NoError(t, m.SetPayload(priceList(t)))

	got := decodeMsgBytes(t, m, loadDict(t)).(*GenericMsg)
	_, ok := got.SeqNum()
	assert.False(t, ok)
	n, ok := got.SecondarySeqNum()
	assert.True(t, ok)
	assert.Equal(t, uint32(9), n)
	part, _ := got.PartNum()
	assert.Equal(t, uint16(0x7FFF), part)
	assert.True(t, got.Complete())
	assert.True(t, got.ProviderDriven())

	assert.True(t, IsErrorCode(m.SetPartNum(0x8000), ErrorCodeInvalidArgument))
}

func TestPostRoundTrip(t *testing.T) {
	m := NewPostMsg()
	got := decodeMsgBytes(t, m, nil).(*PostMsg)
	assert.Equal(t, PostUserInfo{}, got.PublisherID())
	_, ok := got.PostID()
	assert.False(t, ok)

	m.SetPublisherID(0xC0A80001, 7)
	m.SetPostID(11)
	m.SetSeqNum(12)
	require.NoError(t, m.SetPostUserRights(PostUserRightsCreate|PostUserRightsDelete))
	m.SetSolicitAck(true)
	inner := NewUpdateMsg()
	inner.SetStreamID(5)
	require.NoError(t, inner.SetPayload(priceList(t)))
	require.NoError(t, m.SetPayload(inner))

	got = decodeMsgBytes(t, m, loadDict(t)).(*PostMsg)
	assert.Equal(t, PostUserInfo{Address: 0xC0A80001, UserID: 7}, got.PublisherID())
	id, _ := got.PostID()
	assert.Equal(t, uint32(11), id)
	rights, ok := got.PostUserRights()
	assert.True(t, ok)
	assert.Equal(t, uint16(3), rights)
	assert.True(t, got.SolicitAck())
	assert.False(t, got.Complete())

	nested, ok := got.Payload().(*UpdateMsg)
	require.True(t, ok)
	assert.Equal(t, int32(5), nested.StreamID())
	assert.Equal(t, 2, nested.Payload().(*FieldList).Size())
}

func TestAckRoundTrip(t *testing.T) {
	m := NewAckMsg()
	m.SetAckID(1)
	require.NoError(t, m.SetText("accepted"))
	got := decodeMsgBytes(t, m, nil).(*AckMsg)
	assert.Equal(t, uint32(1), got.AckID())
	_, ok := got.NakCode()
	assert.False(t, ok)
	text, ok := got.Text()
	assert.True(t, ok)
	assert.Equal(t, "accepted", text)

	m.SetNakCode(NakCodeSymbolUnknown)
	m.SetPrivateStream(true)
	got = decodeMsgBytes(t, m, nil).(*AckMsg)
	c, ok := got.NakCode()
	assert.True(t, ok)
	assert.Equal(t, NakCodeSymbolUnknown, c)
	assert.Equal(t, "SymbolUnknown", c.String())
	assert.True(t, got.PrivateStream())
}

func TestAckLifecycleGating(t *testing.T) {
	m := NewAckMsg()
	assert.Equal(t, StateBlank, m.Lifecycle())
	m.SetAckID(1)
	m.SetStreamID(5)
	assert.Equal(t, StatePopulated, m.Lifecycle())

	assert.Equal(t, "\ntoString() method could not be used for just encoded object. Use toString(dictionary) for just encoded object.\n", m.String())
	assert.Equal(t, "\nDictionary is not loaded.\n", m.StringWithDictionary(dictionary.New()))
	assert.Equal(t, "\nDictionary is not loaded.\n", m.StringWithDictionary(nil))

	got := decodeMsgBytes(t, m, nil)
	assert.Equal(t, "\ntoString() method could not be used for decoded object without dictionary. Use toString(dictionary) instead.\n", got.String())
	assert.True(t, strings.HasPrefix(got.StringWithDictionary(loadDict(t)), "AckMsg\n    streamId=\"5\"\n"))
}

func TestUpdateRender(t *testing.T) {
	dict := loadDict(t)
	m := NewUpdateMsg()
	m.SetStreamID(5)
	m.SetDomainType(DomainMarketPrice)
	require.NoError(t, m.SetName("IBM.N"))
	m.SetServiceID(1)
	require.NoError(t, m.SetPayload(priceList(t)))

	want := "UpdateMsg\n" +
		"    streamId=\"5\"\n" +
		"    domain=\"MarketPrice Domain\"\n" +
		"    updateTypeNum=\"0\"\n" +
		"    name=\"IBM.N\"\n" +
		"    serviceId=\"1\"\n" +
		"    Payload dataType=\"FieldList\"\n" +
		"        FieldList\n" +
		"            FieldEntry fid=\"22\" name=\"BID\" dataType=\"Real\" value=\"39.90\"\n" +
		"            FieldEntry fid=\"15\" name=\"CURRENCY\" dataType=\"Enum\" value=\"USD\"\n" +
		"        FieldListEnd\n" +
		"    PayloadEnd\n" +
		"UpdateMsgEnd\n"
	assert.Equal(t, want, m.StringWithDictionary(dict))
	assert.Equal(t, want, decodeMsgBytes(t, m, dict).String())
}

func containerFixtures(t testing.TB) map[codec.DataType]func() object {
	return map[codec.DataType]func() object{
		codec.DataTypeFieldList: func() object { return priceList(t) },
		codec.DataTypeElementList: func() object {
			el := NewElementList()
			require.NoError(t, el.Add("Count", codec.UInt(7)))
			require.NoError(t, el.Add("Name", codec.Ascii("IBM")))
			return el
		},
		codec.DataTypeFilterList: func() object {
			fl := NewFilterList()
			require.NoError(t, fl.Add(1, FilterActionSet, priceList(t), []byte{0x03}))
			return fl
		},
		codec.DataTypeVector: func() object {
			v := NewVector()
			require.NoError(t, v.Add(4, VectorActionSet, priceList(t), nil))
			return v
		},
		codec.DataTypeSeries: func() object {
			s := NewSeries()
			require.NoError(t, s.Add(priceList(t)))
			return s
		},
		codec.DataTypeMap: func() object {
			m := NewMap()
			require.NoError(t, m.Add(codec.Ascii("IBM.N"), MapActionAdd, priceList(t), nil))
			return m
		},
		codec.DataTypeMsg: func() object {
			g := NewGenericMsg()
			g.SetStreamID(3)
			require.NoError(t, g.SetPayload(priceList(t)))
			return g
		},
	}
}

func TestPayloadAttribPairs(t *testing.T) {
	dict := loadDict(t)
	fixtures := containerFixtures(t)
	for at, attrib := range fixtures {
		for pt, payload := range fixtures {
			t.Run(at.String()+"/"+pt.String(), func(t *testing.T) {
				m := NewStatusMsg()
				m.SetStreamID(9)
				require.NoError(t, m.SetName("IBM.N"))
				require.NoError(t, m.SetAttrib(attrib()))
				require.NoError(t, m.SetPayload(payload()))
				b, err := m.Marshal()
				require.NoError(t, err)

				got := decodeMsgBytes(t, m, dict).(*StatusMsg)
				require.Equal(t, at, got.Attrib().DataType())
				require.Equal(t, pt, got.Payload().DataType())
				assert.Equal(t, stringWithDictionaryOf(attrib(), dict), renderString(got.Attrib().(object), dict))
				assert.Equal(t, stringWithDictionaryOf(payload(), dict), renderString(got.Payload().(object), dict))

				again, err := got.Marshal()
				require.NoError(t, err)
				assert.Equal(t, b, again)

				c, err := got.Clone()
				require.NoError(t, err)
				assert.Equal(t, got.String(), c.String())
				assert.Equal(t, got.StringWithDictionary(dict), c.StringWithDictionary(dict))
			})
		}
	}
}

func TestCloneIndependence(t *testing.T) {
	dict := loadDict(t)
	src := decodeMsgBytes(t, newRefresh(t), dict).(*RefreshMsg)
	before := src.String()

	c, err := src.Clone()
	require.NoError(t, err)
	assert.Equal(t, StateWireBound, c.Lifecycle())
	assert.Equal(t, before, c.String())
	assert.Equal(t, before, c.StringWithDictionary(dict))

	cc, err := c.Clone()
	require.NoError(t, err)
	assert.Equal(t, before, cc.String())

	require.NoError(t, c.Payload().(*FieldList).Add(21, codec.NewReal(3950, codec.RealExponentNeg2)))
	assert.NotEqual(t, before, c.String())
	assert.Contains(t, c.String(), "name=\"HST_CLOSE\"")
	assert.Equal(t, before, src.String())
	assert.Equal(t, 2, src.Payload().(*FieldList).Size())
	assert.Equal(t, before, cc.String())

	// a clone of the changed clone carries the change
	c2, err := c.Clone()
	require.NoError(t, err)
	assert.Equal(t, c.String(), c2.String())
	assert.Equal(t, 3, c2.Payload().(*FieldList).Size())

	generic, err := CloneMsg(src)
	require.NoError(t, err)
	assert.Equal(t, before, generic.String())
}

func TestCloneEmpty(t *testing.T) {
	_, err := NewAckMsg().Clone()
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "Failed to clone empty encoded buffer"))
	assert.True(t, IsErrorCode(err, ErrorCodeCloneOfEmptyBuffer))

	m := NewAckMsg()
	m.SetAckID(4)
	_, err = m.Clone()
	assert.True(t, IsErrorCode(err, ErrorCodeCloneOfEmptyBuffer))

	_, err = m.Marshal()
	require.NoError(t, err)
	c, err := m.Clone()
	require.NoError(t, err)
	assert.Equal(t, uint32(4), c.AckID())
	assert.Nil(t, c.Dictionary())

	_, err = NewMap().Clone()
	assert.True(t, IsErrorCode(err, ErrorCodeCloneOfEmptyBuffer))
}

func TestDecodeMsgErrors(t *testing.T) {
	m := NewAckMsg()
	m.SetAckID(9)
	b, err := m.Marshal()
	require.NoError(t, err)

	_, err = DecodeMsg(b, codec.MajorVersion-1, 0, nil)
	assert.True(t, errors.Is(err, codec.ErrUnsupportedVersion))

	bad := append([]byte(nil), b...)
	bad[2] = 99
	_, err = DecodeMsg(bad, codec.MajorVersion, codec.MinorVersion, nil)
	assert.True(t, errors.Is(err, codec.ErrInvalidData))

	_, err = DecodeMsg(b[:5], codec.MajorVersion, codec.MinorVersion, nil)
	assert.Error(t, err)
}

func TestDecodeMsgSkipsUnknownHeaderBytes(t *testing.T) {
	m := NewAckMsg()
	m.SetAckID(9)
	m.SetSeqNum(3)
	b, err := m.Marshal()
	require.NoError(t, err)

	hlen := int(codec.EncByteOrder.Uint16(b))
	ext := make([]byte, 0, len(b)+2)
	ext = append(ext, b[:2+hlen]...)
	ext = append(ext, 0xAB, 0xCD)
	ext = append(ext, b[2+hlen:]...)
	codec.EncByteOrder.PutUint16(ext, uint16(hlen+2))

	got, err := DecodeMsg(ext, codec.MajorVersion, codec.MinorVersion+1, nil)
	require.NoError(t, err)
	ack := got.(*AckMsg)
	assert.Equal(t, uint32(9), ack.AckID())
	n, _ := ack.SeqNum()
	assert.Equal(t, uint32(3), n)
}

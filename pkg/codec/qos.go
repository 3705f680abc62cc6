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

package codec

import "strconv"

type (
	QoSTimeliness uint8
	QoSRate       uint8
)

const (
	QoSTimelinessUnspecified QoSTimeliness = iota
	QoSTimelinessRealtime
	QoSTimelinessDelayedUnknown
	QoSTimelinessDelayed
)

const (
	QoSRateUnspecified QoSRate = iota
	QoSRateTickByTick
	QoSRateJitConflated
	QoSRateTimeConflated
)

// QoS is the quality of service of a stream. TimeInfo is meaningful only when
// Timeliness is Delayed, RateInfo only when Rate is TimeConflated.
type QoS struct {
	Timeliness QoSTimeliness
	Rate       QoSRate
	Dynamic    bool
	TimeInfo   uint16
	RateInfo   uint16
}

func (v QoS) DataType() DataType { return DataTypeQoS }

func (v QoS) String() string {
	var s string
	switch v.Timeliness {
	case QoSTimelinessRealtime:
		s = "RealTime"
	case QoSTimelinessDelayedUnknown:
		s = "InexactDelayed"
	case QoSTimelinessDelayed:
		s = "Timeliness: " + strconv.Itoa(int(v.TimeInfo))
	default:
		s = "Unspecified"
	}
	s += "/"
	switch v.Rate {
	case QoSRateTickByTick:
		s += "TickByTick"
	case QoSRateJitConflated:
		s += "JustInTimeConflated"
	case QoSRateTimeConflated:
		s += "Rate: " + strconv.Itoa(int(v.RateInfo))
	default:
		s += "Unspecified"
	}
	return s
}

func (v QoS) encode(w *Writer) {
	if v.Timeliness > QoSTimelinessDelayed || v.Rate > QoSRateTimeConflated {
		w.Fail(errorf(ErrValueOutOfRange, "QoS "+v.String()))
		return
	}
	b := uint8(v.Timeliness)<<5 | uint8(v.Rate)<<1
	if v.Dynamic {
		b |= 0x01
	}
	w.PutUint8(b)
	if v.Timeliness == QoSTimelinessDelayed {
		w.PutUint16(v.TimeInfo)
	}
	if v.Rate == QoSRateTimeConflated {
		w.PutUint16(v.RateInfo)
	}
}

// ReadQoS decodes a QoS from the current position of r.
func ReadQoS(r *Reader) QoS {
	flags := r.Uint8()
	v := QoS{
		Timeliness: QoSTimeliness(flags >> 5),
		Rate:       QoSRate((flags >> 1) & 0x0F),
		Dynamic:    flags&0x01 != 0,
	}
	if v.Timeliness > QoSTimelinessDelayed || v.Rate > QoSRateTimeConflated {
		r.Fail(errorf(ErrInvalidData, "QoS flags "+strconv.Itoa(int(flags))))
		return v
	}
	if v.Timeliness == QoSTimelinessDelayed {
		v.TimeInfo = r.Uint16()
	}
	if v.Rate == QoSRateTimeConflated {
		v.RateInfo = r.Uint16()
	}
	return v
}

func decodeQoS(b []byte) (Primitive, error) {
	r := NewReader(b)
	v := ReadQoS(r)
	if err := r.Err(); err != nil {
		return nil, err
	}
	if r.Remaining() != 0 {
		return nil, errorf(ErrInvalidData, "QoS trailing bytes")
	}
	return v, nil
}

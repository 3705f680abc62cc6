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

import (
	"fmt"
	"strconv"
)

var monthNames = [...]string{"", "JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}

// Date is a calendar date. Zero in any component means that component is blank.
type Date struct {
	Day   uint8
	Month uint8
	Year  uint16
}

// Time is a time of day down to nanoseconds. Components after Minute are only
// written when they or a later component are non-zero.
type Time struct {
	Hour        uint8
	Minute      uint8
	Second      uint8
	Millisecond uint16
	Microsecond uint16
	Nanosecond  uint16
}

type DateTime struct {
	Date Date
	Time Time
}

const (
	kDateLen    = 4
	kTimeMinLen = 2
)

func NewDate(year uint16, month uint8, day uint8) Date {
	return Date{Day: day, Month: month, Year: year}
}

func NewTime(hour, minute, second uint8, millisecond, microsecond, nanosecond uint16) Time {
	return Time{
		Hour:        hour,
		Minute:      minute,
		Second:      second,
		Millisecond: millisecond,
		Microsecond: microsecond,
		Nanosecond:  nanosecond,
	}
}

func (v Date) DataType() DataType     { return DataTypeDate }
func (v Time) DataType() DataType     { return DataTypeTime }
func (v DateTime) DataType() DataType { return DataTypeDateTime }

func (v Date) Validate() error {
	if v.Day > 31 || v.Month > 12 {
		return errorf(ErrValueOutOfRange, fmt.Sprintf("Date %d/%d/%d", v.Year, v.Month, v.Day))
	}
	return nil
}

func (v Time) Validate() error {
	if v.Hour > 23 || v.Minute > 59 || v.Second > 60 ||
		v.Millisecond > 999 || v.Microsecond > 999 || v.Nanosecond > 999 {
		return errorf(ErrValueOutOfRange, "Time "+v.String())
	}
	return nil
}

func (v Date) String() string {
	var month string
	if int(v.Month) < len(monthNames) {
		month = monthNames[v.Month]
	}
	if month == "" {
		month = "   "
	}
	return fmt.Sprintf("%02d %s %4d", v.Day, month, v.Year)
}

func (v Time) String() string {
	return fmt.Sprintf("%02d:%02d:%02d:%03d:%03d:%03d",
		v.Hour, v.Minute, v.Second, v.Millisecond, v.Microsecond, v.Nanosecond)
}

func (v DateTime) String() string {
	return v.Date.String() + " " + v.Time.String()
}

func (v Date) encode(w *Writer) {
	if err := v.Validate(); err != nil {
		w.Fail(err)
		return
	}
	w.PutUint8(v.Day)
	w.PutUint8(v.Month)
	w.PutUint16(v.Year)
}

func (v Time) wireLen() int {
	switch {
	case v.Nanosecond != 0:
		return 9
	case v.Microsecond != 0:
		return 7
	case v.Millisecond != 0:
		return 5
	case v.Second != 0:
		return 3
	}
	return kTimeMinLen
}

func (v Time) encode(w *Writer) {
	if err := v.Validate(); err != nil {
		w.Fail(err)
		return
	}
	n := v.wireLen()
	w.PutUint8(v.Hour)
	w.PutUint8(v.Minute)
	if n >= 3 {
		w.PutUint8(v.Second)
	}
	if n >= 5 {
		w.PutUint16(v.Millisecond)
	}
	if n >= 7 {
		w.PutUint16(v.Microsecond)
	}
	if n >= 9 {
		w.PutUint16(v.Nanosecond)
	}
}

func (v DateTime) encode(w *Writer) {
	v.Date.encode(w)
	v.Time.encode(w)
}

func decodeDate(b []byte) (Primitive, error) {
	if len(b) != kDateLen {
		return nil, errorf(ErrInvalidData, "Date length "+strconv.Itoa(len(b)))
	}
	v := Date{Day: b[0], Month: b[1], Year: EncByteOrder.Uint16(b[2:])}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

func parseTime(b []byte) (v Time, err error) {
	switch len(b) {
	case 2, 3, 5, 7, 9:
	default:
		err = errorf(ErrInvalidData, "Time length "+strconv.Itoa(len(b)))
		return
	}
	v.Hour, v.Minute = b[0], b[1]
	if len(b) >= 3 {
		v.Second = b[2]
	}
	if len(b) >= 5 {
		v.Millisecond = EncByteOrder.Uint16(b[3:])
	}
	if len(b) >= 7 {
		v.Microsecond = EncByteOrder.Uint16(b[5:])
	}
	if len(b) >= 9 {
		v.Nanosecond = EncByteOrder.Uint16(b[7:])
	}
	err = v.Validate()
	return
}

func decodeTime(b []byte) (Primitive, error) {
	v, err := parseTime(b)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func decodeDateTime(b []byte) (Primitive, error) {
	if len(b) < kDateLen+kTimeMinLen {
		return nil, errorf(ErrInvalidData, "DateTime length "+strconv.Itoa(len(b)))
	}
	d, err := decodeDate(b[:kDateLen])
	if err != nil {
		return nil, err
	}
	t, err := parseTime(b[kDateLen:])
	if err != nil {
		return nil, err
	}
	return DateTime{Date: d.(Date), Time: t}, nil
}

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
	"strconv"
)

const (
	kMaxU15rb   = 0x7FFF
	kMaxObLen   = 5
	kU16obMark  = 0xFE
	kU32obMark  = 0xFF
	kOneByteMax = 0xFD
)

// Writer encodes into a caller supplied byte slice. It never grows the slice: running
// out of room records ErrBufferTooSmall and every later write is a no-op. Only the
// first error is kept.
type Writer struct {
	buf []byte
	off int
	err error
}

// Mark is the position of a reserved length prefix.
type Mark struct {
	at int
}

func NewWriter(buf []byte) *Writer {
	return &Writer{buf: buf[:cap(buf)]}
}

func (w *Writer) Reset(buf []byte) {
	w.buf = buf[:cap(buf)]
	w.off = 0
	w.err = nil
}

func (w *Writer) Err() error {
	return w.err
}

// Fail records err unless an earlier error is already recorded.
func (w *Writer) Fail(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

func (w *Writer) Len() int {
	return w.off
}

func (w *Writer) Cap() int {
	return len(w.buf)
}

func (w *Writer) Bytes() []byte {
	return w.buf[:w.off]
}

// Truncate drops everything written after off.
func (w *Writer) Truncate(off int) {
	if off >= 0 && off <= w.off {
		w.off = off
	}
}

func (w *Writer) ensure(n int) bool {
	if w.err != nil {
		return false
	}
	if len(w.buf)-w.off < n {
		w.err = errorf(ErrBufferTooSmall, "need "+strconv.Itoa(n)+" bytes, "+strconv.Itoa(len(w.buf)-w.off)+" left")
		return false
	}
	return true
}

func (w *Writer) PutUint8(v uint8) {
	if w.ensure(1) {
		w.buf[w.off] = v
		w.off++
	}
}

func (w *Writer) PutUint16(v uint16) {
	if w.ensure(2) {
		EncByteOrder.PutUint16(w.buf[w.off:], v)
		w.off += 2
	}
}

func (w *Writer) PutUint32(v uint32) {
	if w.ensure(4) {
		EncByteOrder.PutUint32(w.buf[w.off:], v)
		w.off += 4
	}
}

func (w *Writer) PutUint64(v uint64) {
	if w.ensure(8) {
		EncByteOrder.PutUint64(w.buf[w.off:], v)
		w.off += 8
	}
}

func (w *Writer) PutInt16(v int16) {
	w.PutUint16(uint16(v))
}

func (w *Writer) PutInt32(v int32) {
	w.PutUint32(uint32(v))
}

func (w *Writer) PutBytes(b []byte) {
	if len(b) == 0 {
		return
	}
	if w.ensure(len(b)) {
		copy(w.buf[w.off:], b)
		w.off += len(b)
	}
}

func (w *Writer) PutString(s string) {
	if len(s) == 0 {
		return
	}
	if w.ensure(len(s)) {
		copy(w.buf[w.off:], s)
		w.off += len(s)
	}
}

func (w *Writer) PutU15rb(v uint16) {
	switch {
	case v > kMaxU15rb:
		w.Fail(errorf(ErrValueOutOfRange, "u15rb "+strconv.Itoa(int(v))))
	case v < 0x80:
		w.PutUint8(uint8(v))
	default:
		w.PutUint16(v | 0x8000)
	}
}

func (w *Writer) PutU16ob(v uint16) {
	if v <= kOneByteMax {
		w.PutUint8(uint8(v))
		return
	}
	w.PutUint8(kU16obMark)
	w.PutUint16(v)
}

func (w *Writer) PutU32ob(v uint32) {
	switch {
	case v <= kOneByteMax:
		w.PutUint8(uint8(v))
	case v <= 0xFFFF:
		w.PutUint8(kU16obMark)
		w.PutUint16(uint16(v))
	default:
		w.PutUint8(kU32obMark)
		w.PutUint32(v)
	}
}

// SetUint16 overwrites two already written bytes at off.
func (w *Writer) SetUint16(off int, v uint16) {
	if w.err != nil {
		return
	}
	if off < 0 || off+2 > w.off {
		w.Fail(errorf(ErrIncompleteData, "patch offset "+strconv.Itoa(off)))
		return
	}
	EncByteOrder.PutUint16(w.buf[off:], v)
}

// PutBuffer15 writes a u15rb length followed by b.
func (w *Writer) PutBuffer15(b []byte) {
	if len(b) > kMaxU15rb {
		w.Fail(errorf(ErrValueOutOfRange, "buffer length "+strconv.Itoa(len(b))))
		return
	}
	w.PutU15rb(uint16(len(b)))
	w.PutBytes(b)
}

func (w *Writer) PutString15(s string) {
	if len(s) > kMaxU15rb {
		w.Fail(errorf(ErrValueOutOfRange, "string length "+strconv.Itoa(len(s))))
		return
	}
	w.PutU15rb(uint16(len(s)))
	w.PutString(s)
}

// PutBuffer32 writes a u32ob length followed by b.
func (w *Writer) PutBuffer32(b []byte) {
	w.PutU32ob(uint32(len(b)))
	w.PutBytes(b)
}

// Reserve leaves one byte for a u32ob length whose value is only known once the
// body has been written. It must be paired with Finish.
func (w *Writer) Reserve() Mark {
	m := Mark{at: w.off}
	if w.ensure(1) {
		w.off++
	}
	return m
}

// Finish writes the minimal u32ob length of everything written since m. A length
// wider than one byte shifts the body right, so the writer only runs out of room
// when the final encoding does not fit.
func (w *Writer) Finish(m Mark) {
	if w.err != nil {
		return
	}
	start := m.at + 1
	bodyLen := w.off - start
	if bodyLen < 0 {
		w.Fail(ErrIncompleteData)
		return
	}
	var prefix [kMaxObLen]byte
	var n int
	switch {
	case bodyLen <= kOneByteMax:
		prefix[0] = uint8(bodyLen)
		n = 1
	case bodyLen <= 0xFFFF:
		prefix[0] = kU16obMark
		EncByteOrder.PutUint16(prefix[1:], uint16(bodyLen))
		n = 3
	default:
		prefix[0] = kU32obMark
		EncByteOrder.PutUint32(prefix[1:], uint32(bodyLen))
		n = 5
	}
	if n > 1 {
		if !w.ensure(n - 1) {
			return
		}
		copy(w.buf[m.at+n:], w.buf[start:w.off])
		w.off += n - 1
	}
	copy(w.buf[m.at:], prefix[:n])
}

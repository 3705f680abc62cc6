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

// Reader walks an encoded byte slice. Slices it hands out alias the underlying
// buffer. The first error is recorded and every later read returns zero values.
type Reader struct {
	buf []byte
	off int
	err error
}

func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

func (r *Reader) Reset(buf []byte) {
	r.buf = buf
	r.off = 0
	r.err = nil
}

func (r *Reader) Err() error {
	return r.err
}

// Fail records err unless an earlier error is already recorded.
func (r *Reader) Fail(err error) {
	if r.err == nil && err != nil {
		r.err = err
		r.off = len(r.buf)
	}
}

func (r *Reader) Offset() int {
	return r.off
}

func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

func (r *Reader) need(n int) bool {
	if r.err != nil {
		return false
	}
	if n < 0 || len(r.buf)-r.off < n {
		r.Fail(errorf(ErrInvalidData, "truncated: need "+strconv.Itoa(n)+" bytes, "+strconv.Itoa(len(r.buf)-r.off)+" left"))
		return false
	}
	return true
}

func (r *Reader) Uint8() uint8 {
	if !r.need(1) {
		return 0
	}
	v := r.buf[r.off]
	r.off++
	return v
}

func (r *Reader) Uint16() uint16 {
	if !r.need(2) {
		return 0
	}
	v := EncByteOrder.Uint16(r.buf[r.off:])
	r.off += 2
	return v
}

func (r *Reader) Uint32() uint32 {
	if !r.need(4) {
		return 0
	}
	v := EncByteOrder.Uint32(r.buf[r.off:])
	r.off += 4
	return v
}

func (r *Reader) Uint64() uint64 {
	if !r.need(8) {
		return 0
	}
	v := EncByteOrder.Uint64(r.buf[r.off:])
	r.off += 8
	return v
}

func (r *Reader) Int16() int16 {
	return int16(r.Uint16())
}

func (r *Reader) Int32() int32 {
	return int32(r.Uint32())
}

// Bytes returns the next n bytes without copying.
func (r *Reader) Bytes(n int) []byte {
	if !r.need(n) {
		return nil
	}
	b := r.buf[r.off : r.off+n : r.off+n]
	r.off += n
	return b
}

func (r *Reader) Skip(n int) {
	if r.need(n) {
		r.off += n
	}
}

// Rest returns everything not yet consumed.
func (r *Reader) Rest() []byte {
	if r.err != nil {
		return nil
	}
	b := r.buf[r.off:len(r.buf):len(r.buf)]
	r.off = len(r.buf)
	return b
}

func (r *Reader) U15rb() uint16 {
	b := r.Uint8()
	if b&0x80 == 0 {
		return uint16(b)
	}
	lo := r.Uint8()
	return uint16(b&0x7F)<<8 | uint16(lo)
}

func (r *Reader) U16ob() uint16 {
	b := r.Uint8()
	if b == kU16obMark {
		return r.Uint16()
	}
	if b == kU32obMark {
		r.Fail(errorf(ErrInvalidData, "u16ob marker 0xFF"))
		return 0
	}
	return uint16(b)
}

func (r *Reader) U32ob() uint32 {
	b := r.Uint8()
	switch b {
	case kU16obMark:
		return uint32(r.Uint16())
	case kU32obMark:
		return r.Uint32()
	}
	return uint32(b)
}

// Buffer15 reads a u15rb length and that many bytes.
func (r *Reader) Buffer15() []byte {
	n := r.U15rb()
	return r.Bytes(int(n))
}

// Buffer32 reads a u32ob length and that many bytes.
func (r *Reader) Buffer32() []byte {
	n := r.U32ob()
	if r.err != nil {
		return nil
	}
	if uint64(n) > uint64(r.Remaining()) {
		r.Fail(errorf(ErrInvalidData, "length "+strconv.FormatUint(uint64(n), 10)+" exceeds remaining "+strconv.Itoa(r.Remaining())))
		return nil
	}
	return r.Bytes(int(n))
}

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
	"bytes"
	"errors"
	"testing"
)

func TestLengthEncodings(t *testing.T) {
	tests := []struct {
		name   string
		put    func(w *Writer)
		expect []byte
	}{
		{"u15rb small", func(w *Writer) { w.PutU15rb(0x7F) }, []byte{0x7F}},
		{"u15rb large", func(w *Writer) { w.PutU15rb(0x1234) }, []byte{0x92, 0x34}},
		{"u16ob small", func(w *Writer) { w.PutU16ob(0xFD) }, []byte{0xFD}},
		{"u16ob large", func(w *Writer) { w.PutU16ob(0xFE) }, []byte{0xFE, 0x00, 0xFE}},
		{"u32ob small", func(w *Writer) { w.PutU32ob(3) }, []byte{0x03}},
		{"u32ob u16", func(w *Writer) { w.PutU32ob(0x1000) }, []byte{0xFE, 0x10, 0x00}},
		{"u32ob u32", func(w *Writer) { w.PutU32ob(0x10000) }, []byte{0xFF, 0x00, 0x01, 0x00, 0x00}},
	}
	for _, tc := range tests {
		w := NewWriter(make([]byte, 16))
		tc.put(w)
		if w.Err() != nil {
			t.Fatalf("%s: %s", tc.name, w.Err())
		}
		if !bytes.Equal(w.Bytes(), tc.expect) {
			t.Errorf("%s: expected % X, got % X", tc.name, tc.expect, w.Bytes())
		}
	}

	r := NewReader([]byte{0x92, 0x34, 0xFE, 0x00, 0xFE, 0xFF, 0x00, 0x01, 0x00, 0x00})
	if v := r.U15rb(); v != 0x1234 {
		t.Errorf("u15rb: %x", v)
	}
	if v := r.U16ob(); v != 0xFE {
		t.Errorf("u16ob: %x", v)
	}
	if v := r.U32ob(); v != 0x10000 {
		t.Errorf("u32ob: %x", v)
	}
	if r.Err() != nil || r.Remaining() != 0 {
		t.Errorf("err=%v remaining=%d", r.Err(), r.Remaining())
	}
}

func TestWriterBufferTooSmall(t *testing.T) {
	w := NewWriter(make([]byte, 3))
	w.PutUint16(1)
	w.PutUint32(2)
	w.PutUint8(3)
	if !errors.Is(w.Err(), ErrBufferTooSmall) {
		t.Fatalf("expected ErrBufferTooSmall, got %v", w.Err())
	}
	if w.Len() != 2 {
		t.Errorf("writes after failure must be dropped, len=%d", w.Len())
	}
}

func TestReaderTruncated(t *testing.T) {
	r := NewReader([]byte{0x05, 0x01})
	b := r.Buffer32()
	if b != nil || !errors.Is(r.Err(), ErrInvalidData) {
		t.Fatalf("expected ErrInvalidData, got %v", r.Err())
	}
	if r.Uint8() != 0 {
		t.Error("read after failure returned data")
	}
}

func TestReserveFinish(t *testing.T) {
	for _, n := range []int{0, 10, 0xFD, 0xFE, 0x10000} {
		w := NewWriter(make([]byte, n+16))
		w.PutUint8(0xAA)
		m := w.Reserve()
		body := bytes.Repeat([]byte{0x5A}, n)
		w.PutBytes(body)
		w.Finish(m)
		w.PutUint8(0xBB)
		if w.Err() != nil {
			t.Fatalf("len %d: %s", n, w.Err())
		}

		r := NewReader(w.Bytes())
		if r.Uint8() != 0xAA {
			t.Fatalf("len %d: leading byte lost", n)
		}
		got := r.Buffer32()
		if !bytes.Equal(got, body) {
			t.Errorf("len %d: body mismatch", n)
		}
		if r.Uint8() != 0xBB || r.Remaining() != 0 {
			t.Errorf("len %d: trailing byte lost", n)
		}
	}
}

func TestReserveFinishExactFit(t *testing.T) {
	for _, n := range []int{0, 10, 0xFD, 0xFE, 0x10000} {
		want := 2 + n + 1
		switch {
		case n > 0xFFFF:
			want += 4
		case n > kOneByteMax:
			want += 2
		}
		for _, size := range []int{want, want - 1} {
			w := NewWriter(make([]byte, size))
			w.PutUint8(0xAA)
			m := w.Reserve()
			w.PutBytes(bytes.Repeat([]byte{0x5A}, n))
			w.Finish(m)
			w.PutUint8(0xBB)
			if size == want {
				if w.Err() != nil || w.Len() != want {
					t.Errorf("len %d: exact buffer failed: err=%v len=%d", n, w.Err(), w.Len())
				}
			} else if !errors.Is(w.Err(), ErrBufferTooSmall) {
				t.Errorf("len %d: expected ErrBufferTooSmall one byte short, got %v", n, w.Err())
			}
		}
	}
}

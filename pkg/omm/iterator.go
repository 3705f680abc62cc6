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
	"bytes"

	"rwf/pkg/codec"
	"rwf/pkg/dictionary"
)

type cursor[E any] interface {
	more() bool
	next(e *E) error
}

// Iterator hands out independent copies of the entries of a container. Entries
// returned by Next stay valid after later calls and share no memory with the
// container: changing one never changes the container.
type Iterator[E any] struct {
	c      cursor[E]
	detach func(e *E) error
	err    error
}

func (it *Iterator[E]) HasNext() bool {
	return it.err == nil && it.c.more()
}

func (it *Iterator[E]) Next() (e E) {
	if it.err != nil {
		return
	}
	it.err = it.c.next(&e)
	if it.err == nil && it.detach != nil {
		it.err = it.detach(&e)
	}
	return
}

// Err returns the first decode error met while iterating.
func (it *Iterator[E]) Err() error {
	return it.err
}

// RefIterator reuses a single entry for the whole traversal. The pointer returned
// by Next is overwritten by the following Next and by the next call to
// IteratorByRef on the same container; copy what must outlive it.
type RefIterator[E any] struct {
	c     cursor[E]
	entry E
	err   error
}

func (it *RefIterator[E]) reset(c cursor[E]) *RefIterator[E] {
	var zero E
	it.c = c
	it.entry = zero
	it.err = nil
	return it
}

func (it *RefIterator[E]) HasNext() bool {
	return it.err == nil && it.c != nil && it.c.more()
}

func (it *RefIterator[E]) Next() *E {
	var zero E
	it.entry = zero
	if it.err == nil {
		if it.c == nil {
			it.err = errIteratorOverrun
		} else {
			it.err = it.c.next(&it.entry)
		}
	}
	return &it.entry
}

func (it *RefIterator[E]) Err() error {
	return it.err
}

type sliceCursor[E any] struct {
	entries []E
	i       int
}

func (c *sliceCursor[E]) more() bool {
	return c.i < len(c.entries)
}

func (c *sliceCursor[E]) next(e *E) error {
	if c.i >= len(c.entries) {
		return errIteratorOverrun
	}
	*e = c.entries[c.i]
	c.i++
	return nil
}

// wireCursor parses count entries from r, one per call.
type wireCursor[E any] struct {
	r     codec.Reader
	left  int
	ctx   decodeCtx
	parse func(r *codec.Reader, ctx decodeCtx, e *E)
}

func newWireCursor[E any](body []byte, count int, ctx decodeCtx, parse func(*codec.Reader, decodeCtx, *E)) *wireCursor[E] {
	c := &wireCursor[E]{left: count, ctx: ctx, parse: parse}
	c.r.Reset(body)
	return c
}

func (c *wireCursor[E]) more() bool {
	return c.left > 0
}

func (c *wireCursor[E]) next(e *E) error {
	if c.left <= 0 {
		return errIteratorOverrun
	}
	c.left--
	c.parse(&c.r, c.ctx, e)
	if err := c.r.Err(); err != nil {
		c.left = 0
		return err
	}
	return nil
}

// collect drains c into a slice.
func collect[E any](c cursor[E]) ([]E, error) {
	var entries []E
	for c.more() {
		var e E
		if err := c.next(&e); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// detachData copies d so that it shares no memory with the container it was
// read from. Objects are re-decoded from their encoding; a Blank or Populated
// object comes back WireBound under dict unless it carries its own.
func detachData(d Data, dict dictionary.Dictionary) (Data, error) {
	switch v := d.(type) {
	case codec.Buffer:
		return codec.Buffer(bytes.Clone(v)), nil
	case codec.Rmtes:
		return codec.Rmtes(bytes.Clone(v)), nil
	case codec.Array:
		items := make([]codec.Primitive, len(v.Items))
		for i, item := range v.Items {
			c, err := detachData(item, nil)
			if err != nil {
				return nil, err
			}
			items[i] = c.(codec.Primitive)
		}
		v.Items = items
		return v, nil
	case Opaque:
		return Opaque(bytes.Clone(v)), nil
	case XML:
		return XML(bytes.Clone(v)), nil
	case JSON:
		return JSON(bytes.Clone(v)), nil
	case AnsiPage:
		return AnsiPage(bytes.Clone(v)), nil
	case ErrorData:
		v.Raw = bytes.Clone(v.Raw)
		return v, nil
	case object:
		return detachObject(v, dict)
	}
	return d, nil
}

func detachObject(o object, dict dictionary.Dictionary) (object, error) {
	l := o.life()
	if l.dict != nil {
		dict = l.dict
	}
	if l.state == StateWireBound {
		ctx := decodeCtx{major: l.wire.major, minor: l.wire.minor, dict: dict}
		return ctx.decodeObject(o.DataType(), l.wire.data)
	}
	b, err := marshal(o.encodeTo)
	if err != nil {
		return nil, err
	}
	return currentCtx(dict).decodeObject(o.DataType(), b)
}

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
	"fmt"

	"rwf/pkg/cfg"
	"rwf/pkg/codec"
	"rwf/pkg/util"
)

// Config sizes the scratch buffers of Marshal and names the protocol version
// stamped on objects decoded from freshly encoded bytes.
type Config struct {
	InitialBufferSize int
	MaxBufferSize     int
	MajorVersion      uint8
	MinorVersion      uint8
}

var Conf = Config{
	InitialBufferSize: 4096,
	MaxBufferSize:     16 * 1024 * 1024,
	MajorVersion:      codec.MajorVersion,
	MinorVersion:      codec.MinorVersion,
}

func (c *Config) Validate() error {
	if c.InitialBufferSize <= 0 {
		return fmt.Errorf("InitialBufferSize %d must be positive", c.InitialBufferSize)
	}
	if c.MaxBufferSize < c.InitialBufferSize {
		return fmt.Errorf("MaxBufferSize %d is below InitialBufferSize %d", c.MaxBufferSize, c.InitialBufferSize)
	}
	if c.MajorVersion != codec.MajorVersion {
		return fmt.Errorf("MajorVersion %d not supported, codec speaks %d", c.MajorVersion, codec.MajorVersion)
	}
	return nil
}

// Configure overlays the [Codec] section of c onto Conf.
func Configure(c *cfg.Config) error {
	sec, err := c.GetConfig("Codec")
	if err != nil {
		return err
	}
	conf := Conf
	if err = sec.WriteTo(&conf); err != nil {
		return err
	}
	if err = conf.Validate(); err != nil {
		return err
	}
	Conf = conf
	return nil
}

// newBoundedWriter writes into buf without touching bytes past len(buf).
func newBoundedWriter(buf []byte) *codec.Writer {
	return codec.NewWriter(buf[:len(buf):len(buf)])
}

// marshal runs enc against pooled scratch buffers, doubling the size on
// ErrBufferTooSmall up to Conf.MaxBufferSize, and returns an exact-size copy.
func marshal(enc func(w *codec.Writer)) ([]byte, error) {
	size := Conf.InitialBufferSize
	var w codec.Writer
	for {
		pool := util.GetBytePool(size)
		var buf []byte
		if pool != nil {
			buf = pool.Get()
		} else {
			buf = make([]byte, size)
		}
		w.Reset(buf[:size:size])
		enc(&w)
		err := w.Err()
		var out []byte
		if err == nil {
			out = make([]byte, w.Len())
			copy(out, w.Bytes())
		}
		if pool != nil {
			pool.Put(buf)
		}
		if err == nil {
			return out, nil
		}
		if !errors.Is(err, codec.ErrBufferTooSmall) || size >= Conf.MaxBufferSize {
			return nil, err
		}
		size *= 2
		if size > Conf.MaxBufferSize {
			size = Conf.MaxBufferSize
		}
	}
}

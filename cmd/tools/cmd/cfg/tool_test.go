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


package cfg

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rwf/pkg/omm"
)

func newTestCommand(t *testing.T) *Command {
	t.Helper()
	saved := omm.Conf
	t.Cleanup(func() { omm.Conf = saved })
	c := &Command{}
	c.Init("test", "")
	c.SetOutput(io.Discard)
	c.Usage = func() {}
	return c
}

func TestSetupDefaults(t *testing.T) {
	c := newTestCommand(t)
	require.NoError(t, c.Parse(nil))
	assert.Equal(t, Default, c.Conf)
	assert.Nil(t, c.Dict)
}

func TestSetupLayers(t *testing.T) {
	c := newTestCommand(t)
	require.NoError(t, c.Parse([]string{"-c", "testdata/rwftool.toml", "-set", "Bench.Workers=4", "-s", "codec.maxBufferSize=65536"}))

	assert.Equal(t, 1024, c.Conf.Codec.InitialBufferSize)
	assert.Equal(t, 65536, c.Conf.Codec.MaxBufferSize)
	assert.Equal(t, 500, c.Conf.Bench.Iterations)
	assert.Equal(t, 4, c.Conf.Bench.Workers)
	assert.Equal(t, Default.Bench.Fields, c.Conf.Bench.Fields)
	assert.Equal(t, 1024, omm.Conf.InitialBufferSize)
	require.NotNil(t, c.Dict)
	assert.True(t, c.Dict.IsLoaded())

	var buf bytes.Buffer
	c.Effective().WriteToKVList(&buf)
	assert.Contains(t, buf.String(), "Bench.Workers=4")
}

func TestSetupRejectsBadCodec(t *testing.T) {
	c := newTestCommand(t)
	assert.Error(t, c.Parse([]string{"-set", "Codec.MajorVersion=3"}))

	c = newTestCommand(t)
	assert.Error(t, c.Parse([]string{"-set", "novalue"}))
}

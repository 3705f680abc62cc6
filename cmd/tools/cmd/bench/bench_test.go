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


package bench

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rwf/cmd/tools/cmd/cfg"
	"rwf/pkg/omm"
)

func TestRun(t *testing.T) {
	stats, data, err := run(cfg.BenchConfig{Iterations: 20, Fields: 8, Workers: 3}, nil)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	for op := OpType(0); op < kNumOpTypes; op++ {
		assert.Equal(t, int64(60), stats.NumOps(op), op.String())
		assert.Zero(t, stats.ops[op].numErrors, op.String())
	}

	var buf bytes.Buffer
	stats.PrettyPrint(&buf)
	out := buf.String()
	assert.Contains(t, out, "DecodeIterate")
	assert.Contains(t, out, "Clone")
}

func TestNewRefresh(t *testing.T) {
	m, err := newRefresh(4)
	require.NoError(t, err)
	data, err := m.Marshal()
	require.NoError(t, err)
	require.NoError(t, decodeIterate(data, nil))

	got, err := omm.DecodeMsg(data, omm.Conf.MajorVersion, omm.Conf.MinorVersion, nil)
	require.NoError(t, err)
	assert.Equal(t, omm.MsgClassRefresh, got.Class())
	assert.Equal(t, 4, got.Payload().(*omm.FieldList).Size())
}

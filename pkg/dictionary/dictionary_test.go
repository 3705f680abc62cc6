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

package dictionary

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rwf/pkg/codec"
)

func TestLoadFile(t *testing.T) {
	d, err := LoadFile("testdata/fields.toml")
	require.NoError(t, err)
	assert.True(t, d.IsLoaded())

	f, ok := d.Field(22)
	require.True(t, ok)
	assert.Equal(t, "BID", f.Name)
	assert.Equal(t, codec.DataTypeReal, f.Type)

	f, ok = d.FieldByName("LOCAL_CODE")
	require.True(t, ok)
	assert.Equal(t, int16(-100), f.ID)

	s, ok := d.EnumDisplay(15, 840)
	assert.True(t, ok)
	assert.Equal(t, "USD", s)
	_, ok = d.EnumDisplay(15, 1)
	assert.False(t, ok)

	assert.Equal(t, "HST_CLOSE", FieldName(d, 21))
	assert.Equal(t, "9999", FieldName(d, 9999))
}

func TestEmptyDictionary(t *testing.T) {
	assert.False(t, New().IsLoaded())
	var d *DataDictionary
	assert.False(t, d.IsLoaded())
	_, ok := d.Field(1)
	assert.False(t, ok)
}

func TestLoadErrors(t *testing.T) {
	_, err := LoadBytes([]byte("[[Field]]\nId = 1\nName = \"X\"\nType = \"NOPE\"\n"))
	assert.Error(t, err)

	_, err = LoadBytes([]byte("[[Field]]\nId = 1\nName = \"X\"\nType = \"INT\"\n[[Field]]\nId = 1\nName = \"Y\"\nType = \"INT\"\n"))
	assert.Error(t, err)

	_, err = LoadBytes([]byte("[[Enum]]\nFids = [1]\nValues = { \"x\" = \"bad\" }\n"))
	assert.Error(t, err)
}

func TestWriteToRoundTrip(t *testing.T) {
	d, err := LoadFile("testdata/fields.toml")
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = d.WriteTo(&buf)
	require.NoError(t, err)

	d2, err := LoadBytes(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, d.NumFields(), d2.NumFields())
	assert.Equal(t, d.fields, d2.fields)
	assert.Equal(t, d.enums, d2.enums)
}

func TestFieldsOrdered(t *testing.T) {
	d, err := LoadFile("testdata/fields.toml")
	require.NoError(t, err)
	defs := d.Fields()
	require.Len(t, defs, d.NumFields())
	assert.Equal(t, int16(-100), defs[0].ID)
	for i := 1; i < len(defs); i++ {
		assert.Less(t, defs[i-1].ID, defs[i].ID)
	}
}

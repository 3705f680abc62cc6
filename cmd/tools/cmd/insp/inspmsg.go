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


package insp

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"rwf/cmd/tools/cmd/cfg"
	"rwf/pkg/cmd"
	"rwf/pkg/dictionary"
	"rwf/pkg/omm"
	"rwf/pkg/util"
)

type (
	printable interface {
		String() string
		StringWithDictionary(dict dictionary.Dictionary) string
	}
	decodeFunc func(b []byte, major, minor uint8, dict dictionary.Dictionary) (printable, error)

	cmdInspMsgT struct {
		cfg.Command
		optFile    string
		optType    string
		optHexDump bool
		data       []byte
	}
)

var decoders = map[string]decodeFunc{
	"msg": func(b []byte, major, minor uint8, dict dictionary.Dictionary) (printable, error) {
		return omm.DecodeMsg(b, major, minor, dict)
	},
	"fieldlist": func(b []byte, major, minor uint8, dict dictionary.Dictionary) (printable, error) {
		return omm.DecodeFieldList(b, major, minor, dict)
	},
	"elementlist": func(b []byte, major, minor uint8, dict dictionary.Dictionary) (printable, error) {
		return omm.DecodeElementList(b, major, minor, dict)
	},
	"filterlist": func(b []byte, major, minor uint8, dict dictionary.Dictionary) (printable, error) {
		return omm.DecodeFilterList(b, major, minor, dict)
	},
	"vector": func(b []byte, major, minor uint8, dict dictionary.Dictionary) (printable, error) {
		return omm.DecodeVector(b, major, minor, dict)
	},
	"series": func(b []byte, major, minor uint8, dict dictionary.Dictionary) (printable, error) {
		return omm.DecodeSeries(b, major, minor, dict)
	},
	"map": func(b []byte, major, minor uint8, dict dictionary.Dictionary) (printable, error) {
		return omm.DecodeMap(b, major, minor, dict)
	},
}

func (c *cmdInspMsgT) Init(name string, desc string) {
	c.Command.Init(name, desc)
	c.StringOption(&c.optFile, "f|file", "", "read the raw encoded bytes from a file instead of the hex argument")
	c.StringOption(&c.optType, "t|type", "msg", "what the bytes hold {msg|fieldlist|elementlist|filterlist|vector|series|map}")
	c.BoolOption(&c.optHexDump, "x|hexdump", false, "print a hex dump before the decoded form")
	c.SetSynopsis("[options] [<hex-string>]")
	c.AddExample("rwftool inspect -d fields.toml -t fieldlist 08 00 01 00 16 03 0C 0F 96",
		"decode a field list carrying BID")
}

func (c *cmdInspMsgT) Parse(args []string) (err error) {
	if err = c.Command.Parse(args); err != nil {
		return
	}
	if _, ok := decoders[strings.ToLower(c.optType)]; !ok {
		return fmt.Errorf("unknown type %s", c.optType)
	}
	if c.optFile != "" {
		c.data, err = os.ReadFile(c.optFile)
		return
	}
	if c.NArg() < 1 {
		return fmt.Errorf("missing hex msg")
	}
	c.data, err = util.ParseHexString(strings.Join(c.Args(), " "))
	return
}

func (c *cmdInspMsgT) Exec() {
	c.Validate()
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	if err := inspect(w, c.data, strings.ToLower(c.optType), c.Conf.Codec, c.Dict, c.optHexDump); err != nil {
		fmt.Fprintln(w, err)
	}
}

func inspect(w io.Writer, data []byte, typ string, conf omm.Config, dict dictionary.Dictionary, hexDump bool) error {
	fmt.Fprintf(w, "%s (%d bytes) fingerprint %08x, wire %d.%d\n",
		humanize.Bytes(uint64(len(data))), len(data), util.Fingerprint(data), conf.MajorVersion, conf.MinorVersion)
	if hexDump {
		util.HexDump(w, data)
	}
	p, err := decoders[typ](data, conf.MajorVersion, conf.MinorVersion, dict)
	if err != nil {
		return err
	}
	if dict != nil {
		fmt.Fprint(w, p.StringWithDictionary(dict))
	} else {
		fmt.Fprint(w, p.String())
	}
	return nil
}

func init() {
	c := &cmdInspMsgT{}
	c.Init("inspect", "decode and render an encoded message or container")

	cmd.Register(c)
}

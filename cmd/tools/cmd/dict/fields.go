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


package dict

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"rwf/cmd/tools/cmd/cfg"
	"rwf/pkg/cmd"
	"rwf/pkg/dictionary"
)

type cmdFieldsT struct {
	cfg.Command
	optOutFormat string
}

func (c *cmdFieldsT) Init(name string, desc string) {
	c.Command.Init(name, desc)
	c.StringOption(&c.optOutFormat, "f|output-format", "text", "output format {text|toml}")
	c.SetSynopsis("[options] [<fid|name> ...]")
	c.AddDetails("  Without arguments every field of the dictionary is listed. The toml format\n" +
		"  writes the dictionary in the form the -dictionary option loads.\n")
	c.AddExample("rwftool fields -d fields.toml BID 15", "look up BID and field 15")
}

func (c *cmdFieldsT) Parse(args []string) (err error) {
	if err = c.Command.Parse(args); err != nil {
		return
	}
	if c.Dict == nil {
		err = fmt.Errorf("no dictionary, use -dictionary or Dictionary.Path")
	}
	return
}

func (c *cmdFieldsT) Exec() {
	c.Validate()
	d := c.Dict.(*dictionary.DataDictionary)
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	if strings.ToLower(c.optOutFormat) == "toml" && c.NArg() == 0 {
		if _, err := d.WriteTo(w); err != nil {
			fmt.Fprintln(w, err)
		}
		return
	}
	if err := listFields(w, d, c.Args()); err != nil {
		fmt.Fprintln(w, err)
	}
}

// listFields writes one line per field named in keys, or per dictionary field
// when keys is empty. A key is a field id or a field name.
func listFields(w io.Writer, d *dictionary.DataDictionary, keys []string) error {
	defs := d.Fields()
	if len(keys) != 0 {
		defs = defs[:0:0]
		for _, k := range keys {
			f, ok := lookup(d, k)
			if !ok {
				return fmt.Errorf("field %s not found", k)
			}
			defs = append(defs, f)
		}
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FID\tNAME\tTYPE\tENUMS")
	for _, f := range defs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", f.ID, f.Name, f.Type, enumSummary(d, f.ID))
	}
	return tw.Flush()
}

func lookup(d *dictionary.DataDictionary, key string) (dictionary.FieldDef, bool) {
	if fid, err := strconv.ParseInt(key, 10, 16); err == nil {
		return d.Field(int16(fid))
	}
	return d.FieldByName(key)
}

func enumSummary(d *dictionary.DataDictionary, fid int16) string {
	n := d.NumEnums(fid)
	if n == 0 {
		return "-"
	}
	return strconv.Itoa(n)
}

func init() {
	c := &cmdFieldsT{}
	c.Init("fields", "list or look up field dictionary entries")

	cmd.Register(c)
}

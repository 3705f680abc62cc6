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
	"bufio"
	"fmt"
	"os"
	"strings"

	"rwf/pkg/cmd"
)

type cmdConfShow struct {
	Command
	optOutFormat string
}

func (c *cmdConfShow) Init(name string, desc string) {
	c.Command.Init(name, desc)
	c.StringOption(&c.optOutFormat, "f|output-format", "toml", "output format {toml|text}")
	c.SetSynopsis("[options]")
	c.AddDetails("  Prints the configuration after the defaults, the -config file and every -set\n" +
		"  override have been layered, in the form the -config option accepts.\n")
	c.AddExample("rwftool config -c rwf.toml -set Codec.InitialBufferSize=512 -f text",
		"show the merged configuration as key=value lines")
}

func (c *cmdConfShow) Exec() {
	c.Validate()
	writer := bufio.NewWriter(os.Stdout)
	defer writer.Flush()

	switch strings.ToLower(c.optOutFormat) {
	case "toml":
		if err := c.Effective().WriteToToml(writer); err != nil {
			fmt.Fprintln(writer, err)
		}
	case "text":
		c.Effective().WriteToKVList(writer)
	default:
		fmt.Fprintf(writer, "unknown output format %s\n", c.optOutFormat)
	}
}

func init() {
	c := &cmdConfShow{}
	c.Init("config", "show the effective rwftool configuration")

	cmd.Register(c)
}

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
	"fmt"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"rwf/pkg/cfg"
	"rwf/pkg/cmd"
	"rwf/pkg/dictionary"
	"rwf/pkg/omm"
)

type (
	Config struct {
		Codec      omm.Config
		Dictionary DictionaryConfig
		Bench      BenchConfig
	}
	DictionaryConfig struct {
		Path string
	}
	BenchConfig struct {
		Iterations int
		Fields     int
		Workers    int
	}

	// Command is embedded by rwftool commands that read the tool configuration
	// and, optionally, a field dictionary.
	Command struct {
		cmd.Command
		optConfigFile string
		optDictFile   string
		optSets       keyValueList

		Conf   Config
		Dict   dictionary.Dictionary
		config cfg.Config
	}

	keyValueList []string
)

var Default = Config{
	Codec: omm.Conf,
	Bench: BenchConfig{
		Iterations: 10000,
		Fields:     32,
		Workers:    1,
	},
}

func (l *keyValueList) String() string {
	return strings.Join(*l, ",")
}

func (l *keyValueList) Set(s string) error {
	if !strings.Contains(s, "=") {
		return fmt.Errorf("%q is not key=value", s)
	}
	*l = append(*l, s)
	return nil
}

func (c *Command) Init(name string, desc string) {
	c.Command.Init(name, desc)
	c.StringOption(&c.optConfigFile, "c|config", "", "toml configuration file")
	c.StringOption(&c.optDictFile, "d|dictionary", "", "field dictionary file, overrides Dictionary.Path")
	c.ValueOption(&c.optSets, "s|set", "override one configuration key, e.g. -set Codec.MaxBufferSize=65536")
}

func (c *Command) Parse(args []string) (err error) {
	if err = c.Command.Parse(args); err != nil {
		return
	}
	return c.Setup()
}

// Setup layers the defaults, the configuration file and the -set overrides,
// applies the Codec section and loads the dictionary if one is named.
func (c *Command) Setup() (err error) {
	if err = c.config.ReadFrom(&Default); err != nil {
		return
	}
	if c.optConfigFile != "" {
		var file cfg.Config
		if err = file.ReadFromTomlFile(c.optConfigFile); err != nil {
			return
		}
		if err = c.config.Merge(&file); err != nil {
			return
		}
	}
	for _, kv := range c.optSets {
		k, v, _ := strings.Cut(kv, "=")
		if err = c.config.SetKeyValue(k, parseValue(v)); err != nil {
			return
		}
	}
	c.Conf = Default
	if err = c.config.WriteTo(&c.Conf); err != nil {
		return
	}
	if err = omm.Configure(&c.config); err != nil {
		return
	}
	path := c.Conf.Dictionary.Path
	if c.optDictFile != "" {
		path = c.optDictFile
	}
	if path != "" {
		d, e := dictionary.LoadFile(path)
		if e != nil {
			return e
		}
		glog.V(1).Infof("dictionary %s: %d fields", path, d.NumFields())
		c.Dict = d
	}
	return
}

// Effective returns the layered configuration Setup built.
func (c *Command) Effective() *cfg.Config {
	return &c.config
}

func parseValue(s string) interface{} {
	if i, err := strconv.ParseInt(s, 0, 64); err == nil {
		return i
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

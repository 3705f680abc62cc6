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


// Package cmd dispatches rwftool sub-commands. Each command owns a FlagSet and
// registers itself by name from an init function.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"text/template"

	"github.com/golang/glog"

	"rwf/pkg/version"
)

var (
	commands   = make(map[string]ICommand)
	registered []ICommand

	usageTemplate = template.Must(template.New("usage").Parse(`
NAME
	{{.GetName}}{{with .GetDesc}} - {{.}}{{end}}

SYNOPSIS
	{{.GetName}} {{with .GetSynopsis}}{{.}}{{else}}[<args>]{{end}}

OPTION
{{.GetOptionDesc}}
{{- with .GetDetails}}
DESCRIPTION
{{.}}{{end}}
{{- with .GetExample}}
EXAMPLE
{{.}}{{end}}
`))
)

type (
	ICommand interface {
		GetName() string
		GetDesc() string
		GetSynopsis() string
		GetDetails() string
		GetOptionDesc() string
		GetExample() string
		Init(name string, desc string)
		Exec()
		Parse(args []string) error
		PrintUsage()
	}

	// Command carries the usage text of a sub-command and the glog verbosity
	// options every sub-command accepts.
	Command struct {
		Option
		name       string
		desc       string
		synopsis   string
		details    string
		examples   string
		optVModule string
		optVerbose int
	}
)

func (c *Command) Init(name string, desc string) {
	c.name = name
	c.desc = desc
	c.Option.Init(name, flag.ContinueOnError)
	c.StringOption(&c.optVModule, "vmodule", "", "comma-separated list of pattern=N settings for file-filtered logging")
	c.IntOption(&c.optVerbose, "v", 0, "log level for V logs")
	c.Option.Usage = c.PrintUsage
}

func (c *Command) SetSynopsis(str string) {
	c.synopsis = str
}

func (c *Command) GetName() string     { return c.name }
func (c *Command) GetDesc() string     { return c.desc }
func (c *Command) GetSynopsis() string { return c.synopsis }
func (c *Command) GetDetails() string  { return c.details }
func (c *Command) GetExample() string  { return c.examples }

func (c *Command) AddExample(cmdExample string, desc string) {
	c.examples += "  " + desc + "\n\t" + cmdExample + "\n\n"
}

func (c *Command) AddDetails(txt string) {
	c.details += txt
}

func (c *Command) Write(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if err := usageTemplate.Execute(tw, c); err != nil {
		fmt.Fprintln(w, err)
	}
	tw.Flush()
}

func (c *Command) PrintUsage() {
	c.Write(os.Stdout)
}

func (c *Command) Validate() {
	if !c.Parsed() {
		glog.Exit("not parsed")
	}
}

// Parse parses the command's own flags and forwards the logging ones to glog,
// whose flags live on flag.CommandLine.
func (c *Command) Parse(arguments []string) (err error) {
	if err = c.Option.Parse(arguments); err != nil {
		return
	}
	if c.optVModule != "" {
		if err = flag.Set("vmodule", c.optVModule); err != nil {
			return
		}
	}
	if c.optVerbose != 0 {
		err = flag.Set("v", strconv.Itoa(c.optVerbose))
	}
	return
}

// Register adds c under its name. A second command with the same name is
// refused.
func Register(c ICommand) bool {
	if _, found := commands[c.GetName()]; found {
		glog.Warningf("command %s has been registered", c.GetName())
		return false
	}
	commands[c.GetName()] = c
	registered = append(registered, c)
	return true
}

func GetCommand(name string) ICommand {
	return commands[name]
}

// ParseCommandLine returns the first registered command named in os.Args and
// every other argument, with those after the command name kept in order.
func ParseCommandLine() (cmd ICommand, args []string) {
	return parseArgs(os.Args[1:])
}

func parseArgs(argv []string) (cmd ICommand, args []string) {
	for i, arg := range argv {
		if cmd = GetCommand(arg); cmd != nil {
			args = append(args, argv[i+1:]...)
			return
		}
		args = append(args, arg)
	}
	return
}

// Write lists the registered commands in registration order.
func Write(w io.Writer) {
	fmt.Fprintf(w, "\nUSAGE\n  %s [-version] <command> [<args>]\n", filepath.Base(os.Args[0]))
	if len(registered) == 0 {
		return
	}
	fmt.Fprintln(w, "\nCOMMAND")
	for _, c := range registered {
		fmt.Fprintf(w, "  * %s\n      %s\n", c.GetName(), c.GetDesc())
	}
	fmt.Fprintln(w)
}

func PrintUsage() {
	Write(os.Stdout)
}

func PrintVersionOrUsage() {
	var option Option
	var displayVersion bool
	option.Init(filepath.Base(os.Args[0]), flag.ContinueOnError)
	option.BoolOption(&displayVersion, "version", false, "display version info.")
	option.Usage = PrintUsage
	if err := option.Parse(os.Args[1:]); err == nil {
		if displayVersion {
			version.PrintVersionInfo()
		} else {
			PrintUsage()
		}
	}
}

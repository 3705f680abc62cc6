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
	"bufio"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/golang/glog"

	"rwf/cmd/tools/cmd/cfg"
	"rwf/pkg/cmd"
	"rwf/pkg/codec"
	"rwf/pkg/dictionary"
	"rwf/pkg/omm"
	"rwf/pkg/util"
)

type cmdBenchT struct {
	cfg.Command
	optIterations int
	optFields     int
	optWorkers    int
}

func (c *cmdBenchT) Init(name string, desc string) {
	c.Command.Init(name, desc)
	c.IntOption(&c.optIterations, "n|iterations", 0, "operations per worker and op type, overrides Bench.Iterations")
	c.IntOption(&c.optFields, "fields", 0, "field entries in the refresh payload, overrides Bench.Fields")
	c.IntOption(&c.optWorkers, "w|workers", 0, "concurrent workers, overrides Bench.Workers")
	c.SetSynopsis("[options]")
	c.AddDetails("  Encodes, decodes and clones a RefreshMsg carrying a FieldList of Real\n" +
		"  entries and reports the latency distribution of each operation.\n")
	c.AddExample("rwftool bench -n 100000 -fields 64 -w 4", "run 4 workers of 100000 operations each")
}

func (c *cmdBenchT) Parse(args []string) (err error) {
	if err = c.Command.Parse(args); err != nil {
		return
	}
	if c.optIterations > 0 {
		c.Conf.Bench.Iterations = c.optIterations
	}
	if c.optFields > 0 {
		c.Conf.Bench.Fields = c.optFields
	}
	if c.optWorkers > 0 {
		c.Conf.Bench.Workers = c.optWorkers
	}
	b := c.Conf.Bench
	if b.Iterations <= 0 || b.Fields <= 0 || b.Fields > 0x7FFF || b.Workers <= 0 {
		err = fmt.Errorf("invalid bench setting %+v", b)
	}
	return
}

func (c *cmdBenchT) Exec() {
	c.Validate()
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	stats, data, err := run(c.Conf.Bench, c.Dict)
	if err != nil {
		fmt.Fprintln(w, err)
		return
	}
	fmt.Fprintf(w, "run %s, %d worker(s), %d fields, fingerprint %08x\n",
		util.NewRunID(), c.Conf.Bench.Workers, c.Conf.Bench.Fields, util.Fingerprint(data))
	stats.PrettyPrint(w)
}

// newRefresh builds the message every worker measures against.
func newRefresh(numFields int) (*omm.RefreshMsg, error) {
	m := omm.NewRefreshMsg()
	m.SetStreamID(1)
	m.SetDomainType(omm.DomainMarketPrice)
	if err := m.SetName("BENCH.RIC"); err != nil {
		return nil, err
	}
	m.SetServiceID(1)
	m.SetQoS(codec.QoS{Timeliness: codec.QoSTimelinessRealtime, Rate: codec.QoSRateTickByTick})
	if err := m.SetState(codec.NewState(codec.StreamStateOpen, codec.DataStateOk, codec.StatusCodeNone, "All is well")); err != nil {
		return nil, err
	}
	m.SetComplete(true)
	fl := omm.NewFieldList()
	for i := 0; i < numFields; i++ {
		if err := fl.Add(int16(i+1), codec.NewReal(int64(i)*1001+5, codec.RealExponentNeg2)); err != nil {
			return nil, err
		}
	}
	if err := m.SetPayload(fl); err != nil {
		return nil, err
	}
	return m, nil
}

// run measures conf.Workers goroutines, each owning its own message. It returns
// the statistics and the encoded form of the message.
func run(conf cfg.BenchConfig, dict dictionary.Dictionary) (*Statistics, []byte, error) {
	proto, err := newRefresh(conf.Fields)
	if err != nil {
		return nil, nil, err
	}
	data, err := proto.Marshal()
	if err != nil {
		return nil, nil, err
	}
	stats := &Statistics{}
	stats.Init(len(data))

	var wg sync.WaitGroup
	for i := 0; i < conf.Workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			m, err := newRefresh(conf.Fields)
			if err != nil {
				glog.Errorf("worker %d: %s", id, err)
				return
			}
			if _, err = m.Marshal(); err != nil {
				glog.Errorf("worker %d: %s", id, err)
				return
			}
			runWorker(m, data, conf.Iterations, dict, stats)
		}(i)
	}
	wg.Wait()
	stats.Finish()
	return stats, data, nil
}

func runWorker(m *omm.RefreshMsg, data []byte, n int, dict dictionary.Dictionary, stats *Statistics) {
	pool := util.GetBytePool(len(data))
	buf := pool.Get()
	defer pool.Put(buf)

	for i := 0; i < n; i++ {
		tm := time.Now()
		_, err := m.Encode(buf)
		stats.Put(OpEncode, time.Since(tm), err)
	}
	for i := 0; i < n; i++ {
		tm := time.Now()
		err := decodeIterate(data, dict)
		stats.Put(OpDecode, time.Since(tm), err)
	}
	for i := 0; i < n; i++ {
		tm := time.Now()
		_, err := m.Clone()
		stats.Put(OpClone, time.Since(tm), err)
	}
}

func decodeIterate(data []byte, dict dictionary.Dictionary) error {
	msg, err := omm.DecodeMsg(data, omm.Conf.MajorVersion, omm.Conf.MinorVersion, dict)
	if err != nil {
		return err
	}
	fl, ok := msg.Payload().(*omm.FieldList)
	if !ok {
		return fmt.Errorf("unexpected payload %s", msg.Payload().DataType())
	}
	it := fl.IteratorByRef()
	for it.HasNext() {
		it.Next()
	}
	return it.Err()
}

func init() {
	c := &cmdBenchT{}
	c.Init("bench", "measure encode, decode and clone latency")

	cmd.Register(c)
}

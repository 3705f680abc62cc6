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
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/dustin/go-humanize"
)

type (
	OpType uint8

	OpStat struct {
		hist      *hdrhistogram.Histogram
		mtx       sync.Mutex
		total     time.Duration
		numErrors int64
	}

	Statistics struct {
		ops      [kNumOpTypes]OpStat
		msgSize  int
		tmStart  time.Time
		tmFinish time.Time
	}

	StatsData struct {
		throughput  float32
		avgLatency  time.Duration
		minLatency  time.Duration
		maxLatency  time.Duration
		p50Latency  time.Duration
		p99Latency  time.Duration
		p999Latency time.Duration
		numOps      int64
	}
)

const (
	OpEncode OpType = iota
	OpDecode
	OpClone
	kNumOpTypes
)

var opTypeNames = [kNumOpTypes]string{"Encode", "DecodeIterate", "Clone"}

func (t OpType) String() string {
	if t < kNumOpTypes {
		return opTypeNames[t]
	}
	return "Unknown"
}

func (s *OpStat) Init() {
	s.mtx.Lock()
	if s.hist == nil {
		s.hist = hdrhistogram.New(1, int64(10*time.Second), 3)
	}
	s.mtx.Unlock()
}

func (s *OpStat) Put(tm time.Duration, err error) {
	s.Init()
	s.mtx.Lock()
	s.hist.RecordValue(int64(tm))
	s.total += tm
	if err != nil {
		s.numErrors++
	}
	s.mtx.Unlock()
}

func (s *OpStat) GetStats() (stat StatsData) {
	s.Init()
	s.mtx.Lock()
	stat.numOps = s.hist.TotalCount()
	stat.minLatency = time.Duration(s.hist.Min())
	stat.maxLatency = time.Duration(s.hist.Max())
	stat.p50Latency = time.Duration(s.hist.ValueAtQuantile(50.))
	stat.p99Latency = time.Duration(s.hist.ValueAtQuantile(99.))
	stat.p999Latency = time.Duration(s.hist.ValueAtQuantile(99.9))
	total := s.total
	s.mtx.Unlock()

	if stat.numOps != 0 && total != 0 {
		v := float32(total) / float32(stat.numOps)
		stat.avgLatency = time.Duration(v)
		stat.throughput = 1.0e9 / v
	}
	return
}

func (s *Statistics) Init(msgSize int) {
	for i := range s.ops {
		s.ops[i].Init()
	}
	s.msgSize = msgSize
	s.tmStart = time.Now()
}

func (s *Statistics) Put(typ OpType, tm time.Duration, err error) {
	s.ops[typ].Put(tm, err)
}

func (s *Statistics) Finish() {
	s.tmFinish = time.Now()
}

func (s *Statistics) NumOps(typ OpType) int64 {
	return s.ops[typ].GetStats().numOps
}

func (s *Statistics) PrettyPrint(w io.Writer) {
	round := func(d time.Duration) time.Duration {
		return d.Round(10 * time.Nanosecond)
	}
	fmt.Fprintf(w, "message size %s, elapsed %s\n", humanize.Bytes(uint64(s.msgSize)), s.tmFinish.Sub(s.tmStart).Round(time.Millisecond))
	fmt.Fprintln(w, `
    op/s    |                               latency                               | number of  | throughput |   operation   | number of
  average   | average    | min        | max        |        50% |        99% |      99.9% | operations |  per core  |               |  errors
------------+------------+------------+------------+------------+------------+------------+------------+------------+---------------+-----------`)
	for i := OpType(0); i < kNumOpTypes; i++ {
		stat := s.ops[i].GetStats()
		if stat.numOps == 0 {
			continue
		}
		bytesPerSec := uint64(float64(stat.throughput) * float64(s.msgSize))
		fmt.Fprintf(w, "%12.0f %12s %12s %12s %12s %12s %12s %12s %10s/s %15s %11d\n",
			stat.throughput, round(stat.avgLatency), round(stat.minLatency), round(stat.maxLatency),
			round(stat.p50Latency), round(stat.p99Latency), round(stat.p999Latency),
			humanize.Comma(stat.numOps), humanize.Bytes(bytesPerSec), i, s.ops[i].numErrors)
	}
}

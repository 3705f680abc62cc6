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

package omm

import (
	"rwf/pkg/codec"
)

type loadTypeSource uint8

const (
	sourceNone loadTypeSource = iota
	sourceSummary
	sourceAdd
)

// loadTypeGuard fixes the entry load type of a Vector, Series or Map on the
// first summary or the first container-typed entry. NoData loads always pass.
type loadTypeGuard struct {
	dataType codec.DataType
	source   loadTypeSource
	entries  bool
}

func (g *loadTypeGuard) declared() codec.DataType {
	if g.source == sourceNone {
		return codec.DataTypeNoData
	}
	return g.dataType
}

func (g *loadTypeGuard) method() string {
	if g.source == sourceSummary {
		return "summaryData()"
	}
	return "add()"
}

// checkAdd reports whether an entry load of type t may be added. It changes
// nothing; noteAdd records the entry once it is in.
func (g *loadTypeGuard) checkAdd(container string, t codec.DataType) error {
	if t != codec.DataTypeNoData && g.source != sourceNone && t != g.dataType {
		return newError(ErrorCodeContainerTypeConflict,
			"Attempt to add entry of "+t.ConstName()+" while "+container+" entry load type is set to "+
				g.dataType.ConstName()+" with "+g.method()+" method")
	}
	return nil
}

func (g *loadTypeGuard) noteAdd(t codec.DataType) {
	if t == codec.DataTypeNoData {
		return
	}
	if g.source == sourceNone {
		g.dataType = t
		g.source = sourceAdd
	}
	g.entries = true
}

func (g *loadTypeGuard) checkSummary(container string, t codec.DataType) error {
	if g.entries && t != g.dataType {
		return newError(ErrorCodeContainerTypeConflict,
			"Attempt to set summaryData() with "+t.ConstName()+" while "+container+" entry load type is set to "+
				g.dataType.ConstName()+" with add() method")
	}
	return nil
}

func (g *loadTypeGuard) noteSummary(t codec.DataType) {
	g.dataType = t
	g.source = sourceSummary
}

// restore rebuilds the guard from a decoded header.
func (g *loadTypeGuard) restore(t codec.DataType, hasSummary bool, count int) {
	*g = loadTypeGuard{}
	switch {
	case hasSummary:
		g.dataType, g.source = t, sourceSummary
	case t != codec.DataTypeNoData:
		g.dataType, g.source = t, sourceAdd
	}
	g.entries = count > 0 && g.source != sourceNone
}

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

package codec

import (
	"math"
	"strconv"
	"strings"
)

type RealHint uint8

const (
	RealExponentNeg14 RealHint = iota
	RealExponentNeg13
	RealExponentNeg12
	RealExponentNeg11
	RealExponentNeg10
	RealExponentNeg9
	RealExponentNeg8
	RealExponentNeg7
	RealExponentNeg6
	RealExponentNeg5
	RealExponentNeg4
	RealExponentNeg3
	RealExponentNeg2
	RealExponentNeg1
	RealExponent0
	RealExponentPos1
	RealExponentPos2
	RealExponentPos3
	RealExponentPos4
	RealExponentPos5
	RealExponentPos6
	RealExponentPos7
	RealDivisor1
	RealDivisor2
	RealDivisor4
	RealDivisor8
	RealDivisor16
	RealDivisor32
	RealDivisor64
	RealDivisor128
	RealDivisor256
)

const (
	RealInfinity    RealHint = 33
	RealNegInfinity RealHint = 34
	RealNotANumber  RealHint = 35
)

// Real is a fixed point decimal: Mantissa scaled by the exponent or divisor named
// by Hint.
type Real struct {
	Mantissa int64
	Hint     RealHint
}

func NewReal(mantissa int64, hint RealHint) Real {
	return Real{Mantissa: mantissa, Hint: hint}
}

// RealFromFloat rounds f to the precision of hint. Infinities and NaN map to the
// matching special hints.
func RealFromFloat(f float64, hint RealHint) Real {
	switch {
	case math.IsNaN(f):
		return Real{Hint: RealNotANumber}
	case math.IsInf(f, 1):
		return Real{Hint: RealInfinity}
	case math.IsInf(f, -1):
		return Real{Hint: RealNegInfinity}
	}
	switch {
	case hint <= RealExponentPos7:
		return Real{Mantissa: int64(math.Round(f / math.Pow10(int(hint)-int(RealExponent0)))), Hint: hint}
	case hint <= RealDivisor256:
		return Real{Mantissa: int64(math.Round(f * float64(hint.divisor()))), Hint: hint}
	}
	return Real{Hint: RealNotANumber}
}

func (h RealHint) IsValid() bool {
	return h <= RealDivisor256 || h == RealInfinity || h == RealNegInfinity || h == RealNotANumber
}

func (h RealHint) isSpecial() bool {
	return h == RealInfinity || h == RealNegInfinity || h == RealNotANumber
}

func (h RealHint) divisor() int64 {
	return int64(1) << uint(h-RealDivisor1)
}

func (h RealHint) String() string {
	switch {
	case h < RealExponent0:
		return "ExponentNeg" + strconv.Itoa(int(RealExponent0-h))
	case h == RealExponent0:
		return "Exponent0"
	case h <= RealExponentPos7:
		return "ExponentPos" + strconv.Itoa(int(h-RealExponent0))
	case h <= RealDivisor256:
		return "Divisor" + strconv.FormatInt(h.divisor(), 10)
	case h == RealInfinity:
		return "Infinity"
	case h == RealNegInfinity:
		return "NegInfinity"
	case h == RealNotANumber:
		return "NotANumber"
	}
	return "Unknown RealHint " + strconv.Itoa(int(h))
}

func (v Real) DataType() DataType { return DataTypeReal }

func (v Real) Float64() float64 {
	switch {
	case v.Hint == RealInfinity:
		return math.Inf(1)
	case v.Hint == RealNegInfinity:
		return math.Inf(-1)
	case v.Hint == RealNotANumber:
		return math.NaN()
	case v.Hint <= RealExponentPos7:
		return float64(v.Mantissa) * math.Pow10(int(v.Hint)-int(RealExponent0))
	case v.Hint <= RealDivisor256:
		return float64(v.Mantissa) / float64(v.Hint.divisor())
	}
	return math.NaN()
}

func (v Real) String() string {
	switch {
	case v.Hint == RealInfinity:
		return "Inf"
	case v.Hint == RealNegInfinity:
		return "-Inf"
	case v.Hint == RealNotANumber:
		return "NaN"
	case v.Hint < RealExponent0:
		return formatScaled(v.Mantissa, int(RealExponent0-v.Hint))
	case v.Hint <= RealExponentPos7:
		if v.Mantissa == 0 {
			return "0"
		}
		return strconv.FormatInt(v.Mantissa, 10) + strings.Repeat("0", int(v.Hint-RealExponent0))
	case v.Hint <= RealDivisor256:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	}
	return "Unknown Real"
}

func formatScaled(mantissa int64, places int) string {
	neg := mantissa < 0
	u := uint64(mantissa)
	if neg {
		u = uint64(-mantissa)
	}
	digits := strconv.FormatUint(u, 10)
	if len(digits) <= places {
		digits = strings.Repeat("0", places-len(digits)+1) + digits
	}
	s := digits[:len(digits)-places] + "." + digits[len(digits)-places:]
	if neg {
		s = "-" + s
	}
	return s
}

func (v Real) encode(w *Writer) {
	if !v.Hint.IsValid() {
		w.Fail(errorf(ErrInvalidRealHint, strconv.Itoa(int(v.Hint))))
		return
	}
	w.PutUint8(uint8(v.Hint))
	if v.Hint.isSpecial() {
		return
	}
	putUintN(w, uint64(v.Mantissa), intSize(v.Mantissa))
}

func decodeReal(b []byte) (Primitive, error) {
	hint := RealHint(b[0])
	if !hint.IsValid() {
		return nil, errorf(ErrInvalidRealHint, strconv.Itoa(int(hint)))
	}
	mantissa := b[1:]
	if hint.isSpecial() {
		if len(mantissa) != 0 {
			return nil, errorf(ErrInvalidData, "Real "+hint.String()+" with mantissa")
		}
		return Real{Hint: hint}, nil
	}
	if len(mantissa) > 8 {
		return nil, errorf(ErrInvalidData, "Real mantissa length "+strconv.Itoa(len(mantissa)))
	}
	return Real{Mantissa: getInt(mantissa), Hint: hint}, nil
}

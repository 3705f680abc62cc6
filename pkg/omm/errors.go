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
	"errors"
	"strconv"

	"rwf/pkg/codec"
)

type ErrorCode int

const (
	ErrorCodeContainerTypeConflict ErrorCode = iota + 1
	ErrorCodeCloneOfEmptyBuffer
	ErrorCodeInvalidUsage
	ErrorCodeInvalidArgument
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCodeContainerTypeConflict: "ContainerTypeConflict",
	ErrorCodeCloneOfEmptyBuffer:    "CloneOfEmptyBuffer",
	ErrorCodeInvalidUsage:          "InvalidUsage",
	ErrorCodeInvalidArgument:       "InvalidArgument",
}

func (c ErrorCode) String() string {
	if s, ok := errorCodeNames[c]; ok {
		return s
	}
	return "ErrorCode(" + strconv.Itoa(int(c)) + ")"
}

// Error is a usage error raised by the object model. Error() is the bare text.
type Error struct {
	Code ErrorCode
	Text string
	err  error
}

func (e *Error) Error() string {
	return e.Text
}

func (e *Error) Unwrap() error {
	return e.err
}

func newError(code ErrorCode, text string) *Error {
	return &Error{Code: code, Text: text}
}

// IsErrorCode reports whether err is an *Error with the given code.
func IsErrorCode(err error, code ErrorCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

var errIteratorOverrun = newError(ErrorCodeInvalidUsage, "Attempt to call Next() when HasNext() is false")

func checkVersion(major uint8) error {
	if major != codec.MajorVersion {
		return &Error{
			Code: ErrorCodeInvalidArgument,
			Text: "Unsupported major version " + strconv.Itoa(int(major)) + ", expected " + strconv.Itoa(int(codec.MajorVersion)),
			err:  codec.ErrUnsupportedVersion,
		}
	}
	return nil
}

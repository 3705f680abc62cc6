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

type ProtocolError struct {
	what string
}

var (
	ErrBufferTooSmall      = &ProtocolError{"Buffer too small"}
	ErrInvalidData         = &ProtocolError{"Invalid data"}
	ErrIncompleteData      = &ProtocolError{"Incomplete data"}
	ErrUnsupportedVersion  = &ProtocolError{"Unsupported protocol version"}
	ErrUnsupportedDataType = &ProtocolError{"Unsupported data type"}
	ErrInvalidRealHint     = &ProtocolError{"Invalid real hint"}
	ErrValueOutOfRange     = &ProtocolError{"Value out of range"}
)

func NewProtocolError(err error) *ProtocolError {
	return &ProtocolError{
		what: err.Error(),
	}
}

func (e *ProtocolError) Error() string {
	return "ProtocolError: " + e.what
}

// detailedError keeps errors.Is working against the sentinel while adding context.
type detailedError struct {
	sentinel *ProtocolError
	detail   string
}

func (e *detailedError) Error() string {
	return e.sentinel.Error() + ": " + e.detail
}

func (e *detailedError) Unwrap() error {
	return e.sentinel
}

func errorf(sentinel *ProtocolError, detail string) error {
	return &detailedError{sentinel: sentinel, detail: detail}
}

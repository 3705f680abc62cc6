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

import "strconv"

type (
	StreamState uint8
	DataState   uint8
	StatusCode  uint8
)

const (
	StreamStateUnspecified StreamState = iota
	StreamStateOpen
	StreamStateNonStreaming
	StreamStateClosedRecover
	StreamStateClosed
	StreamStateRedirected
)

const (
	DataStateNoChange DataState = iota
	DataStateOk
	DataStateSuspect
)

const (
	StatusCodeNone StatusCode = iota
	StatusCodeNotFound
	StatusCodeTimeout
	StatusCodeNotAuthorized
	StatusCodeInvalidArgument
	StatusCodeUsageError
	StatusCodePreempted
	StatusCodeJustInTimeConflationStarted
	StatusCodeRealTimeResumed
	StatusCodeFailoverStarted
	StatusCodeFailoverCompleted
	StatusCodeGapDetected
	StatusCodeNoResources
	StatusCodeTooManyItems
	StatusCodeAlreadyOpen
	StatusCodeSourceUnknown
	StatusCodeNotOpen
	_
	_
	StatusCodeNonUpdatingItem
	StatusCodeUnsupportedViewType
	StatusCodeInvalidView
	StatusCodeFullViewProvided
	StatusCodeUnableToRequestAsBatch
	_
	_
	StatusCodeNoBatchViewSupportInReq
	StatusCodeExceededMaxMountsPerUser
	StatusCodeError
	StatusCodeDacsDown
	StatusCodeUserUnknownToPermSys
	StatusCodeDacsMaxLoginsReached
	StatusCodeDacsUserAccessToAppDenied
)

var (
	streamStateNames = [...]string{"Unspecified", "Open", "NonStreaming", "ClosedRecover", "Closed", "ClosedRedirected"}
	dataStateNames   = [...]string{"NoChange", "Ok", "Suspect"}

	statusCodeNames = map[StatusCode]string{
		StatusCodeNone:                        "None",
		StatusCodeNotFound:                    "NotFound",
		StatusCodeTimeout:                     "Timeout",
		StatusCodeNotAuthorized:               "NotAuthorized",
		StatusCodeInvalidArgument:             "InvalidArgument",
		StatusCodeUsageError:                  "UsageError",
		StatusCodePreempted:                   "Preempted",
		StatusCodeJustInTimeConflationStarted: "JustInTimeConflationStarted",
		StatusCodeRealTimeResumed:             "RealTimeResumed",
		StatusCodeFailoverStarted:             "FailoverStarted",
		StatusCodeFailoverCompleted:           "FailoverCompleted",
		StatusCodeGapDetected:                 "GapDetected",
		StatusCodeNoResources:                 "NoResources",
		StatusCodeTooManyItems:                "TooManyItems",
		StatusCodeAlreadyOpen:                 "AlreadyOpen",
		StatusCodeSourceUnknown:               "SourceUnknown",
		StatusCodeNotOpen:                     "NotOpen",
		StatusCodeNonUpdatingItem:             "NonUpdatingItem",
		StatusCodeUnsupportedViewType:         "UnsupportedViewType",
		StatusCodeInvalidView:                 "InvalidView",
		StatusCodeFullViewProvided:            "FullViewProvided",
		StatusCodeUnableToRequestAsBatch:      "UnableToRequestAsBatch",
		StatusCodeNoBatchViewSupportInReq:     "NoBatchViewSupportInReq",
		StatusCodeExceededMaxMountsPerUser:    "ExceededMaxMountsPerUser",
		StatusCodeError:                       "Error",
		StatusCodeDacsDown:                    "DacsDown",
		StatusCodeUserUnknownToPermSys:        "UserUnknownToPermSys",
		StatusCodeDacsMaxLoginsReached:        "DacsMaxLoginsReached",
		StatusCodeDacsUserAccessToAppDenied:   "DacsUserAccessToAppDenied",
	}
)

func (s StreamState) String() string {
	if int(s) < len(streamStateNames) {
		return streamStateNames[s]
	}
	return "Unknown StreamState value " + strconv.Itoa(int(s))
}

func (s DataState) String() string {
	if int(s) < len(dataStateNames) {
		return dataStateNames[s]
	}
	return "Unknown DataState value " + strconv.Itoa(int(s))
}

func (c StatusCode) String() string {
	if name, ok := statusCodeNames[c]; ok {
		return name
	}
	return "Unknown StatusCode value " + strconv.Itoa(int(c))
}

// State is the combined stream state, data state and status of an item stream.
type State struct {
	StreamState StreamState
	DataState   DataState
	Code        StatusCode
	Text        string
}

func NewState(stream StreamState, data DataState, code StatusCode, text string) State {
	return State{StreamState: stream, DataState: data, Code: code, Text: text}
}

func (v State) DataType() DataType { return DataTypeState }

func (v State) String() string {
	return v.StreamState.String() + " / " + v.DataState.String() + " / " + v.Code.String() + " / '" + v.Text + "'"
}

func (v State) encode(w *Writer) {
	if v.StreamState > 0x1F || v.DataState > 0x07 {
		w.Fail(errorf(ErrValueOutOfRange, "State "+v.String()))
		return
	}
	w.PutUint8(uint8(v.StreamState)<<3 | uint8(v.DataState))
	w.PutUint8(uint8(v.Code))
	w.PutString15(v.Text)
}

// ReadState decodes a state from the current position of r.
func ReadState(r *Reader) State {
	b := r.Uint8()
	v := State{
		StreamState: StreamState(b >> 3),
		DataState:   DataState(b & 0x07),
	}
	v.Code = StatusCode(r.Uint8())
	v.Text = string(r.Buffer15())
	return v
}

func decodeState(b []byte) (Primitive, error) {
	r := NewReader(b)
	v := ReadState(r)
	if err := r.Err(); err != nil {
		return nil, err
	}
	if r.Remaining() != 0 {
		return nil, errorf(ErrInvalidData, "State trailing bytes")
	}
	return v, nil
}

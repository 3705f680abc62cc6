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

/*
Package util implements some utility functions.
*/
package util

import (
	uuid "github.com/satori/go.uuid"
	"github.com/spaolacci/murmur3"
)

// Fingerprint is a cheap content hash used to compare encoded buffers.
func Fingerprint(data []byte) uint32 {
	return murmur3.Sum32(data)
}

// NewRunID returns a random identifier tagging one tool run in its report.
func NewRunID() string {
	return uuid.NewV4().String()
}

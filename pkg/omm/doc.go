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
Package omm implements the containers and messages of the Open Message Model on
top of the primitive codec.

Every container (FieldList, ElementList, FilterList, Vector, Series, Map) and
every message (RefreshMsg, UpdateMsg, StatusMsg, GenericMsg, PostMsg, AckMsg) is
in one of three lifecycle states:

	Blank      freshly constructed or cleared
	Populated  changed through setters; encoded bytes, if any, are stale
	WireBound  backed by bytes handed to a Decode function

Setters move a WireBound object back to Populated. String renders only WireBound
objects decoded with a dictionary; StringWithDictionary renders any state and
round-trips Populated objects through the encoder first. Clone re-encodes the
object into a fresh buffer and decodes it again, so a clone never shares bytes or
entries with its source.

Decoding is lazy: Decode parses the container header and entries are decoded
one at a time by the iterators. Decode takes ownership of the byte slice it is
given and the caller must not modify it afterwards.

None of the types in this package are safe for concurrent mutation.
*/
package omm

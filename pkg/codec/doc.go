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
Package codec implements the primitive layer of the RWF binary encoding.

Primitive content

A primitive is written without its own length. The enclosing field entry, element
entry, map key or array item carries the length, so every decoder below is handed
the exact content slice. Zero-length content is a blank value of the declared type.

  Type      | Tag | Content
  ----------+-----+-------------------------------------------------------------
  Int       |   3 | two's complement, 1..8 bytes, minimal
  UInt      |   4 | unsigned, 1..8 bytes, minimal
  Float     |   5 | IEEE-754 binary32
  Double    |   6 | IEEE-754 binary64
  Real      |   8 | hint byte + mantissa (two's complement, 0..8 bytes)
  Date      |   9 | day(1) month(1) year(2)
  Time      |  10 | hour minute [second [ms(2) [us(2) [ns(2)]]]]
  DateTime  |  11 | Date + Time
  QoS       |  12 | flags byte [timeInfo(2)] [rateInfo(2)]
  State     |  13 | stream/data byte, code(1), text(u15rb length)
  Enum      |  14 | unsigned, 1..2 bytes
  Array     |  15 | item type(1) item width(1) count(2) items
  Buffer    |  16 | raw
  Ascii     |  17 | raw
  Utf8      |  18 | raw
  Rmtes     |  19 | raw

Real hint byte

    0..14   10^-14 .. 10^0
   15..21   10^1 .. 10^7
   22..30   1/1, 1/2, 1/4 .. 1/256
       33   +Infinity
       34   -Infinity
       35   NaN

  Any other value is rejected on decode.

QoS flags byte

        | 0| 1| 2| 3| 4| 5| 6| 7|
  ------+--------+-----------+--+
        | timel. | rate      |D |
  ------+--------+-----------+--+

  timeInfo is present iff timeliness is Delayed, rateInfo iff rate is TimeConflated.

Length encodings

  u15rb   0xxxxxxx                     (0..0x7F)
          1xxxxxxx xxxxxxxx            (0..0x7FFF)
  u16ob   n                            (n < 0xFE)
          0xFE u16
  u32ob   n                            (n < 0xFE)
          0xFE u16
          0xFF u32
*/
package codec

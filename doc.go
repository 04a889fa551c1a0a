// Copyright 2026 by Yahor Paulovich. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package spanjson is a high-performance JSON codec that converts typed Go
// values to and from JSON text over two wire encodings -- UTF-8 bytes and
// UTF-16 code units -- with a single shared engine.  Formatters are resolved
// once per (type, encoding, policy) triple and cached, so hot paths never
// touch reflection per element.  Decoders build sequences in pooled scratch
// storage and encoders pre-size their buffers from a sticky per-type hint,
// so steady-state serialization avoids reallocation.
//
// Serialization
//
// Marshal and Unmarshal work over UTF-8 bytes:
//
//	out, err := spanjson.Marshal([]int{1, 2, 3})
//	v, err := spanjson.Unmarshal[[]int](out)
//
// MarshalUTF16, MarshalString, UnmarshalUTF16 and UnmarshalString drive the
// same engine over 16-bit code units.  MarshalTo and UnmarshalFrom adapt the
// synchronous core to byte streams, honoring a context only at I/O
// boundaries.
//
// Enumerations
//
// Go has no reflectable enumeration members, so named integer types are
// declared to a Resolver up front and serialized by name:
//
//	spanjson.RegisterEnum(spanjson.Default, map[Color]string{
//		Red: "Red", Green: "Green", Blue: "Blue",
//	})
//
// Wire format
//
// Strictly RFC 8259.  No BOM is emitted and output is never pretty-printed.
// A UTF-8 byte-order-mark on input is stripped; parsing fails fast on
// structural violations with a typed *CodecError carrying the symbol offset.
package spanjson

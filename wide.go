// Copyright 2026 by Yahor Paulovich. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package spanjson

import (
	"context"
	"encoding/binary"
	"io"
	"unicode/utf16"
	"unsafe"
)

// The UTF-16 session surface.  The engine runs over 16-bit code units;
// strings are transcoded only at the boundary.

const wideBOM = 0xFEFF

// MarshalUTF16 serializes v to UTF-16 code units using the default
// resolver.
func MarshalUTF16[T any](v T) ([]uint16, error) {
	return MarshalUTF16With(Default, v)
}

// MarshalUTF16With serializes v to UTF-16 code units under res's policy.
func MarshalUTF16With[T any](res *Resolver, v T) ([]uint16, error) {
	entry, err := entryFor[uint16](res, typeFor[T]())
	if err != nil {
		return nil, err
	}
	w := acquireWriter[uint16](int(entry.serializeHint.Load()), res.maxNesting)
	defer releaseWriter(w)
	if err := entry.formatter.(valFormatter[uint16]).encode(w, unsafe.Pointer(&v), 0); err != nil {
		return nil, err
	}
	entry.serializeHint.Store(int64(w.Pos()))
	out := make([]uint16, w.Pos())
	copy(out, w.buf)
	return out, nil
}

// MarshalString serializes v over the UTF-16 engine and materializes the
// code units as a string.
func MarshalString[T any](v T) (string, error) {
	return MarshalStringWith(Default, v)
}

// MarshalStringWith is MarshalString under res's policy.
func MarshalStringWith[T any](res *Resolver, v T) (string, error) {
	entry, err := entryFor[uint16](res, typeFor[T]())
	if err != nil {
		return "", err
	}
	w := acquireWriter[uint16](int(entry.serializeHint.Load()), res.maxNesting)
	defer releaseWriter(w)
	if err := entry.formatter.(valFormatter[uint16]).encode(w, unsafe.Pointer(&v), 0); err != nil {
		return "", err
	}
	entry.serializeHint.Store(int64(w.Pos()))
	return string(utf16.Decode(w.buf)), nil
}

// UnmarshalUTF16 deserializes a value of type T from UTF-16 code units
// using the default resolver.
func UnmarshalUTF16[T any](units []uint16) (T, error) {
	return UnmarshalUTF16With[T](Default, units)
}

// UnmarshalUTF16With deserializes a value of type T from UTF-16 code units
// under res's policy.  A leading byte-order-mark code unit is stripped.
func UnmarshalUTF16With[T any](res *Resolver, units []uint16) (T, error) {
	var zero T
	if len(units) > 0 && units[0] == wideBOM {
		units = units[1:]
	}
	entry, err := entryFor[uint16](res, typeFor[T]())
	if err != nil {
		return zero, err
	}
	r := &Reader[uint16]{buf: units, wide: true, maxDepth: res.maxNesting}
	var v T
	if err := entry.formatter.(valFormatter[uint16]).decode(r, unsafe.Pointer(&v)); err != nil {
		return zero, err
	}
	r.skipWhitespace()
	if r.pos != len(r.buf) {
		return zero, r.errToken("trailing characters after value")
	}
	entry.deserializeHint.Store(int64(len(units)))
	return v, nil
}

// UnmarshalString deserializes a value of type T from a string through the
// UTF-16 engine.
func UnmarshalString[T any](s string) (T, error) {
	return UnmarshalUTF16[T](utf16.Encode([]rune(s)))
}

// MarshalUTF16To serializes v and writes the code units to sink as
// UTF-16LE bytes.  ctx is honored only at the I/O boundary.
func MarshalUTF16To[T any](ctx context.Context, sink io.Writer, v T) error {
	if err := ctx.Err(); err != nil {
		return cancelledErr(err)
	}
	entry, err := entryFor[uint16](Default, typeFor[T]())
	if err != nil {
		return err
	}
	w := acquireWriter[uint16](int(entry.serializeHint.Load()), Default.maxNesting)
	defer releaseWriter(w)
	if err := entry.formatter.(valFormatter[uint16]).encode(w, unsafe.Pointer(&v), 0); err != nil {
		return err
	}
	entry.serializeHint.Store(int64(w.Pos()))

	raw := rentBytes(2 * w.Pos())
	defer putBytes(raw)
	raw = raw[:2*w.Pos()]
	for i, u := range w.buf {
		binary.LittleEndian.PutUint16(raw[2*i:], u)
	}
	if err := ctx.Err(); err != nil {
		return cancelledErr(err)
	}
	_, err = sink.Write(raw)
	return err
}

// UnmarshalUTF16From reads UTF-16LE bytes from src until EOF and
// deserializes a value of type T.  An odd trailing byte is UnexpectedEnd.
func UnmarshalUTF16From[T any](ctx context.Context, src io.Reader) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, cancelledErr(err)
	}
	entry, err := entryFor[uint16](Default, typeFor[T]())
	if err != nil {
		return zero, err
	}

	buf := rentBytes(2 * int(entry.deserializeHint.Load()))
	defer func() { putBytes(buf) }()
	filled := 0
	for {
		if err := ctx.Err(); err != nil {
			return zero, cancelledErr(err)
		}
		if filled == len(buf) {
			bigger := rentBytes(2 * len(buf))
			copy(bigger, buf[:filled])
			putBytes(buf)
			buf = bigger
		}
		n, err := src.Read(buf[filled:])
		filled += n
		if err == io.EOF {
			break
		}
		if err != nil {
			return zero, err
		}
	}
	if filled%2 != 0 {
		return zero, codecErr(UnexpectedEnd, filled/2, "odd byte count in UTF-16 input")
	}
	units := make([]uint16, filled/2)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(buf[2*i:])
	}
	return UnmarshalUTF16[T](units)
}

// Copyright 2026 by Yahor Paulovich. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package spanjson

import (
	"bytes"
	"context"
	"io"
	"sync"
	"unsafe"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Marshal serializes v to UTF-8 JSON bytes using the default resolver.
func Marshal[T any](v T) ([]byte, error) {
	return MarshalWith(Default, v)
}

// MarshalWith serializes v to UTF-8 JSON bytes under res's policy.  The
// writer is pre-sized from the sticky hint for the triple and the hint is
// updated with the final position, so steady-state serialization of the
// same shape avoids reallocation.
func MarshalWith[T any](res *Resolver, v T) ([]byte, error) {
	entry, err := entryFor[byte](res, typeFor[T]())
	if err != nil {
		return nil, err
	}
	w := acquireWriter[byte](int(entry.serializeHint.Load()), res.maxNesting)
	defer releaseWriter(w)
	if err := entry.formatter.(valFormatter[byte]).encode(w, unsafe.Pointer(&v), 0); err != nil {
		return nil, err
	}
	entry.serializeHint.Store(int64(w.Pos()))
	out := make([]byte, w.Pos())
	copy(out, w.buf)
	return out, nil
}

// Unmarshal deserializes a value of type T from UTF-8 JSON bytes using the
// default resolver.
func Unmarshal[T any](data []byte) (T, error) {
	return UnmarshalWith[T](Default, data)
}

// UnmarshalWith deserializes a value of type T from UTF-8 JSON bytes under
// res's policy.  A leading UTF-8 byte-order-mark is stripped.  Trailing
// non-whitespace after the value is an error.
func UnmarshalWith[T any](res *Resolver, data []byte) (T, error) {
	var zero T
	data = bytes.TrimPrefix(data, utf8BOM)
	entry, err := entryFor[byte](res, typeFor[T]())
	if err != nil {
		return zero, err
	}
	r := &Reader[byte]{buf: data, maxDepth: res.maxNesting}
	var v T
	if err := entry.formatter.(valFormatter[byte]).decode(r, unsafe.Pointer(&v)); err != nil {
		return zero, err
	}
	r.skipWhitespace()
	if r.pos != len(r.buf) {
		return zero, r.errToken("trailing characters after value")
	}
	entry.deserializeHint.Store(int64(len(data)))
	return v, nil
}

func cancelledErr(cause error) *CodecError {
	return &CodecError{Kind: Cancelled, cause: cause}
}

// MarshalTo serializes v and writes the UTF-8 bytes to sink.  The
// formatter engine runs synchronously over the pooled buffer; ctx is
// honored only at the I/O boundary.  The buffer returns to the pool once
// the sink has accepted it.
func MarshalTo[T any](ctx context.Context, sink io.Writer, v T) error {
	if err := ctx.Err(); err != nil {
		return cancelledErr(err)
	}
	entry, err := entryFor[byte](Default, typeFor[T]())
	if err != nil {
		return err
	}
	w := acquireWriter[byte](int(entry.serializeHint.Load()), Default.maxNesting)
	defer releaseWriter(w)
	if err := entry.formatter.(valFormatter[byte]).encode(w, unsafe.Pointer(&v), 0); err != nil {
		return err
	}
	entry.serializeHint.Store(int64(w.Pos()))
	if err := ctx.Err(); err != nil {
		return cancelledErr(err)
	}
	_, err = sink.Write(w.buf)
	return err
}

// UnmarshalFrom reads UTF-8 JSON from src until EOF and deserializes a
// value of type T.  A *bytes.Buffer source takes a zero-copy fast path over
// its unread bytes; any other source, including other in-memory readers, is
// read in chunks into a pooled buffer sized by the sticky deserialization
// hint, doubling when full.  ctx is honored only between reads.
func UnmarshalFrom[T any](ctx context.Context, src io.Reader) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, cancelledErr(err)
	}
	if bb, ok := src.(*bytes.Buffer); ok {
		return Unmarshal[T](bb.Bytes())
	}
	entry, err := entryFor[byte](Default, typeFor[T]())
	if err != nil {
		return zero, err
	}

	buf := rentBytes(int(entry.deserializeHint.Load()))
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
	return Unmarshal[T](buf[:filled])
}

// bytePool recycles chunk buffers for the async read path.
var bytePool sync.Pool

const maxPooledChunkCap = 1 << 20

func rentBytes(n int) []byte {
	if n < defaultSizeHint {
		n = defaultSizeHint
	}
	if v := bytePool.Get(); v != nil {
		b := v.([]byte)
		if cap(b) >= n {
			return b[:cap(b)]
		}
	}
	return make([]byte, n)
}

func putBytes(b []byte) {
	if cap(b) > maxPooledChunkCap {
		return
	}
	bytePool.Put(b[:0])
}

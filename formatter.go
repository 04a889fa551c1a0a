// Copyright 2026 by Yahor Paulovich. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package spanjson

import (
	"unsafe"
)

// valFormatter is the internal encoder/decoder pair for one value type over
// one encoding.  Implementations are stateless after construction and
// globally shared; they operate on a pointer to the value so composites can
// address elements and fields without boxing.
//
// encode emits the JSON representation of the value at ptr.  nesting is the
// recursion counter threaded from the session top; composites bump it only
// when entering a recursion-candidate child type and fail with
// NestingExceeded past the writer's bound.
//
// decode consumes one JSON value at the reader cursor into ptr, advancing
// the cursor by exactly the symbols consumed.
type valFormatter[S Symbol] interface {
	encode(w *Writer[S], ptr unsafe.Pointer, nesting int) error
	decode(r *Reader[S], ptr unsafe.Pointer) error
}

// Formatter is the public typed surface of a cached formatter singleton for
// one (T, S, policy) triple.  It is stateless and safe for concurrent use.
type Formatter[T any, S Symbol] struct {
	inner valFormatter[S]
}

// Serialize emits the JSON representation of v into w, starting from the
// given nesting count (zero at the top of a session).
func (f *Formatter[T, S]) Serialize(w *Writer[S], v T, nesting int) error {
	return f.inner.encode(w, unsafe.Pointer(&v), nesting)
}

// Deserialize consumes one JSON value from r and returns it.
func (f *Formatter[T, S]) Deserialize(r *Reader[S]) (T, error) {
	var v T
	err := f.inner.decode(r, unsafe.Pointer(&v))
	return v, err
}

// deferredFormatter breaks build-time cycles: while a type graph is being
// walked, a self-reference resolves to this placeholder, which forwards to
// the real formatter installed when the walk completes.
type deferredFormatter[S Symbol] struct {
	actual valFormatter[S]
}

func (d *deferredFormatter[S]) encode(w *Writer[S], ptr unsafe.Pointer, nesting int) error {
	return d.actual.encode(w, ptr, nesting)
}

func (d *deferredFormatter[S]) decode(r *Reader[S], ptr unsafe.Pointer) error {
	return d.actual.decode(r, ptr)
}

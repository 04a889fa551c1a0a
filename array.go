// Copyright 2026 by Yahor Paulovich. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package spanjson

import (
	"unsafe"

	"github.com/modern-go/reflect2"
)

// sliceFormatter serializes and deserializes a homogeneous ordered
// sequence.  Decoding accumulates elements in pooled scratch storage and
// copies them into an exactly-sized result; an empty array yields the
// shared empty sequence.
type sliceFormatter[S Symbol] struct {
	sliceType     *reflect2.UnsafeSliceType
	elemType      reflect2.Type
	elem          valFormatter[S]
	elemRecursive bool
	scratch       *scratchPool
	empty         unsafe.Pointer
}

func newSliceFormatter[S Symbol](st *reflect2.UnsafeSliceType, et reflect2.Type, ef valFormatter[S]) *sliceFormatter[S] {
	return &sliceFormatter[S]{
		sliceType:     st,
		elemType:      et,
		elem:          ef,
		elemRecursive: isRecursionCandidate(et.Type1()),
		scratch:       newScratchPool(st, et),
		empty:         st.UnsafeMakeSlice(0, 0),
	}
}

func (f *sliceFormatter[S]) encode(w *Writer[S], ptr unsafe.Pointer, nesting int) error {
	if f.sliceType.UnsafeIsNil(ptr) {
		w.WriteNull()
		return nil
	}
	next := nesting
	if f.elemRecursive {
		next++
		if next > w.maxNesting {
			return codecErr(NestingExceeded, w.Pos(), "maximum depth exceeded")
		}
	}
	w.WriteBeginArray()
	n := f.sliceType.UnsafeLengthOf(ptr)
	for i := 0; i < n; i++ {
		if i > 0 {
			w.WriteValueSeparator()
		}
		if err := f.elem.encode(w, f.sliceType.UnsafeGetIndex(ptr, i), next); err != nil {
			return err
		}
	}
	w.WriteEndArray()
	return nil
}

func (f *sliceFormatter[S]) decode(r *Reader[S], ptr unsafe.Pointer) error {
	null, err := r.ReadIsNull()
	if err != nil {
		return err
	}
	if null {
		f.sliceType.UnsafeSetNil(ptr)
		return nil
	}
	if err := r.ReadBeginArray(); err != nil {
		return err
	}
	if err := r.enterContainer(); err != nil {
		return err
	}

	slot := f.scratch.rent(minScratchCap)
	count := 0
	defer func() { f.scratch.giveBack(slot, count) }()

	for {
		end, err := r.ReadIsEndArrayOrValueSeparator(&count)
		if err != nil {
			return err
		}
		if end {
			break
		}
		if count > slot.cap {
			slot = f.scratch.grow(slot, count-1)
		}
		if err := f.elem.decode(r, f.scratch.elemAt(slot, count-1)); err != nil {
			return err
		}
	}
	r.leaveContainer()

	if count == 0 {
		f.sliceType.UnsafeSet(ptr, f.empty)
		return nil
	}
	final := f.sliceType.UnsafeMakeSlice(count, count)
	for i := 0; i < count; i++ {
		f.elemType.UnsafeSet(f.sliceType.UnsafeGetIndex(final, i), f.scratch.elemAt(slot, i))
	}
	f.sliceType.UnsafeSet(ptr, final)
	return nil
}

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

// mapFormatter serializes string-keyed maps as JSON objects.  Member order
// follows Go map iteration and is not stable.
type mapFormatter[S Symbol] struct {
	mapType       *reflect2.UnsafeMapType
	keyType       reflect2.Type
	elemType      reflect2.Type
	elem          valFormatter[S]
	elemRecursive bool
}

func (f *mapFormatter[S]) encode(w *Writer[S], ptr unsafe.Pointer, nesting int) error {
	if f.mapType.UnsafeIsNil(ptr) {
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
	w.WriteBeginObject()
	iter := f.mapType.UnsafeIterate(ptr)
	first := true
	for iter.HasNext() {
		kp, vp := iter.UnsafeNext()
		if !first {
			w.WriteValueSeparator()
		}
		first = false
		w.WriteString(*(*string)(kp))
		w.WriteNameSeparator()
		if err := f.elem.encode(w, vp, next); err != nil {
			return err
		}
	}
	w.WriteEndObject()
	return nil
}

func (f *mapFormatter[S]) decode(r *Reader[S], ptr unsafe.Pointer) error {
	null, err := r.ReadIsNull()
	if err != nil {
		return err
	}
	if null {
		*(*unsafe.Pointer)(ptr) = nil
		return nil
	}
	if err := r.ReadBeginObject(); err != nil {
		return err
	}
	if err := r.enterContainer(); err != nil {
		return err
	}
	f.mapType.UnsafeSet(ptr, f.mapType.UnsafeMakeMap(0))
	count := 0
	for {
		end, err := r.ReadIsEndObjectOrValueSeparator(&count)
		if err != nil {
			return err
		}
		if end {
			break
		}
		key, err := r.ReadString()
		if err != nil {
			return err
		}
		if err := r.ReadNameSeparator(); err != nil {
			return err
		}
		kp := f.keyType.UnsafeNew()
		*(*string)(kp) = key
		vp := f.elemType.UnsafeNew()
		if err := f.elem.decode(r, vp); err != nil {
			return err
		}
		f.mapType.UnsafeSetIndex(ptr, kp, vp)
	}
	r.leaveContainer()
	return nil
}

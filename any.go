// Copyright 2026 by Yahor Paulovich. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package spanjson

import (
	"reflect"
	"unsafe"
)

// anyFormatter handles dynamically typed values.  Serialization resolves
// the runtime type through the resolver; deserialization follows the
// encoding/json convention: objects become map[string]any, arrays []any,
// numbers float64.
type anyFormatter[S Symbol] struct {
	resolver *Resolver
}

func (f *anyFormatter[S]) encode(w *Writer[S], ptr unsafe.Pointer, nesting int) error {
	v := *(*any)(ptr)
	if v == nil {
		w.WriteNull()
		return nil
	}
	rt := reflect.TypeOf(v)
	entry, err := entryFor[S](f.resolver, rt)
	if err != nil {
		return err
	}
	rv := reflect.New(rt)
	rv.Elem().Set(reflect.ValueOf(v))
	return entry.formatter.(valFormatter[S]).encode(w, rv.UnsafePointer(), nesting)
}

func (f *anyFormatter[S]) decode(r *Reader[S], ptr unsafe.Pointer) error {
	r.skipWhitespace()
	if r.pos >= len(r.buf) {
		return r.errEnd()
	}
	switch uint16(r.buf[r.pos]) {
	case 'n':
		if err := r.readLiteral("null"); err != nil {
			return err
		}
		*(*any)(ptr) = nil
		return nil
	case 't', 'f':
		v, err := r.ReadBool()
		if err != nil {
			return err
		}
		*(*any)(ptr) = v
		return nil
	case '"':
		v, err := r.ReadString()
		if err != nil {
			return err
		}
		*(*any)(ptr) = v
		return nil
	case '[':
		return decodeDynamic[[]any](f.resolver, r, ptr)
	case '{':
		return decodeDynamic[map[string]any](f.resolver, r, ptr)
	}
	v, err := r.ReadFloat64()
	if err != nil {
		return err
	}
	*(*any)(ptr) = v
	return nil
}

func decodeDynamic[T any, S Symbol](res *Resolver, r *Reader[S], ptr unsafe.Pointer) error {
	entry, err := entryFor[S](res, typeFor[T]())
	if err != nil {
		return err
	}
	var v T
	if err := entry.formatter.(valFormatter[S]).decode(r, unsafe.Pointer(&v)); err != nil {
		return err
	}
	*(*any)(ptr) = v
	return nil
}

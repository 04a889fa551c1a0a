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

// ptrFormatter represents an optional value: nil serializes as the null
// literal, anything else delegates to the inner formatter.  The wrapper
// does not bump the nesting counter; the inner type carries the
// recursion-candidate property.
type ptrFormatter[S Symbol] struct {
	elemType reflect2.Type
	elem     valFormatter[S]
}

func (f *ptrFormatter[S]) encode(w *Writer[S], ptr unsafe.Pointer, nesting int) error {
	p := *(*unsafe.Pointer)(ptr)
	if p == nil {
		w.WriteNull()
		return nil
	}
	return f.elem.encode(w, p, nesting)
}

func (f *ptrFormatter[S]) decode(r *Reader[S], ptr unsafe.Pointer) error {
	null, err := r.ReadIsNull()
	if err != nil {
		return err
	}
	if null {
		*(*unsafe.Pointer)(ptr) = nil
		return nil
	}
	elem := f.elemType.UnsafeNew()
	if err := f.elem.decode(r, elem); err != nil {
		return err
	}
	*(*unsafe.Pointer)(ptr) = elem
	return nil
}

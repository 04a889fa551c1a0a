// Copyright 2026 by Yahor Paulovich. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package spanjson

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/modern-go/reflect2"
)

// sliceHeader mirrors the runtime slice layout.  Scratch slots are
// addressed through it; the data pointer keeps the backing array reachable.
type sliceHeader struct {
	data unsafe.Pointer
	len  int
	cap  int
}

// scratchOutstanding counts rentals not yet returned, across every pool.
// An operation must leave it where it found it on all exit paths.
var scratchOutstanding atomic.Int64

// minScratchCap is the initial element capacity of a rented scratch slot.
const minScratchCap = 4

// scratchPool hands out reusable typed scratch storage for array decoding.
// Each slice formatter shards its own sync.Pool; rent and giveBack are safe
// for concurrent use.
type scratchPool struct {
	sliceType *reflect2.UnsafeSliceType
	elemType  reflect2.Type
	elemSize  uintptr
	zeroElem  unsafe.Pointer
	pool      sync.Pool // *scratchSlot
}

// scratchSlot is one rental: a slice allocated with len == cap so every
// element is addressable.
type scratchSlot struct {
	header unsafe.Pointer // *sliceHeader
	cap    int
}

func newScratchPool(st *reflect2.UnsafeSliceType, et reflect2.Type) *scratchPool {
	return &scratchPool{
		sliceType: st,
		elemType:  et,
		elemSize:  et.Type1().Size(),
		zeroElem:  et.UnsafeNew(),
	}
}

// rent returns a slot with capacity at least minCap.  The pool may hand
// back a larger slot; the extra capacity is simply unused.
func (p *scratchPool) rent(minCap int) *scratchSlot {
	scratchOutstanding.Add(1)
	if v := p.pool.Get(); v != nil {
		s := v.(*scratchSlot)
		if s.cap >= minCap {
			return s
		}
		p.pool.Put(s)
	}
	c := minScratchCap
	for c < minCap {
		c *= 2
	}
	return &scratchSlot{header: p.sliceType.UnsafeMakeSlice(c, c), cap: c}
}

// giveBack zeroes the used prefix so pooled storage retains no references,
// then returns the slot.
func (p *scratchPool) giveBack(s *scratchSlot, used int) {
	scratchOutstanding.Add(-1)
	if used > s.cap {
		used = s.cap
	}
	for i := 0; i < used; i++ {
		p.elemType.UnsafeSet(p.elemAt(s, i), p.zeroElem)
	}
	p.pool.Put(s)
}

// grow rents a slot of double capacity, copies the first count elements,
// and releases the old slot.
func (p *scratchPool) grow(s *scratchSlot, count int) *scratchSlot {
	bigger := p.rent(s.cap * 2)
	for i := 0; i < count; i++ {
		p.elemType.UnsafeSet(p.elemAt(bigger, i), p.elemAt(s, i))
	}
	p.giveBack(s, count)
	return bigger
}

func (p *scratchPool) elemAt(s *scratchSlot, i int) unsafe.Pointer {
	h := (*sliceHeader)(s.header)
	return unsafe.Add(h.data, uintptr(i)*p.elemSize)
}

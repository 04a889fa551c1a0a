// Copyright 2026 by Yahor Paulovich. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package spanjson

import (
	"fmt"
	"reflect"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/modern-go/reflect2"
	"golang.org/x/sync/singleflight"
)

// Resolver maps a value type to its canonical formatter singleton, one per
// (type, encoding, policy) triple.  Lookups are a lock-free cache hit on
// hot paths; first-use construction is deduplicated so a racing build is
// discarded without publishing.
//
// The zero policy is exclude-nulls, original-case: aggregate members whose
// value is null are omitted and member names are emitted as declared.
type Resolver struct {
	maxNesting   int
	includeNulls bool

	cache sync.Map // cacheKey -> *cacheEntry
	group singleflight.Group
	enums sync.Map // rtype -> *enumSpec
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithMaxNesting sets the bound on composite recursion depth.  The default
// is 256.
func WithMaxNesting(n int) ResolverOption {
	return func(r *Resolver) { r.maxNesting = n }
}

// WithIncludeNulls emits aggregate members with null values instead of
// omitting them.
func WithIncludeNulls() ResolverOption {
	return func(r *Resolver) { r.includeNulls = true }
}

// NewResolver returns a resolver with its own formatter cache and policy.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{maxNesting: defaultMaxNesting}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Default is the resolver used by the package-level entry points.
var Default = NewResolver()

type cacheKey struct {
	rtype uintptr
	wide  bool
}

// cacheEntry pairs a published formatter with the sticky size hints for its
// triple.  Hints are heuristics updated with last-writer-wins stores.
type cacheEntry struct {
	formatter       any // valFormatter[S] for the key's encoding
	serializeHint   atomic.Int64
	deserializeHint atomic.Int64
}

func newCacheEntry(f any) *cacheEntry {
	e := &cacheEntry{formatter: f}
	e.serializeHint.Store(defaultSizeHint)
	e.deserializeHint.Store(defaultSizeHint)
	return e
}

// entryFor returns the cache entry for rt over encoding S, building and
// publishing the formatter graph on first use.
func entryFor[S Symbol](r *Resolver, rt reflect.Type) (*cacheEntry, error) {
	t2 := reflect2.Type2(rt)
	key := cacheKey{rtype: t2.RType(), wide: isWide[S]()}
	if v, ok := r.cache.Load(key); ok {
		return v.(*cacheEntry), nil
	}

	flightKey := strconv.FormatUint(uint64(key.rtype), 16)
	if key.wide {
		flightKey += ":w"
	}
	v, err, _ := r.group.Do(flightKey, func() (any, error) {
		if v, ok := r.cache.Load(key); ok {
			return v, nil
		}
		b := &builder[S]{resolver: r, seen: make(map[uintptr]*deferredFormatter[S])}
		if _, err := b.formatterFor(t2); err != nil {
			return nil, err
		}
		v, _ := r.cache.Load(key)
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*cacheEntry), nil
}

// FormatterOf returns the canonical formatter for T over encoding S under
// the resolver's policy.
func FormatterOf[T any, S Symbol](r *Resolver) (*Formatter[T, S], error) {
	entry, err := entryFor[S](r, typeFor[T]())
	if err != nil {
		return nil, err
	}
	return &Formatter[T, S]{inner: entry.formatter.(valFormatter[S])}, nil
}

func typeFor[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// builder walks one type graph and constructs its formatter nodes.  Cycles
// resolve through deferred placeholders installed before recursion.
type builder[S Symbol] struct {
	resolver *Resolver
	seen     map[uintptr]*deferredFormatter[S]
}

func (b *builder[S]) formatterFor(typ reflect2.Type) (valFormatter[S], error) {
	key := cacheKey{rtype: typ.RType(), wide: isWide[S]()}
	if v, ok := b.resolver.cache.Load(key); ok {
		return v.(*cacheEntry).formatter.(valFormatter[S]), nil
	}
	if d, ok := b.seen[typ.RType()]; ok {
		return d, nil
	}
	d := &deferredFormatter[S]{}
	b.seen[typ.RType()] = d

	f, err := b.build(typ)
	if err != nil {
		delete(b.seen, typ.RType())
		return nil, err
	}
	d.actual = f

	// Publish; a concurrent winner is kept and this build discarded.
	if v, loaded := b.resolver.cache.LoadOrStore(key, newCacheEntry(f)); loaded {
		return v.(*cacheEntry).formatter.(valFormatter[S]), nil
	}
	return f, nil
}

func (b *builder[S]) build(typ reflect2.Type) (valFormatter[S], error) {
	if spec, ok := b.resolver.enums.Load(typ.RType()); ok {
		return &enumFormatter[S]{spec: spec.(*enumSpec)}, nil
	}

	rt := typ.Type1()
	switch rt.Kind() {
	case reflect.Bool:
		return boolFormatter[S]{}, nil
	case reflect.String:
		return stringFormatter[S]{}, nil
	case reflect.Int:
		return intFormatter[S]{}, nil
	case reflect.Int8:
		return int8Formatter[S]{}, nil
	case reflect.Int16:
		return int16Formatter[S]{}, nil
	case reflect.Int32:
		return int32Formatter[S]{}, nil
	case reflect.Int64:
		return int64Formatter[S]{}, nil
	case reflect.Uint:
		return uintFormatter[S]{}, nil
	case reflect.Uint8:
		return uint8Formatter[S]{}, nil
	case reflect.Uint16:
		return uint16Formatter[S]{}, nil
	case reflect.Uint32:
		return uint32Formatter[S]{}, nil
	case reflect.Uint64:
		return uint64Formatter[S]{}, nil
	case reflect.Float32:
		return float32Formatter[S]{}, nil
	case reflect.Float64:
		return float64Formatter[S]{}, nil
	case reflect.Slice:
		elem2 := reflect2.Type2(rt.Elem())
		ef, err := b.formatterFor(elem2)
		if err != nil {
			return nil, err
		}
		return newSliceFormatter[S](typ.(*reflect2.UnsafeSliceType), elem2, ef), nil
	case reflect.Ptr:
		elem2 := reflect2.Type2(rt.Elem())
		ef, err := b.formatterFor(elem2)
		if err != nil {
			return nil, err
		}
		return &ptrFormatter[S]{elemType: elem2, elem: ef}, nil
	case reflect.Map:
		if rt.Key().Kind() != reflect.String {
			return nil, fmt.Errorf("spanjson: unsupported map key type %s", rt.Key())
		}
		elem2 := reflect2.Type2(rt.Elem())
		ef, err := b.formatterFor(elem2)
		if err != nil {
			return nil, err
		}
		return &mapFormatter[S]{
			mapType:       typ.(*reflect2.UnsafeMapType),
			keyType:       reflect2.Type2(rt.Key()),
			elemType:      elem2,
			elem:          ef,
			elemRecursive: isRecursionCandidate(rt.Elem()),
		}, nil
	case reflect.Struct:
		return b.buildStruct(typ.(*reflect2.UnsafeStructType))
	case reflect.Interface:
		if rt.NumMethod() != 0 {
			return nil, fmt.Errorf("spanjson: unsupported interface type %s", rt)
		}
		return &anyFormatter[S]{resolver: b.resolver}, nil
	}
	return nil, fmt.Errorf("spanjson: unsupported type %s", rt)
}

// serializeHintFor exposes the sticky hint for tests.
func serializeHintFor[T any, S Symbol](r *Resolver) int {
	entry, err := entryFor[S](r, typeFor[T]())
	if err != nil {
		return 0
	}
	return int(entry.serializeHint.Load())
}

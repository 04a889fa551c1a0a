// Copyright 2026 by Yahor Paulovich. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package spanjson

import (
	"reflect"
	"strconv"
	"unsafe"

	"github.com/modern-go/reflect2"
)

// Enumerable constrains the underlying integer types an enumeration may
// have.
type Enumerable interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// enumSpec holds the serialize and deserialize dispatchers for one
// registered enumeration.  Built once at registration; read-only after
// publication.  When member values cluster, value-to-name dispatch goes
// through a dense jump table instead of the map; name-to-value dispatch
// always uses the name map.
type enumSpec struct {
	kind    reflect.Kind
	byValue map[int64]string
	byName  map[string]int64
	dense   []string
	min     int64
}

func (s *enumSpec) nameOf(v int64) (string, bool) {
	if s.dense != nil {
		i := v - s.min
		if i >= 0 && i < int64(len(s.dense)) && s.dense[i] != "" {
			return s.dense[i], true
		}
		return "", false
	}
	name, ok := s.byValue[v]
	return name, ok
}

// RegisterEnum declares the members of a named integer type to the
// resolver.  Values of E then serialize as JSON strings of their member
// names.  Registration is idempotent; a second registration for the same
// type is discarded.
func RegisterEnum[E Enumerable](r *Resolver, names map[E]string) {
	rt := reflect.TypeOf((*E)(nil)).Elem()
	spec := &enumSpec{
		kind:    rt.Kind(),
		byValue: make(map[int64]string, len(names)),
		byName:  make(map[string]int64, len(names)),
	}
	first := true
	var min, max int64
	for v, name := range names {
		iv := int64(v)
		spec.byValue[iv] = name
		spec.byName[name] = iv
		if first || iv < min {
			min = iv
		}
		if first || iv > max {
			max = iv
		}
		first = false
	}
	if !first {
		if span := max - min + 1; span > 0 && span <= int64(2*len(names)+16) {
			spec.min = min
			spec.dense = make([]string, span)
			for v, name := range spec.byValue {
				spec.dense[v-min] = name
			}
		}
	}
	r.enums.LoadOrStore(reflect2.Type2(rt).RType(), spec)
}

type enumFormatter[S Symbol] struct {
	spec *enumSpec
}

func (f *enumFormatter[S]) encode(w *Writer[S], ptr unsafe.Pointer, _ int) error {
	v := loadEnum(ptr, f.spec.kind)
	name, ok := f.spec.nameOf(v)
	if !ok {
		return codecErr(InvalidEnumValue, w.Pos(), "value is not a declared enum member")
	}
	w.WriteString(name)
	return nil
}

func (f *enumFormatter[S]) decode(r *Reader[S], ptr unsafe.Pointer) error {
	s, err := r.ReadString()
	if err != nil {
		return err
	}
	v, ok := f.spec.byName[s]
	if !ok {
		return codecErr(InvalidEnumName, r.Pos(), "unknown enum name "+strconv.Quote(s))
	}
	storeEnum(ptr, f.spec.kind, v)
	return nil
}

func loadEnum(ptr unsafe.Pointer, k reflect.Kind) int64 {
	switch k {
	case reflect.Int:
		return int64(*(*int)(ptr))
	case reflect.Int8:
		return int64(*(*int8)(ptr))
	case reflect.Int16:
		return int64(*(*int16)(ptr))
	case reflect.Int32:
		return int64(*(*int32)(ptr))
	case reflect.Int64:
		return *(*int64)(ptr)
	case reflect.Uint:
		return int64(*(*uint)(ptr))
	case reflect.Uint8:
		return int64(*(*uint8)(ptr))
	case reflect.Uint16:
		return int64(*(*uint16)(ptr))
	case reflect.Uint32:
		return int64(*(*uint32)(ptr))
	case reflect.Uint64:
		return int64(*(*uint64)(ptr))
	}
	return 0
}

func storeEnum(ptr unsafe.Pointer, k reflect.Kind, v int64) {
	switch k {
	case reflect.Int:
		*(*int)(ptr) = int(v)
	case reflect.Int8:
		*(*int8)(ptr) = int8(v)
	case reflect.Int16:
		*(*int16)(ptr) = int16(v)
	case reflect.Int32:
		*(*int32)(ptr) = int32(v)
	case reflect.Int64:
		*(*int64)(ptr) = v
	case reflect.Uint:
		*(*uint)(ptr) = uint(v)
	case reflect.Uint8:
		*(*uint8)(ptr) = uint8(v)
	case reflect.Uint16:
		*(*uint16)(ptr) = uint16(v)
	case reflect.Uint32:
		*(*uint32)(ptr) = uint32(v)
	case reflect.Uint64:
		*(*uint64)(ptr) = uint64(v)
	}
}

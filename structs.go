// Copyright 2026 by Yahor Paulovich. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package spanjson

import (
	"reflect"
	"strings"
	"unsafe"

	"github.com/modern-go/reflect2"
)

// structField is one member of a user aggregate: its wire name, formatter,
// and the policy bits resolved at build time.
type structField[S Symbol] struct {
	name      string
	formatter valFormatter[S]
	field     reflect2.StructField
	fieldType reflect2.Type
	omitNull  bool
	recursive bool
}

// structFormatter serializes a user aggregate as a JSON object.  Member
// names follow the declared name (or json tag) in original case; under the
// exclude-nulls policy, members holding null are omitted.  Unknown members
// on input are skipped.
type structFormatter[S Symbol] struct {
	typ    *reflect2.UnsafeStructType
	fields []*structField[S]
	byName map[string]*structField[S]
}

func (b *builder[S]) buildStruct(st *reflect2.UnsafeStructType) (valFormatter[S], error) {
	rt := st.Type1()
	sf := &structFormatter[S]{typ: st, byName: make(map[string]*structField[S])}
	excludeNulls := !b.resolver.includeNulls

	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.PkgPath != "" {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("json"); ok {
			base, _, _ := strings.Cut(tag, ",")
			if base == "-" {
				continue
			}
			if base != "" {
				name = base
			}
		}
		ff, err := b.formatterFor(reflect2.Type2(f.Type))
		if err != nil {
			return nil, err
		}
		k := f.Type.Kind()
		field := &structField[S]{
			name:      name,
			formatter: ff,
			field:     st.Field(i),
			fieldType: reflect2.Type2(f.Type),
			omitNull: excludeNulls &&
				(k == reflect.Ptr || k == reflect.Slice || k == reflect.Map || k == reflect.Interface),
			recursive: isRecursionCandidate(f.Type),
		}
		sf.fields = append(sf.fields, field)
		sf.byName[name] = field
	}
	return sf, nil
}

func (f *structFormatter[S]) encode(w *Writer[S], ptr unsafe.Pointer, nesting int) error {
	w.WriteBeginObject()
	first := true
	for _, fld := range f.fields {
		fp := fld.field.UnsafeGet(ptr)
		if fld.omitNull && fld.fieldType.UnsafeIsNil(fp) {
			continue
		}
		next := nesting
		if fld.recursive {
			next++
			if next > w.maxNesting {
				return codecErr(NestingExceeded, w.Pos(), "maximum depth exceeded")
			}
		}
		if !first {
			w.WriteValueSeparator()
		}
		first = false
		w.WriteString(fld.name)
		w.WriteNameSeparator()
		if err := fld.formatter.encode(w, fp, next); err != nil {
			return err
		}
	}
	w.WriteEndObject()
	return nil
}

func (f *structFormatter[S]) decode(r *Reader[S], ptr unsafe.Pointer) error {
	if err := r.ReadBeginObject(); err != nil {
		return err
	}
	if err := r.enterContainer(); err != nil {
		return err
	}
	count := 0
	for {
		end, err := r.ReadIsEndObjectOrValueSeparator(&count)
		if err != nil {
			return err
		}
		if end {
			break
		}
		name, err := r.ReadString()
		if err != nil {
			return err
		}
		if err := r.ReadNameSeparator(); err != nil {
			return err
		}
		if fld, ok := f.byName[name]; ok {
			if err := fld.formatter.decode(r, fld.field.UnsafeGet(ptr)); err != nil {
				return err
			}
			continue
		}
		if err := r.SkipValue(); err != nil {
			return err
		}
	}
	r.leaveContainer()
	return nil
}

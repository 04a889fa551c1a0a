// Copyright 2026 by Yahor Paulovich. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package spanjson

import (
	"reflect"
	"sync"
)

var recursionCache sync.Map // reflect.Type -> bool

// isRecursionCandidate reports whether values of t may transitively
// contain further t, directly or indirectly.  Composites consult this
// before recursing to decide whether to bump the nesting counter.  The
// walk runs once per type and is cached.
func isRecursionCandidate(t reflect.Type) bool {
	if v, ok := recursionCache.Load(t); ok {
		return v.(bool)
	}
	res := typeReaches(t, t, make(map[reflect.Type]bool))
	recursionCache.Store(t, res)
	return res
}

// typeReaches reports whether target is reachable from the children of t.
// Interfaces can hold any value, so they reach everything.
func typeReaches(t, target reflect.Type, visited map[reflect.Type]bool) bool {
	if t.Kind() == reflect.Interface {
		return true
	}
	if visited[t] {
		return false
	}
	visited[t] = true
	switch t.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Array:
		if t.Elem() == target {
			return true
		}
		return typeReaches(t.Elem(), target, visited)
	case reflect.Map:
		if t.Key() == target || t.Elem() == target {
			return true
		}
		return typeReaches(t.Key(), target, visited) || typeReaches(t.Elem(), target, visited)
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			ft := t.Field(i).Type
			if ft == target || typeReaches(ft, target, visited) {
				return true
			}
		}
	}
	return false
}

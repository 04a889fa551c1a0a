// Copyright 2026 by Yahor Paulovich. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package spanjson

import (
	"reflect"
	"testing"
)

// TestFormatterSingleton requires repeated lookups of the same triple to
// return the one canonical formatter instance.
func TestFormatterSingleton(t *testing.T) {
	t.Parallel()

	a, err := FormatterOf[[]int, byte](Default)
	if err != nil {
		t.Fatal(err)
	}
	b, err := FormatterOf[[]int, byte](Default)
	if err != nil {
		t.Fatal(err)
	}
	if a.inner != b.inner {
		t.Fatal("expected one canonical formatter per triple")
	}
	wide, err := FormatterOf[[]int, uint16](Default)
	if err != nil {
		t.Fatal(err)
	}
	if any(wide.inner) == any(a.inner) {
		t.Fatal("encodings must not share formatter instances")
	}
}

// TestFormatterDrive drives a formatter over an explicit writer and reader
// pair, the way the session façade does.
func TestFormatterDrive(t *testing.T) {
	t.Parallel()

	f, err := FormatterOf[[]string, byte](Default)
	if err != nil {
		t.Fatal(err)
	}
	w := newWriter[byte](16, defaultMaxNesting)
	if err := f.Serialize(w, []string{"x", "y"}, 0); err != nil {
		t.Fatal(err)
	}
	if got := string(w.Symbols()); got != `["x","y"]` {
		t.Fatalf("unexpected output %s", got)
	}

	r := NewReader[byte]([]byte(`["x","y"]`))
	v, err := f.Deserialize(r)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(v, []string{"x", "y"}) {
		t.Fatalf("unexpected value %#v", v)
	}
	if r.Pos() != 9 {
		t.Fatalf("cursor advanced to %d, expected 9", r.Pos())
	}
}

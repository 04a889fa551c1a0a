// Copyright 2026 by Yahor Paulovich. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package spanjson

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// checkRoundTrip serializes v over both encodings, compares the UTF-8 text
// against want when given, and requires deserialization to reproduce v.
func checkRoundTrip[T any](t *testing.T, v T, want string) {
	t.Helper()

	out, err := Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want != "" && string(out) != want {
		t.Fatalf("Marshal produced %s, expected %s", out, want)
	}
	back, err := Unmarshal[T](out)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(back, v) {
		t.Fatalf("UTF-8 round trip got %#v, expected %#v", back, v)
	}

	text, err := MarshalString(v)
	if err != nil {
		t.Fatalf("MarshalString: %v", err)
	}
	if text != string(out) {
		t.Fatalf("encodings disagree: UTF-16 produced %s, UTF-8 produced %s", text, out)
	}
	wide, err := UnmarshalString[T](text)
	if err != nil {
		t.Fatalf("UnmarshalString: %v", err)
	}
	if !reflect.DeepEqual(wide, v) {
		t.Fatalf("UTF-16 round trip got %#v, expected %#v", wide, v)
	}
}

// checkDecodeError requires deserialization of input to fail with the
// given kind over both encodings, optionally matching the message.
func checkDecodeError[T any](t *testing.T, input string, kind ErrorKind, errStr string) {
	t.Helper()

	_, err := Unmarshal[T]([]byte(input))
	requireKind(t, err, kind, errStr)
	_, err = UnmarshalString[T](input)
	requireKind(t, err, kind, errStr)
}

func requireKind(t *testing.T, err error, kind ErrorKind, errStr string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error but got nil", kind)
	}
	var ce *CodecError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CodecError, got %T: %v", err, err)
	}
	if ce.Kind != kind {
		t.Fatalf("expected kind %v, got %v (%v)", kind, ce.Kind, err)
	}
	if errStr != "" && !strings.Contains(err.Error(), errStr) {
		t.Fatalf("expected error with '%s', but got %v", errStr, err)
	}
}

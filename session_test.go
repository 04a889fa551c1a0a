// Copyright 2026 by Yahor Paulovich. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package spanjson

import (
	"bytes"
	"context"
	"errors"
	"io"
	"reflect"
	"testing"
	"unicode/utf16"
)

func TestStickyHintFollowsOutput(t *testing.T) {
	type hinted struct {
		Payload []int `json:"payload"`
	}
	v := hinted{Payload: make([]int, 64)}

	out1, err := Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if hint := serializeHintFor[hinted, byte](Default); hint != len(out1) {
		t.Fatalf("sticky hint is %d, expected final position %d", hint, len(out1))
	}
	out2, err := Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out1, out2) {
		t.Fatalf("repeated serialization differs: %s vs %s", out1, out2)
	}
}

func TestUTF16Surface(t *testing.T) {
	t.Parallel()

	units, err := MarshalUTF16([]int{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if want := utf16.Encode([]rune("[1,2,3]")); !reflect.DeepEqual(units, want) {
		t.Fatalf("got %v, expected %v", units, want)
	}
	back, err := UnmarshalUTF16[[]int](units)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back, []int{1, 2, 3}) {
		t.Fatalf("round trip mismatch: %#v", back)
	}
}

func TestInputBOMStripped(t *testing.T) {
	t.Parallel()

	v, err := Unmarshal[int](append([]byte{0xEF, 0xBB, 0xBF}, []byte("42")...))
	if err != nil {
		t.Fatal(err)
	}
	if v != 42 {
		t.Fatalf("expected 42, got %d", v)
	}

	wide, err := UnmarshalUTF16[int](append([]uint16{0xFEFF}, utf16.Encode([]rune("42"))...))
	if err != nil {
		t.Fatal(err)
	}
	if wide != 42 {
		t.Fatalf("expected 42, got %d", wide)
	}
}

func TestMarshalTo(t *testing.T) {
	t.Parallel()

	var sink bytes.Buffer
	if err := MarshalTo(context.Background(), &sink, []int{1, 2}); err != nil {
		t.Fatal(err)
	}
	if sink.String() != "[1,2]" {
		t.Fatalf("expected [1,2], got %s", sink.String())
	}
}

// chunkReader delivers its payload in fixed pieces, one per Read call,
// modeling a non-seekable byte source.
type chunkReader struct {
	chunks [][]byte
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if len(c.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, c.chunks[0])
	if n < len(c.chunks[0]) {
		c.chunks[0] = c.chunks[0][n:]
	} else {
		c.chunks = c.chunks[1:]
	}
	return n, nil
}

func TestUnmarshalFromChunkedSource(t *testing.T) {
	t.Parallel()

	src := &chunkReader{chunks: [][]byte{[]byte("[1,2,3"), []byte(",4,5]")}}
	v, err := UnmarshalFrom[[]int](context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	want, err := Unmarshal[[]int]([]byte("[1,2,3,4,5]"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(v, want) {
		t.Fatalf("chunked result %#v differs from synchronous %#v", v, want)
	}
}

func TestUnmarshalFromFastPath(t *testing.T) {
	t.Parallel()

	v, err := UnmarshalFrom[[]int](context.Background(), bytes.NewBufferString("[7,8]"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(v, []int{7, 8}) {
		t.Fatalf("unexpected value: %#v", v)
	}
}

func TestCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := MarshalTo(ctx, io.Discard, 1)
	requireKind(t, err, Cancelled, "")
	if !errors.Is(err, context.Canceled) {
		t.Fatal("expected cause context.Canceled")
	}

	_, err = UnmarshalFrom[int](ctx, &chunkReader{chunks: [][]byte{[]byte("1")}})
	requireKind(t, err, Cancelled, "")

	_, err = UnmarshalUTF16From[int](ctx, &chunkReader{})
	requireKind(t, err, Cancelled, "")
}

func TestUTF16LEStream(t *testing.T) {
	t.Parallel()

	var sink bytes.Buffer
	if err := MarshalUTF16To(context.Background(), &sink, []int{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	v, err := UnmarshalUTF16From[[]int](context.Background(), bytes.NewReader(sink.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(v, []int{1, 2, 3}) {
		t.Fatalf("unexpected value: %#v", v)
	}

	_, err = UnmarshalUTF16From[[]int](context.Background(),
		bytes.NewReader(sink.Bytes()[:len(sink.Bytes())-1]))
	requireKind(t, err, UnexpectedEnd, "odd byte count")
}

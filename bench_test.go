// Copyright 2026 by Yahor Paulovich. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package spanjson

import (
	"encoding/json"
	"testing"

	goccy "github.com/goccy/go-json"
)

type benchDoc struct {
	ID     int       `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Scores []float64 `json:"scores"`
	Labels []string  `json:"labels"`
	Active bool      `json:"active"`
}

var benchValue = benchDoc{
	ID:     12345,
	Name:   "benchmark subject",
	Email:  "bench@example.com",
	Scores: []float64{1.5, 2.25, 3.75, 4.5, 5.125},
	Labels: []string{"alpha", "beta", "gamma"},
	Active: true,
}

var benchJSON, _ = json.Marshal(benchValue)

func BenchmarkMarshal(b *testing.B) {
	b.Run("spanjson", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, err := Marshal(benchValue); err != nil {
				b.Fatal(err)
			}
		}
	})
	b.Run("spanjson-utf16", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, err := MarshalUTF16(benchValue); err != nil {
				b.Fatal(err)
			}
		}
	})
	b.Run("encoding-json", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, err := json.Marshal(benchValue); err != nil {
				b.Fatal(err)
			}
		}
	})
	b.Run("goccy", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, err := goccy.Marshal(benchValue); err != nil {
				b.Fatal(err)
			}
		}
	})
	b.Run("jsoniter", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, err := stdCompatible.Marshal(benchValue); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkUnmarshal(b *testing.B) {
	b.Run("spanjson", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, err := Unmarshal[benchDoc](benchJSON); err != nil {
				b.Fatal(err)
			}
		}
	})
	b.Run("encoding-json", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			var v benchDoc
			if err := json.Unmarshal(benchJSON, &v); err != nil {
				b.Fatal(err)
			}
		}
	})
	b.Run("goccy", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			var v benchDoc
			if err := goccy.Unmarshal(benchJSON, &v); err != nil {
				b.Fatal(err)
			}
		}
	})
	b.Run("jsoniter", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			var v benchDoc
			if err := stdCompatible.Unmarshal(benchJSON, &v); err != nil {
				b.Fatal(err)
			}
		}
	})
}

// Copyright 2026 by Yahor Paulovich. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package spanjson

import (
	"math"
	"unsafe"
)

// Formatters for the built-in scalar types.  Named types of the same kind
// share these nodes; memory layout is identical so the pointer casts hold.

type boolFormatter[S Symbol] struct{}

func (boolFormatter[S]) encode(w *Writer[S], ptr unsafe.Pointer, _ int) error {
	w.WriteBool(*(*bool)(ptr))
	return nil
}

func (boolFormatter[S]) decode(r *Reader[S], ptr unsafe.Pointer) error {
	v, err := r.ReadBool()
	if err != nil {
		return err
	}
	*(*bool)(ptr) = v
	return nil
}

type stringFormatter[S Symbol] struct{}

func (stringFormatter[S]) encode(w *Writer[S], ptr unsafe.Pointer, _ int) error {
	w.WriteString(*(*string)(ptr))
	return nil
}

func (stringFormatter[S]) decode(r *Reader[S], ptr unsafe.Pointer) error {
	v, err := r.ReadString()
	if err != nil {
		return err
	}
	*(*string)(ptr) = v
	return nil
}

// readRangedInt reads a signed integer and enforces the width of the
// destination type.
func readRangedInt[S Symbol](r *Reader[S], min, max int64) (int64, error) {
	v, err := r.ReadInt64()
	if err != nil {
		return 0, err
	}
	if v < min || v > max {
		return 0, codecErr(OutOfRange, r.Pos(), "integer overflows destination type")
	}
	return v, nil
}

func readRangedUint[S Symbol](r *Reader[S], max uint64) (uint64, error) {
	v, err := r.ReadUint64()
	if err != nil {
		return 0, err
	}
	if v > max {
		return 0, codecErr(OutOfRange, r.Pos(), "integer overflows destination type")
	}
	return v, nil
}

type intFormatter[S Symbol] struct{}

func (intFormatter[S]) encode(w *Writer[S], ptr unsafe.Pointer, _ int) error {
	w.WriteInt64(int64(*(*int)(ptr)))
	return nil
}

func (intFormatter[S]) decode(r *Reader[S], ptr unsafe.Pointer) error {
	v, err := readRangedInt(r, math.MinInt, math.MaxInt)
	if err != nil {
		return err
	}
	*(*int)(ptr) = int(v)
	return nil
}

type int8Formatter[S Symbol] struct{}

func (int8Formatter[S]) encode(w *Writer[S], ptr unsafe.Pointer, _ int) error {
	w.WriteInt64(int64(*(*int8)(ptr)))
	return nil
}

func (int8Formatter[S]) decode(r *Reader[S], ptr unsafe.Pointer) error {
	v, err := readRangedInt(r, math.MinInt8, math.MaxInt8)
	if err != nil {
		return err
	}
	*(*int8)(ptr) = int8(v)
	return nil
}

type int16Formatter[S Symbol] struct{}

func (int16Formatter[S]) encode(w *Writer[S], ptr unsafe.Pointer, _ int) error {
	w.WriteInt64(int64(*(*int16)(ptr)))
	return nil
}

func (int16Formatter[S]) decode(r *Reader[S], ptr unsafe.Pointer) error {
	v, err := readRangedInt(r, math.MinInt16, math.MaxInt16)
	if err != nil {
		return err
	}
	*(*int16)(ptr) = int16(v)
	return nil
}

type int32Formatter[S Symbol] struct{}

func (int32Formatter[S]) encode(w *Writer[S], ptr unsafe.Pointer, _ int) error {
	w.WriteInt64(int64(*(*int32)(ptr)))
	return nil
}

func (int32Formatter[S]) decode(r *Reader[S], ptr unsafe.Pointer) error {
	v, err := readRangedInt(r, math.MinInt32, math.MaxInt32)
	if err != nil {
		return err
	}
	*(*int32)(ptr) = int32(v)
	return nil
}

type int64Formatter[S Symbol] struct{}

func (int64Formatter[S]) encode(w *Writer[S], ptr unsafe.Pointer, _ int) error {
	w.WriteInt64(*(*int64)(ptr))
	return nil
}

func (int64Formatter[S]) decode(r *Reader[S], ptr unsafe.Pointer) error {
	v, err := r.ReadInt64()
	if err != nil {
		return err
	}
	*(*int64)(ptr) = v
	return nil
}

type uintFormatter[S Symbol] struct{}

func (uintFormatter[S]) encode(w *Writer[S], ptr unsafe.Pointer, _ int) error {
	w.WriteUint64(uint64(*(*uint)(ptr)))
	return nil
}

func (uintFormatter[S]) decode(r *Reader[S], ptr unsafe.Pointer) error {
	v, err := readRangedUint(r, math.MaxUint)
	if err != nil {
		return err
	}
	*(*uint)(ptr) = uint(v)
	return nil
}

type uint8Formatter[S Symbol] struct{}

func (uint8Formatter[S]) encode(w *Writer[S], ptr unsafe.Pointer, _ int) error {
	w.WriteUint64(uint64(*(*uint8)(ptr)))
	return nil
}

func (uint8Formatter[S]) decode(r *Reader[S], ptr unsafe.Pointer) error {
	v, err := readRangedUint(r, math.MaxUint8)
	if err != nil {
		return err
	}
	*(*uint8)(ptr) = uint8(v)
	return nil
}

type uint16Formatter[S Symbol] struct{}

func (uint16Formatter[S]) encode(w *Writer[S], ptr unsafe.Pointer, _ int) error {
	w.WriteUint64(uint64(*(*uint16)(ptr)))
	return nil
}

func (uint16Formatter[S]) decode(r *Reader[S], ptr unsafe.Pointer) error {
	v, err := readRangedUint(r, math.MaxUint16)
	if err != nil {
		return err
	}
	*(*uint16)(ptr) = uint16(v)
	return nil
}

type uint32Formatter[S Symbol] struct{}

func (uint32Formatter[S]) encode(w *Writer[S], ptr unsafe.Pointer, _ int) error {
	w.WriteUint64(uint64(*(*uint32)(ptr)))
	return nil
}

func (uint32Formatter[S]) decode(r *Reader[S], ptr unsafe.Pointer) error {
	v, err := readRangedUint(r, math.MaxUint32)
	if err != nil {
		return err
	}
	*(*uint32)(ptr) = uint32(v)
	return nil
}

type uint64Formatter[S Symbol] struct{}

func (uint64Formatter[S]) encode(w *Writer[S], ptr unsafe.Pointer, _ int) error {
	w.WriteUint64(*(*uint64)(ptr))
	return nil
}

func (uint64Formatter[S]) decode(r *Reader[S], ptr unsafe.Pointer) error {
	v, err := r.ReadUint64()
	if err != nil {
		return err
	}
	*(*uint64)(ptr) = v
	return nil
}

type float32Formatter[S Symbol] struct{}

func (float32Formatter[S]) encode(w *Writer[S], ptr unsafe.Pointer, _ int) error {
	return w.WriteFloat64(float64(*(*float32)(ptr)), 32)
}

func (float32Formatter[S]) decode(r *Reader[S], ptr unsafe.Pointer) error {
	v, err := r.ReadFloat64()
	if err != nil {
		return err
	}
	if v > math.MaxFloat32 || v < -math.MaxFloat32 {
		return codecErr(OutOfRange, r.Pos(), "number overflows float32")
	}
	*(*float32)(ptr) = float32(v)
	return nil
}

type float64Formatter[S Symbol] struct{}

func (float64Formatter[S]) encode(w *Writer[S], ptr unsafe.Pointer, _ int) error {
	return w.WriteFloat64(*(*float64)(ptr), 64)
}

func (float64Formatter[S]) decode(r *Reader[S], ptr unsafe.Pointer) error {
	v, err := r.ReadFloat64()
	if err != nil {
		return err
	}
	*(*float64)(ptr) = v
	return nil
}

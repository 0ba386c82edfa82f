// Copyright 2026 The NerveStream Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package elemtype

import (
	"fmt"
)

// ElementType identifies the scalar type of a tensor's elements.
//
// The numeric values double as the on-wire tags of the tensor
// container format; the zero value is invalid.
type ElementType uint8

const (
	// Int32 represents a 32-bit signed integer element type.
	Int32 ElementType = iota + 1
	// Uint32 represents a 32-bit unsigned integer element type.
	Uint32
	// Int16 represents a 16-bit signed integer element type.
	Int16
	// Uint16 represents a 16-bit unsigned integer element type.
	Uint16
	// Int8 represents an 8-bit signed integer element type.
	Int8
	// Uint8 represents an 8-bit unsigned integer element type.
	Uint8
	// Float64 represents a 64-bit floating point element type.
	Float64
	// Float32 represents a 32-bit floating point element type.
	Float32
	// Int64 represents a 64-bit signed integer element type.
	Int64
	// Uint64 represents a 64-bit unsigned integer element type.
	Uint64
)

var (
	typeToString = [...]string{
		Int32:   "int32",
		Uint32:  "uint32",
		Int16:   "int16",
		Uint16:  "uint16",
		Int8:    "int8",
		Uint8:   "uint8",
		Float64: "float64",
		Float32: "float32",
		Int64:   "int64",
		Uint64:  "uint64",
	}
	typeToSize = [...]int{
		Int32:   4,
		Uint32:  4,
		Int16:   2,
		Uint16:  2,
		Int8:    1,
		Uint8:   1,
		Float64: 8,
		Float32: 4,
		Int64:   8,
		Uint64:  8,
	}
)

// Validate returns an error if the ElementType is not valid, otherwise nil.
func (et ElementType) Validate() error {
	if et == 0 || et > Uint64 {
		return fmt.Errorf("invalid ElementType(%d)", et)
	}
	return nil
}

// String returns a string representation of an ElementType.
func (et ElementType) String() string {
	if err := et.Validate(); err != nil {
		return err.Error()
	}
	return typeToString[et]
}

// Size returns the size in bytes of one element of this type,
// or -1 if the ElementType value is invalid.
func (et ElementType) Size() int {
	if err := et.Validate(); err != nil {
		return -1
	}
	return typeToSize[et]
}

// MarshalText satisfies encoding.TextMarshaler interface.
func (et ElementType) MarshalText() ([]byte, error) {
	if err := et.Validate(); err != nil {
		return nil, err
	}
	return []byte(typeToString[et]), nil
}

// UnmarshalText satisfies encoding.TextUnmarshaler interface.
func (et *ElementType) UnmarshalText(text []byte) error {
	s := string(text)
	switch s {
	case "int32":
		*et = Int32
	case "uint32":
		*et = Uint32
	case "int16":
		*et = Int16
	case "uint16":
		*et = Uint16
	case "int8":
		*et = Int8
	case "uint8":
		*et = Uint8
	case "float64":
		*et = Float64
	case "float32":
		*et = Float32
	case "int64":
		*et = Int64
	case "uint64":
		*et = Uint64
	default:
		return fmt.Errorf("failed to text-unmarshal ElementType from value %q", s)
	}
	return nil
}

// Copyright 2017, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bitio implements big-endian (MSB first) bit-level readers and
// writers together with the integer codes shared by the grammar and
// dictionary serializers.
//
// Integers written by WriteBits occupy exactly the requested width with the
// most significant bit first. Unary codes represent d as d zero bits followed
// by a single one bit. Compressed integers are split into 7-bit groups, most
// significant group first, where each group is written as a byte whose high
// bit is set if and only if another group follows.
package bitio

import (
	"io"
	"runtime"

	"github.com/tdcgo/textcomp/internal"
)

var (
	// ErrOverflow reports a compressed integer that does not fit in 64 bits.
	ErrOverflow error = internal.Error("bitio: compressed integer overflow")

	// ErrClosed reports a write to a flushed and closed writer.
	ErrClosed error = internal.Error("bitio: writer is closed")
)

// maxGroups is the number of 7-bit groups needed for a 64-bit value.
const maxGroups = 10

// Recover converts a panic raised by Reader or Writer into an error.
// Runtime errors are not recovered.
func Recover(err *error) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing.
	case runtime.Error:
		panic(ex)
	case error:
		*err = ex
	default:
		panic(ex)
	}
}

// IsEOF reports whether err signals that the stream ended early.
func IsEOF(err error) bool {
	return err == io.EOF || err == io.ErrUnexpectedEOF
}

// numGroups reports the number of 7-bit groups needed to represent v.
func numGroups(v uint64) int {
	n := 1
	for v >>= 7; v > 0; v >>= 7 {
		n++
	}
	return n
}

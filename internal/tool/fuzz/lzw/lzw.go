// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build gofuzz

package lzw

import (
	"bytes"
	"strings"

	"github.com/tdcgo/textcomp/lzw"
)

func Fuzz(data []byte) int {
	testRoundTrip(data)

	// Arbitrary input must never crash the bit code decoder.
	var out bytes.Buffer
	if err := lzw.DecodeBits(bytes.NewReader(data), &out); err != nil {
		return 0
	}
	return 1 // Favor valid inputs
}

// testRoundTrip checks that data survives both the bit code and the
// debug code.
func testRoundTrip(data []byte) {
	codes := lzw.Compress(data)

	var bits, debug bytes.Buffer
	if err := lzw.EncodeBits(&bits, codes); err != nil {
		panic(err)
	}
	if err := lzw.EncodeDebug(&debug, codes); err != nil {
		panic(err)
	}

	var out bytes.Buffer
	if err := lzw.DecodeBits(&bits, &out); err != nil {
		panic(err)
	}
	if !bytes.Equal(out.Bytes(), data) {
		panic("mismatching bytes")
	}
	out.Reset()
	if err := lzw.DecodeDebug(strings.NewReader(debug.String()), &out); err != nil {
		panic(err)
	}
	if !bytes.Equal(out.Bytes(), data) {
		panic("mismatching bytes")
	}
}

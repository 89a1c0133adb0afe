// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build gofuzz

package frame

import (
	"bytes"

	"github.com/tdcgo/textcomp/frame"
)

func Fuzz(data []byte) int {
	for _, m := range []frame.Method{frame.LZW, frame.ESP} {
		testRoundTrip(data, m)
	}

	if _, err := frame.Decompress(data, &frame.Options{Workers: 2}); err != nil {
		return 0
	}
	return 1 // Favor valid inputs
}

// testRoundTrip compresses data with small blocks so that most inputs span
// more than one block.
func testRoundTrip(data []byte, m frame.Method) {
	opts := &frame.Options{Method: m, BlockSize: 64, Workers: 3}
	b, err := frame.Compress(data, opts)
	if err != nil {
		panic(err)
	}
	got, err := frame.Decompress(b, opts)
	if err != nil {
		panic(err)
	}
	if !bytes.Equal(got, data) {
		panic("mismatching bytes")
	}
}

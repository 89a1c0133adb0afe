// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build gofuzz

package esp

import (
	"bytes"

	"github.com/tdcgo/textcomp/esp"
)

func Fuzz(data []byte) int {
	testRoundTrip(data)

	slp, ok := decodeSLP(data)
	if !ok {
		return 0
	}
	if _, err := slp.Expand(); err != nil {
		return 0
	}
	return 1 // Favor valid inputs
}

// decodeSLP attempts to decode data as an encoded grammar.
func decodeSLP(data []byte) (*esp.SLP, bool) {
	slp, err := esp.Decode(bytes.NewReader(data))
	return slp, err == nil
}

// testRoundTrip builds a grammar for data, encodes it and decodes it,
// checking that the expansion is unchanged.
func testRoundTrip(data []byte) {
	slp := esp.Build(data)
	if err := esp.DepSort(slp); err != nil {
		panic(err)
	}
	var bb bytes.Buffer
	if err := esp.Encode(&bb, slp); err != nil {
		panic(err)
	}
	got, ok := decodeSLP(bb.Bytes())
	if !ok {
		panic("decoder error")
	}
	b, err := got.Expand()
	if err != nil {
		panic(err)
	}
	if !bytes.Equal(b, data) {
		panic("mismatching bytes")
	}
}

// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package esp implements straight-line program (SLP) grammars together with
// their dependency ordering, rank transform and bit-exact serialization.
//
// An SLP derives exactly one string. Symbols below 256 are terminals that
// stand for themselves, while rule i defines the nonterminal 256+i as the
// concatenation of its left and right symbols.
package esp

import (
	"runtime"

	"github.com/tdcgo/textcomp/internal"
)

// Error is the wrapper type for errors specific to this library.
type Error string

func (e Error) Error() string { return "esp: " + string(e) }

var (
	ErrCorrupt   error = Error("stream is corrupted")
	ErrInvalid   error = Error("invalid grammar")
	ErrNotSorted error = Error("grammar is not dependency sorted")
)

const numTerminals = internal.NumTerminals

func errRecover(err *error) {
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

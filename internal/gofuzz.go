// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build gofuzz

package internal

const (
	// Debug enables expensive self checks of the built structures.
	Debug = true

	// GoFuzz is set when building fuzz harnesses. It caps the sizes that
	// decoders accept so that corrupt headers cannot exhaust memory.
	GoFuzz = true
)

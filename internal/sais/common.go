// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package sais implements a linear time suffix array algorithm.
//
// The algorithm is the Suffix Array by Induced Sorting (SA-IS) methodology by
// Nong, Zhang, and Chan. Input text is lifted into an integer alphabet with a
// virtual sentinel that is smaller than every byte, so arbitrary byte strings
// (including ones that contain zero bytes) are accepted.
//
// References:
//	https://sites.google.com/site/yuta256/sais
//	https://ge-nong.googlecode.com/files/Linear%20Time%20Suffix%20Array%20Construction%20Using%20D-Critical%20Substrings.pdf
//	https://ge-nong.googlecode.com/files/Two%20Efficient%20Algorithms%20for%20Linear%20Time%20Suffix%20Array%20Construction.pdf
package sais

// ComputeSA computes the suffix array of T and places the result in SA.
// Both T and SA must be the same length.
func ComputeSA(T []byte, SA []int) {
	if len(SA) != len(T) {
		panic("mismatching sizes")
	}
	if len(T) == 0 {
		return
	}
	s := make([]int, len(T)+1)
	for i, c := range T {
		s[i] = int(c) + 1
	}
	sa := computeSA(s, 257)
	copy(SA, sa[1:]) // Drop the virtual sentinel, which always sorts first
}

// ComputeSAInts computes the suffix array of an integer text whose symbols
// lie in [0, k). Both T and SA must be the same length.
func ComputeSAInts(T []int, k int, SA []int) {
	if len(SA) != len(T) {
		panic("mismatching sizes")
	}
	if len(T) == 0 {
		return
	}
	s := make([]int, len(T)+1)
	for i, c := range T {
		if c < 0 || c >= k {
			panic("symbol out of range")
		}
		s[i] = c + 1
	}
	sa := computeSA(s, k+1)
	copy(SA, sa[1:])
}

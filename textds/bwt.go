// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package textds

// There is a mathematical relationship between Suffix Arrays and the
// Burrows-Wheeler Transform, such that a SA can be converted to a BWT in O(n)
// time.
//
// References:
//	https://github.com/cscott/compressjs/blob/master/lib/BWT.js
//	https://www.quora.com/How-can-I-optimize-burrows-wheeler-transform-and-inverse-transform-to-work-in-O-n-time-O-n-space

import "github.com/tdcgo/textcomp/internal/sais"

// BWT returns the Burrows-Wheeler Transform of the sentinel terminated text,
// read off the suffix array. Since the sentinel sorts first, no origin
// pointer is needed to invert it.
func (ds *TextDS) BWT() []byte {
	sa := ds.RequireSA()
	bwt := make([]byte, len(sa))
	for i, s := range sa {
		if s == 0 {
			s = len(ds.text)
		}
		bwt[i] = ds.text[s-1]
	}
	return bwt
}

// EncodeBWT applies the rotation based Burrows-Wheeler Transform to buf in
// place and returns the origin pointer. Unlike BWT, the input needs no
// sentinel.
func EncodeBWT(buf []byte) (ptr int) {
	if len(buf) == 0 {
		return -1
	}

	// Sorting the suffixes of buf+buf orders the rotations of buf.
	t := make([]byte, 2*len(buf))
	sa := make([]int, 2*len(buf))
	copy(t, buf)
	copy(t[len(buf):], buf)

	sais.ComputeSA(t, sa)

	for i, j := 0, 0; i < 2*len(buf); i++ {
		if idx := sa[i]; idx < len(buf) {
			if idx == 0 {
				ptr = j
				idx = len(buf)
			}
			buf[j] = t[idx-1]
			j++
		}
	}
	return ptr
}

// DecodeBWT reverses EncodeBWT in place.
func DecodeBWT(buf []byte, ptr int) {
	if len(buf) == 0 {
		return
	}

	var c [256]int
	for _, v := range buf {
		c[v]++
	}

	var sum int
	for i, v := range c {
		sum += v
		c[i] = sum - v
	}

	tt := make([]int, len(buf))
	for i := range buf {
		b := buf[i]
		tt[c[b]] |= i
		c[b]++
	}

	buf2 := make([]byte, len(buf))
	tPos := tt[ptr]
	for i := range tt {
		buf2[i] = buf[tPos]
		tPos = tt[tPos]
	}
	copy(buf, buf2)
}

// InverseBWT reconstructs a sentinel terminated text from its BWT.
// The sentinel must be the only 0 byte in the text.
func InverseBWT(bwt []byte) []byte {
	n := len(bwt)
	if n == 0 {
		return nil
	}
	var c [256]int
	for _, v := range bwt {
		c[v]++
	}
	var sum int
	for i, v := range c {
		sum += v
		c[i] = sum - v
	}
	lf := make([]int, n)
	for i, v := range bwt {
		lf[i] = c[v]
		c[v]++
	}

	// Row 0 is the sentinel suffix, so the byte in front of it is the last
	// byte of the text before the sentinel.
	text := make([]byte, n)
	text[n-1] = 0
	for i, k := 0, n-2; k >= 0; k-- {
		text[k] = bwt[i]
		i = lf[i]
	}
	return text
}

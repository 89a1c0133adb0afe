// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package esp

import (
	"io"

	"github.com/tdcgo/textcomp/internal"
	"github.com/tdcgo/textcomp/internal/bitio"
)

// The serialized grammar is a big-endian bit stream with these fields:
//
//	bit_width  6 bits         Zero for the empty grammar, which ends here
//	max_val    bit_width bits Largest symbol id, the rule count plus 255
//	root       bit_width bits
//	left       unary each     Differences of the left symbols
//	right      unary each     Differences of the right symbols in sorted order
//	b_len      compressed int Number of class boundary bits
//	b          1 bit each     Class boundaries in sorted order
//	dpi        w bits each    Class of each right symbol in rule order
//
// The width w of a class number is the bit length of the largest class.
const widthBits = 6

// Encode writes the dependency sorted grammar s to w.
func Encode(w io.Writer, s *SLP) (err error) {
	defer errRecover(&err)

	bw := bitio.NewWriter(w)
	if s.Empty {
		if len(s.Rules) > 0 || s.Root != 0 {
			return ErrInvalid
		}
		bw.WriteBits(0, widthBits)
		return bw.Flush()
	}

	maxVal := s.MaxSymbol()
	width := internal.BitsFor(maxVal)
	if width >= 1<<widthBits || s.Root > maxVal {
		return ErrInvalid
	}
	var last uint64
	for _, r := range s.Rules {
		if r[0] < last {
			return ErrNotSorted
		}
		last = r[0]
	}

	rhs := make([]uint64, len(s.Rules))
	for i, r := range s.Rules {
		rhs[i] = r[1]
	}
	rank := Rank(rhs)

	bw.WriteBits(uint64(width), widthBits)
	bw.WriteBits(maxVal, width)
	bw.WriteBits(s.Root, width)

	last = 0
	for _, r := range s.Rules {
		bw.WriteUnary(r[0] - last)
		last = r[0]
	}
	last = 0
	for _, j := range rank.SIS {
		bw.WriteUnary(rhs[j] - last)
		last = rhs[j]
	}

	bw.WriteCompressedInt(uint64(len(rank.B)))
	for _, b := range rank.B {
		bw.WriteBit(b)
	}
	dw := classWidth(rank.Classes())
	for _, c := range rank.Dpi {
		bw.WriteBits(uint64(c), dw)
	}
	return bw.Flush()
}

// Decode reads a grammar written by Encode.
//
// If the stream ends after the header but before all rules are complete,
// Decode returns the rules read so far without an error. Right symbols are
// only filled in once the whole rule section has been read.
func Decode(r io.Reader) (s *SLP, err error) {
	defer errRecover(&err)

	br := bitio.NewReader(r)
	width := uint(br.ReadBits(widthBits))
	if width == 0 {
		return &SLP{Empty: true}, nil
	}
	maxVal := br.ReadBits(width)
	root := br.ReadBits(width)
	if maxVal < numTerminals-1 || internal.BitsFor(maxVal) != width || root > maxVal {
		return nil, ErrCorrupt
	}
	count := maxVal - (numTerminals - 1)
	if internal.GoFuzz && count > 1<<16 {
		return nil, ErrCorrupt
	}

	s = &SLP{Root: root}
	if err := s.readRules(br, count, maxVal); err != nil && !bitio.IsEOF(err) {
		return nil, err
	}
	return s, nil
}

func (s *SLP) readRules(br *bitio.Reader, count, maxVal uint64) (err error) {
	defer errRecover(&err)

	// The count comes from the stream, so grow the slices as data arrives.
	capHint := count
	if capHint > 1<<12 {
		capHint = 1 << 12
	}
	s.Rules = make([][2]uint64, 0, capHint)
	var last uint64
	for i := uint64(0); i < count; i++ {
		last += br.ReadUnary()
		if last > maxVal {
			return ErrCorrupt
		}
		s.Rules = append(s.Rules, [2]uint64{last, 0})
	}

	sorted := make([]uint64, 0, capHint)
	last = 0
	for i := uint64(0); i < count; i++ {
		last += br.ReadUnary()
		if last > maxVal {
			return ErrCorrupt
		}
		sorted = append(sorted, last)
	}

	if br.ReadCompressedInt() != count {
		return ErrCorrupt
	}
	b := make([]bool, count)
	var classes int
	for i := range b {
		b[i] = br.ReadBit()
		if b[i] != (i == 0 || sorted[i] != sorted[i-1]) {
			return ErrCorrupt
		}
		if b[i] {
			classes++
		}
	}
	dw := classWidth(classes)
	dpi := make([]int, count)
	for j := range dpi {
		dpi[j] = int(br.ReadBits(dw))
	}

	sis, err := ClassesFrom(dpi, b)
	if err != nil {
		return err
	}
	for i, j := range sis {
		s.Rules[j][1] = sorted[i]
	}
	return nil
}

// classWidth reports the number of bits used for each class number.
func classWidth(classes int) uint {
	if classes <= 1 {
		return internal.BitsFor(0)
	}
	return internal.BitsFor(uint64(classes - 1))
}

// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"io"
	"runtime"

	"github.com/tdcgo/textcomp/internal"
	"github.com/tdcgo/textcomp/internal/bitio"
)

// The bit code starts with the number of codes as a compressed integer.
// The k-th code (counting from zero) follows in exactly as many bits as are
// needed for the largest code the dictionary can hold at that point, which
// is 255+k.

func codeWidth(k uint64) uint { return internal.BitsFor(numTerminals - 1 + k) }

// EncodeBits writes codes to w in the bit code.
func EncodeBits(w io.Writer, codes []Entry) (err error) {
	defer errRecover(&err)

	bw := bitio.NewWriter(w)
	bw.WriteCompressedInt(uint64(len(codes)))
	for k, e := range codes {
		if e < 0 || uint64(e) > numTerminals-1+uint64(k) {
			return ErrCorrupt
		}
		bw.WriteBits(uint64(e), codeWidth(uint64(k)))
	}
	return bw.Flush()
}

// BitReader parses the bit code.
type BitReader struct {
	br    bitio.Reader
	count uint64 // Total number of codes, valid once started
	k     uint64 // Number of codes read so far
	start bool
	err   error
}

// NewBitReader returns an EntryReader that parses the bit code.
func NewBitReader(r io.Reader) *BitReader {
	br := new(BitReader)
	br.br.Init(r)
	return br
}

func (br *BitReader) ReadEntry() (Entry, error) {
	if br.err != nil {
		return End, br.err
	}
	e, err := br.readEntry()
	if err != nil {
		br.err = err
		return End, err
	}
	return e, nil
}

func (br *BitReader) readEntry() (e Entry, err error) {
	defer errRecover(&err)

	if !br.start {
		br.count = br.br.ReadCompressedInt()
		br.start = true
		if internal.GoFuzz && br.count > 1<<20 {
			return End, ErrCorrupt
		}
	}
	if br.k == br.count {
		return End, nil
	}
	e = Entry(br.br.ReadBits(codeWidth(br.k)))
	br.k++
	return e, nil
}

// DecodeBits decodes the bit code read from r and writes the result to w.
func DecodeBits(r io.Reader, w io.Writer) error {
	return Decode(NewBitReader(r), w)
}

func errRecover(err *error) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing.
	case runtime.Error:
		panic(ex)
	case error:
		if ex == io.EOF {
			ex = io.ErrUnexpectedEOF
		}
		*err = ex
	default:
		panic(ex)
	}
}

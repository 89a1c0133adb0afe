// Copyright 2017, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bitio

import (
	"bufio"
	"io"
)

type byteReader interface {
	io.Reader
	io.ByteReader
}

// Reader unpacks bits MSB first. It never reads more bytes from the
// underlying reader than are needed to satisfy a request.
type Reader struct {
	rd      byteReader
	bufBits uint64 // Buffer to hold some bits, right aligned
	numBits uint   // Number of valid bits in bufBits
	offset  int64  // Number of bytes read from the underlying reader
}

// NewReader returns a Reader that reads from r.
func NewReader(r io.Reader) *Reader {
	br := new(Reader)
	br.Init(r)
	return br
}

// Init resets the Reader to read from r.
func (br *Reader) Init(r io.Reader) {
	if rr, ok := r.(byteReader); ok {
		*br = Reader{rd: rr}
	} else {
		*br = Reader{rd: bufio.NewReader(r)}
	}
}

// Offset reports the number of bytes read from the underlying reader.
func (br *Reader) Offset() int64 { return br.offset }

// EOF reports whether no more bits are available.
func (br *Reader) EOF() bool {
	if br.numBits > 0 {
		return false
	}
	c, err := br.rd.ReadByte()
	if err != nil {
		return true
	}
	br.offset++
	br.bufBits, br.numBits = uint64(c), 8
	return false
}

// ReadBits reads an nb-bit wide integer, most significant bit first.
// If an IO error occurs, then it panics.
func (br *Reader) ReadBits(nb uint) uint64 {
	if nb > 64 {
		panic("invalid bit count")
	}
	if nb > 32 {
		hi := br.ReadBits(nb - 32)
		return hi<<32 | br.ReadBits(32)
	}
	for br.numBits < nb {
		c, err := br.rd.ReadByte()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			panic(err)
		}
		br.offset++
		br.bufBits = br.bufBits<<8 | uint64(c)
		br.numBits += 8
	}
	br.numBits -= nb
	val := (br.bufBits >> br.numBits) & (1<<nb - 1)
	br.bufBits &= 1<<br.numBits - 1
	return val
}

// ReadBit reads a single bit.
func (br *Reader) ReadBit() bool {
	return br.ReadBits(1) == 1
}

// ReadUnary reads a unary code and returns the number of zero bits that
// preceded the terminating one bit.
func (br *Reader) ReadUnary() (d uint64) {
	for !br.ReadBit() {
		d++
	}
	return d
}

// ReadCompressedInt reads an integer written by Writer.WriteCompressedInt.
func (br *Reader) ReadCompressedInt() (v uint64) {
	for i := 0; ; i++ {
		if i == maxGroups || v>>57 != 0 {
			panic(ErrOverflow)
		}
		g := br.ReadBits(8)
		v = v<<7 | g&0x7f
		if g&0x80 == 0 {
			return v
		}
	}
}

// ReadPads discards bits up to the next byte boundary.
func (br *Reader) ReadPads() uint64 {
	nb := br.numBits % 8
	return br.ReadBits(nb)
}

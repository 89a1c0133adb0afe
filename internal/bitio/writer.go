// Copyright 2017, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bitio

import "io"

const flushSize = 4096

// Writer packs bits MSB first into bytes and forwards whole bytes to the
// underlying io.Writer. All write methods panic if an IO error occurs.
type Writer struct {
	wr      io.Writer
	buf     []byte // Whole bytes waiting to be flushed
	bufBits uint64 // Partial byte, right aligned
	numBits uint   // Number of valid bits in bufBits; always less than 8
	cnt     int64  // Total number of bits written
	closed  bool
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	bw := new(Writer)
	bw.Reset(w)
	return bw
}

// Reset discards any state and makes the Writer write to w.
func (bw *Writer) Reset(w io.Writer) {
	*bw = Writer{wr: w, buf: bw.buf[:0]}
}

// BitsWritten reports the number of bits written so far, excluding padding.
func (bw *Writer) BitsWritten() int64 { return bw.cnt }

// WriteBit writes a single bit.
func (bw *Writer) WriteBit(b bool) {
	var v uint64
	if b {
		v = 1
	}
	bw.WriteBits(v, 1)
}

// WriteBits writes the lower nb bits of v, most significant bit first.
// The width nb must not exceed 64.
func (bw *Writer) WriteBits(v uint64, nb uint) {
	if bw.closed {
		panic(ErrClosed)
	}
	if nb > 64 {
		panic("invalid bit count")
	}
	if nb > 32 {
		bw.WriteBits(v>>32, nb-32)
		nb = 32
	}
	v &= 1<<nb - 1
	bw.bufBits = bw.bufBits<<nb | v
	bw.numBits += nb
	for bw.numBits >= 8 {
		bw.numBits -= 8
		bw.buf = append(bw.buf, byte(bw.bufBits>>bw.numBits))
	}
	bw.bufBits &= 1<<bw.numBits - 1
	bw.cnt += int64(nb)
	if len(bw.buf) >= flushSize {
		bw.flushBytes()
	}
}

// WriteUnary writes d as d zero bits terminated by a one bit.
func (bw *Writer) WriteUnary(d uint64) {
	for d >= 32 {
		bw.WriteBits(0, 32)
		d -= 32
	}
	bw.WriteBits(1, uint(d)+1)
}

// WriteCompressedInt writes v as a sequence of 7-bit groups.
func (bw *Writer) WriteCompressedInt(v uint64) {
	for i := numGroups(v) - 1; i >= 0; i-- {
		g := (v >> (7 * uint(i))) & 0x7f
		if i > 0 {
			g |= 0x80
		}
		bw.WriteBits(g, 8)
	}
}

// Flush pads the stream with zero bits up to the next byte boundary and
// writes all buffered bytes. It returns any IO error instead of panicking.
// Subsequent writes panic with ErrClosed.
func (bw *Writer) Flush() (err error) {
	defer Recover(&err)
	if bw.closed {
		return nil
	}
	if bw.numBits > 0 {
		pads := 8 - bw.numBits
		bw.WriteBits(0, pads)
		bw.cnt -= int64(pads)
	}
	bw.flushBytes()
	bw.closed = true
	return nil
}

func (bw *Writer) flushBytes() {
	if len(bw.buf) == 0 {
		return
	}
	if _, err := bw.wr.Write(bw.buf); err != nil {
		panic(err)
	}
	bw.buf = bw.buf[:0]
}

// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package frame

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/rs/zerolog"
	"github.com/tdcgo/textcomp/internal/bitio"
	"golang.org/x/sync/errgroup"
)

// Writer compresses data into the frame format. Data is buffered until a
// batch of one block per worker is available.
type Writer struct {
	wr   io.Writer
	opts Options
	log  *zerolog.Logger

	buf      []byte
	crc      uint32
	blocks   uint64
	rawSize  int64
	packSize int64

	wroteHdr bool
	err      error
}

// NewWriter returns a Writer that writes a stream to w.
func NewWriter(w io.Writer, opts *Options) (*Writer, error) {
	o, err := opts.init()
	if err != nil {
		return nil, err
	}
	return &Writer{wr: w, opts: o, log: o.Logger}, nil
}

func (zw *Writer) batchSize() int { return zw.opts.BlockSize * zw.opts.Workers }

func (zw *Writer) Write(buf []byte) (int, error) {
	if zw.err != nil {
		return 0, zw.err
	}
	n := len(buf)
	for len(buf) > 0 {
		cnt := copy(zw.pending(), buf)
		zw.buf = zw.buf[:len(zw.buf)+cnt]
		buf = buf[cnt:]
		if len(zw.buf) == zw.batchSize() {
			if zw.err = zw.flushBatch(); zw.err != nil {
				return n - len(buf), zw.err
			}
		}
	}
	return n, nil
}

// pending returns the unused space of the batch buffer.
func (zw *Writer) pending() []byte {
	if cap(zw.buf) < zw.batchSize() {
		b := make([]byte, len(zw.buf), zw.batchSize())
		copy(b, zw.buf)
		zw.buf = b
	}
	return zw.buf[len(zw.buf):zw.batchSize()]
}

func (zw *Writer) writeHeader() error {
	if zw.wroteHdr {
		return nil
	}
	zw.wroteHdr = true
	var b bytes.Buffer
	b.WriteString(magic)
	b.WriteByte(byte(zw.opts.Method))
	bw := bitio.NewWriter(&b)
	bw.WriteCompressedInt(uint64(zw.opts.BlockSize))
	if err := bw.Flush(); err != nil {
		return err
	}
	_, err := zw.wr.Write(b.Bytes())
	zw.packSize += int64(b.Len())
	return err
}

type block struct {
	raw     []byte
	payload []byte
	rawLen  int
	crc     uint32
}

// flushBatch encodes all buffered data and writes the blocks in order.
func (zw *Writer) flushBatch() error {
	if err := zw.writeHeader(); err != nil {
		return err
	}
	var blks []block
	for data := zw.buf; len(data) > 0; {
		n := zw.opts.BlockSize
		if n > len(data) {
			n = len(data)
		}
		blks = append(blks, block{raw: data[:n]})
		data = data[n:]
	}

	var g errgroup.Group
	g.SetLimit(zw.opts.Workers)
	for i := range blks {
		blk := &blks[i]
		g.Go(func() (err error) {
			blk.crc = crc32.ChecksumIEEE(blk.raw)
			blk.payload, err = encodeBlock(zw.opts.Method, blk.raw)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var hdr [2 * binary.MaxVarintLen64]byte
	for _, blk := range blks {
		n := binary.PutUvarint(hdr[:], uint64(len(blk.raw)))
		n += binary.PutUvarint(hdr[n:], uint64(len(blk.payload)))
		if _, err := zw.wr.Write(hdr[:n]); err != nil {
			return err
		}
		if _, err := zw.wr.Write(blk.payload); err != nil {
			return err
		}
		zw.crc = combineCRC(zw.crc, blk.crc, int64(len(blk.raw)))
		zw.rawSize += int64(len(blk.raw))
		zw.packSize += int64(n + len(blk.payload))
		zw.log.Debug().
			Uint64("block", zw.blocks).
			Int("raw", len(blk.raw)).
			Int("packed", len(blk.payload)).
			Msg("encoded block")
		zw.blocks++
	}
	zw.buf = zw.buf[:0]
	return nil
}

// Close flushes any buffered data and writes the stream trailer.
// It does not close the underlying io.Writer.
func (zw *Writer) Close() error {
	if zw.err == ErrClosed {
		return nil
	}
	if zw.err != nil {
		return zw.err
	}
	if zw.err = zw.flushBatch(); zw.err != nil {
		return zw.err
	}

	var b [1 + binary.MaxVarintLen64 + 4]byte
	n := binary.PutUvarint(b[1:], zw.blocks) + 1
	binary.BigEndian.PutUint32(b[n:], zw.crc)
	n += 4
	if _, zw.err = zw.wr.Write(b[:n]); zw.err != nil {
		return zw.err
	}
	zw.packSize += int64(n)
	zw.log.Debug().
		Uint64("blocks", zw.blocks).
		Int64("raw", zw.rawSize).
		Int64("packed", zw.packSize).
		Str("method", zw.opts.Method.String()).
		Msg("stream closed")
	zw.err = ErrClosed
	return nil
}

// InputOffset reports the number of raw bytes compressed so far.
func (zw *Writer) InputOffset() int64 { return zw.rawSize }

// OutputOffset reports the number of bytes written so far.
func (zw *Writer) OutputOffset() int64 { return zw.packSize }

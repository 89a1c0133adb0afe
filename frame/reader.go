// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package frame

import (
	"bufio"
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/rs/zerolog"
	"github.com/tdcgo/textcomp/internal/bitio"
	"golang.org/x/sync/errgroup"
)

// Reader decompresses a stream in the frame format. The method and block
// size are taken from the stream header; only the Workers and Logger
// options apply.
type Reader struct {
	rd   *bufio.Reader
	opts Options
	log  *zerolog.Logger

	method    Method
	blockSize int

	out    []byte // Decoded data not yet returned by Read
	crc    uint32
	blocks uint64
	done   bool // Trailer seen
	err    error

	wantBlocks uint64
	wantCRC    uint32
}

// NewReader returns a Reader that reads a stream from r.
func NewReader(r io.Reader, opts *Options) (*Reader, error) {
	o, err := opts.init()
	if err != nil {
		return nil, err
	}
	zr := &Reader{rd: bufio.NewReader(r), opts: o, log: o.Logger}
	if err := zr.readHeader(); err != nil {
		return nil, err
	}
	return zr, nil
}

// Method reports the method recorded in the stream header.
func (zr *Reader) Method() Method { return zr.method }

// BlockSize reports the block size recorded in the stream header.
func (zr *Reader) BlockSize() int { return zr.blockSize }

func (zr *Reader) readHeader() (err error) {
	var hdr [len(magic) + 1]byte
	if _, err := io.ReadFull(zr.rd, hdr[:]); err != nil {
		return noEOF(err)
	}
	if string(hdr[:len(magic)]) != magic {
		return ErrCorrupt
	}
	zr.method = Method(hdr[len(magic)])
	if zr.method != LZW && zr.method != ESP {
		return ErrMethod
	}

	defer bitio.Recover(&err)
	br := bitio.NewReader(zr.rd)
	n := br.ReadCompressedInt()
	br.ReadPads()
	if n == 0 || n > MaxBlockSize {
		return ErrCorrupt
	}
	zr.blockSize = int(n)
	return nil
}

func (zr *Reader) Read(buf []byte) (int, error) {
	for len(zr.out) == 0 {
		if zr.err != nil {
			return 0, zr.err
		}
		if zr.done {
			zr.err = io.EOF
			return 0, io.EOF
		}
		if zr.err = zr.readBatch(); zr.err != nil {
			return 0, zr.err
		}
	}
	n := copy(buf, zr.out)
	zr.out = zr.out[n:]
	return n, nil
}

// readBatch reads up to one block per worker and decodes them together.
func (zr *Reader) readBatch() error {
	var blks []block
	for len(blks) < zr.opts.Workers {
		rawLen, err := binary.ReadUvarint(zr.rd)
		if err != nil {
			return noEOF(err)
		}
		if rawLen == 0 {
			if err := zr.readTrailer(); err != nil {
				return err
			}
			break
		}
		packLen, err := binary.ReadUvarint(zr.rd)
		if err != nil {
			return noEOF(err)
		}
		if rawLen > uint64(zr.blockSize) || packLen > 8*uint64(zr.blockSize)+1024 {
			return ErrCorrupt
		}
		payload := make([]byte, packLen)
		if _, err := io.ReadFull(zr.rd, payload); err != nil {
			return noEOF(err)
		}
		blks = append(blks, block{rawLen: int(rawLen), payload: payload})
	}

	var g errgroup.Group
	g.SetLimit(zr.opts.Workers)
	for i := range blks {
		blk := &blks[i]
		g.Go(func() (err error) {
			blk.raw, err = decodeBlock(zr.method, blk.payload, blk.rawLen)
			if err != nil {
				return err
			}
			blk.crc = crc32.ChecksumIEEE(blk.raw)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, blk := range blks {
		zr.crc = combineCRC(zr.crc, blk.crc, int64(len(blk.raw)))
		zr.out = append(zr.out, blk.raw...)
		zr.log.Debug().
			Uint64("block", zr.blocks).
			Int("raw", len(blk.raw)).
			Int("packed", len(blk.payload)).
			Msg("decoded block")
		zr.blocks++
	}
	if zr.done {
		return zr.verify()
	}
	return nil
}

// readTrailer reads the block count and checksum. The checksum is verified
// once all blocks of the batch are decoded.
func (zr *Reader) readTrailer() error {
	cnt, err := binary.ReadUvarint(zr.rd)
	if err != nil {
		return noEOF(err)
	}
	var sum [4]byte
	if _, err := io.ReadFull(zr.rd, sum[:]); err != nil {
		return noEOF(err)
	}
	zr.done = true
	zr.wantBlocks = cnt
	zr.wantCRC = binary.BigEndian.Uint32(sum[:])
	return nil
}

func (zr *Reader) verify() error {
	if zr.blocks != zr.wantBlocks {
		return ErrCorrupt
	}
	if zr.crc != zr.wantCRC {
		zr.log.Warn().
			Uint32("got", zr.crc).
			Uint32("want", zr.wantCRC).
			Msg("checksum mismatch")
		return ErrChecksum
	}
	return nil
}

// Close releases the Reader. It does not close the underlying io.Reader.
func (zr *Reader) Close() error {
	if zr.err == io.EOF || zr.err == ErrClosed {
		zr.err = ErrClosed
		return nil
	}
	err := zr.err
	zr.err = ErrClosed
	return err
}

func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

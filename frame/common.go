// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package frame implements a block based container around the dictionary
// and grammar coders.
//
// A stream starts with the magic "TDC1", a method byte and the block size as
// a compressed integer. Each block follows as its raw length and payload
// length (both uvarints) and the payload. A raw length of zero ends the
// blocks and is followed by the block count (uvarint) and the big-endian
// CRC-32 (IEEE) of all raw data.
//
// Blocks are independent of each other, so they are coded in parallel.
package frame

import (
	"bytes"
	"hash/crc32"
	"io"
	"runtime"

	hashutil "github.com/dsnet/golib/hashmerge"
	"github.com/rs/zerolog"
	"github.com/tdcgo/textcomp/esp"
	"github.com/tdcgo/textcomp/lzw"
)

const magic = "TDC1"

// MaxBlockSize is the largest supported block size.
const MaxBlockSize = 1 << 26

// Error is the wrapper type for errors specific to this library.
type Error string

func (e Error) Error() string { return "frame: " + string(e) }

var (
	ErrCorrupt  error = Error("stream is corrupted")
	ErrChecksum error = Error("checksum mismatch")
	ErrClosed   error = Error("stream is closed")
	ErrMethod   error = Error("unknown method")
)

// Method selects the coder used for every block.
type Method byte

const (
	LZW Method = 1 // LZW codes in the bit code
	ESP Method = 2 // Dependency sorted grammar
)

func (m Method) String() string {
	switch m {
	case LZW:
		return "lzw"
	case ESP:
		return "esp"
	default:
		return "unknown"
	}
}

// Options configures a Writer or Reader. The zero value selects LZW, a
// 1 MiB block size and one worker per CPU, and discards log output.
type Options struct {
	Method    Method
	BlockSize int
	Workers   int
	Logger    *zerolog.Logger
}

func (o *Options) init() (Options, error) {
	var opts Options
	if o != nil {
		opts = *o
	}
	if opts.Method == 0 {
		opts.Method = LZW
	}
	if opts.Method != LZW && opts.Method != ESP {
		return opts, ErrMethod
	}
	if opts.BlockSize == 0 {
		opts.BlockSize = 1 << 20
	}
	if opts.BlockSize < 0 || opts.BlockSize > MaxBlockSize {
		return opts, Error("invalid block size")
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Logger == nil {
		nop := zerolog.Nop()
		opts.Logger = &nop
	}
	return opts, nil
}

func encodeBlock(m Method, raw []byte) ([]byte, error) {
	var b bytes.Buffer
	switch m {
	case LZW:
		if err := lzw.EncodeBits(&b, lzw.Compress(raw)); err != nil {
			return nil, err
		}
	case ESP:
		slp := esp.Build(raw)
		if err := esp.DepSort(slp); err != nil {
			return nil, err
		}
		if err := esp.Encode(&b, slp); err != nil {
			return nil, err
		}
	default:
		return nil, ErrMethod
	}
	return b.Bytes(), nil
}

// decodeBlock decodes a single payload. Any failure of the underlying
// coder is reported as ErrCorrupt.
func decodeBlock(m Method, payload []byte, rawLen int) ([]byte, error) {
	switch m {
	case LZW:
		w := &limitWriter{buf: make([]byte, 0, rawLen)}
		if err := lzw.DecodeBits(bytes.NewReader(payload), w); err != nil {
			return nil, ErrCorrupt
		}
		if len(w.buf) != rawLen {
			return nil, ErrCorrupt
		}
		return w.buf, nil
	case ESP:
		slp, err := esp.Decode(bytes.NewReader(payload))
		if err != nil {
			return nil, ErrCorrupt
		}
		if n, err := slp.ExpandedLen(); err != nil || n != uint64(rawLen) {
			return nil, ErrCorrupt
		}
		raw, err := slp.Expand()
		if err != nil {
			return nil, ErrCorrupt
		}
		return raw, nil
	default:
		return nil, ErrMethod
	}
}

// limitWriter collects output up to the capacity of buf.
type limitWriter struct{ buf []byte }

func (w *limitWriter) Write(b []byte) (int, error) {
	if len(b) > cap(w.buf)-len(w.buf) {
		return 0, ErrCorrupt
	}
	w.buf = append(w.buf, b...)
	return len(b), nil
}

// combineCRC appends the checksum of a block of length len2 to crc1.
func combineCRC(crc1, crc2 uint32, len2 int64) uint32 {
	return hashutil.CombineCRC32(crc32.IEEE, crc1, crc2, len2)
}

// Compress returns input encoded as a complete stream.
func Compress(input []byte, opts *Options) ([]byte, error) {
	var b bytes.Buffer
	zw, err := NewWriter(&b, opts)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(input); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// Decompress decodes a complete stream. Data following the trailer is
// ignored.
func Decompress(data []byte, opts *Options) ([]byte, error) {
	zr, err := NewReader(bytes.NewReader(data), opts)
	if err != nil {
		return nil, err
	}
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, err
	}
	return out, zr.Close()
}

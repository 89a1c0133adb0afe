// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zstd"
	"github.com/tdcgo/textcomp/frame"
	"github.com/ulikunitz/xz"
)

// The textcomp coders ignore the level. The reference compressors map it
// onto their own scales.
func init() {
	for name, m := range map[string]frame.Method{"lzw": frame.LZW, "esp": frame.ESP} {
		m := m
		RegisterEncoder(name,
			func(w io.Writer, lvl int) io.WriteCloser {
				zw, err := frame.NewWriter(w, &frame.Options{Method: m, BlockSize: 1 << 18})
				if err != nil {
					panic(err)
				}
				return zw
			})
		RegisterDecoder(name,
			func(r io.Reader) io.ReadCloser {
				zr, err := frame.NewReader(r, nil)
				if err != nil {
					return errReader{err}
				}
				return zr
			})
	}

	RegisterEncoder("flate",
		func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := flate.NewWriter(w, lvl)
			if err != nil {
				panic(err)
			}
			return zw
		})
	RegisterDecoder("flate",
		func(r io.Reader) io.ReadCloser {
			return flate.NewReader(r)
		})

	RegisterEncoder("zstd",
		func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(lvl)))
			if err != nil {
				panic(err)
			}
			return zw
		})
	RegisterDecoder("zstd",
		func(r io.Reader) io.ReadCloser {
			zr, err := zstd.NewReader(r)
			if err != nil {
				return errReader{err}
			}
			return zr.IOReadCloser()
		})

	RegisterEncoder("xz",
		func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := xz.NewWriter(w)
			if err != nil {
				panic(err)
			}
			return zw
		})
	RegisterDecoder("xz",
		func(r io.Reader) io.ReadCloser {
			zr, err := xz.NewReader(r)
			if err != nil {
				return errReader{err}
			}
			return io.NopCloser(zr)
		})
}

// errReader reports a decoder setup failure on the first Read.
type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }
func (r errReader) Close() error             { return r.err }

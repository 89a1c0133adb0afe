// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package lzw implements a Lempel-Ziv-Welch dictionary coder.
//
// The dictionary starts out with one entry per byte value, so codes 0 through
// 255 stand for single bytes. Every further code refers to an earlier
// phrase extended by one byte. The coder itself produces a sequence of codes;
// the DebugCode and BitCode formats serialize such a sequence.
package lzw

import (
	"io"

	"github.com/tdcgo/textcomp/internal"
)

// Error is the wrapper type for errors specific to this library.
type Error string

func (e Error) Error() string { return "lzw: " + string(e) }

var ErrCorrupt error = Error("stream is corrupted")

// Entry is a dictionary code.
type Entry int64

// End is returned by an EntryReader once the code stream is exhausted.
const End Entry = -1

const numTerminals = internal.NumTerminals

// EntryReader produces the codes of a stream one at a time.
// At the end of the stream, ReadEntry returns End and a nil error.
type EntryReader interface {
	ReadEntry() (Entry, error)
}

// Compress returns the codes for input.
//
// At each position the longest phrase already in the dictionary is emitted,
// and that phrase extended by the byte following it becomes a new entry.
func Compress(input []byte) []Entry {
	trie := make(map[uint64]Entry)
	next := Entry(numTerminals)
	var codes []Entry
	for i := 0; i < len(input); {
		code := Entry(input[i])
		j := i + 1
		for ; j < len(input); j++ {
			c, ok := trie[trieKey(code, input[j])]
			if !ok {
				break
			}
			code = c
		}
		codes = append(codes, code)
		if j < len(input) {
			trie[trieKey(code, input[j])] = next
			next++
		}
		i = j
	}
	return codes
}

func trieKey(e Entry, c byte) uint64 { return uint64(e)<<8 | uint64(c) }

type dictEntry struct {
	prefix Entry // Zero for the single byte entries
	ext    byte
	first  byte
	size   int
}

type dictionary []dictEntry

func newDictionary() dictionary {
	d := make(dictionary, numTerminals)
	for i := range d {
		d[i] = dictEntry{ext: byte(i), first: byte(i), size: 1}
	}
	return d
}

// phrase appends the bytes of code to buf.
func (d dictionary) phrase(buf []byte, code Entry) []byte {
	n := len(buf)
	for i := 0; i < d[code].size; i++ {
		buf = append(buf, 0)
	}
	for i := len(buf) - 1; i >= n; i-- {
		buf[i] = d[code].ext
		code = d[code].prefix
	}
	return buf
}

// Decode reads codes from r and writes the decoded bytes to w.
func Decode(r EntryReader, w io.Writer) error {
	dict := newDictionary()
	prev := End
	var buf []byte
	for {
		code, err := r.ReadEntry()
		if err != nil {
			return err
		}
		if code == End {
			return nil
		}
		if code < 0 || int64(code) > int64(len(dict)) || (code == Entry(len(dict)) && prev == End) {
			return ErrCorrupt
		}

		if prev != End {
			// The new entry is the previous phrase extended by the first
			// byte of the current one. If the current code is the entry
			// being defined, that byte is the first byte of the previous
			// phrase.
			first := dict[prev].first
			if code < Entry(len(dict)) {
				first = dict[code].first
			}
			p := dict[prev]
			dict = append(dict, dictEntry{prefix: prev, ext: first, first: p.first, size: p.size + 1})
		}

		buf = dict.phrase(buf[:0], code)
		if _, err := w.Write(buf); err != nil {
			return err
		}
		prev = code
	}
}

// sliceReader reads codes from a slice.
type sliceReader []Entry

func (r *sliceReader) ReadEntry() (Entry, error) {
	if len(*r) == 0 {
		return End, nil
	}
	e := (*r)[0]
	*r = (*r)[1:]
	return e, nil
}

// NewSliceReader returns an EntryReader over codes.
func NewSliceReader(codes []Entry) EntryReader {
	r := sliceReader(codes)
	return &r
}

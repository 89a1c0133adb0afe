// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"bufio"
	"io"
	"strconv"
)

// The debug code is a human readable text form of a code sequence. Each code
// is followed by a comma. Codes between 32 and 127 are written as a quoted
// character, all others as a decimal number.
//
//	'a','b','c',256,258,'c',

// EncodeDebug writes codes to w in the debug text form.
func EncodeDebug(w io.Writer, codes []Entry) error {
	bw := bufio.NewWriter(w)
	var buf []byte
	for _, e := range codes {
		buf = buf[:0]
		if e >= 32 && e <= 127 {
			buf = append(buf, '\'', byte(e), '\'')
		} else {
			buf = strconv.AppendInt(buf, int64(e), 10)
		}
		buf = append(buf, ',')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// DebugReader parses the debug text form.
type DebugReader struct {
	rd *bufio.Reader
}

// NewDebugReader returns an EntryReader that parses the debug text form.
func NewDebugReader(r io.Reader) *DebugReader {
	return &DebugReader{rd: bufio.NewReader(r)}
}

func (dr *DebugReader) ReadEntry() (Entry, error) {
	c, err := dr.rd.ReadByte()
	if err == io.EOF {
		return End, nil
	}
	if err != nil {
		return End, err
	}

	var e Entry
	switch {
	case c == '\'':
		var q [3]byte // Character, closing quote and comma
		if _, err := io.ReadFull(dr.rd, q[:]); err != nil {
			return End, ErrCorrupt
		}
		if q[1] != '\'' || q[2] != ',' {
			return End, ErrCorrupt
		}
		return Entry(q[0]), nil
	case '0' <= c && c <= '9':
		for {
			e = 10*e + Entry(c-'0')
			if e > 1<<40 {
				return End, ErrCorrupt
			}
			if c, err = dr.rd.ReadByte(); err != nil {
				return End, ErrCorrupt
			}
			if c == ',' {
				return e, nil
			}
			if c < '0' || c > '9' {
				return End, ErrCorrupt
			}
		}
	default:
		return End, ErrCorrupt
	}
}

// DecodeDebug decodes the debug text form read from r and writes the result
// to w.
func DecodeDebug(r io.Reader, w io.Writer) error {
	return Decode(NewDebugReader(r), w)
}

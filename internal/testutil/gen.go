// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import "strings"

// Repeats generates size bytes that heavily favor dictionary and grammar
// based compression since a large bulk of the data is a copy from some
// distance ago. Since the source data is mostly random, the copies are the
// only structure worth finding.
func Repeats(seed, size int) []byte {
	var b []byte
	r := NewRand(seed)

	randLen := func() (l int) {
		p := r.Float32()
		switch {
		case p <= 0.15: // 4..8
			l = 4 + r.Int()%4
		case p <= 0.30: // 8..16
			l = 8 + r.Int()%8
		case p <= 0.45: // 16..32
			l = 16 + r.Int()%16
		case p <= 0.60: // 32..64
			l = 32 + r.Int()%32
		case p <= 0.75: // 64..128
			l = 64 + r.Int()%64
		case p <= 0.90: // 128..256
			l = 128 + r.Int()%128
		default: // 256..512
			l = 256 + r.Int()%256
		}
		return l
	}

	randDist := func() (d int) {
		for d == 0 || d > len(b) {
			p := r.Float32()
			switch {
			case p <= 0.2: // 1..4
				d = 1 + r.Int()%4
			case p <= 0.4: // 4..16
				d = 4 + r.Int()%12
			case p <= 0.6: // 16..128
				d = 16 + r.Int()%112
			case p <= 0.8: // 128..1024
				d = 128 + r.Int()%896
			default: // 1024..8192
				d = 1024 + r.Int()%7168
			}
		}
		return d
	}

	writeRand := func(l int) {
		b = append(b, r.Bytes(l)...)
	}
	writeCopy := func(d, l int) {
		for i := 0; i < l; i++ {
			b = append(b, b[len(b)-d])
		}
	}

	writeRand(randLen())
	for len(b) < size {
		if r.Float32() <= 0.1 {
			writeRand(randLen())
		} else {
			writeCopy(randDist(), randLen())
		}
	}
	return b[:size]
}

var vocabulary = strings.Fields(`
	the of and to in is was he for it with as his on be at by had are but
	from or have an they which one you were her all she there would their
	we him been has when who will more no if out so said what up its about
	into than them can only other new some could time these two may then do
	first any my now such like our over man me even most made after also did
	many before must through back years where much your way well down should
	because each just those people mister how too little state good very make
	world still own see men work long get here between both life being under
	never day same another know while last might us great old year off come`)

// Words generates n words of pseudo-English text separated by spaces with
// an occasional line break.
func Words(seed, n int) []byte {
	r := NewRand(seed)
	var sb strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			if r.Intn(12) == 0 {
				sb.WriteString(".\n")
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(vocabulary[r.Intn(len(vocabulary))])
	}
	return []byte(sb.String())
}

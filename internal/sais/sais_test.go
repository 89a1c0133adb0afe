// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package sais

import (
	"bytes"
	"sort"
	"testing"

	"github.com/tdcgo/textcomp/internal/testutil"
)

func naiveSA(T []byte) []int {
	sa := make([]int, len(T))
	for i := range sa {
		sa[i] = i
	}
	sort.Slice(sa, func(i, j int) bool {
		return bytes.Compare(T[sa[i]:], T[sa[j]:]) < 0
	})
	return sa
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestComputeSA(t *testing.T) {
	rand := testutil.NewRand(0)
	vectors := [][]byte{
		nil,
		[]byte("a"),
		[]byte("aa"),
		[]byte("ab"),
		[]byte("ba"),
		[]byte("banana"),
		[]byte("mississippi"),
		[]byte("abracadabra\x00"),
		[]byte("\x00\x00\x00"),
		[]byte("\xff\x00\xff\x00\xff"),
		bytes.Repeat([]byte("ab"), 100),
		bytes.Repeat([]byte("aab"), 77),
		testutil.Repeats(1, 2000),
		[]byte(testutil.Words(2, 300)),
		rand.Alphabet(1000, "ab"),
		rand.Alphabet(1000, "acgt"),
		rand.Bytes(1000),
	}
	for i := 0; i < 50; i++ {
		vectors = append(vectors, rand.Alphabet(rand.Intn(200), "abcde"[:1+rand.Intn(5)]))
	}

	for i, v := range vectors {
		got := make([]int, len(v))
		ComputeSA(v, got)
		want := naiveSA(v)
		if !equalInts(got, want) {
			t.Errorf("test %d, suffix array mismatch:\ngot  %v\nwant %v", i, got, want)
		}
	}
}

func TestComputeSAInts(t *testing.T) {
	rand := testutil.NewRand(1)
	for i := 0; i < 50; i++ {
		k := 1 + rand.Intn(600)
		T := rand.Ints(rand.Intn(300), k)
		got := make([]int, len(T))
		ComputeSAInts(T, k, got)

		want := make([]int, len(T))
		for j := range want {
			want[j] = j
		}
		sort.Slice(want, func(a, b int) bool {
			x, y := T[want[a]:], T[want[b]:]
			for n := 0; n < len(x) && n < len(y); n++ {
				if x[n] != y[n] {
					return x[n] < y[n]
				}
			}
			return len(x) < len(y)
		})
		if !equalInts(got, want) {
			t.Errorf("test %d, suffix array mismatch:\ngot  %v\nwant %v", i, got, want)
		}
	}
}

func BenchmarkComputeSA(b *testing.B) {
	T := testutil.Repeats(0, 1<<16)
	SA := make([]int, len(T))
	b.SetBytes(int64(len(T)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ComputeSA(T, SA)
	}
}

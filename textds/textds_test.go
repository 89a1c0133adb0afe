// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package textds

import (
	"bytes"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/tdcgo/textcomp/internal/testutil"
)

func naiveSA(text []byte) []int {
	sa := make([]int, len(text))
	for i := range sa {
		sa[i] = i
	}
	sort.Slice(sa, func(i, j int) bool {
		return bytes.Compare(text[sa[i]:], text[sa[j]:]) < 0
	})
	return sa
}

func naiveLCP(text []byte, sa []int) []int {
	lcp := make([]int, len(sa))
	for i := 1; i < len(sa); i++ {
		a, b := text[sa[i-1]:], text[sa[i]:]
		for lcp[i] < len(a) && lcp[i] < len(b) && a[lcp[i]] == b[lcp[i]] {
			lcp[i]++
		}
	}
	return lcp
}

func TestNewErrors(t *testing.T) {
	for _, v := range []string{"", "banana", "ban\x00ana"} {
		_, err := New([]byte(v), SA, nil)
		assert.Equal(t, ErrNoSentinel, err, "New(%q)", v)
	}
	_, err := New([]byte("ban\x00ana\x00"), SA, nil)
	assert.NoError(t, err)
}

func TestStructures(t *testing.T) {
	rand := testutil.NewRand(0)
	vectors := [][]byte{
		[]byte("\x00"),
		[]byte("banana\x00"),
		[]byte("mississippi\x00"),
		[]byte("\x00\x00\x00"),
		[]byte("a\x00b\x00a\x00"),
		testutil.WithSentinel(bytes.Repeat([]byte("abc"), 40)),
		testutil.WithSentinel(testutil.Repeats(1, 1500)),
		testutil.WithSentinel(testutil.Words(2, 200)),
	}
	for i := 0; i < 20; i++ {
		vectors = append(vectors, append(rand.Alphabet(rand.Intn(300), "ab\x00"), 0))
	}

	for i, v := range vectors {
		ds, err := New(v, SA|ISA|LCP|PHI|PLCP, nil)
		if err != nil {
			t.Fatalf("test %d, unexpected error: %v", i, err)
		}
		sa := naiveSA(v)
		lcp := naiveLCP(v, sa)
		if diff := cmp.Diff(sa, ds.RequireSA()); diff != "" {
			t.Errorf("test %d, SA mismatch (-want +got):\n%s", i, diff)
		}
		if diff := cmp.Diff(lcp, ds.RequireLCP()); diff != "" {
			t.Errorf("test %d, LCP mismatch (-want +got):\n%s", i, diff)
		}
		isa, phi, plcp := ds.RequireISA(), ds.RequirePhi(), ds.RequirePLCP()
		for j, s := range sa {
			if isa[s] != j {
				t.Errorf("test %d, ISA[%d] mismatch: got %d, want %d", i, s, isa[s], j)
			}
			if j > 0 && phi[s] != sa[j-1] {
				t.Errorf("test %d, Phi[%d] mismatch: got %d, want %d", i, s, phi[s], sa[j-1])
			}
			if plcp[s] != lcp[j] {
				t.Errorf("test %d, PLCP[%d] mismatch: got %d, want %d", i, s, plcp[s], lcp[j])
			}
		}
	}
}

func TestRequireRelease(t *testing.T) {
	var built []string
	opts := &Options{
		SA: func(text []byte) []int {
			built = append(built, "sa")
			return BuildSA(text)
		},
		ISA: func(sa []int) []int {
			built = append(built, "isa")
			return ISAFromSA(sa)
		},
	}
	ds, err := New([]byte("abracadabra\x00"), 0, opts)
	assert.NoError(t, err)
	assert.Equal(t, Flags(0), ds.Flags())
	assert.Empty(t, built)

	ds.Require(ISA)
	assert.Equal(t, []string{"sa", "isa"}, built)
	assert.Equal(t, SA|ISA, ds.Flags())

	// Structures already built are not built again.
	ds.Require(SA | ISA)
	assert.Equal(t, []string{"sa", "isa"}, built)

	ds.Require(LCP)
	assert.Equal(t, SA|PHI|PLCP|LCP, ds.Flags())
	assert.Nil(t, ds.ReleaseISA())

	lcp := ds.ReleaseLCP()
	assert.Len(t, lcp, 12)
	assert.Equal(t, SA|PHI|PLCP, ds.Flags())
	assert.Nil(t, ds.ReleaseLCP())

	ds.Require(0)
	assert.Equal(t, Flags(0), ds.Flags())
	assert.Nil(t, ds.ReleaseSA())
}

func TestPrint(t *testing.T) {
	ds, err := New([]byte("aba\x00"), SA|LCP, nil)
	assert.NoError(t, err)
	ds.ReleasePhi() // Built as a dependency of LCP
	ds.ReleasePLCP()

	var b strings.Builder
	assert.NoError(t, ds.Print(&b, 1))
	want := "" +
		"       i |    SA[i] |   LCP[i] | \n" +
		"---------|----------|----------|-\n" +
		"       1 |        4 |        0 | \n" +
		"       2 |        3 |        0 | \n" +
		"       3 |        1 |        1 | \n" +
		"       4 |        2 |        0 | \n"
	assert.Equal(t, want, b.String())
}

func TestBWT(t *testing.T) {
	for i, v := range []string{"\x00", "banana\x00", "abracadabra\x00", string(testutil.Words(5, 100)) + "\x00"} {
		ds, err := New([]byte(v), 0, nil)
		if err != nil {
			t.Fatalf("test %d, unexpected error: %v", i, err)
		}
		bwt := ds.BWT()
		if got := InverseBWT(bwt); !bytes.Equal(got, []byte(v)) {
			t.Errorf("test %d, inverse mismatch: got %q, want %q", i, got, v)
		}
	}

	ds, _ := New([]byte("banana\x00"), 0, nil)
	if got, want := string(ds.BWT()), "annb\x00aa"; got != want {
		t.Errorf("BWT mismatch: got %q, want %q", got, want)
	}
}

func TestRotationBWT(t *testing.T) {
	var vectors = []struct {
		input  string
		output string
		ptr    int
	}{
		{"", "", -1},
		{"Hello, world!", ",do!lHrellwo ", 3},
		{"SIX.MIXED.PIXIES.SIFT.SIXTY.PIXIE.DUST.BOXES", "TEXYDST.E.IXIXIXXSSMPPS.B..E.S.EUSFXDIIOIIIT", 29},
		{"0123456789", "9012345678", 0},
		{"9876543210", "1234567890", 9},
	}
	for i, v := range vectors {
		b := []byte(v.input)
		ptr := EncodeBWT(b)
		if string(b) != v.output {
			t.Errorf("test %d, output mismatch: got %q, want %q", i, b, v.output)
		}
		if ptr != v.ptr {
			t.Errorf("test %d, pointer mismatch: got %d, want %d", i, ptr, v.ptr)
		}
		DecodeBWT(b, ptr)
		if string(b) != v.input {
			t.Errorf("test %d, input mismatch: got %q, want %q", i, b, v.input)
		}
	}
}

// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package esp

import (
	"bytes"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/tdcgo/textcomp/internal"
	"github.com/tdcgo/textcomp/internal/testutil"
)

func TestCodec(t *testing.T) {
	var vectors = []struct {
		desc   string
		slp    SLP
		output []byte
	}{{
		desc:   "empty grammar",
		slp:    SLP{Empty: true},
		output: []byte{0x00},
	}, {
		desc: "single terminal",
		slp:  SLP{Root: 'a'},
		output: testutil.MustDecodeBitGen(`>>> >
			D6:8 D8:255 D8:97 # Header without rules
			C:0               # No class boundaries
		`),
	}, {
		desc: "self referencing left symbols",
		slp:  SLP{Rules: [][2]uint64{{256, 0}, {257, 1}, {258, 256}}, Root: 258},
		output: testutil.MustDecodeBitGen(`>>> >
			D6:9 D9:258 D9:258
			U:256 U:1 U:1     # Left symbols: 256, 257, 258
			U:0 U:1 U:255     # Right symbols in sorted order: 0, 1, 256
			C:3 1 1 1
			D2:0 D2:1 D2:2
		`),
	}, {
		desc: "repeated left symbols",
		slp:  SLP{Rules: [][2]uint64{{2, 0}, {5, 1}, {5, 2}, {9, 3}}, Root: 259},
		output: testutil.MustDecodeBitGen(`>>> >
			D6:9 D9:259 D9:259
			U:2 U:3 U:0 U:4   # Left symbols: 2, 5, 5, 9
			U:0 U:1 U:1 U:1
			C:4 1 1 1 1
			D2:0 D2:1 D2:2 D2:3
		`),
	}, {
		desc: "shared right symbols",
		slp:  SLP{Rules: [][2]uint64{{97, 98}, {97, 256}}, Root: 257},
		output: testutil.MustDecodeHex("" +
			"2603010000000000000000000000006000000000000000000000000400000000" +
			"000000000000000000000000000000081680"),
	}, {
		desc: "equal right symbols",
		slp:  SLP{Rules: [][2]uint64{{97, 98}, {98, 97}, {256, 98}, {257, 97}}, Root: 259},
		output: testutil.MustDecodeBitGen(`>>> >
			D6:9 D9:259 D9:259
			U:97 U:1 U:158 U:1 # Left symbols: 97, 98, 256, 257
			U:97 U:0 U:1 U:0   # Right symbols in sorted order: 97, 97, 98, 98
			C:4 1 0 1 0
			1 0 1 0            # Class of each rule
		`),
	}}

	for i, v := range vectors {
		var b bytes.Buffer
		if err := Encode(&b, &v.slp); err != nil {
			t.Errorf("test %d (%s), unexpected Encode error: %v", i, v.desc, err)
			continue
		}
		if got := b.Bytes(); !bytes.Equal(got, v.output) {
			t.Errorf("test %d (%s), output mismatch:\ngot  %x\nwant %x", i, v.desc, got, v.output)
		}

		got, err := Decode(bytes.NewReader(v.output))
		if err != nil {
			t.Errorf("test %d (%s), unexpected Decode error: %v", i, v.desc, err)
			continue
		}
		if diff := cmp.Diff(&v.slp, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("test %d (%s), grammar mismatch (-want +got):\n%s", i, v.desc, diff)
		}
	}
}

func TestEncodeErrors(t *testing.T) {
	var vectors = []struct {
		slp SLP
		err error
	}{
		{SLP{Empty: true, Root: 3}, ErrInvalid},
		{SLP{Empty: true, Rules: [][2]uint64{{97, 98}}}, ErrInvalid},
		{SLP{Root: 256}, ErrInvalid},
		{SLP{Rules: [][2]uint64{{98, 97}, {97, 98}}, Root: 257}, ErrNotSorted},
	}
	for i, v := range vectors {
		if err := Encode(io.Discard, &v.slp); err != v.err {
			t.Errorf("test %d, error mismatch: got %v, want %v", i, err, v.err)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	var vectors = []struct {
		input []byte
		err   error
	}{
		{nil, io.ErrUnexpectedEOF},
		{testutil.MustDecodeBitGen(">>> > D6:9 D4:0"), io.ErrUnexpectedEOF},
		{testutil.MustDecodeBitGen(">>> > D6:9 D9:100 D9:0"), ErrCorrupt},         // Fewer than 256 symbols
		{testutil.MustDecodeBitGen(">>> > D6:10 D10:257 D10:256"), ErrCorrupt},    // Oversized width
		{testutil.MustDecodeBitGen(">>> > D6:9 D9:256 D9:300"), ErrCorrupt},       // Root out of range
		{testutil.MustDecodeBitGen(">>> > D6:9 D9:256 D9:256 U:300"), ErrCorrupt}, // Left symbol out of range
		{testutil.MustDecodeBitGen(">>> > D6:9 D9:256 D9:256 U:0 U:0 C:2"), ErrCorrupt},
		{testutil.MustDecodeBitGen(">>> > D6:9 D9:256 D9:256 U:0 U:0 C:1 0 0"), ErrCorrupt},
		{testutil.MustDecodeBitGen(`>>> >
			D6:9 D9:257 D9:257 U:97 U:0 U:98 U:0
			C:2 1 0 D1:1 D1:0 # Class 1 does not exist
		`), ErrCorrupt},
		{testutil.MustDecodeBitGen(`>>> >
			D6:9 D9:257 D9:257 U:97 U:0 U:98 U:1
			C:2 1 1 D1:0 D1:0 # Class 1 is never used
		`), ErrCorrupt},
	}
	for i, v := range vectors {
		_, err := Decode(bytes.NewReader(v.input))
		if err != v.err {
			t.Errorf("test %d, error mismatch: got %v, want %v", i, err, v.err)
		}
	}
}

func TestDecodeTruncated(t *testing.T) {
	slp := SLP{Rules: [][2]uint64{{97, 98}, {97, 256}}, Root: 257}
	var b bytes.Buffer
	if err := Encode(&b, &slp); err != nil {
		t.Fatalf("unexpected Encode error: %v", err)
	}
	full := b.Bytes()

	// The header spans the first 24 bits. Any truncation after it yields
	// the rules read so far.
	for n := 3; n < len(full); n++ {
		got, err := Decode(bytes.NewReader(full[:n]))
		if err != nil {
			t.Errorf("length %d, unexpected error: %v", n, err)
			continue
		}
		if got.Root != 257 || len(got.Rules) > 2 {
			t.Errorf("length %d, unexpected grammar: %+v", n, got)
		}
		for j, r := range got.Rules {
			if r[0] != slp.Rules[j][0] || r[1] != 0 {
				t.Errorf("length %d, rule %d mismatch: got %v", n, j, r)
			}
		}
	}
	for n := 0; n < 3; n++ {
		if _, err := Decode(bytes.NewReader(full[:n])); err != io.ErrUnexpectedEOF {
			t.Errorf("length %d, error mismatch: got %v, want %v", n, err, io.ErrUnexpectedEOF)
		}
	}
}

func TestDecodeManyRules(t *testing.T) {
	// A chain of more rules than the fuzz builds accept.
	const n = 1<<16 + 100
	slp := SLP{Rules: make([][2]uint64, n), Root: 256 + n - 1}
	slp.Rules[0] = [2]uint64{97, 97}
	for i := 1; i < n; i++ {
		slp.Rules[i] = [2]uint64{256 + uint64(i) - 1, 97}
	}
	var b bytes.Buffer
	if err := Encode(&b, &slp); err != nil {
		t.Fatalf("unexpected Encode error: %v", err)
	}

	got, err := Decode(&b)
	if internal.GoFuzz {
		if err != ErrCorrupt {
			t.Errorf("error mismatch: got %v, want %v", err, ErrCorrupt)
		}
		return
	}
	if err != nil {
		t.Fatalf("unexpected Decode error: %v", err)
	}
	if got.Root != slp.Root || len(got.Rules) != n {
		t.Fatalf("grammar mismatch: got root %d with %d rules, want root %d with %d rules", got.Root, len(got.Rules), slp.Root, n)
	}
	if diff := cmp.Diff(slp.Rules, got.Rules); diff != "" {
		t.Errorf("rules mismatch (-want +got):\n%s", diff)
	}
}

func TestRank(t *testing.T) {
	rand := testutil.NewRand(0)
	vectors := [][]uint64{
		nil,
		{7},
		{3, 1, 2},
		{0, 1, 256},
		{5, 5, 5, 5},
		{9, 2, 9, 2, 9, 1},
	}
	for i := 0; i < 100; i++ {
		var vals []uint64
		for _, x := range rand.Ints(rand.Intn(200), 1+rand.Intn(50)) {
			vals = append(vals, uint64(x))
		}
		vectors = append(vectors, vals)
	}

	for i, v := range vectors {
		r := Rank(v)
		for k := 1; k < len(r.SIS); k++ {
			a, b := r.SIS[k-1], r.SIS[k]
			if v[a] > v[b] || (v[a] == v[b] && a > b) {
				t.Fatalf("test %d, sorted indices not stable at %d: %v", i, k, r.SIS)
			}
		}
		sis, err := r.Recover()
		if err != nil {
			t.Errorf("test %d, unexpected Recover error: %v", i, err)
		}
		if diff := cmp.Diff(r.SIS, sis, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("test %d, recovered indices mismatch (-want +got):\n%s", i, diff)
		}
		sis, err = ClassesFrom(r.Dpi, r.B)
		if err != nil {
			t.Errorf("test %d, unexpected ClassesFrom error: %v", i, err)
		}
		if diff := cmp.Diff(r.SIS, sis, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("test %d, class indices mismatch (-want +got):\n%s", i, diff)
		}
	}

	r := Rank([]uint64{9, 2, 9, 2, 9, 1})
	want := &Ranking{
		SIS: []int{5, 1, 3, 0, 2, 4},
		Dpi: []int{2, 1, 2, 1, 2, 0},
		Dsi: []int{5, 1, 2, 0, 2, 2},
		B:   []bool{true, true, false, true, false, false},
	}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("ranking mismatch (-want +got):\n%s", diff)
	}
	r.Dsi[2] = 1
	if _, err := r.Recover(); err != ErrCorrupt {
		t.Errorf("Recover error mismatch: got %v, want %v", err, ErrCorrupt)
	}
}

func TestDepSort(t *testing.T) {
	// Already sorted grammars are left alone.
	sorted := SLP{Rules: [][2]uint64{{97, 98}, {97, 256}, {256, 257}}, Root: 258}
	got := SLP{Rules: append([][2]uint64(nil), sorted.Rules...), Root: sorted.Root}
	if err := DepSort(&got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(sorted, got); diff != "" {
		t.Errorf("sorted grammar changed (-want +got):\n%s", diff)
	}

	// Left symbols defined after use are moved up front.
	slp := SLP{Rules: [][2]uint64{{257, 99}, {98, 258}, {97, 98}}, Root: 256}
	before, err := slp.Expand()
	if err != nil {
		t.Fatalf("unexpected Expand error: %v", err)
	}
	if err := DepSort(&slp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := SLP{Rules: [][2]uint64{{97, 98}, {98, 256}, {257, 99}}, Root: 258}
	if diff := cmp.Diff(want, slp); diff != "" {
		t.Errorf("grammar mismatch (-want +got):\n%s", diff)
	}
	after, err := slp.Expand()
	if err != nil {
		t.Fatalf("unexpected Expand error: %v", err)
	}
	if string(before) != "babc" || string(after) != string(before) {
		t.Errorf("expansion mismatch: got %q before and %q after, want %q", before, after, "babc")
	}

	// Reversing the rule order puts every definition after its use.
	// DepSort must restore an order without changing the expansion.
	for i := 0; i < 50; i++ {
		text := testutil.Words(i, 1+i*7)
		slp := Build(text)
		n := uint64(len(slp.Rules))
		rev := func(sym uint64) uint64 {
			if sym < 256 {
				return sym
			}
			return 256 + n - 1 - (sym - 256)
		}
		for j, k := 0, len(slp.Rules)-1; j <= k; j, k = j+1, k-1 {
			rj, rk := slp.Rules[j], slp.Rules[k]
			slp.Rules[j] = [2]uint64{rev(rk[0]), rev(rk[1])}
			slp.Rules[k] = [2]uint64{rev(rj[0]), rev(rj[1])}
		}
		slp.Root = rev(slp.Root)
		if err := DepSort(slp); err != nil {
			t.Fatalf("test %d, unexpected DepSort error: %v", i, err)
		}
		if !IsSorted(slp) {
			t.Errorf("test %d, grammar not sorted after DepSort", i)
		}
		got, err := slp.Expand()
		if err != nil || !bytes.Equal(got, text) {
			t.Errorf("test %d, expansion mismatch after DepSort: %v", i, err)
		}
	}

	var vectors = []struct {
		slp SLP
		err error
	}{
		{SLP{Rules: [][2]uint64{{257, 97}, {256, 98}}, Root: 256}, ErrInvalid}, // Cycle
		{SLP{Rules: [][2]uint64{{97, 300}}, Root: 256}, ErrInvalid},
		{SLP{Rules: [][2]uint64{{97, 98}}, Root: 257}, ErrInvalid},
		{SLP{Empty: true, Root: 1}, ErrInvalid},
		{SLP{Empty: true}, nil},
	}
	for i, v := range vectors {
		if err := DepSort(&v.slp); err != v.err {
			t.Errorf("test %d, error mismatch: got %v, want %v", i, err, v.err)
		}
	}
}

func TestExpand(t *testing.T) {
	var vectors = []struct {
		slp    SLP
		output string
		err    error
	}{
		{SLP{Empty: true}, "", nil},
		{SLP{Root: 'x'}, "x", nil},
		{SLP{Rules: [][2]uint64{{97, 98}, {256, 256}, {257, 99}}, Root: 258}, "ababc", nil},
		{SLP{Rules: [][2]uint64{{97, 257}, {98, 256}}, Root: 256}, "", ErrInvalid},
		{SLP{Rules: [][2]uint64{{97, 300}}, Root: 256}, "", ErrInvalid},
	}
	for i, v := range vectors {
		got, err := v.slp.Expand()
		if err != v.err {
			t.Errorf("test %d, error mismatch: got %v, want %v", i, err, v.err)
		}
		if err == nil && string(got) != v.output {
			t.Errorf("test %d, output mismatch: got %q, want %q", i, got, v.output)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	rand := testutil.NewRand(0)
	vectors := [][]byte{
		nil,
		[]byte("a"),
		[]byte("abcabcabc"),
		bytes.Repeat([]byte{'z'}, 1000),
		[]byte(testutil.Words(0, 500)),
		testutil.Repeats(1, 4096),
		rand.Bytes(300),
		rand.Alphabet(2000, "ab"),
	}
	for i, v := range vectors {
		slp := Build(v)
		if err := DepSort(slp); err != nil {
			t.Fatalf("test %d, unexpected DepSort error: %v", i, err)
		}
		if !IsSorted(slp) {
			t.Errorf("test %d, grammar not sorted after DepSort", i)
		}

		var b bytes.Buffer
		if err := Encode(&b, slp); err != nil {
			t.Fatalf("test %d, unexpected Encode error: %v", i, err)
		}
		got, err := Decode(&b)
		if err != nil {
			t.Fatalf("test %d, unexpected Decode error: %v", i, err)
		}
		if diff := cmp.Diff(slp, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("test %d, grammar mismatch (-want +got):\n%s", i, diff)
		}
		output, err := got.Expand()
		if err != nil {
			t.Fatalf("test %d, unexpected Expand error: %v", i, err)
		}
		if !bytes.Equal(output, v) {
			t.Errorf("test %d, output mismatch:\ngot  %q\nwant %q", i, output, v)
		}
	}

	// Repetitive input yields far fewer rules than bytes.
	if slp := Build(bytes.Repeat([]byte("abcd"), 1024)); len(slp.Rules) > 64 {
		t.Errorf("too many rules for repetitive input: %d", len(slp.Rules))
	}
}

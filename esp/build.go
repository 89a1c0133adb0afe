// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package esp

// Build constructs a grammar deriving text.
//
// The grammar is built in rounds. Each round splits the current symbol
// sequence into blocks and replaces every block by a nonterminal, where
// equal blocks share one rule across all rounds. A run of one repeated
// symbol is paired up from its start so that long runs collapse quickly;
// any other stretch is paired from left to right. A block that is left over
// at the end of a stretch is carried into the next round unchanged.
//
// The rules are numbered in creation order and are not dependency sorted.
func Build(text []byte) *SLP {
	if len(text) == 0 {
		return &SLP{Empty: true}
	}
	seq := make([]uint64, len(text))
	for i, c := range text {
		seq[i] = uint64(c)
	}

	s := new(SLP)
	pairs := make(map[[2]uint64]uint64)
	pair := func(a, b uint64) uint64 {
		k := [2]uint64{a, b}
		if sym, ok := pairs[k]; ok {
			return sym
		}
		sym := numTerminals + uint64(len(s.Rules))
		s.Rules = append(s.Rules, k)
		pairs[k] = sym
		return sym
	}

	for len(seq) > 1 {
		next := seq[:0]
		for i := 0; i < len(seq); {
			// Find the extent of the current stretch: a run of equal
			// symbols, or a maximal range without adjacent repeats.
			j := i + 1
			if seq[j-1] == at(seq, j) {
				for j < len(seq) && seq[j] == seq[i] {
					j++
				}
			} else {
				for j < len(seq) && seq[j] != seq[j-1] && at(seq, j+1) != seq[j] {
					j++
				}
			}
			k := i
			for ; k+1 < j; k += 2 {
				next = append(next, pair(seq[k], seq[k+1]))
			}
			if k < j {
				next = append(next, seq[k])
			}
			i = j
		}
		seq = next
	}
	s.Root = seq[0]
	return s
}

// at returns seq[i], or a value that matches no symbol if i is out of range.
func at(seq []uint64, i int) uint64 {
	if i < len(seq) {
		return seq[i]
	}
	return ^uint64(0)
}

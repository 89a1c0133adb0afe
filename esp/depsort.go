// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package esp

// DepSort renumbers the nonterminals of s so that the left symbols of the
// rules form a non-decreasing sequence and each left symbol is defined before
// the rule that uses it. References in right symbols and the root are
// rewritten accordingly. DepSort leaves a grammar that is already in this
// order untouched.
//
// Rules are ordered by a breadth-first walk of the forest formed by the
// left-symbol relation, starting from the terminals in increasing order.
// Rules with the same left symbol keep their relative order.
func DepSort(s *SLP) error {
	if s.Empty {
		if len(s.Rules) > 0 || s.Root != 0 {
			return ErrInvalid
		}
		return nil
	}
	n := len(s.Rules)
	for _, r := range s.Rules {
		if !s.valid(r[0]) || !s.valid(r[1]) {
			return ErrInvalid
		}
	}
	if !s.valid(s.Root) {
		return ErrInvalid
	}

	// Group rules by their left symbol, preserving the original order.
	// A counting sort keeps this linear in the number of rules.
	start := make([]int, n+numTerminals+1)
	for _, r := range s.Rules {
		start[r[0]+1]++
	}
	for i := 1; i < len(start); i++ {
		start[i] += start[i-1]
	}
	byLeft := make([]int, n)
	next := append([]int(nil), start[:len(start)-1]...)
	for i, r := range s.Rules {
		byLeft[next[r[0]]] = i
		next[r[0]]++
	}

	// Walk the terminals, then every rule in the order it was numbered.
	// Rules are numbered as their left symbol is visited, so the numbers of
	// the visited symbols only ever grow.
	order := make([]int, 0, n) // order[new] = old
	perm := make([]uint64, n)  // perm[old] = new
	visit := func(sym uint64) {
		for _, i := range byLeft[start[sym]:start[sym+1]] {
			perm[i] = uint64(len(order))
			order = append(order, i)
		}
	}
	for c := uint64(0); c < numTerminals; c++ {
		visit(c)
	}
	for k := 0; k < len(order); k++ {
		visit(numTerminals + uint64(order[k]))
	}
	if len(order) != n {
		return ErrInvalid // Left symbols form a cycle
	}

	rename := func(sym uint64) uint64 {
		if sym < numTerminals {
			return sym
		}
		return numTerminals + perm[sym-numTerminals]
	}
	rules := make([][2]uint64, n)
	for k, i := range order {
		r := s.Rules[i]
		rules[k] = [2]uint64{rename(r[0]), rename(r[1])}
	}
	copy(s.Rules, rules)
	s.Root = rename(s.Root)
	return nil
}

// IsSorted reports whether the left symbols of s are non-decreasing and each
// one refers to a terminal or an earlier rule.
func IsSorted(s *SLP) bool {
	var last uint64
	for i, r := range s.Rules {
		if r[0] < last || r[0] >= numTerminals+uint64(i) {
			return false
		}
		last = r[0]
	}
	return true
}

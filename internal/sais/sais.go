// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package sais

// computeSA returns the suffix array of s, where symbols of s lie in [0, k)
// and s is terminated by a unique 0 symbol.
func computeSA(s []int, k int) []int {
	n := len(s)
	sa := make([]int, n)
	if n == 1 {
		return sa
	}

	// Classify each suffix as S-type (true) or L-type (false).
	t := make([]bool, n)
	t[n-1] = true
	for i := n - 2; i >= 0; i-- {
		t[i] = s[i] < s[i+1] || (s[i] == s[i+1] && t[i+1])
	}
	isLMS := func(i int) bool { return i > 0 && t[i] && !t[i-1] }

	// Stage 1: sort all LMS substrings by inducing from unsorted LMS positions.
	bkt := bucketSizes(s, k)
	var lms []int
	for i := 1; i < n; i++ {
		if isLMS(i) {
			lms = append(lms, i)
		}
	}
	placeLMS(s, sa, bkt, lms, func(j int) int { return lms[j] })
	induce(s, sa, t, bkt)

	// Compact the sorted LMS positions to the front and name each distinct
	// LMS substring in sorted order.
	m := 0
	for _, p := range sa {
		if isLMS(p) {
			sa[m] = p
			m++
		}
	}
	names := make([]int, n)
	name, prev := 0, -1
	for _, p := range sa[:m] {
		if prev < 0 || !equalLMS(s, t, prev, p) {
			name++
		}
		names[p] = name - 1
		prev = p
	}

	// Stage 2: sort the reduced problem, recursing if names are not unique.
	s1 := make([]int, len(lms))
	for j, p := range lms {
		s1[j] = names[p]
	}
	var sa1 []int
	if name < len(lms) {
		sa1 = computeSA(s1, name)
	} else {
		sa1 = make([]int, len(lms))
		for j, c := range s1 {
			sa1[c] = j
		}
	}

	// Stage 3: induce the final order from the sorted LMS suffixes.
	placeLMS(s, sa, bkt, sa1, func(j int) int { return lms[sa1[j]] })
	induce(s, sa, t, bkt)
	return sa
}

// placeLMS clears sa and stores the LMS positions at the tails of their
// buckets, preserving the order given by pos(0..len(order)-1).
func placeLMS(s, sa, bkt, order []int, pos func(int) int) {
	for i := range sa {
		sa[i] = -1
	}
	tails := bucketTails(bkt)
	for j := len(order) - 1; j >= 0; j-- {
		p := pos(j)
		c := s[p]
		tails[c]--
		sa[tails[c]] = p
	}
}

// induce sorts L-type suffixes with a forward scan and S-type suffixes with
// a backward scan.
func induce(s, sa []int, t []bool, bkt []int) {
	heads := bucketHeads(bkt)
	for i := 0; i < len(sa); i++ {
		if j := sa[i] - 1; j >= 0 && !t[j] {
			c := s[j]
			sa[heads[c]] = j
			heads[c]++
		}
	}
	tails := bucketTails(bkt)
	for i := len(sa) - 1; i >= 0; i-- {
		if j := sa[i] - 1; j >= 0 && t[j] {
			c := s[j]
			tails[c]--
			sa[tails[c]] = j
		}
	}
}

// equalLMS reports whether the LMS substrings starting at a and b are equal.
func equalLMS(s []int, t []bool, a, b int) bool {
	n := len(s)
	if a == n-1 || b == n-1 {
		return a == b
	}
	for i := 0; ; i++ {
		if s[a+i] != s[b+i] || t[a+i] != t[b+i] {
			return false
		}
		if i > 0 {
			aEnd := t[a+i] && !t[a+i-1]
			bEnd := t[b+i] && !t[b+i-1]
			if aEnd && bEnd {
				return true
			}
			if aEnd != bEnd {
				return false
			}
		}
	}
}

func bucketSizes(s []int, k int) []int {
	bkt := make([]int, k)
	for _, c := range s {
		bkt[c]++
	}
	return bkt
}

func bucketHeads(bkt []int) []int {
	heads := make([]int, len(bkt))
	sum := 0
	for c, v := range bkt {
		heads[c] = sum
		sum += v
	}
	return heads
}

func bucketTails(bkt []int) []int {
	tails := make([]int, len(bkt))
	sum := 0
	for c, v := range bkt {
		sum += v
		tails[c] = sum
	}
	return tails
}

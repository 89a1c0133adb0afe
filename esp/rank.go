// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package esp

import "sort"

// Ranking is the rank transform of a sequence of values.
//
// Positions in SIS, Dsi and B refer to the sorted order, while positions in
// Dpi refer to the original order. Equal values form a class; classes are
// numbered from zero in increasing order of their value.
type Ranking struct {
	SIS []int  // SIS[i] is the original index of the i-th smallest value
	Dpi []int  // Dpi[j] is the class of the value at original index j
	Dsi []int  // Dsi[i] is the gap from the previous index of the same class
	B   []bool // B[i] is set when sorted position i starts a new class
}

// SortedIndices returns the permutation that stably sorts values.
func SortedIndices(values []uint64) []int {
	sis := make([]int, len(values))
	for i := range sis {
		sis[i] = i
	}
	sort.SliceStable(sis, func(i, j int) bool {
		return values[sis[i]] < values[sis[j]]
	})
	return sis
}

// Rank computes the rank transform of values.
func Rank(values []uint64) *Ranking {
	n := len(values)
	r := &Ranking{
		SIS: SortedIndices(values),
		Dpi: make([]int, n),
		Dsi: make([]int, n),
		B:   make([]bool, n),
	}
	class := -1
	for i, j := range r.SIS {
		if i == 0 || values[j] != values[r.SIS[i-1]] {
			class++
			r.B[i] = true
			r.Dsi[i] = j
		} else {
			r.Dsi[i] = j - r.SIS[i-1]
		}
		r.Dpi[j] = class
	}
	return r
}

// Classes reports the number of distinct values.
func (r *Ranking) Classes() int {
	var n int
	for _, b := range r.B {
		if b {
			n++
		}
	}
	return n
}

// Recover rebuilds the sorted index permutation from Dsi and B alone and
// checks that it agrees with Dpi.
func (r *Ranking) Recover() ([]int, error) {
	n := len(r.Dsi)
	if len(r.B) != n || len(r.Dpi) != n || (n > 0 && !r.B[0]) {
		return nil, ErrCorrupt
	}
	sis := make([]int, n)
	seen := make([]bool, n)
	class := -1
	for i, d := range r.Dsi {
		j := d
		if r.B[i] {
			class++
		} else {
			if d <= 0 {
				return nil, ErrCorrupt
			}
			j += sis[i-1]
		}
		if j < 0 || j >= n || seen[j] || r.Dpi[j] != class {
			return nil, ErrCorrupt
		}
		seen[j] = true
		sis[i] = j
	}
	return sis, nil
}

// ClassesFrom rebuilds the sorted index permutation from the class of each
// original index and the class boundaries in sorted order.
func ClassesFrom(dpi []int, b []bool) ([]int, error) {
	n := len(dpi)
	if len(b) != n || (n > 0 && !b[0]) {
		return nil, ErrCorrupt
	}

	// The first sorted position of each class.
	var heads []int
	for i, v := range b {
		if v {
			heads = append(heads, i)
		}
	}
	next := append([]int(nil), heads...)
	sis := make([]int, n)
	for j, c := range dpi {
		if c < 0 || c >= len(heads) {
			return nil, ErrCorrupt
		}
		end := n
		if c+1 < len(heads) {
			end = heads[c+1]
		}
		if next[c] >= end {
			return nil, ErrCorrupt
		}
		sis[next[c]] = j
		next[c]++
	}
	// Every class must be filled exactly.
	for c := range heads {
		end := n
		if c+1 < len(heads) {
			end = heads[c+1]
		}
		if next[c] != end {
			return nil, ErrCorrupt
		}
	}
	return sis, nil
}

// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package suffixtree

import "sort"

// Arena stores nodes as parallel arrays addressed by int32 indexes.
// Edges are kept in a single map keyed by the parent index and the first
// byte of the edge. The zero value is ready for Init.
type Arena struct {
	text []byte
	pos  int

	start  []int
	end    []int // Inclusive, or openEnd
	suffix []int
	link   []int32
	kids   [][]int32 // Unordered child lists, used for enumeration

	edges map[uint64]int32
}

// NewArena returns an Arena bound to text.
func NewArena(text []byte) *Arena {
	a := new(Arena)
	a.Init(text)
	return a
}

func edgeKey(n int32, c byte) uint64 { return uint64(n)<<8 | uint64(c) }

func (a *Arena) Init(text []byte) {
	*a = Arena{
		text:   text,
		pos:    -1,
		start:  a.start[:0],
		end:    a.end[:0],
		suffix: a.suffix[:0],
		link:   a.link[:0],
		kids:   a.kids[:0],
		edges:  make(map[uint64]int32, 2*len(text)),
	}
	a.newNode(0, 0, -1) // Root
}

func (a *Arena) Advance(pos int) { a.pos = pos }

func (a *Arena) newNode(start, end, suffix int) int32 {
	n := int32(len(a.start))
	a.start = append(a.start, start)
	a.end = append(a.end, end)
	a.suffix = append(a.suffix, suffix)
	a.link = append(a.link, 0)
	a.kids = append(a.kids, nil)
	return n
}

func (a *Arena) Root() int32 { return 0 }
func (a *Arena) Size() int   { return len(a.start) }

func (a *Arena) AddChild(parent int32, start, suffix int) int32 {
	n := a.newNode(start, openEnd, suffix)
	a.edges[edgeKey(parent, a.text[start])] = n
	a.kids[parent] = append(a.kids[parent], n)
	return n
}

func (a *Arena) SplitEdge(parent, child int32, length int) int32 {
	cs := a.start[child]
	mid := a.newNode(cs, cs+length-1, -1)
	a.edges[edgeKey(parent, a.text[cs])] = mid
	for i, k := range a.kids[parent] {
		if k == child {
			a.kids[parent][i] = mid
			break
		}
	}
	a.start[child] = cs + length
	a.edges[edgeKey(mid, a.text[cs+length])] = child
	a.kids[mid] = append(a.kids[mid], child)
	return mid
}

func (a *Arena) EdgeLength(n int32) int {
	if n == 0 {
		return 0
	}
	if a.end[n] == openEnd {
		return a.pos - a.start[n] + 1
	}
	return a.end[n] - a.start[n] + 1
}

func (a *Arena) EdgeLabel(n int32, off int) byte { return a.text[a.start[n]+off] }
func (a *Arena) EdgeStart(n int32) int           { return a.start[n] }
func (a *Arena) Suffix(n int32) int              { return a.suffix[n] }
func (a *Arena) IsLeaf(n int32) bool             { return len(a.kids[n]) == 0 }

func (a *Arena) Child(n int32, c byte) (int32, bool) {
	k, ok := a.edges[edgeKey(n, c)]
	return k, ok
}

func (a *Arena) Children(n int32) []int32 {
	kids := append([]int32(nil), a.kids[n]...)
	sort.Slice(kids, func(i, j int) bool {
		return a.text[a.start[kids[i]]] < a.text[a.start[kids[j]]]
	})
	return kids
}

func (a *Arena) SuffixLink(n int32) int32    { return a.link[n] }
func (a *Arena) SetSuffixLink(n, link int32) { a.link[n] = link }

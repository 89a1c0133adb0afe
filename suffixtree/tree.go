// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package suffixtree builds suffix trees with Ukkonen's online algorithm.
//
// The construction is written against the Storage interface so that the same
// algorithm can run over different node layouts. Two layouts are provided:
// Arena, which addresses nodes by int32 index, and Pointer, which allocates a
// struct per node.
//
// A suffix tree only has one leaf per suffix if no suffix is a prefix of
// another one. Callers that need every suffix to be a leaf should terminate
// the text with a byte that occurs nowhere else.
//
// Reference:
//	https://www.cs.helsinki.fi/u/ukkonen/SuffixT1withFigs.pdf
package suffixtree

import (
	"bytes"
	"sort"

	"github.com/tdcgo/textcomp/internal"
)

// ActivePoint is the construction state carried between steps.
type ActivePoint[N comparable] struct {
	Node      N   // Node the next insertion starts from
	Edge      int // Text index of the first byte of the active edge
	Length    int // Number of bytes matched along the active edge
	Pos       int // Index of the last appended byte, -1 before the first step
	Remainder int // Number of suffixes still to be inserted explicitly
	Suffix    int // Suffix number assigned to the next leaf
}

// Tree is a suffix tree over a text, stored in a Storage.
type Tree[N comparable] struct {
	Storage[N]
	Active ActivePoint[N]

	text []byte
}

// New prepares a tree over text without consuming any of it.
// Bytes are appended one at a time with Step.
func New[N comparable](text []byte, s Storage[N]) *Tree[N] {
	s.Init(text)
	t := &Tree[N]{Storage: s, text: text}
	t.Active = ActivePoint[N]{Node: s.Root(), Pos: -1}
	return t
}

// Build constructs the complete suffix tree of text in s.
func Build[N comparable](text []byte, s Storage[N]) *Tree[N] {
	t := New(text, s)
	for t.Step() {
	}
	return t
}

// Text returns the text the tree is built over.
func (t *Tree[N]) Text() []byte { return t.text }

// Done reports whether every byte of the text has been appended.
func (t *Tree[N]) Done() bool { return t.Active.Pos+1 >= len(t.text) }

// Step appends the next text byte to the tree. It reports false once the
// whole text has been consumed.
func (t *Tree[N]) Step() bool {
	if t.Done() {
		return false
	}
	a := &t.Active
	root := t.Root()
	a.Pos++
	a.Remainder++
	t.Advance(a.Pos)
	c := t.text[a.Pos]

	// Internal node created or visited in this step that still needs its
	// suffix link pointed at the next node handled.
	var pending N
	var hasPending bool
	link := func(n N) {
		if hasPending && pending != root {
			if internal.Debug {
				if old := t.SuffixLink(pending); old != root && old != n {
					panic("suffixtree: suffix link reassigned")
				}
			}
			t.SetSuffixLink(pending, n)
		}
		pending, hasPending = n, true
	}

	for a.Remainder > 0 {
		if a.Length == 0 {
			a.Edge = a.Pos
		}
		child, ok := t.Child(a.Node, t.text[a.Edge])
		if !ok {
			if internal.Debug && a.Suffix != a.Pos-a.Remainder+1 {
				panic("suffixtree: leaf numbering out of sync")
			}
			t.AddChild(a.Node, a.Pos, a.Suffix)
			a.Suffix++
			link(a.Node)
		} else {
			if n := t.EdgeLength(child); a.Length >= n {
				a.Node = child
				a.Edge += n
				a.Length -= n
				continue
			}
			if t.EdgeLabel(child, a.Length) == c {
				a.Length++
				link(a.Node)
				break
			}
			mid := t.SplitEdge(a.Node, child, a.Length)
			t.AddChild(mid, a.Pos, a.Suffix)
			a.Suffix++
			link(mid)
		}

		a.Remainder--
		if a.Node == root && a.Length > 0 {
			a.Length--
			a.Edge = a.Pos - a.Remainder + 1
		} else if a.Node != root {
			a.Node = t.SuffixLink(a.Node)
		}
	}
	return true
}

// EdgeString returns the bytes labeling the edge entering n.
func (t *Tree[N]) EdgeString(n N) []byte {
	start := t.EdgeStart(n)
	return t.text[start : start+t.EdgeLength(n)]
}

// Leaves returns the suffix numbers of all leaves below n in
// lexicographical order of the suffixes.
func (t *Tree[N]) Leaves(n N) []int {
	var sufs []int
	stack := []N{n}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if t.IsLeaf(n) {
			if s := t.Suffix(n); s >= 0 {
				sufs = append(sufs, s)
			}
			continue
		}
		kids := t.Children(n)
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
	return sufs
}

// locate walks pattern down from the root. It returns the node at or below
// the end of the match.
func (t *Tree[N]) locate(pattern []byte) (N, bool) {
	n := t.Root()
	for len(pattern) > 0 {
		child, ok := t.Child(n, pattern[0])
		if !ok {
			return n, false
		}
		label := t.EdgeString(child)
		m := len(label)
		if m > len(pattern) {
			m = len(pattern)
		}
		if !bytes.Equal(label[:m], pattern[:m]) {
			return n, false
		}
		n, pattern = child, pattern[m:]
	}
	return n, true
}

// Contains reports whether pattern is a substring of the consumed text.
func (t *Tree[N]) Contains(pattern []byte) bool {
	_, ok := t.locate(pattern)
	return ok
}

// Find returns the sorted starting positions of every occurrence of pattern.
// Occurrences are only reported for suffixes that end in a leaf.
func (t *Tree[N]) Find(pattern []byte) []int {
	n, ok := t.locate(pattern)
	if !ok {
		return nil
	}
	pos := t.Leaves(n)
	sort.Ints(pos)
	return pos
}

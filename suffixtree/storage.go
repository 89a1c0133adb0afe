// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package suffixtree

// Storage is the set of node operations the construction algorithm needs.
// Nodes are identified by opaque handles of type N.
//
// A Storage is bound to a single text by Init. Leaf edges are open: they
// end at the last position passed to Advance and so grow as the text is
// consumed. Passing a handle that the Storage did not produce is a
// programming error and may panic.
type Storage[N comparable] interface {
	// Init discards all nodes and starts a new tree over text with a lone root.
	Init(text []byte)
	// Advance sets the index of the last text byte appended to the tree.
	Advance(pos int)

	// Root returns the root node.
	Root() N
	// Size reports the number of nodes, including the root.
	Size() int

	// AddChild attaches a new leaf to parent whose edge begins at text[start].
	// The leaf represents the suffix beginning at suffix.
	AddChild(parent N, start, suffix int) N
	// SplitEdge inserts a new internal node length bytes down the edge from
	// parent to child and returns it.
	SplitEdge(parent, child N, length int) N

	// EdgeLength reports the length of the edge entering n.
	EdgeLength(n N) int
	// EdgeLabel returns the byte at offset off within the edge entering n.
	EdgeLabel(n N, off int) byte
	// EdgeStart reports the text index where the edge entering n begins.
	EdgeStart(n N) int

	// Suffix reports the suffix represented by leaf n, or -1 for internal nodes.
	Suffix(n N) int
	// IsLeaf reports whether n has no children.
	IsLeaf(n N) bool
	// Child returns the child of n whose edge begins with c.
	Child(n N, c byte) (N, bool)
	// Children returns all children of n ordered by their first edge byte.
	Children(n N) []N

	// SuffixLink returns the suffix link of n, which defaults to the root.
	SuffixLink(n N) N
	// SetSuffixLink sets the suffix link of n to link.
	SetSuffixLink(n, link N)
}

// openEnd marks an edge that extends to the current end of the text.
const openEnd = -1

// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package suffixtree

import "sort"

// PointerNode is a heap allocated suffix tree node.
type PointerNode struct {
	start, end int
	suffix     int
	link       *PointerNode
	children   map[byte]*PointerNode
}

// Pointer stores every node as a separate PointerNode.
type Pointer struct {
	text []byte
	pos  int
	root *PointerNode
	size int
}

// NewPointer returns a Pointer storage bound to text.
func NewPointer(text []byte) *Pointer {
	p := new(Pointer)
	p.Init(text)
	return p
}

func (p *Pointer) Init(text []byte) {
	root := &PointerNode{suffix: -1}
	root.link = root
	*p = Pointer{text: text, pos: -1, root: root, size: 1}
}

func (p *Pointer) Advance(pos int)    { p.pos = pos }
func (p *Pointer) Root() *PointerNode { return p.root }
func (p *Pointer) Size() int          { return p.size }

func (p *Pointer) newNode(start, end, suffix int) *PointerNode {
	p.size++
	return &PointerNode{start: start, end: end, suffix: suffix, link: p.root}
}

func (p *Pointer) attach(parent, n *PointerNode) {
	if parent.children == nil {
		parent.children = make(map[byte]*PointerNode)
	}
	parent.children[p.text[n.start]] = n
}

func (p *Pointer) AddChild(parent *PointerNode, start, suffix int) *PointerNode {
	n := p.newNode(start, openEnd, suffix)
	p.attach(parent, n)
	return n
}

func (p *Pointer) SplitEdge(parent, child *PointerNode, length int) *PointerNode {
	mid := p.newNode(child.start, child.start+length-1, -1)
	p.attach(parent, mid)
	child.start += length
	p.attach(mid, child)
	return mid
}

func (p *Pointer) EdgeLength(n *PointerNode) int {
	switch {
	case n == p.root:
		return 0
	case n.end == openEnd:
		return p.pos - n.start + 1
	default:
		return n.end - n.start + 1
	}
}

func (p *Pointer) EdgeLabel(n *PointerNode, off int) byte { return p.text[n.start+off] }
func (p *Pointer) EdgeStart(n *PointerNode) int           { return n.start }
func (p *Pointer) Suffix(n *PointerNode) int              { return n.suffix }
func (p *Pointer) IsLeaf(n *PointerNode) bool             { return len(n.children) == 0 }

func (p *Pointer) Child(n *PointerNode, c byte) (*PointerNode, bool) {
	k, ok := n.children[c]
	return k, ok
}

func (p *Pointer) Children(n *PointerNode) []*PointerNode {
	keys := make([]int, 0, len(n.children))
	for c := range n.children {
		keys = append(keys, int(c))
	}
	sort.Ints(keys)
	kids := make([]*PointerNode, len(keys))
	for i, c := range keys {
		kids[i] = n.children[byte(c)]
	}
	return kids
}

func (p *Pointer) SuffixLink(n *PointerNode) *PointerNode { return n.link }
func (p *Pointer) SetSuffixLink(n, link *PointerNode)     { n.link = link }
